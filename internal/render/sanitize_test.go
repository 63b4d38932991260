package render

import (
	"testing"

	"github.com/ghaggin/newsgate/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestSanitizer(t *testing.T) {
	assert := assert.New(t)
	s := NewSanitizer()

	a := model.Article{
		Title:       "Copa &amp; <i>final</i>",
		Author:      "<script>alert(1)</script>Ana",
		Description: `<p>Jogo <b>decisivo</b></p><script>x()</script><a href="https://news.com">link</a>`,
	}

	sum := s.Summary(a)
	assert.Equal("Copa & final", sum.Title)
	assert.Equal("Ana", sum.Author)
	assert.Contains(sum.Description, "Jogo decisivo")
	assert.NotContains(sum.Description, "<")
	assert.NotContains(sum.Description, "x()")

	full := s.Full(a)
	assert.Contains(full.Description, "<b>decisivo</b>")
	assert.NotContains(full.Description, "script")
	assert.Contains(full.Description, "nofollow")
}
