package render

import (
	"html"
	"strings"

	"github.com/ghaggin/newsgate/internal/model"
	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans backend text before it reaches a client. Lists get plain
// text, the detail screen keeps safe markup.
type Sanitizer struct {
	strict *bluemonday.Policy
	ugc    *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	ugc := bluemonday.UGCPolicy()
	ugc.RequireNoFollowOnLinks(true)
	ugc.AddTargetBlankToFullyQualifiedLinks(true)

	return &Sanitizer{
		strict: bluemonday.StrictPolicy(),
		ugc:    ugc,
	}
}

// Summary strips all markup.
func (s *Sanitizer) Summary(a model.Article) model.Article {
	a.Title = s.Text(a.Title)
	a.Description = s.Text(a.Description)
	a.Author = s.Text(a.Author)
	return a
}

// Full keeps formatting markup in the description.
func (s *Sanitizer) Full(a model.Article) model.Article {
	a.Title = s.Text(a.Title)
	a.Author = s.Text(a.Author)
	a.Description = strings.TrimSpace(s.ugc.Sanitize(a.Description))
	return a
}

func (s *Sanitizer) Text(in string) string {
	return strings.TrimSpace(html.UnescapeString(s.strict.Sanitize(in)))
}
