package form

import (
	"testing"

	"github.com/ghaggin/newsgate/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestSignup_Validate(t *testing.T) {
	valid := Signup{Name: "Ana", Email: "ana@news.com", Password: "123456", ConfirmPassword: "123456"}

	tests := []struct {
		name string
		mod  func(*Signup)
		want Errors
	}{
		{"valid", func(*Signup) {}, Errors{}},
		{"empty name", func(f *Signup) { f.Name = "  " }, Errors{"nome": MsgNameRequired}},
		{"email without at", func(f *Signup) { f.Email = "ana.news.com" }, Errors{"email": MsgEmailInvalid}},
		{"email without dot", func(f *Signup) { f.Email = "ana@news" }, Errors{"email": MsgEmailInvalid}},
		{"password of five", func(f *Signup) { f.Password, f.ConfirmPassword = "12345", "12345" }, Errors{"senha": MsgPasswordShort}},
		{"five accented characters", func(f *Signup) { f.Password, f.ConfirmPassword = "ãéíóú", "ãéíóú" }, Errors{"senha": MsgPasswordShort}},
		{"six accented characters", func(f *Signup) { f.Password, f.ConfirmPassword = "ãéíóúç", "ãéíóúç" }, Errors{}},
		{"confirmation differs", func(f *Signup) { f.ConfirmPassword = "654321" }, Errors{"confirmarSenha": MsgPasswordsDiffer}},
		{"all empty", func(f *Signup) { *f = Signup{} }, Errors{
			"nome":           MsgNameRequired,
			"email":          MsgEmailInvalid,
			"senha":          MsgPasswordShort,
			"confirmarSenha": MsgPasswordsDiffer,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mod(&f)
			got := f.Validate()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want) > 0, got.Any())
		})
	}
}

func TestSignup_Request(t *testing.T) {
	r := Signup{Name: " Ana ", Email: " ana@news.com ", Password: " 123456"}.Request()
	assert.Equal(t, "Ana", r.Name)
	assert.Equal(t, "ana@news.com", r.Email)
	assert.Equal(t, " 123456", r.Password)
}

func TestLogin_Validate(t *testing.T) {
	assert.False(t, Login{Email: "a@b.c", Password: "x"}.Validate().Any())
	assert.Equal(t, Errors{"email": MsgEmailInvalid, "senha": MsgPasswordMissing}, Login{}.Validate())
}

func TestProfile_Validate(t *testing.T) {
	assert := assert.New(t)

	assert.False(Profile{Name: "Ana", Email: "a@b.c"}.Validate().Any())
	assert.Equal(Errors{"senha": MsgPasswordShort}, Profile{Name: "Ana", Email: "a@b.c", Password: "123"}.Validate())
	assert.Equal(Errors{"senha": MsgPasswordShort}, Profile{Name: "Ana", Email: "a@b.c", Password: "ãéíóú"}.Validate())
	assert.Equal(Errors{"nome": MsgNameRequired, "email": MsgEmailInvalid}, Profile{}.Validate())
}

func TestArticle_Validate(t *testing.T) {
	assert := assert.New(t)

	ok := Article{Title: "T", Description: "D", Author: "A", Category: "Tecnologia"}
	assert.False(ok.Validate().Any())

	assert.Equal(Errors{
		"titulo":    MsgTitleRequired,
		"descricao": MsgDescriptionRequired,
		"autor":     MsgAuthorRequired,
		"categoria": MsgCategoryRequired,
	}, Article{}.Validate())

	bad := ok
	bad.Category = "Culinária"
	bad.Link = "news/123"
	bad.ImageURL = "ftp://img"
	assert.Equal(Errors{
		"categoria": MsgCategoryInvalid,
		"link":      MsgLinkInvalid,
		"imagemURL": MsgImageInvalid,
	}, bad.Validate())

	lower := ok
	lower.Category = "esportes"
	lower.Link = "https://news.example/1"
	assert.False(lower.Validate().Any())
}

func TestArticle_Changed(t *testing.T) {
	orig := model.Article{ID: 3, Title: "T", Description: "D", Author: "A", Category: "Esportes", PublishedAt: "2024-01-01"}

	f := ArticleFrom(orig)
	assert.False(t, f.Changed(orig))

	f.Title = " T "
	assert.False(t, f.Changed(orig))

	f.Link = "https://news.example/3"
	assert.True(t, f.Changed(orig))
}

func TestErrors_Error(t *testing.T) {
	assert.Equal(t, "email: email inválido; nome: nome obrigatório",
		Errors{"nome": MsgNameRequired, "email": MsgEmailInvalid}.Error())
}
