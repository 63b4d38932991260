package web

import (
	"strings"
	"time"

	"github.com/ghaggin/newsgate/internal/form"
	"github.com/ghaggin/newsgate/internal/model"
	"github.com/ghaggin/newsgate/internal/render"
)

// Notice carries the outcome message of a screen. Retry is the URL that
// repeats the failed load.
type Notice struct {
	Error   string `json:"error,omitempty"`
	Retry   string `json:"retry,omitempty"`
	Message string `json:"message,omitempty"`
}

func (n *Notice) fail(msg, retry string) {
	n.Error = msg
	n.Retry = retry
}

type failer interface {
	fail(msg, retry string)
}

type ArticleCard struct {
	model.Article
	Favorited bool `json:"favorito"`
}

type HomeView struct {
	Greeting   string        `json:"saudacao,omitempty"`
	User       *model.User   `json:"usuario,omitempty"`
	Categories []string      `json:"categorias"`
	Category   string        `json:"categoria,omitempty"`
	Articles   []ArticleCard `json:"noticias"`
	Notice
}

type SearchView struct {
	Term     string        `json:"termo"`
	Articles []ArticleCard `json:"noticias"`
	Notice
}

type DetailView struct {
	Article *ArticleCard `json:"noticia"`
	Notice
}

type FavoritesView struct {
	Articles []ArticleCard `json:"noticias"`
	Notice
}

type FavoriteView struct {
	ID        int64 `json:"id"`
	Favorited bool  `json:"favorito"`
	Notice
}

type FormView struct {
	Errors form.Errors `json:"errors,omitempty"`
	Notice
}

type ProfileView struct {
	User      *model.User `json:"usuario,omitempty"`
	ExpiresAt *time.Time  `json:"expiraEm,omitempty"`
	Errors    form.Errors `json:"errors,omitempty"`
	Notice
}

type AdminView struct {
	User     *model.User     `json:"usuario,omitempty"`
	Articles []model.Article `json:"noticias"`
	Notice
}

type EditView struct {
	Article *model.Article `json:"noticia,omitempty"`
	Form    *form.Article  `json:"form,omitempty"`
	Edited  bool           `json:"editado"`
	Errors  form.Errors    `json:"errors,omitempty"`
	Notice
}

func cards(s *render.Sanitizer, articles []model.Article, favorites map[int64]bool) []ArticleCard {
	cards := make([]ArticleCard, 0, len(articles))
	for _, a := range articles {
		cards = append(cards, ArticleCard{
			Article:   s.Summary(a),
			Favorited: favorites[a.ID],
		})
	}
	return cards
}

func greeting(u *model.User) string {
	if u == nil || u.Name == "" {
		return ""
	}
	first, _, _ := strings.Cut(strings.TrimSpace(u.Name), " ")
	return "Olá, " + first + "!"
}
