package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/ghaggin/newsgate/internal/favorite"
	"github.com/ghaggin/newsgate/internal/model"
)

const msgToggleBusy = "Aguarde a operação anterior"

type toggleRequest struct {
	Favorited bool `json:"favorito"`
}

func (s *Server) favoriteList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := &FavoritesView{Articles: []ArticleCard{}}

	var favs []model.Article
	err := s.sessions.Do(ctx, func(ctx context.Context, token string) error {
		var err error
		favs, err = s.client.ListFavorites(ctx, token)
		return err
	})
	if err != nil {
		s.fail(w, r, err, v)
		return
	}

	for _, a := range favs {
		v.Articles = append(v.Articles, ArticleCard{Article: s.sanitize.Summary(a), Favorited: true})
	}
	s.write(w, http.StatusOK, v)
}

// toggleFavorite takes the state the client currently shows and flips it.
// On failure the reply carries the unchanged state.
func (s *Server) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := articleID(r)
	if err != nil {
		s.write(w, http.StatusNotFound, &Notice{Error: msgArticleNotFound})
		return
	}

	var req toggleRequest
	if err := decode(w, r, &req); err != nil {
		s.badRequest(w, msgBadForm)
		return
	}

	v := &FavoriteView{ID: id, Favorited: req.Favorited}
	err = s.sessions.Do(ctx, func(ctx context.Context, token string) error {
		var err error
		v.Favorited, err = s.favorites.Toggle(ctx, token, id, req.Favorited)
		return err
	})
	switch {
	case errors.Is(err, favorite.ErrInFlight):
		v.Error = msgToggleBusy
		s.write(w, http.StatusConflict, v)
		return
	case err != nil:
		s.fail(w, r, err, v)
		return
	}

	s.write(w, http.StatusOK, v)
}
