package web

import (
	"context"
	"net/http"

	"github.com/ghaggin/newsgate/internal/form"
	"github.com/ghaggin/newsgate/internal/middleware"
	"github.com/ghaggin/newsgate/internal/model"
)

const (
	msgArticleSaved   = "Notícia salva com sucesso!"
	msgArticleUpdated = "Notícia atualizada com sucesso!"
	msgNoChanges      = "Nenhuma alteração para salvar"
	msgArticleDeleted = "Notícia excluída com sucesso!"
)

// EditRequest is the edit form plus, optionally, the article the form was
// opened on. With it the update is skipped when nothing changed.
type EditRequest struct {
	form.Article
	Original *model.Article `json:"original,omitempty"`
}

func (s *Server) adminList(w http.ResponseWriter, r *http.Request) {
	v := &AdminView{Articles: []model.Article{}}
	v.User, _ = middleware.UserFromContext(r.Context())

	articles, err := s.client.ListArticles(r.Context())
	if err != nil {
		s.fail(w, r, err, v)
		return
	}

	for _, a := range articles {
		v.Articles = append(v.Articles, s.sanitize.Summary(a))
	}
	s.write(w, http.StatusOK, v)
}

func (s *Server) createArticle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var f form.Article
	if err := decode(w, r, &f); err != nil {
		s.badRequest(w, msgBadForm)
		return
	}

	v := &EditView{Form: &f}
	if errs := f.Validate(); errs.Any() {
		v.Errors = errs
		s.write(w, http.StatusUnprocessableEntity, v)
		return
	}

	err := s.sessions.Do(ctx, func(ctx context.Context, token string) error {
		var err error
		v.Article, err = s.client.CreateArticle(ctx, token, f.Model(0))
		return err
	})
	if err != nil {
		s.fail(w, r, err, v)
		return
	}

	v.Form = nil
	v.Edited = true
	v.Message = msgArticleSaved
	s.write(w, http.StatusCreated, v)
}

func (s *Server) editArticle(w http.ResponseWriter, r *http.Request) {
	v := &EditView{}

	id, err := articleID(r)
	if err != nil {
		v.Error = msgArticleNotFound
		s.write(w, http.StatusNotFound, v)
		return
	}

	v.Article, err = s.client.GetArticle(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, v)
		return
	}

	f := form.ArticleFrom(*v.Article)
	v.Form = &f
	s.write(w, http.StatusOK, v)
}

func (s *Server) updateArticle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := articleID(r)
	if err != nil {
		s.write(w, http.StatusNotFound, &EditView{Notice: Notice{Error: msgArticleNotFound}})
		return
	}

	var req EditRequest
	if err := decode(w, r, &req); err != nil {
		s.badRequest(w, msgBadForm)
		return
	}

	v := &EditView{Form: &req.Article}
	if errs := req.Validate(); errs.Any() {
		v.Errors = errs
		s.write(w, http.StatusUnprocessableEntity, v)
		return
	}

	if req.Original != nil {
		orig := *req.Original
		orig.ID = id
		if !req.Changed(orig) {
			v.Article = &orig
			v.Message = msgNoChanges
			s.write(w, http.StatusOK, v)
			return
		}
	}

	err = s.sessions.Do(ctx, func(ctx context.Context, token string) error {
		var err error
		v.Article, err = s.client.UpdateArticle(ctx, token, id, req.Model(id))
		return err
	})
	if err != nil {
		s.fail(w, r, err, v)
		return
	}

	v.Form = nil
	v.Edited = true
	v.Message = msgArticleUpdated
	s.write(w, http.StatusOK, v)
}

func (s *Server) deleteArticle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := articleID(r)
	if err != nil {
		s.write(w, http.StatusNotFound, &Notice{Error: msgArticleNotFound})
		return
	}

	v := &Notice{}
	err = s.sessions.Do(ctx, func(ctx context.Context, token string) error {
		return s.client.DeleteArticle(ctx, token, id)
	})
	if err != nil {
		s.fail(w, r, err, v)
		return
	}

	v.Message = msgArticleDeleted
	s.write(w, http.StatusOK, v)
}
