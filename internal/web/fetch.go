package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ghaggin/newsgate/internal/api"
	"github.com/ghaggin/newsgate/internal/middleware"
	"github.com/ghaggin/newsgate/internal/model"
	"github.com/ghaggin/newsgate/internal/render"
	"github.com/ghaggin/newsgate/internal/session"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxFormBody = 1 << 20

var errBadID = errors.New("bad article id")

// fail finishes a screen whose backend call failed. A rejected session goes
// back to login, a departed client gets nothing, everything else gets v with
// the error message and, for loads, a retry URL.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, v failer) {
	ctx := r.Context()

	switch {
	case ctx.Err() != nil || api.IsCanceled(err):
		s.log.Debug("dropping result for departed client", zap.String("path", r.URL.Path))
		return
	case errors.Is(err, session.ErrNoSession):
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
		return
	case errors.Is(err, api.ErrUnauthorized):
		// session.Manager.Do already cleared it; public loads have not
		if !errors.Is(err, session.ErrExpired) {
			if cerr := s.sessions.Clear(ctx); cerr != nil {
				s.log.Error("failed clearing session", zap.Error(cerr))
			}
		}
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
		return
	}

	s.log.Warn("screen load failed", zap.String("path", r.URL.Path), zap.Error(err))

	retry := ""
	if r.Method == http.MethodGet {
		retry = r.URL.RequestURI()
	}
	v.fail(api.Message(err), retry)
	s.write(w, api.HTTPStatus(err), v)
}

func (s *Server) write(w http.ResponseWriter, status int, v any) {
	if err := render.JSON(w, status, v); err != nil {
		s.log.Error("failed writing response", zap.Error(err))
	}
}

func (s *Server) badRequest(w http.ResponseWriter, msg string) {
	s.write(w, http.StatusBadRequest, &Notice{Error: msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBody))
	return dec.Decode(v)
}

func articleID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return id, nil
}

// currentSession is the optional session of a public screen.
func (s *Server) currentSession(ctx context.Context) *model.Session {
	sess, err := s.sessions.Get(ctx)
	if err != nil {
		return nil
	}
	if s.sessions.Expired(sess) {
		if err := s.sessions.Clear(ctx); err != nil {
			s.log.Error("failed clearing session", zap.Error(err))
		}
		return nil
	}
	return sess
}

// loadFavorites returns the favorited article ids, or nil without a session.
func (s *Server) loadFavorites(ctx context.Context, sess *model.Session) (map[int64]bool, error) {
	if sess == nil {
		return nil, nil
	}

	var favs []model.Article
	err := s.sessions.Do(ctx, func(ctx context.Context, token string) error {
		var err error
		favs, err = s.client.ListFavorites(ctx, token)
		return err
	})
	if err != nil {
		return nil, err
	}

	ids := make(map[int64]bool, len(favs))
	for _, a := range favs {
		ids[a.ID] = true
	}
	return ids, nil
}

// loadArticles fetches the article list and, for a signed-in reader, their
// favorites at the same time.
func (s *Server) loadArticles(ctx context.Context, sess *model.Session) ([]model.Article, map[int64]bool, error) {
	var (
		articles  []model.Article
		favorites map[int64]bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		articles, err = s.client.ListArticles(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		favorites, err = s.loadFavorites(gctx, readerSession(sess))
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return articles, favorites, nil
}

// readerSession drops admin sessions, which have no favorites.
func readerSession(sess *model.Session) *model.Session {
	if sess == nil || (sess.User != nil && sess.User.IsAdmin) {
		return nil
	}
	return sess
}
