package web

import (
	"net/http"

	"github.com/ghaggin/newsgate/internal/model"
	"github.com/ghaggin/newsgate/internal/search"
	"golang.org/x/sync/errgroup"
)

const msgArticleNotFound = "Notícia não encontrada"

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	category := r.URL.Query().Get("categoria")

	v := &HomeView{
		Categories: model.Categories,
		Category:   category,
		Articles:   []ArticleCard{},
	}

	sess := s.currentSession(ctx)
	if sess != nil {
		v.User = sess.User
		v.Greeting = greeting(sess.User)
	}

	articles, favorites, err := s.loadArticles(ctx, sess)
	if err != nil {
		s.fail(w, r, err, v)
		return
	}

	v.Articles = cards(s.sanitize, search.ByCategory(articles, category), favorites)
	s.write(w, http.StatusOK, v)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	term := r.URL.Query().Get("q")

	v := &SearchView{Term: term, Articles: []ArticleCard{}}

	articles, favorites, err := s.loadArticles(ctx, s.currentSession(ctx))
	if err != nil {
		s.fail(w, r, err, v)
		return
	}

	v.Articles = cards(s.sanitize, search.Filter(articles, term), favorites)
	s.write(w, http.StatusOK, v)
}

func (s *Server) detail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := &DetailView{}

	id, err := articleID(r)
	if err != nil {
		v.Error = msgArticleNotFound
		s.write(w, http.StatusNotFound, v)
		return
	}

	sess := readerSession(s.currentSession(ctx))

	var (
		article   *model.Article
		favorites map[int64]bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		article, err = s.client.GetArticle(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		favorites, err = s.loadFavorites(gctx, sess)
		return err
	})

	if err := g.Wait(); err != nil {
		s.fail(w, r, err, v)
		return
	}

	v.Article = &ArticleCard{
		Article:   s.sanitize.Full(*article),
		Favorited: favorites[article.ID],
	}
	s.write(w, http.StatusOK, v)
}
