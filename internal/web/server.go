package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ghaggin/newsgate/internal/api"
	"github.com/ghaggin/newsgate/internal/config"
	"github.com/ghaggin/newsgate/internal/favorite"
	"github.com/ghaggin/newsgate/internal/metrics"
	"github.com/ghaggin/newsgate/internal/middleware"
	"github.com/ghaggin/newsgate/internal/render"
	"github.com/ghaggin/newsgate/internal/session"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Server answers one route per screen of the reader and admin apps.
type Server struct {
	log    *zap.Logger
	server *http.Server

	client    *api.Client
	sessions  *session.Manager
	gate      *session.Gate
	favorites *favorite.Toggler
	sanitize  *render.Sanitizer

	// profile loads skip their own backend call when the gate just made it
	gateVerifies bool
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Config   *config.Config
	Sessions *middleware.SessionManager
	Client   *api.Client
	Metrics  *metrics.Metrics `optional:"true"`
}

func New(p Params) (*Server, error) {
	cfg := p.Config.Session

	sessions := session.NewManager(p.Sessions, cfg.InactivityTimeout, p.Log)
	gate := session.NewGate(sessions, p.Client, session.GateOptions{
		VerifyProfile:       cfg.VerifyProfile,
		ClearOnRoleMismatch: cfg.ClearOnRoleMismatch,
	}, p.Log, p.Metrics)

	s := &Server{
		log:          p.Log,
		client:       p.Client,
		sessions:     sessions,
		gate:         gate,
		favorites:    favorite.NewToggler(p.Client),
		sanitize:     render.NewSanitizer(),
		gateVerifies: cfg.VerifyProfile,
	}

	root := chi.NewRouter()
	root.Use(chimw.RequestID)
	root.Use(middleware.Logger(p.Log))
	root.Use(chimw.Recoverer)

	root.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	root.Handle("/metrics", p.Metrics.Handler())

	root.Group(func(r chi.Router) {
		r.Use(p.Sessions.Wrap)

		// No Auth
		r.Group(func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, middleware.HomePath, http.StatusSeeOther)
			})
			r.Get("/home", s.home)
			r.Get("/pesquisa", s.search)
			r.Get("/noticias/{id}", s.detail)
			r.Get("/login", s.loginPage)
			r.Post("/login", s.login)
			r.Post("/cadastro", s.signup)
			r.Post("/logout", s.logout)
		})

		// Reader
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(gate, session.RoleUser))
			r.Get("/favoritos", s.favoriteList)
			r.Post("/noticias/{id}/favorito", s.toggleFavorite)
		})

		// Reader or admin
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(gate, session.RoleAny))
			r.Get("/perfil", s.profile)
			r.Put("/perfil", s.updateProfile)
		})

		// Admin
		r.Route(middleware.AdminPath, func(r chi.Router) {
			r.Use(middleware.RequireAuth(gate, session.RoleAdmin))
			r.Get("/", s.adminList)
			r.Post("/noticias", s.createArticle)
			r.Get("/noticias/{id}", s.editArticle)
			r.Put("/noticias/{id}", s.updateArticle)
			r.Delete("/noticias/{id}", s.deleteArticle)
		})
	})

	addr := fmt.Sprintf("%s:%d", p.Config.Server.Host, p.Config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: root,
	}

	return s, nil
}

// RegisterHooks should be invoked by fx
func RegisterHooks(lc fx.Lifecycle, s *Server) {
	lc.Append(fx.Hook{
		OnStart: s.Start,
		OnStop:  s.server.Shutdown,
	})
}

func (s *Server) Start(_ context.Context) error {
	s.log.Info("listening", zap.String("addr", s.server.Addr))
	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("error running server", zap.Error(err))
		}
	}()
	return nil
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}
