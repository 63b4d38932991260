package middleware

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/ghaggin/newsgate/internal/config"
	"github.com/ghaggin/newsgate/internal/repository"
	"go.uber.org/fx"
)

// SessionManager keeps web sessions in scs. It satisfies session.Store, so
// every screen reads the same three keys the CLI keeps on disk.
type SessionManager struct {
	impl *scs.SessionManager
}

type SessionParams struct {
	fx.In

	Config *config.Config
	Repo   repository.Repository `optional:"true"`
}

func NewSessionManager(p SessionParams) (*SessionManager, error) {
	sm := &SessionManager{}
	sm.impl = scs.New()

	cfg := p.Config.Session
	sm.impl.Lifetime = cfg.Lifetime
	sm.impl.Cookie.Name = cfg.CookieName
	sm.impl.Cookie.HttpOnly = true
	sm.impl.Cookie.SameSite = http.SameSiteLaxMode
	sm.impl.Cookie.Persist = true

	if p.Repo != nil {
		sm.impl.Store = newRepositoryStore(p.Repo)
	}

	return sm, nil
}

func (s *SessionManager) Wrap(next http.Handler) http.Handler {
	return s.impl.LoadAndSave(next)
}

func (s *SessionManager) GetString(ctx context.Context, key string) string {
	return s.impl.GetString(ctx, key)
}

func (s *SessionManager) Put(ctx context.Context, key, value string) error {
	s.impl.Put(ctx, key, value)
	return nil
}

func (s *SessionManager) Remove(ctx context.Context, key string) error {
	s.impl.Remove(ctx, key)
	return nil
}

// RenewToken rotates the session id, which the session manager does at
// every sign-in.
func (s *SessionManager) RenewToken(ctx context.Context) error {
	return s.impl.RenewToken(ctx)
}
