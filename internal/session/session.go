// Package session owns the signed-in state shared by every screen: the
// stored token, the login time and the cached user, plus the rule that a
// 401 from the backend ends the session.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ghaggin/newsgate/internal/api"
	"github.com/ghaggin/newsgate/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	ErrNoSession = errors.New("no session")
	// ErrExpired is returned by Do after the backend rejected the token.
	// The session has already been cleared.
	ErrExpired = errors.New("session expired")
)

type Manager struct {
	store   Store
	timeout time.Duration
	log     *zap.Logger

	now func() time.Time
}

// NewManager wraps store. A positive timeout ends a session once that long
// has passed since login, whatever the backend says.
func NewManager(store Store, timeout time.Duration, log *zap.Logger) *Manager {
	return &Manager{
		store:   store,
		timeout: timeout,
		log:     log,
		now:     time.Now,
	}
}

func (m *Manager) Get(ctx context.Context) (*model.Session, error) {
	token := m.store.GetString(ctx, KeyToken)
	if token == "" {
		return nil, ErrNoSession
	}

	s := &model.Session{
		Token:     token,
		ExpiresAt: tokenExpiry(token),
	}

	if ms, err := strconv.ParseInt(m.store.GetString(ctx, KeyLoginAt), 10, 64); err == nil {
		s.IssuedAt = time.UnixMilli(ms)
	}

	if raw := m.store.GetString(ctx, KeyUser); raw != "" {
		var u model.User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			m.log.Warn("discarding unreadable cached user", zap.Error(err))
		} else {
			s.User = &u
		}
	}

	return s, nil
}

func (m *Manager) Begin(ctx context.Context, token string, user model.User) error {
	if r, ok := m.store.(renewer); ok {
		if err := r.RenewToken(ctx); err != nil {
			return fmt.Errorf("renew session: %w", err)
		}
	}

	if err := m.store.Put(ctx, KeyToken, token); err != nil {
		return err
	}
	if err := m.store.Put(ctx, KeyLoginAt, strconv.FormatInt(m.now().UnixMilli(), 10)); err != nil {
		return err
	}
	return m.SetUser(ctx, user)
}

func (m *Manager) SetUser(ctx context.Context, user model.User) error {
	b, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return m.store.Put(ctx, KeyUser, string(b))
}

// Clear removes every session key, keeping on past individual failures.
func (m *Manager) Clear(ctx context.Context) error {
	var errs []error
	for _, k := range keys {
		if err := m.store.Remove(ctx, k); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", k, err))
		}
	}
	return errors.Join(errs...)
}

// Expired reports whether the inactivity timeout has passed since login.
func (m *Manager) Expired(s *model.Session) bool {
	if m.timeout <= 0 || s.IssuedAt.IsZero() {
		return false
	}
	return m.now().Sub(s.IssuedAt) > m.timeout
}

// Do runs fn with the stored token. A 401 from fn clears the session and
// comes back as ErrExpired (still matching api.ErrUnauthorized).
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context, token string) error) error {
	s, err := m.Get(ctx)
	if err != nil {
		return err
	}

	err = fn(ctx, s.Token)
	if errors.Is(err, api.ErrUnauthorized) {
		if cerr := m.Clear(ctx); cerr != nil {
			m.log.Error("failed clearing rejected session", zap.Error(cerr))
		}
		return fmt.Errorf("%w: %w", ErrExpired, err)
	}

	return err
}

// tokenExpiry reads the exp claim without verifying the signature. Opaque
// tokens yield the zero time.
func tokenExpiry(token string) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
