package session

import (
	"context"
	"errors"

	"github.com/ghaggin/newsgate/internal/api"
	"github.com/ghaggin/newsgate/internal/metrics"
	"github.com/ghaggin/newsgate/internal/model"
	"go.uber.org/zap"
)

type Role int

const (
	RoleUser Role = iota + 1
	RoleAdmin
	// RoleAny admits readers and admins alike, for screens both share.
	RoleAny
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	case RoleAny:
		return "any"
	default:
		return "unknown"
	}
}

type Outcome int

const (
	// Allow lets the protected screen render.
	Allow Outcome = iota
	// Login sends the caller to the login screen.
	Login
	// Home sends a non-admin away from the admin area.
	Home
	// Admin sends an admin away from the user area.
	Admin
	// Abandon means the caller went away; nothing should be written.
	Abandon
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case Login:
		return "login"
	case Home:
		return "home"
	case Admin:
		return "admin"
	case Abandon:
		return "abandon"
	default:
		return "unknown"
	}
}

type Decision struct {
	Outcome Outcome
	// User is set when Outcome is Allow.
	User *model.User
}

// ProfileFetcher confirms a token with the backend.
type ProfileFetcher interface {
	Profile(ctx context.Context, token string) (*model.User, error)
}

type GateOptions struct {
	// VerifyProfile asks the backend for the profile on every check instead
	// of trusting the cached snapshot.
	VerifyProfile bool
	// ClearOnRoleMismatch ends the session of a user who reached a screen
	// meant for the other role before redirecting them.
	ClearOnRoleMismatch bool
}

// Gate decides whether a protected screen may render.
type Gate struct {
	sessions *Manager
	profiles ProfileFetcher
	opts     GateOptions
	log      *zap.Logger
	metrics  *metrics.Metrics
}

func NewGate(sessions *Manager, profiles ProfileFetcher, opts GateOptions, log *zap.Logger, m *metrics.Metrics) *Gate {
	return &Gate{
		sessions: sessions,
		profiles: profiles,
		opts:     opts,
		log:      log,
		metrics:  m,
	}
}

func (g *Gate) Check(ctx context.Context, role Role) Decision {
	d := g.check(ctx, role)
	g.metrics.ObserveGate(role.String(), d.Outcome.String())
	return d
}

func (g *Gate) check(ctx context.Context, role Role) Decision {
	s, err := g.sessions.Get(ctx)
	if err != nil {
		return Decision{Outcome: Login}
	}

	if g.sessions.Expired(s) {
		g.log.Info("session timed out", zap.Time("issued_at", s.IssuedAt))
		g.clear(ctx)
		return Decision{Outcome: Login}
	}

	user := s.User
	if g.opts.VerifyProfile {
		user, err = g.profiles.Profile(ctx, s.Token)
		switch {
		case ctx.Err() != nil:
			return Decision{Outcome: Abandon}
		case errors.Is(err, api.ErrUnauthorized):
			g.clear(ctx)
			return Decision{Outcome: Login}
		case err != nil:
			// the session may still be good; only a 401 removes it
			g.log.Warn("profile check failed", zap.Error(err))
			return Decision{Outcome: Login}
		}

		if err := g.sessions.SetUser(ctx, *user); err != nil {
			g.log.Warn("failed caching user snapshot", zap.Error(err))
		}
	}

	if user == nil {
		return Decision{Outcome: Login}
	}

	switch {
	case role == RoleUser && user.IsAdmin:
		g.mismatch(ctx, user, role)
		return Decision{Outcome: Admin}
	case role == RoleAdmin && !user.IsAdmin:
		g.mismatch(ctx, user, role)
		return Decision{Outcome: Home}
	}

	if !s.ExpiresAt.IsZero() {
		g.log.Debug("session allowed", zap.Int64("user_id", user.ID), zap.Time("token_exp", s.ExpiresAt))
	}

	return Decision{Outcome: Allow, User: user}
}

func (g *Gate) mismatch(ctx context.Context, user *model.User, role Role) {
	g.log.Info("role mismatch",
		zap.Int64("user_id", user.ID),
		zap.Bool("is_admin", user.IsAdmin),
		zap.Stringer("required", role),
	)
	if g.opts.ClearOnRoleMismatch {
		g.clear(ctx)
	}
}

func (g *Gate) clear(ctx context.Context) {
	if err := g.sessions.Clear(ctx); err != nil {
		g.log.Error("failed clearing session", zap.Error(err))
	}
}
