package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/ghaggin/newsgate/internal/api"
	"github.com/ghaggin/newsgate/internal/form"
	"github.com/ghaggin/newsgate/internal/middleware"
	"github.com/ghaggin/newsgate/internal/model"
	"go.uber.org/zap"
)

const (
	msgBadForm        = "Dados do formulário inválidos"
	msgBadCredentials = "Email ou senha inválidos"
	msgProfileUpdated = "Perfil atualizado com sucesso!"
)

func landing(u *model.User) string {
	if u != nil && u.IsAdmin {
		return middleware.AdminPath
	}
	return middleware.HomePath
}

func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	if sess := s.currentSession(r.Context()); sess != nil && sess.User != nil {
		http.Redirect(w, r, landing(sess.User), http.StatusSeeOther)
		return
	}
	s.write(w, http.StatusOK, &FormView{})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var f form.Login
	if err := decode(w, r, &f); err != nil {
		s.badRequest(w, msgBadForm)
		return
	}

	v := &FormView{}
	if errs := f.Validate(); errs.Any() {
		v.Errors = errs
		s.write(w, http.StatusUnprocessableEntity, v)
		return
	}

	res, err := s.client.Login(ctx, f.Credentials())
	var ue *api.UnauthorizedError
	switch {
	case errors.As(err, &ue):
		v.Error = ue.Message
		if v.Error == "" {
			v.Error = msgBadCredentials
		}
		s.write(w, http.StatusUnauthorized, v)
		return
	case err != nil:
		s.fail(w, r, err, v)
		return
	}

	if err := s.sessions.Begin(ctx, res.Token, res.User); err != nil {
		s.log.Error("failed starting session", zap.Error(err))
		s.write(w, http.StatusInternalServerError, &Notice{Error: api.Message(err)})
		return
	}

	s.log.Info("signed in", zap.Int64("user_id", res.User.ID), zap.Bool("is_admin", res.User.IsAdmin))
	http.Redirect(w, r, landing(&res.User), http.StatusSeeOther)
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var f form.Signup
	if err := decode(w, r, &f); err != nil {
		s.badRequest(w, msgBadForm)
		return
	}

	v := &FormView{}
	if errs := f.Validate(); errs.Any() {
		v.Errors = errs
		s.write(w, http.StatusUnprocessableEntity, v)
		return
	}

	if err := s.client.Signup(r.Context(), f.Request()); err != nil {
		s.fail(w, r, err, v)
		return
	}

	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Clear(r.Context()); err != nil {
		s.log.Error("failed clearing session", zap.Error(err))
	}
	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := &ProfileView{}

	user, _ := middleware.UserFromContext(ctx)
	if !s.gateVerifies {
		err := s.sessions.Do(ctx, func(ctx context.Context, token string) error {
			var err error
			user, err = s.client.Profile(ctx, token)
			return err
		})
		if err != nil {
			s.fail(w, r, err, v)
			return
		}
		if err := s.sessions.SetUser(ctx, *user); err != nil {
			s.log.Warn("failed caching user snapshot", zap.Error(err))
		}
	}

	v.User = user
	s.withExpiry(ctx, v)
	s.write(w, http.StatusOK, v)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var f form.Profile
	if err := decode(w, r, &f); err != nil {
		s.badRequest(w, msgBadForm)
		return
	}

	v := &ProfileView{}
	v.User, _ = middleware.UserFromContext(ctx)
	if errs := f.Validate(); errs.Any() {
		v.Errors = errs
		s.write(w, http.StatusUnprocessableEntity, v)
		return
	}

	var updated *model.User
	err := s.sessions.Do(ctx, func(ctx context.Context, token string) error {
		var err error
		updated, err = s.client.UpdateProfile(ctx, token, f.Update())
		return err
	})
	if err != nil {
		s.fail(w, r, err, v)
		return
	}

	if err := s.sessions.SetUser(ctx, *updated); err != nil {
		s.log.Warn("failed caching user snapshot", zap.Error(err))
	}

	v.User = updated
	v.Message = msgProfileUpdated
	s.withExpiry(ctx, v)
	s.write(w, http.StatusOK, v)
}

func (s *Server) withExpiry(ctx context.Context, v *ProfileView) {
	sess, err := s.sessions.Get(ctx)
	if err != nil || sess.ExpiresAt.IsZero() {
		return
	}
	exp := sess.ExpiresAt
	v.ExpiresAt = &exp
}
