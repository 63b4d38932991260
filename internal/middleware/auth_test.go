package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghaggin/newsgate/internal/api"
	"github.com/ghaggin/newsgate/internal/config"
	"github.com/ghaggin/newsgate/internal/model"
	"github.com/ghaggin/newsgate/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProfiles struct {
	user *model.User
	err  error
}

func (s stubProfiles) Profile(context.Context, string) (*model.User, error) {
	return s.user, s.err
}

func newTestGate(t *testing.T, profiles stubProfiles) (*SessionManager, *session.Manager, *session.Gate) {
	t.Helper()

	sm, err := NewSessionManager(SessionParams{Config: config.Default()})
	require.NoError(t, err)

	sessions := session.NewManager(sm, 0, zap.NewNop())
	gate := session.NewGate(sessions, profiles, session.GateOptions{
		VerifyProfile:       true,
		ClearOnRoleMismatch: true,
	}, zap.NewNop(), nil)

	return sm, sessions, gate
}

func Test_requireAuth(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	sm, _, gate := newTestGate(t, stubProfiles{})

	req, err := http.NewRequest("GET", "/favoritos", nil)
	require.Nil(err)

	responseRecorder := httptest.NewRecorder()

	calledNext := false
	testHandler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		calledNext = true
	})

	handler := sm.Wrap(RequireAuth(gate, session.RoleUser)(testHandler))

	handler.ServeHTTP(responseRecorder, req)
	assert.False(calledNext)
	assert.Equal(http.StatusSeeOther, responseRecorder.Code)
	assert.Equal(LoginPath, responseRecorder.Result().Header.Get("Location"))
}

func Test_requireAuth2(t *testing.T) {
	reader := &model.User{ID: 1, Name: "Rubens"}
	admin := &model.User{ID: 2, Name: "Admin", IsAdmin: true}

	tests := []struct {
		name     string
		profiles stubProfiles
		role     session.Role
		next     bool
		location string
		cleared  bool
	}{
		{"reader allowed", stubProfiles{user: reader}, session.RoleUser, true, "", false},
		{"admin allowed", stubProfiles{user: admin}, session.RoleAdmin, true, "", false},
		{"expired token", stubProfiles{err: api.ErrUnauthorized}, session.RoleUser, false, LoginPath, true},
		{"admin on user screen", stubProfiles{user: admin}, session.RoleUser, false, AdminPath, true},
		{"reader on admin screen", stubProfiles{user: reader}, session.RoleAdmin, false, HomePath, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)

			sm, sessions, gate := newTestGate(t, tt.profiles)

			r, err := http.NewRequest("GET", "/", nil)
			require.Nil(t, err)
			rr := httptest.NewRecorder()

			putSession := func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					require.NoError(t, sessions.Begin(r.Context(), "tok", model.User{ID: 1}))
					next.ServeHTTP(w, r)
				})
			}

			var (
				calledNext bool
				seen       *model.User
				cleared    bool
			)
			nextHandler := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				calledNext = true
				seen, _ = UserFromContext(r.Context())
			})
			inspect := func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					next.ServeHTTP(w, r)
					cleared = sm.GetString(r.Context(), session.KeyToken) == ""
				})
			}

			handler := sm.Wrap(putSession(inspect(RequireAuth(gate, tt.role)(nextHandler))))
			handler.ServeHTTP(rr, r)

			assert.Equal(tt.next, calledNext)
			assert.Equal(tt.cleared, cleared)
			if tt.next {
				assert.Equal(http.StatusOK, rr.Code)
				assert.Equal(tt.profiles.user, seen)
				return
			}
			assert.Equal(http.StatusSeeOther, rr.Code)
			assert.Equal(tt.location, rr.Result().Header.Get("Location"))
		})
	}
}
