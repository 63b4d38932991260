package middleware

import (
	"context"
	"net/http"

	"github.com/ghaggin/newsgate/internal/model"
	"github.com/ghaggin/newsgate/internal/session"
)

const (
	LoginPath = "/login"
	HomePath  = "/home"
	AdminPath = "/admin"
)

type userKey struct{}

// UserFromContext returns the user admitted by RequireAuth.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userKey{}).(*model.User)
	return u, ok
}

func WithUser(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// RequireAuth runs the gate before next. Anything other than Allow ends in a
// redirect, except a caller that already went away, who gets nothing.
func RequireAuth(gate *session.Gate, role session.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := gate.Check(r.Context(), role)

			switch d.Outcome {
			case session.Allow:
				next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), d.User)))
			case session.Admin:
				http.Redirect(w, r, AdminPath, http.StatusSeeOther)
			case session.Home:
				http.Redirect(w, r, HomePath, http.StatusSeeOther)
			case session.Abandon:
				return
			default:
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			}
		})
	}
}
