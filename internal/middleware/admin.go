package middleware

import (
	"crypto/subtle"
	"net/http"
)

// AdminCookieName is the session cookie set after a successful admin login.
const AdminCookieName = "saffron_admin"

// RequireAdmin gates admin routes on the operator token. Browser sessions
// authenticate via the admin cookie; API clients may send the token as a
// bearer header instead.
func RequireAdmin(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				// Dev convenience: no token configured means the gate is
				// open. Production refuses to start without one.
				next.ServeHTTP(w, r)
				return
			}

			if presented := presentedToken(r); presented != "" &&
				subtle.ConstantTimeCompare([]byte(presented), []byte(token)) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		})
	}
}

func presentedToken(r *http.Request) string {
	if c, err := r.Cookie(AdminCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	const prefix = "Bearer "
	if auth := r.Header.Get("Authorization"); len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}
