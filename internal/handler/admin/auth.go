// Package admin holds the back-office handlers. Everything here sits behind
// the operator-token gate except the login page itself.
package admin

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/duvindu/saffron/internal/handler"
	"github.com/duvindu/saffron/internal/middleware"
)

// AuthHandler runs the token-based operator login.
type AuthHandler struct {
	token    string
	secure   bool
	renderer *handler.Renderer
	logger   *slog.Logger
}

func NewAuthHandler(token string, secure bool, renderer *handler.Renderer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{token: token, secure: secure, renderer: renderer, logger: logger}
}

// LoginForm handles GET /admin/login.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderHTTP(w, "admin/login", map[string]any{})
}

// Login handles POST /admin/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	presented := r.FormValue("token")
	if h.token == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(h.token)) != 1 {
		h.logger.Warn("admin login rejected", "ip", middleware.GetClientIP(r))
		h.renderer.RenderHTTP(w, "admin/login", map[string]any{
			"Error": "Invalid token",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    presented,
		Path:     "/admin",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Logout handles POST /admin/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    "",
		Path:     "/admin",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}
