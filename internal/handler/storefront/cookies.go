package storefront

import "net/http"

// SessionCookieName identifies the anonymous shopping session.
const SessionCookieName = "saffron_session"

const sessionMaxAge = 30 * 24 * 60 * 60 // 30 days

// GetSessionID retrieves the shopping session ID from the request cookie.
// Returns empty string if the cookie is not present.
func GetSessionID(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// SetSessionCookie sets the shopping session cookie.
func SetSessionCookie(w http.ResponseWriter, sessionID string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
