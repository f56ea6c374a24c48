package middleware

import (
	"net/http"
	"time"
)

// Common size limits.
const (
	kb = 1024
	mb = 1024 * kb

	// DefaultMaxBodySize bounds form submissions; nothing on this site
	// uploads files.
	DefaultMaxBodySize = 1 * mb
)

// DefaultTimeout is the default per-request processing timeout.
const DefaultTimeout = 30 * time.Second

// MaxBodySize rejects request bodies larger than maxBytes with 413.
func MaxBodySize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.ContentLength > maxBytes {
				http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// Timeout bounds request processing, replying 503 if the handler does not
// finish in time.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, "Request timeout")
	}
}
