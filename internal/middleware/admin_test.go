package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_RequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	gate := RequireAdmin("s3cret")(next)

	t.Run("no credentials redirects to login", func(t *testing.T) {
		w := httptest.NewRecorder()
		gate.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/admin/login", w.Header().Get("Location"))
	})

	t.Run("valid cookie passes", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/admin", nil)
		r.AddCookie(&http.Cookie{Name: AdminCookieName, Value: "s3cret"})
		w := httptest.NewRecorder()
		gate.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong cookie redirects", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/admin", nil)
		r.AddCookie(&http.Cookie{Name: AdminCookieName, Value: "nope"})
		w := httptest.NewRecorder()
		gate.ServeHTTP(w, r)
		assert.Equal(t, http.StatusSeeOther, w.Code)
	})

	t.Run("bearer header passes", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/admin", nil)
		r.Header.Set("Authorization", "Bearer s3cret")
		w := httptest.NewRecorder()
		gate.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func Test_RateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstSize:         2,
		CleanupInterval:   time.Minute,
	})
	defer rl.Stop()

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"), "burst exhausted")
	assert.True(t, rl.Allow("10.0.0.2"), "keys are independent")
}
