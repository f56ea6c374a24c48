package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Router_MethodRouting(t *testing.T) {
	r := New()

	r.Get("/spices", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/spices", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Same path, unregistered method.
	req = httptest.NewRequest(http.MethodPost, "/spices", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func Test_Router_MiddlewareOrder(t *testing.T) {
	var order []string

	outer := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "before-outer")
			next.ServeHTTP(w, r)
			order = append(order, "after-outer")
		})
	}
	inner := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "before-inner")
			next.ServeHTTP(w, r)
			order = append(order, "after-inner")
		})
	}

	r := New(outer)
	r.Get("/x", func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}, inner)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	expected := []string{"before-outer", "before-inner", "handler", "after-inner", "after-outer"}
	require.Equal(t, expected, order, "global middleware must wrap route middleware")
}

func Test_Router_Group(t *testing.T) {
	var globalHits, groupHits int

	count := func(n *int) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				*n++
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New(count(&globalHits))
	r.Get("/open", func(w http.ResponseWriter, r *http.Request) {})

	group := r.Group(count(&groupHits))
	group.Get("/gated", func(w http.ResponseWriter, r *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/open", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/gated", nil))

	assert.Equal(t, 2, globalHits, "global middleware runs on every route")
	assert.Equal(t, 1, groupHits, "group middleware only runs on group routes")
}
