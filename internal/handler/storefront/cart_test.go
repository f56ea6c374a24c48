package storefront_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/duvindu/saffron/internal/cart"
	"github.com/duvindu/saffron/internal/currency"
	"github.com/duvindu/saffron/internal/domain"
	"github.com/duvindu/saffron/internal/handler"
	"github.com/duvindu/saffron/internal/handler/storefront"
	"github.com/duvindu/saffron/internal/kv"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// stubProductStore serves a fixed catalog.
type stubProductStore struct {
	products []domain.Product
}

func (s *stubProductStore) ListActive(_ context.Context) ([]domain.Product, error) {
	return s.products, nil
}

func (s *stubProductStore) List(_ context.Context, _ domain.ProductFilter) ([]domain.Product, error) {
	return s.products, nil
}

func (s *stubProductStore) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (s *stubProductStore) GetByID(_ context.Context, _ pgtype.UUID) (*domain.Product, error) {
	panic("not used")
}

func (s *stubProductStore) Create(_ context.Context, _ domain.ProductInput) (*domain.Product, error) {
	panic("not used")
}

func (s *stubProductStore) Update(_ context.Context, _ pgtype.UUID, _ domain.ProductInput) (*domain.Product, error) {
	panic("not used")
}

func (s *stubProductStore) Archive(_ context.Context, _ pgtype.UUID) error {
	panic("not used")
}

func newCartHandler(t *testing.T) (*storefront.CartHandler, *cart.Sessions) {
	t.Helper()

	renderer, err := handler.NewRenderer("../../../web/templates")
	require.NoError(t, err)

	store := kv.NewMemory()
	sessions := cart.NewSessions(store, discard)
	conv := currency.New(store, discard)
	products := &stubProductStore{products: []domain.Product{
		{
			Name:       "Ceylon Cinnamon",
			Slug:       "ceylon-cinnamon",
			PriceCents: 1250,
			Status:     domain.ProductStatusActive,
		},
		{
			Name:       "Smoked Paprika",
			Slug:       "smoked-paprika",
			PriceCents: 899,
			Status:     domain.ProductStatusDraft,
		},
	}}

	return storefront.NewCartHandler(sessions, products, conv, renderer, discard, false), sessions
}

func postForm(path string, form url.Values, cookies ...*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == storefront.SessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func Test_CartHandler_Add(t *testing.T) {
	h, sessions := newCartHandler(t)

	w := httptest.NewRecorder()
	h.Add(w, postForm("/cart/add", url.Values{
		"product":  {"ceylon-cinnamon"},
		"quantity": {"2"},
	}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))

	cookie := sessionCookie(t, w)
	c := sessions.Get(cookie.Value)
	assert.Equal(t, 2, c.Count())
	assert.Equal(t, int64(2500), c.SubtotalCents())
}

func Test_CartHandler_Add_MergesExistingLine(t *testing.T) {
	h, sessions := newCartHandler(t)

	w := httptest.NewRecorder()
	form := url.Values{"product": {"ceylon-cinnamon"}, "quantity": {"1"}}
	h.Add(w, postForm("/cart/add", form))
	cookie := sessionCookie(t, w)

	w2 := httptest.NewRecorder()
	h.Add(w2, postForm("/cart/add", form, cookie))

	c := sessions.Get(cookie.Value)
	require.Len(t, c.Items(), 1, "same product must merge, not duplicate")
	assert.Equal(t, 2, c.Count())
}

func Test_CartHandler_Add_Rejections(t *testing.T) {
	h, _ := newCartHandler(t)

	tests := []struct {
		name   string
		form   url.Values
		status int
	}{
		{
			name:   "unknown product",
			form:   url.Values{"product": {"ghost-pepper"}, "quantity": {"1"}},
			status: http.StatusNotFound,
		},
		{
			name:   "inactive product",
			form:   url.Values{"product": {"smoked-paprika"}, "quantity": {"1"}},
			status: http.StatusNotFound,
		},
		{
			name:   "zero quantity",
			form:   url.Values{"product": {"ceylon-cinnamon"}, "quantity": {"0"}},
			status: http.StatusBadRequest,
		},
		{
			name:   "garbage quantity",
			form:   url.Values{"product": {"ceylon-cinnamon"}, "quantity": {"lots"}},
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Add(w, postForm("/cart/add", tt.form))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func Test_CartHandler_UpdateAndRemove(t *testing.T) {
	h, sessions := newCartHandler(t)

	w := httptest.NewRecorder()
	h.Add(w, postForm("/cart/add", url.Values{"product": {"ceylon-cinnamon"}, "quantity": {"3"}}))
	cookie := sessionCookie(t, w)

	// Set quantity down to one.
	w2 := httptest.NewRecorder()
	h.Update(w2, postForm("/cart/update", url.Values{
		"product":  {"ceylon-cinnamon"},
		"quantity": {"1"},
	}, cookie))
	assert.Equal(t, http.StatusSeeOther, w2.Code)
	assert.Equal(t, 1, sessions.Get(cookie.Value).Count())

	// Remove the line entirely.
	w3 := httptest.NewRecorder()
	h.Remove(w3, postForm("/cart/remove", url.Values{"product": {"ceylon-cinnamon"}}, cookie))
	assert.Equal(t, http.StatusSeeOther, w3.Code)
	assert.Equal(t, 0, sessions.Get(cookie.Value).Count())
}

func Test_CartHandler_View_EmptyWithoutSession(t *testing.T) {
	h, _ := newCartHandler(t)

	w := httptest.NewRecorder()
	h.View(w, httptest.NewRequest(http.MethodGet, "/cart", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Your cart is empty")
}

func Test_CartHandler_View_ShowsSubtotal(t *testing.T) {
	h, _ := newCartHandler(t)

	w := httptest.NewRecorder()
	h.Add(w, postForm("/cart/add", url.Values{"product": {"ceylon-cinnamon"}, "quantity": {"2"}}))
	cookie := sessionCookie(t, w)

	w2 := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/cart", nil)
	r.AddCookie(cookie)
	h.View(w2, r)

	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "$25.00")
}
