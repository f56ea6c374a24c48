package storefront

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/duvindu/saffron/internal/cart"
	"github.com/duvindu/saffron/internal/currency"
	"github.com/duvindu/saffron/internal/domain"
	"github.com/duvindu/saffron/internal/handler"
)

// LineItemView is a cart line with its money fields rendered in the
// shopper's selected currency.
type LineItemView struct {
	cart.LineItem
	DisplayUnitPrice string
	DisplayLineTotal string
}

// CartHandler handles the cart page and its mutations. Mutations always
// redirect back to the cart so a refresh never replays a POST.
type CartHandler struct {
	sessions *cart.Sessions
	products domain.ProductStore
	conv     *currency.Converter
	renderer *handler.Renderer
	logger   *slog.Logger
	secure   bool
}

func NewCartHandler(sessions *cart.Sessions, products domain.ProductStore, conv *currency.Converter, renderer *handler.Renderer, logger *slog.Logger, secure bool) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		products: products,
		conv:     conv,
		renderer: renderer,
		logger:   logger,
		secure:   secure,
	}
}

// cartFor returns the cart for the request's session, minting a session
// cookie on first contact.
func (h *CartHandler) cartFor(w http.ResponseWriter, r *http.Request) (*cart.Cart, error) {
	sessionID := GetSessionID(r)
	if sessionID == "" {
		var err error
		sessionID, err = cart.NewSessionID()
		if err != nil {
			return nil, domain.Internal(err, "cart.session", "failed to create session")
		}
		SetSessionCookie(w, sessionID, h.secure)
	}
	return h.sessions.Get(sessionID), nil
}

// View handles GET /cart.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	var items []cart.LineItem
	var subtotal int64
	var count int

	if sessionID := GetSessionID(r); sessionID != "" {
		c := h.sessions.Get(sessionID)
		snap := c.Snapshot()
		items, subtotal, count = snap.Items, snap.SubtotalCents, snap.Count
	}

	views := make([]LineItemView, len(items))
	for i, item := range items {
		views[i] = LineItemView{
			LineItem:         item,
			DisplayUnitPrice: h.conv.FormatCents(item.UnitPriceCents),
			DisplayLineTotal: h.conv.FormatCents(item.UnitPriceCents * int64(item.Quantity)),
		}
	}

	data := BaseTemplateData(r, h.conv)
	data["Items"] = views
	data["Subtotal"] = h.conv.FormatCents(subtotal)
	data["Count"] = count

	h.renderer.RenderHTTP(w, "cart", data)
}

// Add handles POST /cart/add.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	slug := r.FormValue("product")
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || quantity < 1 {
		http.Error(w, "Invalid quantity", http.StatusBadRequest)
		return
	}

	product, err := h.products.GetBySlug(r.Context(), slug)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}
	if product.Status != domain.ProductStatusActive {
		handler.RespondError(w, r, h.logger, domain.ErrProductNotFound)
		return
	}

	c, err := h.cartFor(w, r)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	err = c.AddItem(cart.Product{
		ID:             product.Slug,
		Name:           product.Name,
		UnitPriceCents: product.PriceCents,
		ImageRef:       product.ImageURL,
	}, quantity)
	if err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) || errors.Is(err, cart.ErrInvalidItem) {
			http.Error(w, "Invalid item", http.StatusBadRequest)
			return
		}
		handler.RespondError(w, r, h.logger, err)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Update handles POST /cart/update. Quantity zero removes the line.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || quantity < 0 {
		http.Error(w, "Invalid quantity", http.StatusBadRequest)
		return
	}

	sessionID := GetSessionID(r)
	if sessionID == "" {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	h.sessions.Get(sessionID).SetQuantity(r.FormValue("product"), quantity)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Remove handles POST /cart/remove.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	if sessionID := GetSessionID(r); sessionID != "" {
		h.sessions.Get(sessionID).RemoveItem(r.FormValue("product"))
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
