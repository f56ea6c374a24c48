package storefront

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/duvindu/saffron/internal/cart"
	"github.com/duvindu/saffron/internal/currency"
	"github.com/duvindu/saffron/internal/domain"
	"github.com/duvindu/saffron/internal/handler"
	"github.com/duvindu/saffron/internal/service"
)

// CheckoutHandler drives the storefront checkout pages. The payment sheet
// talks JSON; the rest is plain forms.
type CheckoutHandler struct {
	checkout       *service.CheckoutService
	sessions       *cart.Sessions
	conv           *currency.Converter
	renderer       *handler.Renderer
	logger         *slog.Logger
	publishableKey string
}

func NewCheckoutHandler(checkout *service.CheckoutService, sessions *cart.Sessions, conv *currency.Converter, renderer *handler.Renderer, logger *slog.Logger, publishableKey string) *CheckoutHandler {
	return &CheckoutHandler{
		checkout:       checkout,
		sessions:       sessions,
		conv:           conv,
		renderer:       renderer,
		logger:         logger,
		publishableKey: publishableKey,
	}
}

func (h *CheckoutHandler) sessionCart(r *http.Request) *cart.Cart {
	sessionID := GetSessionID(r)
	if sessionID == "" {
		return nil
	}
	return h.sessions.Get(sessionID)
}

// Page handles GET /checkout.
func (h *CheckoutHandler) Page(w http.ResponseWriter, r *http.Request) {
	c := h.sessionCart(r)
	if c == nil || c.Count() == 0 {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	rates, err := h.checkout.ShippingRates(r.Context(), "")
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	type rateView struct {
		ServiceName string
		ServiceCode string
		DisplayCost string
		DaysMin     int
		DaysMax     int
	}
	rateViews := make([]rateView, len(rates))
	for i, rate := range rates {
		rateViews[i] = rateView{
			ServiceName: rate.ServiceName,
			ServiceCode: rate.ServiceCode,
			DisplayCost: h.conv.FormatCents(rate.CostCents),
			DaysMin:     rate.DaysMin,
			DaysMax:     rate.DaysMax,
		}
	}

	snap := c.Snapshot()
	data := BaseTemplateData(r, h.conv)
	data["Subtotal"] = h.conv.FormatCents(snap.SubtotalCents)
	data["Count"] = snap.Count
	data["Rates"] = rateViews
	data["StripePublishableKey"] = h.publishableKey

	h.renderer.RenderHTTP(w, "checkout", data)
}

// CreatePaymentIntent handles POST /checkout/payment-intent. It validates
// the address form, prices the cart, and returns the client secret for the
// payment sheet.
func (h *CheckoutHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	c := h.sessionCart(r)
	if c == nil {
		handler.RespondError(w, r, h.logger, service.ErrEmptyCart)
		return
	}

	input, err := checkoutInputFromForm(r)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	intent, quote, err := h.checkout.BeginPayment(r.Context(), c, input)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"client_secret":  intent.ClientSecret,
		"subtotal_cents": quote.SubtotalCents,
		"shipping_cents": quote.ShippingCents,
		"total_cents":    quote.TotalCents,
		"display_total":  h.conv.FormatCents(quote.TotalCents),
	})
}

// Complete handles POST /checkout/complete, called after the payment sheet
// confirms. It verifies payment and places the order.
func (h *CheckoutHandler) Complete(w http.ResponseWriter, r *http.Request) {
	c := h.sessionCart(r)
	if c == nil {
		handler.RespondError(w, r, h.logger, service.ErrEmptyCart)
		return
	}

	input, err := checkoutInputFromForm(r)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	intentID := r.FormValue("payment_intent")
	order, err := h.checkout.PlaceOrder(r.Context(), c, input, intentID, h.conv.Code())
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	http.Redirect(w, r,
		"/order-confirmation?number="+order.OrderNumber+"&email="+order.CustomerEmail,
		http.StatusSeeOther)
}

// Confirmation handles GET /order-confirmation.
func (h *CheckoutHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	number := r.URL.Query().Get("number")
	email := r.URL.Query().Get("email")

	order, err := h.checkout.TrackOrder(r.Context(), number, email)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	data := BaseTemplateData(r, h.conv)
	data["Order"] = orderView(order, h.conv)

	h.renderer.RenderHTTP(w, "order_confirmation", data)
}

func checkoutInputFromForm(r *http.Request) (service.CheckoutInput, error) {
	if err := r.ParseForm(); err != nil {
		return service.CheckoutInput{}, domain.Invalid("checkout.form", "Invalid form data")
	}
	return service.CheckoutInput{
		Name:         r.FormValue("name"),
		Email:        r.FormValue("email"),
		Line1:        r.FormValue("line1"),
		Line2:        r.FormValue("line2"),
		City:         r.FormValue("city"),
		Country:      r.FormValue("country"),
		ShippingCode: r.FormValue("shipping_code"),
	}, nil
}
