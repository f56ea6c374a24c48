package storefront

import (
	"log/slog"
	"net/http"

	"github.com/duvindu/saffron/internal/currency"
	"github.com/duvindu/saffron/internal/domain"
	"github.com/duvindu/saffron/internal/handler"
	"github.com/duvindu/saffron/internal/service"
)

// OrderItemView is an order line with display prices.
type OrderItemView struct {
	Name             string
	Quantity         int32
	DisplayUnitPrice string
	DisplayLineTotal string
}

// OrderView is an order with all money fields rendered for display.
type OrderView struct {
	*domain.Order
	ItemViews       []OrderItemView
	DisplaySubtotal string
	DisplayShipping string
	DisplayTotal    string
}

func orderView(order *domain.Order, conv *currency.Converter) OrderView {
	items := make([]OrderItemView, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemView{
			Name:             item.Name,
			Quantity:         item.Quantity,
			DisplayUnitPrice: conv.FormatCents(item.UnitPriceCents),
			DisplayLineTotal: conv.FormatCents(item.LineCents),
		}
	}
	return OrderView{
		Order:           order,
		ItemViews:       items,
		DisplaySubtotal: conv.FormatCents(order.SubtotalCents),
		DisplayShipping: conv.FormatCents(order.ShippingCents),
		DisplayTotal:    conv.FormatCents(order.TotalCents),
	}
}

// TrackingHandler lets a customer look up their order by number and email.
type TrackingHandler struct {
	checkout *service.CheckoutService
	conv     *currency.Converter
	renderer *handler.Renderer
	logger   *slog.Logger
}

func NewTrackingHandler(checkout *service.CheckoutService, conv *currency.Converter, renderer *handler.Renderer, logger *slog.Logger) *TrackingHandler {
	return &TrackingHandler{checkout: checkout, conv: conv, renderer: renderer, logger: logger}
}

// Form handles GET /orders/track.
func (h *TrackingHandler) Form(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderHTTP(w, "track", BaseTemplateData(r, h.conv))
}

// Lookup handles POST /orders/track.
func (h *TrackingHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	number := r.FormValue("order_number")
	email := r.FormValue("email")

	data := BaseTemplateData(r, h.conv)
	data["OrderNumber"] = number
	data["Email"] = email

	order, err := h.checkout.TrackOrder(r.Context(), number, email)
	if err != nil {
		// Render the form again with an inline message rather than a bare
		// error page; a typo in the order number is the common case.
		data["Error"] = domain.ErrorMessage(err)
		h.renderer.RenderHTTP(w, "track", data)
		return
	}

	data["Order"] = orderView(order, h.conv)
	h.renderer.RenderHTTP(w, "track", data)
}
