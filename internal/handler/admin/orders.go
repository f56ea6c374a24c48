package admin

import (
	"log/slog"
	"net/http"

	"github.com/duvindu/saffron/internal/currency"
	"github.com/duvindu/saffron/internal/domain"
	"github.com/duvindu/saffron/internal/handler"
)

// OrderHandler manages orders from the back office. All money here is shown
// in the reference currency; the shopper-facing display currency only
// matters on the storefront.
type OrderHandler struct {
	orders   domain.OrderStore
	renderer *handler.Renderer
	logger   *slog.Logger
}

func NewOrderHandler(orders domain.OrderStore, renderer *handler.Renderer, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, renderer: renderer, logger: logger}
}

// List handles GET /admin/orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.OrderFilter{}
	if status := r.URL.Query().Get("status"); status != "" {
		if !domain.ValidOrderStatus(status) {
			handler.RespondError(w, r, h.logger, domain.Invalid("admin.orders", "Unknown order status"))
			return
		}
		filter.Status = &status
	}
	if email := r.URL.Query().Get("email"); email != "" {
		filter.Email = &email
	}

	orders, err := h.orders.List(r.Context(), filter)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	h.renderer.RenderHTTP(w, "admin/orders", map[string]any{
		"Orders":   orders,
		"Status":   r.URL.Query().Get("status"),
		"Statuses": orderStatuses(),
	})
}

// Detail handles GET /admin/orders/{id}.
func (h *OrderHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	order, err := h.orders.GetByID(r.Context(), id)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	h.renderer.RenderHTTP(w, "admin/order_detail", map[string]any{
		"Order":    order,
		"Subtotal": currency.FormatRef(order.SubtotalCents),
		"Shipping": currency.FormatRef(order.ShippingCents),
		"Total":    currency.FormatRef(order.TotalCents),
		"Statuses": orderStatuses(),
	})
}

// UpdateStatus handles POST /admin/orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	status := r.FormValue("status")
	if err := h.orders.UpdateStatus(r.Context(), id, status); err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	http.Redirect(w, r, "/admin/orders/"+r.PathValue("id"), http.StatusSeeOther)
}

func orderStatuses() []string {
	return []string{
		domain.OrderStatusPending,
		domain.OrderStatusPaid,
		domain.OrderStatusShipped,
		domain.OrderStatusDelivered,
		domain.OrderStatusCancelled,
	}
}
