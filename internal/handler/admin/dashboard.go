package admin

import (
	"log/slog"
	"net/http"

	"github.com/duvindu/saffron/internal/currency"
	"github.com/duvindu/saffron/internal/domain"
	"github.com/duvindu/saffron/internal/handler"
)

// DashboardHandler renders the admin landing page: order counts by status,
// revenue, and recent orders.
type DashboardHandler struct {
	orders   domain.OrderStore
	messages domain.MessageStore
	renderer *handler.Renderer
	logger   *slog.Logger
}

func NewDashboardHandler(orders domain.OrderStore, messages domain.MessageStore, renderer *handler.Renderer, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{orders: orders, messages: messages, renderer: renderer, logger: logger}
}

func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	counts, revenueCents, err := h.orders.CountByStatus(ctx)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	recent, err := h.orders.List(ctx, domain.OrderFilter{})
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}
	if len(recent) > 10 {
		recent = recent[:10]
	}

	unhandled := false
	pendingMessages, err := h.messages.List(ctx, &unhandled)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	h.renderer.RenderHTTP(w, "admin/dashboard", map[string]any{
		"Counts":          counts,
		"Revenue":         currency.FormatRef(revenueCents),
		"RecentOrders":    recent,
		"PendingMessages": len(pendingMessages),
	})
}
