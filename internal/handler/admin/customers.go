package admin

import (
	"log/slog"
	"net/http"

	"github.com/duvindu/saffron/internal/currency"
	"github.com/duvindu/saffron/internal/domain"
	"github.com/duvindu/saffron/internal/handler"
)

// CustomerHandler lists the customers derived from placed orders.
type CustomerHandler struct {
	customers domain.CustomerStore
	renderer  *handler.Renderer
	logger    *slog.Logger
}

func NewCustomerHandler(customers domain.CustomerStore, renderer *handler.Renderer, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{customers: customers, renderer: renderer, logger: logger}
}

// List handles GET /admin/customers.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.List(r.Context())
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	type customerView struct {
		domain.Customer
		DisplaySpent string
	}
	views := make([]customerView, len(customers))
	for i, c := range customers {
		views[i] = customerView{Customer: c, DisplaySpent: currency.FormatRef(c.TotalCents)}
	}

	h.renderer.RenderHTTP(w, "admin/customers", map[string]any{
		"Customers": views,
	})
}
