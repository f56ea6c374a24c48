package storefront

import (
	"log/slog"
	"net/http"

	"github.com/duvindu/saffron/internal/currency"
	"github.com/duvindu/saffron/internal/domain"
	"github.com/duvindu/saffron/internal/handler"
)

// HomeHandler renders the landing page with a featured slice of the catalog.
type HomeHandler struct {
	products domain.ProductStore
	conv     *currency.Converter
	renderer *handler.Renderer
	logger   *slog.Logger
}

func NewHomeHandler(products domain.ProductStore, conv *currency.Converter, renderer *handler.Renderer, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{products: products, conv: conv, renderer: renderer, logger: logger}
}

func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListActive(r.Context())
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	const featuredCount = 4
	if len(products) > featuredCount {
		products = products[:featuredCount]
	}

	data := BaseTemplateData(r, h.conv)
	data["Products"] = productViews(products, h.conv)

	h.renderer.RenderHTTP(w, "home", data)
}
