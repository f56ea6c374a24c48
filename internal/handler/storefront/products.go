package storefront

import (
	"log/slog"
	"net/http"

	"github.com/duvindu/saffron/internal/currency"
	"github.com/duvindu/saffron/internal/domain"
	"github.com/duvindu/saffron/internal/handler"
)

// ProductView is a product decorated with its display price in the shopper's
// selected currency.
type ProductView struct {
	domain.Product
	DisplayPrice string
}

func productViews(products []domain.Product, conv *currency.Converter) []ProductView {
	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = ProductView{Product: p, DisplayPrice: conv.FormatCents(p.PriceCents)}
	}
	return views
}

// ProductHandler renders the catalog listing and product detail pages.
type ProductHandler struct {
	products domain.ProductStore
	conv     *currency.Converter
	renderer *handler.Renderer
	logger   *slog.Logger
}

func NewProductHandler(products domain.ProductStore, conv *currency.Converter, renderer *handler.Renderer, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{products: products, conv: conv, renderer: renderer, logger: logger}
}

// List handles GET /products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListActive(r.Context())
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	data := BaseTemplateData(r, h.conv)
	data["Products"] = productViews(products, h.conv)

	h.renderer.RenderHTTP(w, "products", data)
}

// Detail handles GET /products/{slug}.
func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	product, err := h.products.GetBySlug(r.Context(), slug)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}
	if product.Status != domain.ProductStatusActive {
		handler.RespondError(w, r, h.logger, domain.ErrProductNotFound)
		return
	}

	data := BaseTemplateData(r, h.conv)
	data["Product"] = ProductView{Product: *product, DisplayPrice: h.conv.FormatCents(product.PriceCents)}

	h.renderer.RenderHTTP(w, "product", data)
}
