package admin

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/duvindu/saffron/internal/domain"
	"github.com/duvindu/saffron/internal/handler"
	"github.com/jackc/pgx/v5/pgtype"
)

// ProductHandler manages the catalog from the back office.
type ProductHandler struct {
	products domain.ProductStore
	renderer *handler.Renderer
	logger   *slog.Logger
}

func NewProductHandler(products domain.ProductStore, renderer *handler.Renderer, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{products: products, renderer: renderer, logger: logger}
}

// List handles GET /admin/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.ProductFilter{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}

	products, err := h.products.List(r.Context(), filter)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	h.renderer.RenderHTTP(w, "admin/products", map[string]any{
		"Products": products,
		"Status":   r.URL.Query().Get("status"),
	})
}

// NewForm handles GET /admin/products/new.
func (h *ProductHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderHTTP(w, "admin/product_form", map[string]any{
		"Product": &domain.Product{Status: domain.ProductStatusDraft},
		"IsNew":   true,
	})
}

// EditForm handles GET /admin/products/{id}/edit.
func (h *ProductHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	product, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	h.renderer.RenderHTTP(w, "admin/product_form", map[string]any{
		"Product": product,
		"IsNew":   false,
	})
}

// Create handles POST /admin/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, err := productInputFromForm(r)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	if _, err := h.products.Create(r.Context(), input); err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// Update handles POST /admin/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	input, err := productInputFromForm(r)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	if _, err := h.products.Update(r.Context(), id, input); err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// Archive handles POST /admin/products/{id}/archive.
func (h *ProductHandler) Archive(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	if err := h.products.Archive(r.Context(), id); err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func productInputFromForm(r *http.Request) (domain.ProductInput, error) {
	if err := r.ParseForm(); err != nil {
		return domain.ProductInput{}, domain.Invalid("admin.product_form", "Invalid form data")
	}

	name := strings.TrimSpace(r.FormValue("name"))
	slug := strings.TrimSpace(r.FormValue("slug"))
	if name == "" || slug == "" {
		return domain.ProductInput{}, domain.Invalid("admin.product_form", "Name and slug are required")
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return domain.ProductInput{}, domain.Invalid("admin.product_form", "Price must be a non-negative number")
	}

	status := r.FormValue("status")
	if status != domain.ProductStatusActive && status != domain.ProductStatusDraft && status != domain.ProductStatusArchived {
		return domain.ProductInput{}, domain.Invalid("admin.product_form", "Unknown status")
	}

	sortOrder, _ := strconv.Atoi(r.FormValue("sort_order"))

	return domain.ProductInput{
		Name:             name,
		Slug:             slug,
		ShortDescription: r.FormValue("short_description"),
		Description:      r.FormValue("description"),
		Origin:           r.FormValue("origin"),
		HeatLevel:        r.FormValue("heat_level"),
		PriceCents:       int64(math.Round(price * 100)),
		ImageURL:         r.FormValue("image_url"),
		Status:           status,
		SortOrder:        int32(sortOrder),
	}, nil
}

func parseUUID(raw string) (pgtype.UUID, error) {
	var id pgtype.UUID
	if err := id.Scan(raw); err != nil {
		return id, domain.Invalid("admin.parse_id", "Invalid identifier")
	}
	return id, nil
}
