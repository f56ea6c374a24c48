package domain

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Product status values.
const (
	ProductStatusActive   = "active"
	ProductStatusDraft    = "draft"
	ProductStatusArchived = "archived"
)

var (
	ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Product not found"}
	ErrDuplicateSlug   = &Error{Code: ECONFLICT, Message: "Product slug already exists"}
)

// Product is a catalog entry for a single spice. Prices are expressed in
// integer cents of the reference currency (USD); display conversion is the
// currency layer's concern.
type Product struct {
	ID               pgtype.UUID
	Name             string
	Slug             string
	ShortDescription string
	Description      string
	Origin           string
	HeatLevel        string
	PriceCents       int64
	ImageURL         string
	Status           string
	SortOrder        int32
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

// ProductFilter narrows a product listing.
type ProductFilter struct {
	Origin    *string
	HeatLevel *string
	Status    *string
}

// ProductInput carries fields for creating or updating a product.
type ProductInput struct {
	Name             string
	Slug             string
	ShortDescription string
	Description      string
	Origin           string
	HeatLevel        string
	PriceCents       int64
	ImageURL         string
	Status           string
	SortOrder        int32
}

// ProductStore provides persistence for catalog products.
type ProductStore interface {
	// ListActive returns active products ordered by sort order for the storefront.
	ListActive(ctx context.Context) ([]Product, error)

	// List returns all products matching the filter, for the admin console.
	List(ctx context.Context, filter ProductFilter) ([]Product, error)

	// GetBySlug retrieves a product by its URL slug.
	GetBySlug(ctx context.Context, slug string) (*Product, error)

	// GetByID retrieves a product by ID.
	GetByID(ctx context.Context, id pgtype.UUID) (*Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, input ProductInput) (*Product, error)

	// Update replaces the mutable fields of a product.
	Update(ctx context.Context, id pgtype.UUID, input ProductInput) (*Product, error)

	// Archive marks a product as archived so it no longer appears in the storefront.
	Archive(ctx context.Context, id pgtype.UUID) error
}
