// Package postgres implements the domain store interfaces with raw SQL over
// a pgx connection pool.
package postgres

import (
	"context"
	"errors"

	"github.com/duvindu/saffron/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `id, name, slug, short_description, description, origin,
heat_level, price_cents, image_url, status, sort_order, created_at, updated_at`

// ProductStore implements domain.ProductStore using PostgreSQL.
type ProductStore struct {
	pool *pgxpool.Pool
}

var _ domain.ProductStore = (*ProductStore)(nil)

// NewProductStore creates a new PostgreSQL-backed product store.
func NewProductStore(pool *pgxpool.Pool) *ProductStore {
	return &ProductStore{pool: pool}
}

// ListActive returns active products ordered by sort order for the storefront.
func (s *ProductStore) ListActive(ctx context.Context) ([]domain.Product, error) {
	q := `SELECT ` + productColumns + `
FROM products
WHERE status = 'active'
ORDER BY sort_order, name`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, domain.Internal(err, "product.list_active", "failed to list products")
	}
	defer rows.Close()

	return scanProducts(rows, "product.list_active")
}

// List returns all products matching the filter, for the admin console.
func (s *ProductStore) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	q := `SELECT ` + productColumns + `
FROM products
WHERE ($1::text IS NULL OR origin = $1)
  AND ($2::text IS NULL OR heat_level = $2)
  AND ($3::text IS NULL OR status = $3)
ORDER BY sort_order, name`

	rows, err := s.pool.Query(ctx, q, filter.Origin, filter.HeatLevel, filter.Status)
	if err != nil {
		return nil, domain.Internal(err, "product.list", "failed to list products")
	}
	defer rows.Close()

	return scanProducts(rows, "product.list")
}

// GetBySlug retrieves a product by its URL slug.
func (s *ProductStore) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`

	p, err := scanProduct(s.pool.QueryRow(ctx, q, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, "product.get_by_slug", "failed to get product")
	}
	return p, nil
}

// GetByID retrieves a product by ID.
func (s *ProductStore) GetByID(ctx context.Context, id pgtype.UUID) (*domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(s.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, "product.get_by_id", "failed to get product")
	}
	return p, nil
}

// Create inserts a new product.
func (s *ProductStore) Create(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	q := `
INSERT INTO products (name, slug, short_description, description, origin,
                      heat_level, price_cents, image_url, status, sort_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + productColumns

	p, err := scanProduct(s.pool.QueryRow(ctx, q,
		input.Name, input.Slug, input.ShortDescription, input.Description,
		input.Origin, input.HeatLevel, input.PriceCents, input.ImageURL,
		input.Status, input.SortOrder,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateSlug
		}
		return nil, domain.Internal(err, "product.create", "failed to create product")
	}
	return p, nil
}

// Update replaces the mutable fields of a product.
func (s *ProductStore) Update(ctx context.Context, id pgtype.UUID, input domain.ProductInput) (*domain.Product, error) {
	q := `
UPDATE products
SET name = $2, slug = $3, short_description = $4, description = $5,
    origin = $6, heat_level = $7, price_cents = $8, image_url = $9,
    status = $10, sort_order = $11, updated_at = now()
WHERE id = $1
RETURNING ` + productColumns

	p, err := scanProduct(s.pool.QueryRow(ctx, q, id,
		input.Name, input.Slug, input.ShortDescription, input.Description,
		input.Origin, input.HeatLevel, input.PriceCents, input.ImageURL,
		input.Status, input.SortOrder,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateSlug
		}
		return nil, domain.Internal(err, "product.update", "failed to update product")
	}
	return p, nil
}

// Archive marks a product as archived so it no longer appears in the storefront.
func (s *ProductStore) Archive(ctx context.Context, id pgtype.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE products SET status = 'archived', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "product.archive", "failed to archive product")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.ShortDescription, &p.Description,
		&p.Origin, &p.HeatLevel, &p.PriceCents, &p.ImageURL, &p.Status,
		&p.SortOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProducts(rows pgx.Rows, op string) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.Internal(err, op, "failed to scan product row")
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, op, "product row iteration failed")
	}
	return products, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
