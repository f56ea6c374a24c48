package postgres

import (
	"context"
	"errors"

	"github.com/duvindu/saffron/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `id, order_number, customer_name, customer_email,
shipping_line1, shipping_line2, shipping_city, shipping_country,
subtotal_cents, shipping_cents, total_cents, display_currency, status,
payment_intent_id, created_at, updated_at`

// OrderStore implements domain.OrderStore using PostgreSQL.
type OrderStore struct {
	pool *pgxpool.Pool
}

var _ domain.OrderStore = (*OrderStore)(nil)

// NewOrderStore creates a new PostgreSQL-backed order store.
func NewOrderStore(pool *pgxpool.Pool) *OrderStore {
	return &OrderStore{pool: pool}
}

// Create persists an order with its items in one transaction.
func (s *OrderStore) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, domain.Internal(err, "order.create", "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	q := `
INSERT INTO orders (order_number, customer_name, customer_email,
                    shipping_line1, shipping_line2, shipping_city, shipping_country,
                    subtotal_cents, shipping_cents, total_cents,
                    display_currency, status, payment_intent_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING ` + orderColumns

	created, err := scanOrder(tx.QueryRow(ctx, q,
		order.OrderNumber, order.CustomerName, order.CustomerEmail,
		order.ShippingLine1, order.ShippingLine2, order.ShippingCity, order.ShippingCountry,
		order.SubtotalCents, order.ShippingCents, order.TotalCents,
		order.DisplayCurrency, order.Status, order.PaymentIntentID,
	))
	if err != nil {
		return nil, domain.Internal(err, "order.create", "failed to insert order")
	}

	itemQ := `
INSERT INTO order_items (order_id, product_id, name, unit_price_cents, quantity, line_cents, position)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

	for i, item := range order.Items {
		var itemID pgtype.UUID
		if err := tx.QueryRow(ctx, itemQ,
			created.ID, item.ProductID, item.Name,
			item.UnitPriceCents, item.Quantity, item.LineCents, i,
		).Scan(&itemID); err != nil {
			return nil, domain.Internal(err, "order.create", "failed to insert order item")
		}
		item.ID = itemID
		item.OrderID = created.ID
		created.Items = append(created.Items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.Internal(err, "order.create", "failed to commit order")
	}
	return created, nil
}

// GetByID retrieves an order with its items.
func (s *OrderStore) GetByID(ctx context.Context, id pgtype.UUID) (*domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(s.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, domain.Internal(err, "order.get_by_id", "failed to get order")
	}

	if err := s.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetByNumber retrieves an order by order number and customer email. Both
// must match; this keeps the tracking lookup from leaking other shoppers'
// orders.
func (s *OrderStore) GetByNumber(ctx context.Context, orderNumber, email string) (*domain.Order, error) {
	q := `SELECT ` + orderColumns + `
FROM orders
WHERE order_number = $1 AND lower(customer_email) = lower($2)`

	order, err := scanOrder(s.pool.QueryRow(ctx, q, orderNumber, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, domain.Internal(err, "order.get_by_number", "failed to get order")
	}

	if err := s.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// List returns orders matching the filter, newest first. Items are not
// loaded; listings only need header fields.
func (s *OrderStore) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	q := `SELECT ` + orderColumns + `
FROM orders
WHERE ($1::text IS NULL OR status = $1)
  AND ($2::text IS NULL OR lower(customer_email) = lower($2))
ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, q, filter.Status, filter.Email)
	if err != nil {
		return nil, domain.Internal(err, "order.list", "failed to list orders")
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, domain.Internal(err, "order.list", "failed to scan order row")
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "order.list", "order row iteration failed")
	}
	return orders, nil
}

// UpdateStatus sets the order status.
func (s *OrderStore) UpdateStatus(ctx context.Context, id pgtype.UUID, status string) error {
	if !domain.ValidOrderStatus(status) {
		return domain.ErrInvalidStatus
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return domain.Internal(err, "order.update_status", "failed to update order status")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// CountByStatus returns order counts keyed by status plus total revenue in
// cents for orders that have been paid or progressed beyond paid.
func (s *OrderStore) CountByStatus(ctx context.Context) (map[string]int64, int64, error) {
	rows, err := s.pool.Query(ctx, `SELECT status, count(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, 0, domain.Internal(err, "order.count_by_status", "failed to count orders")
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, 0, domain.Internal(err, "order.count_by_status", "failed to scan count row")
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.Internal(err, "order.count_by_status", "count row iteration failed")
	}

	var revenue int64
	err = s.pool.QueryRow(ctx, `
SELECT COALESCE(sum(total_cents), 0)
FROM orders
WHERE status IN ('paid', 'shipped', 'delivered')`).Scan(&revenue)
	if err != nil {
		return nil, 0, domain.Internal(err, "order.count_by_status", "failed to sum revenue")
	}

	return counts, revenue, nil
}

func (s *OrderStore) loadItems(ctx context.Context, order *domain.Order) error {
	rows, err := s.pool.Query(ctx, `
SELECT id, order_id, product_id, name, unit_price_cents, quantity, line_cents
FROM order_items
WHERE order_id = $1
ORDER BY position`, order.ID)
	if err != nil {
		return domain.Internal(err, "order.load_items", "failed to load order items")
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name,
			&item.UnitPriceCents, &item.Quantity, &item.LineCents); err != nil {
			return domain.Internal(err, "order.load_items", "failed to scan order item")
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerEmail,
		&o.ShippingLine1, &o.ShippingLine2, &o.ShippingCity, &o.ShippingCountry,
		&o.SubtotalCents, &o.ShippingCents, &o.TotalCents, &o.DisplayCurrency,
		&o.Status, &o.PaymentIntentID, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
