package postgres

import (
	"context"

	"github.com/duvindu/saffron/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CustomerStore implements domain.CustomerStore using PostgreSQL.
type CustomerStore struct {
	pool *pgxpool.Pool
}

var _ domain.CustomerStore = (*CustomerStore)(nil)

// NewCustomerStore creates a new PostgreSQL-backed customer store.
func NewCustomerStore(pool *pgxpool.Pool) *CustomerStore {
	return &CustomerStore{pool: pool}
}

// RecordOrder upserts the customer row for an order's email, bumping order
// count and lifetime spend.
func (s *CustomerStore) RecordOrder(ctx context.Context, name, email string, totalCents int64) error {
	q := `
INSERT INTO customers (name, email, order_count, total_cents)
VALUES ($1, lower($2), 1, $3)
ON CONFLICT (email) DO UPDATE
SET name         = EXCLUDED.name,
    order_count  = customers.order_count + 1,
    total_cents  = customers.total_cents + EXCLUDED.total_cents,
    last_seen_at = now()`

	if _, err := s.pool.Exec(ctx, q, name, email, totalCents); err != nil {
		return domain.Internal(err, "customer.record_order", "failed to record customer order")
	}
	return nil
}

// List returns customers ordered by most recent order.
func (s *CustomerStore) List(ctx context.Context) ([]domain.Customer, error) {
	rows, err := s.pool.Query(ctx, `
SELECT id, name, email, order_count, total_cents, first_seen_at, last_seen_at
FROM customers
ORDER BY last_seen_at DESC`)
	if err != nil {
		return nil, domain.Internal(err, "customer.list", "failed to list customers")
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.OrderCount, &c.TotalCents,
			&c.FirstSeenAt, &c.LastSeenAt); err != nil {
			return nil, domain.Internal(err, "customer.list", "failed to scan customer row")
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "customer.list", "customer row iteration failed")
	}
	return customers, nil
}
