package domain

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Customer is a lightweight record derived from placed orders. There is no
// account system here; identity and authentication stay with the external
// provider.
type Customer struct {
	ID          pgtype.UUID
	Name        string
	Email       string
	OrderCount  int64
	TotalCents  int64
	FirstSeenAt pgtype.Timestamptz
	LastSeenAt  pgtype.Timestamptz
}

// CustomerStore provides persistence for customer records.
type CustomerStore interface {
	// RecordOrder upserts the customer row for an order's email, bumping
	// order count and lifetime spend.
	RecordOrder(ctx context.Context, name, email string, totalCents int64) error

	// List returns customers ordered by most recent order.
	List(ctx context.Context) ([]Customer, error)
}
