package domain

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Order status values. Orders move forward through these states; the admin
// console drives the transitions.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

var (
	ErrOrderNotFound = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrInvalidStatus = &Error{Code: EINVALID, Message: "Invalid order status"}
)

// ValidOrderStatus reports whether s is a recognized order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is a placed customer order. Monetary amounts are cents in the
// reference currency; DisplayCurrency records what the shopper was looking at
// when they checked out (display only, never used for arithmetic).
type Order struct {
	ID              pgtype.UUID
	OrderNumber     string
	CustomerName    string
	CustomerEmail   string
	ShippingLine1   string
	ShippingLine2   string
	ShippingCity    string
	ShippingCountry string
	SubtotalCents   int64
	ShippingCents   int64
	TotalCents      int64
	DisplayCurrency string
	Status          string
	PaymentIntentID string
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz

	Items []OrderItem
}

// OrderItem is one line of a placed order, copied from the cart at placement
// time so later catalog edits don't rewrite order history.
type OrderItem struct {
	ID             pgtype.UUID
	OrderID        pgtype.UUID
	ProductID      string
	Name           string
	UnitPriceCents int64
	Quantity       int32
	LineCents      int64
}

// OrderFilter narrows an order listing.
type OrderFilter struct {
	Status *string
	Email  *string
}

// OrderStore provides persistence for orders.
type OrderStore interface {
	// Create persists an order with its items in one transaction. Item
	// order is preserved; reads return lines as the shopper added them.
	Create(ctx context.Context, order *Order) (*Order, error)

	// GetByID retrieves an order with its items.
	GetByID(ctx context.Context, id pgtype.UUID) (*Order, error)

	// GetByNumber retrieves an order by order number and customer email.
	// Both must match; this is the storefront tracking lookup.
	GetByNumber(ctx context.Context, orderNumber, email string) (*Order, error)

	// List returns orders matching the filter, newest first.
	List(ctx context.Context, filter OrderFilter) ([]Order, error)

	// UpdateStatus sets the order status.
	UpdateStatus(ctx context.Context, id pgtype.UUID, status string) error

	// CountByStatus returns order counts keyed by status plus total revenue
	// in cents for paid-and-beyond orders. Used by the admin dashboard.
	CountByStatus(ctx context.Context) (map[string]int64, int64, error)
}
