// Package events carries order lifecycle events from checkout to background
// consumers. Two buses exist: an in-process bus for tests and single-node
// development, and a NATS bus for deployments with separate workers.
package events

import "time"

// OrderPlaced is published once when checkout converts a cart into an order.
type OrderPlaced struct {
	OrderID         string    `json:"order_id"`
	OrderNumber     string    `json:"order_number"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	TotalCents      int64     `json:"total_cents"`
	DisplayCurrency string    `json:"display_currency"`
	PlacedAt        time.Time `json:"placed_at"`
}

// Handler consumes an order-placed event.
type Handler func(OrderPlaced)

// Bus publishes and subscribes to order events.
type Bus interface {
	// PublishOrderPlaced emits an order-placed event. Publishing is
	// best-effort from the checkout flow's perspective; a lost event costs a
	// confirmation email, not the order.
	PublishOrderPlaced(event OrderPlaced) error

	// SubscribeOrderPlaced registers a handler for order-placed events. The
	// returned function cancels the subscription.
	SubscribeOrderPlaced(fn Handler) (unsubscribe func(), err error)

	// Close releases bus resources.
	Close()
}
