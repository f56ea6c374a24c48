// Package worker consumes order events and performs background work the
// request path should not wait on, currently confirmation email delivery.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/duvindu/saffron/internal/currency"
	"github.com/duvindu/saffron/internal/domain"
	"github.com/duvindu/saffron/internal/email"
	"github.com/duvindu/saffron/internal/events"
	"github.com/jackc/pgx/v5/pgtype"
)

// Config holds worker configuration.
type Config struct {
	// SendTimeout bounds a single email delivery attempt.
	SendTimeout time.Duration
}

// Worker subscribes to order events and sends confirmation emails. Delivery
// is best-effort: a failed send is logged and dropped, never retried into the
// checkout path.
type Worker struct {
	orders domain.OrderStore
	emails *email.Service
	bus    events.Bus
	config Config
	logger *slog.Logger
}

// New creates a worker.
func New(orders domain.OrderStore, emails *email.Service, bus events.Bus, config Config, logger *slog.Logger) *Worker {
	if config.SendTimeout == 0 {
		config.SendTimeout = 30 * time.Second
	}
	return &Worker{
		orders: orders,
		emails: emails,
		bus:    bus,
		config: config,
		logger: logger,
	}
}

// Start subscribes to order-placed events. The returned function stops the
// worker.
func (w *Worker) Start() (stop func(), err error) {
	unsubscribe, err := w.bus.SubscribeOrderPlaced(w.handleOrderPlaced)
	if err != nil {
		return nil, err
	}
	w.logger.Info("order worker started")
	return unsubscribe, nil
}

func (w *Worker) handleOrderPlaced(event events.OrderPlaced) {
	ctx, cancel := context.WithTimeout(context.Background(), w.config.SendTimeout)
	defer cancel()

	var orderID pgtype.UUID
	if err := orderID.Scan(event.OrderID); err != nil {
		w.logger.Warn("order event has invalid order ID", "order_id", event.OrderID, "error", err)
		return
	}

	order, err := w.orders.GetByID(ctx, orderID)
	if err != nil {
		w.logger.Error("failed to load order for confirmation email",
			"order_number", event.OrderNumber, "error", err)
		return
	}

	data := email.OrderConfirmationData{
		CustomerName: order.CustomerName,
		OrderNumber:  order.OrderNumber,
		Subtotal:     currency.FormatRef(order.SubtotalCents),
		Shipping:     currency.FormatRef(order.ShippingCents),
		Total:        currency.FormatRef(order.TotalCents),
	}
	for _, item := range order.Items {
		data.Items = append(data.Items, email.OrderConfirmationItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			LineTotal: currency.FormatRef(item.LineCents),
		})
	}

	if err := w.emails.SendOrderConfirmation(ctx, order.CustomerEmail, data); err != nil {
		w.logger.Error("failed to send order confirmation",
			"order_number", order.OrderNumber, "error", err)
	}
}
