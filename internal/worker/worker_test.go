package worker_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/duvindu/saffron/internal/domain"
	"github.com/duvindu/saffron/internal/email"
	"github.com/duvindu/saffron/internal/events"
	"github.com/duvindu/saffron/internal/worker"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOrderStore serves a single canned order.
type stubOrderStore struct {
	order *domain.Order
}

func (s *stubOrderStore) Create(context.Context, *domain.Order) (*domain.Order, error) {
	panic("not used")
}

func (s *stubOrderStore) GetByID(_ context.Context, id pgtype.UUID) (*domain.Order, error) {
	if s.order != nil && s.order.ID == id {
		return s.order, nil
	}
	return nil, domain.ErrOrderNotFound
}

func (s *stubOrderStore) GetByNumber(context.Context, string, string) (*domain.Order, error) {
	panic("not used")
}

func (s *stubOrderStore) List(context.Context, domain.OrderFilter) ([]domain.Order, error) {
	panic("not used")
}

func (s *stubOrderStore) UpdateStatus(context.Context, pgtype.UUID, string) error {
	panic("not used")
}

func (s *stubOrderStore) CountByStatus(context.Context) (map[string]int64, int64, error) {
	panic("not used")
}

func testOrderID(t *testing.T) pgtype.UUID {
	t.Helper()
	var id pgtype.UUID
	require.NoError(t, id.Scan("7c9e6679-7425-40de-944b-e07fc1f90ae7"))
	return id
}

func Test_Worker_SendsConfirmationOnOrderPlaced(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sender := email.NewMockSender()
	emails := email.NewService(sender, "orders@saffron.local", "Saffron Spice Co.", "http://localhost:3000", logger)
	bus := events.NewMemoryBus()

	orderID := testOrderID(t)
	store := &stubOrderStore{order: &domain.Order{
		ID:            orderID,
		OrderNumber:   "SPC-1001",
		CustomerName:  "Jo",
		CustomerEmail: "jo@example.com",
		SubtotalCents: 9000,
		ShippingCents: 795,
		TotalCents:    9795,
		Items: []domain.OrderItem{
			{Name: "Ceylon Cinnamon Sticks", Quantity: 2, UnitPriceCents: 4500, LineCents: 9000},
		},
	}}

	w := worker.New(store, emails, bus, worker.Config{SendTimeout: time.Second}, logger)
	stop, err := w.Start()
	require.NoError(t, err)
	defer stop()

	require.NoError(t, bus.PublishOrderPlaced(events.OrderPlaced{
		OrderID:     "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		OrderNumber: "SPC-1001",
	}))

	sent := sender.Last()
	require.NotNil(t, sent, "confirmation email sent on event")
	assert.Equal(t, []string{"jo@example.com"}, sent.To)
	assert.Contains(t, sent.TextBody, "SPC-1001")
	assert.Contains(t, sent.TextBody, "$97.95", "amounts rendered in the reference currency")
}

func Test_Worker_UnknownOrderDropsEvent(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sender := email.NewMockSender()
	emails := email.NewService(sender, "orders@saffron.local", "Saffron Spice Co.", "http://localhost:3000", logger)
	bus := events.NewMemoryBus()

	w := worker.New(&stubOrderStore{}, emails, bus, worker.Config{}, logger)
	stop, err := w.Start()
	require.NoError(t, err)
	defer stop()

	require.NoError(t, bus.PublishOrderPlaced(events.OrderPlaced{
		OrderID:     "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		OrderNumber: "SPC-MISSING",
	}))

	assert.Nil(t, sender.Last(), "no email for an order that cannot be loaded")
}

func Test_Worker_StopUnsubscribes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sender := email.NewMockSender()
	emails := email.NewService(sender, "orders@saffron.local", "Saffron Spice Co.", "http://localhost:3000", logger)
	bus := events.NewMemoryBus()

	orderID := testOrderID(t)
	store := &stubOrderStore{order: &domain.Order{ID: orderID, OrderNumber: "SPC-1", CustomerEmail: "a@b.c"}}

	w := worker.New(store, emails, bus, worker.Config{}, logger)
	stop, err := w.Start()
	require.NoError(t, err)
	stop()

	require.NoError(t, bus.PublishOrderPlaced(events.OrderPlaced{OrderID: "7c9e6679-7425-40de-944b-e07fc1f90ae7"}))
	assert.Nil(t, sender.Last(), "stopped worker no longer consumes events")
}
