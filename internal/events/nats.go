package events

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
)

// NATSBus is a Bus backed by a NATS subject, for deployments where workers
// run separately from the web process.
type NATSBus struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

var _ Bus = (*NATSBus)(nil)

// NewNATSBus connects to the NATS server at url and publishes order events on
// subject.
func NewNATSBus(url, subject string, logger *slog.Logger) (*NATSBus, error) {
	conn, err := nats.Connect(url,
		nats.Name("saffron"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSBus{conn: conn, subject: subject, logger: logger}, nil
}

func (b *NATSBus) PublishOrderPlaced(event OrderPlaced) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}
	if err := b.conn.Publish(b.subject, data); err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}
	return nil
}

func (b *NATSBus) SubscribeOrderPlaced(fn Handler) (func(), error) {
	sub, err := b.conn.Subscribe(b.subject, func(msg *nats.Msg) {
		var event OrderPlaced
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			b.logger.Warn("dropping malformed order event", "subject", b.subject, "error", err)
			return
		}
		fn(event)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", b.subject, err)
	}

	return func() {
		if err := sub.Unsubscribe(); err != nil {
			b.logger.Warn("failed to unsubscribe", "subject", b.subject, "error", err)
		}
	}, nil
}

func (b *NATSBus) Close() {
	b.conn.Close()
}
