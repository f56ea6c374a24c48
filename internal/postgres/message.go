package postgres

import (
	"context"

	"github.com/duvindu/saffron/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageStore implements domain.MessageStore using PostgreSQL.
type MessageStore struct {
	pool *pgxpool.Pool
}

var _ domain.MessageStore = (*MessageStore)(nil)

// NewMessageStore creates a new PostgreSQL-backed message store.
func NewMessageStore(pool *pgxpool.Pool) *MessageStore {
	return &MessageStore{pool: pool}
}

// Create inserts a new contact-form submission.
func (s *MessageStore) Create(ctx context.Context, input domain.MessageInput) (*domain.Message, error) {
	q := `
INSERT INTO messages (name, email, subject, body)
VALUES ($1, $2, $3, $4)
RETURNING id, name, email, subject, body, handled, created_at`

	var m domain.Message
	err := s.pool.QueryRow(ctx, q, input.Name, input.Email, input.Subject, input.Body).Scan(
		&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.Handled, &m.CreatedAt)
	if err != nil {
		return nil, domain.Internal(err, "message.create", "failed to create message")
	}
	return &m, nil
}

// List returns messages, optionally filtered by handled state, newest first.
func (s *MessageStore) List(ctx context.Context, handled *bool) ([]domain.Message, error) {
	q := `
SELECT id, name, email, subject, body, handled, created_at
FROM messages
WHERE ($1::boolean IS NULL OR handled = $1)
ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, q, handled)
	if err != nil {
		return nil, domain.Internal(err, "message.list", "failed to list messages")
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.Handled, &m.CreatedAt); err != nil {
			return nil, domain.Internal(err, "message.list", "failed to scan message row")
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "message.list", "message row iteration failed")
	}
	return messages, nil
}

// MarkHandled flags a message as handled.
func (s *MessageStore) MarkHandled(ctx context.Context, id pgtype.UUID) error {
	tag, err := s.pool.Exec(ctx, `UPDATE messages SET handled = true WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "message.mark_handled", "failed to mark message handled")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMessageNotFound
	}
	return nil
}
