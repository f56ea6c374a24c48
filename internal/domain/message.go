package domain

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

var ErrMessageNotFound = &Error{Code: ENOTFOUND, Message: "Message not found"}

// Message is a contact-form submission handled from the admin console.
type Message struct {
	ID        pgtype.UUID
	Name      string
	Email     string
	Subject   string
	Body      string
	Handled   bool
	CreatedAt pgtype.Timestamptz
}

// MessageInput carries a new contact-form submission.
type MessageInput struct {
	Name    string `validate:"required,max=120"`
	Email   string `validate:"required,email"`
	Subject string `validate:"required,max=200"`
	Body    string `validate:"required,max=4000"`
}

// MessageStore provides persistence for contact messages.
type MessageStore interface {
	Create(ctx context.Context, input MessageInput) (*Message, error)
	List(ctx context.Context, handled *bool) ([]Message, error)
	MarkHandled(ctx context.Context, id pgtype.UUID) error
}
