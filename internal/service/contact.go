package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/duvindu/saffron/internal/domain"
	"github.com/duvindu/saffron/internal/email"
	"github.com/go-playground/validator/v10"
)

// MessageService handles storefront contact-form submissions.
type MessageService struct {
	messages domain.MessageStore
	emails   *email.Service
	validate *validator.Validate
	logger   *slog.Logger
}

// NewMessageService creates a message service. emails may be nil, in which
// case no acknowledgement is sent.
func NewMessageService(messages domain.MessageStore, emails *email.Service, logger *slog.Logger) *MessageService {
	return &MessageService{
		messages: messages,
		emails:   emails,
		validate: validator.New(),
		logger:   logger,
	}
}

// Submit validates and persists a contact message, then sends a best-effort
// acknowledgement email.
func (s *MessageService) Submit(ctx context.Context, input domain.MessageInput) (*domain.Message, error) {
	if err := s.validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, domain.Internal(err, "contact.submit", "validation failed")
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = fieldMessage(fe)
		}
		return nil, &domain.ValidationError{Op: "contact.submit", Fields: fields}
	}

	msg, err := s.messages.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	if s.emails != nil {
		if err := s.emails.SendContactAck(ctx, msg.Email, msg.Name, msg.Subject); err != nil {
			s.logger.Error("failed to send contact acknowledgement", "email", msg.Email, "error", err)
		}
	}

	return msg, nil
}
