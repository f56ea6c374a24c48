// Package billing abstracts payment processing for checkout.
package billing

import (
	"context"

	"github.com/duvindu/saffron/internal/domain"
)

var (
	ErrPaymentFailed       = &domain.Error{Code: domain.EPAYMENT, Message: "Payment could not be processed"}
	ErrIntentNotFound      = &domain.Error{Code: domain.ENOTFOUND, Message: "Payment intent not found"}
	ErrPaymentNotSucceeded = &domain.Error{Code: domain.EPAYMENT, Message: "Payment has not succeeded"}
)

// Provider defines the interface for payment processing. Implementations can
// use Stripe, PayPal, Square, etc.
type Provider interface {
	// CreatePaymentIntent creates a payment intent for a one-time charge and
	// returns it with the client secret for frontend confirmation.
	CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error)

	// GetPaymentIntent retrieves an existing payment intent, used to verify
	// payment before creating an order.
	GetPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error)
}

// CreatePaymentIntentParams contains parameters for creating a payment intent.
type CreatePaymentIntentParams struct {
	// AmountCents is the amount in the smallest currency unit.
	AmountCents int64

	// Currency code (ISO 4217, lowercase) - e.g. "usd".
	Currency string

	// CustomerEmail prefills the email in the payment sheet and receipt.
	CustomerEmail string

	// Description appears on the customer's statement and in the dashboard.
	Description string

	// Metadata for filtering and reporting (order number, session).
	Metadata map[string]string
}

// PaymentIntent represents an in-flight or completed payment.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	AmountCents  int64
	Currency     string
	Status       string
}

// Succeeded reports whether the intent has completed successfully.
func (p *PaymentIntent) Succeeded() bool {
	return p.Status == "succeeded"
}
