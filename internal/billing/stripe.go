package billing

import (
	"context"
	"errors"
	"strings"

	"github.com/duvindu/saffron/internal/domain"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// StripeProvider implements Provider using Stripe.
type StripeProvider struct {
	apiKey string
}

var _ Provider = (*StripeProvider)(nil)

// NewStripeProvider creates a new Stripe billing provider.
func NewStripeProvider(apiKey string) (*StripeProvider, error) {
	if apiKey == "" {
		return nil, domain.Invalid("billing.new_stripe", "Stripe API key is required")
	}
	stripe.Key = apiKey
	return &StripeProvider{apiKey: apiKey}, nil
}

// IsTestMode reports whether the configured key is a test-mode key.
func (s *StripeProvider) IsTestMode() bool {
	return strings.HasPrefix(s.apiKey, "sk_test_")
}

// CreatePaymentIntent creates a Stripe payment intent.
func (s *StripeProvider) CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error) {
	piParams := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(params.AmountCents),
		Currency: stripe.String(params.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if params.CustomerEmail != "" {
		piParams.ReceiptEmail = stripe.String(params.CustomerEmail)
	}
	if params.Description != "" {
		piParams.Description = stripe.String(params.Description)
	}
	for k, v := range params.Metadata {
		piParams.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(piParams)
	if err != nil {
		return nil, domain.WrapError(err, domain.EPAYMENT, "billing.create_intent", "Payment could not be processed")
	}

	return mapIntent(pi), nil
}

// GetPaymentIntent retrieves a Stripe payment intent.
func (s *StripeProvider) GetPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	pi, err := paymentintent.Get(id, &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}})
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return nil, ErrIntentNotFound
		}
		return nil, domain.Internal(err, "billing.get_intent", "failed to get payment intent")
	}

	return mapIntent(pi), nil
}

func mapIntent(pi *stripe.PaymentIntent) *PaymentIntent {
	return &PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		AmountCents:  pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
	}
}
