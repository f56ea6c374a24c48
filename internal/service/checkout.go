// Package service holds the business logic that connects the cart and
// currency cores to persistence, payment, shipping, and events.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/duvindu/saffron/internal/billing"
	"github.com/duvindu/saffron/internal/cart"
	"github.com/duvindu/saffron/internal/domain"
	"github.com/duvindu/saffron/internal/events"
	"github.com/duvindu/saffron/internal/shipping"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CheckoutInput is the contact and shipping form collected at checkout.
type CheckoutInput struct {
	Name         string `validate:"required,max=120"`
	Email        string `validate:"required,email"`
	Line1        string `validate:"required,max=200"`
	Line2        string `validate:"omitempty,max=200"`
	City         string `validate:"required,max=120"`
	Country      string `validate:"required,iso3166_1_alpha2"`
	ShippingCode string `validate:"required"`
}

// Quote is the priced summary shown before payment.
type Quote struct {
	SubtotalCents int64
	ShippingCents int64
	TotalCents    int64
	Rate          shipping.Rate
}

// CheckoutService drives the storefront checkout flow: quote, payment intent,
// order placement. It owns no cart state; carts are passed in per call.
type CheckoutService struct {
	orders    domain.OrderStore
	customers domain.CustomerStore
	billing   billing.Provider
	shipping  shipping.Provider
	bus       events.Bus
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewCheckoutService creates a checkout service.
func NewCheckoutService(
	orders domain.OrderStore,
	customers domain.CustomerStore,
	billingProvider billing.Provider,
	shippingProvider shipping.Provider,
	bus events.Bus,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		orders:    orders,
		customers: customers,
		billing:   billingProvider,
		shipping:  shippingProvider,
		bus:       bus,
		validate:  validator.New(),
		logger:    logger,
	}
}

// ShippingRates returns the shipping options for a destination country.
func (s *CheckoutService) ShippingRates(ctx context.Context, country string) ([]shipping.Rate, error) {
	rates, err := s.shipping.GetRates(ctx, country)
	if err != nil {
		return nil, domain.Internal(err, "checkout.shipping_rates", "failed to get shipping rates")
	}
	return rates, nil
}

// QuoteCart prices the cart with the selected shipping option.
func (s *CheckoutService) QuoteCart(ctx context.Context, c *cart.Cart, country, shippingCode string) (*Quote, error) {
	if c.Count() == 0 {
		return nil, ErrEmptyCart
	}

	rate, err := s.shipping.GetRate(ctx, country, shippingCode)
	if err != nil {
		if errors.Is(err, shipping.ErrNoRates) {
			return nil, ErrUnknownShippingRate
		}
		return nil, domain.Internal(err, "checkout.quote", "failed to get shipping rate")
	}

	subtotal := c.SubtotalCents()
	return &Quote{
		SubtotalCents: subtotal,
		ShippingCents: rate.CostCents,
		TotalCents:    subtotal + rate.CostCents,
		Rate:          *rate,
	}, nil
}

// BeginPayment validates the checkout form, prices the cart, and creates a
// payment intent for the total. The returned intent's client secret goes to
// the payment sheet on the frontend.
func (s *CheckoutService) BeginPayment(ctx context.Context, c *cart.Cart, input CheckoutInput) (*billing.PaymentIntent, *Quote, error) {
	if err := s.validateInput(input); err != nil {
		return nil, nil, err
	}

	quote, err := s.QuoteCart(ctx, c, input.Country, input.ShippingCode)
	if err != nil {
		return nil, nil, err
	}

	intent, err := s.billing.CreatePaymentIntent(ctx, billing.CreatePaymentIntentParams{
		AmountCents:   quote.TotalCents,
		Currency:      "usd",
		CustomerEmail: input.Email,
		Description:   "Saffron Spice Co. order",
		Metadata: map[string]string{
			"cart_count": fmt.Sprintf("%d", c.Count()),
		},
	})
	if err != nil {
		return nil, nil, err
	}

	return intent, quote, nil
}

// PlaceOrder verifies the payment and converts the cart into a persisted
// order. On success the cart is cleared and an order-placed event is
// published; both the customer upsert and the event publish are best-effort.
func (s *CheckoutService) PlaceOrder(ctx context.Context, c *cart.Cart, input CheckoutInput, paymentIntentID, displayCurrency string) (*domain.Order, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	quote, err := s.QuoteCart(ctx, c, input.Country, input.ShippingCode)
	if err != nil {
		return nil, err
	}

	intent, err := s.billing.GetPaymentIntent(ctx, paymentIntentID)
	if err != nil {
		return nil, err
	}
	if !intent.Succeeded() {
		return nil, ErrPaymentNotSucceeded
	}
	if intent.AmountCents != quote.TotalCents {
		return nil, ErrAmountMismatch
	}

	order := &domain.Order{
		OrderNumber:     newOrderNumber(),
		CustomerName:    input.Name,
		CustomerEmail:   input.Email,
		ShippingLine1:   input.Line1,
		ShippingLine2:   input.Line2,
		ShippingCity:    input.City,
		ShippingCountry: input.Country,
		SubtotalCents:   quote.SubtotalCents,
		ShippingCents:   quote.ShippingCents,
		TotalCents:      quote.TotalCents,
		DisplayCurrency: displayCurrency,
		Status:          domain.OrderStatusPaid,
		PaymentIntentID: intent.ID,
	}
	for _, item := range c.Items() {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:      item.ProductID,
			Name:           item.Name,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       int32(item.Quantity),
			LineCents:      item.UnitPriceCents * int64(item.Quantity),
		})
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	if err := s.customers.RecordOrder(ctx, created.CustomerName, created.CustomerEmail, created.TotalCents); err != nil {
		s.logger.Error("failed to record customer", "order_number", created.OrderNumber, "error", err)
	}

	c.Clear()

	if err := s.bus.PublishOrderPlaced(events.OrderPlaced{
		OrderID:         uuidString(created.ID.Bytes),
		OrderNumber:     created.OrderNumber,
		CustomerName:    created.CustomerName,
		CustomerEmail:   created.CustomerEmail,
		TotalCents:      created.TotalCents,
		DisplayCurrency: created.DisplayCurrency,
		PlacedAt:        time.Now().UTC(),
	}); err != nil {
		s.logger.Error("failed to publish order event", "order_number", created.OrderNumber, "error", err)
	}

	return created, nil
}

// TrackOrder looks up an order for the storefront tracking page. Both the
// order number and the email must match.
func (s *CheckoutService) TrackOrder(ctx context.Context, orderNumber, email string) (*domain.Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	email = strings.TrimSpace(email)
	if orderNumber == "" || email == "" {
		return nil, domain.Invalid("checkout.track", "Order number and email are required")
	}
	return s.orders.GetByNumber(ctx, orderNumber, email)
}

func (s *CheckoutService) validateInput(input CheckoutInput) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Internal(err, "checkout.validate", "validation failed")
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = fieldMessage(fe)
	}
	return &domain.ValidationError{Op: "checkout.validate", Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "iso3166_1_alpha2":
		return "Must be a two-letter country code"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	default:
		return "Invalid value"
	}
}

// newOrderNumber generates an order number like SPC-20260830-4F2A. The date
// prefix keeps support conversations sane; the suffix keeps it unguessable
// enough for the tracking lookup's second factor (email) to matter.
func newOrderNumber() string {
	suffix := strings.ToUpper(uuid.New().String()[:4])
	return fmt.Sprintf("SPC-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}

func uuidString(b [16]byte) string {
	id, err := uuid.FromBytes(b[:])
	if err != nil {
		return ""
	}
	return id.String()
}
