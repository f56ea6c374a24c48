package billing

import (
	"context"
	"fmt"
	"sync"
)

// MockProvider is an in-memory Provider for tests and local development.
// Created intents succeed immediately unless FailNext is set.
type MockProvider struct {
	mu       sync.Mutex
	intents  map[string]*PaymentIntent
	sequence int

	// FailNext makes the next CreatePaymentIntent call fail.
	FailNext bool
}

var _ Provider = (*MockProvider)(nil)

// NewMockProvider creates an empty mock provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{intents: make(map[string]*PaymentIntent)}
}

func (m *MockProvider) CreatePaymentIntent(_ context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailNext {
		m.FailNext = false
		return nil, ErrPaymentFailed
	}

	m.sequence++
	pi := &PaymentIntent{
		ID:           fmt.Sprintf("pi_mock_%d", m.sequence),
		ClientSecret: fmt.Sprintf("pi_mock_%d_secret", m.sequence),
		AmountCents:  params.AmountCents,
		Currency:     params.Currency,
		Status:       "succeeded",
	}
	m.intents[pi.ID] = pi
	return pi, nil
}

func (m *MockProvider) GetPaymentIntent(_ context.Context, id string) (*PaymentIntent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pi, ok := m.intents[id]
	if !ok {
		return nil, ErrIntentNotFound
	}
	out := *pi
	return &out, nil
}

// SetStatus overrides the status of a stored intent, letting tests exercise
// unpaid and failed flows.
func (m *MockProvider) SetStatus(id, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if pi, ok := m.intents[id]; ok {
		pi.Status = status
	}
}
