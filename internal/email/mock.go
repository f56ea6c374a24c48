package email

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// MockSender records sent emails in memory for tests.
type MockSender struct {
	mu   sync.Mutex
	Sent []Email

	// FailNext makes the next Send call fail.
	FailNext bool
}

var _ Sender = (*MockSender)(nil)

// NewMockSender creates an empty mock sender.
func NewMockSender() *MockSender {
	return &MockSender{}
}

func (m *MockSender) Send(_ context.Context, email *Email) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailNext {
		m.FailNext = false
		return "", errors.New("mock send failure")
	}

	m.Sent = append(m.Sent, *email)
	return fmt.Sprintf("mock-%d", len(m.Sent)), nil
}

// Last returns the most recently sent email, or nil when nothing was sent.
func (m *MockSender) Last() *Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return nil
	}
	e := m.Sent[len(m.Sent)-1]
	return &e
}
