package cart

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"sync"

	"github.com/duvindu/saffron/internal/kv"
)

// Sessions maps shopping session IDs to their carts. Each session owns
// exactly one cart, constructed lazily and loaded from the durable store on
// first access. Carts for a session are shared across requests; conflicting
// writes from multiple tabs resolve last-write-wins at the store layer.
type Sessions struct {
	mu     sync.Mutex
	carts  map[string]*Cart
	store  kv.Store
	logger *slog.Logger
}

// NewSessions creates a session-to-cart registry backed by store.
func NewSessions(store kv.Store, logger *slog.Logger) *Sessions {
	return &Sessions{
		carts:  make(map[string]*Cart),
		store:  store,
		logger: logger,
	}
}

// Get returns the cart for sessionID, creating and loading it on first use.
func (s *Sessions) Get(sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.carts[sessionID]; ok {
		return c
	}

	c := New(s.store, "cart:"+sessionID, s.logger)
	s.carts[sessionID] = c
	return c
}

// NewSessionID generates a cryptographically secure session identifier.
func NewSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
