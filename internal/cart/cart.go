// Package cart implements the shopping cart engine: an ordered list of line
// items with merge-by-product-identity semantics, derived totals, observer
// notification, and fire-and-forget persistence through a kv.Store.
package cart

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/duvindu/saffron/internal/domain"
	"github.com/duvindu/saffron/internal/kv"
)

var (
	ErrInvalidItem     = &domain.Error{Code: domain.EINVALID, Message: "Item is missing a product ID"}
	ErrInvalidQuantity = &domain.Error{Code: domain.EINVALID, Message: "Quantity must be greater than 0"}
)

// Product is the catalog-shaped input to AddItem. Descriptive fields are
// copied onto the line item at add time; only ID participates in identity.
type Product struct {
	ID             string
	Name           string
	UnitPriceCents int64
	ImageRef       string
}

// LineItem is one entry in the cart: a single product and its requested
// quantity. Quantity is always >= 1 for an item present in the cart; there is
// no zero-quantity state.
type LineItem struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	ImageRef       string `json:"image_ref"`
	Quantity       int    `json:"quantity"`
}

// Snapshot is the consistent view handed to observers after each mutation.
type Snapshot struct {
	Items         []LineItem
	SubtotalCents int64
	Count         int
}

// Observer receives a snapshot after every cart mutation.
type Observer func(Snapshot)

// Cart holds the items a shopper intends to purchase. All operations are
// synchronous in-memory mutations; persistence and observer notification are
// side effects that complete before the mutation returns. A Cart is safe for
// concurrent use.
type Cart struct {
	mu    sync.Mutex
	items []LineItem

	store  kv.Store
	key    string
	logger *slog.Logger

	obsMu     sync.Mutex
	observers map[int]Observer
	nextObsID int
}

// New creates a cart persisted under key in store, loading any previously
// saved contents. A corrupt or missing saved value yields an empty cart.
func New(store kv.Store, key string, logger *slog.Logger) *Cart {
	c := &Cart{
		store:     store,
		key:       key,
		logger:    logger,
		observers: make(map[int]Observer),
	}

	raw, ok, err := store.Get(context.Background(), key)
	if err != nil {
		logger.Warn("cart load failed, starting empty", "key", key, "error", err)
		return c
	}
	if !ok {
		return c
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warn("cart contents unreadable, starting empty", "key", key, "error", err)
		return c
	}

	// Drop anything that violates the quantity floor; a saved cart never
	// contains zero-quantity lines, but the store is external input.
	for _, it := range items {
		if it.ProductID == "" || it.Quantity < 1 {
			continue
		}
		if it.UnitPriceCents < 0 {
			it.UnitPriceCents = 0
		}
		c.items = append(c.items, it)
	}

	return c
}

// AddItem adds qty units of p to the cart. If a line for p.ID already exists
// its quantity is incremented in place (merge-by-identity); otherwise a new
// line is appended. Duplicate adds are the expected merge path, not an error.
func (c *Cart) AddItem(p Product, qty int) error {
	if p.ID == "" {
		return ErrInvalidItem
	}
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if p.UnitPriceCents < 0 {
		p.UnitPriceCents = 0
	}

	c.mu.Lock()
	merged := false
	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		c.items = append(c.items, LineItem{
			ProductID:      p.ID,
			Name:           p.Name,
			UnitPriceCents: p.UnitPriceCents,
			ImageRef:       p.ImageRef,
			Quantity:       qty,
		})
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.afterMutation(snap)
	return nil
}

// RemoveItem deletes the line for productID. Removing an absent item is a
// no-op, not an error.
func (c *Cart) RemoveItem(productID string) {
	c.mu.Lock()
	changed := false
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			changed = true
			break
		}
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if changed {
		c.afterMutation(snap)
	}
}

// SetQuantity sets the absolute quantity for an existing line. A quantity of
// zero or less removes the line. Setting quantity on a non-existent item is a
// no-op.
func (c *Cart) SetQuantity(productID string, qty int) {
	if qty <= 0 {
		c.RemoveItem(productID)
		return
	}

	c.mu.Lock()
	changed := false
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = qty
			changed = true
			break
		}
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if changed {
		c.afterMutation(snap)
	}
}

// Clear empties the cart. Used after a successful order placement. Idempotent.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.afterMutation(snap)
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// SubtotalCents returns the sum of unit price times quantity over all lines,
// in reference-currency cents. Integer arithmetic, no drift.
func (c *Cart) SubtotalCents() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total int64
	for _, it := range c.items {
		total += it.UnitPriceCents * int64(it.Quantity)
	}
	return total
}

// Count returns the sum of all item quantities. This is the storefront badge
// number: total units, not distinct lines.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Snapshot returns a consistent view of items and derived totals.
func (c *Cart) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers an observer called after every mutation. The returned
// function unregisters it.
func (c *Cart) Subscribe(fn Observer) (unsubscribe func()) {
	c.obsMu.Lock()
	id := c.nextObsID
	c.nextObsID++
	c.observers[id] = fn
	c.obsMu.Unlock()

	return func() {
		c.obsMu.Lock()
		delete(c.observers, id)
		c.obsMu.Unlock()
	}
}

func (c *Cart) snapshotLocked() Snapshot {
	snap := Snapshot{Items: make([]LineItem, len(c.items))}
	copy(snap.Items, c.items)
	for _, it := range c.items {
		snap.SubtotalCents += it.UnitPriceCents * int64(it.Quantity)
		snap.Count += it.Quantity
	}
	return snap
}

// afterMutation persists the cart and notifies observers. Both complete
// before the mutating operation returns; a failed write is logged and
// otherwise ignored, since it only costs session continuity.
func (c *Cart) afterMutation(snap Snapshot) {
	raw, err := json.Marshal(snap.Items)
	if err == nil {
		err = c.store.Set(context.Background(), c.key, string(raw))
	}
	if err != nil {
		c.logger.Warn("cart save failed", "key", c.key, "error", err)
	}

	c.obsMu.Lock()
	fns := make([]Observer, 0, len(c.observers))
	for _, fn := range c.observers {
		fns = append(fns, fn)
	}
	c.obsMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
