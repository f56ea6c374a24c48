package cart_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/duvindu/saffron/internal/cart"
	"github.com/duvindu/saffron/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCart(t *testing.T) (*cart.Cart, *kv.Memory) {
	t.Helper()
	store := kv.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return cart.New(store, "cart:test", logger), store
}

func cinnamon() cart.Product {
	return cart.Product{ID: "sku1", Name: "Ceylon Cinnamon Sticks", UnitPriceCents: 4500, ImageRef: "cinnamon.jpg"}
}

func cloves() cart.Product {
	return cart.Product{ID: "sku2", Name: "Whole Cloves", UnitPriceCents: 1200, ImageRef: "cloves.jpg"}
}

func Test_Cart_MergeByIdentity(t *testing.T) {
	c, _ := newTestCart(t)

	require.NoError(t, c.AddItem(cinnamon(), 2))
	require.NoError(t, c.AddItem(cloves(), 1))
	require.NoError(t, c.AddItem(cinnamon(), 3))

	items := c.Items()
	require.Len(t, items, 2, "repeated adds merge into one line per product ID")
	assert.Equal(t, "sku1", items[0].ProductID, "merged line keeps the position of the first add")
	assert.Equal(t, 5, items[0].Quantity, "quantities accumulate across adds")
	assert.Equal(t, "sku2", items[1].ProductID)
	assert.Equal(t, 1, items[1].Quantity)
}

func Test_Cart_CountIsSumOfQuantities(t *testing.T) {
	c, _ := newTestCart(t)

	require.NoError(t, c.AddItem(cinnamon(), 1))
	require.NoError(t, c.AddItem(cloves(), 1))
	require.NoError(t, c.AddItem(cinnamon(), 1))

	assert.Equal(t, 3, c.Count(), "badge shows total units, not distinct lines")
	assert.Len(t, c.Items(), 2)
}

func Test_Cart_AddItem_Invalid(t *testing.T) {
	c, _ := newTestCart(t)

	err := c.AddItem(cart.Product{Name: "No identity"}, 1)
	assert.ErrorIs(t, err, cart.ErrInvalidItem, "item without a product ID is rejected")

	err = c.AddItem(cinnamon(), 0)
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)

	err = c.AddItem(cinnamon(), -4)
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)

	assert.Empty(t, c.Items(), "rejected adds leave the cart untouched")
}

func Test_Cart_NegativeUnitPriceCoercedToZero(t *testing.T) {
	c, _ := newTestCart(t)

	require.NoError(t, c.AddItem(cart.Product{ID: "bad", Name: "Bad Price", UnitPriceCents: -500}, 2))

	assert.Equal(t, int64(0), c.SubtotalCents(), "malformed price contributes zero, never corrupts the total")
	assert.Equal(t, 2, c.Count())
}

func Test_Cart_RemoveItem_Idempotent(t *testing.T) {
	c, _ := newTestCart(t)

	require.NoError(t, c.AddItem(cinnamon(), 2))
	c.RemoveItem("sku1")
	c.RemoveItem("sku1") // second remove is a no-op

	assert.Empty(t, c.Items())
	assert.Equal(t, 0, c.Count())
	assert.Equal(t, int64(0), c.SubtotalCents())
}

func Test_Cart_SetQuantity(t *testing.T) {
	tests := []struct {
		name      string
		qty       int
		wantItems int
		wantCount int
	}{
		{name: "positive quantity replaces", qty: 7, wantItems: 1, wantCount: 7},
		{name: "zero removes the line", qty: 0, wantItems: 0, wantCount: 0},
		{name: "negative removes the line", qty: -3, wantItems: 0, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCart(t)
			require.NoError(t, c.AddItem(cinnamon(), 2))

			c.SetQuantity("sku1", tt.qty)

			assert.Len(t, c.Items(), tt.wantItems)
			assert.Equal(t, tt.wantCount, c.Count())
		})
	}
}

func Test_Cart_SetQuantity_UnknownItemIsNoOp(t *testing.T) {
	c, _ := newTestCart(t)
	require.NoError(t, c.AddItem(cinnamon(), 2))

	c.SetQuantity("nope", 5)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func Test_Cart_Clear(t *testing.T) {
	c, _ := newTestCart(t)
	require.NoError(t, c.AddItem(cinnamon(), 2))
	require.NoError(t, c.AddItem(cloves(), 4))

	c.Clear()
	c.Clear() // idempotent

	assert.Empty(t, c.Items())
	assert.Equal(t, 0, c.Count())
	assert.Equal(t, int64(0), c.SubtotalCents())
}

// Test_Cart_TotalMatchesIndependentRecompute drives the cart through random
// mutations and checks the running total against a recomputation from the
// items list after every step.
func Test_Cart_TotalMatchesIndependentRecompute(t *testing.T) {
	c, _ := newTestCart(t)
	rng := rand.New(rand.NewSource(7))

	products := []cart.Product{
		{ID: "p1", Name: "Turmeric", UnitPriceCents: 899},
		{ID: "p2", Name: "Black Pepper", UnitPriceCents: 1450},
		{ID: "p3", Name: "Cardamom", UnitPriceCents: 3200},
		{ID: "p4", Name: "Saffron Threads", UnitPriceCents: 12999},
	}

	for i := 0; i < 200; i++ {
		p := products[rng.Intn(len(products))]
		switch rng.Intn(4) {
		case 0, 1:
			require.NoError(t, c.AddItem(p, 1+rng.Intn(5)))
		case 2:
			c.RemoveItem(p.ID)
		case 3:
			c.SetQuantity(p.ID, rng.Intn(7)-1) // may remove
		}

		var want int64
		var count int
		for _, it := range c.Items() {
			require.GreaterOrEqual(t, it.Quantity, 1, "no zero-quantity lines may exist")
			want += it.UnitPriceCents * int64(it.Quantity)
			count += it.Quantity
		}
		assert.Equal(t, want, c.SubtotalCents(), "step %d", i)
		assert.Equal(t, count, c.Count(), "step %d", i)
	}
}

func Test_Cart_Scenario(t *testing.T) {
	c, _ := newTestCart(t)
	stick := cart.Product{ID: "sku1", Name: "Stick", UnitPriceCents: 4500, ImageRef: "img"}

	require.NoError(t, c.AddItem(stick, 2))
	assert.Equal(t, 2, c.Count())
	assert.Equal(t, int64(9000), c.SubtotalCents())

	require.NoError(t, c.AddItem(stick, 1))
	assert.Equal(t, 3, c.Count())
	assert.Equal(t, int64(13500), c.SubtotalCents())

	c.SetQuantity("sku1", 0)
	assert.Empty(t, c.Items())
}

func Test_Cart_ObserversSeeFreshStateBeforeMutationReturns(t *testing.T) {
	c, _ := newTestCart(t)

	var seen []cart.Snapshot
	unsubscribe := c.Subscribe(func(s cart.Snapshot) {
		seen = append(seen, s)
	})

	require.NoError(t, c.AddItem(cinnamon(), 2))
	require.Len(t, seen, 1, "observer runs before AddItem returns")
	assert.Equal(t, 2, seen[0].Count)
	assert.Equal(t, int64(9000), seen[0].SubtotalCents)

	c.SetQuantity("sku1", 5)
	require.Len(t, seen, 2)
	assert.Equal(t, 5, seen[1].Count)

	unsubscribe()
	c.Clear()
	assert.Len(t, seen, 2, "unsubscribed observer is no longer notified")
}

func Test_Cart_PersistsAcrossConstruction(t *testing.T) {
	store := kv.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	c := cart.New(store, "cart:s1", logger)
	require.NoError(t, c.AddItem(cinnamon(), 2))
	require.NoError(t, c.AddItem(cloves(), 1))

	reloaded := cart.New(store, "cart:s1", logger)
	assert.Equal(t, c.Items(), reloaded.Items(), "cart contents survive a restart via the durable store")
	assert.Equal(t, int64(10200), reloaded.SubtotalCents())
}

func Test_Cart_LoadDropsMalformedLines(t *testing.T) {
	store := kv.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	raw, err := json.Marshal([]cart.LineItem{
		{ProductID: "ok", Name: "Good", UnitPriceCents: 100, Quantity: 2},
		{ProductID: "", Name: "No ID", UnitPriceCents: 100, Quantity: 1},
		{ProductID: "zero", Name: "Zero Qty", UnitPriceCents: 100, Quantity: 0},
	})
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), "cart:s2", string(raw)))

	c := cart.New(store, "cart:s2", logger)
	items := c.Items()
	require.Len(t, items, 1, "lines violating the invariants are discarded on load")
	assert.Equal(t, "ok", items[0].ProductID)
}

func Test_Sessions_OneCartPerSession(t *testing.T) {
	store := kv.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := cart.NewSessions(store, logger)

	a := sessions.Get("sess-a")
	b := sessions.Get("sess-b")
	require.NotSame(t, a, b)

	require.NoError(t, a.AddItem(cinnamon(), 1))
	assert.Equal(t, 1, a.Count())
	assert.Equal(t, 0, b.Count(), "sessions do not share cart state")

	assert.Same(t, a, sessions.Get("sess-a"), "same session always yields the same cart")
}

func Test_NewSessionID_Unique(t *testing.T) {
	a, err := cart.NewSessionID()
	require.NoError(t, err)
	b, err := cart.NewSessionID()
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
