// Package currency converts reference-currency amounts into the shopper's
// selected display currency and renders them as strings. Conversion is a pure
// function of (amount, selected code, rates); the only state is the selected
// code, persisted through a kv.Store so the choice survives sessions.
package currency

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"sync"

	"github.com/duvindu/saffron/internal/domain"
	"github.com/duvindu/saffron/internal/kv"
)

// DefaultCode is the reference currency: catalog prices are expressed in it
// and every rate is a multiplier relative to it.
const DefaultCode = "USD"

const storeKey = "currency:selected"

var ErrUnknownCurrency = &domain.Error{Code: domain.EINVALID, Message: "Currency not supported"}

// Static conversion tables. Rates are multiplicative factors relative to the
// reference currency. All currencies round to 2 decimals at display time,
// including ones that conventionally carry no minor units; that flat rule is
// intentional and relied upon by the storefront.
var (
	rates = map[string]float64{
		"USD": 1,
		"LKR": 300,
		"EUR": 0.92,
		"GBP": 0.79,
		"AUD": 1.52,
	}

	symbols = map[string]string{
		"USD": "$",
		"LKR": "Rs.",
		"EUR": "€",
		"GBP": "£",
		"AUD": "A$",
	}
)

// Converter holds the selected display currency and formats amounts with it.
// Safe for concurrent use.
type Converter struct {
	mu     sync.RWMutex
	code   string
	store  kv.Store
	logger *slog.Logger
}

// New creates a converter, restoring the persisted selection from store.
// An absent or unrecognized saved code falls back to the default.
func New(store kv.Store, logger *slog.Logger) *Converter {
	c := &Converter{
		code:   DefaultCode,
		store:  store,
		logger: logger,
	}

	saved, ok, err := store.Get(context.Background(), storeKey)
	if err != nil {
		logger.Warn("currency selection load failed, using default", "error", err)
		return c
	}
	if ok {
		if _, known := rates[saved]; known {
			c.code = saved
		}
	}

	return c
}

// Code returns the currently selected currency code.
func (c *Converter) Code() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.code
}

// SetCurrency selects a new display currency. Unknown codes are rejected with
// ErrUnknownCurrency and the prior selection is kept. A successful change is
// persisted; a failed write is logged, not surfaced.
func (c *Converter) SetCurrency(code string) error {
	if _, ok := rates[code]; !ok {
		return ErrUnknownCurrency
	}

	c.mu.Lock()
	c.code = code
	c.mu.Unlock()

	if err := c.store.Set(context.Background(), storeKey, code); err != nil {
		c.logger.Warn("currency selection save failed", "code", code, "error", err)
	}
	return nil
}

// Convert returns amount (in the reference currency) converted to the
// selected currency, rounded to 2 decimal places. Non-finite amounts are
// treated as zero rather than propagating into the displayed string.
func (c *Converter) Convert(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	c.mu.RLock()
	rate := rates[c.code]
	c.mu.RUnlock()

	return math.Round(amount*rate*100) / 100
}

// Format renders amount as the selected currency's symbol followed by the
// converted value with exactly 2 decimals, e.g. "$10.00" or "Rs.3000.00".
func (c *Converter) Format(amount float64) string {
	c.mu.RLock()
	symbol, ok := symbols[c.code]
	c.mu.RUnlock()
	if !ok {
		symbol = symbols[DefaultCode]
	}

	return symbol + strconv.FormatFloat(c.Convert(amount), 'f', 2, 64)
}

// FormatCents renders a reference-currency cents value. This is the entry
// point for cart and catalog amounts, which are stored as integer cents.
func (c *Converter) FormatCents(cents int64) string {
	return c.Format(float64(cents) / 100)
}

// FormatRef renders a cents amount in the reference currency, independent of
// any shopper's selection. Used where a stable currency is required, e.g.
// transactional email and the admin console.
func FormatRef(cents int64) string {
	return symbols[DefaultCode] + strconv.FormatFloat(float64(cents)/100, 'f', 2, 64)
}

// Rates returns a copy of the conversion table for selector UI.
func Rates() map[string]float64 {
	out := make(map[string]float64, len(rates))
	for k, v := range rates {
		out[k] = v
	}
	return out
}

// Symbols returns a copy of the symbol table for selector UI.
func Symbols() map[string]string {
	out := make(map[string]string, len(symbols))
	for k, v := range symbols {
		out[k] = v
	}
	return out
}

// Codes returns the supported currency codes in stable order, reference
// currency first.
func Codes() []string {
	var tail []string
	for code := range rates {
		if code != DefaultCode {
			tail = append(tail, code)
		}
	}
	sort.Strings(tail)
	return append([]string{DefaultCode}, tail...)
}
