package currency_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/duvindu/saffron/internal/currency"
	"github.com/duvindu/saffron/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConverter(t *testing.T) (*currency.Converter, *kv.Memory) {
	t.Helper()
	store := kv.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return currency.New(store, logger), store
}

func Test_Converter_DefaultsToUSD(t *testing.T) {
	c, _ := newConverter(t)
	assert.Equal(t, "USD", c.Code())
	assert.Equal(t, "$10.00", c.Format(10))
}

func Test_Converter_SwitchToLKR(t *testing.T) {
	c, _ := newConverter(t)

	require.NoError(t, c.SetCurrency("LKR"))
	assert.Equal(t, "Rs.3000.00", c.Format(10))
	assert.Equal(t, float64(3000), c.Convert(10))
}

func Test_Converter_UnknownCurrencyRejected(t *testing.T) {
	c, _ := newConverter(t)

	err := c.SetCurrency("XYZ")
	assert.ErrorIs(t, err, currency.ErrUnknownCurrency)
	assert.Equal(t, "USD", c.Code(), "rejected change keeps the prior selection")
	assert.Equal(t, "$5.00", c.Format(5))
}

func Test_Converter_RoundsToTwoDecimals(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		amount float64
		want   string
	}{
		{name: "usd identity", code: "USD", amount: 45, want: "$45.00"},
		{name: "eur rounds half up", code: "EUR", amount: 10.5, want: "€9.66"},            // 10.5 * 0.92 = 9.66
		{name: "gbp fractional", code: "GBP", amount: 19.99, want: "£15.79"},              // 19.99 * 0.79 = 15.7921
		{name: "lkr keeps flat two decimals", code: "LKR", amount: 0.01, want: "Rs.3.00"}, // zero-minor-unit convention not special-cased
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newConverter(t)
			require.NoError(t, c.SetCurrency(tt.code))
			assert.Equal(t, tt.want, c.Format(tt.amount))
		})
	}
}

func Test_Converter_NonFiniteAmountsTreatedAsZero(t *testing.T) {
	c, _ := newConverter(t)

	assert.Equal(t, float64(0), c.Convert(math.NaN()))
	assert.Equal(t, "$0.00", c.Format(math.NaN()))
	assert.Equal(t, "$0.00", c.Format(math.Inf(1)))
	assert.Equal(t, "$0.00", c.Format(math.Inf(-1)))
}

func Test_Converter_FormatIsReferentiallyTransparent(t *testing.T) {
	c, _ := newConverter(t)
	require.NoError(t, c.SetCurrency("LKR"))

	first := c.Format(12.34)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Format(12.34), "repeated renders must not drift")
	}
}

func Test_Converter_FormatCents(t *testing.T) {
	c, _ := newConverter(t)
	assert.Equal(t, "$45.00", c.FormatCents(4500))
	assert.Equal(t, "$0.99", c.FormatCents(99))

	require.NoError(t, c.SetCurrency("LKR"))
	assert.Equal(t, "Rs.13500.00", c.FormatCents(4500))
}

func Test_Converter_SelectionPersists(t *testing.T) {
	store := kv.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	c := currency.New(store, logger)
	require.NoError(t, c.SetCurrency("EUR"))

	reloaded := currency.New(store, logger)
	assert.Equal(t, "EUR", reloaded.Code(), "selection restored from the durable store")
}

func Test_Converter_IgnoresCorruptPersistedSelection(t *testing.T) {
	store := kv.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, store.Set(context.Background(), "currency:selected", "BOGUS"))

	c := currency.New(store, logger)
	assert.Equal(t, "USD", c.Code(), "unrecognized persisted code falls back to the default")
}

func Test_Tables_ExposedReadOnly(t *testing.T) {
	r := currency.Rates()
	s := currency.Symbols()

	assert.Equal(t, float64(1), r["USD"], "reference currency rate is identity")
	assert.Equal(t, float64(300), r["LKR"])
	assert.Equal(t, "Rs.", s["LKR"])

	for code := range r {
		_, ok := s[code]
		assert.True(t, ok, "every rate code has a symbol: %s", code)
	}

	// Mutating the copies must not affect the converter.
	r["USD"] = 999
	s["USD"] = "!!"
	c, _ := newConverter(t)
	assert.Equal(t, "$10.00", c.Format(10))

	codes := currency.Codes()
	require.NotEmpty(t, codes)
	assert.Equal(t, "USD", codes[0], "reference currency listed first for selector UI")
}
