package shipping_test

import (
	"context"
	"testing"

	"github.com/duvindu/saffron/internal/shipping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRates() []shipping.Rate {
	return []shipping.Rate{
		{ServiceName: "Standard Shipping", ServiceCode: "standard", CostCents: 795, DaysMin: 5, DaysMax: 7},
		{ServiceName: "Express Shipping", ServiceCode: "express", CostCents: 1495, DaysMin: 2, DaysMax: 3},
	}
}

func Test_FlatRateProvider_GetRates(t *testing.T) {
	p := shipping.NewFlatRateProvider(testRates())

	rates, err := p.GetRates(context.Background(), "LK")
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, int64(795), rates[0].CostCents)
	assert.Equal(t, "express", rates[1].ServiceCode)

	// Returned slice is a copy; callers can't corrupt the provider.
	rates[0].CostCents = 1
	again, err := p.GetRates(context.Background(), "LK")
	require.NoError(t, err)
	assert.Equal(t, int64(795), again[0].CostCents)
}

func Test_FlatRateProvider_GetRate(t *testing.T) {
	p := shipping.NewFlatRateProvider(testRates())

	rate, err := p.GetRate(context.Background(), "US", "express")
	require.NoError(t, err)
	assert.Equal(t, int64(1495), rate.CostCents)

	_, err = p.GetRate(context.Background(), "US", "overnight")
	assert.ErrorIs(t, err, shipping.ErrNoRates)
}

func Test_FlatRateProvider_Empty(t *testing.T) {
	p := shipping.NewFlatRateProvider(nil)

	_, err := p.GetRates(context.Background(), "US")
	assert.ErrorIs(t, err, shipping.ErrNoRates)
}
