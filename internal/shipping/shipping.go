// Package shipping provides shipping rate calculation for checkout.
package shipping

import (
	"context"
	"errors"
)

var ErrNoRates = errors.New("no shipping rates available")

// Rate represents a shipping rate option offered at checkout.
type Rate struct {
	ServiceName string
	ServiceCode string
	CostCents   int64
	DaysMin     int
	DaysMax     int
}

// Provider defines the interface for shipping rate lookups. Implementations
// can integrate with real carriers; the storefront ships with flat rates.
type Provider interface {
	// GetRates returns the shipping options for a destination country.
	GetRates(ctx context.Context, country string) ([]Rate, error)

	// GetRate returns the rate for a specific service code.
	GetRate(ctx context.Context, country, serviceCode string) (*Rate, error)
}
