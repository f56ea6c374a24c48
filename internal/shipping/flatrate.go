package shipping

import "context"

// FlatRateProvider returns predefined flat-rate shipping options regardless
// of destination. Used while real carrier integration is not needed.
type FlatRateProvider struct {
	rates []Rate
}

// NewFlatRateProvider creates a new flat-rate shipping provider.
func NewFlatRateProvider(rates []Rate) *FlatRateProvider {
	return &FlatRateProvider{rates: rates}
}

// GetRates returns all configured flat rates.
func (p *FlatRateProvider) GetRates(ctx context.Context, country string) ([]Rate, error) {
	if len(p.rates) == 0 {
		return nil, ErrNoRates
	}
	out := make([]Rate, len(p.rates))
	copy(out, p.rates)
	return out, nil
}

// GetRate returns the flat rate with the given service code.
func (p *FlatRateProvider) GetRate(ctx context.Context, country, serviceCode string) (*Rate, error) {
	for _, r := range p.rates {
		if r.ServiceCode == serviceCode {
			rate := r
			return &rate, nil
		}
	}
	return nil, ErrNoRates
}
