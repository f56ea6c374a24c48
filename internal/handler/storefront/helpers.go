package storefront

import (
	"net/http"
	"time"

	"github.com/duvindu/saffron/internal/currency"
)

// BaseTemplateData returns the data every storefront template expects: the
// footer year and the currency selector state.
func BaseTemplateData(r *http.Request, conv *currency.Converter) map[string]any {
	return map[string]any{
		"Year":          time.Now().Year(),
		"Currency":      conv.Code(),
		"CurrencyCodes": currency.Codes(),
		"CurrentPath":   r.URL.Path,
	}
}
