package storefront

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/duvindu/saffron/internal/currency"
)

// CurrencyHandler switches the storefront display currency.
type CurrencyHandler struct {
	conv   *currency.Converter
	logger *slog.Logger
}

func NewCurrencyHandler(conv *currency.Converter, logger *slog.Logger) *CurrencyHandler {
	return &CurrencyHandler{conv: conv, logger: logger}
}

// Select handles POST /currency. Unknown codes are ignored and the previous
// selection stands.
func (h *CurrencyHandler) Select(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	code := strings.ToUpper(strings.TrimSpace(r.FormValue("currency")))
	if err := h.conv.SetCurrency(code); err != nil {
		if !errors.Is(err, currency.ErrUnknownCurrency) {
			h.logger.Error("currency switch failed", "code", code, "error", err)
		}
	}

	// Send the shopper back where they came from, but only to a local path.
	http.Redirect(w, r, localPath(r.FormValue("return_to")), http.StatusSeeOther)
}

// localPath sanitizes a shopper-supplied redirect target. Anything that is
// not a same-site absolute path falls back to the home page; "//host" and
// "/\host" are protocol-relative URLs, not paths.
func localPath(target string) string {
	if len(target) < 1 || target[0] != '/' {
		return "/"
	}
	if len(target) > 1 && (target[1] == '/' || target[1] == '\\') {
		return "/"
	}
	return target
}
