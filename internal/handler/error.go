package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/duvindu/saffron/internal/domain"
)

// RespondError writes an error response appropriate to the request. JSON
// clients get a structured body; everything else gets plain text.
func RespondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code := domain.ErrorCode(err)
	message := domain.ErrorMessage(err)

	// ValidationError is not a *domain.Error, so ErrorCode would report it
	// as EINTERNAL. Form validation failures are the caller's fault.
	fields := domain.GetValidationFields(err)
	if fields != nil {
		code = domain.EINVALID
		message = "Validation failed"
	}

	status := errorCodeToHTTPStatus(code)

	attrs := []any{
		"error", err.Error(),
		"code", code,
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
	}
	if status >= 500 {
		logger.Error("request failed", attrs...)
	} else {
		logger.Info("request rejected", attrs...)
	}

	if acceptsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)

		errBody := map[string]any{
			"code":    code,
			"message": message,
		}
		if fields != nil {
			errBody["fields"] = fields
		}
		json.NewEncoder(w).Encode(map[string]any{"error": errBody})
		return
	}

	http.Error(w, message, status)
}

func acceptsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") ||
		strings.Contains(r.Header.Get("Content-Type"), "application/json")
}

func errorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EPAYMENT:
		return http.StatusPaymentRequired
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.ETOOLARGE:
		return http.StatusRequestEntityTooLarge
	case domain.ERATELIMIT:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
