package handler_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/duvindu/saffron/internal/domain"
	"github.com/duvindu/saffron/internal/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type errorBody struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func respond(t *testing.T, err error, accept string) (*httptest.ResponseRecorder, errorBody) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.Header.Set("Accept", accept)
	rec := httptest.NewRecorder()

	handler.RespondError(rec, req, discard, err)

	var body errorBody
	if accept == "application/json" {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	}
	return rec, body
}

func Test_RespondError_ValidationError_JSON(t *testing.T) {
	err := &domain.ValidationError{
		Op: "checkout.validate",
		Fields: map[string]string{
			"email": "Must be a valid email address",
			"name":  "This field is required",
		},
	}

	rec, body := respond(t, err, "application/json")

	assert.Equal(t, http.StatusBadRequest, rec.Code, "field validation is the caller's fault, never a 500")
	assert.Equal(t, domain.EINVALID, body.Error.Code)
	assert.Len(t, body.Error.Fields, 2)
	assert.Equal(t, "Must be a valid email address", body.Error.Fields["email"])
}

func Test_RespondError_ValidationError_HTML(t *testing.T) {
	rec, _ := respond(t, domain.NewValidationError("contact.submit", "email", "Must be a valid email address"), "text/html")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Validation failed")
}

func Test_RespondError_DomainCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "not found", err: domain.ErrProductNotFound, status: http.StatusNotFound, code: domain.ENOTFOUND},
		{name: "invalid", err: domain.Invalid("cart.add", "invalid quantity"), status: http.StatusBadRequest, code: domain.EINVALID},
		{name: "conflict", err: domain.Conflict("product.create", "slug already in use"), status: http.StatusConflict, code: domain.ECONFLICT},
		{name: "plain error", err: errors.New("boom"), status: http.StatusInternalServerError, code: domain.EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := respond(t, tt.err, "application/json")
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func Test_RespondError_InternalHidesDetails(t *testing.T) {
	err := domain.Internal(errors.New("dial tcp 10.0.0.5:5432: connection refused"), "db.query", "query failed")

	rec, body := respond(t, err, "application/json")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "An internal error occurred. Please try again later.", body.Error.Message)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5", "internal details must not reach the client")
}
