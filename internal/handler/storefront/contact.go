package storefront

import (
	"log/slog"
	"net/http"

	"github.com/duvindu/saffron/internal/currency"
	"github.com/duvindu/saffron/internal/domain"
	"github.com/duvindu/saffron/internal/handler"
	"github.com/duvindu/saffron/internal/service"
)

// ContactHandler renders and accepts the contact form.
type ContactHandler struct {
	messages *service.MessageService
	conv     *currency.Converter
	renderer *handler.Renderer
	logger   *slog.Logger
}

func NewContactHandler(messages *service.MessageService, conv *currency.Converter, renderer *handler.Renderer, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{messages: messages, conv: conv, renderer: renderer, logger: logger}
}

// Form handles GET /contact.
func (h *ContactHandler) Form(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderHTTP(w, "contact", BaseTemplateData(r, h.conv))
}

// Submit handles POST /contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	input := domain.MessageInput{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Subject: r.FormValue("subject"),
		Body:    r.FormValue("body"),
	}

	data := BaseTemplateData(r, h.conv)

	if _, err := h.messages.Submit(r.Context(), input); err != nil {
		if fields := domain.GetValidationFields(err); fields != nil {
			data["Errors"] = fields
			data["Input"] = input
			h.renderer.RenderHTTP(w, "contact", data)
			return
		}
		handler.RespondError(w, r, h.logger, err)
		return
	}

	data["Sent"] = true
	h.renderer.RenderHTTP(w, "contact", data)
}
