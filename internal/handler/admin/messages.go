package admin

import (
	"log/slog"
	"net/http"

	"github.com/duvindu/saffron/internal/domain"
	"github.com/duvindu/saffron/internal/handler"
)

// MessageHandler shows contact-form messages in the back office.
type MessageHandler struct {
	messages domain.MessageStore
	renderer *handler.Renderer
	logger   *slog.Logger
}

func NewMessageHandler(messages domain.MessageStore, renderer *handler.Renderer, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, renderer: renderer, logger: logger}
}

// List handles GET /admin/messages. By default only unhandled messages are
// shown; ?all=1 shows everything.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter *bool
	showAll := r.URL.Query().Get("all") == "1"
	if !showAll {
		unhandled := false
		filter = &unhandled
	}

	messages, err := h.messages.List(r.Context(), filter)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	h.renderer.RenderHTTP(w, "admin/messages", map[string]any{
		"Messages": messages,
		"ShowAll":  showAll,
	})
}

// MarkHandled handles POST /admin/messages/{id}/handled.
func (h *MessageHandler) MarkHandled(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	if err := h.messages.MarkHandled(r.Context(), id); err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}
	http.Redirect(w, r, "/admin/messages", http.StatusSeeOther)
}
