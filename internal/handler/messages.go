package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/folio/portfolio-cms/internal/audit"
	"github.com/folio/portfolio-cms/internal/config"
	"github.com/folio/portfolio-cms/internal/httputil"
	"github.com/folio/portfolio-cms/internal/model"
)

type Inbox interface {
	Submit(ctx context.Context, sub model.ContactSubmission) (*model.Message, error)
	List(ctx context.Context, limit, offset int) ([]model.Message, int, error)
	Delete(ctx context.Context, id string) error
}

type MessageHandler struct {
	inbox Inbox
	gate  func(http.Handler) http.Handler
}

func NewMessageHandler(inbox Inbox, gate func(http.Handler) http.Handler) *MessageHandler {
	return &MessageHandler{inbox: inbox, gate: gate}
}

// ContactRoutes is the public submission endpoint.
func (h *MessageHandler) ContactRoutes() chi.Router {
	r := chi.NewRouter()
	r.With(httprate.LimitByIP(config.PublicPostLimitPerMin, time.Minute)).Post("/", h.Submit)
	return r
}

// Routes is the admin inbox. Every route is gated.
func (h *MessageHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.gate)

	r.Get("/", h.List)
	r.Delete("/", h.Delete)
	r.Delete("/{id}", h.Delete)

	return r
}

// POST /contact
func (h *MessageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub model.ContactSubmission
	if err := decodeJSON(r, &sub); err != nil {
		httputil.WriteError(w, err)
		return
	}

	msg, err := h.inbox.Submit(r.Context(), sub)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"message": "Message sent successfully",
		"id":      msg.ID,
	})
}

// GET /messages
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	page := ParsePagination(r)

	msgs, total, err := h.inbox.List(r.Context(), page.Limit, page.Offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if msgs == nil {
		msgs = []model.Message{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"messages": msgs,
		"total":    total,
		"limit":    page.Limit,
		"offset":   page.Offset,
	})
}

// DELETE /messages/{id}, or /messages?id= for older admin builds.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := firstNonEmpty(chi.URLParam(r, "id"), r.URL.Query().Get("id"))

	if err := h.inbox.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:    audit.EventMessageDelete,
		Details: map[string]interface{}{"message_id": id},
	})
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "success": true})
}
