package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog/log"

	"github.com/folio/portfolio-cms/internal/audit"
	"github.com/folio/portfolio-cms/internal/config"
	apperrors "github.com/folio/portfolio-cms/internal/errors"
	"github.com/folio/portfolio-cms/internal/httputil"
	"github.com/folio/portfolio-cms/internal/model"
	"github.com/folio/portfolio-cms/internal/service"
)

type ContentStore interface {
	Read(ctx context.Context, name model.SectionName) (model.Document, error)
	Write(ctx context.Context, name model.SectionName, payload []byte) (model.Document, error)
	ReadAll(ctx context.Context) (*service.All, error)
}

type ContentHandler struct {
	content ContentStore
	gate    func(http.Handler) http.Handler
}

// NewContentHandler serves public reads and gated writes. gate guards every
// write route.
func NewContentHandler(content ContentStore, gate func(http.Handler) http.Handler) *ContentHandler {
	return &ContentHandler{content: content, gate: gate}
}

func (h *ContentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(config.PublicReadLimitPerMin, time.Minute))
		r.Get("/all", h.GetAll)
		r.Get("/{section}", h.GetSection)
	})
	r.With(h.gate).Post("/{section}", h.PutSection)

	return r
}

func sectionParam(r *http.Request) (model.SectionName, bool) {
	return model.ParseSection(chi.URLParam(r, "section"))
}

// GET /content/all
func (h *ContentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	all, err := h.content.ReadAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to read content")
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Cache-Control", config.PublicCacheControl)
	writeJSON(w, http.StatusOK, all)
}

// GET /content/{section}
func (h *ContentHandler) GetSection(w http.ResponseWriter, r *http.Request) {
	name, ok := sectionParam(r)
	if !ok {
		httputil.WriteError(w, apperrors.NotFound("Section"))
		return
	}

	doc, err := h.content.Read(r.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrSectionUnknown) {
			httputil.WriteError(w, apperrors.NotFound("Section"))
			return
		}
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Cache-Control", config.PublicCacheControl)
	writeJSON(w, http.StatusOK, doc)
}

// POST /content/{section}
func (h *ContentHandler) PutSection(w http.ResponseWriter, r *http.Request) {
	name, ok := sectionParam(r)
	if !ok {
		httputil.WriteError(w, apperrors.NotFound("Section"))
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.WriteErrorWithStatus(w, http.StatusRequestEntityTooLarge, apperrors.PayloadTooLarge())
			return
		}
		httputil.WriteError(w, apperrors.InvalidInput("body", "unreadable"))
		return
	}

	doc, err := h.content.Write(r.Context(), name, payload)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:    audit.EventContentWrite,
		Details: map[string]interface{}{"section": string(name)},
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"success": true,
		"data":    doc,
	})
}
