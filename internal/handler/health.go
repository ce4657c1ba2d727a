package handler

import (
	"context"
	"net/http"

	"github.com/folio/portfolio-cms/internal/database"
)

type StorageStatus interface {
	State() database.State
}

type Pinger interface {
	Healthy(ctx context.Context) bool
}

type HealthHandler struct {
	storage StorageStatus
	redis   Pinger
}

// NewHealthHandler reports storage state. redis may be nil when challenges
// live in memory.
func NewHealthHandler(storage StorageStatus, redis Pinger) *HealthHandler {
	return &HealthHandler{storage: storage, redis: redis}
}

// GET /health never touches the database. A process serving defaults in
// degraded mode is still healthy.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":  "ok",
		"storage": h.storage.State(),
	}
	if h.redis != nil {
		state := "ready"
		if !h.redis.Healthy(r.Context()) {
			state = "unreachable"
		}
		body["challengeStore"] = state
	}
	writeJSON(w, http.StatusOK, body)
}
