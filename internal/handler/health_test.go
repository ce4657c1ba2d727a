package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio/portfolio-cms/internal/database"
)

type fixedPinger bool

func (p fixedPinger) Healthy(context.Context) bool { return bool(p) }

func TestHealthHandler(t *testing.T) {
	t.Run("degraded storage is still healthy", func(t *testing.T) {
		rec := doRequest(NewHealthHandler(database.NewManager(""), nil), http.MethodGet, "/health", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "disabled", body["storage"])
		assert.NotContains(t, body, "challengeStore")
	})

	t.Run("reports unset before the first connect", func(t *testing.T) {
		m := database.NewManager("postgres://db/app")
		rec := doRequest(NewHealthHandler(m, fixedPinger(false)), http.MethodGet, "/health", "")

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "unset", body["storage"])
		assert.Equal(t, "unreachable", body["challengeStore"])
		assert.Equal(t, database.StateUnset, m.State(), "health must not trigger a connect")
	})
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query  string
		limit  int
		offset int
	}{
		{"", DefaultLimit, 0},
		{"?limit=10&offset=5", 10, 5},
		{"?limit=0", DefaultLimit, 0},
		{"?limit=9999", DefaultLimit, 0},
		{"?limit=abc&offset=-3", DefaultLimit, 0},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			rec := doRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				p := ParsePagination(r)
				assert.Equal(t, tc.limit, p.Limit)
				assert.Equal(t, tc.offset, p.Offset)
			}), http.MethodGet, "/messages"+tc.query, "")
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}
