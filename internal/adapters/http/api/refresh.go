// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"time"
)

// RefreshDependencies defines the interface for manual refresh triggers.
type RefreshDependencies interface {
	RefreshNow(ctx context.Context) (time.Duration, bool, error)
}

// RefreshHandler triggers an immediate snapshot refresh.
type RefreshHandler struct {
	deps RefreshDependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps RefreshDependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

type refreshResponse struct {
	Refreshed bool  `json:"refreshed"`
	ElapsedMS int64 `json:"elapsed_ms"`
}

// HandleRefresh handles POST /refresh requests. A refresh skipped
// because the snapshot was unchanged still returns 200 with
// refreshed=false.
func (h *RefreshHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	elapsed, refreshed, err := h.deps.RefreshNow(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{
		Refreshed: refreshed,
		ElapsedMS: elapsed.Milliseconds(),
	})
}
