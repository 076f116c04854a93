// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
)

// PreviousDependencies defines the interface for previous-view operations.
type PreviousDependencies interface {
	Previous(ctx context.Context, n int) ([]Entry, error)
}

// PreviousHandler serves the ranking as it stood before the last refresh.
type PreviousHandler struct {
	deps     PreviousDependencies
	maxLimit int
}

// NewPreviousHandler creates a new previous-view handler.
func NewPreviousHandler(deps PreviousDependencies, maxLimit int) *PreviousHandler {
	return &PreviousHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetPrevious handles GET /previous?limit=N requests. Before the
// first refresh the previous view is empty and an empty list is served.
func (h *PreviousHandler) HandleGetPrevious(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limitStr := r.URL.Query().Get("limit")
	n, err := strconv.Atoi(limitStr)
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", ErrBadRequest)
		return
	}
	entries, err := h.deps.Previous(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
