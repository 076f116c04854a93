// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// ScoreDependencies defines the interface for point score updates.
type ScoreDependencies interface {
	UpdateScore(ctx context.Context, id string, score int64) bool
}

// ScoreHandler applies point score updates to the ranking view.
type ScoreHandler struct {
	deps ScoreDependencies
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps ScoreDependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

type scoreRequest struct {
	ID    string `json:"id"`
	Score int64  `json:"score"`
}

func (s scoreRequest) validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return ErrBadRequest
	}
	return nil
}

type scoreResponse struct {
	Updated bool `json:"updated"`
}

// HandleUpdateScore handles POST /score requests. Ids absent from the
// view, and strategies without a point-update path, report
// updated=false with 404.
func (h *ScoreHandler) HandleUpdateScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if !h.deps.UpdateScore(r.Context(), req.ID, req.Score) {
		writeJSON(w, http.StatusNotFound, scoreResponse{Updated: false})
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse{Updated: true})
}
