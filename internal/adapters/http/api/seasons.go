// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// SeasonsDependencies defines the interface for season listing.
type SeasonsDependencies interface {
	Years(ctx context.Context) []int
}

// SeasonsHandler handles season list requests.
type SeasonsHandler struct {
	deps SeasonsDependencies
}

// NewSeasonsHandler creates a new seasons handler.
func NewSeasonsHandler(deps SeasonsDependencies) *SeasonsHandler {
	return &SeasonsHandler{deps: deps}
}

type seasonsResponse struct {
	Years []int `json:"years"`
}

// HandleGetSeasons handles GET /api/seasons requests.
func (h *SeasonsHandler) HandleGetSeasons(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, seasonsResponse{Years: h.deps.Years(r.Context())})
}
