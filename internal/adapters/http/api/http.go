// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pitwall/pitboard/internal/domain/standings"
	"github.com/pitwall/pitboard/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Years lists the selectable season years, newest first.
	Years(ctx context.Context) []int

	// Season returns the full render payload for one year.
	Season(ctx context.Context, year int) (SeasonView, error)

	// SeasonRankings and CircuitRankings expose the standings tables.
	SeasonRankings(ctx context.Context, year int) ([]Standing, error)
	CircuitRankings(ctx context.Context, year int, name string) ([]Standing, error)

	// ProgressionPNG and StandingsPNG export charts as images.
	ProgressionPNG(ctx context.Context, year int) ([]byte, error)
	StandingsPNG(ctx context.Context, year int) ([]byte, error)
}

// SeasonView mirrors the render payload returned by season queries.
type SeasonView = types.SeasonView

// Standing mirrors the read shape returned by rankings queries.
type Standing = types.Standing

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	seasonsHandler *SeasonsHandler
	seasonHandler  *SeasonHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		seasonsHandler: NewSeasonsHandler(deps),
		seasonHandler:  NewSeasonHandler(deps, maxLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/seasons", RequestIDMiddleware(MetricsMiddleware(s.seasonsHandler.HandleGetSeasons, "seasons")))
	mux.HandleFunc("/api/seasons/", RequestIDMiddleware(MetricsMiddleware(s.seasonHandler.HandleSeasonTree, "season")))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound lets the API translate upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, standings.ErrCircuitNotFound)
}
