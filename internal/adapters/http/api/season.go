// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// SeasonHandler handles requests under /api/seasons/{year}.
type SeasonHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewSeasonHandler creates a new season handler.
func NewSeasonHandler(deps Dependencies, maxLimit int) *SeasonHandler {
	return &SeasonHandler{deps: deps, maxLimit: maxLimit}
}

// HandleSeasonTree routes everything under /api/seasons/:
//
//	GET /api/seasons/{year}                            -> render payload
//	GET /api/seasons/{year}/rankings                   -> season standings
//	GET /api/seasons/{year}/circuits/{name}/rankings   -> circuit standings
//	GET /api/seasons/{year}/progression.png            -> line chart export
//	GET /api/seasons/{year}/standings.png              -> bar chart export
func (h *SeasonHandler) HandleSeasonTree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/seasons/")
	segments := strings.Split(rest, "/")
	if len(segments) == 0 || segments[0] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	year, err := strconv.Atoi(segments[0])
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrInvalidYear)
		return
	}

	switch {
	case len(segments) == 1:
		h.handleSeason(w, r, year)
	case len(segments) == 2 && segments[1] == "rankings":
		h.handleSeasonRankings(w, r, year)
	case len(segments) == 2 && segments[1] == "progression.png":
		h.handleProgressionPNG(w, r, year)
	case len(segments) == 2 && segments[1] == "standings.png":
		h.handleStandingsPNG(w, r, year)
	case len(segments) == 4 && segments[1] == "circuits" && segments[3] == "rankings":
		name, err := url.PathUnescape(segments[2])
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		h.handleCircuitRankings(w, r, year, name)
	default:
		http.NotFound(w, r)
	}
}

// handleSeason serves the full render payload for one year. Years with no
// data still render: the payload carries an explicit empty placeholder.
func (h *SeasonHandler) handleSeason(w http.ResponseWriter, r *http.Request, year int) {
	view, err := h.deps.Season(r.Context(), year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *SeasonHandler) handleSeasonRankings(w http.ResponseWriter, r *http.Request, year int) {
	rows, err := h.deps.SeasonRankings(r.Context(), year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	rows, ok := h.applyLimit(rows, r)
	if !ok {
		writeError(w, http.StatusBadRequest, "limit_exceeded", ErrBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *SeasonHandler) handleCircuitRankings(w http.ResponseWriter, r *http.Request, year int, name string) {
	rows, err := h.deps.CircuitRankings(r.Context(), year, name)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	rows, ok := h.applyLimit(rows, r)
	if !ok {
		writeError(w, http.StatusBadRequest, "limit_exceeded", ErrBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *SeasonHandler) handleProgressionPNG(w http.ResponseWriter, r *http.Request, year int) {
	img, err := h.deps.ProgressionPNG(r.Context(), year)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", err)
		return
	}
	writePNG(w, img)
}

func (h *SeasonHandler) handleStandingsPNG(w http.ResponseWriter, r *http.Request, year int) {
	img, err := h.deps.StandingsPNG(r.Context(), year)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", err)
		return
	}
	writePNG(w, img)
}

// applyLimit caps the rows by the optional ?limit query parameter. Reports
// false when the parameter is malformed or exceeds the configured cap.
func (h *SeasonHandler) applyLimit(rows []Standing, r *http.Request) ([]Standing, bool) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return rows, true
	}
	n, err := strconv.Atoi(limitStr)
	if err != nil || n < 1 || n > h.maxLimit {
		return nil, false
	}
	if n < len(rows) {
		rows = rows[:n]
	}
	return rows, true
}

func writePNG(w http.ResponseWriter, img []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}
