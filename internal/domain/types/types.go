// Package types contains common types used across the application
package types

import "github.com/pitwall/pitboard/internal/domain/charts"

// Standing represents one row of a rankings table.
type Standing struct {
	Position int     `json:"position"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Number   int     `json:"number"`
	Points   float64 `json:"points"`
}

// Race represents one row of the season schedule table.
type Race struct {
	Round   int    `json:"round"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// SeasonView is the full render payload for one selected year: everything
// the dashboard page needs for a single interaction. It is recomputed from
// the snapshot per request and safe to cache until the snapshot changes.
type SeasonView struct {
	Year        int                   `json:"year"`
	Title       string                `json:"title"`
	Empty       bool                  `json:"empty"` // no rows for this year; render a placeholder
	Winner      string                `json:"winner,omitempty"`
	Races       []Race                `json:"races"`
	Standings   []Standing            `json:"standings"`
	WorldMap    charts.GeoScatterSpec `json:"world_map"`
	Progression charts.LineChartSpec  `json:"progression"`
	PointsBar   charts.BarChartSpec   `json:"points_bar"`
}
