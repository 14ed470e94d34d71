package standings

import "errors"

// Sentinel kinds for standings errors.
var (
	ErrEmptyInput      = errors.New("no driver rows for season")
	ErrCircuitNotFound = errors.New("circuit not found")
	ErrEmptyRankings   = errors.New("rankings table is empty")
)
