// Package standings derives ranked season views from the loaded tables.
package standings

import (
	"sort"

	"github.com/pitwall/pitboard/internal/domain/model"
)

// Seasoned is satisfied by any record that belongs to a season.
type Seasoned interface {
	Season() int
}

// FilterYear returns the subset of rows matching the given year.
// The input is never mutated; an empty result is valid and not an error.
func FilterYear[T Seasoned](rows []T, year int) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if r.Season() == year {
			out = append(out, r)
		}
	}
	return out
}

// Rankings is a standings table ordered by points descending. Each row keeps
// its source Position, so the slice doubles as a position-keyed view: a fully
// populated season has contiguous positions starting at 1.
type Rankings []model.DriverResult

// Codes returns the driver codes in ranking order. Used to order chart
// legends by final standings.
func (r Rankings) Codes() []string {
	codes := make([]string, len(r))
	for i, d := range r {
		codes[i] = d.Code
	}
	return codes
}

// Leader returns the position-1 row.
// Returns ErrEmptyRankings when the table has no rows.
func (r Rankings) Leader() (model.DriverResult, error) {
	if len(r) == 0 {
		return model.DriverResult{}, ErrEmptyRankings
	}
	return r[0], nil
}

// SeasonRankings returns the driver standings at the last round present in
// drivers, sorted by points descending. The sort is stable: drivers on equal
// points keep their source order. Returns ErrEmptyInput when drivers is
// empty, since the last round is undefined.
func SeasonRankings(drivers []model.DriverResult) (Rankings, error) {
	if len(drivers) == 0 {
		return nil, ErrEmptyInput
	}
	last := MaxRound(drivers)
	return atRound(drivers, last), nil
}

// CircuitRankings returns the driver standings at the round hosted by the
// named circuit. The round is taken from the first circuits row whose name
// matches; returns ErrCircuitNotFound when no row matches. An empty drivers
// selection for that round yields an empty table, not an error.
func CircuitRankings(drivers []model.DriverResult, circuits []model.Circuit, name string) (Rankings, error) {
	rnd := -1
	for _, c := range circuits {
		if c.Name == name {
			rnd = c.Round
			break
		}
	}
	if rnd < 0 {
		return nil, ErrCircuitNotFound
	}
	return atRound(drivers, rnd), nil
}

// MaxRound returns the highest round number present in drivers, or 0 when
// drivers is empty.
func MaxRound(drivers []model.DriverResult) int {
	maxRnd := 0
	for _, d := range drivers {
		if d.Round > maxRnd {
			maxRnd = d.Round
		}
	}
	return maxRnd
}

// atRound selects rows at the given round and orders them by points
// descending, ties by source order.
func atRound(drivers []model.DriverResult, round int) Rankings {
	rows := make(Rankings, 0, len(drivers))
	for _, d := range drivers {
		if d.Round == round {
			rows = append(rows, d)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Points > rows[j].Points
	})
	return rows
}
