// Package dataset defines the season data store interface and errors.
//
// The store owns the process-lifetime snapshot of the two source tables.
// A snapshot is immutable once published: readers get the same slices until
// the next reload swaps the whole snapshot, so no caller-side locking is
// needed and returned slices must be treated as read-only.
package dataset

import (
	"context"

	"github.com/pitwall/pitboard/internal/domain/model"
)

// Store provides read access to the loaded season tables.
type Store interface {
	// Circuits returns every circuit row of the loaded snapshot.
	// Returns ErrUnavailable if the table could not be loaded.
	Circuits(ctx context.Context) ([]model.Circuit, error)

	// Drivers returns every driver result row of the loaded snapshot.
	// Returns ErrUnavailable if the table could not be loaded.
	Drivers(ctx context.Context) ([]model.DriverResult, error)
}
