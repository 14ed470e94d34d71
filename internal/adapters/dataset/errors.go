package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrUnavailable   = errors.New("dataset unavailable")
	ErrMissingColumn = errors.New("missing column")
)
