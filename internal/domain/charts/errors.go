package charts

import "errors"

// Sentinel kinds for chart rendering errors.
var (
	ErrEmptyChart = errors.New("no data to draw")
)
