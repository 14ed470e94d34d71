package gendata

import "errors"

// Sentinel kinds for generator errors.
var (
	ErrBadConfig = errors.New("bad generator config")
	ErrWrite     = errors.New("write dataset failed")
)
