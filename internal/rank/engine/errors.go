package engine

import "errors"

// Sentinel kinds for engine errors.
var (
	ErrNotBuilt = errors.New("ranking view not built")
)
