package topk

import "errors"

// Sentinel kinds for selection errors.
var (
	ErrEmptyInput = errors.New("selection on empty input")
	ErrOutOfRange = errors.New("rank out of range")
)
