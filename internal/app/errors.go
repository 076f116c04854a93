package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotFound   = errors.New("item not found")
	ErrNotStarted = errors.New("service not started")
)
