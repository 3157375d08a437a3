package service

import "errors"

// Sentinel kinds for service errors.
var (
	// ErrTooSoon rejects a feedback submission inside the resubmission
	// window. Callers must surface it differently from a generic
	// failure.
	ErrTooSoon = errors.New("feedback resubmitted too soon")

	// ErrInvalidLevel rejects a crowding level outside 1..3.
	ErrInvalidLevel = errors.New("invalid crowding level")
)
