package repository

import (
	"errors"
	"fmt"
)

// Sentinel kinds for store errors. Callers use errors.Is to tell a
// transport failure apart from legitimately empty data.
var (
	// ErrFetch marks transport or storage failures. The whole
	// computation aborts on these; retries are the caller's business.
	ErrFetch = errors.New("data fetch failed")
)

// fetchError wraps an underlying driver error as an ErrFetch kind,
// tagged with the failing operation.
func fetchError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrFetch, err)
}
