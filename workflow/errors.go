package workflow

import (
	"errors"
)

// Error taxonomy surfaced to the HTTP layer. Store-level duplicate detection
// (store.ErrDuplicateJobNumber) passes through unwrapped so callers can map it
// to a conflict. The engine never retries; retry policy belongs to the caller.
var (
	// ErrInvalidInput marks missing or malformed caller input
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a referenced job or step that does not exist
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable marks a persistence failure. Safe to retry for
	// everything except job creation, where a duplicate may already have
	// landed.
	ErrStoreUnavailable = errors.New("store unavailable")
)
