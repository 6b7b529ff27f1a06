package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrSourceUnavailable indicates the remote image source is unreachable
	// or returned a non-success status
	ErrSourceUnavailable = errors.New("image source is unavailable")

	// ErrNoImageAvailable indicates the prefetch cache is empty even after
	// a refill attempt; callers substitute a placeholder
	ErrNoImageAvailable = errors.New("no image available")

	// ErrNotFound indicates a removal referenced an absent recipient or an
	// out-of-range position (a stale-index caller bug)
	ErrNotFound = errors.New("assignment not found")

	// ErrViewerClosed indicates a navigation call on a closed viewer
	ErrViewerClosed = errors.New("viewer is closed")

	// ErrInvalidStart indicates the viewer was opened on an empty sequence
	// or an out-of-bounds start position
	ErrInvalidStart = errors.New("invalid viewer start position")
)
