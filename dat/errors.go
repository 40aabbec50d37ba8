package dat

import "errors"

// Sentinel errors.
var (
	// ErrNotFound is returned when the requested path is absent from the
	// archive index.
	ErrNotFound = errors.New("dat: file not found")

	// ErrBadIndex is returned when the archive is too short to contain
	// the root index header. Nothing is recoverable past that point.
	ErrBadIndex = errors.New("dat: unreadable index root header")
)
