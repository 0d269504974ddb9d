package edit

import "errors"

// Sentinel errors for the edit pipeline, named by kind per spec §7's error
// taxonomy rather than by call site.
var (
	// ErrOutOfBounds is returned when an edit's range falls outside
	// [0, rope.len_chars()] after the running shift is applied.
	ErrOutOfBounds = errors.New("edit: out of bounds")
	// ErrInvalidRange is returned when an Edit's range has Start > End.
	ErrInvalidRange = errors.New("edit: invalid range")
	// ErrOverlappingEdits is returned when two cursors' edits intersect.
	ErrOverlappingEdits = errors.New("edit: overlapping edits")
)
