package buffer

import (
	"errors"

	"github.com/modaltree/structon/internal/edit"
	"github.com/modaltree/structon/internal/history"
)

// Sentinel errors covering spec §7's error taxonomy that has no home in
// a lower package. OutOfBounds/InvalidRange/OverlappingEdits/
// PatchApplyFailed already exist as internal/edit and internal/history
// sentinels; re-exported here (rather than duplicated) so a caller that
// only imports internal/buffer can errors.Is against the whole
// taxonomy without reaching into internal packages directly.
var (
	// ErrOutOfBounds: char/byte/line index exceeds current text; the
	// operation is rejected.
	ErrOutOfBounds = edit.ErrOutOfBounds
	// ErrInvalidRange: start > end, or a range straddles invalid UTF-8.
	ErrInvalidRange = edit.ErrInvalidRange
	// ErrOverlappingEdits: two cursors' edits intersect; the transaction
	// is rejected.
	ErrOverlappingEdits = edit.ErrOverlappingEdits
	// ErrPatchApplyFailed: an undo/redo diff did not apply cleanly,
	// indicating concurrent external mutation.
	ErrPatchApplyFailed = history.ErrPatchApplyFailed

	// ErrSyntaxFrozen is returned by operations that require a live tree
	// (get_current_node and friends) when the buffer has no grammar set
	// at all. It is not returned for the insert-mode freeze case — that
	// one serves stale-but-present tree data rather than erroring (spec
	// §4.2: "mode falls back to character movement" is a caller-side
	// decision, not a buffer-level rejection).
	ErrSyntaxFrozen = errors.New("buffer: no syntax tree available")
	// ErrFormatterFailed is returned by Save when a configured Formatter
	// errors; the original text is kept and the save proceeds
	// unformatted (spec §7: "original text is kept, save proceeds with
	// unformatted text logged").
	ErrFormatterFailed = errors.New("buffer: formatter failed")
	// ErrFilterRegexInvalid is returned when a caller-supplied filter
	// pattern fails to compile; the filter is not installed.
	ErrFilterRegexInvalid = errors.New("buffer: filter pattern invalid")
	// ErrNoPath is returned by Save when the buffer has no associated
	// path; reported to the caller rather than silently failing (spec
	// §6: "saving without a path is a no-op reported to the caller").
	ErrNoPath = errors.New("buffer: no path set")
)
