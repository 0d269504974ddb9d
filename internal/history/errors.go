package history

import "errors"

var (
	// ErrNothingToUndo is returned when the undo stack is empty.
	ErrNothingToUndo = errors.New("history: nothing to undo")
	// ErrNothingToRedo is returned when the redo stack is empty.
	ErrNothingToRedo = errors.New("history: nothing to redo")
	// ErrPatchApplyFailed is returned when a reverse or forward diff does
	// not apply cleanly against the current text (spec §7
	// PatchApplyFailed: "indicates concurrent external mutation; report,
	// do not corrupt").
	ErrPatchApplyFailed = errors.New("history: patch did not apply cleanly")
)
