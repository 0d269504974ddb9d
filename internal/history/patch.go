package history

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/modaltree/structon/internal/selection"
)

var dmp = diffmatchpatch.New()

// Patch is one undo/redo stack entry: the selection set to restore when
// this patch is applied, and the diff text to apply to the buffer's
// current text to reach the state this patch represents (spec §4.8).
type Patch struct {
	Selection selection.Set
	Diff      string
}

// makeDiff computes a patch (in diff-match-patch's compact text format)
// that transforms from into to.
func makeDiff(from, to string) string {
	diffs := dmp.DiffMain(from, to, false)
	patches := dmp.PatchMake(from, diffs)
	return dmp.PatchToText(patches)
}

// applyDiff applies a diff produced by makeDiff to text, returning the
// resulting text. Fails with ErrPatchApplyFailed if any hunk doesn't
// apply cleanly — spec §7 PatchApplyFailed: "indicates concurrent
// external mutation; report, do not corrupt."
func applyDiff(diff string, text string) (string, error) {
	patches, err := dmp.PatchFromText(diff)
	if err != nil {
		return "", ErrPatchApplyFailed
	}
	result, applied := dmp.PatchApply(patches, text)
	for _, ok := range applied {
		if !ok {
			return "", ErrPatchApplyFailed
		}
	}
	return result, nil
}
