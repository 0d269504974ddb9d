package overlay

import "github.com/modaltree/structon/internal/rope"

// Overlays aggregates all four of a buffer's auxiliary data sets, per
// spec §3 Buffer: "diagnostics, bookmarks, highlighted_spans, decorations".
type Overlays struct {
	Diagnostics Diagnostics
	Bookmarks   Bookmarks
	Highlights  Highlights
	Decorations Decorations
}

// ApplyEdit re-indexes every overlay across a single applied edit. Called
// once per edit in an edit transaction, in the same order the edits were
// applied to the rope, so each overlay sees consistent before/after ropes.
func (o *Overlays) ApplyEdit(oldRope, newRope rope.Rope, edit Edit) {
	o.Diagnostics.ApplyEdit(oldRope, newRope, edit)
	o.Bookmarks.ApplyEdit(edit)
	o.Decorations.ApplyEdit(edit)
	// Highlights are recomputed wholesale from the fresh tree by the
	// caller (internal/buffer), not shifted incrementally.
}

// ClampToLength discards or truncates bookmark ranges left dangling past
// the end of the document, used after a whole-document replace via
// Buffer.update. Diagnostic, highlight and decoration ranges are not
// clamped.
func (o *Overlays) ClampToLength(length rope.CharIndex) {
	o.Bookmarks.clampToLen(length)
}
