// Package overlay holds a buffer's auxiliary, re-indexed-on-edit data:
// diagnostics, bookmarks, syntax highlight spans, and caller-supplied
// decorations. Diagnostic, bookmark and decoration ranges are shifted
// through each edit by the same offset-transform algebra the
// cursor/selection layer uses, so an overlay set by line/column before an
// edit still names the same underlying tokens after it; highlight spans
// are not shifted but recomputed from the syntax tree.
package overlay
