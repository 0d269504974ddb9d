// Package selection defines the buffer-independent selection data model:
// a single Selection (range, visual-mode anchor, copied text, info), the
// closed SelectionMode variant set, and SelectionSet (primary + secondary
// selections sharing one mode and filter chain). The iterator/movement
// capability that interprets a SelectionMode against a buffer lives in
// internal/selmode; this package only holds the values that capability
// operates on.
package selection
