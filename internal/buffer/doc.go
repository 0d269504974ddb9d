// Package buffer composes internal/rope, internal/syntax,
// internal/overlay, internal/history, internal/selection, and
// internal/edit into
// the single stateful object the rest of the editor core drives: a
// buffer owns the document text, its optional syntax tree, its
// overlays (diagnostics, bookmarks, highlights, decorations), and its
// undo/redo history, and exposes every operation of spec §4.2 as a
// method.
//
// Thread Safety:
//
// Buffer methods are guarded by a sync.RWMutex, matching the teacher's
// buffer package, even though §5 commits the editor core to a
// single-threaded cooperative event loop: the mutex is cheap insurance
// for callers that read buffer state (e.g. a renderer) from outside the
// command-dispatch goroutine.
package buffer
