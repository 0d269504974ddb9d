package buffer

import (
	"context"
	"sync"

	"github.com/modaltree/structon/internal/history"
	"github.com/modaltree/structon/internal/overlay"
	"github.com/modaltree/structon/internal/rope"
	"github.com/modaltree/structon/internal/syntax"
)

// Buffer is spec §3's Buffer: a rope of text, an optional syntax tree,
// the four overlay sets, and the undo/redo history that together back
// every operation in spec §4.
type Buffer struct {
	mu sync.RWMutex

	rope rope.Rope
	lang syntax.Language
	tree *syntax.Tree // nil: no grammar set, or the grammar failed to parse

	overlays overlay.Overlays
	history  *history.Stack

	revision RevisionID
	path     string

	// frozen suspends reparsing across ApplyEditTransaction calls (spec
	// §4.2 Reparse policy: "while the editor is in insert mode the tree
	// may be frozen until normal mode is re-entered").
	frozen bool
}

// New constructs a Buffer with an initial parse under lang. Pass the
// zero Language to build a buffer with no syntax tree at all (spec §3:
// "optional language handle").
func New(lang syntax.Language, text string) *Buffer {
	b := &Buffer{
		rope:     rope.FromString(text),
		lang:     lang,
		history:  history.New(0),
		revision: NewRevisionID(),
	}
	b.reparseWhole(context.Background())
	return b
}

// SetPath records the path Save writes to.
func (b *Buffer) SetPath(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.path = path
}

// Path returns the buffer's current save path, empty if none is set.
func (b *Buffer) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// Revision returns the buffer's current RevisionID.
func (b *Buffer) Revision() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// Rope returns the buffer's current text as a Rope. Ropes are
// immutable, so this is a cheap, safe-to-share snapshot.
func (b *Buffer) Rope() rope.Rope {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope
}

// Text returns the buffer's full text. Use Rope/Slice for large
// buffers to avoid the allocation.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.String()
}

// HasTree reports whether a syntax tree is currently available.
func (b *Buffer) HasTree() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tree != nil
}

// Tree returns the buffer's current syntax tree, nil if none is available
// — the caller-facing seam selection-mode and node-query callers bundle
// into their own params rather than this package depending on
// internal/selmode itself.
func (b *Buffer) Tree() *syntax.Tree {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tree
}

// Language returns the buffer's grammar handle, the zero Language if
// none is set.
func (b *Buffer) Language() syntax.Language {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lang
}

// Overlays returns a pointer to the buffer's overlay sets. Callers
// outside the command-dispatch goroutine should treat the returned
// value as read-only; mutating overlays goes through SetDiagnostics or
// the Overlays methods directly while holding no other reference.
func (b *Buffer) Overlays() *overlay.Overlays {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return &b.overlays
}

// FreezeSyntax suspends reparsing on subsequent ApplyEditTransaction
// calls — trading tree freshness for keystroke latency while the
// editor is in insert mode (spec §4.2 Reparse policy).
func (b *Buffer) FreezeSyntax() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frozen = true
}

// UnfreezeSyntax re-enables reparsing and immediately rebuilds the tree
// from the current text, catching up on every keystroke the editor
// absorbed while frozen. Called when normal mode is re-entered.
func (b *Buffer) UnfreezeSyntax(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frozen = false
	b.reparseWhole(ctx)
}

// Update replaces all content, reparses, and recomputes highlights.
// No history entry is recorded (spec §4.2 update(text)).
func (b *Buffer) Update(ctx context.Context, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.rope = rope.FromString(text)
	b.overlays.ClampToLength(b.rope.CharLen())
	b.revision = NewRevisionID()
	b.reparseWhole(ctx)
}

func (b *Buffer) reparseWhole(ctx context.Context) {
	if b.tree != nil {
		b.tree.Close()
		b.tree = nil
	}
	if b.lang.IsZero() {
		b.overlays.Highlights.Replace(nil)
		return
	}
	tree, err := syntax.Parse(ctx, b.lang, []byte(b.rope.String()))
	if err != nil {
		b.overlays.Highlights.Replace(nil)
		return
	}
	b.tree = tree
	b.overlays.Highlights.Replace(overlay.ComputeFromTree(b.rope, b.tree.Root()))
}

// Close releases the buffer's native tree resources. Safe to call
// more than once.
func (b *Buffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.tree != nil {
		b.tree.Close()
		b.tree = nil
	}
}
