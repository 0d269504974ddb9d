package workspace

import (
	"context"
	"sync"

	"github.com/modaltree/structon/internal/buffer"
	"github.com/modaltree/structon/internal/edit"
	"github.com/modaltree/structon/internal/langserver"
	"github.com/modaltree/structon/internal/overlay"
	"github.com/modaltree/structon/internal/position"
	"github.com/modaltree/structon/internal/selection"
)

// entry pairs an open buffer with the component id of the background
// collaborator (language server, ripgrep, ...) currently responsible for
// it, so a message from a collaborator the buffer has since moved on from
// can be recognized as stale and discarded (spec §5 Cancellation).
type entry struct {
	buf         *buffer.Buffer
	componentID string
}

// Workspace is the core's registry of open buffers, keyed by path, and
// the landing point for every background-collaborator message spec §5
// describes. Workspace itself does no queueing or draining — the caller
// is expected to hold the single incoming-message channel and call these
// methods synchronously, in arrival order per path, once each message is
// dequeued.
type Workspace struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// New returns an empty Workspace.
func New() *Workspace {
	return &Workspace{entries: make(map[string]*entry)}
}

// Open registers buf under path, owned by componentID. Opening a path
// already open replaces its entry outright (e.g. a reload), adopting the
// new componentID.
func (w *Workspace) Open(path, componentID string, buf *buffer.Buffer) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries[path] = &entry{buf: buf, componentID: componentID}
}

// Close drops path from the workspace without closing the buffer itself
// — ownership of the *buffer.Buffer's lifecycle stays with the caller.
func (w *Workspace) Close(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.entries, path)
}

// Get returns the buffer open at path, if any.
func (w *Workspace) Get(path string) (*buffer.Buffer, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e, ok := w.entries[path]
	if !ok {
		return nil, false
	}
	return e.buf, true
}

// lookup resolves path to its entry and checks componentID against it,
// returning ok=false for an unknown path or a componentID mismatch — the
// latter is the stale-message case spec §5 describes, not an error to
// surface to the caller.
func (w *Workspace) lookup(path, componentID string) (*buffer.Buffer, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e, ok := w.entries[path]
	if !ok || e.componentID != componentID {
		return nil, false
	}
	return e.buf, true
}

// SetDiagnostics implements spec §5's set_diagnostics(path, list): replaces
// the diagnostics overlay for the buffer open at path. A stale or unknown
// path is silently ignored.
func (w *Workspace) SetDiagnostics(componentID, path string, list []overlay.Diagnostic) {
	buf, ok := w.lookup(path, componentID)
	if !ok {
		return
	}
	buf.SetDiagnostics(list)
}

// PublishHighlights implements spec §5's publish_highlights(path, spans):
// replaces the highlight overlay for the buffer open at path. A stale or
// unknown path is silently ignored.
func (w *Workspace) PublishHighlights(componentID, path string, spans []overlay.HighlightSpan) {
	buf, ok := w.lookup(path, componentID)
	if !ok {
		return
	}
	buf.Overlays().Highlights.Replace(spans)
}

// ApplyPositionalEdits implements spec §5's apply_positional_edits(path,
// edits): converts each edit's (line, column) range to CharIndex against
// the buffer's current text and applies every edit for this path as one
// transaction (spec §6: "applies server-provided edits as one
// transaction"). A stale or unknown path is silently ignored, matching the
// Cancellation policy; an out-of-range or overlapping edit set is reported
// to the caller rather than partially applied.
func (w *Workspace) ApplyPositionalEdits(ctx context.Context, componentID, path string, edits []langserver.PositionalEdit) error {
	buf, ok := w.lookup(path, componentID)
	if !ok {
		return nil
	}
	if len(edits) == 0 {
		return nil
	}

	r := buf.Rope()
	actions := make([]edit.Action, 0, len(edits))
	for _, e := range edits {
		rg, err := e.Range.ToCharRange(r)
		if err != nil {
			return err
		}
		actions = append(actions, edit.Action{
			Kind: edit.ActionEdit,
			Edit: edit.Edit{Range: position.Range{Start: rg.Start, End: rg.End}, New: e.NewText},
		})
	}

	txn := edit.Transaction{Groups: []edit.ActionGroup{{Actions: actions}}}
	current := selection.NewSet(selection.Cursor(0), selection.Mode{})
	_, err := buf.ApplyEditTransaction(ctx, txn, current)
	return err
}

// ApplyWorkspaceEdit applies every path's edits in we.Changes. Per path
// ordering follows ApplyPositionalEdits; across paths spec §5 gives no
// ordering guarantee, so the iteration order here is unspecified (Go map
// order).
func (w *Workspace) ApplyWorkspaceEdit(ctx context.Context, componentID string, we langserver.WorkspaceEdit) error {
	for path, edits := range we.Changes {
		if err := w.ApplyPositionalEdits(ctx, componentID, path, edits); err != nil {
			return err
		}
	}
	return nil
}
