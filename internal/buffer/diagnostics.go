package buffer

import "github.com/modaltree/structon/internal/overlay"

// SetDiagnostics implements spec §4.2 set_diagnostics(list): replaces
// the diagnostic overlay wholesale, sorted by start position and
// anchored by Position rather than CharIndex so later edits elsewhere
// in the document don't invalidate them.
func (b *Buffer) SetDiagnostics(items []overlay.Diagnostic) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.overlays.Diagnostics.Set(items)
}

// Diagnostics returns every current diagnostic, sorted by start
// position.
func (b *Buffer) Diagnostics() []overlay.Diagnostic {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.overlays.Diagnostics.All()
}
