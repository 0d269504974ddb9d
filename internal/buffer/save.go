package buffer

import (
	"context"
	"fmt"
	"os"

	"github.com/modaltree/structon/internal/rope"
	"github.com/modaltree/structon/internal/selection"
)

// Formatter is the external interface spec §6 Save consumes:
// format(text) → Result<text, error>. Invoked only when the buffer's
// tree reports no syntax error; its output replaces the buffer
// atomically on success.
type Formatter interface {
	Format(text string) (string, error)
}

// Save implements spec §4.2 save(selection_set) / §6 Persistence: when
// formatter is non-nil and the tree has no error, formats the text and
// applies it as an update, pushing a history patch so the reformat is
// itself undoable; then writes the buffer's text to Path() as UTF-8.
// A formatter error never rewrites the buffer — the original text is
// kept and the write proceeds unformatted, with ErrFormatterFailed
// returned for the caller to surface (spec §7: "report, do not
// corrupt"). Saving without a path is a no-op reporting ErrNoPath.
func (b *Buffer) Save(ctx context.Context, current selection.Set, formatter Formatter) (selection.Set, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.path == "" {
		return current, ErrNoPath
	}

	newSet := current
	var formatErr error

	if formatter != nil && (b.tree == nil || !b.tree.HasError()) {
		oldText := b.rope.String()
		formatted, err := formatter.Format(oldText)
		switch {
		case err != nil:
			formatErr = fmt.Errorf("%w: %v", ErrFormatterFailed, err)
		case formatted != oldText:
			b.history.Record(oldText, formatted, current)
			b.rope = rope.FromString(formatted)
			b.overlays.ClampToLength(b.rope.CharLen())
			b.revision = NewRevisionID()
			if !b.frozen {
				b.reparseWhole(ctx)
			}
			newSet = current.Clamp(b.rope.CharLen())
		}
	}

	if err := os.WriteFile(b.path, []byte(b.rope.String()), 0o644); err != nil {
		return newSet, err
	}

	return newSet, formatErr
}
