package buffer

import (
	"context"

	"github.com/modaltree/structon/internal/rope"
	"github.com/modaltree/structon/internal/selection"
)

// Undo implements spec §4.2 undo(current_selection_set): pops the most
// recent undo patch, inverse-applies it against the current text,
// pushes the inverse onto the redo stack, and returns the selection
// set recorded when that transaction was originally applied.
func (b *Buffer) Undo(ctx context.Context, current selection.Set) (selection.Set, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	restoredText, restoredSelection, err := b.history.Undo(b.rope.String(), current)
	if err != nil {
		return selection.Set{}, err
	}
	b.commitHistoryRestore(ctx, restoredText)
	return restoredSelection.Clamp(b.rope.CharLen()), nil
}

// Redo implements spec §4.2 redo(current_selection_set): the mirror of
// Undo, reapplying the most recently undone transaction.
func (b *Buffer) Redo(ctx context.Context, current selection.Set) (selection.Set, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	restoredText, restoredSelection, err := b.history.Redo(b.rope.String(), current)
	if err != nil {
		return selection.Set{}, err
	}
	b.commitHistoryRestore(ctx, restoredText)
	return restoredSelection.Clamp(b.rope.CharLen()), nil
}

// commitHistoryRestore installs text recovered by Undo/Redo: unlike
// ApplyEditTransaction, a diff-applied restore has no ActionGroup
// structure to replay edit by edit, so overlays are clamped rather than
// incrementally shifted and the tree is rebuilt from scratch (subject
// to the freeze policy, unlike Update, which always reparses).
func (b *Buffer) commitHistoryRestore(ctx context.Context, text string) {
	b.rope = rope.FromString(text)
	b.overlays.ClampToLength(b.rope.CharLen())
	b.revision = NewRevisionID()
	if !b.frozen {
		b.reparseWhole(ctx)
	}
}
