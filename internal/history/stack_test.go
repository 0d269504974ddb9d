package history

import (
	"testing"

	"github.com/modaltree/structon/internal/selection"
)

func TestUndoRedoRoundTrip(t *testing.T) {
	s := New(0)
	before := selection.NewSet(selection.Cursor(0), selection.Mode{Kind: selection.Character})
	after := selection.NewSet(selection.Cursor(5), selection.Mode{Kind: selection.Character})

	oldText := "hello"
	newText := "hello world"

	s.Record(oldText, newText, before)
	if !s.CanUndo() || s.CanRedo() {
		t.Fatalf("expected CanUndo true, CanRedo false after Record")
	}

	restored, restoredSel, err := s.Undo(newText, after)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored != oldText {
		t.Fatalf("expected undo to restore %q, got %q", oldText, restored)
	}
	if restoredSel.Primary.Range != before.Primary.Range {
		t.Fatalf("expected restored selection to equal pre-edit selection")
	}
	if !s.CanRedo() {
		t.Fatalf("expected CanRedo true after Undo")
	}

	redone, redoneSel, err := s.Redo(restored, restoredSel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if redone != newText {
		t.Fatalf("expected redo to reproduce %q, got %q", newText, redone)
	}
	if redoneSel.Primary.Range != after.Primary.Range {
		t.Fatalf("expected redo to restore post-edit selection")
	}
}

func TestUndoOnEmptyStackErrors(t *testing.T) {
	s := New(0)
	_, _, err := s.Undo("x", selection.Set{})
	if err != ErrNothingToUndo {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestRecordClearsRedoStack(t *testing.T) {
	s := New(0)
	before := selection.NewSet(selection.Cursor(0), selection.Mode{Kind: selection.Character})
	s.Record("a", "ab", before)
	_, _, err := s.Undo("ab", before)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.CanRedo() {
		t.Fatalf("expected redo available after undo")
	}
	s.Record("a", "ac", before)
	if s.CanRedo() {
		t.Fatalf("expected redo stack cleared after a new forward edit")
	}
}
