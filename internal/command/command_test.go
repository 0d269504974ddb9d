package command

import (
	"context"
	"testing"

	"github.com/modaltree/structon/internal/buffer"
	"github.com/modaltree/structon/internal/edit"
	"github.com/modaltree/structon/internal/ops"
	"github.com/modaltree/structon/internal/position"
	"github.com/modaltree/structon/internal/selection"
	"github.com/modaltree/structon/internal/syntax"
)

func newState(text string) *State {
	buf := buffer.New(syntax.Language{}, text)
	return New(buf)
}

func TestDispatchUpdateBufferClampsSelection(t *testing.T) {
	s := newState("hello world")
	s.Selection.Primary.Range = position.Range{Start: 9, End: 11}

	_, err := s.Dispatch(context.Background(), Command{Kind: UpdateBuffer, Text: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Buffer.Text() != "hi" {
		t.Fatalf("unexpected text: %q", s.Buffer.Text())
	}
	if s.Selection.Primary.Range.End > 2 {
		t.Fatalf("expected selection clamped to new length, got %+v", s.Selection.Primary.Range)
	}
}

func TestDispatchApplyTransactionAndUndo(t *testing.T) {
	s := newState("hello world")

	txn := edit.Transaction{Groups: []edit.ActionGroup{{Actions: []edit.Action{
		{Kind: edit.ActionEdit, Edit: edit.Edit{Range: position.Range{Start: 0, End: 5}, New: "howdy"}},
		{Kind: edit.ActionSelect, Select: position.Range{Start: 0, End: 5}},
	}}}}

	out, err := s.Dispatch(context.Background(), Command{Kind: ApplyTransaction, Transaction: txn})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].Kind != DocumentDidChange {
		t.Fatalf("expected a DocumentDidChange outgoing, got %+v", out)
	}
	if s.Buffer.Text() != "howdy world" {
		t.Fatalf("unexpected text: %q", s.Buffer.Text())
	}

	if _, err := s.Dispatch(context.Background(), Command{Kind: Undo}); err != nil {
		t.Fatalf("unexpected undo error: %v", err)
	}
	if s.Buffer.Text() != "hello world" {
		t.Fatalf("expected undo to restore original text, got %q", s.Buffer.Text())
	}

	if _, err := s.Dispatch(context.Background(), Command{Kind: Redo}); err != nil {
		t.Fatalf("unexpected redo error: %v", err)
	}
	if s.Buffer.Text() != "howdy world" {
		t.Fatalf("expected redo to reapply the edit, got %q", s.Buffer.Text())
	}
}

func TestDispatchMoveNextWord(t *testing.T) {
	s := newState("alpha beta gamma")
	s.Selection = selection.NewSet(selection.Cursor(0), selection.Mode{Kind: selection.Word})

	if _, err := s.Dispatch(context.Background(), Command{Kind: Move, Direction: 1 /* selmode.Next */}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Selection.Primary.Range != (position.Range{Start: 6, End: 10}) {
		t.Fatalf("expected cursor on 'beta', got %+v", s.Selection.Primary.Range)
	}
}

func TestDispatchKillRemovesWordAndAdvancesClipboard(t *testing.T) {
	s := newState("alpha beta gamma")
	s.Selection = selection.NewSet(selection.New(position.Range{Start: 0, End: 5}), selection.Mode{Kind: selection.Word})

	if _, err := s.Dispatch(context.Background(), Command{Kind: Kill, KillCut: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Buffer.Text() != " beta gamma" {
		t.Fatalf("unexpected text after kill: %q", s.Buffer.Text())
	}
	if s.Clipboard.Get() != "alpha" {
		t.Fatalf("expected clipboard to hold killed text, got %q", s.Clipboard.Get())
	}
}

func TestDispatchCutThenPasteUsesPerCursorCopiedText(t *testing.T) {
	s := newState("alpha beta")
	s.Selection = selection.NewSet(selection.New(position.Range{Start: 0, End: 5}), selection.Mode{})

	if _, err := s.Dispatch(context.Background(), Command{Kind: Cut}); err != nil {
		t.Fatalf("unexpected cut error: %v", err)
	}
	if s.Buffer.Text() != " beta" {
		t.Fatalf("unexpected text after cut: %q", s.Buffer.Text())
	}
	if s.Selection.Primary.CopiedText == nil || s.Selection.Primary.CopiedText.String() != "alpha" {
		t.Fatalf("expected primary selection's copied text to be set, got %+v", s.Selection.Primary.CopiedText)
	}

	if _, err := s.Dispatch(context.Background(), Command{Kind: Paste, PasteDirection: ops.PasteAfter}); err != nil {
		t.Fatalf("unexpected paste error: %v", err)
	}
	if s.Buffer.Text() != " alpha beta" {
		t.Fatalf("unexpected text after paste, got %q", s.Buffer.Text())
	}
}

func TestDispatchAddCursorThenMultiCursorChange(t *testing.T) {
	s := newState("aa bb cc")
	s.Selection = selection.NewSet(selection.New(position.Range{Start: 0, End: 2}), selection.Mode{Kind: selection.Word})

	if _, err := s.Dispatch(context.Background(), Command{Kind: AddCursor, Direction: 1 /* selmode.Next */}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Selection.IsMulti() {
		t.Fatalf("expected a secondary selection after AddCursor")
	}

	if _, err := s.Dispatch(context.Background(), Command{Kind: Change}); err != nil {
		t.Fatalf("unexpected change error: %v", err)
	}
	if s.Buffer.Text() != "  cc" {
		t.Fatalf("expected both cursors' words deleted, got %q", s.Buffer.Text())
	}
}

func TestDispatchSaveWithNoPathReportsError(t *testing.T) {
	s := newState("hello")

	out, err := s.Dispatch(context.Background(), Command{Kind: SaveBuffer})
	if err == nil {
		t.Fatalf("expected an error for a pathless save")
	}
	if len(out) != 1 || out[0].Kind != ShowInfo {
		t.Fatalf("expected a ShowInfo outgoing, got %+v", out)
	}
}

func TestDispatchInstallFilterRejectsInvalidRegex(t *testing.T) {
	s := newState("hello")

	_, err := s.Dispatch(context.Background(), Command{Kind: InstallFilter, Filter: selection.Filter{
		Mechanism: selection.MechanismRegex,
		Pattern:   "(unterminated",
	}})
	if err == nil {
		t.Fatalf("expected an error for an invalid filter regex")
	}
	if len(s.Selection.Filters) != 0 {
		t.Fatalf("expected the invalid filter to not be installed")
	}
}

func TestDispatchScrollAndAlignTop(t *testing.T) {
	s := newState("one\ntwo\nthree\nfour\nfive")
	s.Selection.Primary.Range = position.Range{Start: 8, End: 8} // start of "three"

	if _, err := s.Dispatch(context.Background(), Command{Kind: SetRectangle, Rect: Rect{Width: 80, Height: 10}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Dispatch(context.Background(), Command{Kind: AlignTop}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Viewport.ScrollLine != 2 {
		t.Fatalf("expected scroll line 2, got %d", s.Viewport.ScrollLine)
	}
}
