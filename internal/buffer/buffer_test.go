package buffer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/modaltree/structon/internal/edit"
	"github.com/modaltree/structon/internal/overlay"
	"github.com/modaltree/structon/internal/position"
	"github.com/modaltree/structon/internal/rope"
	"github.com/modaltree/structon/internal/selection"
	"github.com/modaltree/structon/internal/syntax"
)

func TestNewParsesUnderLanguage(t *testing.T) {
	b := New(syntax.Go(), "package main\n")
	defer b.Close()

	if !b.HasTree() {
		t.Fatal("expected a syntax tree for a Go buffer")
	}
	if b.HasSyntaxErrorAt(position.Range{Start: 0, End: b.Rope().CharLen()}) {
		t.Fatal("valid Go source should not report a syntax error")
	}
}

func TestNewWithNoLanguageHasNoTree(t *testing.T) {
	b := New(syntax.Language{}, "hello")
	defer b.Close()

	if b.HasTree() {
		t.Fatal("expected no syntax tree with the zero Language")
	}
	if b.HasSyntaxErrorAt(position.Range{Start: 0, End: 5}) {
		t.Fatal("a treeless buffer reports no syntax errors")
	}
}

func TestUpdateReplacesTextAndRecomputesHighlights(t *testing.T) {
	b := New(syntax.Go(), "package a\n")
	defer b.Close()

	b.Update(context.Background(), "package b\n\nfunc f() {}\n")
	if b.Text() != "package b\n\nfunc f() {}\n" {
		t.Fatalf("unexpected text after update: %q", b.Text())
	}
	if len(b.Overlays().Highlights.All()) == 0 {
		t.Fatal("expected recomputed highlight spans after update")
	}
}

func TestApplyEditTransactionShiftsSelectionAndPushesUndo(t *testing.T) {
	b := New(syntax.Language{}, "hello world")
	defer b.Close()

	current := selection.NewSet(selection.New(position.Range{Start: 0, End: 5}), selection.Mode{})
	txn := edit.Transaction{Groups: []edit.ActionGroup{{
		Actions: []edit.Action{
			{Kind: edit.ActionEdit, Edit: edit.Edit{Range: position.Range{Start: 0, End: 5}, New: "goodbye"}},
			{Kind: edit.ActionSelect, Select: position.Range{Start: 0, End: 7}},
		},
	}}}

	newSet, err := b.ApplyEditTransaction(context.Background(), txn, current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Text() != "goodbye world" {
		t.Fatalf("unexpected text: %q", b.Text())
	}
	if newSet.Primary.Range != (position.Range{Start: 0, End: 7}) {
		t.Fatalf("unexpected selection: %+v", newSet.Primary.Range)
	}

	restored, err := b.Undo(context.Background(), newSet)
	if err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if b.Text() != "hello world" {
		t.Fatalf("expected undo to restore original text, got %q", b.Text())
	}
	if restored.Primary.Range != current.Primary.Range {
		t.Fatalf("expected undo to restore original selection, got %+v", restored.Primary.Range)
	}

	redone, err := b.Redo(context.Background(), restored)
	if err != nil {
		t.Fatalf("redo failed: %v", err)
	}
	if b.Text() != "goodbye world" {
		t.Fatalf("expected redo to reapply the edit, got %q", b.Text())
	}
	if redone.Primary.Range != newSet.Primary.Range {
		t.Fatalf("expected redo to restore post-edit selection, got %+v", redone.Primary.Range)
	}
}

func TestApplyEditTransactionOverlappingEditsRejected(t *testing.T) {
	b := New(syntax.Language{}, "hello world")
	defer b.Close()

	current := selection.NewSet(selection.Cursor(0), selection.Mode{})
	txn := edit.Transaction{Groups: []edit.ActionGroup{
		{Actions: []edit.Action{{Kind: edit.ActionEdit, Edit: edit.Edit{Range: position.Range{Start: 0, End: 6}, New: "x"}}}},
		{Actions: []edit.Action{{Kind: edit.ActionEdit, Edit: edit.Edit{Range: position.Range{Start: 3, End: 8}, New: "y"}}}},
	}}

	if _, err := b.ApplyEditTransaction(context.Background(), txn, current); !errors.Is(err, ErrOverlappingEdits) {
		t.Fatalf("expected ErrOverlappingEdits, got %v", err)
	}
	if b.Text() != "hello world" {
		t.Fatal("a rejected transaction must not mutate the buffer")
	}
}

func TestIncrementalReparseKeepsTreeErrorFree(t *testing.T) {
	b := New(syntax.Go(), "package main\n\nfunc f() {}\n")
	defer b.Close()

	current := selection.NewSet(selection.Cursor(0), selection.Mode{})
	insertAt := position.Range{Start: rope.CharIndex(len("package main\n\nfunc ")), End: rope.CharIndex(len("package main\n\nfunc "))}
	txn := edit.Transaction{Groups: []edit.ActionGroup{{
		Actions: []edit.Action{{Kind: edit.ActionEdit, Edit: edit.Edit{Range: insertAt, New: "g"}}},
	}}}

	if _, err := b.ApplyEditTransaction(context.Background(), txn, current); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.HasSyntaxErrorAt(position.Range{Start: 0, End: b.Rope().CharLen()}) {
		t.Fatal("renaming a function identifier should not introduce a syntax error")
	}
}

func TestFreezeSyntaxSuspendsReparse(t *testing.T) {
	b := New(syntax.Go(), "package main\n")
	defer b.Close()
	b.FreezeSyntax()

	current := selection.NewSet(selection.Cursor(0), selection.Mode{})
	txn := edit.Transaction{Groups: []edit.ActionGroup{{
		Actions: []edit.Action{{Kind: edit.ActionEdit, Edit: edit.Edit{Range: position.Range{Start: 0, End: 0}, New: "!!!"}}},
	}}}
	if _, err := b.ApplyEditTransaction(context.Background(), txn, current); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Text() != "!!!package main\n" {
		t.Fatalf("unexpected text: %q", b.Text())
	}

	b.UnfreezeSyntax(context.Background())
	if !b.HasTree() {
		t.Fatal("expected UnfreezeSyntax to rebuild the tree")
	}
}

func TestWordsAndFindWords(t *testing.T) {
	b := New(syntax.Language{}, "foo bar Foo baz_qux")
	defer b.Close()

	words := b.Words()
	if len(words) != 4 {
		t.Fatalf("expected 4 unique word literals, got %v", words)
	}

	found := b.FindWords("foo")
	if len(found) != 2 {
		t.Fatalf("expected 2 case-insensitive matches for 'foo', got %v", found)
	}
}

func TestWordBefore(t *testing.T) {
	b := New(syntax.Language{}, "foo bar baz")
	defer b.Close()

	if got := b.WordBefore(7); got != "bar" {
		t.Fatalf("expected 'bar', got %q", got)
	}
	if got := b.WordBefore(0); got != "" {
		t.Fatalf("expected empty string at buffer start, got %q", got)
	}
}

func TestSliceAndGetLine(t *testing.T) {
	b := New(syntax.Language{}, "first\nsecond\nthird")
	defer b.Close()

	if got := b.Slice(position.Range{Start: 0, End: 5}).String(); got != "first" {
		t.Fatalf("expected 'first', got %q", got)
	}
	if got := b.GetLine(7).String(); got != "second" {
		t.Fatalf("expected 'second', got %q", got)
	}
}

func TestGetCurrentNodeTopmostWithSameRange(t *testing.T) {
	b := New(syntax.Go(), "package main\n")
	defer b.Close()

	node, err := b.GetCurrentNode(position.Range{Start: 0, End: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.IsNull() {
		t.Fatal("expected a node covering the package clause")
	}
}

func TestGetCurrentNodeWithoutTreeReturnsSyntaxFrozen(t *testing.T) {
	b := New(syntax.Language{}, "hello")
	defer b.Close()

	if _, err := b.GetCurrentNode(position.Range{Start: 0, End: 1}); !errors.Is(err, ErrSyntaxFrozen) {
		t.Fatalf("expected ErrSyntaxFrozen, got %v", err)
	}
}

func TestSetDiagnosticsSortsByStart(t *testing.T) {
	b := New(syntax.Language{}, "one\ntwo\nthree\n")
	defer b.Close()

	b.SetDiagnostics([]overlay.Diagnostic{
		{Range: position.PositionRange{Start: position.Position{Line: 2}, End: position.Position{Line: 2, Column: 5}}, Severity: overlay.SeverityError, Message: "late"},
		{Range: position.PositionRange{Start: position.Position{Line: 0}, End: position.Position{Line: 0, Column: 3}}, Severity: overlay.SeverityWarning, Message: "early"},
	})

	diags := b.Diagnostics()
	if len(diags) != 2 || diags[0].Message != "early" {
		t.Fatalf("expected diagnostics sorted by start position, got %+v", diags)
	}
}

type fakeFormatter struct {
	out string
	err error
}

func (f fakeFormatter) Format(string) (string, error) { return f.out, f.err }

func TestSaveFormatsAndWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	b := New(syntax.Language{}, "unformatted")
	defer b.Close()
	b.SetPath(path)

	current := selection.NewSet(selection.Cursor(0), selection.Mode{})
	newSet, err := b.Save(context.Background(), current, fakeFormatter{out: "formatted"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Text() != "formatted" {
		t.Fatalf("expected formatted text in buffer, got %q", b.Text())
	}
	_ = newSet

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected file to be written: %v", err)
	}
	if string(data) != "formatted" {
		t.Fatalf("expected file to contain formatted text, got %q", data)
	}
}

func TestSaveKeepsOriginalTextOnFormatterError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	b := New(syntax.Language{}, "original")
	defer b.Close()
	b.SetPath(path)

	current := selection.NewSet(selection.Cursor(0), selection.Mode{})
	_, err := b.Save(context.Background(), current, fakeFormatter{err: errors.New("boom")})
	if !errors.Is(err, ErrFormatterFailed) {
		t.Fatalf("expected ErrFormatterFailed, got %v", err)
	}
	if b.Text() != "original" {
		t.Fatalf("formatter error must not rewrite the buffer, got %q", b.Text())
	}

	data, _ := os.ReadFile(path)
	if string(data) != "original" {
		t.Fatalf("save must still write the unformatted text, got %q", data)
	}
}

func TestSaveWithNoPathReportsError(t *testing.T) {
	b := New(syntax.Language{}, "hello")
	defer b.Close()

	current := selection.NewSet(selection.Cursor(0), selection.Mode{})
	if _, err := b.Save(context.Background(), current, nil); !errors.Is(err, ErrNoPath) {
		t.Fatalf("expected ErrNoPath, got %v", err)
	}
}
