package ops

import (
	"testing"

	"github.com/modaltree/structon/internal/position"
	"github.com/modaltree/structon/internal/rope"
	"github.com/modaltree/structon/internal/syntax"
)

func TestKillContiguousDeletesThroughWhitespaceGap(t *testing.T) {
	r := rope.FromString("aa bb cc")
	current := position.Range{Start: 0, End: 2}
	next := func(after position.Range) (position.Range, bool) {
		return position.Range{Start: 3, End: 5}, true
	}
	prev := func(before position.Range) (position.Range, bool) { return position.Range{}, false }

	clip := &Clipboard{}
	result := Kill(r, current, true, next, prev, true, clip)
	if result.Rope.String() != "bb cc" {
		t.Fatalf("unexpected text after kill: %q", result.Rope.String())
	}
	if result.Selected.Start != 0 || result.Selected.End != 2 {
		t.Fatalf("expected selection over shifted 'bb', got %+v", result.Selected)
	}
	if clip.Get() != "aa " {
		t.Fatalf("expected clipboard to hold 'aa ', got %q", clip.Get())
	}
}

func TestChangeDeletesAndCollapsesCursor(t *testing.T) {
	r := rope.FromString("hello world")
	result := Change(r, position.Range{Start: 0, End: 5})
	if result.Rope.String() != " world" {
		t.Fatalf("unexpected text: %q", result.Rope.String())
	}
	if result.Selected.Start != 0 || result.Selected.End != 0 {
		t.Fatalf("expected collapsed cursor at 0, got %+v", result.Selected)
	}
}

func TestCutSetsClipboardWhenSingleCursor(t *testing.T) {
	r := rope.FromString("hello world")
	clip := &Clipboard{}
	out, removed := Cut(r, position.Range{Start: 0, End: 5}, true, clip)
	if out.String() != " world" {
		t.Fatalf("unexpected text: %q", out.String())
	}
	if removed != "hello" || clip.Get() != "hello" {
		t.Fatalf("expected clipboard to hold 'hello', got %q / %q", removed, clip.Get())
	}
}

func TestPasteInsertsAtRangeEnd(t *testing.T) {
	r := rope.FromString("hello world")
	clip := &Clipboard{}
	clip.Set("XYZ")
	out, selected := Paste(r, position.Range{Start: 0, End: 5}, PasteAfter, "", clip, false, nil)
	if out.String() != "helloXYZ world" {
		t.Fatalf("unexpected text: %q", out.String())
	}
	if selected.Start != 5 || selected.End != 8 {
		t.Fatalf("expected selection over inserted text [5,8), got %+v", selected)
	}
}

func TestExchangeSwapsAdjacentWordsNonNodeMode(t *testing.T) {
	r := rope.FromString("aa bb")
	current := position.Range{Start: 0, End: 2}

	called := false
	next := func(after position.Range) (Candidate, bool) {
		if called {
			return Candidate{}, false
		}
		called = true
		start, _ := r.CharToByte(3)
		end, _ := r.CharToByte(5)
		return Candidate{Range: syntax.ByteRange{Start: uint32(start), End: uint32(end)}}, true
	}
	reparse := func(rr rope.Rope) (syntax.Node, func(start, end uint32) bool) {
		return syntax.Node{}, func(uint32, uint32) bool { return false }
	}

	result, ok := Exchange(r, current, reparse, next)
	if !ok {
		t.Fatalf("expected exchange to succeed")
	}
	if result.Rope.String() != "bb aa" {
		t.Fatalf("unexpected text after exchange: %q", result.Rope.String())
	}
}

// TestExchangeIgnoresUnrelatedSyntaxError confirms the validity check is
// scoped to the swap's own byte range: a file that already has a syntax
// error somewhere outside the swap must not block an otherwise-valid
// exchange, only a new error introduced at the swap site itself does.
func TestExchangeIgnoresUnrelatedSyntaxError(t *testing.T) {
	r := rope.FromString("aa bb")
	current := position.Range{Start: 0, End: 2}

	called := false
	next := func(after position.Range) (Candidate, bool) {
		if called {
			return Candidate{}, false
		}
		called = true
		start, _ := r.CharToByte(3)
		end, _ := r.CharToByte(5)
		return Candidate{Range: syntax.ByteRange{Start: uint32(start), End: uint32(end)}}, true
	}
	// Both before and after the swap, only byte 100 onward (well outside
	// the swap's own range) reports an error — a whole-tree HasError
	// would see this as "error present" on both sides and could mask an
	// error actually introduced at the swap site; the range-scoped probe
	// must not reject the swap over it.
	reparse := func(rr rope.Rope) (syntax.Node, func(start, end uint32) bool) {
		return syntax.Node{}, func(start, end uint32) bool { return start >= 100 }
	}

	result, ok := Exchange(r, current, reparse, next)
	if !ok {
		t.Fatalf("expected exchange to succeed despite an unrelated syntax error")
	}
	if result.Rope.String() != "bb aa" {
		t.Fatalf("unexpected text after exchange: %q", result.Rope.String())
	}
}

func TestReplaceWithClipboardOverwritesSelection(t *testing.T) {
	r := rope.FromString("hello world")
	clip := &Clipboard{}
	clip.Set("XYZ")
	out, selected := ReplaceWithClipboard(r, position.Range{Start: 0, End: 5}, clip)
	if out.String() != "XYZ world" {
		t.Fatalf("unexpected text: %q", out.String())
	}
	if selected.Start != 0 || selected.End != 3 {
		t.Fatalf("expected selection over replacement [0,3), got %+v", selected)
	}
}

func TestReplaceCutDeletesAndCollapses(t *testing.T) {
	r := rope.FromString("hello world")
	clip := &Clipboard{}
	clip.Set("stale")
	out, selected, removed := ReplaceCut(r, position.Range{Start: 0, End: 5}, clip)
	if out.String() != " world" {
		t.Fatalf("unexpected text: %q", out.String())
	}
	if removed != "hello" || clip.Get() != "hello" {
		t.Fatalf("expected clipboard overwritten with 'hello', got %q / %q", removed, clip.Get())
	}
	if selected.Start != 0 || selected.End != 0 {
		t.Fatalf("expected collapsed cursor at 0, got %+v", selected)
	}
}
