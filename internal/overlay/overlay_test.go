package overlay

import (
	"testing"

	"github.com/modaltree/structon/internal/position"
	"github.com/modaltree/structon/internal/rope"
)

func TestDiagnosticReanchoringAfterEarlierInsert(t *testing.T) {
	text := "fn main() { let x = 123 }"
	r := rope.FromString(text)

	var diags Diagnostics
	// "main" starts at char 3 (after "fn "), ends at 7.
	startPos, _ := position.CharToPosition(r, 3)
	endPos, _ := position.CharToPosition(r, 7)
	diags.Set([]Diagnostic{{
		Range:    position.PositionRange{Start: startPos, End: endPos},
		Severity: SeverityError,
		Message:  "undefined function",
	}})

	edit := Edit{Start: 0, End: 0, NewText: "hello"}
	newRope := r.Insert(0, "hello")
	diags.ApplyEdit(r, newRope, edit)

	got := diags.All()[0]
	cr, err := got.Range.ToCharRange(newRope)
	if err != nil {
		t.Fatalf("ToCharRange: %v", err)
	}
	if text := newRope.Slice(cr.Start, cr.End); text != "main" {
		t.Errorf("diagnostic after insert covers %q, want %q", text, "main")
	}
}

func TestBookmarkShiftThroughEdit(t *testing.T) {
	var bm Bookmarks
	bm.Add(CharRange{Start: 10, End: 15})

	bm.ApplyEdit(Edit{Start: 0, End: 0, NewText: "abc"})
	if got := bm.All()[0]; got != (CharRange{Start: 13, End: 18}) {
		t.Errorf("bookmark after prefix insert = %+v, want {13,18}", got)
	}
}

func TestBookmarkCollapsesWhenDeletionSwallowsIt(t *testing.T) {
	var bm Bookmarks
	bm.Add(CharRange{Start: 10, End: 15})

	bm.ApplyEdit(Edit{Start: 5, End: 20, NewText: ""})
	got := bm.All()[0]
	if got.Start != 5 || got.End != 5 {
		t.Errorf("bookmark swallowed by deletion = %+v, want collapsed to {5,5}", got)
	}
}

func TestDecorationRemoveTag(t *testing.T) {
	var dec Decorations
	dec.Add(Decoration{Range: CharRange{Start: 0, End: 5}, Tag: "search"})
	dec.Add(Decoration{Range: CharRange{Start: 6, End: 10}, Tag: "lint"})

	dec.RemoveTag("search")
	if len(dec.All()) != 1 || dec.All()[0].Tag != "lint" {
		t.Errorf("expected only 'lint' decoration to remain, got %+v", dec.All())
	}
}
