package edit

import (
	"testing"

	"github.com/modaltree/structon/internal/position"
	"github.com/modaltree/structon/internal/rope"
)

func TestApplySingleGroupInsert(t *testing.T) {
	r := rope.FromString("hello world")
	txn := Transaction{Groups: []ActionGroup{
		{Actions: []Action{
			{Kind: ActionEdit, Edit: Edit{Range: position.Range{Start: 5, End: 5}, New: ","}},
			{Kind: ActionSelect, Select: position.Range{Start: 6, End: 6}},
		}},
	}}
	result, err := Apply(r, txn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Rope.String() != "hello, world" {
		t.Fatalf("unexpected text: %q", result.Rope.String())
	}
	if result.Selections[0][0].Start != 6 {
		t.Fatalf("unexpected select shift: %+v", result.Selections[0][0])
	}
}

func TestApplyTwoNonOverlappingGroupsShiftsLaterSelect(t *testing.T) {
	r := rope.FromString("aa bb cc")
	txn := Transaction{Groups: []ActionGroup{
		{Actions: []Action{
			{Kind: ActionEdit, Edit: Edit{Range: position.Range{Start: 0, End: 2}, New: "AAAA"}},
			{Kind: ActionSelect, Select: position.Range{Start: 0, End: 2}},
		}},
		{Actions: []Action{
			{Kind: ActionEdit, Edit: Edit{Range: position.Range{Start: 6, End: 8}, New: "C"}},
			{Kind: ActionSelect, Select: position.Range{Start: 6, End: 8}},
		}},
	}}
	result, err := Apply(r, txn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Rope.String() != "AAAA bb C" {
		t.Fatalf("unexpected text: %q", result.Rope.String())
	}
	// second group's select was in pre-transaction coords [6,8); must
	// shift right by the first group's delta (+2).
	if result.Selections[1][0].Start != 8 || result.Selections[1][0].End != 10 {
		t.Fatalf("expected shifted select [8,10), got %+v", result.Selections[1][0])
	}
}

func TestApplySingleGroupSortsOutOfOrderEdits(t *testing.T) {
	// A single ActionGroup's two edits are added out of document order —
	// the shape internal/workspace's ApplyPositionalEdits builds from
	// unordered language-server edits. Apply must sort by Range.Start
	// before accumulating the running shift, regardless of Actions order.
	r := rope.FromString("aa bb cc")
	txn := Transaction{Groups: []ActionGroup{
		{Actions: []Action{
			{Kind: ActionEdit, Edit: Edit{Range: position.Range{Start: 6, End: 8}, New: "C"}},
			{Kind: ActionEdit, Edit: Edit{Range: position.Range{Start: 0, End: 2}, New: "AAAA"}},
		}},
	}}
	result, err := Apply(r, txn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Rope.String() != "AAAA bb C" {
		t.Fatalf("unexpected text: %q", result.Rope.String())
	}
}

func TestApplyRejectsOverlappingEdits(t *testing.T) {
	r := rope.FromString("hello world")
	txn := Transaction{Groups: []ActionGroup{
		{Actions: []Action{{Kind: ActionEdit, Edit: Edit{Range: position.Range{Start: 0, End: 5}, New: "x"}}}},
		{Actions: []Action{{Kind: ActionEdit, Edit: Edit{Range: position.Range{Start: 3, End: 7}, New: "y"}}}},
	}}
	_, err := Apply(r, txn)
	if err != ErrOverlappingEdits {
		t.Fatalf("expected ErrOverlappingEdits, got %v", err)
	}
}

func TestApplyRejectsOutOfBounds(t *testing.T) {
	r := rope.FromString("hi")
	txn := Transaction{Groups: []ActionGroup{
		{Actions: []Action{{Kind: ActionEdit, Edit: Edit{Range: position.Range{Start: 0, End: 50}, New: "x"}}}},
	}}
	_, err := Apply(r, txn)
	if err != ErrOutOfBounds {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}
