package edit

import (
	"sort"

	"github.com/modaltree/structon/internal/position"
	"github.com/modaltree/structon/internal/rope"
)

// Edit replaces Range with New (spec §3: "{ range: CharIndexRange, new:
// Rope }"). Range is expressed against the buffer state before the
// ActionGroup it belongs to is applied.
type Edit struct {
	Range position.Range
	New   string
}

func (e Edit) newLen() rope.CharIndex {
	return rope.CharIndex(len([]rune(e.New)))
}

func (e Edit) delta() int64 {
	return int64(e.newLen()) - int64(e.Range.Len())
}

// ActionKind distinguishes an ActionGroup's two action shapes.
type ActionKind uint8

const (
	ActionEdit ActionKind = iota
	ActionSelect
)

// Action is one element of an ActionGroup: either a text Edit, or a
// Select recording the cursor's final range in the group's pre-group
// coordinate system (spec §4.5).
type Action struct {
	Kind   ActionKind
	Edit   Edit
	Select position.Range
}

// ActionGroup is the set of actions one cursor contributes to a
// transaction (spec §4.5).
type ActionGroup struct {
	Actions []Action
}

func (g ActionGroup) edits() []Edit {
	var out []Edit
	for _, a := range g.Actions {
		if a.Kind == ActionEdit {
			out = append(out, a.Edit)
		}
	}
	return out
}

func (g ActionGroup) selects() []position.Range {
	var out []position.Range
	for _, a := range g.Actions {
		if a.Kind == ActionSelect {
			out = append(out, a.Select)
		}
	}
	return out
}

// leftmostEditStart returns the smallest edit range start in the group, or
// the group's first select range if it has no edits.
func (g ActionGroup) leftmostEditStart() rope.CharIndex {
	edits := g.edits()
	if len(edits) == 0 {
		selects := g.selects()
		if len(selects) == 0 {
			return 0
		}
		return selects[0].Start
	}
	min := edits[0].Range.Start
	for _, e := range edits[1:] {
		if e.Range.Start < min {
			min = e.Range.Start
		}
	}
	return min
}

// Transaction is the full set of ActionGroups collected from every cursor
// in one edit command (spec §4.5).
type Transaction struct {
	Groups []ActionGroup
}

// Result is the outcome of applying a Transaction: the new rope, and the
// collected Select targets in group order (the caller maps the index that
// was primary before the transaction back onto this slice).
type Result struct {
	Rope       rope.Rope
	Selections [][]position.Range
}

type indexedGroup struct {
	group ActionGroup
	index int
}

// Apply implements spec §4.5's application semantics: groups are sorted
// by leftmost edit start, and within a group its own edits are sorted by
// Range.Start too (a caller may add a group's Actions in any order), then
// edits are applied in document order while tracking a running shift,
// overlapping edits between groups are rejected, and every group's Select
// actions are shifted by the cumulative delta of all earlier groups. On
// any failure the input rope is returned unchanged alongside the error.
func Apply(r rope.Rope, txn Transaction) (Result, error) {
	if len(txn.Groups) == 0 {
		return Result{Rope: r, Selections: nil}, nil
	}

	ordered := make([]indexedGroup, len(txn.Groups))
	for i, g := range txn.Groups {
		ordered[i] = indexedGroup{group: g, index: i}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].group.leftmostEditStart() < ordered[j].group.leftmostEditStart()
	})

	if err := validateNoOverlap(ordered); err != nil {
		return Result{Rope: r}, err
	}

	out := r
	var shift int64
	selections := make([][]position.Range, len(txn.Groups))

	for _, ig := range ordered {
		group := ig.group

		groupShiftAtStart := shift
		edits := group.edits()
		sort.SliceStable(edits, func(i, j int) bool { return edits[i].Range.Start < edits[j].Range.Start })
		for _, e := range edits {
			effectiveStart := shiftIndex(e.Range.Start, shift)
			effectiveEnd := shiftIndex(e.Range.End, shift)
			if effectiveEnd < effectiveStart {
				return Result{Rope: r}, ErrInvalidRange
			}
			if effectiveEnd > out.CharLen() {
				return Result{Rope: r}, ErrOutOfBounds
			}
			out = out.Replace(effectiveStart, effectiveEnd, e.New)
			shift += e.delta()
		}

		groupSelects := make([]position.Range, 0, len(group.selects()))
		for _, s := range group.selects() {
			groupSelects = append(groupSelects, position.Range{
				Start: shiftIndex(s.Start, groupShiftAtStart),
				End:   shiftIndex(s.End, groupShiftAtStart),
			})
		}
		selections[ig.index] = groupSelects
	}

	return Result{Rope: out, Selections: selections}, nil
}

func shiftIndex(idx rope.CharIndex, shift int64) rope.CharIndex {
	shifted := int64(idx) + shift
	if shifted < 0 {
		shifted = 0
	}
	return rope.CharIndex(shifted)
}

// validateNoOverlap rejects a transaction whose groups contain edits (in
// their own pre-transaction coordinates) that intersect one another —
// spec §4.5's OverlappingEdits.
func validateNoOverlap(ordered []indexedGroup) error {
	type span struct{ start, end rope.CharIndex }
	var spans []span
	for _, ig := range ordered {
		for _, e := range ig.group.edits() {
			if e.Range.Start > e.Range.End {
				return ErrInvalidRange
			}
			spans = append(spans, span{start: e.Range.Start, end: e.Range.End})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	for i := 1; i < len(spans); i++ {
		if spans[i].start < spans[i-1].end {
			return ErrOverlappingEdits
		}
	}
	return nil
}
