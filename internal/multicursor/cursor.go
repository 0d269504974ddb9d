package multicursor

import (
	"github.com/modaltree/structon/internal/position"
	"github.com/modaltree/structon/internal/rope"
	"github.com/modaltree/structon/internal/selection"
	"github.com/modaltree/structon/internal/selmode"
)

// AddToAll materializes every element of the active mode's iterator
// (post-filter) as a selection, replacing the set's current primary and
// secondaries (spec §4.9: "'add to all' materialises every element of the
// active mode's iterator (post-filter) as a selection"). The set is
// returned unchanged if the mode yields nothing.
func AddToAll(set selection.Set, p selmode.Params) selection.Set {
	candidates := selmode.Candidates(p, set.Filters, nil)
	sels := candidatesToSelections(p.Rope, candidates)
	if len(sels) == 0 {
		return set
	}
	return set.WithAll(sels)
}

// AddCursor resolves one more step of the active mode's movement from the
// primary selection and appends it as a new secondary, the building block
// behind single-step "add cursor below/above/next/previous" commands.
func AddCursor(set selection.Set, p selmode.Params, dir selmode.Direction) selection.Set {
	candidates := selmode.Candidates(p, set.Filters, nil)
	resolved := selmode.Resolve(p.Rope, candidates, set.Primary.Range, dir, 0)
	if !resolved.Found {
		return set
	}
	return set.AddSecondary(selection.New(resolved.Range))
}

// KeepPrimaryOnly discards every secondary selection (spec §4.9: "Keep
// primary only discards secondaries").
func KeepPrimaryOnly(set selection.Set) selection.Set {
	set.Secondary = nil
	return set
}

// EnterVisualMode and ExitVisualMode apply visual-mode anchoring uniformly
// to every selection in the set (spec §4.9: "Visual mode and mode changes
// apply uniformly to all selections").
func EnterVisualMode(set selection.Set) selection.Set {
	return set.Map(selection.Selection.EnterVisualMode)
}

func ExitVisualMode(set selection.Set) selection.Set {
	return set.Map(selection.Selection.ExitVisualMode)
}

// SetMode changes the set's active mode uniformly, without touching any
// selection's range — candidates are recomputed against the new mode the
// next time a movement or AddToAll runs.
func SetMode(set selection.Set, mode selection.Mode) selection.Set {
	set.Mode = mode
	return set
}

func candidatesToSelections(r rope.Rope, candidates []selmode.Candidate) []selection.Selection {
	out := make([]selection.Selection, 0, len(candidates))
	for _, c := range candidates {
		start, ok1 := r.ByteToChar(rope.ByteOffset(c.Range.Start))
		end, ok2 := r.ByteToChar(rope.ByteOffset(c.Range.End))
		if !ok1 || !ok2 {
			continue
		}
		out = append(out, selection.New(position.Range{Start: start, End: end}))
	}
	return out
}
