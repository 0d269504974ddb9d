package selection

import (
	"sort"

	"github.com/modaltree/structon/internal/rope"
)

// Set is a SelectionSet: one primary selection, zero or more secondary
// selections (multi-cursor), the mode that last produced them, and an
// active filter chain.
type Set struct {
	Primary   Selection
	Secondary []Selection
	Mode      Mode
	Filters   Filters
}

// NewSet creates a SelectionSet with a single primary selection and no
// secondaries.
func NewSet(primary Selection, mode Mode) Set {
	return Set{Primary: primary, Mode: mode}
}

// All returns primary followed by every secondary, in that order — the
// order multi-cursor edits apply in is caller-defined (internal/edit sorts
// by range before applying), but exposing primary first keeps "the
// primary selection" unambiguous to callers that want just it.
func (s Set) All() []Selection {
	out := make([]Selection, 0, len(s.Secondary)+1)
	out = append(out, s.Primary)
	out = append(out, s.Secondary...)
	return out
}

// Count returns the total number of selections (primary + secondary).
func (s Set) Count() int {
	return len(s.Secondary) + 1
}

// IsMulti reports whether there is more than one selection.
func (s Set) IsMulti() bool {
	return len(s.Secondary) > 0
}

// WithAll replaces the whole selection list, taking the first (by
// appearance order) as primary and normalizing (sorting + dropping any
// secondary identical to the primary) per spec §3 SelectionSet invariant:
// "secondaries do not overlap primary identically".
func (s Set) WithAll(all []Selection) Set {
	if len(all) == 0 {
		return s
	}
	primary := all[0]
	secondary := append([]Selection(nil), all[1:]...)
	s.Primary = primary
	s.Secondary = normalizeSecondary(primary, secondary)
	return s
}

// AddSecondary appends a selection to the secondary list, normalizing
// afterward.
func (s Set) AddSecondary(sel Selection) Set {
	s.Secondary = normalizeSecondary(s.Primary, append(s.Secondary, sel))
	return s
}

// Clamp restricts every selection (primary and secondary) to
// [0, maxChar], used after a whole-document replace.
func (s Set) Clamp(maxChar rope.CharIndex) Set {
	s.Primary = clampSelection(s.Primary, maxChar)
	for i, sel := range s.Secondary {
		s.Secondary[i] = clampSelection(sel, maxChar)
	}
	return s
}

func clampSelection(sel Selection, maxChar rope.CharIndex) Selection {
	rg := sel.Range
	if rg.Start > maxChar {
		rg.Start = maxChar
	}
	if rg.End > maxChar {
		rg.End = maxChar
	}
	sel.Range = rg
	return sel
}

// Map applies f to every selection (primary and secondary), normalizing
// the result.
func (s Set) Map(f func(Selection) Selection) Set {
	s.Primary = f(s.Primary)
	for i, sel := range s.Secondary {
		s.Secondary[i] = f(sel)
	}
	s.Secondary = normalizeSecondary(s.Primary, s.Secondary)
	return s
}

// normalizeSecondary sorts secondaries by start position and drops any
// that exactly equal the primary's range, maintaining the SelectionSet
// invariant without merging overlapping-but-distinct secondaries — unlike
// the teacher's CursorSet, which treats all selections as one undirected
// set and merges freely, this spec's primary/secondary split means
// secondaries are allowed to be distinct even when adjacent; only an
// identical duplicate of primary is collapsed.
func normalizeSecondary(primary Selection, secondary []Selection) []Selection {
	out := secondary[:0]
	for _, sel := range secondary {
		if sel.Range == primary.Range {
			continue
		}
		out = append(out, sel)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Range.Start < out[j].Range.Start
	})
	return out
}
