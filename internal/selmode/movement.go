package selmode

import (
	"github.com/modaltree/structon/internal/position"
	"github.com/modaltree/structon/internal/rope"
	"github.com/modaltree/structon/internal/selection"
	"github.com/modaltree/structon/internal/syntax"
)

// Direction is the movement command applied to a mode's candidate
// sequence (spec §4.3).
type Direction uint8

const (
	Current Direction = iota
	Next
	Previous
	First
	Last
	Index
	Up
	Down
	Parent
	FirstChild
)

// Resolved is the outcome of a movement: the target char range, plus the
// syntax node backing it for tree-structured modes (zero value otherwise).
type Resolved struct {
	Range position.Range
	Node  syntax.Node
	Found bool
}

// charCandidate is a Candidate re-expressed in char coordinates, the unit
// movement resolution works in (spec §4.3 resolution rules are phrased in
// terms of S.start/S.end, which are CharIndex on Selection.Range).
type charCandidate struct {
	Range position.Range
	Node  syntax.Node
}

func toCharCandidates(r rope.Rope, candidates []Candidate) []charCandidate {
	out := make([]charCandidate, 0, len(candidates))
	for _, c := range candidates {
		start, ok1 := r.ByteToChar(rope.ByteOffset(c.Range.Start))
		end, ok2 := r.ByteToChar(rope.ByteOffset(c.Range.End))
		if !ok1 || !ok2 {
			continue
		}
		out = append(out, charCandidate{Range: position.Range{Start: start, End: end}, Node: c.Node})
	}
	return out
}

// Resolve implements the movement-resolution function of spec §4.3 for
// Current/Next/Previous/First/Last/Index. Up/Down/Parent/FirstChild/Jump
// have dedicated entry points below since they need the mode (for
// line-structured vs tree-structured dispatch) or an explicit target.
func Resolve(r rope.Rope, candidates []Candidate, current position.Range, dir Direction, index int) Resolved {
	cs := toCharCandidates(r, candidates)
	if len(cs) == 0 {
		return Resolved{}
	}

	switch dir {
	case Current:
		return resolveCurrent(cs, current)
	case Next:
		return resolveNext(cs, current)
	case Previous:
		return resolvePrevious(cs, current)
	case First:
		return Resolved{Range: cs[0].Range, Node: cs[0].Node, Found: true}
	case Last:
		last := cs[len(cs)-1]
		return Resolved{Range: last.Range, Node: last.Node, Found: true}
	case Index:
		if index < 0 || index >= len(cs) {
			return Resolved{}
		}
		return Resolved{Range: cs[index].Range, Node: cs[index].Node, Found: true}
	default:
		return Resolved{}
	}
}

func resolveCurrent(cs []charCandidate, current position.Range) Resolved {
	for _, c := range cs {
		if c.Range.Start <= current.Start && current.Start < c.Range.End {
			return Resolved{Range: c.Range, Node: c.Node, Found: true}
		}
	}
	for _, c := range cs {
		if c.Range.Start >= current.Start {
			return Resolved{Range: c.Range, Node: c.Node, Found: true}
		}
	}
	return Resolved{}
}

func resolveNext(cs []charCandidate, current position.Range) Resolved {
	threshold := current.Start
	if current.Start == current.End {
		threshold = current.End
	}
	for _, c := range cs {
		if c.Range.Start > threshold {
			return Resolved{Range: c.Range, Node: c.Node, Found: true}
		}
	}
	return Resolved{}
}

func resolvePrevious(cs []charCandidate, current position.Range) Resolved {
	var best *charCandidate
	for i := range cs {
		c := &cs[i]
		if c.Range.Start < current.Start {
			best = c
		} else {
			break
		}
	}
	if best == nil {
		return Resolved{}
	}
	return Resolved{Range: best.Range, Node: best.Node, Found: true}
}

// ResolveUpDown implements Up/Down: same-column navigation for
// line-structured modes, Previous/Next otherwise (spec §4.3).
func ResolveUpDown(r rope.Rope, candidates []Candidate, mode selection.Mode, current position.Range, down bool) Resolved {
	if !mode.IsLineStructured() {
		if down {
			return Resolve(r, candidates, current, Next, 0)
		}
		return Resolve(r, candidates, current, Previous, 0)
	}

	startPos, err := position.CharToPosition(r, current.Start)
	if err != nil {
		return Resolved{}
	}
	targetLine := startPos.Line
	if down {
		targetLine++
	} else {
		if targetLine == 0 {
			return Resolved{}
		}
		targetLine--
	}

	cs := toCharCandidates(r, candidates)
	for _, c := range cs {
		lineStart, err := position.CharToLine(r, c.Range.Start)
		if err != nil {
			continue
		}
		if lineStart != targetLine {
			continue
		}
		col := startPos.Column
		lineLen := c.Range.Len()
		if rope.CharIndex(col) > lineLen {
			col = uint32(lineLen)
		}
		idx := c.Range.Start + rope.CharIndex(col)
		return Resolved{Range: position.Range{Start: idx, End: idx}, Found: true}
	}
	return Resolved{}
}

// ResolveParent implements Parent: tree modes only, the smallest named
// ancestor strictly containing the current node's range (spec §4.3).
func ResolveParent(current syntax.Node) Resolved {
	if current.IsNull() {
		return Resolved{}
	}
	parent := current.Parent()
	for !parent.IsNull() && !parent.Named() {
		parent = parent.Parent()
	}
	if parent.IsNull() {
		return Resolved{}
	}
	br := parent.ByteRange()
	return Resolved{Range: position.Range{Start: rope.CharIndex(br.Start), End: rope.CharIndex(br.End)}, Node: parent, Found: true}
}

// ResolveFirstChild implements FirstChild: tree modes only, the first
// named child of the current node (spec §4.3).
func ResolveFirstChild(current syntax.Node) Resolved {
	if current.IsNull() || current.NamedChildCount() == 0 {
		return Resolved{}
	}
	child := current.NamedChild(0)
	br := child.ByteRange()
	return Resolved{Range: position.Range{Start: rope.CharIndex(br.Start), End: rope.CharIndex(br.End)}, Node: child, Found: true}
}

// Jump implements Jump(range): direct placement at an explicitly chosen
// candidate (spec §4.3), e.g. the one the user picked via jump labelling.
func Jump(r rope.Rope, c Candidate) Resolved {
	start, ok1 := r.ByteToChar(rope.ByteOffset(c.Range.Start))
	end, ok2 := r.ByteToChar(rope.ByteOffset(c.Range.End))
	if !ok1 || !ok2 {
		return Resolved{}
	}
	return Resolved{Range: position.Range{Start: start, End: end}, Node: c.Node, Found: true}
}
