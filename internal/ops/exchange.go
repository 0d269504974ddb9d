package ops

import (
	"github.com/modaltree/structon/internal/position"
	"github.com/modaltree/structon/internal/rope"
	"github.com/modaltree/structon/internal/syntax"
)

// Reparse produces the root node for a full reparse of r's text, plus a
// range-scoped error probe (byte offsets into r) rather than a whole-tree
// boolean: exchanging or raising a node must still be possible when some
// unrelated part of the file already has a syntax error, so validity only
// cares whether the swap's own byte range newly contains one (spec §4.6,
// following original_source's has_syntax_error_at rather than
// tree.root_node().has_error()). The caller supplies this so ops stays
// decoupled from internal/syntax's incremental-edit bookkeeping:
// Exchange/Raise only need a disposable, whole-document parse to validate
// a tentative swap.
type Reparse func(r rope.Rope) (root syntax.Node, hasErrorInRange func(start, end uint32) bool)

// NodeAt returns the surrounding named node — the topmost of the chain
// sharing the same byte range as the smallest node containing rg, the
// "current node" the spec's structure-preservation check examines (spec
// §4.2 get_current_node via syntax.Node.TopmostWithSameRange).
func NodeAt(root syntax.Node, rg syntax.ByteRange) syntax.Node {
	if root.IsNull() {
		return root
	}
	return root.NamedDescendantForByteRange(rg.Start, rg.End).TopmostWithSameRange()
}

// Candidate is the minimal shape ops needs from a selmode candidate: a
// byte range and, for node-based modes, the originating node.
type Candidate struct {
	Range syntax.ByteRange
	Node  syntax.Node
}

func (c Candidate) nodeBased() bool {
	return !c.Node.IsNull()
}

// NextCandidate resolves one more step of a movement, used to retry
// Exchange/Raise when a tentative swap breaks structure. The caller
// supplies it bound to the active mode/direction.
type NextCandidate func(after position.Range) (Candidate, bool)

// ExchangeResult is the outcome of a successful Exchange/Raise: the new
// rope and the range the operation's own selection should collapse to.
type ExchangeResult struct {
	Rope     rope.Rope
	Selected position.Range
}

// Exchange swaps the textual content of current with successive
// candidates produced by next, retrying until a swap preserves syntactic
// structure or movement saturates (spec §4.6).
func Exchange(r rope.Rope, current position.Range, reparse Reparse, next NextCandidate) (ExchangeResult, bool) {
	cursor := current
	for {
		target, ok := next(cursor)
		if !ok {
			return ExchangeResult{}, false
		}
		targetStart, ok1 := r.ByteToChar(rope.ByteOffset(target.Range.Start))
		targetEnd, ok2 := r.ByteToChar(rope.ByteOffset(target.Range.End))
		if !ok1 || !ok2 {
			cursor = current
			continue
		}
		targetRange := position.Range{Start: targetStart, End: targetEnd}

		candidate, ok := swap(r, current, targetRange)
		if !ok {
			cursor = targetRange
			continue
		}

		if structurallyValid(r, candidate, current, targetRange, reparse, current.Len() > 0 && target.nodeBased()) {
			newA, newB := shiftedAfterSwap(current, targetRange)
			selected := newA
			if targetRange.Start < current.Start {
				selected = newB
			}
			return ExchangeResult{Rope: candidate, Selected: selected}, true
		}

		cursor = targetRange
	}
}

// swap exchanges the text of disjoint char ranges a and b within r.
func swap(r rope.Rope, a, b position.Range) (rope.Rope, bool) {
	if a.Overlaps(b) {
		return rope.Rope{}, false
	}
	first, second := a, b
	if b.Start < a.Start {
		first, second = b, a
	}
	firstText := r.Slice(first.Start, first.End)
	secondText := r.Slice(second.Start, second.End)

	out := r.Replace(second.Start, second.End, firstText)
	out = out.Replace(first.Start, first.End, secondText)
	return out, true
}

// shiftedAfterSwap returns a and b's new positions after a swap, so the
// caller can report which operand the active selection should follow.
func shiftedAfterSwap(a, b position.Range) (position.Range, position.Range) {
	first, second := a, b
	firstIsA := true
	if b.Start < a.Start {
		first, second = b, a
		firstIsA = false
	}
	newFirstLen := second.Len()
	newSecondLen := first.Len()
	newFirst := position.Range{Start: first.Start, End: first.Start + newFirstLen}
	gap := second.Start - first.End
	newSecondStart := newFirst.End + gap
	newSecond := position.Range{Start: newSecondStart, End: newSecondStart + newSecondLen}
	if firstIsA {
		return newFirst, newSecond
	}
	return newSecond, newFirst
}

// structurallyValid implements spec §4.6's validity check: for node-based
// modes, the affected cursor's new surrounding node must keep the same
// tree-sitter kind id and byte length it had before, and the swap's own
// byte range must not gain a new syntax error it didn't already have.
// Non-node modes skip the node-shape check entirely. The error check is
// scoped to the swap's range rather than the whole tree, since the file
// may already contain unrelated errors elsewhere that shouldn't block an
// otherwise-valid exchange.
func structurallyValid(oldRope, newRope rope.Rope, a, b position.Range, reparse Reparse, checkNodes bool) bool {
	oldRoot, oldHasErrorInRange := reparse(oldRope)
	newRoot, newHasErrorInRange := reparse(newRope)

	newA, newB := shiftedAfterSwap(a, b)
	oldTxnRange := byteRangeOf(oldRope, spanOf(a, b))
	newTxnRange := byteRangeOf(newRope, spanOf(newA, newB))
	if !oldHasErrorInRange(oldTxnRange.Start, oldTxnRange.End) && newHasErrorInRange(newTxnRange.Start, newTxnRange.End) {
		return false
	}
	if !checkNodes {
		return true
	}

	oldNodeA := NodeAt(oldRoot, byteRangeOf(oldRope, a))
	oldNodeB := NodeAt(oldRoot, byteRangeOf(oldRope, b))
	newNodeA := NodeAt(newRoot, byteRangeOf(newRope, newA))
	newNodeB := NodeAt(newRoot, byteRangeOf(newRope, newB))

	return sameShape(oldNodeA, newNodeA) && sameShape(oldNodeB, newNodeB)
}

// spanOf returns the smallest range covering both a and b, the
// transaction's overall affected range.
func spanOf(a, b position.Range) position.Range {
	start, end := a.Start, a.End
	if b.Start < start {
		start = b.Start
	}
	if b.End > end {
		end = b.End
	}
	return position.Range{Start: start, End: end}
}

func sameShape(a, b syntax.Node) bool {
	if a.IsNull() || b.IsNull() {
		return a.IsNull() == b.IsNull()
	}
	return a.KindID() == b.KindID() && a.ByteRange().Len() == b.ByteRange().Len()
}

func byteRangeOf(r rope.Rope, rg position.Range) syntax.ByteRange {
	start, _ := r.CharToByte(rg.Start)
	end, _ := r.CharToByte(rg.End)
	return syntax.ByteRange{Start: uint32(start), End: uint32(end)}
}
