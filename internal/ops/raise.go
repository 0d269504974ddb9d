package ops

import (
	"github.com/modaltree/structon/internal/position"
	"github.com/modaltree/structon/internal/rope"
)

// Raise replaces the ancestor range implied by target with current's
// text, collapsing the outer construct into its inner (spec §4.6),
// retrying against successively outer ancestors via nextAncestor when a
// candidate breaks structure, until one validates or nextAncestor
// saturates — the same retry loop Exchange runs over sibling candidates
// (spec §4.6 is silent on whether Raise retries; original_source's
// replace/get_valid_selection shares Exchange's retry loop, so this
// follows it). The same structure-preservation validation as Exchange
// applies for node-based modes; non-node modes skip it and never retry,
// since there is no ancestor chain to walk without a node.
func Raise(r rope.Rope, current position.Range, target Candidate, nextAncestor func(Candidate) (Candidate, bool), reparse Reparse) (ExchangeResult, bool) {
	for {
		result, ok := raiseOnce(r, current, target, reparse)
		if ok {
			return result, true
		}
		if !target.nodeBased() {
			return ExchangeResult{}, false
		}
		next, ok := nextAncestor(target)
		if !ok {
			return ExchangeResult{}, false
		}
		target = next
	}
}

// raiseOnce attempts a single Raise against one ancestor candidate,
// without retrying.
func raiseOnce(r rope.Rope, current position.Range, target Candidate, reparse Reparse) (ExchangeResult, bool) {
	targetStart, ok1 := r.ByteToChar(rope.ByteOffset(target.Range.Start))
	targetEnd, ok2 := r.ByteToChar(rope.ByteOffset(target.Range.End))
	if !ok1 || !ok2 || targetStart > current.Start || current.End > targetEnd {
		return ExchangeResult{}, false
	}
	targetRange := position.Range{Start: targetStart, End: targetEnd}

	currentText := r.Slice(current.Start, current.End)
	candidate := r.Replace(targetRange.Start, targetRange.End, currentText)
	raised := position.Range{Start: targetRange.Start, End: targetRange.Start + current.Len()}

	if !target.nodeBased() {
		return ExchangeResult{Rope: candidate, Selected: raised}, true
	}

	oldRoot, oldHasErrorInRange := reparse(r)
	newRoot, newHasErrorInRange := reparse(candidate)
	if !oldHasErrorInRange(target.Range.Start, target.Range.End) && newHasErrorInRange(byteRangeOf(candidate, raised).Start, byteRangeOf(candidate, raised).End) {
		return ExchangeResult{}, false
	}

	newNode := NodeAt(newRoot, byteRangeOf(candidate, raised))
	oldAncestor := NodeAt(oldRoot, target.Range)
	// Raise intentionally shrinks the tree (the ancestor construct is
	// gone), so only the kind id is compared here, not the byte length
	// sameShape also checks.
	if oldAncestor.IsNull() || newNode.IsNull() || oldAncestor.KindID() != newNode.KindID() {
		return ExchangeResult{}, false
	}

	return ExchangeResult{Rope: candidate, Selected: raised}, true
}
