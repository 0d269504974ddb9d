package selmode

import "github.com/modaltree/structon/internal/syntax"

// syntaxTreeCandidates implements SyntaxTree: every named node, in
// pre-order, with movement resolved via tree relations rather than index
// arithmetic (spec §4.3).
func syntaxTreeCandidates(root syntax.Node) []Candidate {
	if root.IsNull() {
		return nil
	}
	var out []Candidate
	root.PreOrder(func(n syntax.Node) bool {
		if n.Named() {
			out = append(out, Candidate{Range: n.ByteRange(), Node: n})
		}
		return true
	})
	return out
}

// topNodeCandidates implements TopNode: the outermost named node at each
// distinct byte range reachable from root, i.e. the topmost node of every
// same-range chain (spec §4.3).
func topNodeCandidates(root syntax.Node) []Candidate {
	if root.IsNull() {
		return nil
	}
	seen := map[syntax.ByteRange]bool{}
	var out []Candidate
	root.PreOrder(func(n syntax.Node) bool {
		if !n.Named() {
			return true
		}
		top := n.TopmostWithSameRange()
		rng := top.ByteRange()
		if !seen[rng] {
			seen[rng] = true
			out = append(out, Candidate{Range: rng, Node: top})
		}
		return true
	})
	return out
}

// bottomNodeCandidates implements BottomNode: the innermost named node at
// a position, i.e. named leaves of the tree (spec §4.3).
func bottomNodeCandidates(root syntax.Node) []Candidate {
	if root.IsNull() {
		return nil
	}
	var out []Candidate
	root.PreOrder(func(n syntax.Node) bool {
		if n.Named() && n.NamedChildCount() == 0 {
			out = append(out, Candidate{Range: n.ByteRange(), Node: n})
		}
		return true
	})
	return out
}

// insideCandidates implements Inside(kind): content between the matching
// delimiter pair of the named node kind, excluding the delimiters
// themselves (spec §4.3). A node of kind `kind` is assumed to have its
// opening and closing delimiter as its first and last direct (possibly
// anonymous) children; the candidate is the span strictly between them.
func insideCandidates(root syntax.Node, kind syntax.KindID) []Candidate {
	if root.IsNull() {
		return nil
	}
	var out []Candidate
	root.PreOrder(func(n syntax.Node) bool {
		if n.KindID() != kind {
			return true
		}
		count := n.ChildCount()
		if count < 2 {
			return true
		}
		open := n.Child(0)
		closeNode := n.Child(count - 1)
		inner := syntax.ByteRange{Start: open.ByteRange().End, End: closeNode.ByteRange().Start}
		if inner.End < inner.Start {
			inner.End = inner.Start
		}
		out = append(out, Candidate{Range: inner, Node: n})
		return true
	})
	return out
}
