package syntax

// leaves collects every leaf (childless) node in document order.
func (t *Tree) leaves() []Node {
	var out []Node
	t.Root().PreOrder(func(n Node) bool {
		if n.ChildCount() == 0 {
			out = append(out, n)
		}
		return true
	})
	return out
}

// NextToken returns the first leaf token starting at or after the given
// byte offset. Used by selection-mode movement over the raw token stream
// (distinct from NextNamedSibling, which only moves within the named
// subtree).
func (t *Tree) NextToken(offset uint32) Node {
	for _, leaf := range t.leaves() {
		if leaf.ByteRange().Start >= offset {
			return leaf
		}
	}
	return Node{}
}

// PrevToken returns the last leaf token ending at or before the given byte
// offset.
func (t *Tree) PrevToken(offset uint32) Node {
	var best Node
	for _, leaf := range t.leaves() {
		if leaf.ByteRange().End <= offset {
			best = leaf
		} else {
			break
		}
	}
	return best
}

// HasErrorInRange reports whether the smallest node enclosing [start, end)
// is an ERROR node or contains one, per spec's has_syntax_error_at.
func (t *Tree) HasErrorInRange(start, end uint32) bool {
	node := t.Root().DescendantForByteRange(start, end)
	if node.IsNull() {
		return false
	}
	return node.HasError()
}
