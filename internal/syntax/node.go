package syntax

import sitter "github.com/alexaandru/go-tree-sitter-bare"

// ByteRange is a half-open [Start, End) byte span, the unit syntax nodes
// report their extent in.
type ByteRange struct {
	Start uint32
	End   uint32
}

// Len returns the byte length of the range.
func (r ByteRange) Len() uint32 {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Equals reports whether two ranges cover the same bytes.
func (r ByteRange) Equals(other ByteRange) bool {
	return r.Start == other.Start && r.End == other.End
}

// Node is a single node in a syntax tree.
type Node struct {
	raw     sitter.Node
	content []byte
}

// IsNull reports whether this is the zero Node (no node at a position, or
// a tree with no root).
func (n Node) IsNull() bool {
	return n.raw.IsNull()
}

// KindID returns the node's grammar production identity. Two nodes in
// different trees with equal KindID are the same syntactic kind.
func (n Node) KindID() KindID {
	return KindID(n.raw.Type())
}

// Named reports whether this is a named node (as opposed to an anonymous
// token like a literal keyword or punctuation).
func (n Node) Named() bool {
	return n.raw.IsNamed()
}

// HasError reports whether this node or any descendant is an ERROR node or
// contains a MISSING token.
func (n Node) HasError() bool {
	return n.raw.HasError()
}

// IsError reports whether this specific node is an ERROR node.
func (n Node) IsError() bool {
	return n.raw.IsError()
}

// IsMissing reports whether this node was inserted by the parser's error
// recovery rather than appearing in the source.
func (n Node) IsMissing() bool {
	return n.raw.IsMissing()
}

// ByteRange returns the node's byte extent.
func (n Node) ByteRange() ByteRange {
	return ByteRange{Start: uint32(n.raw.StartByte()), End: uint32(n.raw.EndByte())}
}

// Content returns the node's source text.
func (n Node) Content() string {
	return n.raw.Content(n.content)
}

// Parent returns the node's parent, or the null Node at the root.
func (n Node) Parent() Node {
	return Node{raw: n.raw.Parent(), content: n.content}
}

// ChildCount returns the number of direct children, named and anonymous.
func (n Node) ChildCount() int {
	return int(n.raw.ChildCount())
}

// Child returns the i-th direct child.
func (n Node) Child(i int) Node {
	return Node{raw: n.raw.Child(uint(i)), content: n.content}
}

// NamedChildCount returns the number of named direct children.
func (n Node) NamedChildCount() int {
	return int(n.raw.NamedChildCount())
}

// NamedChild returns the i-th named direct child.
func (n Node) NamedChild(i int) Node {
	return Node{raw: n.raw.NamedChild(uint(i)), content: n.content}
}

// Children returns all direct children.
func (n Node) Children() []Node {
	count := n.ChildCount()
	out := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, n.Child(i))
	}
	return out
}

// NamedChildren returns all named direct children.
func (n Node) NamedChildren() []Node {
	count := n.NamedChildCount()
	out := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, n.NamedChild(i))
	}
	return out
}

// NextSibling returns the node immediately following this one under the
// same parent, named or not.
func (n Node) NextSibling() Node {
	return Node{raw: n.raw.NextSibling(), content: n.content}
}

// PrevSibling returns the node immediately preceding this one under the
// same parent, named or not.
func (n Node) PrevSibling() Node {
	return Node{raw: n.raw.PrevSibling(), content: n.content}
}

// NextNamedSibling returns the next named sibling, skipping anonymous
// tokens. This is the relation SyntaxTree-mode Next/Previous movement
// uses: siblings adjacent in the named tree, not the raw token stream.
func (n Node) NextNamedSibling() Node {
	return Node{raw: n.raw.NextNamedSibling(), content: n.content}
}

// PrevNamedSibling returns the previous named sibling.
func (n Node) PrevNamedSibling() Node {
	return Node{raw: n.raw.PrevNamedSibling(), content: n.content}
}

// DescendantForByteRange returns the smallest node (named or not) whose
// byte range contains [start, end).
func (n Node) DescendantForByteRange(start, end uint32) Node {
	return Node{raw: n.raw.DescendantForByteRange(uint(start), uint(end)), content: n.content}
}

// NamedDescendantForByteRange returns the smallest named node whose byte
// range contains [start, end).
func (n Node) NamedDescendantForByteRange(start, end uint32) Node {
	return Node{raw: n.raw.NamedDescendantForByteRange(uint(start), uint(end)), content: n.content}
}

// TopmostWithSameRange walks up through ancestors with an identical byte
// range and returns the topmost one. This is how get_current_node (spec
// §4.2) ensures sibling navigation crosses structural boundaries: a leaf
// token and the single-child chain of nodes wrapping it all share one byte
// range, and the caller wants the outermost of that chain.
func (n Node) TopmostWithSameRange() Node {
	if n.IsNull() {
		return n
	}
	current := n
	rng := n.ByteRange()
	for {
		parent := current.Parent()
		if parent.IsNull() || !parent.ByteRange().Equals(rng) {
			return current
		}
		current = parent
	}
}

// PreOrder calls visit for every node in this subtree, parent before
// children, left to right.
func (n Node) PreOrder(visit func(Node) bool) {
	if n.IsNull() {
		return
	}
	if !visit(n) {
		return
	}
	for _, child := range n.Children() {
		child.PreOrder(visit)
	}
}

// PostOrder calls visit for every node in this subtree, children before
// parent, left to right.
func (n Node) PostOrder(visit func(Node) bool) {
	if n.IsNull() {
		return
	}
	for _, child := range n.Children() {
		child.PostOrder(visit)
	}
	visit(n)
}

// NearestAfterByteOffset returns the smallest named node starting at or
// after the given byte offset, searched via pre-order traversal from root.
// Used by get_nearest_node_after_char.
func (n Node) NearestAfterByteOffset(offset uint32) Node {
	var best Node
	n.PreOrder(func(node Node) bool {
		if !node.Named() {
			return true
		}
		if node.ByteRange().Start >= offset {
			if best.IsNull() || node.ByteRange().Start < best.ByteRange().Start ||
				(node.ByteRange().Start == best.ByteRange().Start && node.ByteRange().Len() < best.ByteRange().Len()) {
				best = node
			}
		}
		return true
	})
	return best
}
