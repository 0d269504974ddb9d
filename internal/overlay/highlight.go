package overlay

import (
	"github.com/modaltree/structon/internal/rope"
	"github.com/modaltree/structon/internal/syntax"
)

// HighlightSpan tags a char range with the syntax-node kind it colors.
// Unlike the line-regex tokenizer a renderer without a real CST would use,
// spans here come directly from tree-sitter node kinds, recomputed
// whenever the tree rebuilds (spec §4.2: "Highlight spans refresh whenever
// the tree is rebuilt").
type HighlightSpan struct {
	Range CharRange
	Kind  syntax.KindID
}

// Highlights holds the buffer's current highlight overlay.
type Highlights struct {
	spans []HighlightSpan
}

// Replace swaps in a freshly computed set of spans, discarding the
// previous set outright — highlights are never incrementally shifted,
// since a reparse always recomputes them from the new tree.
func (h *Highlights) Replace(spans []HighlightSpan) {
	h.spans = spans
}

// All returns the current highlight spans.
func (h *Highlights) All() []HighlightSpan {
	return h.spans
}

// ComputeFromTree walks every named node in tree and emits one span per
// leaf-level named token, the finest granularity a renderer can color
// independently. r must be the rope the tree was parsed from, to convert
// tree-sitter's byte ranges into the char ranges overlays use.
func ComputeFromTree(r rope.Rope, root syntax.Node) []HighlightSpan {
	var spans []HighlightSpan
	root.PreOrder(func(n syntax.Node) bool {
		if !n.Named() || n.NamedChildCount() > 0 {
			return true
		}
		br := n.ByteRange()
		startChar, ok1 := r.ByteToChar(rope.ByteOffset(br.Start))
		endChar, ok2 := r.ByteToChar(rope.ByteOffset(br.End))
		if !ok1 || !ok2 {
			return true
		}
		spans = append(spans, HighlightSpan{
			Range: CharRange{Start: startChar, End: endChar},
			Kind:  n.KindID(),
		})
		return true
	})
	return spans
}
