package selmode

import (
	"github.com/modaltree/structon/internal/overlay"
	"github.com/modaltree/structon/internal/rope"
	"github.com/modaltree/structon/internal/selection"
	"github.com/modaltree/structon/internal/syntax"
)

// Params bundles everything a mode needs to compute its candidates: the
// current text, the optional syntax tree, and the overlays Bookmark and
// Diagnostic modes read from.
type Params struct {
	Rope     rope.Rope
	Tree     *syntax.Tree // nil if the buffer has no language
	Overlays *overlay.Overlays
	Mode     selection.Mode
}

// Candidate is one element of a mode's ordered sequence: a byte range,
// plus the syntax node it came from when the mode is tree-structured (nil
// otherwise).
type Candidate struct {
	Range syntax.ByteRange
	Node  syntax.Node // zero value (IsNull()) for non-tree modes
}

// HasTree reports whether a syntax tree is available for tree-structured
// modes to operate against.
func (p Params) HasTree() bool {
	return p.Tree != nil
}
