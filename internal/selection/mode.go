package selection

import "github.com/modaltree/structon/internal/syntax"

// ModeKind is the closed set of selection-mode variants (spec §3).
type ModeKind uint8

const (
	Character ModeKind = iota
	WordShort
	Word
	LineTrimmed
	LineFull
	SyntaxTree
	TopNode
	BottomNode
	Inside
	Find
	Bookmark
	Diagnostic
	Custom
)

// String returns the mode's name.
func (k ModeKind) String() string {
	switch k {
	case Character:
		return "character"
	case WordShort:
		return "word-short"
	case Word:
		return "word"
	case LineTrimmed:
		return "line-trimmed"
	case LineFull:
		return "line-full"
	case SyntaxTree:
		return "syntax-tree"
	case TopNode:
		return "top-node"
	case BottomNode:
		return "bottom-node"
	case Inside:
		return "inside"
	case Find:
		return "find"
	case Bookmark:
		return "bookmark"
	case Diagnostic:
		return "diagnostic"
	case Custom:
		return "custom"
	default:
		return "unknown"
	}
}

// FindSubmode selects the match kind Find operates under.
type FindSubmode uint8

const (
	FindLiteral FindSubmode = iota
	FindRegex
)

// FindParams parameterizes the Find mode: a search pattern plus case and
// whole-word flags applied Unicode-aware per spec §9.
type FindParams struct {
	Search     string
	Submode    FindSubmode
	IgnoreCase bool
	WholeWord  bool
}

// Mode is a SelectionMode value: a ModeKind tag plus the payload the
// Inside and Find variants carry. This is Go's usual stand-in for a
// tagged union — a single struct whose inactive payload fields are zero —
// rather than a sealed interface, since every mode shares the same
// capability surface (internal/selmode) and callers switch on Kind, not
// on Go's dynamic type.
type Mode struct {
	Kind ModeKind

	// InsideKind is set when Kind == Inside: the tree-sitter node kind to
	// select within (e.g. "parameter_list").
	InsideKind syntax.KindID

	// FindParams is set when Kind == Find.
	FindParams FindParams

	// CustomSource is set when Kind == Custom: Lua source defining
	// `function predicate(c) ... end`, compiled and evaluated by
	// internal/script against every syntax-node or character candidate
	// (spec §3 Custom) to materialize the mode's iterator.
	CustomSource string
}

// IsContiguous reports whether the mode's iterator yields ranges that
// partition the buffer without inter-element gaps except whitespace —
// governs Kill semantics (spec glossary: "Contiguous mode").
func (m Mode) IsContiguous() bool {
	switch m.Kind {
	case Character, LineTrimmed, SyntaxTree:
		return true
	default:
		return false
	}
}

// IsTreeMode reports whether Parent/FirstChild navigation applies, rather
// than being a no-op.
func (m Mode) IsTreeMode() bool {
	switch m.Kind {
	case SyntaxTree, TopNode, BottomNode, Inside:
		return true
	default:
		return false
	}
}

// IsLineStructured reports whether Up/Down should move by same-column line
// navigation rather than falling back to Previous/Next.
func (m Mode) IsLineStructured() bool {
	return m.Kind == LineTrimmed || m.Kind == LineFull
}
