package command

import (
	"github.com/modaltree/structon/internal/buffer"
	"github.com/modaltree/structon/internal/edit"
	"github.com/modaltree/structon/internal/ops"
	"github.com/modaltree/structon/internal/overlay"
	"github.com/modaltree/structon/internal/selection"
	"github.com/modaltree/structon/internal/selmode"
)

// Kind is the closed dispatch enum spec §6 describes: every spec §4
// operation, plus the view operations a renderer-facing command surface
// needs (set-rectangle, scroll, align-top/centre/bottom).
type Kind uint8

const (
	UpdateBuffer Kind = iota
	ApplyTransaction
	Undo
	Redo
	SaveBuffer
	SetDiagnostics

	Move
	SetSelectionMode
	InstallFilter
	ClearFilters
	JumpTo

	Exchange
	Raise

	Kill
	Change
	Cut
	Paste
	ReplaceWithClipboard
	ReplaceCut

	AddToAll
	AddCursor
	KeepPrimaryOnly
	EnterVisualMode
	ExitVisualMode

	SetRectangle
	Scroll
	AlignTop
	AlignCentre
	AlignBottom
)

// Command is a sparse tagged union: Kind selects which of the remaining
// fields are meaningful, mirroring internal/edit.Action's convention of a
// struct with unused fields left zero rather than a sealed interface.
type Command struct {
	Kind Kind

	// UpdateBuffer
	Text string

	// ApplyTransaction
	Transaction edit.Transaction

	// SetDiagnostics
	Diagnostics []overlay.Diagnostic

	// SaveBuffer
	Formatter buffer.Formatter

	// Move, AddCursor
	Direction selmode.Direction
	Index     int

	// SetSelectionMode
	Mode selection.Mode

	// InstallFilter
	Filter selection.Filter

	// JumpTo
	JumpCandidate selmode.Candidate

	// Paste
	PasteDirection ops.PasteDirection

	// Kill: whether a successful kill also writes the clipboard, subject
	// to Cut's own single-cursor rule (spec §4.7).
	KillCut bool

	// SetRectangle
	Rect Rect

	// Scroll
	ScrollLine   uint32
	ScrollColumn uint32
}

// Rect is a terminal/view-relative rectangle in (row, column) cells.
type Rect struct {
	X, Y, Width, Height uint32
}

// Viewport is the view-operation half of the Command surface: the
// rectangle the buffer renders into and its current scroll position.
// Nothing in internal/buffer or internal/selection depends on Viewport —
// it exists purely so Scroll/AlignTop/AlignCentre/AlignBottom have
// somewhere to land.
type Viewport struct {
	Rect         Rect
	ScrollLine   uint32
	ScrollColumn uint32
}

// OutgoingKind is the tag of an Outgoing dispatch. Spec §6 names three
// examples explicitly (DocumentDidChange, DocumentDidSave, ShowInfo);
// every Dispatch call reports through this closed set.
type OutgoingKind uint8

const (
	DocumentDidChange OutgoingKind = iota
	DocumentDidSave
	ShowInfo
)

// Outgoing is one dispatch a Command produces for the rest of the editor
// to act on (spec §6: "each dispatch returns a list of outgoing
// dispatches").
type Outgoing struct {
	Kind    OutgoingKind
	Path    string
	Message string
}

// State bundles the pieces a Command needs to mutate: the buffer, the
// active selection set, the process-wide clipboard (spec §5: "the
// clipboard is a process-wide side effect"), and the view state the
// view-operation Kinds address.
type State struct {
	Buffer    *buffer.Buffer
	Selection selection.Set
	Clipboard *ops.Clipboard
	Viewport  Viewport
}

// New returns a State over an already-constructed buffer, with an
// empty primary cursor at the start of the document and a fresh
// clipboard.
func New(buf *buffer.Buffer) *State {
	return &State{
		Buffer:    buf,
		Selection: selection.NewSet(selection.Cursor(0), selection.Mode{}),
		Clipboard: &ops.Clipboard{},
	}
}

// params builds the internal/selmode.Params a movement or multi-cursor
// call needs from the current buffer and selection-set state.
func (s *State) params() selmode.Params {
	return selmode.Params{
		Rope:     s.Buffer.Rope(),
		Tree:     s.Buffer.Tree(),
		Overlays: s.Buffer.Overlays(),
		Mode:     s.Selection.Mode,
	}
}
