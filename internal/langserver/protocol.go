package langserver

import (
	"github.com/modaltree/structon/internal/overlay"
	"github.com/modaltree/structon/internal/position"
)

// RequestParams is the parameter shape spec §6 names for every
// Language-server request this core issues: {component_id, path,
// position}. ComponentID identifies the background collaborator instance
// that owns path, so a late reply from a collaborator the core has since
// discarded can be told apart from a current one.
type RequestParams struct {
	ComponentID string
	Path        string
	Position    position.Position
}

// Location is a place in a file, the unit Definitions/References answer
// in.
type Location struct {
	Path  string
	Range position.PositionRange
}

// Hover is the result of a hover request.
type Hover struct {
	Contents string
	Range    position.PositionRange
}

// CompletionItem is one entry of a completions response.
type CompletionItem struct {
	Label      string
	Detail     string
	InsertText string
}

// CodeAction is one entry of a code_actions response; Edit is non-nil
// when applying the action means rewriting the workspace rather than
// running a server command.
type CodeAction struct {
	Title string
	Edit  *WorkspaceEdit
}

// SignatureHelp is the result of a signature_help request.
type SignatureHelp struct {
	Label           string
	Parameters      []string
	ActiveParameter int
}

// PrepareRename is the result of a prepare_rename request: the range a
// rename-in-place UI should offer to edit, and the text to seed it with.
type PrepareRename struct {
	Range       position.PositionRange
	Placeholder string
}

// PositionalEdit is one text replacement within a single file, anchored
// by (line, column) rather than CharIndex — a server has no notion of
// this core's rope indices, so every edit it proposes arrives this way
// and is converted to CharIndex only once the core is about to apply it
// against the current buffer state (spec §6).
type PositionalEdit struct {
	Range   position.PositionRange
	NewText string
}

// WorkspaceEdit is a set of positional edits grouped by the path they
// apply to (spec §6: "workspace edits arrive as lists of (path,
// positional_edits)").
type WorkspaceEdit struct {
	Changes map[string][]PositionalEdit
}

// Response is the tagged union a Language-server request resolves to
// (spec §6): exactly one of these fields is populated, matching the
// request kind that produced it. A nil field means that response kind
// wasn't requested or the server had nothing to report.
type Response struct {
	Diagnostics   []overlay.Diagnostic
	Hover         *Hover
	Definitions   []Location
	References    []Location
	Completions   []CompletionItem
	CodeActions   []CodeAction
	SignatureHelp *SignatureHelp
	WorkspaceEdit *WorkspaceEdit
	PrepareRename *PrepareRename
}
