package syntax

import (
	"context"

	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// KindID identifies a node's grammar production. Two nodes with equal
// KindID are of the same syntactic kind; this is the identity Exchange and
// Raise check to decide whether a structural swap preserved parse shape.
type KindID string

// Edit describes a byte/point span that changed, for incremental
// re-parsing. Row/Column follow tree-sitter's point convention: Row is
// 0-indexed line, Column is a 0-indexed byte offset within that line.
type Edit struct {
	StartByte  uint32
	OldEndByte uint32
	NewEndByte uint32

	StartRow, StartColumn       uint32
	OldEndRow, OldEndColumn     uint32
	NewEndRow, NewEndColumn     uint32
}

func (e Edit) toInputEdit() sitter.InputEdit {
	return sitter.InputEdit{
		StartIndex:  uint(e.StartByte),
		OldEndIndex: uint(e.OldEndByte),
		NewEndIndex: uint(e.NewEndByte),
		StartPoint:  sitter.Point{Row: uint(e.StartRow), Column: uint(e.StartColumn)},
		OldEndPoint: sitter.Point{Row: uint(e.OldEndRow), Column: uint(e.OldEndColumn)},
		NewEndPoint: sitter.Point{Row: uint(e.NewEndRow), Column: uint(e.NewEndColumn)},
	}
}

// Tree is an incrementally parsed concrete syntax tree over a buffer's
// current byte content.
type Tree struct {
	lang    Language
	raw     *sitter.Tree
	content []byte
}

// Parse parses content from scratch under the given language.
func Parse(ctx context.Context, lang Language, content []byte) (*Tree, error) {
	parser := sitter.NewParser()
	if err := parser.SetLanguage(lang.raw); err != nil {
		return nil, err
	}
	raw, err := parser.ParseString(ctx, nil, content)
	if err != nil {
		return nil, err
	}
	return &Tree{lang: lang, raw: raw, content: content}, nil
}

// Reparse incrementally re-parses content, reusing the unaffected parts of
// the receiver's tree, and returns a new Tree. edit describes the span in
// the pre-edit document; Reparse itself applies it to the receiver's
// underlying tree first, so the receiver's node positions are shifted to
// the post-edit document afterward.
func (t *Tree) Reparse(ctx context.Context, edit Edit, content []byte) (*Tree, error) {
	if t == nil || t.raw == nil {
		return Parse(ctx, t.lang, content)
	}

	t.raw.Edit(edit.toInputEdit())

	parser := sitter.NewParser()
	if err := parser.SetLanguage(t.lang.raw); err != nil {
		return nil, err
	}
	raw, err := parser.ParseString(ctx, t.raw, content)
	if err != nil {
		return nil, err
	}
	return &Tree{lang: t.lang, raw: raw, content: content}, nil
}

// Close releases the tree's native resources. Safe to call on nil.
func (t *Tree) Close() {
	if t == nil || t.raw == nil {
		return
	}
	t.raw.Close()
}

// Root returns the tree's root node.
func (t *Tree) Root() Node {
	if t == nil || t.raw == nil {
		return Node{}
	}
	return Node{raw: t.raw.RootNode(), content: t.content}
}

// Language returns the grammar this tree was parsed under.
func (t *Tree) Language() Language {
	if t == nil {
		return Language{}
	}
	return t.lang
}

// HasError reports whether any node in the tree is an ERROR node or
// contains a MISSING token, per spec's has_syntax_error_at(whole document).
func (t *Tree) HasError() bool {
	return t.Root().HasError()
}
