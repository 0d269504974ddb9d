package position

import (
	"errors"

	"github.com/modaltree/structon/internal/rope"
)

// ErrOutOfBounds is returned when a coordinate exceeds the current text.
var ErrOutOfBounds = errors.New("position: out of bounds")

// Position is a 0-indexed (line, column) pair. Column is measured in chars
// from the line's start, not bytes and not display width.
type Position struct {
	Line   uint32
	Column uint32
}

// CharToByte converts a char index to a byte offset.
func CharToByte(r rope.Rope, idx rope.CharIndex) (rope.ByteOffset, error) {
	if idx > r.CharLen() {
		return 0, ErrOutOfBounds
	}
	b, ok := r.CharToByte(idx)
	if !ok {
		return 0, ErrOutOfBounds
	}
	return b, nil
}

// ByteToChar converts a byte offset to a char index.
func ByteToChar(r rope.Rope, offset rope.ByteOffset) (rope.CharIndex, error) {
	if offset > r.Len() {
		return 0, ErrOutOfBounds
	}
	c, ok := r.ByteToChar(offset)
	if !ok {
		return 0, ErrOutOfBounds
	}
	return c, nil
}

// CharToLine returns the 0-indexed line containing the given char index.
func CharToLine(r rope.Rope, idx rope.CharIndex) (uint32, error) {
	if idx > r.CharLen() {
		return 0, ErrOutOfBounds
	}
	return r.CharToLine(idx), nil
}

// LineToChar returns the char index of the first char of the given line.
func LineToChar(r rope.Rope, line uint32) (rope.CharIndex, error) {
	if line >= r.LineCount() {
		return 0, ErrOutOfBounds
	}
	return r.LineToChar(line), nil
}

// CharToPosition converts a char index to a Position.
func CharToPosition(r rope.Rope, idx rope.CharIndex) (Position, error) {
	if idx > r.CharLen() {
		return Position{}, ErrOutOfBounds
	}
	p := r.CharToPoint(idx)
	return Position{Line: p.Line, Column: p.Column}, nil
}

// PositionToChar converts a Position to a char index. An out-of-range
// column saturates at the line's length rather than erroring; an
// out-of-range line is an error.
func PositionToChar(r rope.Rope, pos Position) (rope.CharIndex, error) {
	if pos.Line >= r.LineCount() {
		return 0, ErrOutOfBounds
	}
	return r.PointToChar(rope.Point{Line: pos.Line, Column: pos.Column}), nil
}

// Range is a half-open char-index range, the unit selections and edits are
// expressed in.
type Range struct {
	Start rope.CharIndex
	End   rope.CharIndex
}

// Len returns the number of chars spanned by the range.
func (rg Range) Len() rope.CharIndex {
	if rg.End <= rg.Start {
		return 0
	}
	return rg.End - rg.Start
}

// IsEmpty reports whether the range spans zero chars.
func (rg Range) IsEmpty() bool {
	return rg.End <= rg.Start
}

// Overlaps reports whether two ranges share any char.
func (rg Range) Overlaps(other Range) bool {
	return rg.Start < other.End && other.Start < rg.End
}

// Contains reports whether idx falls within [Start, End).
func (rg Range) Contains(idx rope.CharIndex) bool {
	return idx >= rg.Start && idx < rg.End
}

// PositionRange is a Range anchored by (line,column) positions rather than
// char indices, used by overlays (diagnostics) that must survive
// edits elsewhere in the buffer without being recomputed by raw index
// arithmetic — see internal/overlay.
type PositionRange struct {
	Start Position
	End   Position
}

// ToCharRange resolves a PositionRange against the current rope.
func (pr PositionRange) ToCharRange(r rope.Rope) (Range, error) {
	start, err := PositionToChar(r, pr.Start)
	if err != nil {
		return Range{}, err
	}
	end, err := PositionToChar(r, pr.End)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: start, End: end}, nil
}

// FromCharRange captures a Range as a PositionRange against the current
// rope, for overlays that must re-anchor by position across edits.
func FromCharRange(r rope.Rope, rg Range) (PositionRange, error) {
	start, err := CharToPosition(r, rg.Start)
	if err != nil {
		return PositionRange{}, err
	}
	end, err := CharToPosition(r, rg.End)
	if err != nil {
		return PositionRange{}, err
	}
	return PositionRange{Start: start, End: end}, nil
}
