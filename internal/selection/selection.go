package selection

import (
	"github.com/modaltree/structon/internal/position"
	"github.com/modaltree/structon/internal/rope"
)

// Range is a half-open char-index range, re-exported from internal/position
// since selections are the primary thing ranges describe.
type Range = position.Range

// Info is opaque metadata a mode or command attaches to a selection — a
// jump label, a hover blurb, a match-group name. The spec leaves its shape
// open (§3); it carries only what callers choose to stash, never
// interpreted by the selection/selmode/edit packages themselves.
type Info struct {
	Label       string
	Description string
}

// Selection is a single char-range selection: the current range, an
// optional visual-mode anchor range, optional previously-copied text (for
// per-cursor paste), and optional Info.
type Selection struct {
	Range        Range
	InitialRange *Range
	CopiedText   *rope.Rope
	Info         *Info
}

// New creates a plain range selection with no visual-mode anchor.
func New(rg Range) Selection {
	return Selection{Range: rg}
}

// Cursor creates a zero-width selection (cursor, no extent) at idx.
func Cursor(idx rope.CharIndex) Selection {
	return Selection{Range: Range{Start: idx, End: idx}}
}

// IsEmpty reports whether the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Range.IsEmpty()
}

// EnterVisualMode records the current range as the anchor, so that
// subsequent movement extends from it rather than replacing it.
func (s Selection) EnterVisualMode() Selection {
	anchor := s.Range
	s.InitialRange = &anchor
	return s
}

// ExitVisualMode drops the anchor, collapsing future movement back to
// plain replace-on-move behavior.
func (s Selection) ExitVisualMode() Selection {
	s.InitialRange = nil
	return s
}

// InVisualMode reports whether an anchor is recorded.
func (s Selection) InVisualMode() bool {
	return s.InitialRange != nil
}

// ExtendedRange returns the convex hull of Range and InitialRange — the
// span visual mode should render as selected. Equal to Range when there is
// no anchor.
func (s Selection) ExtendedRange() Range {
	if s.InitialRange == nil {
		return s.Range
	}
	start := s.Range.Start
	if s.InitialRange.Start < start {
		start = s.InitialRange.Start
	}
	end := s.Range.End
	if s.InitialRange.End > end {
		end = s.InitialRange.End
	}
	return Range{Start: start, End: end}
}

// SwapAnchor exchanges Range and InitialRange (cursor <-> anchor),
// inverting visual-mode direction. A no-op outside visual mode.
func (s Selection) SwapAnchor() Selection {
	if s.InitialRange == nil {
		return s
	}
	newInitial := s.Range
	s = Selection{Range: *s.InitialRange, InitialRange: &newInitial, CopiedText: s.CopiedText, Info: s.Info}
	return s
}

// WithRange returns a copy of the selection with Range replaced; InitialRange,
// CopiedText, and Info carry over unchanged.
func (s Selection) WithRange(rg Range) Selection {
	s.Range = rg
	return s
}

// WithCopiedText returns a copy of the selection carrying the given text,
// recorded so a later per-cursor paste can fall back to it when the
// shared clipboard is unavailable (spec §4.7 Paste fallback).
func (s Selection) WithCopiedText(r rope.Rope) Selection {
	s.CopiedText = &r
	return s
}

// Overlaps reports whether two selections' Ranges share any char.
func (s Selection) Overlaps(other Selection) bool {
	return s.Range.Overlaps(other.Range)
}

// Equals reports whether two selections cover identical ranges (ignoring
// InitialRange/CopiedText/Info).
func (s Selection) Equals(other Selection) bool {
	return s.Range == other.Range
}
