package ops

import (
	"strings"
	"unicode"

	"github.com/modaltree/structon/internal/position"
	"github.com/modaltree/structon/internal/rope"
)

// Clipboard is the process-wide side effect Cut/Copy mutate (spec §5:
// "the clipboard is a process-wide side effect, mutated only by
// Cut/Copy"). A plain string field stands in for the OS clipboard; a real
// UI wires Get/Set to the platform API.
type Clipboard struct {
	text string
}

// Get returns the current clipboard contents.
func (c *Clipboard) Get() string { return c.text }

// Set replaces the clipboard contents.
func (c *Clipboard) Set(text string) { c.text = text }

// KillResult is the outcome of Kill: the new rope and the range to select
// afterward.
type KillResult struct {
	Rope     rope.Rope
	Selected position.Range
	Removed  string
}

// Kill implements spec §4.7 Kill: deletes text around the current
// extended range C according to mode contiguity and neighbor whitespace,
// selecting the appropriate remainder. next resolves one step of Next
// under the active mode; isContiguous is Mode.IsContiguous().
func Kill(r rope.Rope, current position.Range, isContiguous bool, next func(after position.Range) (position.Range, bool), previous func(before position.Range) (position.Range, bool), cut bool, clipboard *Clipboard) KillResult {
	n, hasNext := next(current)

	if isContiguous && hasNext {
		gap := r.Slice(current.End, n.Start)
		if isWhitespaceOrEmpty(gap) {
			removed := r.Slice(current.Start, n.Start)
			out := r.Delete(current.Start, n.Start)
			newStart := current.Start
			shiftedLen := n.Len()
			selected := position.Range{Start: newStart, End: newStart + shiftedLen}
			if cut {
				clipboard.Set(removed)
			}
			return KillResult{Rope: out, Selected: selected, Removed: removed}
		}
	}

	if !hasNext {
		removed := r.Slice(current.Start, current.End)
		out := r.Delete(current.Start, current.End)
		selected := position.Range{Start: current.Start, End: current.Start}
		if p, ok := previous(current); ok {
			selected = position.Range{Start: p.Start, End: p.Start}
		}
		if cut {
			clipboard.Set(removed)
		}
		return KillResult{Rope: out, Selected: selected, Removed: removed}
	}

	removed := r.Slice(current.Start, current.End)
	out := r.Delete(current.Start, current.End)
	selected := position.Range{Start: current.Start, End: current.Start + 1}
	if cut {
		clipboard.Set(removed)
	}
	return KillResult{Rope: out, Selected: selected, Removed: removed}
}

func isWhitespaceOrEmpty(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// ChangeResult is the outcome of Change: delete the current extended
// range and place the cursor at its start for insert mode, with no
// clipboard write (spec §4.7).
type ChangeResult struct {
	Rope     rope.Rope
	Selected position.Range
}

// Change implements spec §4.7 Change.
func Change(r rope.Rope, current position.Range) ChangeResult {
	out := r.Delete(current.Start, current.End)
	return ChangeResult{Rope: out, Selected: position.Range{Start: current.Start, End: current.Start}}
}

// Cut implements spec §4.7 Cut: always removes exactly the current
// range, every selection's copied text is the removed content, and when
// there is a single cursor the system clipboard also receives it.
func Cut(r rope.Rope, current position.Range, singleCursor bool, clipboard *Clipboard) (rope.Rope, string) {
	removed := r.Slice(current.Start, current.End)
	out := r.Delete(current.Start, current.End)
	if singleCursor {
		clipboard.Set(removed)
	}
	return out, removed
}

// PasteDirection selects whether Paste inserts before or after the
// current selection's range.
type PasteDirection uint8

const (
	PasteBefore PasteDirection = iota
	PasteAfter
)

// Paste implements spec §4.7 Paste: insert copiedText (falling back to
// the clipboard) at range.start or range.end, with the new selection
// spanning the inserted text. Smart paste infers a separator from the gap
// between the current element and its neighbour in that direction, when
// the mode is contiguous and a neighbour exists.
func Paste(r rope.Rope, current position.Range, dir PasteDirection, copiedText string, clipboard *Clipboard, isContiguous bool, neighbor func(position.Range) (position.Range, bool)) (rope.Rope, position.Range) {
	text := copiedText
	if text == "" {
		text = clipboard.Get()
	}

	insertAt := current.Start
	if dir == PasteAfter {
		insertAt = current.End
	}

	if isContiguous {
		if n, ok := neighbor(current); ok {
			var gapText string
			if dir == PasteAfter {
				gapText = r.Slice(current.End, n.Start)
			} else {
				gapText = r.Slice(n.End, current.Start)
			}
			sep := inferSeparator(gapText)
			if sep != "" {
				if dir == PasteAfter {
					text = sep + text
				} else {
					text = text + sep
				}
			}
		}
	}

	runes := rope.CharIndex(len([]rune(text)))
	out := r.Insert(insertAt, text)
	selected := position.Range{Start: insertAt, End: insertAt + runes}
	return out, selected
}

// ReplaceWithClipboard implements the supplemented replace_with_clipboard
// variant of Paste: replaces the current selection's whole range with the
// clipboard's text (never copiedText, and never smart-paste-separated),
// selecting the replacement. Unlike plain Paste it never widens the
// selection's span by inserting alongside the existing text.
func ReplaceWithClipboard(r rope.Rope, current position.Range, clipboard *Clipboard) (rope.Rope, position.Range) {
	text := clipboard.Get()
	out := r.Replace(current.Start, current.End, text)
	runes := rope.CharIndex(len([]rune(text)))
	return out, position.Range{Start: current.Start, End: current.Start + runes}
}

// ReplaceCut implements the supplemented replace_cut variant: removes the
// current selection's range, writes it to the clipboard (replacing, not
// appending to, any prior contents, regardless of cursor count), and
// collapses the selection to an empty range at the deletion point — unlike
// Cut, which only conditionally writes the clipboard and leaves the
// selected range's width to the caller.
func ReplaceCut(r rope.Rope, current position.Range, clipboard *Clipboard) (rope.Rope, position.Range, string) {
	removed := r.Slice(current.Start, current.End)
	out := r.Delete(current.Start, current.End)
	clipboard.Set(removed)
	return out, position.Range{Start: current.Start, End: current.Start}, removed
}

func inferSeparator(gap string) string {
	switch {
	case strings.Contains(gap, "\n"):
		return "\n"
	case strings.Contains(gap, ","):
		return ", "
	case strings.TrimSpace(gap) == "" && gap != "":
		return " "
	default:
		return ""
	}
}
