package position

import (
	"github.com/rivo/uniseg"

	"github.com/modaltree/structon/internal/rope"
)

// VisualColumn converts a char-based Position to the terminal column a
// renderer would place the cursor at on that line, accounting for
// grapheme clusters (a combining sequence or multi-rune emoji occupies one
// terminal cell, not one per char) and wide East-Asian characters
// (two cells). Core position mapping (§4.1) is defined purely in char
// terms; this is for consumers that paint the buffer, not for the core
// selection/edit pipeline.
func VisualColumn(r rope.Rope, pos Position) int {
	line := r.LineText(pos.Line)
	if pos.Column == 0 {
		return 0
	}

	col := 0
	charsSeen := uint32(0)
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		if charsSeen >= pos.Column {
			break
		}
		cluster := gr.Str()
		charsSeen += uint32(len([]rune(cluster)))
		col += uniseg.StringWidth(cluster)
	}
	return col
}

// LineVisualWidth returns the total terminal-column width of a line.
func LineVisualWidth(r rope.Rope, line uint32) int {
	return uniseg.StringWidth(r.LineText(line))
}
