package selmode

import (
	"strings"

	"github.com/modaltree/structon/internal/rope"
)

// lineTrimmedCandidates implements LineTrimmed: one range per line,
// starting past leading whitespace and ending before the trailing '\n'.
// Empty lines (after trimming) yield a zero-width range at line start
// (spec §4.3; ported from original_source/src/selection_mode/line_trimmed.rs).
//
// splitLinesKeepEnds already never synthesizes a phantom empty final line
// for text ending in '\n' (unlike a naive strings.Split on "\n"), so the
// "trailing synthetic empty line is dropped iff text ends with \n" rule
// from the original is satisfied by construction here and needs no extra
// step.
func lineTrimmedCandidates(r rope.Rope) []Candidate {
	lines := splitLinesKeepEnds(r.String())
	if len(lines) == 0 {
		return nil
	}
	out := make([]Candidate, 0, len(lines))
	offset := 0
	for _, line := range lines {
		body := strings.TrimSuffix(line, "\n")
		trimmed := strings.TrimLeft(body, " \t")
		start := offset + (len(body) - len(trimmed))
		end := start + len(trimmed)
		out = append(out, Candidate{Range: byteRangeOf(rope.ByteOffset(start), rope.ByteOffset(end))})
		offset += len(line)
	}
	return out
}

// lineFullCandidates implements LineFull: whole line including its
// trailing '\n' where present (spec §4.3).
func lineFullCandidates(r rope.Rope) []Candidate {
	lines := splitLinesKeepEnds(r.String())
	out := make([]Candidate, 0, len(lines))
	offset := 0
	for _, line := range lines {
		out = append(out, Candidate{Range: byteRangeOf(rope.ByteOffset(offset), rope.ByteOffset(offset+len(line)))})
		offset += len(line)
	}
	return out
}

// splitLinesKeepEnds splits text into lines, each retaining its trailing
// '\n' if present; the final element has none iff the text doesn't end in
// '\n'. An empty text yields no lines.
func splitLinesKeepEnds(text string) []string {
	if text == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			out = append(out, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}
