package selmode

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/modaltree/structon/internal/rope"
)

var wordShortPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// wordShortCandidates implements WordShort: `\b\w+` on the rope text
// (spec §4.3). Go's regexp has no \b\w+ word-boundary shorthand over
// Unicode classes, so the equivalent run-of-word-character pattern is used
// directly; \w in Go's RE2 is ASCII-only, so \p{L}\p{N}_ is substituted to
// keep Unicode identifiers intact.
func wordShortCandidates(r rope.Rope) []Candidate {
	text := r.String()
	locs := wordShortPattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	out := make([]Candidate, 0, len(locs))
	for _, loc := range locs {
		out = append(out, Candidate{Range: byteRangeOf(rope.ByteOffset(loc[0]), rope.ByteOffset(loc[1]))})
	}
	return out
}

// wordCandidates implements Word: "big words", maximal runs of
// non-whitespace (spec §4.3).
func wordCandidates(r rope.Rope) []Candidate {
	text := r.String()
	out := make([]Candidate, 0)
	start := -1
	i := 0
	for i < len(text) {
		rn, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(rn) {
			if start >= 0 {
				out = append(out, Candidate{Range: byteRangeOf(rope.ByteOffset(start), rope.ByteOffset(i))})
				start = -1
			}
		} else if start < 0 {
			start = i
		}
		i += size
	}
	if start >= 0 {
		out = append(out, Candidate{Range: byteRangeOf(rope.ByteOffset(start), rope.ByteOffset(len(text)))})
	}
	return out
}
