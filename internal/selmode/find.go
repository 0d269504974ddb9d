package selmode

import (
	"regexp"

	"github.com/modaltree/structon/internal/rope"
	"github.com/modaltree/structon/internal/selection"
)

// findCandidates implements Find{search}: regex/literal matches with
// case/whole-word flags; non-contiguous (spec §4.3). Word boundaries are
// evaluated on Unicode letter/number/underscore classes so multi-byte
// identifiers behave the same as ASCII ones (spec §9).
func findCandidates(r rope.Rope, params selection.FindParams) []Candidate {
	if params.Search == "" {
		return nil
	}
	text := r.String()

	var re *regexp.Regexp
	switch params.Submode {
	case selection.FindRegex:
		pattern := params.Search
		if params.WholeWord {
			pattern = `\b(?:` + pattern + `)\b`
		}
		if params.IgnoreCase {
			pattern = `(?i)` + pattern
		}
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return nil
		}
		re = compiled
	default: // FindLiteral
		pattern := regexp.QuoteMeta(params.Search)
		if params.WholeWord {
			pattern = `\b(?:` + pattern + `)\b`
		}
		if params.IgnoreCase {
			pattern = `(?i)` + pattern
		}
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return nil
		}
		re = compiled
	}

	locs := re.FindAllStringIndex(text, -1)
	out := make([]Candidate, 0, len(locs))
	for _, loc := range locs {
		out = append(out, Candidate{Range: byteRangeOf(rope.ByteOffset(loc[0]), rope.ByteOffset(loc[1]))})
	}
	return out
}
