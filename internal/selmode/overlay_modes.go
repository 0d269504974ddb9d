package selmode

import (
	"sort"

	"github.com/modaltree/structon/internal/overlay"
	"github.com/modaltree/structon/internal/rope"
)

// bookmarkCandidates implements Bookmark: the buffer's bookmark overlay,
// each entry converted from its stored CharRange to a byte range and
// ordered by document position (spec §4.3).
func bookmarkCandidates(r rope.Rope, overlays *overlay.Overlays) []Candidate {
	if overlays == nil {
		return nil
	}
	marks := overlays.Bookmarks.All()
	out := make([]Candidate, 0, len(marks))
	for _, rg := range marks {
		startByte, ok1 := r.CharToByte(rg.Start)
		endByte, ok2 := r.CharToByte(rg.End)
		if !ok1 || !ok2 {
			continue
		}
		out = append(out, Candidate{Range: byteRangeOf(startByte, endByte)})
	}
	sortCandidatesByStart(out)
	return out
}

// diagnosticCandidates implements Diagnostic: the buffer's diagnostic
// overlay, each entry's Position range resolved against r and converted to
// a byte range (spec §4.3).
func diagnosticCandidates(r rope.Rope, overlays *overlay.Overlays) []Candidate {
	if overlays == nil {
		return nil
	}
	diags := overlays.Diagnostics.All()
	out := make([]Candidate, 0, len(diags))
	for _, diag := range diags {
		cr, err := diag.Range.ToCharRange(r)
		if err != nil {
			continue
		}
		startByte, ok1 := r.CharToByte(cr.Start)
		endByte, ok2 := r.CharToByte(cr.End)
		if !ok1 || !ok2 {
			continue
		}
		out = append(out, Candidate{Range: byteRangeOf(startByte, endByte)})
	}
	sortCandidatesByStart(out)
	return out
}

func sortCandidatesByStart(candidates []Candidate) {
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Range.Start < candidates[j].Range.Start
	})
}
