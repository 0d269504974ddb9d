package selmode

import "github.com/modaltree/structon/internal/rope"

// characterCandidates yields one candidate per Unicode scalar in the
// document, each exactly one char wide in byte terms.
func characterCandidates(r rope.Rope) []Candidate {
	total := r.CharLen()
	if total == 0 {
		return nil
	}
	out := make([]Candidate, 0, total)
	prevByte, _ := r.CharToByte(0)
	for i := rope.CharIndex(1); i <= total; i++ {
		b, _ := r.CharToByte(i)
		out = append(out, Candidate{Range: byteRangeOf(prevByte, b)})
		prevByte = b
	}
	return out
}
