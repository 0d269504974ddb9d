package selmode

import "github.com/modaltree/structon/internal/rope"

// DefaultJumpAlphabet is the label alphabet used when the caller doesn't
// supply one: lowercase, then uppercase, then digits (spec §4.4).
var DefaultJumpAlphabet = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// JumpTarget pairs a label with the candidate it selects.
type JumpTarget struct {
	Label     rune
	Candidate Candidate
}

// Jumps assigns labels to candidates per spec §4.4 stage 0: label each
// candidate with its first character; ties are resolved by enumerating
// alphabet letters in order; if every candidate's first character is
// identical, skip the heuristic entirely and fall back to raw alphabet
// assignment.
func Jumps(r rope.Rope, candidates []Candidate, alphabet []rune) []JumpTarget {
	if len(alphabet) == 0 {
		alphabet = DefaultJumpAlphabet
	}
	if len(candidates) == 0 {
		return nil
	}

	firstChars := make([]rune, len(candidates))
	allSame := true
	for i, c := range candidates {
		firstChars[i] = firstRune(r, c)
		if i > 0 && firstChars[i] != firstChars[0] {
			allSame = false
		}
	}

	if allSame {
		return assignRawAlphabet(candidates, alphabet)
	}
	return assignByFirstChar(candidates, firstChars, alphabet)
}

func firstRune(r rope.Rope, c Candidate) rune {
	ch, width := r.RuneAt(rope.ByteOffset(c.Range.Start))
	if width == 0 {
		return 0
	}
	return ch
}

func assignRawAlphabet(candidates []Candidate, alphabet []rune) []JumpTarget {
	out := make([]JumpTarget, 0, len(candidates))
	for i, c := range candidates {
		if i >= len(alphabet) {
			break
		}
		out = append(out, JumpTarget{Label: alphabet[i], Candidate: c})
	}
	return out
}

// assignByFirstChar labels each candidate with its own first character
// where that's unambiguous; candidates sharing a first character are
// disambiguated by walking the alphabet in order among that tied group.
func assignByFirstChar(candidates []Candidate, firstChars []rune, alphabet []rune) []JumpTarget {
	groups := map[rune][]int{}
	for i, ch := range firstChars {
		groups[ch] = append(groups[ch], i)
	}

	out := make([]JumpTarget, len(candidates))
	assigned := make([]bool, len(candidates))
	for ch, idxs := range groups {
		if len(idxs) == 1 {
			out[idxs[0]] = JumpTarget{Label: ch, Candidate: candidates[idxs[0]]}
			assigned[idxs[0]] = true
		}
	}

	altPos := 0
	for i := range candidates {
		if assigned[i] {
			continue
		}
		for altPos < len(alphabet) && letterTaken(out, assigned, alphabet[altPos]) {
			altPos++
		}
		if altPos >= len(alphabet) {
			break
		}
		out[i] = JumpTarget{Label: alphabet[altPos], Candidate: candidates[i]}
		assigned[i] = true
		altPos++
	}

	result := make([]JumpTarget, 0, len(candidates))
	for i, ok := range assigned {
		if ok {
			result = append(result, out[i])
		}
	}
	return result
}

func letterTaken(out []JumpTarget, assigned []bool, label rune) bool {
	for i, ok := range assigned {
		if ok && out[i].Label == label {
			return true
		}
	}
	return false
}

// Relabel implements spec §4.4 step 2: when several candidates share the
// typed key, re-label that surviving subset with a fresh alphabet cycle.
func Relabel(subset []Candidate, alphabet []rune) []JumpTarget {
	if len(alphabet) == 0 {
		alphabet = DefaultJumpAlphabet
	}
	out := make([]JumpTarget, 0, len(subset))
	for i, c := range subset {
		if i >= len(alphabet) {
			break
		}
		out = append(out, JumpTarget{Label: alphabet[i], Candidate: c})
	}
	return out
}
