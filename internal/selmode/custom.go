package selmode

import "github.com/modaltree/structon/internal/script"

// customCandidates implements Custom (spec §3/§4.3): a Lua-scripted
// predicate evaluated against every candidate of a base domain —
// syntax-tree nodes when a tree is available, individual characters
// otherwise (the spec leaves Custom's base domain undocumented; this is
// the Open Question decision recorded in DESIGN.md).
//
// If the caller already computed the filtered sequence itself (e.g. to
// reuse a predicate across many Candidates() calls without recompiling
// it), it can be passed in as precomputed and p.Mode.CustomSource is
// ignored.
func customCandidates(p Params, precomputed []Candidate) []Candidate {
	if precomputed != nil {
		return precomputed
	}
	if p.Mode.CustomSource == "" {
		return nil
	}

	pred, err := script.Compile(p.Mode.CustomSource)
	if err != nil {
		return nil
	}
	defer pred.Close()

	var domain []Candidate
	if p.HasTree() {
		domain = syntaxTreeCandidates(p.Tree.Root())
	} else {
		domain = characterCandidates(p.Rope)
	}

	out := make([]Candidate, 0, len(domain))
	for _, c := range domain {
		var kind string
		if !c.Node.IsNull() {
			kind = string(c.Node.KindID())
		}
		keep, err := pred.Evaluate(script.Candidate{Kind: kind, Content: contentOf(p, c)})
		if err != nil || !keep {
			continue
		}
		out = append(out, c)
	}
	return out
}
