package selmode

import (
	"regexp"

	"github.com/modaltree/structon/internal/rope"
	"github.com/modaltree/structon/internal/script"
	"github.com/modaltree/structon/internal/selection"
)

// Candidates computes the mode's full ordered candidate sequence against
// p, then applies filters left-to-right (spec §4.3, §3 Filter). filters
// comes from the enclosing selection.Set, since Mode itself carries no
// filter chain.
//
// customSeed lets a caller supply Custom mode's candidates directly
// (e.g. a precompiled predicate reused across many calls); pass nil to
// have Custom compile and run p.Mode.CustomSource itself.
func Candidates(p Params, filters selection.Filters, customSeed []Candidate) []Candidate {
	var out []Candidate
	switch p.Mode.Kind {
	case selection.Character:
		out = characterCandidates(p.Rope)
	case selection.WordShort:
		out = wordShortCandidates(p.Rope)
	case selection.Word:
		out = wordCandidates(p.Rope)
	case selection.LineTrimmed:
		out = lineTrimmedCandidates(p.Rope)
	case selection.LineFull:
		out = lineFullCandidates(p.Rope)
	case selection.SyntaxTree:
		if p.HasTree() {
			out = syntaxTreeCandidates(p.Tree.Root())
		}
	case selection.TopNode:
		if p.HasTree() {
			out = topNodeCandidates(p.Tree.Root())
		}
	case selection.BottomNode:
		if p.HasTree() {
			out = bottomNodeCandidates(p.Tree.Root())
		}
	case selection.Inside:
		if p.HasTree() {
			out = insideCandidates(p.Tree.Root(), p.Mode.InsideKind)
		}
	case selection.Find:
		out = findCandidates(p.Rope, p.Mode.FindParams)
	case selection.Bookmark:
		out = bookmarkCandidates(p.Rope, p.Overlays)
	case selection.Diagnostic:
		out = diagnosticCandidates(p.Rope, p.Overlays)
	case selection.Custom:
		out = customCandidates(p, customSeed)
	}
	return applyFilters(p, out, filters)
}

// applyFilters retains a candidate iff every filter holds, evaluated
// left-to-right (spec §3).
func applyFilters(p Params, candidates []Candidate, filters selection.Filters) []Candidate {
	out := candidates
	for _, f := range filters {
		out = applyFilter(p, out, f)
	}
	return out
}

func applyFilter(p Params, candidates []Candidate, f selection.Filter) []Candidate {
	if f.Target == selection.TargetAstGrep {
		return applyAstGrepFilter(p, candidates, f)
	}

	pattern := f.Pattern
	if f.Mechanism == selection.MechanismLiteral {
		pattern = regexp.QuoteMeta(pattern)
	}
	if f.IgnoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return candidates
	}

	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		keep := re.MatchString(contentOf(p, c))
		if f.Action == selection.FilterRemove {
			keep = !keep
		}
		if keep {
			out = append(out, c)
		}
	}
	return out
}

// applyAstGrepFilter evaluates an AstGrep-target filter: f.Pattern is Lua
// source defining `function predicate(c) ... end`, given each candidate's
// syntax-node kind and content (spec §3 Filter target AstGrep, wired to
// internal/script per the mode's own Custom-mode scripting seam).
// Mechanism (Literal/Regex) is meaningless for a scripted predicate and is
// ignored for this target — an Open Question the spec leaves unresolved
// for AstGrep filters specifically.
func applyAstGrepFilter(p Params, candidates []Candidate, f selection.Filter) []Candidate {
	pred, err := script.Compile(f.Pattern)
	if err != nil {
		return candidates
	}
	defer pred.Close()

	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		var kind string
		if !c.Node.IsNull() {
			kind = string(c.Node.KindID())
		}
		keep, err := pred.Evaluate(script.Candidate{
			Kind:    kind,
			Content: contentOf(p, c),
		})
		if err != nil {
			continue
		}
		if f.Action == selection.FilterRemove {
			keep = !keep
		}
		if keep {
			out = append(out, c)
		}
	}
	return out
}

func contentOf(p Params, c Candidate) string {
	start, ok1 := p.Rope.ByteToChar(rope.ByteOffset(c.Range.Start))
	end, ok2 := p.Rope.ByteToChar(rope.ByteOffset(c.Range.End))
	if !ok1 || !ok2 {
		return ""
	}
	return p.Rope.Slice(start, end)
}
