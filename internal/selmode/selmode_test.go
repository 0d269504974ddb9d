package selmode

import (
	"testing"

	"github.com/modaltree/structon/internal/position"
	"github.com/modaltree/structon/internal/rope"
	"github.com/modaltree/structon/internal/selection"
)

func TestCharacterCandidates(t *testing.T) {
	r := rope.FromString("abc")
	cs := characterCandidates(r)
	if len(cs) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(cs))
	}
	if cs[0].Range.Start != 0 || cs[0].Range.End != 1 {
		t.Fatalf("unexpected first candidate range: %+v", cs[0].Range)
	}
}

func TestWordShortCandidates(t *testing.T) {
	r := rope.FromString("foo bar_baz 123")
	cs := wordShortCandidates(r)
	if len(cs) != 3 {
		t.Fatalf("expected 3 word candidates, got %d", len(cs))
	}
}

func TestWordCandidatesSplitsOnWhitespaceOnly(t *testing.T) {
	r := rope.FromString("foo-bar baz")
	cs := wordCandidates(r)
	if len(cs) != 2 {
		t.Fatalf("expected 2 big-word candidates, got %d", len(cs))
	}
	if cs[0].Range.Start != 0 || cs[0].Range.End != 7 {
		t.Fatalf("expected first big word to span 'foo-bar', got %+v", cs[0].Range)
	}
}

func TestLineTrimmedDropsTrailingSyntheticLine(t *testing.T) {
	r := rope.FromString("  hi\nworld\n")
	cs := lineTrimmedCandidates(r)
	if len(cs) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cs))
	}
	if cs[0].Range.Start != 2 || cs[0].Range.End != 4 {
		t.Fatalf("expected first line trimmed to [2,4), got %+v", cs[0].Range)
	}
}

func TestLineTrimmedKeepsFinalLineWithoutTrailingNewline(t *testing.T) {
	r := rope.FromString("a\nb")
	cs := lineTrimmedCandidates(r)
	if len(cs) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cs))
	}
}

func TestLineFullIncludesNewline(t *testing.T) {
	r := rope.FromString("a\nb\n")
	cs := lineFullCandidates(r)
	if len(cs) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cs))
	}
	if cs[0].Range.Start != 0 || cs[0].Range.End != 2 {
		t.Fatalf("expected first full line to include newline, got %+v", cs[0].Range)
	}
}

func TestFindLiteralCaseInsensitive(t *testing.T) {
	r := rope.FromString("Hello hello HELLO")
	params := selection.FindParams{Search: "hello", Submode: selection.FindLiteral, IgnoreCase: true}
	cs := findCandidates(r, params)
	if len(cs) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(cs))
	}
}

func TestResolveNextAndPrevious(t *testing.T) {
	r := rope.FromString("aa bb cc")
	candidates := wordShortCandidates(r)
	current := position.Range{Start: 0, End: 2}
	next := Resolve(r, candidates, current, Next, 0)
	if !next.Found || next.Range.Start != 3 {
		t.Fatalf("expected Next to land on 'bb' at char 3, got %+v", next)
	}
	prev := Resolve(r, candidates, next.Range, Previous, 0)
	if !prev.Found || prev.Range.Start != 0 {
		t.Fatalf("expected Previous to return to 'aa', got %+v", prev)
	}
}

func TestResolveFirstLastIndex(t *testing.T) {
	r := rope.FromString("aa bb cc")
	candidates := wordShortCandidates(r)
	first := Resolve(r, candidates, position.Range{}, First, 0)
	last := Resolve(r, candidates, position.Range{}, Last, 0)
	idx1 := Resolve(r, candidates, position.Range{}, Index, 1)
	if first.Range.Start != 0 {
		t.Fatalf("expected First at 0, got %+v", first.Range)
	}
	if last.Range.Start != 6 {
		t.Fatalf("expected Last at 6, got %+v", last.Range)
	}
	if idx1.Range.Start != 3 {
		t.Fatalf("expected Index(1) at 3, got %+v", idx1.Range)
	}
}

func TestApplyFiltersKeepRegex(t *testing.T) {
	r := rope.FromString("foo bar baz")
	p := Params{Rope: r, Mode: selection.Mode{Kind: selection.WordShort}}
	filters := selection.Filters{{
		Action:    selection.FilterKeep,
		Target:    selection.TargetContent,
		Mechanism: selection.MechanismRegex,
		Pattern:   "^ba",
	}}
	out := Candidates(p, filters, nil)
	if len(out) != 2 {
		t.Fatalf("expected 2 candidates matching ^ba, got %d", len(out))
	}
}

func TestCustomModeRunsCompiledPredicateOverCharacters(t *testing.T) {
	r := rope.FromString("abc")
	p := Params{Rope: r, Mode: selection.Mode{
		Kind:         selection.Custom,
		CustomSource: `function predicate(c) return c.text == "b" end`,
	}}
	out := Candidates(p, nil, nil)
	if len(out) != 1 {
		t.Fatalf("expected exactly 1 candidate matching 'b', got %d", len(out))
	}
}

func TestApplyFiltersAstGrepTargetUsesScriptedPredicate(t *testing.T) {
	r := rope.FromString("foo bar baz")
	p := Params{Rope: r, Mode: selection.Mode{Kind: selection.WordShort}}
	filters := selection.Filters{{
		Action:  selection.FilterKeep,
		Target:  selection.TargetAstGrep,
		Pattern: `function predicate(c) return string.sub(c.text, 1, 1) == "b" end`,
	}}
	out := Candidates(p, filters, nil)
	if len(out) != 2 {
		t.Fatalf("expected 2 candidates starting with 'b', got %d", len(out))
	}
}

func TestApplyFiltersRemoveLiteral(t *testing.T) {
	r := rope.FromString("foo bar baz")
	p := Params{Rope: r, Mode: selection.Mode{Kind: selection.WordShort}}
	filters := selection.Filters{{
		Action:    selection.FilterRemove,
		Target:    selection.TargetContent,
		Mechanism: selection.MechanismLiteral,
		Pattern:   "bar",
	}}
	out := Candidates(p, filters, nil)
	if len(out) != 2 {
		t.Fatalf("expected 2 candidates after removing 'bar', got %d", len(out))
	}
	for _, c := range out {
		if contentOf(p, c) == "bar" {
			t.Fatalf("'bar' should have been removed")
		}
	}
}

func TestJumpsAllDistinctFirstChars(t *testing.T) {
	r := rope.FromString("apple banana cherry")
	candidates := wordShortCandidates(r)
	jumps := Jumps(r, candidates, nil)
	if len(jumps) != 3 {
		t.Fatalf("expected 3 jump targets, got %d", len(jumps))
	}
	seen := map[rune]bool{}
	for _, j := range jumps {
		if seen[j.Label] {
			t.Fatalf("duplicate label %c", j.Label)
		}
		seen[j.Label] = true
	}
}

func TestJumpsFallsBackToRawAlphabetWhenAllSame(t *testing.T) {
	r := rope.FromString("aa ab ac")
	candidates := wordShortCandidates(r)
	jumps := Jumps(r, candidates, []rune("xyz"))
	if len(jumps) != 3 {
		t.Fatalf("expected 3 jump targets, got %d", len(jumps))
	}
	if jumps[0].Label != 'x' || jumps[1].Label != 'y' || jumps[2].Label != 'z' {
		t.Fatalf("expected raw alphabet assignment x,y,z, got %c,%c,%c",
			jumps[0].Label, jumps[1].Label, jumps[2].Label)
	}
}
