package script

import "testing"

func TestPredicateKeepsMatchingKind(t *testing.T) {
	pred, err := Compile(`function predicate(c) return c.kind == "identifier" end`)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	defer pred.Close()

	keep, err := pred.Evaluate(Candidate{Kind: "identifier", Content: "foo"})
	if err != nil {
		t.Fatalf("unexpected evaluate error: %v", err)
	}
	if !keep {
		t.Errorf("expected predicate to keep an identifier candidate")
	}

	keep, err = pred.Evaluate(Candidate{Kind: "comment", Content: "// x"})
	if err != nil {
		t.Fatalf("unexpected evaluate error: %v", err)
	}
	if keep {
		t.Errorf("expected predicate to reject a comment candidate")
	}
}

func TestPredicateContentInspection(t *testing.T) {
	pred, err := Compile(`function predicate(c) return string.find(c.text, "TODO") ~= nil end`)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	defer pred.Close()

	keep, err := pred.Evaluate(Candidate{Content: "-- TODO: fix"})
	if err != nil {
		t.Fatalf("unexpected evaluate error: %v", err)
	}
	if !keep {
		t.Errorf("expected predicate to match TODO in content")
	}
}

func TestPredicateMissingFunctionErrors(t *testing.T) {
	pred, err := Compile(`local x = 1`)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	defer pred.Close()

	if _, err := pred.Evaluate(Candidate{}); err != ErrPredicateNotFound {
		t.Errorf("expected ErrPredicateNotFound, got %v", err)
	}
}

func TestPredicateNonBooleanReturnErrors(t *testing.T) {
	pred, err := Compile(`function predicate(c) return 42 end`)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	defer pred.Close()

	if _, err := pred.Evaluate(Candidate{}); err != ErrPredicateInvalidReturn {
		t.Errorf("expected ErrPredicateInvalidReturn, got %v", err)
	}
}

func TestSandboxRemovesDangerousFunctions(t *testing.T) {
	pred, err := Compile(`function predicate(c) return load ~= nil end`)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	defer pred.Close()

	keep, err := pred.Evaluate(Candidate{})
	if err != nil {
		t.Fatalf("unexpected evaluate error: %v", err)
	}
	if keep {
		t.Errorf("expected load to be removed from the sandboxed globals")
	}
}
