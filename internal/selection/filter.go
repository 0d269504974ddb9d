package selection

// FilterAction decides whether a predicate match keeps or removes a
// candidate (spec §3 Filter: "kind: Keep|Remove").
type FilterAction uint8

const (
	FilterKeep FilterAction = iota
	FilterRemove
)

// FilterTarget is what the predicate is evaluated against.
type FilterTarget uint8

const (
	// TargetContent evaluates the predicate against the candidate's
	// textual content.
	TargetContent FilterTarget = iota
	// TargetAstGrep evaluates the predicate against the candidate's AST
	// node via a Lua-scripted structural matcher (internal/script).
	TargetAstGrep
)

// FilterMechanism is how Pattern is interpreted.
type FilterMechanism uint8

const (
	MechanismLiteral FilterMechanism = iota
	MechanismRegex
)

// Filter is a single predicate in a SelectionSet's filter chain (spec §3:
// "{ kind: Keep|Remove, target: Content|AstGrep, mechanism: Literal|Regex
// }").
type Filter struct {
	Action     FilterAction
	Target     FilterTarget
	Mechanism  FilterMechanism
	Pattern    string
	IgnoreCase bool
}

// Filters is an ordered chain of predicates; applied left-to-right when
// enumerating candidates (spec §3, §9 Open Question: overlap precedence is
// undocumented in the source, so left-to-right order is specified and
// must be preserved).
type Filters []Filter

// IsEmpty reports whether the chain has no filters.
func (f Filters) IsEmpty() bool {
	return len(f) == 0
}
