package script

import lua "github.com/yuin/gopher-lua"

// Predicate is a compiled Lua predicate backing a Custom SelectionMode or
// an AstGrep-mechanism Filter: a script defining `function predicate(c)
// ... end`, where c carries the candidate's kind/text/start/stop (spec §3
// Custom, §3 Filter target AstGrep).
type Predicate struct {
	state *State
}

// Compile loads source and returns a Predicate bound to its own sandboxed
// State. The caller must Close it when done.
func Compile(source string, opts ...StateOption) (*Predicate, error) {
	state := NewState(opts...)
	if err := state.DoString(source); err != nil {
		state.Close()
		return nil, err
	}
	return &Predicate{state: state}, nil
}

// Evaluate runs the predicate against c and returns its keep/remove
// decision. A non-boolean or missing return is ErrPredicateInvalidReturn
// rather than silently defaulting to keep or remove, since a malformed
// script corrupting every candidate's filter decision the same way would
// be far harder to notice than a surfaced error.
func (p *Predicate) Evaluate(c Candidate) (bool, error) {
	result, err := p.state.callPredicate(c.toLuaTable(p.state.l))
	if err != nil {
		return false, err
	}
	b, ok := result.(lua.LBool)
	if !ok {
		return false, ErrPredicateInvalidReturn
	}
	return bool(b), nil
}

// Close releases the predicate's Lua state.
func (p *Predicate) Close() error {
	return p.state.Close()
}
