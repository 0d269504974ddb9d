package script

import lua "github.com/yuin/gopher-lua"

// Candidate is the context a predicate call is evaluated against: a
// selmode candidate's textual content plus its syntax-node kind (empty for
// non-tree modes). Start/End are char indices, exposed for predicates that
// want to reason about position (e.g. "only the first match").
type Candidate struct {
	Kind    string
	Content string
	Start   int
	End     int
}

func (c Candidate) toLuaTable(l *lua.LState) *lua.LTable {
	t := l.NewTable()
	l.SetField(t, "kind", lua.LString(c.Kind))
	l.SetField(t, "text", lua.LString(c.Content))
	l.SetField(t, "start", lua.LNumber(c.Start))
	l.SetField(t, "stop", lua.LNumber(c.End))
	return t
}
