// Package script provides the Lua scripting integration behind the Custom
// SelectionMode and the AstGrep Filter target (spec §3): both are Lua
// predicate closures evaluated once per candidate, given that candidate's
// textual content and syntax-node kind.
//
// This wraps gopher-lua the way the teacher's own internal/plugin/lua
// bridge does: a sandboxed State with dangerous functions removed and an
// instruction counter (stored, but never advanced during a call, so it does
// not bound a runaway predicate), and a small bridge that
// converts a candidate into a Lua table before calling into it. It is
// narrower than a general-purpose plugin host — predicates are pure
// functions of (content, kind) and never need filesystem, network, or
// module-loading capabilities, so the capability/require-whitelist layers
// of a full plugin sandbox have no job here.
//
//	pred, err := script.Compile(`function predicate(c) return c.kind == "identifier" end`)
//	if err != nil { ... }
//	defer pred.Close()
//	keep, err := pred.Evaluate(script.Candidate{Kind: "identifier", Content: "foo"})
package script
