package script

import (
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// sandbox restricts a predicate State to safe operations. Trimmed from the
// teacher's capability-based plugin sandbox: a predicate has no use for
// filesystem/network/process capabilities, and since State never opens the
// "package" library, there is no require() to whitelist in the first
// place — only the instruction counter and dangerous base-function removal
// carry over.
type sandbox struct {
	l *lua.LState

	instructionLimit int64
	instructionCount int64
}

func newSandbox(l *lua.LState, instructionLimit int64) *sandbox {
	return &sandbox{l: l, instructionLimit: instructionLimit}
}

// install removes base-library functions that could be used to load and
// execute code outside the predicate chunk itself.
func (s *sandbox) install() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		s.l.SetGlobal(name, lua.LNil)
	}
}

func (s *sandbox) resetInstructionCount() {
	atomic.StoreInt64(&s.instructionCount, 0)
}

// incrementInstructions adds n to the running count and reports whether the
// limit has been exceeded. No function in this package calls it: a
// candidate reaches Lua as a plain table with no Go bridge functions, so
// the count stays at zero and a predicate call is never cut short by it.
func (s *sandbox) incrementInstructions(n int64) bool {
	if s.instructionLimit <= 0 {
		return false
	}
	count := atomic.AddInt64(&s.instructionCount, n)
	return count > s.instructionLimit
}
