package script

import (
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// Default limits for a predicate State, mirroring the teacher's plugin
// runtime defaults.
const (
	DefaultInstructionLimit = 1_000_000           // predicates are short; generous but bounded
	DefaultExecutionTimeout = 200 * time.Millisecond
)

// State wraps gopher-lua with the sandboxing a scripted predicate needs.
//
// gopher-lua's LState is not goroutine-safe; the core's single-threaded
// event loop (spec §5) is the only caller, but the mutex guards against a
// background collaborator message handler accidentally reaching in from
// another goroutine.
type State struct {
	l *lua.LState

	mu sync.Mutex

	instructionLimit int64
	executionTimeout time.Duration

	sandbox *sandbox
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithInstructionLimit sets the instruction budget stored on the State's
// sandbox. The budget is not enforced: the count it is compared against is
// never advanced during a predicate call.
func WithInstructionLimit(limit int64) StateOption {
	return func(s *State) { s.instructionLimit = limit }
}

// WithExecutionTimeout sets a wall-clock budget for a single predicate
// call. The value is stored on the State but callPredicate does not apply
// it, so a long-running predicate is not interrupted.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) { s.executionTimeout = d }
}

// NewState creates a sandboxed Lua state for predicate evaluation.
func NewState(opts ...StateOption) *State {
	s := &State{
		instructionLimit: DefaultInstructionLimit,
		executionTimeout: DefaultExecutionTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	l := lua.NewState(lua.Options{SkipOpenLibs: true})
	s.l = l

	lua.OpenBase(l)
	lua.OpenTable(l)
	lua.OpenString(l)
	lua.OpenMath(l)
	// io, os, debug, package are intentionally left unopened: a predicate
	// never needs filesystem, process, or module-loading access.

	s.sandbox = newSandbox(l, s.instructionLimit)
	s.sandbox.install()

	return s
}

// DoString executes a Lua chunk, typically a script's top-level
// definitions (e.g. a `function predicate(c) ... end` declaration).
func (s *State) DoString(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	s.sandbox.resetInstructionCount()
	return s.doWithRecovery(func() error { return s.l.DoString(code) })
}

func (s *State) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// callPredicate invokes the global "predicate" function with a single
// table argument and returns its first result.
func (s *State) callPredicate(arg *lua.LTable) (lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStateClosed
	}

	fn := s.l.GetGlobal("predicate")
	if fn == lua.LNil {
		return nil, ErrPredicateNotFound
	}
	if fn.Type() != lua.LTFunction {
		return nil, ErrPredicateNotFound
	}

	s.sandbox.resetInstructionCount()

	var result lua.LValue
	err := s.doWithRecovery(func() error {
		s.l.Push(fn)
		s.l.Push(arg)
		if callErr := s.l.PCall(1, 1, nil); callErr != nil {
			return callErr
		}
		result = s.l.Get(-1)
		s.l.Pop(1)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Close releases the underlying Lua state.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.l.Close()
	s.closed = true
	return nil
}
