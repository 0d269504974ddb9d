package script

import "errors"

var (
	// ErrStateClosed is returned when operating on a closed State.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrInstructionLimit names an exceeded instruction budget. No code
	// path in this package returns it: the instruction count is never
	// advanced during a predicate call (see sandbox.incrementInstructions).
	ErrInstructionLimit = errors.New("lua instruction limit exceeded")

	// ErrPredicateNotFound is returned when a compiled script defines no
	// global "predicate" function.
	ErrPredicateNotFound = errors.New("lua script defines no predicate function")

	// ErrPredicateInvalidReturn is returned when predicate() returns a
	// non-boolean, or nothing.
	ErrPredicateInvalidReturn = errors.New("lua predicate did not return a boolean")
)
