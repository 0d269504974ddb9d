// Package position maps between a buffer's three coordinate systems: char
// index (Unicode scalar count), byte offset (UTF-8), and line/column
// Position. Every conversion is fallible with ErrOutOfBounds when the input
// exceeds the current text; all mapping results are derived fresh from the
// rope on each call, so there is nothing to invalidate after a mutation —
// the caller simply converts again against the buffer's current rope.
package position
