// Package command implements spec §6's Command surface: a closed dispatch
// enum covering every operation in spec §4 plus the view operations
// (set-rectangle, scroll, align-top/centre/bottom), composed on top of
// internal/buffer, internal/selmode, internal/multicursor, and
// internal/ops. Dispatch mutates a State in place and returns the list of
// outgoing dispatches the caller should forward to the rest of the
// editor — a UI layer, a language-server client, a status line.
package command
