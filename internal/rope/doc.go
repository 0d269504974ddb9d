// Package rope implements an immutable, persistent text rope.
//
// A Rope stores text as a balanced tree of leaf chunks, giving O(log n)
// insert, delete, slice, and char/byte/line conversions without mutating
// the original value. Every operation returns a new Rope; callers that want
// "mutation" assign the result back, exactly as with Go's own immutable
// strings. This makes snapshots free: an old Rope value simply keeps referencing the tree nodes it always
// pointed to.
//
// The rope exposes three coordinate systems over the same underlying bytes:
// CharIndex (Unicode scalar count, the primary coordinate selections and
// edits are expressed in), ByteOffset (UTF-8 byte count, needed at the
// syntax-tree boundary), and line-relative positions. All three agree by
// construction; see TextSummary.
package rope
