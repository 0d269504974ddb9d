package buffer

import "sync/atomic"

// RevisionID uniquely identifies a buffer state at a point in time.
// Every mutation — update, applied transaction, undo, redo — stamps a
// new one, so a caller holding a SelectionSet or overlay captured
// against an older revision can tell its view is stale.
type RevisionID uint64

var revisionCounter uint64

// NewRevisionID generates a new unique revision ID, thread-safe via an
// atomic counter.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}
