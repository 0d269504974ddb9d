// Package history implements undo/redo (spec §4.8): each successful
// transaction is captured as a Patch carrying the selection set from
// before the transaction and a reverse diff (old text from new text),
// computed and applied with github.com/sergi/go-diff/diffmatchpatch.
package history
