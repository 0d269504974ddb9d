// Package workspace owns the editor core's set of open buffers, keyed by
// path, and implements the three message receivers spec §5 names for
// background collaborators (language server, ripgrep, file system):
// SetDiagnostics, ApplyPositionalEdits, and PublishHighlights. Messages
// queue on a single channel upstream of this package and are drained
// between user events; Workspace itself is called synchronously once a
// message has been dequeued.
package workspace
