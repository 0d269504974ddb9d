// Package langserver defines the shapes of the Language-server interface
// spec §6 consumes: request params, the tagged response union a server
// reply is unmarshalled into, and the positional-edit form a workspace
// edit arrives in before the core converts it to CharIndex at apply time.
// This package owns no process, socket, or RPC framing — that lives with
// whatever background collaborator produces these values; the core only
// needs the wire shapes to act on them.
package langserver
