// Package syntax wraps an incrementally parsed tree-sitter concrete syntax
// tree (CST) over a buffer's current text. Every node's byte range aligns
// to UTF-8 boundaries in the owning rope, so it composes directly with
// internal/position's byte<->char conversions. Re-parsing is incremental:
// callers report an Edit describing the byte/point span that changed and
// the parser reuses unaffected subtrees.
package syntax
