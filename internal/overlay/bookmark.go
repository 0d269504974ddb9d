package overlay

import "github.com/modaltree/structon/internal/rope"

// Bookmarks holds the user's saved ranges (spec §3: "bookmarks (set of
// CharIndexRange)"), shifted by char offset through each edit.
type Bookmarks struct {
	items []CharRange
}

// Add records a new bookmark range.
func (b *Bookmarks) Add(rg CharRange) {
	b.items = append(b.items, rg)
}

// Remove deletes every bookmark exactly equal to rg.
func (b *Bookmarks) Remove(rg CharRange) {
	out := b.items[:0]
	for _, item := range b.items {
		if item != rg {
			out = append(out, item)
		}
	}
	b.items = out
}

// All returns every bookmark range, in insertion order.
func (b *Bookmarks) All() []CharRange {
	return b.items
}

// ApplyEdit shifts every bookmark through a single edit.
func (b *Bookmarks) ApplyEdit(edit Edit) {
	for i, rg := range b.items {
		b.items[i] = TransformRange(rg, edit)
	}
}

// clampToLen discards or truncates bookmarks left dangling past the end of
// the document (e.g. after a whole-document replace via update()).
func (b *Bookmarks) clampToLen(length rope.CharIndex) {
	out := b.items[:0]
	for _, rg := range b.items {
		if rg.Start >= length {
			continue
		}
		if rg.End > length {
			rg.End = length
		}
		out = append(out, rg)
	}
	b.items = out
}
