package buffer

import (
	"regexp"
	"strings"

	"github.com/modaltree/structon/internal/position"
	"github.com/modaltree/structon/internal/rope"
	"github.com/modaltree/structon/internal/syntax"
)

// wordLiteralPattern mirrors selmode's WordShort pattern: the unit
// words()/find_words() treat as a single "word literal" (spec §4.2).
var wordLiteralPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Slice implements spec §4.2 slice(range) → Rope.
func (b *Buffer) Slice(rg position.Range) rope.Rope {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return rope.FromString(b.rope.Slice(rg.Start, rg.End))
}

// GetLine implements spec §4.2 get_line(char_index) → Rope: the line
// containing charIndex, excluding its newline.
func (b *Buffer) GetLine(charIndex rope.CharIndex) rope.Rope {
	b.mu.RLock()
	defer b.mu.RUnlock()
	line := b.rope.CharToLine(charIndex)
	return rope.FromString(b.rope.LineText(line))
}

// Words implements spec §4.2 words(): every unique word literal in the
// buffer, in first-seen order.
func (b *Buffer) Words() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return uniqueWords(b.rope.String(), func(string) bool { return true })
}

// FindWords implements spec §4.2 find_words(substring): unique word
// literals whose text contains substr, case-insensitively.
func (b *Buffer) FindWords(substr string) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	needle := strings.ToLower(substr)
	return uniqueWords(b.rope.String(), func(word string) bool {
		return strings.Contains(strings.ToLower(word), needle)
	})
}

func uniqueWords(text string, keep func(string) bool) []string {
	seen := map[string]bool{}
	var out []string
	for _, w := range wordLiteralPattern.FindAllString(text, -1) {
		if seen[w] || !keep(w) {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

// WordBefore returns the word literal immediately preceding charIndex, or
// "" if charIndex isn't preceded by one (original_source/ buffer.rs
// get_word_before_char_index, supplemented per SPEC_FULL.md §12 as the
// basis for word-completion-style callers).
func (b *Buffer) WordBefore(charIndex rope.CharIndex) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	prefix := b.rope.Slice(0, charIndex)
	matches := wordLiteralPattern.FindAllString(prefix, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1]
}

// GetCurrentNode implements spec §4.2 get_current_node(selection) →
// Node: the smallest descendant containing sel's byte range, promoted
// to the topmost ancestor sharing that exact range. Returns the null
// Node (and ErrSyntaxFrozen) when the buffer has no tree.
func (b *Buffer) GetCurrentNode(sel position.Range) (syntax.Node, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.tree == nil {
		return syntax.Node{}, ErrSyntaxFrozen
	}
	br, ok := b.byteRangeOf(sel)
	if !ok {
		return syntax.Node{}, ErrOutOfBounds
	}
	node := b.tree.Root().NamedDescendantForByteRange(br.Start, br.End)
	return node.TopmostWithSameRange(), nil
}

// GetNearestNodeAfterChar returns the smallest named node starting at
// or after charIndex (spec §4.2 get_nearest_node_after_char).
func (b *Buffer) GetNearestNodeAfterChar(charIndex rope.CharIndex) (syntax.Node, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.tree == nil {
		return syntax.Node{}, ErrSyntaxFrozen
	}
	byteOff, ok := b.rope.CharToByte(charIndex)
	if !ok {
		return syntax.Node{}, ErrOutOfBounds
	}
	return b.tree.Root().NearestAfterByteOffset(uint32(byteOff)), nil
}

// GetNextToken returns the first leaf token at or after charIndex
// (spec §4.2 get_next_token).
func (b *Buffer) GetNextToken(charIndex rope.CharIndex) (syntax.Node, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.tree == nil {
		return syntax.Node{}, ErrSyntaxFrozen
	}
	byteOff, ok := b.rope.CharToByte(charIndex)
	if !ok {
		return syntax.Node{}, ErrOutOfBounds
	}
	return b.tree.NextToken(uint32(byteOff)), nil
}

// GetPrevToken returns the last leaf token ending at or before
// charIndex (spec §4.2 get_prev_token).
func (b *Buffer) GetPrevToken(charIndex rope.CharIndex) (syntax.Node, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.tree == nil {
		return syntax.Node{}, ErrSyntaxFrozen
	}
	byteOff, ok := b.rope.CharToByte(charIndex)
	if !ok {
		return syntax.Node{}, ErrOutOfBounds
	}
	return b.tree.PrevToken(uint32(byteOff)), nil
}

// HasSyntaxErrorAt implements spec §4.2 has_syntax_error_at(range):
// true iff the smallest node enclosing rg reports an error. A buffer
// with no tree reports false — there is no syntax to be in error about.
func (b *Buffer) HasSyntaxErrorAt(rg position.Range) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.tree == nil {
		return false
	}
	br, ok := b.byteRangeOf(rg)
	if !ok {
		return false
	}
	return b.tree.HasErrorInRange(br.Start, br.End)
}

func (b *Buffer) byteRangeOf(rg position.Range) (syntax.ByteRange, bool) {
	start, ok1 := b.rope.CharToByte(rg.Start)
	end, ok2 := b.rope.CharToByte(rg.End)
	if !ok1 || !ok2 {
		return syntax.ByteRange{}, false
	}
	return syntax.ByteRange{Start: uint32(start), End: uint32(end)}, true
}
