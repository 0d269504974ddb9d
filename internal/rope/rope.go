package rope

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Rope is an immutable rope of Unicode text. Operations return new Rope
// values; the receiver is never modified.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode()}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return buildFromChunks(splitIntoChunks(s))
}

// FromReader creates a rope from an io.Reader.
func FromReader(r io.Reader) (Rope, error) {
	var b Builder
	buf := make([]byte, 64*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.WriteString(string(buf[:n]))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Rope{}, err
		}
	}
	return b.Build(), nil
}

func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}

	var leaves []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := i + MaxChunksPerLeaf
		if end > len(chunks) {
			end = len(chunks)
		}
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		leaves = append(leaves, newLeafNodeWithChunks(leafChunks))
	}

	nodes := leaves
	for len(nodes) > 1 {
		var parents []*Node
		for i := 0; i < len(nodes); i += MaxChildren {
			end := i + MaxChildren
			if end > len(nodes) {
				end = len(nodes)
			}
			children := make([]*Node, end-i)
			copy(children, nodes[i:end])
			parents = append(parents, newInternalNode(children))
		}
		nodes = parents
	}

	if len(nodes) == 0 {
		return New()
	}
	return Rope{root: nodes[0]}
}

// Len returns the total byte length.
func (r Rope) Len() ByteOffset {
	if r.root == nil {
		return 0
	}
	return r.root.Len()
}

// CharLen returns the total char (Unicode scalar) length.
func (r Rope) CharLen() CharIndex {
	if r.root == nil {
		return 0
	}
	return r.root.CharLen()
}

// LineCount returns the number of lines (newlines + 1).
func (r Rope) LineCount() uint32 {
	if r.root == nil {
		return 1
	}
	return r.root.LineCount()
}

// IsEmpty reports whether the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// String returns the full text as a string. Use sparingly for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(int(r.Len()))
	r.root.appendTo(&sb)
	return sb.String()
}

// SliceBytes returns the text in the byte range [start, end).
func (r Rope) SliceBytes(start, end ByteOffset) string {
	if r.root == nil || start >= end {
		return ""
	}
	return r.root.textInRange(start, end)
}

// Slice returns the text in the char range [start, end).
func (r Rope) Slice(start, end CharIndex) string {
	if start >= end {
		return ""
	}
	bs, _ := r.CharToByte(start)
	be, _ := r.CharToByte(end)
	return r.SliceBytes(bs, be)
}

// InsertBytes inserts text at the given byte offset.
func (r Rope) InsertBytes(offset ByteOffset, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if r.root == nil || r.Len() == 0 {
		return FromString(text)
	}
	if offset == 0 {
		return FromString(text).Concat(r)
	}
	if offset >= r.Len() {
		return r.Concat(FromString(text))
	}
	left, right := r.Split(offset)
	return left.Concat(FromString(text)).Concat(right)
}

// Insert inserts text at the given char index.
func (r Rope) Insert(charIndex CharIndex, text string) Rope {
	b, _ := r.CharToByte(charIndex)
	return r.InsertBytes(b, text)
}

// DeleteBytes removes text in the byte range [start, end).
func (r Rope) DeleteBytes(start, end ByteOffset) Rope {
	if r.root == nil || start >= end {
		return r
	}

	ropeLen := r.Len()
	if start >= ropeLen {
		return r
	}
	if end > ropeLen {
		end = ropeLen
	}

	switch {
	case start == 0 && end >= ropeLen:
		return New()
	case start == 0:
		_, right := r.Split(end)
		return right
	case end >= ropeLen:
		left, _ := r.Split(start)
		return left
	default:
		left, temp := r.Split(start)
		_, right := temp.Split(end - start)
		return left.Concat(right)
	}
}

// Delete removes text in the char range [start, end).
func (r Rope) Delete(start, end CharIndex) Rope {
	bs, _ := r.CharToByte(start)
	be, _ := r.CharToByte(end)
	return r.DeleteBytes(bs, be)
}

// Replace replaces text in the char range [start, end) with new text.
func (r Rope) Replace(start, end CharIndex, text string) Rope {
	if start >= end && len(text) == 0 {
		return r
	}
	if start >= end {
		return r.Insert(start, text)
	}
	if len(text) == 0 {
		return r.Delete(start, end)
	}
	return r.Delete(start, end).Insert(start, text)
}

// Split splits the rope at a byte offset into two ropes.
func (r Rope) Split(offset ByteOffset) (Rope, Rope) {
	if r.root == nil || offset == 0 {
		return New(), r
	}
	if offset >= r.Len() {
		return r, New()
	}
	leftRoot, rightRoot := r.root.split(offset)
	return Rope{root: leftRoot}, Rope{root: rightRoot}
}

// Concat concatenates two ropes.
func (r Rope) Concat(other Rope) Rope {
	if r.root == nil || r.Len() == 0 {
		return other
	}
	if other.root == nil || other.Len() == 0 {
		return r
	}
	return Rope{root: concat(r.root, other.root)}
}

// Summary returns the aggregated metrics for the entire rope.
func (r Rope) Summary() TextSummary {
	if r.root == nil {
		return TextSummary{Flags: FlagASCII}
	}
	return r.root.summary
}

// EndsWithNewline reports whether the rope's text ends with '\n'. This
// governs the synthetic trailing empty line: a rope ending in a newline
// has no real content on its last reported line.
func (r Rope) EndsWithNewline() bool {
	if r.root == nil || r.Len() == 0 {
		return false
	}
	last, _ := r.ByteAt(r.Len() - 1)
	return last == '\n'
}

// ByteAt returns the byte at the given offset.
func (r Rope) ByteAt(offset ByteOffset) (byte, bool) {
	if r.root == nil || offset >= r.Len() {
		return 0, false
	}

	node := r.root
	for !node.IsLeaf() {
		idx, childOffset := node.findChildByOffset(offset)
		node = node.children[idx]
		offset = childOffset
	}

	for _, chunk := range node.chunks {
		chunkLen := ByteOffset(chunk.Len())
		if offset < chunkLen {
			return chunk.String()[offset], true
		}
		offset -= chunkLen
	}
	return 0, false
}

// LineStartOffset returns the byte offset of the start of the given
// 0-indexed line.
func (r Rope) LineStartOffset(line uint32) ByteOffset {
	if r.root == nil || line == 0 {
		return 0
	}
	if line >= r.LineCount() {
		return r.Len()
	}

	node := r.root
	remaining := line
	byteOffset := ByteOffset(0)

	for !node.IsLeaf() {
		idx, lineInChild := node.findChildByLine(remaining)
		for i := 0; i < idx; i++ {
			byteOffset += node.childSummaries[i].Bytes
		}
		node = node.children[idx]
		remaining = lineInChild
	}

	// Scan the leaf's chunks for the (remaining)-th newline.
	if remaining == 0 {
		return byteOffset
	}
	seen := uint32(0)
	for _, chunk := range node.chunks {
		s := chunk.String()
		for i := 0; i < len(s); i++ {
			if s[i] == '\n' {
				seen++
				if seen == remaining {
					return byteOffset + ByteOffset(i) + 1
				}
			}
		}
		byteOffset += ByteOffset(chunk.Len())
	}
	return r.Len()
}

// LineEndOffset returns the byte offset of the end of the given line (not
// including its newline).
func (r Rope) LineEndOffset(line uint32) ByteOffset {
	if r.root == nil {
		return 0
	}
	lineCount := r.LineCount()
	if line >= lineCount {
		return r.Len()
	}
	if line == lineCount-1 {
		return r.Len()
	}
	next := r.LineStartOffset(line + 1)
	if next > 0 {
		return next - 1
	}
	return 0
}

// LineText returns the text of the given line, excluding its newline.
func (r Rope) LineText(line uint32) string {
	start := r.LineStartOffset(line)
	end := r.LineEndOffset(line)
	return r.SliceBytes(start, end)
}

// LineToChar returns the char index of the first char of the given line.
func (r Rope) LineToChar(line uint32) CharIndex {
	c, _ := r.ByteToChar(r.LineStartOffset(line))
	return c
}

// CharToLine returns the 0-indexed line containing the given char index.
func (r Rope) CharToLine(idx CharIndex) uint32 {
	b, _ := r.CharToByte(idx)
	return r.byteToLine(b)
}

func (r Rope) byteToLine(offset ByteOffset) uint32 {
	if r.root == nil || offset == 0 {
		return 0
	}
	if offset >= r.Len() {
		last := r.LineCount() - 1
		return last
	}

	node := r.root
	line := uint32(0)
	for !node.IsLeaf() {
		idx, childOffset := node.findChildByOffset(offset)
		for i := 0; i < idx; i++ {
			line += node.childSummaries[i].Lines
		}
		node = node.children[idx]
		offset = childOffset
	}

	for _, chunk := range node.chunks {
		chunkLen := ByteOffset(chunk.Len())
		if offset < chunkLen {
			line += CountLines(chunk.String()[:offset])
			return line
		}
		line += CountLines(chunk.String())
		offset -= chunkLen
	}
	return line
}

// CharToByte converts a char index to a byte offset.
func (r Rope) CharToByte(idx CharIndex) (ByteOffset, bool) {
	if r.root == nil {
		return 0, idx == 0
	}
	if idx > r.CharLen() {
		return r.Len(), false
	}
	if idx == r.CharLen() {
		return r.Len(), true
	}

	node := r.root
	byteOffset := ByteOffset(0)
	for !node.IsLeaf() {
		ci, charInChild := node.findChildByChar(idx)
		for i := 0; i < ci; i++ {
			byteOffset += node.childSummaries[i].Bytes
		}
		node = node.children[ci]
		idx = charInChild
	}

	for _, chunk := range node.chunks {
		charsInChunk := chunk.Summary().Chars
		if idx < charsInChunk {
			byteOffset += byteOffsetOfChar(chunk.String(), idx)
			return byteOffset, true
		}
		idx -= charsInChunk
		byteOffset += ByteOffset(chunk.Len())
	}
	return byteOffset, true
}

// ByteToChar converts a byte offset to a char index. offset must land on a
// UTF-8 boundary.
func (r Rope) ByteToChar(offset ByteOffset) (CharIndex, bool) {
	if r.root == nil {
		return 0, offset == 0
	}
	if offset > r.Len() {
		return r.CharLen(), false
	}
	if offset == r.Len() {
		return r.CharLen(), true
	}

	node := r.root
	charIdx := CharIndex(0)
	for !node.IsLeaf() {
		ci, byteInChild := node.findChildByOffset(offset)
		for i := 0; i < ci; i++ {
			charIdx += node.childSummaries[i].Chars
		}
		node = node.children[ci]
		offset = byteInChild
	}

	for _, chunk := range node.chunks {
		chunkLen := ByteOffset(chunk.Len())
		if offset < chunkLen {
			charIdx += CharIndex(CountChars(chunk.String()[:offset]))
			return charIdx, true
		}
		charIdx += chunk.Summary().Chars
		offset -= chunkLen
	}
	return charIdx, true
}

// byteOffsetOfChar returns the byte offset of the idx-th rune in s.
func byteOffsetOfChar(s string, idx CharIndex) ByteOffset {
	var i CharIndex
	for pos := range s {
		if i == idx {
			return ByteOffset(pos)
		}
		i++
	}
	return ByteOffset(len(s))
}

// Point is a 0-indexed (line, column) position where column is measured in
// chars from the line's start.
type Point struct {
	Line   uint32
	Column uint32
}

// CharToPoint converts a char index to a line/column position.
func (r Rope) CharToPoint(idx CharIndex) Point {
	line := r.CharToLine(idx)
	lineStart := r.LineToChar(line)
	col := uint32(0)
	if idx > lineStart {
		col = uint32(idx - lineStart)
	}
	return Point{Line: line, Column: col}
}

// PointToChar converts a line/column position to a char index. A column
// past the end of the line saturates at the line's length.
func (r Rope) PointToChar(p Point) CharIndex {
	lineStart := r.LineToChar(p.Line)
	lineEndByte := r.LineEndOffset(p.Line)
	lineStartByte := r.LineStartOffset(p.Line)
	lineLenChars, _ := r.ByteToChar(lineEndByte)
	lineStartChars, _ := r.ByteToChar(lineStartByte)
	maxCol := uint32(lineLenChars - lineStartChars)
	if p.Column >= maxCol {
		return lineStart + CharIndex(maxCol)
	}
	return lineStart + CharIndex(p.Column)
}

// Height returns the height of the rope's tree. Useful for tests asserting
// balance.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}

// ChunkCount returns the total number of leaf chunks. Useful for tests.
func (r Rope) ChunkCount() int {
	if r.root == nil {
		return 0
	}
	return countChunks(r.root)
}

// Equals reports whether two ropes contain the same text.
func (r Rope) Equals(other Rope) bool {
	return r.Len() == other.Len() && r.String() == other.String()
}

// RuneAt returns the rune starting at the given byte offset, and its width
// in bytes. Returns (utf8.RuneError, 0) if offset is out of range.
func (r Rope) RuneAt(offset ByteOffset) (rune, int) {
	ropeLen := r.Len()
	if offset >= ropeLen {
		return utf8.RuneError, 0
	}
	end := offset + 4
	if end > ropeLen {
		end = ropeLen
	}
	s := r.SliceBytes(offset, end)
	return utf8.DecodeRuneInString(s)
}
