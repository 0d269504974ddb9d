package rope

// Builder incrementally constructs a Rope from appended string fragments,
// amortizing the chunk-and-balance cost of FromString across many writes
// (e.g. streaming a file off disk).
type Builder struct {
	pending []byte
	leaves  []*Node
}

// WriteString appends s to the builder.
func (b *Builder) WriteString(s string) {
	b.pending = append(b.pending, s...)
	for len(b.pending) > MaxChunkSize*MaxChunksPerLeaf {
		b.flushChunk()
	}
}

func (b *Builder) flushChunk() {
	boundary := findUTF8Boundary(string(b.pending), TargetChunkSize*MaxChunksPerLeaf)
	if boundary == 0 {
		return
	}
	chunks := splitIntoChunks(string(b.pending[:boundary]))
	if len(chunks) > 0 {
		b.leaves = append(b.leaves, newLeafNodeWithChunks(chunks))
	}
	b.pending = b.pending[boundary:]
}

// Build finalizes the builder into a Rope. The builder must not be reused
// afterward.
func (b *Builder) Build() Rope {
	if len(b.pending) > 0 {
		chunks := splitIntoChunks(string(b.pending))
		if len(chunks) > 0 {
			b.leaves = append(b.leaves, newLeafNodeWithChunks(chunks))
		}
		b.pending = nil
	}

	if len(b.leaves) == 0 {
		return New()
	}

	nodes := b.leaves
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

	return Rope{root: nodes[0]}
}
