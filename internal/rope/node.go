package rope

import "strings"

// Tree shape limits.
const (
	// MaxChildren is the maximum children per internal node.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// node is a rope B+ tree node. Leaves (height 0) hold chunks; internal
// nodes hold children. Nodes are never mutated once built.
type node struct {
	height   int
	summary  Summary
	nchunks  int
	children []*node
	chunks   []chunk
}

func newLeaf(chunks []chunk) *node {
	n := &node{chunks: chunks, nchunks: len(chunks)}
	for _, c := range chunks {
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

func newInternal(children []*node) *node {
	if len(children) == 0 {
		return newLeaf(nil)
	}
	n := &node{children: children}
	for _, child := range children {
		n.summary = n.summary.Add(child.summary)
		n.nchunks += child.nchunks
		if child.height+1 > n.height {
			n.height = child.height + 1
		}
	}
	return n
}

func (n *node) isLeaf() bool {
	return n.children == nil
}

// buildFromChildren groups children into a tree of nodes with at most MaxChildren each.
func buildFromChildren(children []*node) *node {
	switch {
	case len(children) == 0:
		return newLeaf(nil)
	case len(children) == 1:
		return children[0]
	case len(children) <= MaxChildren:
		return newInternal(children)
	}
	parents := make([]*node, 0, len(children)/MaxChildren+1)
	for i := 0; i < len(children); i += MaxChildren {
		end := min(i+MaxChildren, len(children))
		parents = append(parents, newInternal(children[i:end:end]))
	}
	return buildFromChildren(parents)
}

// buildFromChunks builds a balanced tree bottom-up.
func buildFromChunks(chunks []chunk) *node {
	if len(chunks) == 0 {
		return newLeaf(nil)
	}
	leaves := make([]*node, 0, len(chunks)/MaxChunksPerLeaf+1)
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		leafChunks := make([]chunk, end-i)
		copy(leafChunks, chunks[i:end])
		leaves = append(leaves, newLeaf(leafChunks))
	}
	return buildFromChildren(leaves)
}

// split divides the subtree at a rune offset: left holds [0, at), right [at, end).
func (n *node) split(at int) (*node, *node) {
	if at <= 0 {
		return newLeaf(nil), n
	}
	if at >= n.summary.Chars {
		return n, newLeaf(nil)
	}

	if n.isLeaf() {
		var left, right []chunk
		offset := 0
		for _, c := range n.chunks {
			switch {
			case offset+c.summary.Chars <= at:
				left = append(left, c)
			case offset >= at:
				right = append(right, c)
			default:
				l, r := c.split(at - offset)
				left = append(left, l)
				right = append(right, r)
			}
			offset += c.summary.Chars
		}
		return newLeaf(left), newLeaf(right)
	}

	var left, right []*node
	offset := 0
	for _, child := range n.children {
		switch {
		case offset+child.summary.Chars <= at:
			left = append(left, child)
		case offset >= at:
			right = append(right, child)
		default:
			l, r := child.split(at - offset)
			if l.summary.Chars > 0 {
				left = append(left, l)
			}
			if r.summary.Chars > 0 {
				right = append(right, r)
			}
		}
		offset += child.summary.Chars
	}
	return buildFromChildren(left), buildFromChildren(right)
}

// concat joins two subtrees. Only the nodes along the touching spines are
// rebuilt, and the touching chunks merge when small.
func concat(left, right *node) *node {
	if left == nil || left.summary.Chars == 0 {
		if right == nil {
			return newLeaf(nil)
		}
		return right
	}
	if right == nil || right.summary.Chars == 0 {
		return left
	}
	return buildFromChildren(join(left, right))
}

// join merges left and right into one or more sibling nodes.
func join(left, right *node) []*node {
	switch {
	case left.height > right.height:
		last := len(left.children) - 1
		kids := make([]*node, 0, len(left.children)+1)
		kids = append(kids, left.children[:last]...)
		kids = append(kids, join(left.children[last], right)...)
		return groupNodes(kids)
	case right.height > left.height:
		kids := join(left, right.children[0])
		kids = append(kids, right.children[1:]...)
		return groupNodes(kids)
	case left.isLeaf():
		return joinLeaves(left, right)
	}
	last := len(left.children) - 1
	kids := make([]*node, 0, len(left.children)+len(right.children))
	kids = append(kids, left.children[:last]...)
	kids = append(kids, join(left.children[last], right.children[0])...)
	kids = append(kids, right.children[1:]...)
	return groupNodes(kids)
}

// groupNodes packs siblings into as few internal nodes as MaxChildren allows.
func groupNodes(kids []*node) []*node {
	if len(kids) <= MaxChildren {
		return []*node{newInternal(kids)}
	}
	groups := (len(kids) + MaxChildren - 1) / MaxChildren
	out := make([]*node, 0, groups)
	for g := 0; g < groups; g++ {
		lo, hi := g*len(kids)/groups, (g+1)*len(kids)/groups
		out = append(out, newInternal(kids[lo:hi:hi]))
	}
	return out
}

// joinLeaves joins two leaves, merging the touching chunks when one is
// small and the result fits in a chunk.
func joinLeaves(left, right *node) []*node {
	chunks := make([]chunk, 0, len(left.chunks)+len(right.chunks))
	chunks = append(chunks, left.chunks...)
	rest := right.chunks
	if len(chunks) > 0 && len(rest) > 0 {
		last, first := chunks[len(chunks)-1], rest[0]
		if (last.summary.Bytes < MinChunkSize || first.summary.Bytes < MinChunkSize) &&
			last.summary.Bytes+first.summary.Bytes <= MaxChunkSize {
			chunks[len(chunks)-1] = newChunk(last.data + first.data)
			rest = rest[1:]
		}
	}
	chunks = append(chunks, rest...)

	if len(chunks) <= MaxChunksPerLeaf {
		return []*node{newLeaf(chunks)}
	}
	groups := (len(chunks) + MaxChunksPerLeaf - 1) / MaxChunksPerLeaf
	out := make([]*node, 0, groups)
	for g := 0; g < groups; g++ {
		lo, hi := g*len(chunks)/groups, (g+1)*len(chunks)/groups
		out = append(out, newLeaf(chunks[lo:hi:hi]))
	}
	return out
}

func (n *node) eachChunk(fn func(c chunk) bool) bool {
	if n.isLeaf() {
		for _, c := range n.chunks {
			if !fn(c) {
				return false
			}
		}
		return true
	}
	for _, child := range n.children {
		if !child.eachChunk(fn) {
			return false
		}
	}
	return true
}

// appendRange writes the runes in [start, end) to sb.
func (n *node) appendRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}
	if n.isLeaf() {
		offset := 0
		for _, c := range n.chunks {
			cEnd := offset + c.summary.Chars
			if cEnd > start && offset < end {
				from := charToByte(c.data, max(start-offset, 0))
				to := charToByte(c.data, min(end-offset, c.summary.Chars))
				sb.WriteString(c.data[from:to])
			}
			offset = cEnd
			if offset >= end {
				return
			}
		}
		return
	}
	offset := 0
	for _, child := range n.children {
		cEnd := offset + child.summary.Chars
		if cEnd > start && offset < end {
			child.appendRange(sb, max(start-offset, 0), min(end-offset, child.summary.Chars))
		}
		offset = cEnd
		if offset >= end {
			return
		}
	}
}

// newlineOffset returns the rune offset just past the k-th newline (k >= 1).
func (n *node) newlineOffset(k int) int {
	offset := 0
	if n.isLeaf() {
		for _, c := range n.chunks {
			if k > c.summary.Lines {
				k -= c.summary.Lines
				offset += c.summary.Chars
				continue
			}
			i := 0
			for _, r := range c.data {
				i++
				if r == '\n' {
					k--
					if k == 0 {
						return offset + i
					}
				}
			}
		}
		return offset
	}
	for _, child := range n.children {
		if k > child.summary.Lines {
			k -= child.summary.Lines
			offset += child.summary.Chars
			continue
		}
		return offset + child.newlineOffset(k)
	}
	return offset
}

// newlinesBefore counts newlines in [0, at).
func (n *node) newlinesBefore(at int) int {
	lines := 0
	if n.isLeaf() {
		for _, c := range n.chunks {
			if at >= c.summary.Chars {
				lines += c.summary.Lines
				at -= c.summary.Chars
				continue
			}
			lines += strings.Count(c.data[:charToByte(c.data, at)], "\n")
			return lines
		}
		return lines
	}
	for _, child := range n.children {
		if at >= child.summary.Chars {
			lines += child.summary.Lines
			at -= child.summary.Chars
			continue
		}
		return lines + child.newlinesBefore(at)
	}
	return lines
}

// byteOffset converts a rune offset to a byte offset.
func (n *node) byteOffset(at int) int {
	bytes := 0
	if n.isLeaf() {
		for _, c := range n.chunks {
			if at >= c.summary.Chars {
				bytes += c.summary.Bytes
				at -= c.summary.Chars
				continue
			}
			return bytes + charToByte(c.data, at)
		}
		return bytes
	}
	for _, child := range n.children {
		if at >= child.summary.Chars {
			bytes += child.summary.Bytes
			at -= child.summary.Chars
			continue
		}
		return bytes + child.byteOffset(at)
	}
	return bytes
}
