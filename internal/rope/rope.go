// Package rope implements an immutable, rune-indexed rope: a B+ tree of
// short UTF-8 chunks with cached byte, rune and newline counts. Every edit
// returns a new Rope that shares unchanged subtrees with the old one.
package rope

import "strings"

// Rope is an immutable text value. The zero Rope is empty.
type Rope struct {
	root *node
}

// New returns an empty rope.
func New() Rope {
	return Rope{}
}

// FromString builds a balanced rope holding s.
func FromString(s string) Rope {
	if s == "" {
		return Rope{}
	}
	return Rope{root: buildFromChunks(splitIntoChunks(s))}
}

// Len returns the number of runes.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Chars
}

// Summary returns the cached metrics of the whole rope.
func (r Rope) Summary() Summary {
	if r.root == nil {
		return Summary{}
	}
	return r.root.summary
}

// LineCount returns the number of newlines plus one.
func (r Rope) LineCount() int {
	return r.Summary().Lines + 1
}

// Height returns the depth of the tree (0 for a single leaf).
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return r.root.height
}

// ChunkCount returns the number of stored chunks.
func (r Rope) ChunkCount() int {
	if r.root == nil {
		return 0
	}
	return r.root.nchunks
}

// String returns the full text.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.root.summary.Bytes)
	r.root.eachChunk(func(c chunk) bool {
		sb.WriteString(c.data)
		return true
	})
	return sb.String()
}

// Chunks calls fn with each stored chunk in order until fn returns false.
func (r Rope) Chunks(fn func(s string) bool) {
	if r.root == nil {
		return
	}
	r.root.eachChunk(func(c chunk) bool {
		return fn(c.data)
	})
}

func (r Rope) clampOffset(off int) int {
	return max(0, min(off, r.Len()))
}

// Slice returns the runes in [start, end), clamped to the rope.
func (r Rope) Slice(start, end int) string {
	start, end = r.clampOffset(start), r.clampOffset(end)
	if r.root == nil || start >= end {
		return ""
	}
	var sb strings.Builder
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// Split returns ropes holding [0, at) and [at, Len).
func (r Rope) Split(at int) (Rope, Rope) {
	at = r.clampOffset(at)
	if r.root == nil || at == 0 {
		return Rope{}, r
	}
	if at == r.Len() {
		return r, Rope{}
	}
	left, right := r.root.split(at)
	return Rope{root: left}, Rope{root: right}
}

// Concat appends other to r.
func (r Rope) Concat(other Rope) Rope {
	if r.Len() == 0 {
		return other
	}
	if other.Len() == 0 {
		return r
	}
	return Rope{root: concat(r.root, other.root)}.balanced()
}

// Insert returns a rope with text inserted at rune offset at (clamped).
func (r Rope) Insert(at int, text string) Rope {
	if text == "" {
		return r
	}
	left, right := r.Split(at)
	return left.Concat(FromString(text)).Concat(right)
}

// Delete returns a rope without the runes in [start, end) (clamped).
func (r Rope) Delete(start, end int) Rope {
	start, end = r.clampOffset(start), r.clampOffset(end)
	if start >= end {
		return r
	}
	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(right)
}

// LineStart returns the rune offset at which line begins. Lines past the
// end return Len.
func (r Rope) LineStart(line int) int {
	if line <= 0 || r.root == nil {
		return 0
	}
	if line > r.root.summary.Lines {
		return r.Len()
	}
	return r.root.newlineOffset(line)
}

// CharToLine returns the line containing rune offset off.
func (r Rope) CharToLine(off int) int {
	if r.root == nil {
		return 0
	}
	return r.root.newlinesBefore(r.clampOffset(off))
}

// CharToByte converts a rune offset to a byte offset.
func (r Rope) CharToByte(off int) int {
	if r.root == nil {
		return 0
	}
	return r.root.byteOffset(r.clampOffset(off))
}

// Rebalance rebuilds the tree from its chunks.
func (r Rope) Rebalance() Rope {
	if r.root == nil {
		return r
	}
	chunks := make([]chunk, 0, r.root.nchunks)
	r.root.eachChunk(func(c chunk) bool {
		chunks = append(chunks, c)
		return true
	})
	return Rope{root: buildFromChunks(chunks)}
}

// balanced rebuilds the tree once it is much deeper than a fresh build would be.
func (r Rope) balanced() Rope {
	if r.root == nil || r.root.height <= maxHeight(r.root.nchunks) {
		return r
	}
	return r.Rebalance()
}

// maxHeight is the tolerated depth for a tree holding nchunks chunks.
func maxHeight(nchunks int) int {
	leaves := (nchunks + MaxChunksPerLeaf - 1) / MaxChunksPerLeaf
	h := 0
	for capacity := 1; capacity < leaves; capacity *= MaxChildren {
		h++
	}
	return 2*h + 2
}
