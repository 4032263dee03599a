package rope

import (
	"strings"
	"unicode/utf8"
)

// Chunk size limits, in bytes.
const (
	// MaxChunkSize is the largest chunk produced by splitting input text.
	MaxChunkSize = 256

	// MinChunkSize is the size below which neighbouring chunks are merged on concat.
	MinChunkSize = 64
)

// Summary holds the metrics cached for a chunk or subtree.
type Summary struct {
	Bytes int
	Chars int // runes
	Lines int // newline count
}

// Add returns the summary of two adjacent pieces of text.
func (s Summary) Add(o Summary) Summary {
	return Summary{
		Bytes: s.Bytes + o.Bytes,
		Chars: s.Chars + o.Chars,
		Lines: s.Lines + o.Lines,
	}
}

// ComputeSummary measures s.
func ComputeSummary(s string) Summary {
	return Summary{
		Bytes: len(s),
		Chars: utf8.RuneCountInString(s),
		Lines: strings.Count(s, "\n"),
	}
}

// chunk is an immutable piece of text stored in a leaf.
type chunk struct {
	data    string
	summary Summary
}

func newChunk(s string) chunk {
	return chunk{data: s, summary: ComputeSummary(s)}
}

// split divides the chunk at a rune offset.
func (c chunk) split(chars int) (chunk, chunk) {
	if chars <= 0 {
		return chunk{}, c
	}
	if chars >= c.summary.Chars {
		return c, chunk{}
	}
	b := charToByte(c.data, chars)
	return newChunk(c.data[:b]), newChunk(c.data[b:])
}

// charToByte converts a rune offset in s to a byte offset, clamped to len(s).
func charToByte(s string, chars int) int {
	if chars <= 0 {
		return 0
	}
	n := 0
	for i := range s {
		if n == chars {
			return i
		}
		n++
	}
	return len(s)
}

// splitIntoChunks cuts s into chunks of at most MaxChunkSize bytes on rune boundaries.
func splitIntoChunks(s string) []chunk {
	if s == "" {
		return nil
	}
	chunks := make([]chunk, 0, len(s)/MaxChunkSize+1)
	for len(s) > MaxChunkSize {
		cut := MaxChunkSize
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		if cut == 0 {
			// Not valid UTF-8 at this point; cut at the limit.
			cut = MaxChunkSize
		}
		chunks = append(chunks, newChunk(s[:cut]))
		s = s[cut:]
	}
	return append(chunks, newChunk(s))
}
