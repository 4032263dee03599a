// Package buffer holds the document store: the Buffer contract, its flat
// line-list and rope implementations, and load/save/search helpers.
package buffer

import (
	"strings"
	"unicode/utf8"

	"github.com/kgilper/kpad/internal/types"
)

// Buffer is the document store contract. All positions are clamped; no
// method fails for well-formed input. Columns count runes.
type Buffer interface {
	LineCount() int
	LineLength(line int) int
	Line(line int) string
	Len() int

	PositionToOffset(pos types.Position) int
	OffsetToPosition(offset int) types.Position
	Clamp(pos types.Position) types.Position
	ByteOffset(pos types.Position) int

	InsertChar(pos types.Position, ch rune) types.Position
	InsertText(pos types.Position, text string) types.Position
	DeleteRange(a, b types.Position) types.Position
	Backspace(pos types.Position) types.Position
	DeleteForward(pos types.Position) types.Position

	GetRange(a, b types.Position) string
	CalcEndPosition(pos types.Position, text string) types.Position

	String() string
	EachChunk(fn func(chunk string) error) error

	LineEnding() types.LineEnding
	SetLineEnding(le types.LineEnding)
}

// Kind selects a Buffer implementation.
type Kind int

const (
	KindLines Kind = iota
	KindRope
)

func (k Kind) String() string {
	if k == KindRope {
		return "rope"
	}
	return "lines"
}

// New returns an empty buffer of the given kind.
func New(kind Kind) Buffer {
	if kind == KindRope {
		return NewRopeBuffer()
	}
	return NewSliceBuffer()
}

// KindFor resolves a storage strategy name ("lines", "rope", "auto") for a
// document of size bytes. "auto" picks the rope at or above threshold.
func KindFor(strategy string, size, threshold int) Kind {
	switch strings.ToLower(strategy) {
	case "rope":
		return KindRope
	case "lines":
		return KindLines
	}
	if threshold > 0 && size >= threshold {
		return KindRope
	}
	return KindLines
}

// EndPosition predicts where InsertText(pos, text) leaves the cursor,
// without clamping pos.
func EndPosition(pos types.Position, text string) types.Position {
	text = NormalizeNewlines(text)
	nl := strings.Count(text, "\n")
	if nl == 0 {
		return types.Position{Line: pos.Line, Col: pos.Col + utf8.RuneCountInString(text)}
	}
	last := text[strings.LastIndexByte(text, '\n')+1:]
	return types.Position{Line: pos.Line + nl, Col: utf8.RuneCountInString(last)}
}

// NormalizeNewlines converts CRLF sequences to LF.
func NormalizeNewlines(text string) string {
	if !strings.Contains(text, "\r\n") {
		return text
	}
	return strings.ReplaceAll(text, "\r\n", "\n")
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
