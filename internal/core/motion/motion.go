// Package motion computes cursor destinations: plain arrow-key motions and
// word/punctuation boundary jumps. Every function clamps its input and is
// a no-op at the document edge it moves toward.
package motion

import (
	"unicode"

	"github.com/kgilper/kpad/internal/buffer"
	"github.com/kgilper/kpad/internal/types"
)

// Class is the boundary category of a rune.
type Class int

const (
	Whitespace Class = iota
	Word
	Punctuation
)

// Classify returns the boundary class of r. Underscore and hyphen count as
// punctuation.
func Classify(r rune) Class {
	switch {
	case unicode.IsSpace(r):
		return Whitespace
	case (unicode.IsLetter(r) || unicode.IsDigit(r)) && r != '_' && r != '-':
		return Word
	default:
		return Punctuation
	}
}

// Motion maps a position to the cursor's destination.
type Motion func(buf buffer.Buffer, pos types.Position) types.Position

// NextBoundary moves past the current word (or single non-word rune) and
// any whitespace after it. At end of line it moves to the next line start.
func NextBoundary(buf buffer.Buffer, pos types.Position) types.Position {
	pos = buf.Clamp(pos)
	line := []rune(buf.Line(pos.Line))
	if pos.Col >= len(line) {
		if pos.Line+1 < buf.LineCount() {
			return types.Position{Line: pos.Line + 1}
		}
		return pos
	}

	i := pos.Col
	if Classify(line[i]) == Word {
		for i < len(line) && Classify(line[i]) == Word {
			i++
		}
	} else {
		i++
	}
	for i < len(line) && Classify(line[i]) == Whitespace {
		i++
	}
	return types.Position{Line: pos.Line, Col: i}
}

// PrevBoundary moves to the start of the previous word or punctuation rune.
// At column 0 it moves to the end of the previous line.
func PrevBoundary(buf buffer.Buffer, pos types.Position) types.Position {
	pos = buf.Clamp(pos)
	if pos.Col == 0 {
		if pos.Line > 0 {
			return types.Position{Line: pos.Line - 1, Col: buf.LineLength(pos.Line - 1)}
		}
		return pos
	}

	line := []rune(buf.Line(pos.Line))
	i := pos.Col - 1
	for i > 0 && Classify(line[i]) == Whitespace {
		i--
	}
	if Classify(line[i]) == Word {
		for i > 0 && Classify(line[i-1]) == Word {
			i--
		}
	}
	return types.Position{Line: pos.Line, Col: i}
}

// NextLineBoundary moves to the first non-whitespace rune of the next line,
// or to the end of the last line.
func NextLineBoundary(buf buffer.Buffer, pos types.Position) types.Position {
	pos = buf.Clamp(pos)
	if pos.Line+1 < buf.LineCount() {
		return types.Position{Line: pos.Line + 1, Col: firstNonSpace(buf.Line(pos.Line + 1))}
	}
	return types.Position{Line: pos.Line, Col: buf.LineLength(pos.Line)}
}

// PrevLineBoundary moves to the first non-whitespace rune of the previous
// line, or to the document start.
func PrevLineBoundary(buf buffer.Buffer, pos types.Position) types.Position {
	pos = buf.Clamp(pos)
	if pos.Line > 0 {
		return types.Position{Line: pos.Line - 1, Col: firstNonSpace(buf.Line(pos.Line - 1))}
	}
	return types.Position{}
}

func firstNonSpace(line string) int {
	col := 0
	for _, r := range line {
		if Classify(r) != Whitespace {
			break
		}
		col++
	}
	return col
}

func Left(buf buffer.Buffer, pos types.Position) types.Position {
	pos = buf.Clamp(pos)
	switch {
	case pos.Col > 0:
		pos.Col--
	case pos.Line > 0:
		pos.Line--
		pos.Col = buf.LineLength(pos.Line)
	}
	return pos
}

func Right(buf buffer.Buffer, pos types.Position) types.Position {
	pos = buf.Clamp(pos)
	switch {
	case pos.Col < buf.LineLength(pos.Line):
		pos.Col++
	case pos.Line+1 < buf.LineCount():
		pos = types.Position{Line: pos.Line + 1}
	}
	return pos
}

func Up(buf buffer.Buffer, pos types.Position) types.Position {
	return vertical(buf, pos, -1)
}

func Down(buf buffer.Buffer, pos types.Position) types.Position {
	return vertical(buf, pos, 1)
}

func LineStart(buf buffer.Buffer, pos types.Position) types.Position {
	pos = buf.Clamp(pos)
	return types.Position{Line: pos.Line}
}

func LineEnd(buf buffer.Buffer, pos types.Position) types.Position {
	pos = buf.Clamp(pos)
	return types.Position{Line: pos.Line, Col: buf.LineLength(pos.Line)}
}

func DocStart(buffer.Buffer, types.Position) types.Position {
	return types.Position{}
}

func DocEnd(buf buffer.Buffer, _ types.Position) types.Position {
	last := buf.LineCount() - 1
	return types.Position{Line: last, Col: buf.LineLength(last)}
}

// PageUp returns a motion that moves n lines up, n being the viewport
// height minus one (at least 1).
func PageUp(n int) Motion {
	return func(buf buffer.Buffer, pos types.Position) types.Position {
		return vertical(buf, pos, -max(n, 1))
	}
}

// PageDown is the downward counterpart of PageUp.
func PageDown(n int) Motion {
	return func(buf buffer.Buffer, pos types.Position) types.Position {
		return vertical(buf, pos, max(n, 1))
	}
}

func vertical(buf buffer.Buffer, pos types.Position, delta int) types.Position {
	pos = buf.Clamp(pos)
	line := min(max(pos.Line+delta, 0), buf.LineCount()-1)
	if line == pos.Line {
		return pos
	}
	return types.Position{Line: line, Col: min(pos.Col, buf.LineLength(line))}
}
