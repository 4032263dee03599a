package types

// Position represents a cursor or text position within the buffer.
// Line is the 0-based line index.
// Col is the 0-based rune index within the line, never bytes or display width.
type Position struct {
	Line int
	Col  int
}

// Compare orders positions by line, then column.
func (p Position) Compare(o Position) int {
	switch {
	case p.Line < o.Line:
		return -1
	case p.Line > o.Line:
		return 1
	case p.Col < o.Col:
		return -1
	case p.Col > o.Col:
		return 1
	}
	return 0
}

// Less reports whether p sorts before o.
func (p Position) Less(o Position) bool {
	return p.Compare(o) < 0
}

// Order returns a and b as (min, max).
func Order(a, b Position) (Position, Position) {
	if b.Less(a) {
		return b, a
	}
	return a, b
}
