// Package viewport maps buffer positions to screen coordinates and keeps
// the scroll offsets following the cursor, with and without word wrap.
package viewport

import (
	"unicode/utf8"

	"github.com/kgilper/kpad/internal/buffer"
	"github.com/kgilper/kpad/internal/logger"
	"github.com/kgilper/kpad/internal/types"
)

// Row is one screen row of text: runes [Start, End) of buffer line Line.
// Continuation marks a wrapped row after the first of its line.
type Row struct {
	Line         int
	Start        int
	End          int
	Continuation bool
}

// Mapper holds the text area geometry and scroll state. In no-wrap mode
// scrollY is a buffer line and scrollX a rune column; in wrap mode scrollY
// is a screen row and scrollX stays 0.
type Mapper struct {
	width    int
	height   int
	wordWrap bool
	scrollY  int
	scrollX  int
}

// New creates a mapper for a text area of the given size.
func New(width, height int, wordWrap bool) *Mapper {
	m := &Mapper{wordWrap: wordWrap}
	m.SetSize(width, height)
	return m
}

// SetSize sets the text area size. Non-positive dimensions become 1.
func (m *Mapper) SetSize(width, height int) {
	m.width = max(width, 1)
	m.height = max(height, 1)
}

func (m *Mapper) Size() (width, height int) { return m.width, m.height }

func (m *Mapper) WordWrap() bool { return m.wordWrap }

// SetWordWrap switches modes and resets horizontal scroll.
func (m *Mapper) SetWordWrap(on bool) {
	if m.wordWrap == on {
		return
	}
	m.wordWrap = on
	m.scrollX = 0
	m.scrollY = 0
	logger.DebugTagf("viewport", "word wrap %v", on)
}

// Reset scrolls back to the top-left, as for a freshly opened document.
func (m *Mapper) Reset() {
	m.scrollY, m.scrollX = 0, 0
}

// Scroll returns the current offsets.
func (m *Mapper) Scroll() (y, x int) { return m.scrollY, m.scrollX }

// ScrollBy moves the view delta rows without touching the cursor, clamped
// to the document.
func (m *Mapper) ScrollBy(buf buffer.Buffer, delta int) {
	m.scrollY = min(max(m.scrollY+delta, 0), m.TotalRows(buf)-1)
}

// ScreenRow returns the absolute screen row of pos: its line in no-wrap
// mode, or the count of wrapped rows before it in wrap mode.
func (m *Mapper) ScreenRow(buf buffer.Buffer, pos types.Position) int {
	pos = buf.Clamp(pos)
	if !m.wordWrap {
		return pos.Line
	}
	row := 0
	for l := 0; l < pos.Line; l++ {
		row += len(Segments(buf.Line(l), m.width))
	}
	return row + segmentIndex(Segments(buf.Line(pos.Line), m.width), pos.Col)
}

// TotalRows is the number of screen rows the whole document occupies.
func (m *Mapper) TotalRows(buf buffer.Buffer) int {
	if !m.wordWrap {
		return buf.LineCount()
	}
	rows := 0
	for l := 0; l < buf.LineCount(); l++ {
		rows += len(Segments(buf.Line(l), m.width))
	}
	return rows
}

// EnsureVisible adjusts scroll so pos is on screen and reports whether
// anything changed.
func (m *Mapper) EnsureVisible(buf buffer.Buffer, pos types.Position) bool {
	pos = buf.Clamp(pos)
	oldY, oldX := m.scrollY, m.scrollX

	if m.wordWrap {
		m.scrollY = follow(m.scrollY, m.ScreenRow(buf, pos), m.height)
		m.scrollX = 0
	} else {
		m.scrollY = follow(m.scrollY, pos.Line, m.height)
		m.scrollX = m.horizontal(buf.Line(pos.Line), pos.Col)
	}

	changed := oldY != m.scrollY || oldX != m.scrollX
	if changed {
		logger.DebugTagf("viewport", "scroll (%d,%d) -> (%d,%d)", oldY, oldX, m.scrollY, m.scrollX)
	}
	return changed
}

// follow returns the new top so that target is within [top, top+height).
func follow(top, target, height int) int {
	switch {
	case target < top:
		return target
	case target >= top+height:
		return target - (height - 1)
	}
	return top
}

// horizontal computes scrollX for a cursor at col. Scrolling left lands the
// cursor on the first column; scrolling right lands it on the last one.
func (m *Mapper) horizontal(line string, col int) int {
	cursorW := ColumnWidth(line, col)
	scrollW := ColumnWidth(line, m.scrollX)

	switch {
	case cursorW < scrollW:
		return col
	case cursorW >= scrollW+m.width:
		target := cursorW - (m.width - 1)
		w, i := 0, 0
		for _, r := range line {
			if w >= target {
				return i
			}
			w += RuneWidth(r)
			i++
		}
		return i
	}
	return m.scrollX
}

// CursorScreenCoordinates returns pos relative to the top-left of the text
// area, in cells. The result may fall outside the area if EnsureVisible has
// not been called.
func (m *Mapper) CursorScreenCoordinates(buf buffer.Buffer, pos types.Position) (row, col int) {
	pos = buf.Clamp(pos)
	line := buf.Line(pos.Line)
	if !m.wordWrap {
		return pos.Line - m.scrollY, ColumnWidth(line, pos.Col) - ColumnWidth(line, m.scrollX)
	}
	starts := Segments(line, m.width)
	start := starts[segmentIndex(starts, pos.Col)]
	// End of a line whose last row is full: stay on the last cell.
	col = min(ColumnWidth(line, pos.Col)-ColumnWidth(line, start), m.width-1)
	return m.ScreenRow(buf, pos) - m.scrollY, col
}

// VisibleRows lists the rows currently on screen, top to bottom.
func (m *Mapper) VisibleRows(buf buffer.Buffer) []Row {
	rows := make([]Row, 0, m.height)
	if !m.wordWrap {
		for l := m.scrollY; l < buf.LineCount() && len(rows) < m.height; l++ {
			n := buf.LineLength(l)
			rows = append(rows, Row{Line: l, Start: min(m.scrollX, n), End: n})
		}
		return rows
	}

	skip := m.scrollY
	for l := 0; l < buf.LineCount() && len(rows) < m.height; l++ {
		line := buf.Line(l)
		starts := Segments(line, m.width)
		if skip >= len(starts) {
			skip -= len(starts)
			continue
		}
		n := utf8.RuneCountInString(line)
		for i := skip; i < len(starts) && len(rows) < m.height; i++ {
			end := n
			if i+1 < len(starts) {
				end = starts[i+1]
			}
			rows = append(rows, Row{Line: l, Start: starts[i], End: end, Continuation: i > 0})
		}
		skip = 0
	}
	return rows
}
