package viewport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kgilper/kpad/internal/buffer"
	"github.com/kgilper/kpad/internal/types"
)

func load(text string) buffer.Buffer {
	return buffer.Load([]byte(text), buffer.KindLines)
}

func pos(line, col int) types.Position { return types.Position{Line: line, Col: col} }

func TestRuneWidth(t *testing.T) {
	assert.Equal(t, 1, RuneWidth('a'))
	assert.Equal(t, 2, RuneWidth('界'))
	assert.Equal(t, 1, RuneWidth('\t'))
	assert.Equal(t, 1, RuneWidth(0x1b))
	assert.Equal(t, 0, RuneWidth('\u0301'))
	assert.Equal(t, 5, DisplayWidth("a界b\t"))
	assert.Equal(t, 3, ColumnWidth("a界b", 2))
	assert.Equal(t, 4, ColumnWidth("a界b", 99))
}

func TestSegments(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		want  []int
	}{
		{"empty", "", 10, []int{0}},
		{"fits", "hello", 5, []int{0}},
		{"overflow", "hello world", 5, []int{0, 5, 10}},
		{"wide runes", "界界界", 5, []int{0, 2}},
		{"wider than width", "界a", 1, []int{0, 1}},
		{"zero width", "abc", 0, []int{0, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Segments(tt.line, tt.width))
		})
	}
}

func TestSetSizeClamps(t *testing.T) {
	m := New(0, -3, false)
	w, h := m.Size()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
}

func TestNoWrapVerticalScroll(t *testing.T) {
	buf := load(strings.Repeat("x\n", 49) + "x")
	m := New(80, 10, false)

	assert.False(t, m.EnsureVisible(buf, pos(9, 0)))
	assert.True(t, m.EnsureVisible(buf, pos(10, 0)))
	y, _ := m.Scroll()
	assert.Equal(t, 1, y)

	m.EnsureVisible(buf, pos(49, 0))
	y, _ = m.Scroll()
	assert.Equal(t, 40, y)
	row, _ := m.CursorScreenCoordinates(buf, pos(49, 0))
	assert.Equal(t, 9, row)

	m.EnsureVisible(buf, pos(3, 0))
	y, _ = m.Scroll()
	assert.Equal(t, 3, y)
}

func TestNoWrapHorizontalScroll(t *testing.T) {
	buf := load("0123456789abcdefghij")
	m := New(5, 3, false)

	m.EnsureVisible(buf, pos(0, 4))
	_, x := m.Scroll()
	assert.Equal(t, 0, x)

	// Scrolling right puts the cursor on the last column.
	m.EnsureVisible(buf, pos(0, 7))
	_, x = m.Scroll()
	assert.Equal(t, 3, x)
	_, col := m.CursorScreenCoordinates(buf, pos(0, 7))
	assert.Equal(t, 4, col)

	// Scrolling left puts it on the first.
	m.EnsureVisible(buf, pos(0, 1))
	_, x = m.Scroll()
	assert.Equal(t, 1, x)
	_, col = m.CursorScreenCoordinates(buf, pos(0, 1))
	assert.Equal(t, 0, col)

	// End of line is reachable.
	m.EnsureVisible(buf, pos(0, 20))
	_, x = m.Scroll()
	assert.Equal(t, 16, x)
}

func TestNoWrapHorizontalWideRunes(t *testing.T) {
	buf := load("界界界界界")
	m := New(4, 1, false)

	m.EnsureVisible(buf, pos(0, 3))
	_, x := m.Scroll()
	// cursor at cell 6, target 6-3=3, first boundary at width >= 3 is rune 2.
	assert.Equal(t, 2, x)
	_, col := m.CursorScreenCoordinates(buf, pos(0, 3))
	assert.Equal(t, 2, col)
}

func TestWrapScreenRows(t *testing.T) {
	buf := load("hello world\n\nab")
	m := New(5, 10, true)

	assert.Equal(t, 0, m.ScreenRow(buf, pos(0, 4)))
	assert.Equal(t, 1, m.ScreenRow(buf, pos(0, 5)))
	assert.Equal(t, 2, m.ScreenRow(buf, pos(0, 11)))
	assert.Equal(t, 3, m.ScreenRow(buf, pos(1, 0)))
	assert.Equal(t, 4, m.ScreenRow(buf, pos(2, 2)))
	assert.Equal(t, 5, m.TotalRows(buf))

	row, col := m.CursorScreenCoordinates(buf, pos(0, 7))
	assert.Equal(t, 1, row)
	assert.Equal(t, 2, col)
}

func TestWrapScreenRowMonotonic(t *testing.T) {
	buf := load("the quick brown fox\n界界界 jumps\n\nover the lazy dog")
	m := New(6, 4, true)
	prev := -1
	for l := 0; l < buf.LineCount(); l++ {
		for c := 0; c <= buf.LineLength(l); c++ {
			row := m.ScreenRow(buf, pos(l, c))
			require.GreaterOrEqual(t, row, prev, "at %d:%d", l, c)
			prev = row
		}
	}
}

func TestWrapEnsureVisibleAndRows(t *testing.T) {
	buf := load("aaaaaaaaaa\nbb\ncccccc")
	m := New(4, 2, true)

	assert.True(t, m.EnsureVisible(buf, pos(2, 5)))
	y, x := m.Scroll()
	assert.Equal(t, 4, y)
	assert.Equal(t, 0, x)

	rows := m.VisibleRows(buf)
	assert.Equal(t, []Row{
		{Line: 2, Start: 0, End: 4},
		{Line: 2, Start: 4, End: 6, Continuation: true},
	}, rows)

	m.EnsureVisible(buf, pos(0, 9))
	rows = m.VisibleRows(buf)
	assert.Equal(t, []Row{
		{Line: 0, Start: 8, End: 10, Continuation: true},
		{Line: 1, Start: 0, End: 2},
	}, rows)
}

func TestNoWrapVisibleRows(t *testing.T) {
	buf := load("long line here\nx\n")
	m := New(4, 5, false)
	m.EnsureVisible(buf, pos(0, 10))

	rows := m.VisibleRows(buf)
	require.Len(t, rows, 3)
	assert.Equal(t, Row{Line: 0, Start: 7, End: 14}, rows[0])
	assert.Equal(t, Row{Line: 1, Start: 1, End: 1}, rows[1])
	assert.Equal(t, Row{Line: 2, Start: 0, End: 0}, rows[2])
}

func TestToggleWrapResetsScroll(t *testing.T) {
	buf := load(strings.Repeat("z", 40))
	m := New(10, 2, false)
	m.EnsureVisible(buf, pos(0, 35))
	_, x := m.Scroll()
	require.NotZero(t, x)

	m.SetWordWrap(true)
	_, x = m.Scroll()
	assert.Zero(t, x)
	assert.True(t, m.WordWrap())
}

func TestScrollBy(t *testing.T) {
	buf := load("a\nb\nc")
	m := New(10, 1, false)
	m.ScrollBy(buf, 5)
	y, _ := m.Scroll()
	assert.Equal(t, 2, y)
	m.ScrollBy(buf, -9)
	y, _ = m.Scroll()
	assert.Equal(t, 0, y)
}

func TestResetScroll(t *testing.T) {
	buf := load(strings.Repeat(strings.Repeat("q", 300)+"\n", 30))
	m := New(20, 5, false)
	m.EnsureVisible(buf, pos(25, 200))
	y, x := m.Scroll()
	require.NotZero(t, y)
	require.NotZero(t, x)

	m.Reset()
	y, x = m.Scroll()
	assert.Zero(t, y)
	assert.Zero(t, x)
	assert.False(t, m.WordWrap())
}

func TestWrapCursorAtEndOfFullRow(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		col     int
		wantRow int
		wantCol int
	}{
		{"exactly one row", "abcd", 4, 0, 3},
		{"second row full", "abcdefgh", 8, 1, 3},
		{"partial row", "abcdef", 6, 1, 2},
		{"wide runes fill row", "日本", 2, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(4, 5, true)
			row, col := m.CursorScreenCoordinates(load(tt.text), pos(0, tt.col))
			assert.Equal(t, tt.wantRow, row)
			assert.Equal(t, tt.wantCol, col)
			assert.Less(t, col, 4)
		})
	}
}
