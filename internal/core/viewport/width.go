package viewport

import (
	"sort"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// RuneWidth is the number of terminal cells r occupies. Control runes
// count as one cell; combining marks as zero.
func RuneWidth(r rune) int {
	if unicode.IsControl(r) {
		return 1
	}
	return runewidth.RuneWidth(r)
}

// DisplayWidth is the cell width of s.
func DisplayWidth(s string) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r)
	}
	return w
}

// ColumnWidth is the cell width of the first col runes of line.
func ColumnWidth(line string, col int) int {
	w, i := 0, 0
	for _, r := range line {
		if i >= col {
			break
		}
		w += RuneWidth(r)
		i++
	}
	return w
}

// Segments splits line into word-wrap rows of at most width cells and
// returns the rune index each row starts at. A rune wider than width gets
// a row of its own; an empty line is a single row.
func Segments(line string, width int) []int {
	width = max(width, 1)
	starts := []int{0}
	col, i := 0, 0
	for _, r := range line {
		w := RuneWidth(r)
		if col+w > width && col > 0 {
			starts = append(starts, i)
			col = 0
		}
		col += w
		i++
	}
	return starts
}

// segmentIndex returns the last segment whose start is <= col.
func segmentIndex(starts []int, col int) int {
	return sort.Search(len(starts), func(i int) bool { return starts[i] > col }) - 1
}
