// internal/tui/drawing.go
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/kgilper/kpad/internal/buffer"
	"github.com/kgilper/kpad/internal/core"
	"github.com/kgilper/kpad/internal/core/viewport"
	"github.com/kgilper/kpad/internal/theme"
	"github.com/kgilper/kpad/internal/types"
	"github.com/kgilper/kpad/internal/utils"
)

// StatusBarHeight is the number of rows below the text area.
const StatusBarHeight = 1

// Layout is the split of the screen into gutter, text area and status bar.
type Layout struct {
	Gutter     int // line numbers plus one blank column; 0 when too narrow
	TextWidth  int
	TextHeight int
}

// ComputeLayout sizes the gutter from the document's line count.
func ComputeLayout(width, height, lineCount int) Layout {
	gutter := len(strconv.Itoa(max(lineCount, 1))) + 1
	if gutter >= width {
		gutter = 0 // Disable gutter if screen too narrow
	}
	return Layout{
		Gutter:     gutter,
		TextWidth:  max(width-gutter, 1),
		TextHeight: max(height-StatusBarHeight, 1),
	}
}

// styleAt picks the style for rune col of line: selection over search over
// syntax over default.
func styleAt(th *theme.Theme, base tcell.Style, pos types.Position, syntax, search []types.StyledRange, sel func(types.Position) bool) tcell.Style {
	if sel(pos) {
		return th.GetStyle("Selection")
	}
	for _, h := range search {
		if pos.Col >= h.StartCol && pos.Col < h.EndCol {
			return th.GetStyle("SearchHighlight")
		}
	}
	for _, h := range syntax {
		if pos.Col >= h.StartCol && pos.Col < h.EndCol {
			return th.GetStyle(h.StyleName)
		}
	}
	return base
}

// displayRune is what is drawn for r: control characters, tabs included,
// occupy one cell.
func displayRune(r rune) rune {
	switch {
	case r == '\t':
		return ' '
	case unicode.IsControl(r):
		return '?'
	}
	return r
}

// DrawBuffer draws the visible text with gutter, selection, search and
// syntax highlighting. The editor's view size must already match l.
func DrawBuffer(t *TUI, ed *core.Editor, th *theme.Theme, l Layout) {
	width, _ := t.Size()
	defaultStyle := th.GetStyle("Default")
	gutterStyle := th.GetStyle("Gutter")
	gutterCurrent := th.GetStyle("GutterCurrent")

	buf := ed.GetBuffer()
	cursor := ed.GetCursor()
	rows := ed.Viewport().VisibleRows(buf)

	for y := 0; y < l.TextHeight; y++ {
		// Fill the entire line with the theme's default style
		for x := 0; x < width; x++ {
			t.screen.SetContent(x, y, ' ', nil, defaultStyle)
		}
		if y >= len(rows) {
			continue
		}
		row := rows[y]

		if l.Gutter > 0 && !row.Continuation {
			style := gutterStyle
			if row.Line == cursor.Line {
				style = gutterCurrent
			}
			num := fmt.Sprintf("%*d", l.Gutter-1, row.Line+1)
			for i, r := range num {
				t.screen.SetContent(i, y, r, nil, style)
			}
		}

		drawRow(t, ed, th, buf, row, l.Gutter, y, width, defaultStyle)
	}
}

func drawRow(t *TUI, ed *core.Editor, th *theme.Theme, buf buffer.Buffer, row viewport.Row, x0, y, width int, base tcell.Style) {
	line := []byte(buf.Line(row.Line))
	from := utils.RuneIndexToByteOffset(line, row.Start)
	to := utils.RuneIndexToByteOffset(line, row.End)
	syntax := ed.SyntaxHighlights(row.Line)
	search := ed.SearchHighlights(row.Line)

	x, col := x0, row.Start
	gr := uniseg.NewGraphemes(string(line[from:to]))
	for gr.Next() {
		cluster := gr.Str()
		w := viewport.DisplayWidth(cluster)
		if x+w > width {
			break
		}
		if w > 0 {
			runes := gr.Runes()
			style := styleAt(th, base, types.Position{Line: row.Line, Col: col}, syntax, search, ed.IsSelected)
			t.screen.SetContent(x, y, displayRune(runes[0]), runes[1:], style)
			// Fill remaining cells for wide characters
			for i := 1; i < w; i++ {
				t.screen.SetContent(x+i, y, ' ', nil, style)
			}
		}
		x += w
		col += utf8.RuneCountInString(cluster)
	}
}

// DrawCursor positions the terminal cursor, hiding it when it is outside
// the text area.
func DrawCursor(t *TUI, ed *core.Editor, l Layout) {
	row, col := ed.Viewport().CursorScreenCoordinates(ed.GetBuffer(), ed.GetCursor())
	if row < 0 || row >= l.TextHeight || col < 0 || col >= l.TextWidth {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(l.Gutter+col, row)
}

// DrawOverlay draws lines centered on a cleared screen in style.
func DrawOverlay(t *TUI, lines []string, style tcell.Style) {
	width, height := t.Size()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			t.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	t.screen.HideCursor()

	top := max(height-len(lines), 0) / 2
	for i, line := range lines {
		y := top + i
		if y >= height {
			break
		}
		x := max(width-uniseg.StringWidth(line), 0) / 2
		gr := uniseg.NewGraphemes(line)
		for gr.Next() {
			w := gr.Width()
			if x+w > width {
				break
			}
			runes := gr.Runes()
			t.screen.SetContent(x, y, runes[0], runes[1:], style)
			x += w
		}
	}
}

const histogramWidth = 30

// StatsLines formats document statistics with a line-length histogram.
func StatsLines(st buffer.Stats) []string {
	lines := []string{
		" DOCUMENT STATISTICS ",
		"=====================",
		"",
		fmt.Sprintf("  Lines:       %-10d", st.Lines),
		fmt.Sprintf("  Words:       %-10d", st.Words),
		fmt.Sprintf("  Characters:  %-10d", st.Chars),
		fmt.Sprintf("  File Size:   %-10s", fmt.Sprintf("%d bytes", st.Bytes)),
		fmt.Sprintf("  End of Line: %-10s", st.LineEnding),
		"",
		" LINE LENGTH DISTRIBUTION: ",
	}

	peak := 1
	for _, n := range st.Histogram {
		peak = max(peak, n)
	}
	for i, n := range st.Histogram {
		label := fmt.Sprintf("%2d-%d", i*10, i*10+9)
		if i == buffer.HistogramBuckets-1 {
			label = "90+"
		}
		bar := strings.Repeat("█", n*histogramWidth/peak)
		lines = append(lines, fmt.Sprintf("  %-5s %-*s (%d)", label, histogramWidth, bar, n))
	}
	return append(lines, "", " Press any key to close... ")
}

// HelpLines lists the default key bindings.
func HelpLines() []string {
	return []string{
		" KPAD HELP ",
		"===========",
		"",
		" NAVIGATION:",
		"  Arrows            Move by one character or line",
		"  Ctrl+Left/Right   Previous / next word or punctuation",
		"  Ctrl+Up/Down      Previous / next line boundary",
		"  Home / End        Line start / end",
		"  Ctrl+Home/End     Document start / end",
		"  PageUp / PageDown Move one screen",
		"  Alt+Up/Down       Scroll the view one line",
		"  Ctrl+G            Go to line",
		"",
		" SELECTION:",
		"  Shift+movement    Extend the selection",
		"  Ctrl+A            Select all",
		"",
		" EDITING:",
		"  Ctrl+Z / Ctrl+Y   Undo / redo",
		"  Ctrl+C / X / V    Copy / cut / paste",
		"  Tab               Insert 4 spaces",
		"",
		" FILES AND SEARCH:",
		"  Ctrl+S / Ctrl+W   Save / save as",
		"  Ctrl+O            Open",
		"  Ctrl+F / F3       Find / find next",
		"",
		" SYSTEM:",
		"  Ctrl+P            Command prompt",
		"  Alt+Z             Toggle word wrap",
		"  Ctrl+L            Toggle LF / CRLF",
		"  F1 / F2           Help / document statistics",
		"  Ctrl+Q            Quit (twice if unsaved)",
		"",
		" Press any key to close help...",
	}
}
