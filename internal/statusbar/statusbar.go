// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/kgilper/kpad/internal/theme"
	"github.com/kgilper/kpad/internal/types"
)

// DefaultMessageTimeout is how long a temporary message stays visible.
const DefaultMessageTimeout = 4 * time.Second

// Info is the editor state shown when no message or prompt is active.
type Info struct {
	FilePath   string
	Modified   bool
	Cursor     types.Position
	LineCount  int
	LineEnding types.LineEnding
	Language   string
	WordWrap   bool
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	mu      sync.Mutex
	timeout time.Duration
	now     func() time.Time

	info Info

	// Temporary message state
	message     string
	isError     bool
	messageTime time.Time

	// Prompt state
	promptLabel string
	promptInput string
	prompting   bool
}

// New creates a status bar. timeout <= 0 selects DefaultMessageTimeout.
func New(timeout time.Duration) *StatusBar {
	if timeout <= 0 {
		timeout = DefaultMessageTimeout
	}
	return &StatusBar{timeout: timeout, now: time.Now}
}

// SetInfo updates the editor state shown.
func (sb *StatusBar) SetInfo(info Info) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.info = info
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.setMessage(fmt.Sprintf(format, args...), false)
}

// SetError displays an error message for the configured duration.
func (sb *StatusBar) SetError(err error) {
	sb.setMessage(err.Error(), true)
}

func (sb *StatusBar) setMessage(msg string, isError bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.message = msg
	sb.isError = isError
	sb.messageTime = sb.now()
}

// Message returns the active temporary message, or "".
func (sb *StatusBar) Message() string {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.message
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.message = ""
	sb.messageTime = time.Time{}
}

// Tick expires an old message. It reports whether the bar changed and
// needs a redraw.
func (sb *StatusBar) Tick() bool {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if sb.messageTime.IsZero() || sb.now().Sub(sb.messageTime) <= sb.timeout {
		return false
	}
	sb.message = ""
	sb.messageTime = time.Time{}
	return true
}

// SetPrompt shows label followed by the input being typed.
func (sb *StatusBar) SetPrompt(label, input string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.promptLabel, sb.promptInput, sb.prompting = label, input, true
}

// ClearPrompt hides the prompt.
func (sb *StatusBar) ClearPrompt() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.promptLabel, sb.promptInput, sb.prompting = "", "", false
}

// getDefaultDisplayText builds the default status line, split into a left
// and a right-aligned part.
func (sb *StatusBar) getDefaultDisplayText() (left, right string) {
	info := sb.info
	left = info.FilePath
	if left == "" {
		left = "[No Name]"
	}
	if info.Modified {
		left += " [+]"
	}

	right = fmt.Sprintf("Ln %d/%d, Col %d | %s", info.Cursor.Line+1, info.LineCount, info.Cursor.Col+1, info.LineEnding)
	if info.Language != "" {
		right += " | " + info.Language
	}
	if info.WordWrap {
		right += " | wrap"
	}
	return left, right
}

// Draw renders the status bar on the last screen row. When a prompt is
// active it returns the cell where the terminal cursor belongs.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int, th *theme.Theme) (cursorX int, prompting bool) {
	if height <= 0 || width <= 0 {
		return 0, false
	}
	y := height - 1

	sb.mu.Lock()
	var left, right string
	style := th.GetStyle("StatusBar")
	leftStyle := style
	switch {
	case sb.prompting:
		left = sb.promptLabel + sb.promptInput
		style = th.GetStyle("Prompt")
		leftStyle = style
	case sb.message != "":
		left = sb.message
		if sb.isError {
			leftStyle = th.GetStyle("StatusBarError")
		} else {
			leftStyle = th.GetStyle("StatusBarMessage")
		}
		_, right = sb.getDefaultDisplayText()
	default:
		left, right = sb.getDefaultDisplayText()
		if sb.info.Modified {
			leftStyle = th.GetStyle("StatusBarModified")
		}
	}
	prompting = sb.prompting
	sb.mu.Unlock()

	// Fill background first
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	end := drawString(screen, 0, y, width, left, leftStyle)
	if right != "" {
		rx := width - uniseg.StringWidth(right)
		if rx > end+1 {
			drawString(screen, rx, y, width, right, style)
		}
	}
	return min(end, width-1), prompting
}

// drawString draws s grapheme by grapheme from x and returns the column
// after the last cluster drawn.
func drawString(screen tcell.Screen, x, y, limit int, s string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		clusterWidth := gr.Width()
		if x+clusterWidth > limit {
			break
		}
		runes := gr.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += clusterWidth
	}
	return x
}
