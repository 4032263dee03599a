package core

import (
	"github.com/kgilper/kpad/internal/buffer"
	"github.com/kgilper/kpad/internal/core/find"
	"github.com/kgilper/kpad/internal/core/motion"
	"github.com/kgilper/kpad/internal/event"
	"github.com/kgilper/kpad/internal/logger"
	"github.com/kgilper/kpad/internal/types"
)

// MoveCursor applies mv. With extend the selection grows from the current
// anchor (set at the cursor if none); otherwise the selection is dropped.
func (e *Editor) MoveCursor(mv motion.Motion, extend bool) {
	if extend {
		e.selectionManager.Begin(e.GetCursor())
	} else {
		e.selectionManager.Clear()
	}
	if e.cursorManager.Apply(mv) {
		e.eventManager.Dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: e.GetCursor()})
	}
	e.ScrollToCursor()
}

// PageSize is the number of lines a page motion covers.
func (e *Editor) PageSize() int {
	_, h := e.viewport.Size()
	return max(1, h-1)
}

// GotoLine moves to the start of a 0-based line.
func (e *Editor) GotoLine(line int) {
	e.selectionManager.Clear()
	e.SetCursor(types.Position{Line: line})
}

// Text operation methods delegated to textOps

func (e *Editor) InsertRune(r rune) error { return e.textOps.InsertRune(r) }

func (e *Editor) InsertText(s string) error { return e.textOps.InsertText(s) }

// Backspace deletes the selection, or the rune before the cursor.
func (e *Editor) Backspace() error { return e.textOps.DeleteBackward() }

// Delete deletes the selection, or the rune under the cursor.
func (e *Editor) Delete() error { return e.textOps.DeleteForward() }

// Undo reverts the most recent edit.
func (e *Editor) Undo() (bool, error) { return e.textOps.Undo() }

// Redo reapplies the most recently undone edit.
func (e *Editor) Redo() (bool, error) { return e.textOps.Redo() }

// Selection

// ClearSelection drops the anchor.
func (e *Editor) ClearSelection() { e.selectionManager.Clear() }

// GetSelection returns the normalized selection range.
func (e *Editor) GetSelection() (start, end types.Position, ok bool) {
	return e.selectionManager.Range(e.GetCursor())
}

func (e *Editor) HasSelection() bool {
	_, _, ok := e.GetSelection()
	return ok
}

// SelectAll anchors at the document start and moves the cursor to its end.
func (e *Editor) SelectAll() {
	end := e.selectionManager.SelectAll(buffer.EndPosition(types.Position{}, e.buffer.String()))
	e.SetCursor(end)
}

// SelectedText returns the selected text, or "" without a selection.
func (e *Editor) SelectedText() string {
	start, end, ok := e.GetSelection()
	if !ok {
		return ""
	}
	return e.buffer.GetRange(start, end)
}

// ReplaceSelection replaces the selection with s, or inserts s at the
// cursor when nothing is selected.
func (e *Editor) ReplaceSelection(s string) error { return e.textOps.InsertText(s) }

// IsSelected reports whether pos is inside the selection.
func (e *Editor) IsSelected(pos types.Position) bool {
	return e.selectionManager.Contains(e.GetCursor(), pos)
}

// Clipboard

// Copy puts the selection on the clipboard. It reports false when nothing
// is selected.
func (e *Editor) Copy() (bool, error) {
	s := e.SelectedText()
	if s == "" {
		return false, nil
	}
	if err := e.clipboardManager.Copy(s); err != nil {
		return true, err
	}
	return true, nil
}

// Cut copies and then deletes the selection. A clipboard failure is
// reported but the text is still removed, since the register holds it.
func (e *Editor) Cut() (bool, error) {
	copied, cerr := e.Copy()
	if !copied {
		return false, nil
	}
	if _, err := e.textOps.DeleteSelection(); err != nil {
		return false, err
	}
	return true, cerr
}

// Paste inserts the clipboard text, replacing any selection.
func (e *Editor) Paste() error {
	s, err := e.clipboardManager.Paste()
	if err != nil {
		logger.Warnf("paste: %v", err)
	}
	if s == "" {
		return err
	}
	return e.textOps.InsertText(buffer.NormalizeNewlines(s))
}

// Whole-document access

// Text returns the document joined with "\n".
func (e *Editor) Text() string { return e.buffer.String() }

// SetText replaces the whole document as one undoable step.
func (e *Editor) SetText(s string) error { return e.textOps.SetText(s) }

// CurrentLineText returns the cursor's line.
func (e *Editor) CurrentLineText() string { return e.buffer.Line(e.GetCursor().Line) }

// SetCurrentLineText replaces the cursor's line, keeping the cursor on it.
func (e *Editor) SetCurrentLineText(s string) error {
	cur := e.GetCursor()
	start := types.Position{Line: cur.Line}
	end := types.Position{Line: cur.Line, Col: e.buffer.LineLength(cur.Line)}
	if err := e.textOps.ReplaceRange(start, end, s); err != nil {
		return err
	}
	e.SetCursor(types.Position{Line: cur.Line, Col: cur.Col})
	return nil
}

// Search

// Find searches for query from the cursor, wrapping, and selects the match.
func (e *Editor) Find(query string) bool {
	pos, ok := e.findManager.Find(e.buffer, query, e.GetCursor())
	return e.selectMatch(pos, query, ok)
}

// FindNext repeats the last search past the current match.
func (e *Editor) FindNext() bool {
	query := e.findManager.Query()
	pos, ok := e.findManager.FindNext(e.buffer, e.GetCursor())
	return e.selectMatch(pos, query, ok)
}

// selectMatch places the cursor at the match start with no selection, so
// a following FindNext sees the cursor on the match.
func (e *Editor) selectMatch(pos types.Position, query string, ok bool) bool {
	if !ok {
		return false
	}
	e.selectionManager.Clear()
	e.SetCursor(pos)
	logger.DebugTagf("find", "%q at %d:%d", query, pos.Line, pos.Col)
	return true
}

// ClearSearch forgets the query and its highlights.
func (e *Editor) ClearSearch() { e.findManager.Clear() }

// ReplaceAll replaces every occurrence of query with repl as a single
// SetText step and returns the number of replacements.
func (e *Editor) ReplaceAll(query, repl string) (int, error) {
	if query == "" {
		return 0, nil
	}
	matches := find.Collect(e.buffer, query, 0)
	if len(matches) == 0 {
		return 0, nil
	}
	cur := e.GetCursor()
	var out []byte
	prev := types.Position{}
	for _, m := range matches {
		out = append(out, e.buffer.GetRange(prev, m.Start)...)
		out = append(out, buffer.NormalizeNewlines(repl)...)
		prev = m.End
	}
	out = append(out, e.buffer.GetRange(prev, buffer.EndPosition(types.Position{}, e.buffer.String()))...)
	if err := e.textOps.SetText(string(out)); err != nil {
		return 0, err
	}
	e.SetCursor(cur)
	return len(matches), nil
}

// View

// ToggleWordWrap flips wrap mode and returns the new state.
func (e *Editor) ToggleWordWrap() bool {
	on := !e.viewport.WordWrap()
	e.viewport.SetWordWrap(on)
	e.ScrollToCursor()
	return on
}

// ToggleLineEnding switches between LF and CRLF for the next save.
func (e *Editor) ToggleLineEnding() types.LineEnding {
	le := e.buffer.LineEnding().Toggle()
	e.buffer.SetLineEnding(le)
	e.modified = true
	return le
}

// LineEnding returns the style used on save.
func (e *Editor) LineEnding() types.LineEnding { return e.buffer.LineEnding() }

// Stats computes document statistics.
func (e *Editor) Stats() buffer.Stats { return buffer.ComputeStats(e.buffer) }
