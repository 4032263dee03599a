// Package text is the edit engine: every buffer mutation goes through an
// Operations entry point, which records history, mutates, moves the cursor
// and publishes the edit.
package text

import (
	"errors"

	"github.com/kgilper/kpad/internal/buffer"
	"github.com/kgilper/kpad/internal/core/history"
	"github.com/kgilper/kpad/internal/event"
	"github.com/kgilper/kpad/internal/logger"
	"github.com/kgilper/kpad/internal/types"
)

// ErrReentrantEdit is returned when an edit is started from inside another
// edit, typically by an event handler or plugin callback.
var ErrReentrantEdit = errors.New("text: edit already in progress")

// EditorInterface defines editor methods needed
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	GetCursor() types.Position
	SetCursor(pos types.Position)
	GetEventManager() *event.Manager
	ClearSelection()
	GetSelection() (start, end types.Position, ok bool)
	ScrollToCursor()
	GetHistoryManager() *history.Manager
}

// Operations handles text insertion/deletion
type Operations struct {
	editor EditorInterface
	busy   bool
}

// NewOperations creates a text operations manager
func NewOperations(editor EditorInterface) *Operations {
	return &Operations{editor: editor}
}

func (o *Operations) transact(name string, fn func()) error {
	if o.busy {
		logger.DebugTagf("text", "rejected nested %s", name)
		return ErrReentrantEdit
	}
	o.busy = true
	defer func() { o.busy = false }()
	fn()
	return nil
}

// InsertRune types r at the cursor, replacing any selection.
func (o *Operations) InsertRune(r rune) error {
	return o.transact("insert rune", func() {
		o.deleteSelection()
		buf := o.editor.GetBuffer()
		at := buf.Clamp(o.editor.GetCursor())
		o.record(history.Insertion(at, string(r)))
		edit := buffer.BeginEdit(buf, at, at)
		end := buf.InsertChar(at, r)
		o.finish(edit, end)
	})
}

// InsertText inserts text at the cursor, replacing any selection.
func (o *Operations) InsertText(s string) error {
	return o.transact("insert text", func() {
		o.deleteSelection()
		o.insertAt(o.editor.GetCursor(), s)
	})
}

// InsertAt inserts text at pos and leaves the cursor after it. Any
// selection is dropped but not deleted.
func (o *Operations) InsertAt(pos types.Position, s string) error {
	return o.transact("insert at", func() {
		o.insertAt(pos, s)
	})
}

// DeleteBackward deletes the selection, or the rune before the cursor.
func (o *Operations) DeleteBackward() error {
	return o.transact("delete backward", func() {
		if o.deleteSelection() {
			return
		}
		buf := o.editor.GetBuffer()
		cur := buf.Clamp(o.editor.GetCursor())
		var start types.Position
		switch {
		case cur.Col > 0:
			start = types.Position{Line: cur.Line, Col: cur.Col - 1}
		case cur.Line > 0:
			start = types.Position{Line: cur.Line - 1, Col: buf.LineLength(cur.Line - 1)}
		default:
			return
		}
		o.deleteSpan(start, cur, func() types.Position { return buf.Backspace(cur) })
	})
}

// DeleteForward deletes the selection, or the rune under the cursor.
func (o *Operations) DeleteForward() error {
	return o.transact("delete forward", func() {
		if o.deleteSelection() {
			return
		}
		buf := o.editor.GetBuffer()
		cur := buf.Clamp(o.editor.GetCursor())
		var end types.Position
		switch {
		case cur.Col < buf.LineLength(cur.Line):
			end = types.Position{Line: cur.Line, Col: cur.Col + 1}
		case cur.Line < buf.LineCount()-1:
			end = types.Position{Line: cur.Line + 1}
		default:
			return
		}
		o.deleteSpan(cur, end, func() types.Position { return buf.DeleteForward(cur) })
	})
}

// DeleteSelection deletes the selected range. It reports false when
// nothing was selected.
func (o *Operations) DeleteSelection() (bool, error) {
	var deleted bool
	err := o.transact("delete selection", func() {
		deleted = o.deleteSelection()
	})
	return deleted, err
}

// DeleteRange deletes [a, b) in either argument order.
func (o *Operations) DeleteRange(a, b types.Position) error {
	return o.transact("delete range", func() {
		o.deleteRange(a, b)
	})
}

// ReplaceRange deletes [a, b) and inserts s in its place, as two history
// entries.
func (o *Operations) ReplaceRange(a, b types.Position, s string) error {
	return o.transact("replace range", func() {
		o.editor.ClearSelection()
		start := o.deleteRange(a, b)
		o.insertAt(start, s)
	})
}

// SetText replaces the whole document and moves the cursor to the start.
func (o *Operations) SetText(s string) error {
	return o.transact("set text", func() {
		buf := o.editor.GetBuffer()
		o.editor.ClearSelection()
		last := buf.LineCount() - 1
		o.deleteRange(types.Position{}, types.Position{Line: last, Col: buf.LineLength(last)})
		o.insertAt(types.Position{}, s)
		o.editor.SetCursor(types.Position{})
		o.editor.ScrollToCursor()
	})
}

// Undo reverts the last change. It reports false when history is empty.
func (o *Operations) Undo() (bool, error) {
	var ok bool
	err := o.transact("undo", func() {
		if hist := o.editor.GetHistoryManager(); hist != nil {
			_, ok = hist.Undo()
		}
		if ok {
			o.editor.ScrollToCursor()
		}
	})
	return ok, err
}

// Redo reapplies the last undone change.
func (o *Operations) Redo() (bool, error) {
	var ok bool
	err := o.transact("redo", func() {
		if hist := o.editor.GetHistoryManager(); hist != nil {
			_, ok = hist.Redo()
		}
		if ok {
			o.editor.ScrollToCursor()
		}
	})
	return ok, err
}

func (o *Operations) insertAt(pos types.Position, s string) types.Position {
	buf := o.editor.GetBuffer()
	at := buf.Clamp(pos)
	s = buffer.NormalizeNewlines(s)
	if s == "" {
		return at
	}
	o.record(history.Insertion(at, s))
	o.editor.ClearSelection()
	edit := buffer.BeginEdit(buf, at, at)
	end := buf.InsertText(at, s)
	o.finish(edit, end)
	return end
}

func (o *Operations) deleteSelection() bool {
	start, end, ok := o.editor.GetSelection()
	if !ok {
		o.editor.ClearSelection()
		return false
	}
	o.deleteRange(start, end)
	return true
}

func (o *Operations) deleteRange(a, b types.Position) types.Position {
	buf := o.editor.GetBuffer()
	start, end := types.Order(buf.Clamp(a), buf.Clamp(b))
	if start == end {
		return start
	}
	return o.deleteSpan(start, end, func() types.Position { return buf.DeleteRange(start, end) })
}

// deleteSpan records the removal of [start, end) and runs apply, which
// performs the equivalent buffer mutation.
func (o *Operations) deleteSpan(start, end types.Position, apply func() types.Position) types.Position {
	buf := o.editor.GetBuffer()
	o.record(history.Deletion(start, end, buf.GetRange(start, end)))
	o.editor.ClearSelection()
	edit := buffer.BeginEdit(buf, start, end)
	pos := apply()
	o.finish(edit, pos)
	return pos
}

func (o *Operations) record(change history.Change) {
	if hist := o.editor.GetHistoryManager(); hist != nil {
		hist.RecordChange(change)
	}
}

func (o *Operations) finish(edit buffer.EditTracker, cursor types.Position) {
	o.editor.SetCursor(cursor)
	o.editor.ScrollToCursor()
	if em := o.editor.GetEventManager(); em != nil {
		em.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: edit.Finish(o.editor.GetBuffer(), cursor)})
	}
}
