// internal/core/editor.go
package core

import (
	"context"
	"errors"

	"github.com/kgilper/kpad/internal/buffer"
	"github.com/kgilper/kpad/internal/config"
	"github.com/kgilper/kpad/internal/core/clipboard"
	"github.com/kgilper/kpad/internal/core/cursor"
	"github.com/kgilper/kpad/internal/core/find"
	"github.com/kgilper/kpad/internal/core/highlight"
	"github.com/kgilper/kpad/internal/core/history"
	"github.com/kgilper/kpad/internal/core/selection"
	"github.com/kgilper/kpad/internal/core/text"
	"github.com/kgilper/kpad/internal/core/viewport"
	"github.com/kgilper/kpad/internal/event"
	hl "github.com/kgilper/kpad/internal/highlighter"
	"github.com/kgilper/kpad/internal/logger"
	"github.com/kgilper/kpad/internal/types"
)

// ErrNoFilePath is returned by Save when the buffer has never been given a
// file name.
var ErrNoFilePath = errors.New("core: buffer has no file path")

// Options are the editor settings taken from config.
type Options struct {
	WordWrap        bool
	UndoLimit       int
	Storage         string
	RopeThreshold   int
	SystemClipboard bool
}

// OptionsFromConfig extracts editor options from the application config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		WordWrap:        cfg.Editor.WordWrap,
		UndoLimit:       cfg.Editor.UndoLimit,
		Storage:         cfg.Editor.Storage,
		RopeThreshold:   cfg.Editor.RopeThreshold,
		SystemClipboard: cfg.Editor.SystemClipboard,
	}
}

// Editor is one editing session: a buffer plus everything that tracks
// state about it.
type Editor struct {
	buffer   buffer.Buffer
	filePath string
	modified bool
	opts     Options

	eventManager     *event.Manager
	cursorManager    *cursor.Manager
	selectionManager *selection.Manager
	historyManager   *history.Manager
	textOps          *text.Operations
	findManager      *find.Manager
	clipboardManager *clipboard.Manager
	highlightManager *highlight.Manager
	viewport         *viewport.Mapper
}

// NewEditor creates an editor on an empty buffer. events may be shared with
// the rest of the application; h may be nil to disable syntax highlighting.
func NewEditor(opts Options, events *event.Manager, h *hl.Highlighter) *Editor {
	if events == nil {
		events = event.NewManager()
	}
	e := &Editor{
		buffer:           buffer.New(buffer.KindFor(opts.Storage, 0, opts.RopeThreshold)),
		opts:             opts,
		eventManager:     events,
		selectionManager: selection.NewManager(),
		findManager:      find.NewManager(),
		clipboardManager: clipboard.NewManager(opts.SystemClipboard),
		highlightManager: highlight.NewManager(h),
		viewport:         viewport.New(80, 24, opts.WordWrap),
	}
	e.cursorManager = cursor.NewManager(e)
	e.historyManager = history.NewManager(e, opts.UndoLimit)
	e.textOps = text.NewOperations(e)

	events.Subscribe(event.TypeBufferModified, e.onBufferModified)
	return e
}

func (e *Editor) onBufferModified(ev event.Event) bool {
	e.modified = true
	if data, ok := ev.Data.(event.BufferModifiedData); ok {
		e.highlightManager.AccumulateEdit(data.Edit)
	}
	if e.findManager.Query() != "" {
		e.findManager.Refresh(e.buffer)
	}
	return false
}

// GetBuffer returns the editor's buffer.
func (e *Editor) GetBuffer() buffer.Buffer { return e.buffer }

func (e *Editor) GetEventManager() *event.Manager { return e.eventManager }

func (e *Editor) GetHistoryManager() *history.Manager { return e.historyManager }

// GetCursor returns the current cursor position.
func (e *Editor) GetCursor() types.Position { return e.cursorManager.GetPosition() }

// SetCursor moves the cursor, clamped to the buffer, and scrolls to it.
func (e *Editor) SetCursor(pos types.Position) {
	if e.cursorManager.SetPosition(pos) {
		e.eventManager.Dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: e.GetCursor()})
	}
	e.ScrollToCursor()
}

// GetAnchor returns the selection anchor, if any.
func (e *Editor) GetAnchor() (types.Position, bool) { return e.selectionManager.Anchor() }

// RestoreState sets cursor and anchor together, as undo and redo do.
func (e *Editor) RestoreState(cur, anchor types.Position, hasAnchor bool) {
	e.selectionManager.SetAnchor(anchor, hasAnchor)
	e.SetCursor(cur)
}

// ScrollToCursor ensures the cursor is visible in the viewport
func (e *Editor) ScrollToCursor() {
	e.viewport.EnsureVisible(e.buffer, e.GetCursor())
}

// ScrollView moves the view delta rows without following the cursor. A
// cursor left off screen moves to the start of the nearest visible row.
func (e *Editor) ScrollView(delta int) {
	e.viewport.ScrollBy(e.buffer, delta)
	rows := e.viewport.VisibleRows(e.buffer)
	if len(rows) == 0 {
		return
	}
	top, _ := e.viewport.Scroll()
	_, height := e.viewport.Size()

	var target viewport.Row
	switch row := e.viewport.ScreenRow(e.buffer, e.GetCursor()); {
	case row < top:
		target = rows[0]
	case row >= top+height:
		target = rows[len(rows)-1]
	default:
		return
	}
	e.selectionManager.Clear()
	e.SetCursor(types.Position{Line: target.Line, Col: target.Start})
}

// Viewport exposes the scroll geometry to the renderer.
func (e *Editor) Viewport() *viewport.Mapper { return e.viewport }

// SetViewSize sets the text area size and keeps the cursor visible.
func (e *Editor) SetViewSize(width, height int) {
	e.viewport.SetSize(width, height)
	e.ScrollToCursor()
}

// EnsureVisible scrolls to the cursor and reports whether the view moved.
func (e *Editor) EnsureVisible() bool {
	return e.viewport.EnsureVisible(e.buffer, e.GetCursor())
}

// IsModified reports unsaved changes.
func (e *Editor) IsModified() bool { return e.modified }

// FilePath returns the path the buffer is associated with, or "".
func (e *Editor) FilePath() string { return e.filePath }

// Language returns the syntax language of the buffer, or "".
func (e *Editor) Language() string { return e.highlightManager.Language() }

// UpdateHighlights reparses the buffer if it changed since the last frame.
func (e *Editor) UpdateHighlights(ctx context.Context) {
	if _, err := e.highlightManager.Update(ctx, e.buffer); err != nil {
		logger.Errorf("highlight: %v", err)
	}
}

// SyntaxHighlights returns the syntax ranges on line.
func (e *Editor) SyntaxHighlights(line int) []types.StyledRange {
	return e.highlightManager.HighlightsForLine(line)
}

// SearchHighlights returns the search-match ranges on line.
func (e *Editor) SearchHighlights(line int) []types.StyledRange {
	return e.findManager.HighlightsOnLine(line, e.buffer.LineLength(line))
}

// Close releases resources held by the session.
func (e *Editor) Close() {
	e.highlightManager.Close()
}
