package core

import (
	"fmt"

	"github.com/kgilper/kpad/internal/buffer"
	"github.com/kgilper/kpad/internal/event"
	"github.com/kgilper/kpad/internal/logger"
	"github.com/kgilper/kpad/internal/types"
)

// Open replaces the session's document with the file at path. A missing
// file opens as an empty buffer that will be created on save.
func (e *Editor) Open(path string) error {
	buf, err := buffer.LoadFile(path, e.opts.Storage, e.opts.RopeThreshold)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	e.buffer = buf
	e.filePath = path
	e.modified = false
	e.historyManager.Clear()
	e.selectionManager.Clear()
	e.findManager.Clear()
	e.highlightManager.SetFile(path)
	e.viewport.Reset()
	e.cursorManager.SetPosition(types.Position{})
	e.ScrollToCursor()

	logger.Infof("opened %s (%d lines, %s)", path, buf.LineCount(), buf.LineEnding())
	e.eventManager.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: path})
	return nil
}

// Save writes the document to its file path.
func (e *Editor) Save() error {
	if e.filePath == "" {
		return ErrNoFilePath
	}
	return e.SaveAs(e.filePath)
}

// SaveAs writes the document to path and makes path the session's file.
func (e *Editor) SaveAs(path string) error {
	if path == "" {
		return ErrNoFilePath
	}
	n, err := buffer.SaveFile(path, e.buffer)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if path != e.filePath {
		e.filePath = path
		e.highlightManager.SetFile(path)
	}
	e.modified = false
	logger.Infof("saved %s (%d bytes)", path, n)
	e.eventManager.Dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: path, Bytes: n})
	return nil
}
