package modehandler

import (
	"context"
	"errors"

	"github.com/kgilper/kpad/internal/core"
	"github.com/kgilper/kpad/internal/core/motion"
	"github.com/kgilper/kpad/internal/input"
	"github.com/kgilper/kpad/internal/logger"
	"github.com/kgilper/kpad/internal/tui"
)

// tabText is what the Tab key inserts.
const tabText = "    "

// motionFor maps movement actions to motions. Page motions depend on the
// view height and are resolved in executeAction.
var motionFor = map[input.Action]motion.Motion{
	input.ActionMoveUp:               motion.Up,
	input.ActionMoveDown:             motion.Down,
	input.ActionMoveLeft:             motion.Left,
	input.ActionMoveRight:            motion.Right,
	input.ActionMoveHome:             motion.LineStart,
	input.ActionMoveEnd:              motion.LineEnd,
	input.ActionMoveFileStart:        motion.DocStart,
	input.ActionMoveFileEnd:          motion.DocEnd,
	input.ActionMoveWordLeft:         motion.PrevBoundary,
	input.ActionMoveWordRight:        motion.NextBoundary,
	input.ActionMoveLineBoundaryUp:   motion.PrevLineBoundary,
	input.ActionMoveLineBoundaryDown: motion.NextLineBoundary,
}

// executeAction handles actions when in ModeNormal.
func (mh *ModeHandler) executeAction(ctx context.Context, actionEvent input.ActionEvent) bool {
	action := actionEvent.Action
	actionProcessed := true

	if mv, ok := motionFor[action]; ok {
		mh.editor.MoveCursor(mv, actionEvent.Extend)
		mh.resetPending(action)
		return true
	}

	switch action {
	// Movement that depends on the view
	case input.ActionMovePageUp:
		mh.editor.MoveCursor(motion.PageUp(mh.editor.PageSize()), actionEvent.Extend)
	case input.ActionMovePageDown:
		mh.editor.MoveCursor(motion.PageDown(mh.editor.PageSize()), actionEvent.Extend)
	case input.ActionScrollUp:
		mh.editor.ScrollView(-1)
	case input.ActionScrollDown:
		mh.editor.ScrollView(1)

	// Prompts
	case input.ActionFind:
		mh.enterPrompt(PromptFind, mh.lastSearchTerm)
	case input.ActionGotoLine:
		mh.enterPrompt(PromptGotoLine, "")
	case input.ActionCommandPrompt:
		mh.enterPrompt(PromptCommand, "")
	case input.ActionSaveAs:
		mh.enterPrompt(PromptSaveAs, mh.editor.FilePath())
	case input.ActionOpen:
		if mh.editor.IsModified() && !mh.openPending {
			mh.statusBar.SetTemporaryMessage("Unsaved changes! Press Ctrl+O again to open anyway.")
			mh.openPending = true
			return true
		}
		mh.openPending = false
		mh.enterPrompt(PromptOpen, "")

	// Quit/Save
	case input.ActionQuit:
		if mh.editor.IsModified() && !mh.forceQuitPending {
			mh.statusBar.SetTemporaryMessage("Unsaved changes! Press Ctrl+Q again to quit without saving.")
			mh.forceQuitPending = true
			return true
		}
		mh.quit()
		return false
	case input.ActionSave:
		mh.save()

	case input.ActionCancel:
		mh.editor.ClearSearch()
		mh.editor.ClearSelection()
		mh.statusBar.ResetTemporaryMessage()

	// Text modification
	case input.ActionInsertRune:
		actionProcessed = mh.edit("insert", mh.editor.InsertRune(actionEvent.Rune))
	case input.ActionInsertNewLine:
		actionProcessed = mh.edit("newline", mh.editor.InsertText("\n"))
	case input.ActionInsertTab:
		actionProcessed = mh.edit("tab", mh.editor.InsertText(tabText))
	case input.ActionDeleteCharBackward:
		actionProcessed = mh.edit("backspace", mh.editor.Backspace())
	case input.ActionDeleteCharForward:
		actionProcessed = mh.edit("delete", mh.editor.Delete())

	case input.ActionUndo:
		ok, err := mh.editor.Undo()
		if err != nil {
			mh.reportError("undo", err)
		} else if !ok {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
		}
	case input.ActionRedo:
		ok, err := mh.editor.Redo()
		if err != nil {
			mh.reportError("redo", err)
		} else if !ok {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
		}

	// Clipboard
	case input.ActionCopy:
		copied, err := mh.editor.Copy()
		switch {
		case err != nil:
			mh.reportError("copy", err)
		case copied:
			mh.statusBar.SetTemporaryMessage("Copied")
		default:
			mh.statusBar.SetTemporaryMessage("Nothing selected")
		}
	case input.ActionCut:
		cut, err := mh.editor.Cut()
		switch {
		case err != nil:
			mh.reportError("cut", err)
		case !cut:
			mh.statusBar.SetTemporaryMessage("Nothing selected")
		}
	case input.ActionPaste:
		if err := mh.editor.Paste(); err != nil {
			mh.reportError("paste", err)
		}
	case input.ActionSelectAll:
		mh.editor.SelectAll()

	case input.ActionFindNext:
		mh.findNext()

	// View
	case input.ActionToggleWordWrap:
		if mh.editor.ToggleWordWrap() {
			mh.statusBar.SetTemporaryMessage("Word wrap on")
		} else {
			mh.statusBar.SetTemporaryMessage("Word wrap off")
		}
	case input.ActionToggleLineEnding:
		le := mh.editor.ToggleLineEnding()
		mh.statusBar.SetTemporaryMessage("Line endings: %s", le)
	case input.ActionShowHelp:
		mh.ShowOverlay(tui.HelpLines())
	case input.ActionShowStats:
		mh.ShowOverlay(tui.StatsLines(mh.editor.Stats()))

	case input.ActionRunCommand:
		mh.runCommand(ctx, actionEvent.Command, nil)

	case input.ActionUnknown:
		actionProcessed = false
	default:
		actionProcessed = false
	}

	if actionProcessed {
		mh.resetPending(action)
	}
	return actionProcessed
}

// resetPending drops quit and open confirmations once another action runs.
func (mh *ModeHandler) resetPending(action input.Action) {
	if action != input.ActionQuit {
		mh.forceQuitPending = false
	}
	if action != input.ActionOpen {
		mh.openPending = false
	}
}

// edit reports a failed edit and tells whether anything changed.
func (mh *ModeHandler) edit(op string, err error) bool {
	if err != nil {
		mh.reportError(op, err)
		return false
	}
	return true
}

// save writes the buffer, asking for a path when it has none.
func (mh *ModeHandler) save() {
	err := mh.editor.Save()
	switch {
	case errors.Is(err, core.ErrNoFilePath):
		mh.enterPrompt(PromptSaveAs, "")
	case err != nil:
		mh.reportError("save", err)
	default:
		mh.statusBar.SetTemporaryMessage("Saved %s", mh.editor.FilePath())
	}
}

// findNext repeats the last search.
func (mh *ModeHandler) findNext() {
	if mh.lastSearchTerm == "" {
		mh.statusBar.SetTemporaryMessage("No search term")
		return
	}
	if !mh.editor.FindNext() {
		mh.statusBar.SetTemporaryMessage("Not found: %s", mh.lastSearchTerm)
	}
}

// runCommand runs a registered command against the host.
func (mh *ModeHandler) runCommand(ctx context.Context, name string, args []string) {
	logger.Debugf("modehandler: executing command %q with args %v", name, args)
	if err := mh.commands.Run(ctx, mh.host, name, args); err != nil {
		mh.reportError("command", err)
	}
}
