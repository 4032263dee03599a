package modehandler

import (
	"context"
	"strconv"
	"strings"

	"github.com/kgilper/kpad/internal/input"
	"github.com/kgilper/kpad/internal/logger"
	"github.com/kgilper/kpad/internal/plugin"
)

// enterPrompt opens a prompt of kind with initial input.
func (mh *ModeHandler) enterPrompt(kind PromptKind, initial string) {
	mh.currentMode = ModePrompt
	mh.promptKind = kind
	mh.promptBuffer = []rune(initial)
	mh.updatePrompt()
	logger.Debugf("modehandler: entering %q prompt", strings.TrimSpace(kind.Label()))
}

func (mh *ModeHandler) updatePrompt() {
	mh.statusBar.SetPrompt(mh.promptKind.Label(), string(mh.promptBuffer))
}

// exitPrompt returns to normal mode without acting on the input.
func (mh *ModeHandler) exitPrompt() {
	mh.currentMode = ModeNormal
	mh.promptBuffer = nil
	mh.statusBar.ClearPrompt()
}

// handleActionPrompt handles actions when in ModePrompt.
func (mh *ModeHandler) handleActionPrompt(ctx context.Context, actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionInsertRune:
		mh.promptBuffer = append(mh.promptBuffer, actionEvent.Rune)
		mh.updatePrompt()

	case input.ActionDeleteCharBackward:
		if len(mh.promptBuffer) == 0 {
			mh.exitPrompt()
			return true
		}
		mh.promptBuffer = mh.promptBuffer[:len(mh.promptBuffer)-1]
		mh.updatePrompt()

	case input.ActionInsertNewLine:
		line := string(mh.promptBuffer)
		kind := mh.promptKind
		mh.exitPrompt()
		mh.submitPrompt(ctx, kind, line)

	case input.ActionCancel, input.ActionQuit:
		mh.exitPrompt()
		logger.Debugf("modehandler: prompt canceled")

	default:
		return false
	}
	return true
}

// submitPrompt acts on a completed prompt line.
func (mh *ModeHandler) submitPrompt(ctx context.Context, kind PromptKind, line string) {
	switch kind {
	case PromptFind:
		if line == "" {
			mh.editor.ClearSearch()
			return
		}
		mh.lastSearchTerm = line
		if !mh.editor.Find(line) {
			mh.statusBar.SetTemporaryMessage("Not found: %s", line)
		}

	case PromptGotoLine:
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || n < 1 {
			mh.statusBar.SetTemporaryMessage("Invalid line number: %s", line)
			return
		}
		mh.editor.GotoLine(n - 1)

	case PromptOpen:
		path := strings.TrimSpace(line)
		if path == "" {
			return
		}
		if err := mh.editor.Open(path); err != nil {
			mh.reportError("open", err)
			return
		}
		mh.lastSearchTerm = ""
		mh.statusBar.SetTemporaryMessage("Opened %s", path)

	case PromptSaveAs:
		path := strings.TrimSpace(line)
		if path == "" {
			mh.statusBar.SetTemporaryMessage("Save canceled")
			return
		}
		if err := mh.editor.SaveAs(path); err != nil {
			mh.reportError("save", err)
			return
		}
		mh.statusBar.SetTemporaryMessage("Saved %s", path)

	case PromptCommand:
		name, args := plugin.ParseCommandLine(line)
		if name == "" {
			return
		}
		mh.runCommand(ctx, name, args)
	}
}
