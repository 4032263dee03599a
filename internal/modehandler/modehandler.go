// internal/modehandler/modehandler.go
package modehandler

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/kgilper/kpad/internal/core"
	"github.com/kgilper/kpad/internal/input"
	"github.com/kgilper/kpad/internal/logger"
	"github.com/kgilper/kpad/internal/plugin"
	"github.com/kgilper/kpad/internal/statusbar"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModePrompt
	ModeOverlay // help or stats shown over the text; any key dismisses
)

func (m InputMode) String() string {
	switch m {
	case ModePrompt:
		return "PROMPT"
	case ModeOverlay:
		return "OVERLAY"
	default:
		return "NORMAL"
	}
}

// PromptKind says what a submitted prompt line is used for.
type PromptKind int

const (
	PromptFind PromptKind = iota
	PromptOpen
	PromptSaveAs
	PromptGotoLine
	PromptCommand
)

var promptLabels = map[PromptKind]string{
	PromptFind:     "Find: ",
	PromptOpen:     "Open: ",
	PromptSaveAs:   "Save as: ",
	PromptGotoLine: "Go to line: ",
	PromptCommand:  "Command: ",
}

// Label is the text shown before the prompt input.
func (k PromptKind) Label() string { return promptLabels[k] }

// ModeHandler manages input modes, prompts and command execution.
type ModeHandler struct {
	// Dependencies (references to components managed by App)
	editor         *core.Editor
	inputProcessor *input.InputProcessor
	statusBar      *statusbar.StatusBar
	commands       *plugin.Registry
	host           plugin.Host
	quitSignal     chan<- struct{}

	// Internal State
	currentMode      InputMode
	promptKind       PromptKind
	promptBuffer     []rune
	overlay          []string
	lastSearchTerm   string
	forceQuitPending bool
	openPending      bool
	quitting         bool
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Editor         *core.Editor
	InputProcessor *input.InputProcessor
	StatusBar      *statusbar.StatusBar
	Commands       *plugin.Registry
	Host           plugin.Host     // what commands run against
	QuitSignal     chan<- struct{} // closed once to end the main loop
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.StatusBar == nil || cfg.Commands == nil || cfg.Host == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: missing required dependencies in Config")
	}
	return &ModeHandler{
		editor:         cfg.Editor,
		inputProcessor: cfg.InputProcessor,
		statusBar:      cfg.StatusBar,
		commands:       cfg.Commands,
		host:           cfg.Host,
		quitSignal:     cfg.QuitSignal,
		currentMode:    ModeNormal,
	}
}

// HandleKeyEvent decides what to do based on current mode and key event.
// Returns true if the event resulted in a change requiring redraw.
func (mh *ModeHandler) HandleKeyEvent(ctx context.Context, ev *tcell.EventKey) bool {
	actionEvent := mh.inputProcessor.ProcessEvent(ev)
	logger.DebugTagf("input", "mode %v: %v", mh.currentMode, actionEvent.Action)

	switch mh.currentMode {
	case ModeNormal:
		return mh.executeAction(ctx, actionEvent)
	case ModePrompt:
		return mh.handleActionPrompt(ctx, actionEvent)
	case ModeOverlay:
		mh.CloseOverlay()
		return true
	default:
		logger.Warnf("modehandler: unknown input mode %v", mh.currentMode)
		return false
	}
}

// HandlePaste inserts bracketed-paste text into the prompt or the document.
func (mh *ModeHandler) HandlePaste(text string) bool {
	switch mh.currentMode {
	case ModePrompt:
		for _, r := range text {
			if r != '\n' && r != '\r' {
				mh.promptBuffer = append(mh.promptBuffer, r)
			}
		}
		mh.updatePrompt()
		return true
	case ModeNormal:
		if text == "" {
			return false
		}
		if err := mh.editor.InsertText(text); err != nil {
			mh.reportError("paste", err)
		}
		return true
	}
	return false
}

// ShowOverlay displays lines over the text until the next key press.
func (mh *ModeHandler) ShowOverlay(lines []string) {
	mh.overlay = lines
	mh.currentMode = ModeOverlay
}

// CloseOverlay returns to normal mode if an overlay is shown.
func (mh *ModeHandler) CloseOverlay() {
	if mh.currentMode == ModeOverlay {
		mh.overlay = nil
		mh.currentMode = ModeNormal
	}
}

// Overlay returns the lines currently shown over the text, or nil.
func (mh *ModeHandler) Overlay() []string {
	if mh.currentMode != ModeOverlay {
		return nil
	}
	return mh.overlay
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCurrentModeString returns the mode name for logs and the status bar.
func (mh *ModeHandler) GetCurrentModeString() string {
	return mh.currentMode.String()
}

// PromptKind returns the kind of the open prompt.
func (mh *ModeHandler) PromptKind() PromptKind {
	return mh.promptKind
}

// GetPromptBuffer returns the prompt input typed so far.
func (mh *ModeHandler) GetPromptBuffer() string {
	if mh.currentMode == ModePrompt {
		return string(mh.promptBuffer)
	}
	return ""
}

// reportError logs err and shows it in the status bar.
func (mh *ModeHandler) reportError(op string, err error) {
	logger.Errorf("%s: %v", op, err)
	mh.statusBar.SetError(err)
}

// quit closes the quit signal once.
func (mh *ModeHandler) quit() {
	if mh.quitting {
		return
	}
	mh.quitting = true
	close(mh.quitSignal)
}
