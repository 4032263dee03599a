// internal/input/action.go
package input

// Action represents a command or operation to be performed by the editor.
type Action int

// Define the set of possible editor actions.
const (
	// --- Meta Actions ---
	ActionUnknown Action = iota // Default/invalid action
	ActionQuit                  // Asks for confirmation when modified
	ActionSave
	ActionSaveAs
	ActionOpen
	ActionCancel // Esc: leave prompt, clear search
	ActionCommandPrompt
	ActionRunCommand // Requires Command argument

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome // Beginning of line
	ActionMoveEnd  // End of line
	ActionMoveFileStart
	ActionMoveFileEnd
	ActionMoveWordLeft
	ActionMoveWordRight
	ActionMoveLineBoundaryUp
	ActionMoveLineBoundaryDown
	ActionGotoLine
	ActionScrollUp // View only; the cursor follows if it leaves the screen
	ActionScrollDown

	// --- Text Manipulation ---
	ActionInsertRune    // Requires Rune argument
	ActionInsertNewLine // Enter
	ActionInsertTab
	ActionDeleteCharForward  // Delete key
	ActionDeleteCharBackward // Backspace key
	ActionUndo
	ActionRedo
	ActionCopy
	ActionCut
	ActionPaste
	ActionSelectAll

	// --- Search ---
	ActionFind
	ActionFindNext

	// --- View ---
	ActionToggleWordWrap
	ActionToggleLineEnding
	ActionShowHelp
	ActionShowStats
)

var actionNames = map[Action]string{
	ActionQuit:                 "quit",
	ActionSave:                 "save",
	ActionSaveAs:               "save-as",
	ActionOpen:                 "open",
	ActionCancel:               "cancel",
	ActionCommandPrompt:        "command-prompt",
	ActionRunCommand:           "run-command",
	ActionMoveUp:               "move-up",
	ActionMoveDown:             "move-down",
	ActionMoveLeft:             "move-left",
	ActionMoveRight:            "move-right",
	ActionMovePageUp:           "page-up",
	ActionMovePageDown:         "page-down",
	ActionMoveHome:             "line-start",
	ActionMoveEnd:              "line-end",
	ActionMoveFileStart:        "file-start",
	ActionMoveFileEnd:          "file-end",
	ActionMoveWordLeft:         "word-left",
	ActionMoveWordRight:        "word-right",
	ActionMoveLineBoundaryUp:   "line-boundary-up",
	ActionMoveLineBoundaryDown: "line-boundary-down",
	ActionGotoLine:             "goto-line",
	ActionScrollUp:             "scroll-up",
	ActionScrollDown:           "scroll-down",
	ActionInsertRune:           "insert-rune",
	ActionInsertNewLine:        "newline",
	ActionInsertTab:            "tab",
	ActionDeleteCharForward:    "delete",
	ActionDeleteCharBackward:   "backspace",
	ActionUndo:                 "undo",
	ActionRedo:                 "redo",
	ActionCopy:                 "copy",
	ActionCut:                  "cut",
	ActionPaste:                "paste",
	ActionSelectAll:            "select-all",
	ActionFind:                 "find",
	ActionFindNext:             "find-next",
	ActionToggleWordWrap:       "toggle-wrap",
	ActionToggleLineEnding:     "toggle-line-ending",
	ActionShowHelp:             "help",
	ActionShowStats:            "stats",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ActionEvent represents a decoded input event resulting in an action.
type ActionEvent struct {
	Action  Action
	Rune    rune   // Used for ActionInsertRune
	Extend  bool   // Shift held: movement extends the selection
	Command string // Used for ActionRunCommand
}
