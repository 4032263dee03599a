// internal/input/keymap.go
package input

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/kgilper/kpad/internal/logger"
)

// Chord is a key with its modifiers, normalized so that lookups ignore
// Shift (which only selects) and letter case under Alt.
type Chord struct {
	Key  tcell.Key
	Mod  tcell.ModMask
	Rune rune // only for tcell.KeyRune
}

// Keymap maps chords to editor actions.
type Keymap map[Chord]Action

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap   Keymap
	commands map[Chord]string
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:   make(Keymap),
		commands: make(map[Chord]string),
	}
	p.loadDefaultBindings()
	return p
}

func key(k tcell.Key) Chord                  { return Chord{Key: k} }
func ctrl(k tcell.Key) Chord                 { return Chord{Key: k, Mod: tcell.ModCtrl} }
func alt(r rune) Chord                       { return Chord{Key: tcell.KeyRune, Mod: tcell.ModAlt, Rune: r} }
func mod(k tcell.Key, m tcell.ModMask) Chord { return Chord{Key: k, Mod: m} }

// loadDefaultBindings sets up the initial key mappings.
func (p *InputProcessor) loadDefaultBindings() {
	// --- Simple Keys ---
	p.keymap[key(tcell.KeyUp)] = ActionMoveUp
	p.keymap[key(tcell.KeyDown)] = ActionMoveDown
	p.keymap[key(tcell.KeyLeft)] = ActionMoveLeft
	p.keymap[key(tcell.KeyRight)] = ActionMoveRight
	p.keymap[key(tcell.KeyPgUp)] = ActionMovePageUp
	p.keymap[key(tcell.KeyPgDn)] = ActionMovePageDown
	p.keymap[key(tcell.KeyHome)] = ActionMoveHome
	p.keymap[key(tcell.KeyEnd)] = ActionMoveEnd
	p.keymap[key(tcell.KeyEnter)] = ActionInsertNewLine
	p.keymap[key(tcell.KeyTab)] = ActionInsertTab
	p.keymap[key(tcell.KeyBackspace)] = ActionDeleteCharBackward
	p.keymap[key(tcell.KeyBackspace2)] = ActionDeleteCharBackward
	p.keymap[key(tcell.KeyDelete)] = ActionDeleteCharForward
	p.keymap[key(tcell.KeyEscape)] = ActionCancel
	p.keymap[key(tcell.KeyF1)] = ActionShowHelp
	p.keymap[key(tcell.KeyF2)] = ActionShowStats
	p.keymap[key(tcell.KeyF3)] = ActionFindNext

	// --- Ctrl + navigation ---
	p.keymap[mod(tcell.KeyLeft, tcell.ModCtrl)] = ActionMoveWordLeft
	p.keymap[mod(tcell.KeyRight, tcell.ModCtrl)] = ActionMoveWordRight
	p.keymap[mod(tcell.KeyUp, tcell.ModCtrl)] = ActionMoveLineBoundaryUp
	p.keymap[mod(tcell.KeyDown, tcell.ModCtrl)] = ActionMoveLineBoundaryDown
	p.keymap[mod(tcell.KeyHome, tcell.ModCtrl)] = ActionMoveFileStart
	p.keymap[mod(tcell.KeyEnd, tcell.ModCtrl)] = ActionMoveFileEnd
	p.keymap[mod(tcell.KeyUp, tcell.ModAlt)] = ActionScrollUp
	p.keymap[mod(tcell.KeyDown, tcell.ModAlt)] = ActionScrollDown

	// --- Ctrl + letter ---
	p.keymap[ctrl(tcell.KeyCtrlQ)] = ActionQuit
	p.keymap[ctrl(tcell.KeyCtrlS)] = ActionSave
	p.keymap[ctrl(tcell.KeyCtrlW)] = ActionSaveAs
	p.keymap[ctrl(tcell.KeyCtrlO)] = ActionOpen
	p.keymap[ctrl(tcell.KeyCtrlP)] = ActionCommandPrompt
	p.keymap[ctrl(tcell.KeyCtrlG)] = ActionGotoLine
	p.keymap[ctrl(tcell.KeyCtrlZ)] = ActionUndo
	p.keymap[ctrl(tcell.KeyCtrlY)] = ActionRedo
	p.keymap[ctrl(tcell.KeyCtrlC)] = ActionCopy
	p.keymap[ctrl(tcell.KeyCtrlX)] = ActionCut
	p.keymap[ctrl(tcell.KeyCtrlV)] = ActionPaste
	p.keymap[ctrl(tcell.KeyCtrlA)] = ActionSelectAll
	p.keymap[ctrl(tcell.KeyCtrlF)] = ActionFind
	p.keymap[ctrl(tcell.KeyCtrlL)] = ActionToggleLineEnding

	// --- Alt + rune ---
	p.keymap[alt('z')] = ActionToggleWordWrap
}

// chordOf normalizes ev. extend reports whether Shift was held on a
// non-rune key.
func chordOf(ev *tcell.EventKey) (c Chord, extend bool) {
	k, m := ev.Key(), ev.Modifiers()
	switch {
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ &&
		k != tcell.KeyBackspace && k != tcell.KeyTab && k != tcell.KeyEnter:
		// The key already names the Ctrl chord.
		return Chord{Key: k, Mod: tcell.ModCtrl}, false
	case k == tcell.KeyRune:
		r := ev.Rune()
		if m&(tcell.ModAlt|tcell.ModCtrl) != 0 {
			r = unicode.ToLower(r)
		}
		return Chord{Key: k, Mod: m &^ tcell.ModShift, Rune: r}, false
	}
	return Chord{Key: k, Mod: m &^ tcell.ModShift}, m&tcell.ModShift != 0
}

// ProcessEvent takes a tcell key event and returns the corresponding ActionEvent.
// Input mode is not handled here; the app interprets the action per mode.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	c, extend := chordOf(ev)

	if action, ok := p.keymap[c]; ok {
		return ActionEvent{Action: action, Extend: extend}
	}
	if name, ok := p.commands[c]; ok {
		return ActionEvent{Action: ActionRunCommand, Command: name}
	}
	if c.Key == tcell.KeyRune && c.Mod&(tcell.ModAlt|tcell.ModCtrl) == 0 {
		return ActionEvent{Action: ActionInsertRune, Rune: c.Rune}
	}
	return ActionEvent{Action: ActionUnknown}
}

// BindCommand binds a key description such as "Ctrl+U", "Alt+K" or "F5"
// to a named command. Keys used by built-in actions cannot be rebound.
func (p *InputProcessor) BindCommand(spec, command string) error {
	c, err := ParseChord(spec)
	if err != nil {
		return err
	}
	if action, ok := p.keymap[c]; ok {
		return fmt.Errorf("key %s is bound to %s", spec, action)
	}
	if prev, ok := p.commands[c]; ok && prev != command {
		return fmt.Errorf("key %s is bound to command %s", spec, prev)
	}
	p.commands[c] = command
	logger.DebugTagf("input", "bound %s to command %s", spec, command)
	return nil
}

var namedKeys = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		if strings.HasPrefix(name, "Ctrl-") {
			continue
		}
		m[strings.ToLower(name)] = k
	}
	return m
}()

// ParseChord parses "Ctrl+U", "Alt+Z", "Ctrl+Left" or a bare key name
// such as "F5". Modifiers may be joined with '+' or '-'.
func ParseChord(spec string) (Chord, error) {
	parts := strings.FieldsFunc(spec, func(r rune) bool { return r == '+' || r == '-' })
	if len(parts) == 0 {
		return Chord{}, fmt.Errorf("empty key")
	}
	var m tcell.ModMask
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(p) {
		case "ctrl":
			m |= tcell.ModCtrl
		case "alt", "meta":
			m |= tcell.ModAlt
		default:
			return Chord{}, fmt.Errorf("key %q: unknown modifier %q", spec, p)
		}
	}
	last := strings.ToLower(parts[len(parts)-1])

	if r := []rune(last); len(r) == 1 {
		switch {
		case m == tcell.ModCtrl && r[0] >= 'a' && r[0] <= 'z':
			return Chord{Key: tcell.KeyCtrlA + tcell.Key(r[0]-'a'), Mod: tcell.ModCtrl}, nil
		case m&tcell.ModAlt != 0:
			return Chord{Key: tcell.KeyRune, Mod: m, Rune: r[0]}, nil
		}
		return Chord{}, fmt.Errorf("key %q: a plain rune needs Ctrl or Alt", spec)
	}
	if k, ok := namedKeys[last]; ok {
		return Chord{Key: k, Mod: m}, nil
	}
	return Chord{}, fmt.Errorf("key %q: unknown key %q", spec, last)
}
