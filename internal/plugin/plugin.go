// internal/plugin/plugin.go
package plugin

import (
	"context"

	"github.com/kgilper/kpad/internal/event"
	"github.com/kgilper/kpad/internal/types"
)

// CommandFunc is the body of a command. h is valid only until it returns.
type CommandFunc func(ctx context.Context, h *Handle, args []string) error

// Host is the slice of the editor that commands may touch. Every edit goes
// through the editor's normal edit entry points, so it is undoable.
type Host interface {
	Text() string
	SetText(s string) error
	HasSelection() bool
	SelectedText() string
	ReplaceSelection(s string) error
	InsertText(s string) error
	GetCursor() types.Position
	SetCursor(pos types.Position) // clamps
	CurrentLineText() string
	SetCurrentLineText(s string) error
	SetStatus(format string, args ...interface{})
	FilePath() string
}

// API is what Go plugins receive during Initialize.
type API interface {
	RegisterCommand(cmd Command) error
	SubscribeEvent(eventType event.Type, handler event.Handler)
}

// Plugin is a plugin compiled into the binary.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once at startup, typically to register commands.
	Initialize(api API) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
