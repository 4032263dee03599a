package commands

import (
	"github.com/kgilper/kpad/internal/core"
	"github.com/kgilper/kpad/internal/theme"
)

// ThemeAPI extends the commands functionality to support theme operations
type ThemeAPI interface {
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string
	SetStatusMessage(format string, args ...interface{})
}

// AppAPI is what built-in commands need beyond the plugin handle: the
// session itself and the overlay used by stats and help.
type AppAPI interface {
	ThemeAPI
	Editor() *core.Editor
	ShowOverlay(lines []string)
}
