// internal/app/editor_api.go
package app

import (
	"github.com/kgilper/kpad/internal/commands"
	"github.com/kgilper/kpad/internal/core"
	"github.com/kgilper/kpad/internal/event"
	"github.com/kgilper/kpad/internal/plugin"
	"github.com/kgilper/kpad/internal/theme"
	"github.com/kgilper/kpad/internal/types"
)

var (
	_ plugin.Host       = (*appEditorAPI)(nil)
	_ commands.AppAPI   = (*appEditorAPI)(nil)
	_ commands.ThemeAPI = (*appEditorAPI)(nil)
)

// appEditorAPI is what commands and plugins see of the application. Edits
// go through core.Editor, so they are undoable like typed ones.
type appEditorAPI struct {
	app *App
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Document ---

func (api *appEditorAPI) Text() string           { return api.app.editor.Text() }
func (api *appEditorAPI) SetText(s string) error { return api.app.editor.SetText(s) }
func (api *appEditorAPI) HasSelection() bool     { return api.app.editor.HasSelection() }
func (api *appEditorAPI) SelectedText() string   { return api.app.editor.SelectedText() }
func (api *appEditorAPI) FilePath() string       { return api.app.editor.FilePath() }

func (api *appEditorAPI) ReplaceSelection(s string) error {
	return api.app.editor.ReplaceSelection(s)
}

func (api *appEditorAPI) InsertText(s string) error { return api.app.editor.InsertText(s) }

func (api *appEditorAPI) CurrentLineText() string { return api.app.editor.CurrentLineText() }

func (api *appEditorAPI) SetCurrentLineText(s string) error {
	return api.app.editor.SetCurrentLineText(s)
}

// --- Cursor ---

func (api *appEditorAPI) GetCursor() types.Position { return api.app.editor.GetCursor() }

// SetCursor clamps pos and drops any selection.
func (api *appEditorAPI) SetCursor(pos types.Position) {
	api.app.editor.ClearSelection()
	api.app.editor.SetCursor(pos)
}

// --- Status and overlays ---

func (api *appEditorAPI) SetStatus(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
}

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.SetStatus(format, args...)
}

func (api *appEditorAPI) ShowOverlay(lines []string) { api.app.modeHandler.ShowOverlay(lines) }

func (api *appEditorAPI) Editor() *core.Editor { return api.app.editor }

// --- Themes ---

func (api *appEditorAPI) GetTheme() *theme.Theme { return api.app.themeManager.Current() }

func (api *appEditorAPI) ListThemes() []string { return api.app.themeManager.ListThemes() }

// SetTheme activates a theme and repaints with it.
func (api *appEditorAPI) SetTheme(name string) error {
	if err := api.app.themeManager.SetTheme(name); err != nil {
		return err
	}
	current := api.app.themeManager.Current()
	api.app.tuiManager.SetTheme(current)
	api.app.eventManager.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: current.Name})
	return nil
}
