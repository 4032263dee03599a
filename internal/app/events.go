package app

import (
	"context"

	"github.com/kgilper/kpad/internal/event"
	"github.com/kgilper/kpad/internal/logger"
	"github.com/kgilper/kpad/internal/plugin"
)

// subscribeEvents wires app-level reactions to editor events.
func (a *App) subscribeEvents() {
	a.eventManager.Subscribe(event.TypeBufferLoaded, a.handleBufferLoaded)
	a.eventManager.Subscribe(event.TypeBufferSaved, a.handleBufferSaved)
	a.eventManager.Subscribe(event.TypeThemeChanged, func(e event.Event) bool {
		if data, ok := e.Data.(event.ThemeChangedData); ok {
			logger.Debugf("app: theme changed to %s", data.Name)
		}
		return false
	})
}

// handleBufferLoaded runs the on_open hooks of script plugins.
func (a *App) handleBufferLoaded(e event.Event) bool {
	if data, ok := e.Data.(event.BufferLoadedData); ok {
		a.runHook(plugin.HookOpen, data.FilePath)
	}
	return false
}

// handleBufferSaved runs the on_save hooks of script plugins.
func (a *App) handleBufferSaved(e event.Event) bool {
	if data, ok := e.Data.(event.BufferSavedData); ok {
		a.runHook(plugin.HookSave, data.FilePath)
	}
	return false
}

func (a *App) runHook(hook plugin.Hook, path string) {
	if err := a.pluginManager.RunHook(context.Background(), a.editorAPI, hook, path); err != nil {
		a.statusBar.SetError(err)
	}
}
