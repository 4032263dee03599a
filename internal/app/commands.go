package app

import (
	"github.com/kgilper/kpad/internal/commands"
	"github.com/kgilper/kpad/internal/logger"
)

// registerCommands fills the command registry: built-ins first, then Go
// plugins, then script plugins.
func (a *App) registerCommands() {
	commands.RegisterAppCommands(a.registry, a.editorAPI)

	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("app: %v", err)
	}
	a.pluginManager.InitializePlugins()
	a.loadScriptPlugins()

	logger.Debugf("app: %d commands registered", len(a.registry.List()))
}
