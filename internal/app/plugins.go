package app

import (
	"errors"
	"fmt"

	"github.com/kgilper/kpad/internal/logger"
	"github.com/kgilper/kpad/internal/plugin"
	"github.com/kgilper/kpad/plugins/wordcount"
)

// registerPlugins registers the plugins compiled into the binary.
func registerPlugins(pm *plugin.Manager) error {
	if pm == nil {
		return fmt.Errorf("plugin manager is nil")
	}

	// Adding a new plugin means adding its constructor here.
	pluginConstructors := []func() plugin.Plugin{
		wordcount.New,
	}

	var errs []error
	for _, newPlugin := range pluginConstructors {
		p := newPlugin()
		logger.Debugf("Registering plugin: %s", p.Name())
		if err := pm.Register(p); err != nil {
			wrappedErr := fmt.Errorf("failed to register plugin '%s': %w", p.Name(), err)
			logger.Errorf("%v", wrappedErr)
			errs = append(errs, wrappedErr)
		}
	}
	return errors.Join(errs...)
}

// loadScriptPlugins loads script plugins from the configured directories
// and binds the keys their manifests request.
func (a *App) loadScriptPlugins() {
	if !a.cfg.Plugins.Enabled {
		logger.Infof("plugins: script plugins disabled")
		return
	}
	if err := a.pluginManager.LoadDirs(a.cfg.Plugins.Dirs); err != nil {
		a.statusBar.SetError(err)
	}
	for _, b := range a.pluginManager.KeyBindings() {
		if err := a.inputProcessor.BindCommand(b.Key, b.Command); err != nil {
			logger.Warnf("plugins: key %s for %s: %v", b.Key, b.Command, err)
		}
	}
}
