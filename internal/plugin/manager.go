// internal/plugin/manager.go
package plugin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/kgilper/kpad/internal/event"
	"github.com/kgilper/kpad/internal/logger"
)

// DefaultTimeout bounds a single script call.
const DefaultTimeout = 2 * time.Second

// Hook identifies an editor event that script plugins can react to.
type Hook int

const (
	HookOpen Hook = iota
	HookSave
)

func (h Hook) String() string {
	if h == HookSave {
		return "on_save"
	}
	return "on_open"
}

// KeyBinding asks the input layer to bind Key to Command.
type KeyBinding struct {
	Key     string
	Command string
}

// Manager handles the registration, initialization, and lifecycle of plugins.
type Manager struct {
	mu       sync.RWMutex
	plugins  map[string]Plugin // Go plugins by name
	scripts  []*luaPlugin
	registry *Registry
	events   *event.Manager
	timeout  time.Duration
	bindings []KeyBinding
}

// NewManager creates a plugin manager registering commands in registry.
// A timeout <= 0 selects DefaultTimeout.
func NewManager(registry *Registry, events *event.Manager, timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Manager{
		plugins:  make(map[string]Plugin),
		registry: registry,
		events:   events,
		timeout:  timeout,
	}
}

// Registry returns the command registry.
func (m *Manager) Registry() *Registry { return m.registry }

// RegisterCommand implements API.
func (m *Manager) RegisterCommand(cmd Command) error {
	return m.registry.Register(cmd)
}

// SubscribeEvent implements API.
func (m *Manager) SubscribeEvent(eventType event.Type, handler event.Handler) {
	if m.events == nil {
		logger.Warnf("plugin: no event manager, dropping subscription to %s", eventType)
		return
	}
	m.events.Subscribe(eventType, handler)
}

// Register adds a Go plugin instance to the manager.
// This should be called before InitializePlugins.
func (m *Manager) Register(plugin Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := plugin.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}

	m.plugins[name] = plugin
	logger.Debugf("Plugin Manager: Registered plugin '%s'", name)
	return nil
}

// InitializePlugins calls Initialize on every registered Go plugin. A
// failing plugin is logged and skipped.
func (m *Manager) InitializePlugins() {
	m.mu.RLock()
	names := make([]string, 0, len(m.plugins))
	for name := range m.plugins {
		names = append(names, name)
	}
	m.mu.RUnlock()
	sort.Strings(names)

	for _, name := range names {
		m.mu.RLock()
		p := m.plugins[name]
		m.mu.RUnlock()
		if err := p.Initialize(m); err != nil {
			logger.Errorf("Plugin Manager: ERROR initializing plugin '%s': %v", name, err)
			continue
		}
		logger.Debugf("Plugin Manager: Successfully initialized plugin '%s'", name)
	}
}

// LoadDirs loads every script plugin found under dirs. Plugins that fail
// to load are skipped; their errors are joined into the result.
func (m *Manager) LoadDirs(dirs []string) error {
	var errs []error
	for _, dir := range dirs {
		found, err := FindManifests(dir)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, pluginDir := range found {
			if err := m.LoadDir(pluginDir); err != nil {
				logger.Errorf("plugin: %v", err)
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// LoadDir loads the script plugin in dir and registers its commands.
func (m *Manager) LoadDir(dir string) error {
	manifest, err := LoadManifest(dir)
	if err != nil {
		return err
	}
	lp, err := loadLuaPlugin(manifest, m.timeout)
	if err != nil {
		return err
	}

	for _, spec := range manifest.Commands {
		fn := spec.Func
		err := m.registry.Register(Command{
			Name:        spec.Name,
			Description: spec.Description,
			Key:         spec.Key,
			Source:      manifest.ID,
			Run: func(ctx context.Context, h *Handle, args []string) error {
				luaArgs := make([]lua.LValue, len(args))
				for i, a := range args {
					luaArgs[i] = lua.LString(a)
				}
				return lp.call(ctx, h, fn, luaArgs...)
			},
		})
		if err != nil {
			lp.close()
			return fmt.Errorf("plugin %s: %w", manifest.ID, err)
		}
		if spec.Key != "" {
			m.bindings = append(m.bindings, KeyBinding{Key: spec.Key, Command: spec.Name})
		}
	}

	m.mu.Lock()
	m.scripts = append(m.scripts, lp)
	m.mu.Unlock()
	logger.Infof("plugin: loaded %s (%s) with %d commands", manifest.ID, manifest.Name, len(manifest.Commands))
	return nil
}

// KeyBindings returns the keys requested by loaded script plugins.
func (m *Manager) KeyBindings() []KeyBinding {
	return m.bindings
}

// RunHook calls hook with path on every script plugin that defines it.
func (m *Manager) RunHook(ctx context.Context, host Host, hook Hook, path string) error {
	m.mu.RLock()
	scripts := append([]*luaPlugin(nil), m.scripts...)
	m.mu.RUnlock()

	var errs []error
	for _, lp := range scripts {
		fn := lp.manifest.Hooks.OnOpen
		if hook == HookSave {
			fn = lp.manifest.Hooks.OnSave
		}
		if fn == "" {
			continue
		}
		h := newHandle(host)
		err := lp.call(ctx, h, fn, lua.LString(path))
		h.invalidate()
		if err != nil {
			logger.Errorf("plugin: %s hook: %v", hook, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ShutdownPlugins calls Shutdown on all Go plugins and closes every script
// state.
func (m *Manager) ShutdownPlugins() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for name, p := range m.plugins {
		if err := p.Shutdown(); err != nil {
			logger.Errorf("Plugin Manager: ERROR shutting down plugin '%s': %v", name, err)
		}
	}
	for _, lp := range m.scripts {
		lp.close()
	}
	m.scripts = nil
}
