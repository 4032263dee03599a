// internal/theme/manager.go
package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/kgilper/kpad/internal/logger"
)

// Manager holds loaded themes and manages the active theme.
type Manager struct {
	themes      map[string]*Theme // lower-case name -> theme
	activeTheme *Theme
	mutex       sync.RWMutex
}

// NewManager loads the built-in themes plus any *.toml files in themesDir
// (which may be empty or missing) and activates the named theme, falling
// back to the default.
func NewManager(themesDir, active string) *Manager {
	m := &Manager{themes: make(map[string]*Theme)}
	for _, t := range builtinThemes() {
		m.themes[strings.ToLower(t.Name)] = t
	}
	if themesDir != "" {
		if err := m.LoadThemesFromDir(themesDir); err != nil {
			logger.Errorf("theme: %v", err)
		}
	}

	m.activeTheme = m.themes[DefaultThemeName]
	if active != "" {
		if err := m.SetTheme(active); err != nil {
			logger.Warnf("theme: %v, using %s", err, m.activeTheme.Name)
		}
	}
	return m
}

// LoadThemesFromDir loads every .toml file in dir. A missing directory is
// not an error; an unreadable theme file is logged and skipped.
func (m *Manager) LoadThemesFromDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read theme dir %s: %w", dir, err)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".toml") {
			continue
		}
		t, err := LoadThemeFromFile(filepath.Join(dir, e.Name()))
		if err != nil {
			logger.Warnf("%v", err)
			continue
		}
		key := strings.ToLower(t.Name)
		if existing, ok := m.themes[key]; ok {
			logger.Warnf("theme %q from %s overrides %q", t.Name, e.Name(), existing.Name)
		}
		m.themes[key] = t
	}
	return nil
}

// Current returns the currently active theme.
func (m *Manager) Current() *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.activeTheme
}

// SetTheme activates a theme by name, ignoring case.
func (m *Manager) SetTheme(name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	t, ok := m.themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return fmt.Errorf("theme %q not found", name)
	}
	if m.activeTheme != t {
		m.activeTheme = t
		logger.Infof("theme: active theme %s", t.Name)
	}
	return nil
}

// ListThemes returns the sorted names of all loaded themes.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	names := make([]string, 0, len(m.themes))
	for _, t := range m.themes {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}
