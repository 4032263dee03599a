package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/kgilper/kpad/internal/logger"
)

// ManifestFile is the file name looked for in each plugin directory.
const ManifestFile = "plugin.toml"

// CommandSpec declares a command implemented by a script function.
type CommandSpec struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Func        string `toml:"func"`
	Key         string `toml:"key"`
}

// Hooks names the script functions called on editor events.
type Hooks struct {
	OnOpen string `toml:"on_open"`
	OnSave string `toml:"on_save"`
}

// Manifest describes one script plugin.
type Manifest struct {
	ID       string        `toml:"id"`
	Name     string        `toml:"name"`
	Script   string        `toml:"script"`
	Commands []CommandSpec `toml:"commands"`
	Hooks    Hooks         `toml:"hooks"`

	Dir string `toml:"-"`
}

// LoadManifest reads and validates dir/plugin.toml.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	var m Manifest
	md, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("plugin manifest %s: unknown keys %v", path, undecoded)
	}
	m.Dir = dir

	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	m.ID = strings.TrimSpace(m.ID)
	if m.ID == "" {
		return fmt.Errorf("missing id")
	}
	if m.Name == "" {
		m.Name = m.ID
	}
	if m.Script == "" {
		m.Script = "main.lua"
	}
	if filepath.IsAbs(m.Script) || strings.HasPrefix(filepath.Clean(m.Script), "..") {
		return fmt.Errorf("script %q must be inside the plugin directory", m.Script)
	}
	for i, c := range m.Commands {
		if c.Name == "" || c.Func == "" {
			return fmt.Errorf("command %d needs both name and func", i+1)
		}
	}
	return nil
}

// ScriptPath is the absolute location of the script.
func (m *Manifest) ScriptPath() string {
	return filepath.Join(m.Dir, m.Script)
}

// FindManifests returns every immediate subdirectory of dir that holds a
// plugin.toml. A missing dir is not an error.
func FindManifests(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read plugin dir %s: %w", dir, err)
	}
	var dirs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sub := filepath.Join(dir, e.Name())
		if _, err := os.Stat(filepath.Join(sub, ManifestFile)); err == nil {
			dirs = append(dirs, sub)
		}
	}
	return dirs, nil
}
