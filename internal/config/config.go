package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kgilper/kpad/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config `toml:"logger"`
	Editor  EditorConfig  `toml:"editor"`
	Plugins PluginsConfig `toml:"plugins"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	WordWrap        bool   `toml:"word_wrap"`
	UndoLimit       int    `toml:"undo_limit"`
	Storage         string `toml:"storage"`
	RopeThreshold   int    `toml:"rope_threshold"`
	SystemClipboard bool   `toml:"system_clipboard"`
	StatusTimeoutMs int    `toml:"status_timeout_ms"`
	Theme           string `toml:"theme"` // theme name, built-in or from ThemesDir
}

// PluginsConfig controls script plugin discovery and execution.
type PluginsConfig struct {
	Enabled   bool     `toml:"enabled"`
	Dirs      []string `toml:"dirs"`
	TimeoutMs int      `toml:"timeout_ms"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			UndoLimit:       DefaultUndoLimit,
			Storage:         StorageAuto,
			RopeThreshold:   DefaultRopeThreshold,
			SystemClipboard: true,
			StatusTimeoutMs: int(MessageTimeout / time.Millisecond),
		},
		Plugins: PluginsConfig{
			Enabled:   true,
			Dirs:      defaultPluginDirs(),
			TimeoutMs: int(DefaultPluginTimeout / time.Millisecond),
		},
	}
}

func defaultPluginDirs() []string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(configDir, AppName, "plugins")}
}

// ThemesDir is where user theme files are looked up.
func ThemesDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, "themes")
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes a TOML file over cfg. A missing file is not an error.
// Unrecognized keys are returned so the caller can warn once logging is up.
func loadFromFile(filePath string, cfg *Config) ([]string, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	var undecoded []string
	for _, key := range metadata.Undecoded() {
		undecoded = append(undecoded, key.String())
	}
	return undecoded, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.UndoLimit <= 0 {
		c.Editor.UndoLimit = defaults.Editor.UndoLimit
	}
	switch strings.ToLower(c.Editor.Storage) {
	case StorageAuto, StorageLines, StorageRope:
		c.Editor.Storage = strings.ToLower(c.Editor.Storage)
	default:
		c.Editor.Storage = defaults.Editor.Storage
	}
	if c.Editor.RopeThreshold <= 0 {
		c.Editor.RopeThreshold = defaults.Editor.RopeThreshold
	}
	if c.Editor.StatusTimeoutMs <= 0 {
		c.Editor.StatusTimeoutMs = defaults.Editor.StatusTimeoutMs
	}
	if c.Plugins.TimeoutMs <= 0 {
		c.Plugins.TimeoutMs = defaults.Plugins.TimeoutMs
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// StatusTimeout returns the status message lifetime.
func (c *Config) StatusTimeout() time.Duration {
	return time.Duration(c.Editor.StatusTimeoutMs) * time.Millisecond
}

// PluginTimeout returns the per-call script deadline.
func (c *Config) PluginTimeout() time.Duration {
	return time.Duration(c.Plugins.TimeoutMs) * time.Millisecond
}

// Load builds a config from defaults, the TOML file at configFilePath
// (or the default location when empty) and flag overrides.
// Logging is not yet initialized here, so unknown keys are returned.
func Load(configFilePath string, flags *Flags) (*Config, []string, error) {
	cfg := NewDefaultConfig()

	path := configFilePath
	if path == "" {
		path = DefaultPath()
	}

	var undecoded []string
	var err error
	if path != "" {
		undecoded, err = loadFromFile(path, cfg)
		if err != nil {
			cfg = NewDefaultConfig()
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, undecoded, err
}

// LoadConfig loads the configuration once and stores it for Get.
func LoadConfig(configFilePath string, flags *Flags) (*Config, []string, error) {
	var undecoded []string
	loadOnce.Do(func() {
		loadedConfig, undecoded, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, undecoded, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
