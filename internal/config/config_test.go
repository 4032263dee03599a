package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, undecoded, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	require.NoError(t, err)
	assert.Empty(t, undecoded)
	assert.Equal(t, DefaultUndoLimit, cfg.Editor.UndoLimit)
	assert.Equal(t, StorageAuto, cfg.Editor.Storage)
	assert.True(t, cfg.Plugins.Enabled)
	assert.Equal(t, "info", cfg.Logger.LogLevel)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
[logger]
log_level = "debug"
disabled_tags = ["viewport"]

[editor]
word_wrap = true
undo_limit = 50
storage = "ROPE"
bogus_key = 1

[plugins]
dirs = ["/tmp/kpad-plugins"]
timeout_ms = 500
`)
	cfg, undecoded, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.Equal(t, []string{"viewport"}, cfg.Logger.DisabledTags)
	assert.True(t, cfg.Editor.WordWrap)
	assert.Equal(t, 50, cfg.Editor.UndoLimit)
	assert.Equal(t, StorageRope, cfg.Editor.Storage)
	assert.Equal(t, []string{"/tmp/kpad-plugins"}, cfg.Plugins.Dirs)
	assert.Equal(t, 500, cfg.Plugins.TimeoutMs)
	assert.Contains(t, undecoded, "editor.bogus_key")
}

func TestValidateResetsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
[editor]
undo_limit = -3
storage = "tape"
rope_threshold = 0
`)
	cfg, _, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultUndoLimit, cfg.Editor.UndoLimit)
	assert.Equal(t, StorageAuto, cfg.Editor.Storage)
	assert.Equal(t, DefaultRopeThreshold, cfg.Editor.RopeThreshold)
}

func TestLoadParseError(t *testing.T) {
	path := writeConfig(t, "[editor\nword_wrap = ")
	cfg, _, err := Load(path, nil)
	require.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultUndoLimit, cfg.Editor.UndoLimit)
}

func TestFlagOverrides(t *testing.T) {
	path := writeConfig(t, `
[editor]
word_wrap = false
undo_limit = 10
`)
	fs := flag.NewFlagSet("kpad", flag.ContinueOnError)
	flags := NewFlags(fs)
	args, err := flags.Parse([]string{"-wrap", "-undo-limit=20", "-debug", "-log-tags", "a, b,,", "-no-plugins", "notes.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.txt"}, args)

	cfg, _, err := Load(path, flags)
	require.NoError(t, err)
	assert.True(t, cfg.Editor.WordWrap)
	assert.Equal(t, 20, cfg.Editor.UndoLimit)
	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.Equal(t, []string{"a", "b"}, cfg.Logger.EnabledTags)
	assert.False(t, cfg.Plugins.Enabled)
	// system-clipboard was not set on the command line, so the default stays.
	assert.True(t, cfg.Editor.SystemClipboard)
}
