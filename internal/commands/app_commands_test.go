package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kgilper/kpad/internal/core"
	"github.com/kgilper/kpad/internal/plugin"
	"github.com/kgilper/kpad/internal/theme"
	"github.com/kgilper/kpad/internal/types"
)

type fakeAPI struct {
	themes  *theme.Manager
	ed      *core.Editor
	status  string
	overlay []string
}

func (f *fakeAPI) SetTheme(name string) error { return f.themes.SetTheme(name) }
func (f *fakeAPI) GetTheme() *theme.Theme     { return f.themes.Current() }
func (f *fakeAPI) ListThemes() []string       { return f.themes.ListThemes() }
func (f *fakeAPI) Editor() *core.Editor       { return f.ed }
func (f *fakeAPI) ShowOverlay(lines []string) { f.overlay = lines }
func (f *fakeAPI) SetStatusMessage(format string, args ...interface{}) {
	f.status = fmt.Sprintf(format, args...)
}

type host struct{ *core.Editor }

func (host) SetStatus(string, ...interface{}) {}

func setup(t *testing.T, text string) (*plugin.Registry, *fakeAPI) {
	t.Helper()
	ed := core.NewEditor(core.Options{}, nil, nil)
	t.Cleanup(ed.Close)
	require.NoError(t, ed.InsertText(text))
	api := &fakeAPI{themes: theme.NewManager("", ""), ed: ed}
	reg := plugin.NewRegistry()
	RegisterAppCommands(reg, api)
	return reg, api
}

func run(t *testing.T, reg *plugin.Registry, api *fakeAPI, name string, args ...string) error {
	t.Helper()
	return reg.Run(context.Background(), host{api.ed}, name, args)
}

func TestThemeCommands(t *testing.T) {
	reg, api := setup(t, "")

	require.NoError(t, run(t, reg, api, "theme"))
	assert.Equal(t, "Current theme: "+api.GetTheme().Name, api.status)

	require.NoError(t, run(t, reg, api, "theme", "kpad", "light"))
	assert.Contains(t, api.status, "Theme set to:")

	err := run(t, reg, api, "theme", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available:")

	require.NoError(t, run(t, reg, api, "themes"))
	assert.Contains(t, api.status, "Available themes:")
}

func TestReplaceCommand(t *testing.T) {
	reg, api := setup(t, "a-b-a")
	require.NoError(t, run(t, reg, api, "replace", "a", "x"))
	assert.Equal(t, "x-b-x", api.ed.Text())
	assert.Equal(t, "Replaced 2 occurrence(s)", api.status)

	require.NoError(t, run(t, reg, api, "replace", "-"))
	assert.Equal(t, "xbx", api.ed.Text())

	assert.Error(t, run(t, reg, api, "replace"))
}

func TestGotoCommand(t *testing.T) {
	reg, api := setup(t, "a\nb\nc")
	require.NoError(t, run(t, reg, api, "goto", "2"))
	assert.Equal(t, types.Position{Line: 1}, api.ed.GetCursor())
	assert.Error(t, run(t, reg, api, "goto", "zero"))
}

func TestEolCommand(t *testing.T) {
	reg, api := setup(t, "a")
	require.NoError(t, run(t, reg, api, "eol", "crlf"))
	assert.Equal(t, types.CRLF, api.ed.LineEnding())
	require.NoError(t, run(t, reg, api, "eol", "CRLF"))
	assert.Equal(t, types.CRLF, api.ed.LineEnding())
	require.NoError(t, run(t, reg, api, "eol"))
	assert.Equal(t, "Line endings: CRLF", api.status)
	assert.Error(t, run(t, reg, api, "eol", "cr"))
}

func TestStatsAndHelpShowOverlay(t *testing.T) {
	reg, api := setup(t, "one two")
	require.NoError(t, run(t, reg, api, "stats"))
	assert.Contains(t, api.overlay, " DOCUMENT STATISTICS ")

	require.NoError(t, run(t, reg, api, "help"))
	assert.Contains(t, api.overlay, " KPAD HELP ")
}

func TestSaveCommand(t *testing.T) {
	reg, api := setup(t, "body")
	err := run(t, reg, api, "save")
	assert.ErrorIs(t, err, core.ErrNoFilePath)

	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, run(t, reg, api, "save", path))
	assert.Equal(t, path, api.ed.FilePath())
	assert.False(t, api.ed.IsModified())
}

func TestWrapAndCommandsList(t *testing.T) {
	reg, api := setup(t, "")
	require.NoError(t, run(t, reg, api, "wrap"))
	assert.Equal(t, "Word wrap: on", api.status)

	require.NoError(t, run(t, reg, api, "commands"))
	assert.Contains(t, api.status, "replace")
	assert.Contains(t, api.status, "themes")
}
