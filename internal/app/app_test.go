package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kgilper/kpad/internal/config"
	"github.com/kgilper/kpad/internal/modehandler"
)

const upperManifest = `
id = "upper"
name = "Uppercase"

[[commands]]
name = "upper"
description = "Uppercase the current line"
func = "upper"
key = "Ctrl+U"

[hooks]
on_open = "opened"
`

const upperScript = `
function upper()
  editor.set_current_line_text(string.upper(editor.current_line_text()))
end

function opened(path) editor.status("hook saw " .. path) end
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.Editor.SystemClipboard = false
	cfg.Plugins.Dirs = nil
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config, path string) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	a, err := NewApp(cfg, path, screen)
	require.NoError(t, err)
	screen.SetSize(40, 6)
	return a, screen
}

func screenRow(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r := cells[y*w+x].Runes
		if len(r) == 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(r[0])
	}
	return strings.TrimRight(sb.String(), " ")
}

func key(k tcell.Key, r rune, mod tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, r, mod)
}

func TestDrawShowsBufferAndStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("first\nsecond"), 0o644))

	a, screen := newTestApp(t, testConfig(t), path)
	t.Cleanup(a.tuiManager.Close)
	screen.SetSize(100, 6)
	a.drawEditor()

	assert.Equal(t, "1 first", screenRow(screen, 0))
	assert.Equal(t, "2 second", screenRow(screen, 1))
	assert.Contains(t, screenRow(screen, 5), "notes.txt")

	x, y, visible := screen.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, 2, x)
	assert.Equal(t, 0, y)
}

func TestHandleEventTypingAndPrompt(t *testing.T) {
	a, screen := newTestApp(t, testConfig(t), "")
	t.Cleanup(a.tuiManager.Close)

	for _, r := range "hey" {
		assert.True(t, a.handleEvent(key(tcell.KeyRune, r, tcell.ModNone)))
	}
	assert.Equal(t, "hey", a.editor.Text())

	a.handleEvent(key(tcell.KeyCtrlF, 0, tcell.ModCtrl))
	require.Equal(t, modehandler.ModePrompt, a.modeHandler.GetCurrentMode())
	a.handleEvent(key(tcell.KeyRune, 'e', tcell.ModNone))
	a.drawEditor()

	assert.Equal(t, "Find: e", screenRow(screen, 5))
	x, y, _ := screen.GetCursor()
	assert.Equal(t, 7, x)
	assert.Equal(t, 5, y)
}

func TestBracketedPaste(t *testing.T) {
	a, _ := newTestApp(t, testConfig(t), "")
	t.Cleanup(a.tuiManager.Close)

	assert.False(t, a.handleEvent(tcell.NewEventPaste(true)))
	a.handleEvent(key(tcell.KeyRune, 'a', tcell.ModNone))
	a.handleEvent(key(tcell.KeyEnter, 0, tcell.ModNone))
	a.handleEvent(key(tcell.KeyRune, 'b', tcell.ModNone))
	assert.Equal(t, "", a.editor.Text())

	assert.True(t, a.handleEvent(tcell.NewEventPaste(false)))
	assert.Equal(t, "a\nb", a.editor.Text())

	ok, err := a.editor.Undo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", a.editor.Text())
}

func TestStatsOverlay(t *testing.T) {
	a, screen := newTestApp(t, testConfig(t), "")
	t.Cleanup(a.tuiManager.Close)
	screen.SetSize(60, 30)

	a.handleEvent(key(tcell.KeyF2, 0, tcell.ModNone))
	a.drawEditor()

	var found bool
	for y := 0; y < 30; y++ {
		if strings.Contains(screenRow(screen, y), "DOCUMENT STATISTICS") {
			found = true
		}
	}
	assert.True(t, found)
	_, _, visible := screen.GetCursor()
	assert.False(t, visible)
}

func TestScriptPluginKeyAndHook(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "upper")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plugin.toml"), []byte(upperManifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.lua"), []byte(upperScript), 0o644))

	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("shout\nquiet"), 0o644))

	cfg := testConfig(t)
	cfg.Plugins.Dirs = []string{root}
	a, _ := newTestApp(t, cfg, path)
	t.Cleanup(a.tuiManager.Close)
	t.Cleanup(a.pluginManager.ShutdownPlugins)

	assert.Equal(t, "hook saw "+path, a.statusBar.Message())

	a.handleEvent(key(tcell.KeyCtrlU, 0, tcell.ModCtrl))
	assert.Equal(t, "SHOUT\nquiet", a.editor.Text())

	a.handleEvent(key(tcell.KeyCtrlS, 0, tcell.ModCtrl))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SHOUT\nquiet", string(got))

	_, ok := a.registry.Get("wc")
	assert.True(t, ok)
}

func TestRunQuitsOnCtrlQ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.txt")
	a, screen := newTestApp(t, testConfig(t), path)

	done := make(chan error, 1)
	go func() { done <- a.Run() }()

	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)
	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Ctrl+Q")
	}

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))
}
