package plugin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kgilper/kpad/internal/types"
)

type fakeHost struct {
	text      string
	selection string
	cursor    types.Position
	status    string
	path      string
}

func (f *fakeHost) Text() string              { return f.text }
func (f *fakeHost) SetText(s string) error    { f.text = s; return nil }
func (f *fakeHost) HasSelection() bool        { return f.selection != "" }
func (f *fakeHost) SelectedText() string      { return f.selection }
func (f *fakeHost) GetCursor() types.Position { return f.cursor }
func (f *fakeHost) FilePath() string          { return f.path }
func (f *fakeHost) InsertText(s string) error {
	f.text += s
	return nil
}
func (f *fakeHost) ReplaceSelection(s string) error {
	f.text = strings.Replace(f.text, f.selection, s, 1)
	f.selection = ""
	return nil
}
func (f *fakeHost) SetCursor(pos types.Position) {
	f.cursor = types.Position{Line: max(pos.Line, 0), Col: max(pos.Col, 0)}
}
func (f *fakeHost) CurrentLineText() string {
	return strings.Split(f.text, "\n")[f.cursor.Line]
}
func (f *fakeHost) SetCurrentLineText(s string) error {
	lines := strings.Split(f.text, "\n")
	lines[f.cursor.Line] = s
	f.text = strings.Join(lines, "\n")
	return nil
}
func (f *fakeHost) SetStatus(format string, args ...interface{}) {
	f.status = fmt.Sprintf(format, args...)
}

func TestRegistryRunAndSuggest(t *testing.T) {
	r := NewRegistry()
	var got []string
	require.NoError(t, r.Register(Command{Name: "Upper", Source: "builtin", Run: func(_ context.Context, h *Handle, args []string) error {
		got = args
		return h.Status("ok")
	}}))
	assert.Error(t, r.Register(Command{Name: " ", Run: func(context.Context, *Handle, []string) error { return nil }}))
	assert.Error(t, r.Register(Command{Name: "nofunc"}))

	host := &fakeHost{}
	require.NoError(t, r.Run(context.Background(), host, "upper", []string{"a"}))
	assert.Equal(t, []string{"a"}, got)
	assert.Equal(t, "ok", host.status)

	err := r.Run(context.Background(), host, "uppr", nil)
	require.ErrorIs(t, err, ErrUnknownCommand)
	var unknown *UnknownCommandError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Upper", unknown.Suggestion)
	assert.Contains(t, err.Error(), "Did you mean 'Upper'?")

	err = r.Run(context.Background(), host, "completely-different", nil)
	require.ErrorAs(t, err, &unknown)
	assert.Empty(t, unknown.Suggestion)
}

func TestHandleExpiresAfterCall(t *testing.T) {
	r := NewRegistry()
	var kept *Handle
	require.NoError(t, r.Register(Command{Name: "keep", Run: func(_ context.Context, h *Handle, _ []string) error {
		kept = h
		_, err := h.Text()
		return err
	}}))

	host := &fakeHost{text: "abc"}
	require.NoError(t, r.Run(context.Background(), host, "keep", nil))
	require.NotNil(t, kept)
	assert.False(t, kept.Valid())

	_, err := kept.Text()
	assert.ErrorIs(t, err, ErrHandleExpired)
	assert.ErrorIs(t, kept.SetText("x"), ErrHandleExpired)
	assert.Equal(t, "abc", host.text)
}

func TestParseCommandLine(t *testing.T) {
	name, args := ParseCommandLine("  theme  kpad light ")
	assert.Equal(t, "theme", name)
	assert.Equal(t, []string{"kpad", "light"}, args)

	name, args = ParseCommandLine("   ")
	assert.Empty(t, name)
	assert.Nil(t, args)
}

const testManifest = `
id = "demo"
name = "Demo"
script = "main.lua"

[[commands]]
name = "upper"
description = "Uppercase selection or line"
func = "upper"
key = "Ctrl+U"

[[commands]]
name = "where"
func = "where"

[[commands]]
name = "stash"
func = "stash"

[[commands]]
name = "reuse"
func = "reuse"

[[commands]]
name = "spin"
func = "spin"

[[commands]]
name = "jump"
func = "jump"

[hooks]
on_open = "opened"
`

const testScript = `
function upper()
  if editor.has_selection() then
    editor.replace_selection(string.upper(editor.selection_text()))
  else
    editor.set_current_line_text(string.upper(editor.current_line_text()))
  end
end

function where()
  editor.status(editor.cursor_line() .. ":" .. editor.cursor_col())
end

function stash() saved = editor end
function reuse() return saved.text() end

function spin() while true do end end

function jump(line, col) editor.set_cursor(tonumber(line), tonumber(col)) end

function opened(path) editor.status("opened " .. path) end
`

func writePlugin(t *testing.T, root, name, manifest, script string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte(manifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.lua"), []byte(script), 0o644))
	return dir
}

func newTestManager(t *testing.T, timeout time.Duration) (*Manager, string) {
	t.Helper()
	root := t.TempDir()
	writePlugin(t, root, "demo", testManifest, testScript)
	m := NewManager(NewRegistry(), nil, timeout)
	require.NoError(t, m.LoadDirs([]string{root, filepath.Join(root, "missing")}))
	t.Cleanup(m.ShutdownPlugins)
	return m, root
}

func TestLuaCommands(t *testing.T) {
	m, _ := newTestManager(t, time.Second)
	r := m.Registry()
	ctx := context.Background()

	host := &fakeHost{text: "one\ntwo", cursor: types.Position{Line: 1, Col: 2}}
	require.NoError(t, r.Run(ctx, host, "upper", nil))
	assert.Equal(t, "one\nTWO", host.text)

	host.selection = "one"
	require.NoError(t, r.Run(ctx, host, "upper", nil))
	assert.Equal(t, "ONE\nTWO", host.text)

	require.NoError(t, r.Run(ctx, host, "where", nil))
	assert.Equal(t, "2:3", host.status)

	require.NoError(t, r.Run(ctx, host, "jump", []string{"1", "1"}))
	assert.Equal(t, types.Position{}, host.cursor)

	assert.Equal(t, []KeyBinding{{Key: "Ctrl+U", Command: "upper"}}, m.KeyBindings())
}

func TestLuaStaleHandle(t *testing.T) {
	m, _ := newTestManager(t, time.Second)
	r := m.Registry()
	host := &fakeHost{text: "x"}

	require.NoError(t, r.Run(context.Background(), host, "stash", nil))
	err := r.Run(context.Background(), host, "reuse", nil)
	assert.ErrorIs(t, err, ErrHandleExpired)
}

func TestLuaTimeout(t *testing.T) {
	m, _ := newTestManager(t, 50*time.Millisecond)

	start := time.Now()
	err := m.Registry().Run(context.Background(), &fakeHost{}, "spin", nil)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRunHook(t *testing.T) {
	m, _ := newTestManager(t, time.Second)
	host := &fakeHost{}

	require.NoError(t, m.RunHook(context.Background(), host, HookOpen, "a.txt"))
	assert.Equal(t, "opened a.txt", host.status)

	host.status = ""
	require.NoError(t, m.RunHook(context.Background(), host, HookSave, "a.txt"))
	assert.Empty(t, host.status, "no on_save hook declared")
}

func TestLoadErrors(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "noid", `name = "x"`, ``)
	writePlugin(t, root, "badfunc", "id = \"bad\"\n[[commands]]\nname = \"b\"\nfunc = \"missing\"\n", `x = 1`)
	writePlugin(t, root, "syntax", `id = "syntax"`, `function (`)
	writePlugin(t, root, "escape", "id = \"esc\"\nscript = \"../main.lua\"\n", ``)

	m := NewManager(NewRegistry(), nil, time.Second)
	defer m.ShutdownPlugins()
	err := m.LoadDirs([]string{root})
	require.Error(t, err)
	for _, want := range []string{"missing id", `"missing" is not a function`, "syntax", "inside the plugin directory"} {
		assert.Contains(t, err.Error(), want)
	}
	assert.Empty(t, m.Registry().List())
}

func TestGoPluginInitialize(t *testing.T) {
	m := NewManager(NewRegistry(), nil, 0)
	p := &stubPlugin{name: "stub"}
	require.NoError(t, m.Register(p))
	assert.Error(t, m.Register(&stubPlugin{name: "stub"}))

	m.InitializePlugins()
	_, ok := m.Registry().Get("stub-cmd")
	assert.True(t, ok)

	m.ShutdownPlugins()
	assert.True(t, p.shutdown)
	assert.True(t, errors.Is(&UnknownCommandError{}, ErrUnknownCommand))
}

type stubPlugin struct {
	name     string
	shutdown bool
}

func (s *stubPlugin) Name() string { return s.name }
func (s *stubPlugin) Initialize(api API) error {
	return api.RegisterCommand(Command{Name: s.name + "-cmd", Source: s.name, Run: func(context.Context, *Handle, []string) error { return nil }})
}
func (s *stubPlugin) Shutdown() error { s.shutdown = true; return nil }
