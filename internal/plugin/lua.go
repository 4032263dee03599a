package plugin

import (
	"context"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/kgilper/kpad/internal/types"
)

// luaPlugin is one script plugin with its own interpreter state. gopher-lua
// states are not goroutine-safe; all calls happen on the main loop.
type luaPlugin struct {
	manifest *Manifest
	L        *lua.LState
	timeout  time.Duration

	// raised is the host error behind the last Lua error, kept so callers
	// can match it with errors.Is.
	raised error
}

func loadLuaPlugin(m *Manifest, timeout time.Duration) (*luaPlugin, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	if err := openSafeLibraries(L); err != nil {
		L.Close()
		return nil, err
	}
	p := &luaPlugin{manifest: m, L: L, timeout: timeout}

	err := p.withDeadline(context.Background(), func() error {
		return L.DoFile(m.ScriptPath())
	})
	if err != nil {
		L.Close()
		return nil, fmt.Errorf("plugin %s: load %s: %w", m.ID, m.Script, err)
	}

	for _, fn := range p.functions() {
		if L.GetGlobal(fn).Type() != lua.LTFunction {
			L.Close()
			return nil, fmt.Errorf("plugin %s: %q is not a function", m.ID, fn)
		}
	}
	return p, nil
}

// openSafeLibraries opens base, table, string and math. io, os, debug and
// package stay closed.
func openSafeLibraries(L *lua.LState) error {
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{Fn: L.NewFunction(lib.open), NRet: 0, Protect: true}, lua.LString(lib.name)); err != nil {
			return fmt.Errorf("open lua %s library: %w", lib.name, err)
		}
	}
	return nil
}

// functions lists every global the manifest refers to.
func (p *luaPlugin) functions() []string {
	var fns []string
	for _, c := range p.manifest.Commands {
		fns = append(fns, c.Func)
	}
	for _, fn := range []string{p.manifest.Hooks.OnOpen, p.manifest.Hooks.OnSave} {
		if fn != "" {
			fns = append(fns, fn)
		}
	}
	return fns
}

func (p *luaPlugin) withDeadline(ctx context.Context, fn func() error) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	p.L.SetContext(ctx)
	defer p.L.RemoveContext()
	return fn()
}

// call runs the global function fn with a fresh `editor` table bound to h.
func (p *luaPlugin) call(ctx context.Context, h *Handle, fn string, args ...lua.LValue) error {
	p.L.SetGlobal("editor", p.editorTable(h))
	p.raised = nil

	err := p.withDeadline(ctx, func() error {
		return p.L.CallByParam(lua.P{Fn: p.L.GetGlobal(fn), NRet: 0, Protect: true}, args...)
	})
	if err == nil {
		return nil
	}
	if p.raised != nil {
		return fmt.Errorf("plugin %s: %s: %w", p.manifest.ID, fn, p.raised)
	}
	return fmt.Errorf("plugin %s: %s: %w", p.manifest.ID, fn, err)
}

func (p *luaPlugin) check(L *lua.LState, err error) {
	if err != nil {
		p.raised = err
		L.RaiseError("%s", err.Error())
	}
}

// editorTable builds the script API. Lines and columns are 1-based here.
func (p *luaPlugin) editorTable(h *Handle) *lua.LTable {
	pushString := func(L *lua.LState, s string, err error) int {
		p.check(L, err)
		L.Push(lua.LString(s))
		return 1
	}
	cursor := func(L *lua.LState) types.Position {
		pos, err := h.Cursor()
		p.check(L, err)
		return pos
	}

	fns := map[string]lua.LGFunction{
		"text": func(L *lua.LState) int {
			s, err := h.Text()
			return pushString(L, s, err)
		},
		"set_text": func(L *lua.LState) int {
			p.check(L, h.SetText(L.CheckString(1)))
			return 0
		},
		"has_selection": func(L *lua.LState) int {
			ok, err := h.HasSelection()
			p.check(L, err)
			L.Push(lua.LBool(ok))
			return 1
		},
		"selection_text": func(L *lua.LState) int {
			s, err := h.SelectedText()
			return pushString(L, s, err)
		},
		"replace_selection": func(L *lua.LState) int {
			p.check(L, h.ReplaceSelection(L.CheckString(1)))
			return 0
		},
		"insert": func(L *lua.LState) int {
			p.check(L, h.InsertText(L.CheckString(1)))
			return 0
		},
		"cursor_line": func(L *lua.LState) int {
			L.Push(lua.LNumber(cursor(L).Line + 1))
			return 1
		},
		"cursor_col": func(L *lua.LState) int {
			L.Push(lua.LNumber(cursor(L).Col + 1))
			return 1
		},
		"set_cursor": func(L *lua.LState) int {
			pos := types.Position{Line: L.CheckInt(1) - 1, Col: L.OptInt(2, 1) - 1}
			p.check(L, h.SetCursor(pos))
			return 0
		},
		"current_line_text": func(L *lua.LState) int {
			s, err := h.CurrentLineText()
			return pushString(L, s, err)
		},
		"set_current_line_text": func(L *lua.LState) int {
			p.check(L, h.SetCurrentLineText(L.CheckString(1)))
			return 0
		},
		"status": func(L *lua.LState) int {
			p.check(L, h.Status(L.CheckString(1)))
			return 0
		},
		"file_path": func(L *lua.LState) int {
			s, err := h.FilePath()
			return pushString(L, s, err)
		},
	}
	return p.L.SetFuncs(p.L.NewTable(), fns)
}

func (p *luaPlugin) close() {
	p.L.Close()
}
