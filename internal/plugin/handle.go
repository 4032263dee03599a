package plugin

import (
	"errors"

	"github.com/kgilper/kpad/internal/types"
)

// ErrHandleExpired is returned when a Handle is used after the command or
// hook that received it has returned.
var ErrHandleExpired = errors.New("plugin: editor handle used after its call returned")

// Handle is the scoped view of the Host given to one command or hook call.
type Handle struct {
	host  Host
	valid bool
}

func newHandle(host Host) *Handle {
	return &Handle{host: host, valid: true}
}

func (h *Handle) invalidate() { h.valid = false }

// Valid reports whether the handle may still be used.
func (h *Handle) Valid() bool { return h != nil && h.valid }

func use[T any](h *Handle, fn func(Host) T) (T, error) {
	var zero T
	if !h.Valid() {
		return zero, ErrHandleExpired
	}
	return fn(h.host), nil
}

func useErr(h *Handle, fn func(Host) error) error {
	if !h.Valid() {
		return ErrHandleExpired
	}
	return fn(h.host)
}

func (h *Handle) Text() (string, error) { return use(h, Host.Text) }

func (h *Handle) SetText(s string) error {
	return useErr(h, func(host Host) error { return host.SetText(s) })
}

func (h *Handle) HasSelection() (bool, error) { return use(h, Host.HasSelection) }

func (h *Handle) SelectedText() (string, error) { return use(h, Host.SelectedText) }

func (h *Handle) ReplaceSelection(s string) error {
	return useErr(h, func(host Host) error { return host.ReplaceSelection(s) })
}

// InsertText inserts at the cursor, replacing any selection.
func (h *Handle) InsertText(s string) error {
	return useErr(h, func(host Host) error { return host.InsertText(s) })
}

func (h *Handle) Cursor() (types.Position, error) { return use(h, Host.GetCursor) }

func (h *Handle) SetCursor(pos types.Position) error {
	return useErr(h, func(host Host) error { host.SetCursor(pos); return nil })
}

func (h *Handle) CurrentLineText() (string, error) { return use(h, Host.CurrentLineText) }

func (h *Handle) SetCurrentLineText(s string) error {
	return useErr(h, func(host Host) error { return host.SetCurrentLineText(s) })
}

// Status shows msg in the status bar.
func (h *Handle) Status(msg string) error {
	return useErr(h, func(host Host) error { host.SetStatus("%s", msg); return nil })
}

func (h *Handle) FilePath() (string, error) { return use(h, Host.FilePath) }
