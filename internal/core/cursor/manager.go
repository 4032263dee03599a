package cursor

import (
	"github.com/kgilper/kpad/internal/buffer"
	"github.com/kgilper/kpad/internal/core/motion"
	"github.com/kgilper/kpad/internal/logger"
	"github.com/kgilper/kpad/internal/types"
)

// Editor is the interface cursor manager expects from the editor
type Editor interface {
	GetBuffer() buffer.Buffer
}

// Manager owns the cursor position and keeps it inside the buffer.
type Manager struct {
	editor   Editor
	position types.Position
}

// NewManager creates a new cursor manager
func NewManager(editor Editor) *Manager {
	return &Manager{editor: editor}
}

// GetPosition returns the current cursor position
func (m *Manager) GetPosition() types.Position {
	return m.position
}

// SetPosition clamps pos to the buffer and moves the cursor there. It
// reports whether the position changed.
func (m *Manager) SetPosition(pos types.Position) bool {
	buf := m.editor.GetBuffer()
	if buf == nil {
		logger.Warnf("cursor: SetPosition with nil buffer")
		return false
	}
	pos = buf.Clamp(pos)
	if pos == m.position {
		return false
	}
	m.position = pos
	return true
}

// Apply moves the cursor by mv.
func (m *Manager) Apply(mv motion.Motion) bool {
	return m.SetPosition(mv(m.editor.GetBuffer(), m.position))
}
