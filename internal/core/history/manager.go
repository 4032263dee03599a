// internal/core/history/manager.go
package history

import (
	"sync"

	"github.com/kgilper/kpad/internal/buffer"
	"github.com/kgilper/kpad/internal/event"
	"github.com/kgilper/kpad/internal/logger"
	"github.com/kgilper/kpad/internal/types"
)

// DefaultCapacity bounds the undo stack when no limit is configured.
const DefaultCapacity = 1000

// EditorInterface is what the history manager needs from the editor.
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	GetCursor() types.Position
	GetAnchor() (types.Position, bool)
	RestoreState(cursor, anchor types.Position, hasAnchor bool)
	GetEventManager() *event.Manager
}

// Entry is one stack element: a change plus the cursor and anchor that
// were current right before it was applied.
type Entry struct {
	Change       Change
	CursorBefore types.Position
	AnchorBefore types.Position
	HasAnchor    bool
}

// Manager holds the undo and redo stacks.
type Manager struct {
	editor   EditorInterface
	undo     []Entry
	redo     []Entry
	capacity int
	mutex    sync.Mutex
}

// NewManager creates a history manager. A capacity below 1 selects
// DefaultCapacity.
func NewManager(editor EditorInterface, capacity int) *Manager {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Manager{
		editor:   editor,
		capacity: capacity,
	}
}

// RecordChange pushes change onto the undo stack with the editor's current
// cursor and anchor. Call it before applying the change.
func (m *Manager) RecordChange(change Change) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.undo = m.push(m.undo, m.snapshot(change))
	m.redo = m.redo[:0]
	logger.DebugTagf("history", "recorded %s at %v (%d undo)", change.Type, change.Start, len(m.undo))
}

// Undo reverts the most recent change. It returns the change it applied
// and false when there is nothing to undo.
func (m *Manager) Undo() (Change, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	entry, ok := pop(&m.undo)
	if !ok {
		return Change{}, false
	}
	applied := m.replay(entry, &m.redo)
	logger.DebugTagf("history", "undo %s at %v", applied.Type, applied.Start)
	return applied, true
}

// Redo reapplies the most recently undone change.
func (m *Manager) Redo() (Change, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	entry, ok := pop(&m.redo)
	if !ok {
		return Change{}, false
	}
	applied := m.replay(entry, &m.undo)
	logger.DebugTagf("history", "redo %s at %v", applied.Type, applied.Start)
	return applied, true
}

// replay applies the inverse of entry, pushes that inverse with the
// current cursor onto target, restores entry's before-state and publishes
// the edit.
func (m *Manager) replay(entry Entry, target *[]Entry) Change {
	buf := m.editor.GetBuffer()
	inverse := entry.Change.Inverse(buf)

	*target = m.push(*target, m.snapshot(inverse))
	_, info := inverse.Apply(buf)
	m.editor.RestoreState(entry.CursorBefore, entry.AnchorBefore, entry.HasAnchor)

	if em := m.editor.GetEventManager(); em != nil {
		em.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: info})
	}
	return inverse
}

func (m *Manager) snapshot(change Change) Entry {
	anchor, hasAnchor := m.editor.GetAnchor()
	return Entry{
		Change:       change,
		CursorBefore: m.editor.GetCursor(),
		AnchorBefore: anchor,
		HasAnchor:    hasAnchor,
	}
}

func (m *Manager) push(stack []Entry, e Entry) []Entry {
	stack = append(stack, e)
	if over := len(stack) - m.capacity; over > 0 {
		copy(stack, stack[over:])
		clear(stack[len(stack)-over:])
		stack = stack[:len(stack)-over]
	}
	return stack
}

func pop(stack *[]Entry) (Entry, bool) {
	n := len(*stack)
	if n == 0 {
		return Entry{}, false
	}
	e := (*stack)[n-1]
	(*stack)[n-1] = Entry{}
	*stack = (*stack)[:n-1]
	return e, true
}

// Clear drops both stacks, e.g. after a file is opened.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.undo = nil
	m.redo = nil
	logger.DebugTagf("history", "cleared")
}

func (m *Manager) CanUndo() bool { return m.UndoLen() > 0 }
func (m *Manager) CanRedo() bool { return m.RedoLen() > 0 }

func (m *Manager) UndoLen() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.undo)
}

func (m *Manager) RedoLen() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.redo)
}

// Capacity reports the undo stack bound.
func (m *Manager) Capacity() int { return m.capacity }
