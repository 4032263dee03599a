package selection

import (
	"github.com/kgilper/kpad/internal/logger"
	"github.com/kgilper/kpad/internal/types"
)

// Manager holds the optional selection anchor. The other end of the
// selection is always the cursor, which the editor owns.
type Manager struct {
	anchor    types.Position
	hasAnchor bool
}

// NewManager creates a selection manager with no anchor.
func NewManager() *Manager {
	return &Manager{}
}

// Anchor returns the anchor and whether one is set.
func (m *Manager) Anchor() (types.Position, bool) {
	return m.anchor, m.hasAnchor
}

// SetAnchor replaces the anchor state outright (used by undo/redo).
func (m *Manager) SetAnchor(anchor types.Position, ok bool) {
	m.anchor, m.hasAnchor = anchor, ok
}

// Begin anchors a selection at cursor unless one is already anchored.
func (m *Manager) Begin(cursor types.Position) {
	if m.hasAnchor {
		return
	}
	m.anchor, m.hasAnchor = cursor, true
	logger.DebugTagf("core", "selection anchored at %v", cursor)
}

// Clear drops the anchor.
func (m *Manager) Clear() {
	if m.hasAnchor {
		logger.DebugTagf("core", "selection cleared")
	}
	m.anchor, m.hasAnchor = types.Position{}, false
}

// Range returns the normalized selection between the anchor and cursor.
// ok is false when there is no anchor or the selection is empty.
func (m *Manager) Range(cursor types.Position) (start, end types.Position, ok bool) {
	if !m.hasAnchor || m.anchor == cursor {
		return types.Position{}, types.Position{}, false
	}
	start, end = types.Order(m.anchor, cursor)
	return start, end, true
}

// SelectAll anchors at the document start and returns the document end,
// which becomes the new cursor.
func (m *Manager) SelectAll(docEnd types.Position) types.Position {
	m.anchor, m.hasAnchor = types.Position{}, true
	return docEnd
}

// Contains reports whether pos lies inside the selection [start, end).
func (m *Manager) Contains(cursor, pos types.Position) bool {
	start, end, ok := m.Range(cursor)
	return ok && !pos.Less(start) && pos.Less(end)
}
