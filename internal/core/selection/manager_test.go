package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kgilper/kpad/internal/types"
)

func pos(line, col int) types.Position { return types.Position{Line: line, Col: col} }

func TestBeginKeepsExistingAnchor(t *testing.T) {
	m := NewManager()
	m.Begin(pos(1, 2))
	m.Begin(pos(5, 0))

	anchor, ok := m.Anchor()
	assert.True(t, ok)
	assert.Equal(t, pos(1, 2), anchor)
}

func TestRangeNormalizes(t *testing.T) {
	m := NewManager()
	_, _, ok := m.Range(pos(0, 0))
	assert.False(t, ok, "no anchor")

	m.Begin(pos(3, 4))
	_, _, ok = m.Range(pos(3, 4))
	assert.False(t, ok, "empty selection")

	start, end, ok := m.Range(pos(1, 0))
	assert.True(t, ok)
	assert.Equal(t, pos(1, 0), start)
	assert.Equal(t, pos(3, 4), end)

	assert.True(t, m.Contains(pos(1, 0), pos(2, 9)))
	assert.False(t, m.Contains(pos(1, 0), pos(3, 4)))
}

func TestClearAndSelectAll(t *testing.T) {
	m := NewManager()
	m.Begin(pos(0, 1))
	m.Clear()
	_, ok := m.Anchor()
	assert.False(t, ok)

	cursor := m.SelectAll(pos(4, 2))
	assert.Equal(t, pos(4, 2), cursor)
	start, end, ok := m.Range(cursor)
	assert.True(t, ok)
	assert.Equal(t, pos(0, 0), start)
	assert.Equal(t, pos(4, 2), end)
}
