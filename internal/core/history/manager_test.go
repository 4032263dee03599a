package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kgilper/kpad/internal/buffer"
	"github.com/kgilper/kpad/internal/event"
	"github.com/kgilper/kpad/internal/types"
)

type fakeEditor struct {
	buf       buffer.Buffer
	cursor    types.Position
	anchor    types.Position
	hasAnchor bool
	events    *event.Manager
}

func newFakeEditor(text string) *fakeEditor {
	buf := buffer.Load([]byte(text), buffer.KindLines)
	return &fakeEditor{buf: buf, events: event.NewManager()}
}

func (f *fakeEditor) GetBuffer() buffer.Buffer          { return f.buf }
func (f *fakeEditor) GetCursor() types.Position         { return f.cursor }
func (f *fakeEditor) GetAnchor() (types.Position, bool) { return f.anchor, f.hasAnchor }
func (f *fakeEditor) GetEventManager() *event.Manager   { return f.events }
func (f *fakeEditor) RestoreState(c, a types.Position, has bool) {
	f.cursor, f.anchor, f.hasAnchor = c, a, has
}

// insert records then applies an insert the way the edit engine does.
func (f *fakeEditor) insert(m *Manager, pos types.Position, text string) {
	m.RecordChange(Insertion(pos, text))
	f.cursor = f.buf.InsertText(pos, text)
	f.hasAnchor = false
}

func (f *fakeEditor) delete(m *Manager, start, end types.Position) {
	text := f.buf.GetRange(start, end)
	m.RecordChange(Deletion(start, end, text))
	f.cursor = f.buf.DeleteRange(start, end)
	f.hasAnchor = false
}

func pos(line, col int) types.Position { return types.Position{Line: line, Col: col} }

func TestUndoRedoSingleInsert(t *testing.T) {
	ed := newFakeEditor("hello")
	m := NewManager(ed, 0)
	ed.cursor = pos(0, 5)

	ed.insert(m, pos(0, 5), " world")
	require.Equal(t, "hello world", ed.buf.String())
	assert.Equal(t, pos(0, 11), ed.cursor)

	change, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, DeleteAction, change.Type)
	assert.Equal(t, "hello", ed.buf.String())
	assert.Equal(t, pos(0, 5), ed.cursor)
	assert.True(t, m.CanRedo())

	change, ok = m.Redo()
	require.True(t, ok)
	assert.Equal(t, InsertAction, change.Type)
	assert.Equal(t, "hello world", ed.buf.String())
	assert.Equal(t, pos(0, 11), ed.cursor)
	assert.False(t, m.CanRedo())
	assert.Equal(t, 1, m.UndoLen())
}

func TestUndoRestoresAnchor(t *testing.T) {
	ed := newFakeEditor("abc def")
	m := NewManager(ed, 0)
	ed.cursor, ed.anchor, ed.hasAnchor = pos(0, 7), pos(0, 4), true

	ed.delete(m, pos(0, 4), pos(0, 7))
	require.Equal(t, "abc ", ed.buf.String())
	assert.False(t, ed.hasAnchor)

	_, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, "abc def", ed.buf.String())
	assert.Equal(t, pos(0, 7), ed.cursor)
	assert.True(t, ed.hasAnchor)
	assert.Equal(t, pos(0, 4), ed.anchor)
}

func TestUndoRedoRoundTripMany(t *testing.T) {
	ed := newFakeEditor("start end")
	m := NewManager(ed, 0)

	ed.insert(m, pos(0, 6), "x\ny\nz")
	ed.delete(m, pos(1, 0), pos(2, 0))
	ed.insert(m, pos(0, 0), "// ")
	ed.delete(m, pos(0, 3), pos(1, 1))
	ed.insert(m, pos(0, 3), "\n")

	wantText := ed.buf.String()
	wantCursor := ed.cursor

	for i := 0; i < 5; i++ {
		_, ok := m.Undo()
		require.True(t, ok, "undo %d", i)
	}
	assert.Equal(t, "start end", ed.buf.String())
	_, ok := m.Undo()
	assert.False(t, ok)

	for i := 0; i < 5; i++ {
		_, ok := m.Redo()
		require.True(t, ok, "redo %d", i)
	}
	assert.Equal(t, wantText, ed.buf.String())
	assert.Equal(t, wantCursor, ed.cursor)
	_, ok = m.Redo()
	assert.False(t, ok)
}

func TestNewEditClearsRedo(t *testing.T) {
	ed := newFakeEditor("")
	m := NewManager(ed, 0)
	ed.insert(m, pos(0, 0), "a")
	ed.insert(m, pos(0, 1), "b")
	m.Undo()
	require.Equal(t, 1, m.RedoLen())

	ed.insert(m, pos(0, 1), "c")
	assert.Equal(t, 0, m.RedoLen())
	assert.Equal(t, "ac", ed.buf.String())
}

func TestCapacityDropsOldest(t *testing.T) {
	ed := newFakeEditor("")
	m := NewManager(ed, 3)
	assert.Equal(t, 3, m.Capacity())

	for i := 0; i < 10; i++ {
		ed.insert(m, pos(0, i), "x")
		assert.LessOrEqual(t, m.UndoLen(), 3)
	}
	for m.CanUndo() {
		m.Undo()
	}
	assert.Equal(t, "xxxxxxx", ed.buf.String(), "only the last three inserts are undoable")
}

func TestUndoDispatchesEditInfo(t *testing.T) {
	ed := newFakeEditor("ab\ncd")
	m := NewManager(ed, 0)
	var got []types.EditInfo
	ed.events.Subscribe(event.TypeBufferModified, func(e event.Event) bool {
		got = append(got, e.Data.(event.BufferModifiedData).Edit)
		return false
	})

	ed.insert(m, pos(1, 1), "é")
	m.Undo()

	require.Len(t, got, 1)
	info := got[0]
	assert.Equal(t, uint32(4), info.StartIndex)
	assert.Equal(t, uint32(6), info.OldEndIndex, "é is two bytes")
	assert.Equal(t, uint32(4), info.NewEndIndex)
	assert.Equal(t, uint32(1), info.StartPosition.Row)
	assert.Equal(t, uint32(1), info.StartPosition.Column)
}

func TestClear(t *testing.T) {
	ed := newFakeEditor("")
	m := NewManager(ed, 0)
	ed.insert(m, pos(0, 0), "a")
	m.Undo()
	ed.insert(m, pos(0, 0), "b")
	m.Clear()
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
}
