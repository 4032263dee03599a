// internal/core/history/change.go
package history

import (
	"github.com/kgilper/kpad/internal/buffer"
	"github.com/kgilper/kpad/internal/types"
)

// ActionType defines the type of change (insert or delete).
type ActionType int

const (
	InsertAction ActionType = iota
	DeleteAction
)

func (a ActionType) String() string {
	if a == DeleteAction {
		return "delete"
	}
	return "insert"
}

// Change is a single reversible edit. An insert carries Start and Text;
// a delete carries Start, End and the removed Text.
type Change struct {
	Type  ActionType
	Start types.Position
	End   types.Position
	Text  string
}

// Insertion builds an insert change.
func Insertion(pos types.Position, text string) Change {
	return Change{Type: InsertAction, Start: pos, Text: text}
}

// Deletion builds a delete change over [start, end) holding the removed text.
func Deletion(start, end types.Position, text string) Change {
	return Change{Type: DeleteAction, Start: start, End: end, Text: text}
}

// Inverse returns the change that undoes c, given buf in the state right
// after c was applied.
func (c Change) Inverse(buf buffer.Buffer) Change {
	if c.Type == InsertAction {
		return Deletion(c.Start, buf.CalcEndPosition(c.Start, c.Text), c.Text)
	}
	return Insertion(c.Start, c.Text)
}

// Apply performs c on buf and returns the resulting cursor position and the
// tree-sitter coordinates of the mutation.
func (c Change) Apply(buf buffer.Buffer) (types.Position, types.EditInfo) {
	switch c.Type {
	case DeleteAction:
		edit := buffer.BeginEdit(buf, c.Start, c.End)
		pos := buf.DeleteRange(c.Start, c.End)
		return pos, edit.Finish(buf, pos)
	default:
		edit := buffer.BeginEdit(buf, c.Start, c.Start)
		pos := buf.InsertText(c.Start, c.Text)
		return pos, edit.Finish(buf, pos)
	}
}
