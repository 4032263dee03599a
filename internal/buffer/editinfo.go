package buffer

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/kgilper/kpad/internal/types"
)

// EditTracker captures the tree-sitter coordinates of a range before it
// is mutated. Finish completes the EditInfo once the new end is known.
type EditTracker struct {
	start, oldEnd           uint32
	startPoint, oldEndPoint sitter.Point
}

// BeginEdit records the byte coordinates of [start, oldEnd) in buf.
func BeginEdit(buf Buffer, start, oldEnd types.Position) EditTracker {
	start, oldEnd = types.Order(buf.Clamp(start), buf.Clamp(oldEnd))
	return EditTracker{
		start:       uint32(buf.ByteOffset(start)),
		oldEnd:      uint32(buf.ByteOffset(oldEnd)),
		startPoint:  point(buf, start),
		oldEndPoint: point(buf, oldEnd),
	}
}

// Finish returns the EditInfo for a mutation that left newEnd as the end of
// the replaced range.
func (t EditTracker) Finish(buf Buffer, newEnd types.Position) types.EditInfo {
	newEnd = buf.Clamp(newEnd)
	return types.EditInfo{
		StartIndex:     t.start,
		OldEndIndex:    t.oldEnd,
		NewEndIndex:    uint32(buf.ByteOffset(newEnd)),
		StartPosition:  t.startPoint,
		OldEndPosition: t.oldEndPoint,
		NewEndPosition: point(buf, newEnd),
	}
}

func point(buf Buffer, pos types.Position) sitter.Point {
	lineStart := buf.ByteOffset(types.Position{Line: pos.Line})
	return sitter.Point{
		Row:    uint32(pos.Line),
		Column: uint32(buf.ByteOffset(pos) - lineStart),
	}
}
