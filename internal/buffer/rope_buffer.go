package buffer

import (
	"github.com/kgilper/kpad/internal/rope"
	"github.com/kgilper/kpad/internal/types"
)

// RopeBuffer stores the document in a rope; edits cost O(log n) anywhere
// in the document.
type RopeBuffer struct {
	text   rope.Rope
	ending types.LineEnding
}

// NewRopeBuffer creates an empty RopeBuffer.
func NewRopeBuffer() *RopeBuffer {
	return &RopeBuffer{text: rope.New()}
}

func newRopeBufferFromText(text string) *RopeBuffer {
	return &RopeBuffer{text: rope.FromString(text)}
}

// LineCount returns the number of lines, always at least one.
func (rb *RopeBuffer) LineCount() int {
	return rb.text.LineCount()
}

// lineBounds returns the rune offsets of line's first rune and of its terminator.
func (rb *RopeBuffer) lineBounds(line int) (int, int) {
	start := rb.text.LineStart(line)
	if line+1 >= rb.text.LineCount() {
		return start, rb.text.Len()
	}
	return start, rb.text.LineStart(line+1) - 1
}

// Line returns the text of line, or "" when out of range.
func (rb *RopeBuffer) Line(line int) string {
	if line < 0 || line >= rb.LineCount() {
		return ""
	}
	start, end := rb.lineBounds(line)
	return rb.text.Slice(start, end)
}

// LineLength returns the rune count of line, or 0 when out of range.
func (rb *RopeBuffer) LineLength(line int) int {
	if line < 0 || line >= rb.LineCount() {
		return 0
	}
	start, end := rb.lineBounds(line)
	return end - start
}

// Len returns the total rune count.
func (rb *RopeBuffer) Len() int {
	return rb.text.Len()
}

// Clamp restricts pos to an existing line and column.
func (rb *RopeBuffer) Clamp(pos types.Position) types.Position {
	line := clampInt(pos.Line, 0, rb.LineCount()-1)
	return types.Position{Line: line, Col: clampInt(pos.Col, 0, rb.LineLength(line))}
}

// PositionToOffset maps pos to a rune offset; lines past the end map to Len.
func (rb *RopeBuffer) PositionToOffset(pos types.Position) int {
	if pos.Line >= rb.LineCount() {
		return rb.text.Len()
	}
	pos = rb.Clamp(pos)
	return rb.text.LineStart(pos.Line) + pos.Col
}

// OffsetToPosition maps a rune offset back to a position, clamping to the document.
func (rb *RopeBuffer) OffsetToPosition(offset int) types.Position {
	offset = clampInt(offset, 0, rb.text.Len())
	line := rb.text.CharToLine(offset)
	return types.Position{Line: line, Col: offset - rb.text.LineStart(line)}
}

// ByteOffset returns the byte offset of pos in the "\n"-joined text.
func (rb *RopeBuffer) ByteOffset(pos types.Position) int {
	return rb.text.CharToByte(rb.PositionToOffset(rb.Clamp(pos)))
}

// InsertChar inserts one rune and returns the position after it.
func (rb *RopeBuffer) InsertChar(pos types.Position, ch rune) types.Position {
	return rb.InsertText(pos, string(ch))
}

// InsertText inserts text at pos and returns the end position.
func (rb *RopeBuffer) InsertText(pos types.Position, text string) types.Position {
	pos = rb.Clamp(pos)
	text = NormalizeNewlines(text)
	if text == "" {
		return pos
	}
	rb.text = rb.text.Insert(rb.PositionToOffset(pos), text)
	return EndPosition(pos, text)
}

// DeleteRange removes [min(a,b), max(a,b)) and returns the normalized start.
func (rb *RopeBuffer) DeleteRange(a, b types.Position) types.Position {
	start, end := types.Order(rb.Clamp(a), rb.Clamp(b))
	if start == end {
		return start
	}
	rb.text = rb.text.Delete(rb.PositionToOffset(start), rb.PositionToOffset(end))
	return start
}

// Backspace deletes the rune before pos, joining with the previous line at column 0.
func (rb *RopeBuffer) Backspace(pos types.Position) types.Position {
	pos = rb.Clamp(pos)
	offset := rb.PositionToOffset(pos)
	if offset == 0 {
		return pos
	}
	join := rb.OffsetToPosition(offset - 1)
	rb.text = rb.text.Delete(offset-1, offset)
	return join
}

// DeleteForward deletes the rune at pos, joining the next line at end of line.
func (rb *RopeBuffer) DeleteForward(pos types.Position) types.Position {
	pos = rb.Clamp(pos)
	offset := rb.PositionToOffset(pos)
	if offset < rb.text.Len() {
		rb.text = rb.text.Delete(offset, offset+1)
	}
	return pos
}

// GetRange returns the text in [min(a,b), max(a,b)).
func (rb *RopeBuffer) GetRange(a, b types.Position) string {
	start, end := types.Order(rb.Clamp(a), rb.Clamp(b))
	return rb.text.Slice(rb.PositionToOffset(start), rb.PositionToOffset(end))
}

// CalcEndPosition predicts the result of InsertText(pos, text) without mutating.
func (rb *RopeBuffer) CalcEndPosition(pos types.Position, text string) types.Position {
	return EndPosition(rb.Clamp(pos), text)
}

// String returns the "\n"-joined document.
func (rb *RopeBuffer) String() string {
	return rb.text.String()
}

// EachChunk streams the rope's leaf chunks.
func (rb *RopeBuffer) EachChunk(fn func(chunk string) error) error {
	var err error
	rb.text.Chunks(func(s string) bool {
		err = fn(s)
		return err == nil
	})
	return err
}

// LineEnding returns the style applied on save.
func (rb *RopeBuffer) LineEnding() types.LineEnding {
	return rb.ending
}

// SetLineEnding changes the style applied on save.
func (rb *RopeBuffer) SetLineEnding(le types.LineEnding) {
	rb.ending = le
}

var _ Buffer = (*RopeBuffer)(nil)
