package buffer

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/kgilper/kpad/internal/types"
	"github.com/kgilper/kpad/internal/utils"
)

// SliceBuffer stores the document as a flat slice of lines. Edits far
// from the end of the document cost O(lines).
type SliceBuffer struct {
	lines  [][]byte
	ending types.LineEnding
}

// NewSliceBuffer creates an empty SliceBuffer.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{
		lines: [][]byte{{}},
	}
}

// newSliceBufferFromText builds a buffer from "\n"-joined text.
func newSliceBufferFromText(text string) *SliceBuffer {
	parts := strings.Split(text, "\n")
	lines := make([][]byte, len(parts))
	for i, part := range parts {
		lines[i] = []byte(part)
	}
	return &SliceBuffer{lines: lines}
}

// LineCount returns the number of lines, always at least one.
func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

// Line returns the text of line index, or "" when out of range.
func (sb *SliceBuffer) Line(index int) string {
	if index < 0 || index >= len(sb.lines) {
		return ""
	}
	return string(sb.lines[index])
}

// LineLength returns the rune count of line index, or 0 when out of range.
func (sb *SliceBuffer) LineLength(index int) int {
	if index < 0 || index >= len(sb.lines) {
		return 0
	}
	return utf8.RuneCount(sb.lines[index])
}

// Len returns the total rune count with separators counted once each.
func (sb *SliceBuffer) Len() int {
	n := len(sb.lines) - 1
	for _, line := range sb.lines {
		n += utf8.RuneCount(line)
	}
	return n
}

// Clamp restricts pos to an existing line and column.
func (sb *SliceBuffer) Clamp(pos types.Position) types.Position {
	line := clampInt(pos.Line, 0, len(sb.lines)-1)
	return types.Position{Line: line, Col: clampInt(pos.Col, 0, sb.LineLength(line))}
}

// PositionToOffset maps pos to a document-wide rune offset. Lines past the
// end map to the end of the document.
func (sb *SliceBuffer) PositionToOffset(pos types.Position) int {
	if pos.Line >= len(sb.lines) {
		return sb.Len()
	}
	pos = sb.Clamp(pos)
	offset := 0
	for i := 0; i < pos.Line; i++ {
		offset += utf8.RuneCount(sb.lines[i]) + 1
	}
	return offset + pos.Col
}

// OffsetToPosition maps a rune offset back to a position, clamping to the document.
func (sb *SliceBuffer) OffsetToPosition(offset int) types.Position {
	if offset < 0 {
		offset = 0
	}
	for i, line := range sb.lines {
		n := utf8.RuneCount(line)
		if offset <= n {
			return types.Position{Line: i, Col: offset}
		}
		offset -= n + 1
	}
	last := len(sb.lines) - 1
	return types.Position{Line: last, Col: utf8.RuneCount(sb.lines[last])}
}

// ByteOffset returns the byte offset of pos in the "\n"-joined text.
func (sb *SliceBuffer) ByteOffset(pos types.Position) int {
	pos = sb.Clamp(pos)
	offset := 0
	for i := 0; i < pos.Line; i++ {
		offset += len(sb.lines[i]) + 1
	}
	return offset + utils.RuneIndexToByteOffset(sb.lines[pos.Line], pos.Col)
}

// InsertChar inserts one rune and returns the position after it.
func (sb *SliceBuffer) InsertChar(pos types.Position, ch rune) types.Position {
	return sb.InsertText(pos, string(ch))
}

// InsertText inserts text at pos, splitting lines on "\n", and returns the end position.
func (sb *SliceBuffer) InsertText(pos types.Position, text string) types.Position {
	pos = sb.Clamp(pos)
	text = NormalizeNewlines(text)
	if text == "" {
		return pos
	}

	current := sb.lines[pos.Line]
	byteOffset := utils.RuneIndexToByteOffset(current, pos.Col)
	head := current[:byteOffset]
	tail := current[byteOffset:]

	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		sb.lines[pos.Line] = concatBytes(head, []byte(text), tail)
		return types.Position{Line: pos.Line, Col: pos.Col + utf8.RuneCountInString(text)}
	}

	newLines := make([][]byte, 0, len(sb.lines)+len(parts)-1)
	newLines = append(newLines, sb.lines[:pos.Line]...)
	newLines = append(newLines, concatBytes(head, []byte(parts[0])))
	for _, middle := range parts[1 : len(parts)-1] {
		newLines = append(newLines, []byte(middle))
	}
	last := parts[len(parts)-1]
	newLines = append(newLines, concatBytes([]byte(last), tail))
	newLines = append(newLines, sb.lines[pos.Line+1:]...)
	sb.lines = newLines

	return types.Position{Line: pos.Line + len(parts) - 1, Col: utf8.RuneCountInString(last)}
}

// DeleteRange removes [min(a,b), max(a,b)) and returns the normalized start.
func (sb *SliceBuffer) DeleteRange(a, b types.Position) types.Position {
	start, end := types.Order(sb.Clamp(a), sb.Clamp(b))
	if start == end {
		return start
	}

	startLine := sb.lines[start.Line]
	endLine := sb.lines[end.Line]
	merged := concatBytes(
		startLine[:utils.RuneIndexToByteOffset(startLine, start.Col)],
		endLine[utils.RuneIndexToByteOffset(endLine, end.Col):],
	)

	if start.Line == end.Line {
		sb.lines[start.Line] = merged
		return start
	}

	newLines := make([][]byte, 0, len(sb.lines)-(end.Line-start.Line))
	newLines = append(newLines, sb.lines[:start.Line]...)
	newLines = append(newLines, merged)
	newLines = append(newLines, sb.lines[end.Line+1:]...)
	sb.lines = newLines
	return start
}

// Backspace deletes the rune before pos, joining with the previous line at column 0.
func (sb *SliceBuffer) Backspace(pos types.Position) types.Position {
	pos = sb.Clamp(pos)
	switch {
	case pos.Col > 0:
		return sb.DeleteRange(types.Position{Line: pos.Line, Col: pos.Col - 1}, pos)
	case pos.Line > 0:
		join := types.Position{Line: pos.Line - 1, Col: sb.LineLength(pos.Line - 1)}
		return sb.DeleteRange(join, pos)
	}
	return pos
}

// DeleteForward deletes the rune at pos, joining the next line at end of line.
func (sb *SliceBuffer) DeleteForward(pos types.Position) types.Position {
	pos = sb.Clamp(pos)
	switch {
	case pos.Col < sb.LineLength(pos.Line):
		return sb.DeleteRange(pos, types.Position{Line: pos.Line, Col: pos.Col + 1})
	case pos.Line < len(sb.lines)-1:
		return sb.DeleteRange(pos, types.Position{Line: pos.Line + 1})
	}
	return pos
}

// GetRange returns the text in [min(a,b), max(a,b)).
func (sb *SliceBuffer) GetRange(a, b types.Position) string {
	start, end := types.Order(sb.Clamp(a), sb.Clamp(b))
	if start == end {
		return ""
	}
	startLine := sb.lines[start.Line]
	from := utils.RuneIndexToByteOffset(startLine, start.Col)
	if start.Line == end.Line {
		return string(startLine[from:utils.RuneIndexToByteOffset(startLine, end.Col)])
	}

	var buf bytes.Buffer
	buf.Write(startLine[from:])
	for i := start.Line + 1; i < end.Line; i++ {
		buf.WriteByte('\n')
		buf.Write(sb.lines[i])
	}
	buf.WriteByte('\n')
	endLine := sb.lines[end.Line]
	buf.Write(endLine[:utils.RuneIndexToByteOffset(endLine, end.Col)])
	return buf.String()
}

// CalcEndPosition predicts the result of InsertText(pos, text) without mutating.
func (sb *SliceBuffer) CalcEndPosition(pos types.Position, text string) types.Position {
	return EndPosition(sb.Clamp(pos), text)
}

// String returns the "\n"-joined document.
func (sb *SliceBuffer) String() string {
	return string(bytes.Join(sb.lines, []byte("\n")))
}

// EachChunk streams the document line by line, separators included.
func (sb *SliceBuffer) EachChunk(fn func(chunk string) error) error {
	for i, line := range sb.lines {
		chunk := string(line)
		if i < len(sb.lines)-1 {
			chunk += "\n"
		}
		if chunk == "" {
			continue
		}
		if err := fn(chunk); err != nil {
			return err
		}
	}
	return nil
}

// LineEnding returns the style applied on save.
func (sb *SliceBuffer) LineEnding() types.LineEnding {
	return sb.ending
}

// SetLineEnding changes the style applied on save.
func (sb *SliceBuffer) SetLineEnding(le types.LineEnding) {
	sb.ending = le
}

// concatBytes joins parts into a freshly allocated slice so no line aliases another.
func concatBytes(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

var _ Buffer = (*SliceBuffer)(nil)
