package buffer

import (
	"strings"
	"unicode/utf8"

	"github.com/kgilper/kpad/internal/types"
)

// SearchForward finds the first occurrence of query at or after from. With
// wrap set and no match found, it searches again from the document start
// and accepts only matches that begin before from. An empty query never
// matches.
func SearchForward(buf Buffer, query string, from types.Position, wrap bool) (types.Position, bool) {
	query = NormalizeNewlines(query)
	if query == "" {
		return types.Position{}, false
	}
	start := buf.PositionToOffset(buf.Clamp(from))

	if off, ok := searchFrom(buf, query, start, buf.Len()); ok {
		return buf.OffsetToPosition(off), true
	}
	if wrap && start > 0 {
		// Matches may straddle from, so the scan window extends past it.
		limit := min(buf.Len(), start+utf8.RuneCountInString(query)-1)
		if off, ok := searchFrom(buf, query, 0, limit); ok && off < start {
			return buf.OffsetToPosition(off), true
		}
	}
	return types.Position{}, false
}

// searchFrom returns the rune offset of the first match lying entirely
// within [start, end).
func searchFrom(buf Buffer, query string, start, end int) (int, bool) {
	if start >= end {
		return 0, false
	}
	if !strings.Contains(query, "\n") {
		return searchLines(buf, query, start, end)
	}
	text := buf.GetRange(buf.OffsetToPosition(start), buf.OffsetToPosition(end))
	idx := strings.Index(text, query)
	if idx < 0 {
		return 0, false
	}
	return start + utf8.RuneCountInString(text[:idx]), true
}

// searchLines scans line by line for a single-line query.
func searchLines(buf Buffer, query string, start, end int) (int, bool) {
	pos := buf.OffsetToPosition(start)
	lineOffset := start - pos.Col
	for line := pos.Line; line < buf.LineCount() && lineOffset < end; line++ {
		text := buf.Line(line)
		skip := 0
		if line == pos.Line {
			skip = pos.Col
		}
		byteSkip := len(text)
		if skip < utf8.RuneCountInString(text) {
			byteSkip = len(string([]rune(text)[:skip]))
		}
		if idx := strings.Index(text[byteSkip:], query); idx >= 0 {
			off := lineOffset + skip + utf8.RuneCountInString(text[byteSkip:byteSkip+idx])
			if off+utf8.RuneCountInString(query) <= end {
				return off, true
			}
			return 0, false
		}
		lineOffset += utf8.RuneCountInString(text) + 1
	}
	return 0, false
}
