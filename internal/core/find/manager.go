package find

import (
	"sync"

	"github.com/kgilper/kpad/internal/buffer"
	"github.com/kgilper/kpad/internal/logger"
	"github.com/kgilper/kpad/internal/types"
)

// MaxHighlights bounds how many matches are collected for display.
const MaxHighlights = 1000

// Match is one occurrence of the query, [Start, End).
type Match struct {
	Start types.Position
	End   types.Position
}

// Manager remembers the last query and its matches.
type Manager struct {
	mutex      sync.RWMutex
	query      string
	lastMatch  types.Position
	hasMatch   bool
	highlights []Match
}

// NewManager creates a find manager.
func NewManager() *Manager {
	return &Manager{}
}

// Query returns the last searched text.
func (m *Manager) Query() string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.query
}

// Find searches for query starting at from, wrapping around the document
// end. A match exactly at from is accepted.
func (m *Manager) Find(buf buffer.Buffer, query string, from types.Position) (types.Position, bool) {
	m.mutex.Lock()
	m.query = query
	m.hasMatch = false
	m.mutex.Unlock()

	m.Refresh(buf)
	return m.search(buf, from)
}

// FindNext repeats the last query. When cursor sits on the previous match
// the search starts one rune after it.
func (m *Manager) FindNext(buf buffer.Buffer, cursor types.Position) (types.Position, bool) {
	m.mutex.RLock()
	query, last, has := m.query, m.lastMatch, m.hasMatch
	m.mutex.RUnlock()
	if query == "" {
		return types.Position{}, false
	}

	from := cursor
	if has && last == buf.Clamp(cursor) {
		from = buf.OffsetToPosition(buf.PositionToOffset(cursor) + 1)
		if from == cursor {
			// cursor at document end
			from = types.Position{}
		}
	}
	return m.search(buf, from)
}

func (m *Manager) search(buf buffer.Buffer, from types.Position) (types.Position, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	pos, ok := buffer.SearchForward(buf, m.query, from, true)
	m.lastMatch, m.hasMatch = pos, ok
	logger.DebugTagf("find", "search %q from %v: %v %v", m.query, from, pos, ok)
	return pos, ok
}

// Refresh recollects the match highlights for the current query, e.g.
// after the buffer changed.
func (m *Manager) Refresh(buf buffer.Buffer) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.highlights = Collect(buf, m.query, MaxHighlights)
}

// Collect returns up to limit non-overlapping matches of query in document
// order. limit <= 0 means no limit.
func Collect(buf buffer.Buffer, query string, limit int) []Match {
	query = buffer.NormalizeNewlines(query)
	if query == "" {
		return nil
	}
	var matches []Match
	from := types.Position{}
	for limit <= 0 || len(matches) < limit {
		pos, ok := buffer.SearchForward(buf, query, from, false)
		if !ok {
			break
		}
		end := buf.CalcEndPosition(pos, query)
		matches = append(matches, Match{Start: pos, End: end})
		from = end
	}
	return matches
}

// Clear forgets the query and highlights.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.query = ""
	m.hasMatch = false
	m.highlights = nil
}

// Highlights returns the collected matches.
func (m *Manager) Highlights() []Match {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.highlights
}

// HighlightsOnLine returns the parts of the matches that fall on line, in
// rune columns. lineLen is used for matches that continue past the line.
func (m *Manager) HighlightsOnLine(line, lineLen int) []types.StyledRange {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var out []types.StyledRange
	for _, h := range m.highlights {
		if h.Start.Line > line {
			break
		}
		if h.End.Line < line {
			continue
		}
		start, end := 0, lineLen
		if h.Start.Line == line {
			start = h.Start.Col
		}
		if h.End.Line == line {
			end = h.End.Col
		}
		if end > start {
			out = append(out, types.StyledRange{StartCol: start, EndCol: end, StyleName: "search"})
		}
	}
	return out
}
