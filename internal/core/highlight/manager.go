package highlight

import (
	"context"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/kgilper/kpad/internal/buffer"
	hl "github.com/kgilper/kpad/internal/highlighter"
	"github.com/kgilper/kpad/internal/highlighter/lang"
	"github.com/kgilper/kpad/internal/logger"
	"github.com/kgilper/kpad/internal/types"
)

// Manager keeps the syntax tree and highlights for the open buffer. Edits
// are applied to the tree as they happen; the reparse runs on Update, once
// per frame on the main loop.
type Manager struct {
	highlighter *hl.Highlighter
	language    *lang.Language
	tree        *sitter.Tree
	highlights  hl.HighlightResult
	dirty       bool
	mutex       sync.RWMutex
}

// NewManager creates a highlight manager. A nil highlighter disables
// syntax highlighting.
func NewManager(h *hl.Highlighter) *Manager {
	return &Manager{highlighter: h}
}

// SetFile selects the language from path and drops the current tree.
func (m *Manager) SetFile(path string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.reset()
	if m.highlighter != nil {
		m.language = m.highlighter.GetLanguage(path)
	}
	m.dirty = m.language != nil
	if m.language != nil {
		logger.DebugTagf("highlight", "language %s for %s", m.language.Name, path)
	}
}

// Language returns the active language name, or "".
func (m *Manager) Language() string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.language == nil {
		return ""
	}
	return m.language.Name
}

// AccumulateEdit records a buffer change against the current tree.
func (m *Manager) AccumulateEdit(edit types.EditInfo) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.language == nil {
		return
	}
	if m.tree != nil {
		m.tree.Edit(edit.InputEdit())
	}
	m.dirty = true
}

// Update reparses buf if it changed since the last call and recomputes
// highlights. It reports whether highlights changed.
func (m *Manager) Update(ctx context.Context, buf buffer.Buffer) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.dirty || m.language == nil {
		return false, nil
	}
	tree, err := m.highlighter.Parse(ctx, buf, m.language, m.tree)
	if err != nil {
		return false, err
	}
	res, err := m.highlighter.Highlight(tree, buf, m.language)
	if err != nil {
		tree.Close()
		// A broken query will not fix itself; stop trying.
		m.language = nil
		m.reset()
		return false, err
	}
	if m.tree != nil {
		m.tree.Close()
	}
	m.tree = tree
	m.highlights = res
	m.dirty = false
	return true, nil
}

// HighlightsForLine returns the syntax ranges on line.
func (m *Manager) HighlightsForLine(line int) []types.StyledRange {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.highlights[line]
}

// Close releases the syntax tree.
func (m *Manager) Close() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.reset()
}

func (m *Manager) reset() {
	if m.tree != nil {
		m.tree.Close()
		m.tree = nil
	}
	m.highlights = nil
	m.dirty = false
}
