package clipboard

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/kgilper/kpad/internal/logger"
)

// Backend is a clipboard the manager can mirror text to.
type Backend interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemBackend struct{}

func (systemBackend) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemBackend) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Manager holds copied text. It always keeps an in-process register and,
// when a backend is available, mirrors to it as well.
type Manager struct {
	mu       sync.Mutex
	register string
	backend  Backend
}

// NewManager creates a clipboard manager. useSystem selects the platform
// clipboard when the platform supports one.
func NewManager(useSystem bool) *Manager {
	if useSystem && !clipboard.Unsupported {
		return NewManagerWithBackend(systemBackend{})
	}
	if useSystem {
		logger.Infof("clipboard: system clipboard unsupported, using internal register")
	}
	return NewManagerWithBackend(nil)
}

// NewManagerWithBackend creates a manager mirroring to b (nil for none).
func NewManagerWithBackend(b Backend) *Manager {
	return &Manager{backend: b}
}

// UsesSystem reports whether a backend is attached.
func (m *Manager) UsesSystem() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.backend != nil
}

// Copy stores text. The register is always updated; an error means only
// the backend write failed.
func (m *Manager) Copy(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.register = text
	logger.DebugTagf("clipboard", "copied %d bytes", len(text))
	if m.backend == nil {
		return nil
	}
	if err := m.backend.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard: write: %w", err)
	}
	return nil
}

// Paste returns the backend's text, falling back to the register when the
// backend fails. The error reports the backend failure.
func (m *Manager) Paste() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.backend == nil {
		return m.register, nil
	}
	text, err := m.backend.ReadAll()
	if err != nil {
		return m.register, fmt.Errorf("clipboard: read: %w", err)
	}
	return text, nil
}
