package lang

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/kgilper/kpad/internal/logger"
)

var registry = struct {
	sync.RWMutex
	languages []*Language
	byExt     map[string]*Language
}{byExt: make(map[string]*Language)}

// Register adds a language and maps its extensions to it. A later
// registration of the same extension wins.
func Register(l *Language) {
	registry.Lock()
	defer registry.Unlock()

	registry.languages = append(registry.languages, l)
	for _, ext := range l.Extensions {
		ext = strings.ToLower(ext)
		if existing, ok := registry.byExt[ext]; ok {
			logger.Warnf("lang: extension %s already registered to %s, overriding with %s", ext, existing.Name, l.Name)
		}
		registry.byExt[ext] = l
	}
	logger.DebugTagf("highlight", "registered language %s with extensions %v", l.Name, l.Extensions)
}

// GetForFile returns the language for a file path by extension, or nil.
func GetForFile(filePath string) *Language {
	registry.RLock()
	defer registry.RUnlock()
	return registry.byExt[strings.ToLower(filepath.Ext(filePath))]
}

// GetByName returns the language registered under name, ignoring case.
func GetByName(name string) *Language {
	registry.RLock()
	defer registry.RUnlock()
	for _, l := range registry.languages {
		if strings.EqualFold(l.Name, name) {
			return l
		}
	}
	return nil
}

// GetAll returns all registered languages
func GetAll() []*Language {
	registry.RLock()
	defer registry.RUnlock()
	out := make([]*Language, len(registry.languages))
	copy(out, registry.languages)
	return out
}
