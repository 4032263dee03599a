package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Language represents a programming language with its syntax highlighting configuration
type Language struct {
	// Name is the display name of the language
	Name string

	// TreeSitterLang is the tree-sitter language instance
	TreeSitterLang *sitter.Language

	// Extensions maps file extensions to this language
	Extensions []string

	// Query is the tree-sitter highlight query source
	Query string
}

// GetQuery returns the highlight query for this language.
func (l *Language) GetQuery() []byte {
	return []byte(l.Query)
}
