// plugins/wordcount/wordcount.go
package wordcount

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/kgilper/kpad/internal/plugin"
)

// Ensure WordCount implements plugin.Plugin
var _ plugin.Plugin = (*WordCount)(nil)

// WordCount provides the wc command: lines, words and characters of the
// selection, or of the whole document when nothing is selected.
type WordCount struct{}

// New creates a new instance of the WordCount plugin.
func New() plugin.Plugin {
	return &WordCount{}
}

// Name returns the unique name of the plugin.
func (p *WordCount) Name() string {
	return "wordcount"
}

// Initialize registers the wc command.
func (p *WordCount) Initialize(api plugin.API) error {
	err := api.RegisterCommand(plugin.Command{
		Name:        "wc",
		Description: "Count lines, words and characters",
		Source:      "builtin",
		Run:         p.executeWordCount,
	})
	if err != nil {
		return fmt.Errorf("failed to register 'wc' command: %w", err)
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this simple plugin).
func (p *WordCount) Shutdown() error {
	return nil
}

func (p *WordCount) executeWordCount(_ context.Context, h *plugin.Handle, _ []string) error {
	scope := "document"
	text, err := h.SelectedText()
	if err != nil {
		return err
	}
	if text == "" {
		if text, err = h.Text(); err != nil {
			return err
		}
	} else {
		scope = "selection"
	}

	lines := strings.Count(text, "\n") + 1
	msg := fmt.Sprintf("%s: %d lines, %d words, %d chars", scope, lines, countWords(text), len([]rune(text)))
	return h.Status(msg)
}

// countWords counts maximal runs of non-space runes.
func countWords(s string) int {
	count := 0
	inWord := false
	for _, r := range s {
		if !unicode.IsSpace(r) {
			if !inWord {
				count++
				inWord = true
			}
		} else {
			inWord = false
		}
	}
	return count
}
