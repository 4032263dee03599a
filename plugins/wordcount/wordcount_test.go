package wordcount

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kgilper/kpad/internal/plugin"
	"github.com/kgilper/kpad/internal/types"
)

type host struct {
	text, selection, status string
}

func (h *host) Text() string                         { return h.text }
func (h *host) SetText(string) error                 { return nil }
func (h *host) HasSelection() bool                   { return h.selection != "" }
func (h *host) SelectedText() string                 { return h.selection }
func (h *host) ReplaceSelection(string) error        { return nil }
func (h *host) InsertText(string) error              { return nil }
func (h *host) GetCursor() types.Position            { return types.Position{} }
func (h *host) SetCursor(types.Position)             {}
func (h *host) CurrentLineText() string              { return "" }
func (h *host) SetCurrentLineText(string) error      { return nil }
func (h *host) FilePath() string                     { return "" }
func (h *host) SetStatus(f string, a ...interface{}) { h.status = fmt.Sprintf(f, a...) }

func TestCountWords(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"one", 1},
		{"  two\twords\n", 2},
		{"héllo wörld ünïcode", 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, countWords(tt.in), tt.in)
	}
}

func TestWCCommand(t *testing.T) {
	m := plugin.NewManager(plugin.NewRegistry(), nil, 0)
	require.NoError(t, m.Register(New()))
	m.InitializePlugins()

	h := &host{text: "hello world\nsecond line here"}
	require.NoError(t, m.Registry().Run(context.Background(), h, "wc", nil))
	assert.Equal(t, "document: 2 lines, 5 words, 28 chars", h.status)

	h.selection = "héllo"
	require.NoError(t, m.Registry().Run(context.Background(), h, "WC", nil))
	assert.Equal(t, "selection: 1 lines, 1 words, 5 chars", h.status)
}
