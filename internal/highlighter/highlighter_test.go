package highlighter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kgilper/kpad/internal/buffer"
	"github.com/kgilper/kpad/internal/types"
)

func styleAt(ranges []types.StyledRange, col int) string {
	for _, r := range ranges {
		if col >= r.StartCol && col < r.EndCol {
			return r.StyleName
		}
	}
	return ""
}

func TestLanguageLookup(t *testing.T) {
	h := NewHighlighter()
	for path, want := range map[string]string{
		"main.go":   "Go",
		"x/y.PY":    "Python",
		"app.mjs":   "JavaScript",
		"lib.rs":    "Rust",
		"notes.txt": "",
	} {
		l := h.GetLanguage(path)
		if want == "" {
			assert.Nil(t, l, path)
			continue
		}
		require.NotNil(t, l, path)
		assert.Equal(t, want, l.Name)
	}
}

func TestHighlightGo(t *testing.T) {
	src := "package main\n\n// greet says hi\nfunc greet() string {\n\treturn `multi\nline`\n}\n"
	buf := buffer.Load([]byte(src), buffer.KindLines)
	h := NewHighlighter()
	l := h.GetLanguage("main.go")

	tree, err := h.Parse(context.Background(), buf, l, nil)
	require.NoError(t, err)
	defer tree.Close()

	res, err := h.Highlight(tree, buf, l)
	require.NoError(t, err)

	assert.Equal(t, "keyword", styleAt(res[0], 0))
	assert.Equal(t, "comment", styleAt(res[2], 5))
	assert.Equal(t, "keyword", styleAt(res[3], 1))
	assert.Equal(t, "function", styleAt(res[3], 6))
	assert.Equal(t, "string", styleAt(res[4], 9), "raw string start")
	assert.Equal(t, "string", styleAt(res[5], 2), "raw string continues on next line")
}

func TestAllQueriesCompile(t *testing.T) {
	h := NewHighlighter()
	buf := buffer.Load([]byte("x"), buffer.KindLines)
	for _, path := range []string{"a.go", "a.py", "a.js", "a.rs"} {
		l := h.GetLanguage(path)
		require.NotNil(t, l)
		tree, err := h.Parse(context.Background(), buf, l, nil)
		require.NoError(t, err, path)
		_, err = h.Highlight(tree, buf, l)
		assert.NoError(t, err, path)
		tree.Close()
	}
}

func TestCaptureNameToStyleName(t *testing.T) {
	assert.Equal(t, "keyword", CaptureNameToStyleName("@keyword.control"))
	assert.Equal(t, "string", CaptureNameToStyleName("string"))
}

func TestHighlightExampleFile(t *testing.T) {
	path := filepath.Join("testdata", "example.go")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	buf := buffer.Load(raw, buffer.KindRope)

	h := NewHighlighter()
	l := h.GetLanguage(path)
	require.NotNil(t, l)
	tree, err := h.Parse(context.Background(), buf, l, nil)
	require.NoError(t, err)
	defer tree.Close()

	res, err := h.Highlight(tree, buf, l)
	require.NoError(t, err)
	assert.Equal(t, "keyword", styleAt(res[0], 0))

	var comments int
	for _, ranges := range res {
		for _, r := range ranges {
			if r.StyleName == "comment" {
				comments++
			}
		}
	}
	assert.Positive(t, comments)
}

func TestHighlightColumnsAreRunes(t *testing.T) {
	src := "package p\n\nfunc f() {\n\tx := \"日本\" // c\n\t_ = x\n}\n"
	buf := buffer.Load([]byte(src), buffer.KindLines)
	h := NewHighlighter()
	l := h.GetLanguage("p.go")

	tree, err := h.Parse(context.Background(), buf, l, nil)
	require.NoError(t, err)
	defer tree.Close()

	res, err := h.Highlight(tree, buf, l)
	require.NoError(t, err)

	assert.Contains(t, res[3], types.StyledRange{StartCol: 6, EndCol: 10, StyleName: "string"})
	assert.Contains(t, res[3], types.StyledRange{StartCol: 11, EndCol: 15, StyleName: "comment"})
	assert.Equal(t, "comment", styleAt(res[3], 14))
	assert.Equal(t, "", styleAt(res[3], 15))
}
