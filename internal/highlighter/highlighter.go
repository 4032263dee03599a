package highlighter

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/kgilper/kpad/internal/buffer"
	"github.com/kgilper/kpad/internal/highlighter/lang"
	"github.com/kgilper/kpad/internal/logger"
	"github.com/kgilper/kpad/internal/types"
	"github.com/kgilper/kpad/internal/utils"
)

// HighlightResult maps line number -> styled ranges on that line.
type HighlightResult map[int][]types.StyledRange

// Highlighter service manages parsing and querying syntax trees.
type Highlighter struct {
	parser  *sitter.Parser
	mu      sync.Mutex
	queries map[*lang.Language]*sitter.Query
}

// NewHighlighter creates a new highlighter instance.
func NewHighlighter() *Highlighter {
	RegisterLanguages()
	return &Highlighter{
		parser:  sitter.NewParser(),
		queries: make(map[*lang.Language]*sitter.Query),
	}
}

// GetLanguage returns the language for filePath, or nil if none matches.
func (h *Highlighter) GetLanguage(filePath string) *lang.Language {
	return lang.GetForFile(filePath)
}

// Parse parses buf. Passing the previous tree, already edited with every
// change since it was produced, makes the parse incremental.
func (h *Highlighter) Parse(ctx context.Context, buf buffer.Buffer, l *lang.Language, old *sitter.Tree) (*sitter.Tree, error) {
	if l == nil {
		return nil, fmt.Errorf("highlighter: no language")
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	h.parser.SetLanguage(l.TreeSitterLang)
	tree, err := h.parser.ParseCtx(ctx, old, []byte(buf.String()))
	if err != nil {
		return nil, fmt.Errorf("highlighter: parse %s: %w", l.Name, err)
	}
	return tree, nil
}

func (h *Highlighter) query(l *lang.Language) (*sitter.Query, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if q, ok := h.queries[l]; ok {
		return q, nil
	}
	q, err := sitter.NewQuery(l.GetQuery(), l.TreeSitterLang)
	if err != nil {
		return nil, fmt.Errorf("highlighter: query for %s: %w", l.Name, err)
	}
	h.queries[l] = q
	return q, nil
}

// Highlight runs the language's highlight query over tree. Captures that
// span lines are split into one range per line.
func (h *Highlighter) Highlight(tree *sitter.Tree, buf buffer.Buffer, l *lang.Language) (HighlightResult, error) {
	q, err := h.query(l)
	if err != nil {
		return nil, err
	}

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, tree.RootNode())

	result := make(HighlightResult)
	lines := make(map[int]string)
	lineText := func(n int) string {
		s, ok := lines[n]
		if !ok {
			s = buf.Line(n)
			lines[n] = s
		}
		return s
	}

	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			style := CaptureNameToStyleName(q.CaptureNameForId(capture.Index))
			start, end := capture.Node.StartPoint(), capture.Node.EndPoint()

			for row := int(start.Row); row <= int(end.Row) && row < buf.LineCount(); row++ {
				text := lineText(row)
				from, to := 0, utf8.RuneCountInString(text)
				if row == int(start.Row) {
					from = utils.ByteOffsetToRuneIndex([]byte(text), int(start.Column))
				}
				if row == int(end.Row) {
					to = utils.ByteOffsetToRuneIndex([]byte(text), int(end.Column))
				}
				if to > from {
					result[row] = append(result[row], types.StyledRange{StartCol: from, EndCol: to, StyleName: style})
				}
			}
		}
	}

	logger.DebugTagf("highlight", "%s: highlights on %d lines", l.Name, len(result))
	return result, nil
}

// CaptureNameToStyleName maps a capture such as "keyword.control" to the
// theme style "keyword".
func CaptureNameToStyleName(captureName string) string {
	captureName = strings.TrimPrefix(captureName, "@")
	if i := strings.IndexByte(captureName, '.'); i != -1 {
		return captureName[:i]
	}
	return captureName
}
