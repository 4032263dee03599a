package types

import sitter "github.com/smacker/go-tree-sitter"

// EditInfo describes one buffer mutation in tree-sitter coordinates:
// byte offsets into the "\n"-joined text and row/byte-column points.
type EditInfo struct {
	StartIndex     uint32
	OldEndIndex    uint32
	NewEndIndex    uint32
	StartPosition  sitter.Point
	OldEndPosition sitter.Point
	NewEndPosition sitter.Point
}

// InputEdit converts the info to the form accepted by sitter.Tree.Edit.
func (e EditInfo) InputEdit() sitter.EditInput {
	return sitter.EditInput{
		StartIndex:  e.StartIndex,
		OldEndIndex: e.OldEndIndex,
		NewEndIndex: e.NewEndIndex,
		StartPoint:  e.StartPosition,
		OldEndPoint: e.OldEndPosition,
		NewEndPoint: e.NewEndPosition,
	}
}

// StyledRange is a highlighted span on a single line, in rune columns.
type StyledRange struct {
	StartCol  int
	EndCol    int // exclusive
	StyleName string
}
