package types

import "strings"

// LineEnding is the terminator style detected when a document is loaded.
type LineEnding int

const (
	LF LineEnding = iota
	CRLF
)

// Sequence returns the bytes written between lines.
func (le LineEnding) Sequence() string {
	if le == CRLF {
		return "\r\n"
	}
	return "\n"
}

func (le LineEnding) String() string {
	if le == CRLF {
		return "CRLF"
	}
	return "LF"
}

// Toggle returns the other style.
func (le LineEnding) Toggle() LineEnding {
	if le == CRLF {
		return LF
	}
	return CRLF
}

// DetectLineEnding reports CRLF when the text contains at least one "\r\n".
func DetectLineEnding(text string) LineEnding {
	if strings.Contains(text, "\r\n") {
		return CRLF
	}
	return LF
}
