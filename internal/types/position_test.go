package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Position
		want int
	}{
		{"equal", Position{1, 2}, Position{1, 2}, 0},
		{"earlier line", Position{0, 9}, Position{1, 0}, -1},
		{"later column", Position{2, 5}, Position{2, 3}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
			assert.Equal(t, -tt.want, tt.b.Compare(tt.a))
		})
	}
}

func TestOrder(t *testing.T) {
	lo, hi := Order(Position{3, 1}, Position{0, 4})
	assert.Equal(t, Position{0, 4}, lo)
	assert.Equal(t, Position{3, 1}, hi)
}

func TestLineEnding(t *testing.T) {
	assert.Equal(t, CRLF, DetectLineEnding("a\r\nb\nc"))
	assert.Equal(t, LF, DetectLineEnding("a\nb\rc"))
	assert.Equal(t, "\r\n", CRLF.Sequence())
	assert.Equal(t, LF, CRLF.Toggle())
	assert.Equal(t, "LF", LF.String())
}
