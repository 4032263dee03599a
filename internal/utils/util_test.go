package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuneIndexToByteOffset(t *testing.T) {
	line := []byte("aé日b")
	tests := []struct {
		rune, want int
	}{
		{-1, 0}, {0, 0}, {1, 1}, {2, 3}, {3, 6}, {4, 7}, {9, 7},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RuneIndexToByteOffset(line, tt.rune), "rune %d", tt.rune)
	}
}

func TestByteOffsetToRuneIndex(t *testing.T) {
	line := []byte("aé日b")
	tests := []struct {
		offset, want int
	}{
		{0, 0}, {1, 1}, {2, 1}, {3, 2}, {5, 2}, {6, 3}, {7, 4}, {99, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ByteOffsetToRuneIndex(line, tt.offset), "offset %d", tt.offset)
	}
}
