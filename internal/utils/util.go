// Package utils holds rune/byte offset conversions shared by the buffer
// and highlighter packages.
package utils

import "unicode/utf8"

// RuneIndexToByteOffset converts a rune index to a byte offset in line.
// Indexes past the end clamp to len(line).
func RuneIndexToByteOffset(line []byte, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	byteOffset := 0
	for currentRune := 0; byteOffset < len(line); currentRune++ {
		if currentRune == runeIndex {
			return byteOffset
		}
		_, size := utf8.DecodeRune(line[byteOffset:])
		byteOffset += size
	}
	return len(line)
}

// ByteOffsetToRuneIndex converts a byte offset to a rune index in line.
// An offset inside a multi-byte rune maps to that rune's index.
func ByteOffsetToRuneIndex(line []byte, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	runeIndex := 0
	for currentOffset := 0; currentOffset < byteOffset; runeIndex++ {
		_, size := utf8.DecodeRune(line[currentOffset:])
		if currentOffset+size > byteOffset {
			break
		}
		currentOffset += size
	}
	return runeIndex
}
