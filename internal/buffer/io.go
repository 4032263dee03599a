package buffer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/kgilper/kpad/internal/types"
)

// Load builds a buffer from raw file bytes. The line ending is CRLF when
// any "\r\n" is present; the stored text is always "\n"-joined. Invalid
// UTF-8 is replaced with U+FFFD.
func Load(raw []byte, kind Kind) Buffer {
	text := string(raw)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}
	ending := types.DetectLineEnding(text)
	text = NormalizeNewlines(text)

	var buf Buffer
	if kind == KindRope {
		buf = newRopeBufferFromText(text)
	} else {
		buf = newSliceBufferFromText(text)
	}
	buf.SetLineEnding(ending)
	return buf
}

// Serialize returns the document with its line ending reapplied.
func Serialize(buf Buffer) []byte {
	text := buf.String()
	if buf.LineEnding() == types.CRLF {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	return []byte(text)
}

// WriteTo streams the document to w chunk by chunk, converting line
// endings on the fly.
func WriteTo(w io.Writer, buf Buffer) (int64, error) {
	bw := bufio.NewWriter(w)
	crlf := buf.LineEnding() == types.CRLF
	var written int64

	err := buf.EachChunk(func(chunk string) error {
		if crlf {
			chunk = strings.ReplaceAll(chunk, "\n", "\r\n")
		}
		n, err := bw.WriteString(chunk)
		written += int64(n)
		return err
	})
	if err != nil {
		return written, fmt.Errorf("write document: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return written, fmt.Errorf("flush document: %w", err)
	}
	return written, nil
}

// LoadFile reads path into a buffer whose kind is chosen by KindFor.
// A missing file yields an empty buffer and no error.
func LoadFile(path, strategy string, threshold int) (Buffer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(KindFor(strategy, 0, threshold)), nil
		}
		return nil, fmt.Errorf("failed to read file '%s': %w", path, err)
	}
	return Load(raw, KindFor(strategy, len(raw), threshold)), nil
}

// SaveFile writes buf to path, creating or truncating it.
func SaveFile(path string, buf Buffer) (int64, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to open '%s' for writing: %w", path, err)
	}
	n, err := WriteTo(f, buf)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		return n, fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	return n, nil
}
