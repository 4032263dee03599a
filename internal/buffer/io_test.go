package buffer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kgilper/kpad/internal/types"
)

func TestSerializePreservesLineEnding(t *testing.T) {
	eachKind(t, func(t *testing.T, load func(string) Buffer) {
		assert.Equal(t, "a\nb", string(Serialize(load("a\nb"))))
		assert.Equal(t, "a\r\nb", string(Serialize(load("a\r\nb"))))

		toggled := load("a\nb\n")
		toggled.SetLineEnding(types.CRLF)
		assert.Equal(t, "a\r\nb\r\n", string(Serialize(toggled)))
	})
}

func TestLoadSanitizesInvalidUTF8(t *testing.T) {
	buf := Load([]byte("a\xffb"), KindLines)
	assert.Equal(t, "a�b", buf.Line(0))
	assert.Equal(t, 3, buf.LineLength(0))
}

func TestWriteToStreamsConvertedChunks(t *testing.T) {
	text := strings.Repeat("some words on a line\n", 200)
	crlfText := strings.ReplaceAll(text, "\n", "\r\n")

	eachKind(t, func(t *testing.T, load func(string) Buffer) {
		var out bytes.Buffer
		n, err := WriteTo(&out, load(crlfText))
		require.NoError(t, err)
		assert.Equal(t, int64(len(crlfText)), n)
		assert.Equal(t, crlfText, out.String())

		out.Reset()
		_, err = WriteTo(&out, load(text))
		require.NoError(t, err)
		assert.Equal(t, text, out.String())
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteToReportsErrors(t *testing.T) {
	_, err := WriteTo(failingWriter{}, Load([]byte(strings.Repeat("x", 10000)), KindRope))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestLoadAndSaveFile(t *testing.T) {
	dir := t.TempDir()

	missing, err := LoadFile(filepath.Join(dir, "new.txt"), "auto", 1024)
	require.NoError(t, err)
	assert.Equal(t, 1, missing.LineCount())

	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\r\ntwo"), 0o644))

	buf, err := LoadFile(path, "auto", 4)
	require.NoError(t, err)
	assert.IsType(t, &RopeBuffer{}, buf)
	assert.Equal(t, types.CRLF, buf.LineEnding())

	buf.InsertText(pos(1, 3), "\nthree")
	_, err = SaveFile(path, buf)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\r\ntwo\r\nthree", string(raw))
}

func TestComputeStats(t *testing.T) {
	buf := Load([]byte("hello world\r\n\r\n"+strings.Repeat("x", 95)), KindLines)
	st := ComputeStats(buf)

	assert.Equal(t, 3, st.Lines)
	assert.Equal(t, 3, st.Words)
	assert.Equal(t, 11+95, st.Chars)
	assert.Equal(t, 11+95+2*2, st.Bytes)
	assert.Equal(t, types.CRLF, st.LineEnding)
	assert.Equal(t, 1, st.Histogram[0])
	assert.Equal(t, 1, st.Histogram[1])
	assert.Equal(t, 1, st.Histogram[9])
}
