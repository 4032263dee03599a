package buffer

import (
	"strings"
	"unicode/utf8"

	"github.com/kgilper/kpad/internal/types"
)

// HistogramBuckets is the number of line-length buckets; each covers ten
// runes and the last collects everything longer.
const HistogramBuckets = 10

// Stats summarizes a document.
type Stats struct {
	Lines      int
	Words      int
	Chars      int // excluding line terminators
	Bytes      int // as saved, including terminators
	LineEnding types.LineEnding
	Histogram  [HistogramBuckets]int
}

// ComputeStats walks every line of buf once.
func ComputeStats(buf Buffer) Stats {
	st := Stats{
		Lines:      buf.LineCount(),
		LineEnding: buf.LineEnding(),
	}
	for i := 0; i < st.Lines; i++ {
		line := buf.Line(i)
		n := utf8.RuneCountInString(line)
		st.Chars += n
		st.Bytes += len(line)
		st.Words += len(strings.Fields(line))
		st.Histogram[min(n/10, HistogramBuckets-1)]++
	}
	st.Bytes += (st.Lines - 1) * len(st.LineEnding.Sequence())
	return st
}
