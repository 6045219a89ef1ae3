package source

import "sort"

// LineIndex maps byte offsets to 1-based line/column pairs.
// Offset-to-position mapping is a presentation concern; the semantic
// graph never consumes it.
type LineIndex struct {
	starts []uint32 // byte offset of every line start, starts[0] == 0
}

// NewLineIndex scans the text once and records line starts.
func NewLineIndex(text string) *LineIndex {
	starts := []uint32{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, uint32(i+1))
		}
	}
	return &LineIndex{starts: starts}
}

// Position returns the 1-based line and column for a byte offset.
// Offsets past the end of the text map to the last line.
func (ix *LineIndex) Position(offset uint32) (line, col uint32) {
	i := sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] > offset
	}) - 1
	if i < 0 {
		i = 0
	}
	return uint32(i + 1), offset - ix.starts[i] + 1
}

// LineCount reports the number of lines in the indexed text.
func (ix *LineIndex) LineCount() int {
	return len(ix.starts)
}
