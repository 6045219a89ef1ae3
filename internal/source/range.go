package source

import (
	"fmt"
)

// TextRange is a half-open byte range [Start, End) inside one source text.
type TextRange struct {
	Start uint32
	End   uint32
}

// NewTextRange builds a range, normalizing inverted bounds.
func NewTextRange(start, end uint32) TextRange {
	if end < start {
		start, end = end, start
	}
	return TextRange{Start: start, End: end}
}

func (r TextRange) Empty() bool {
	return r.Start == r.End
}

func (r TextRange) Len() uint32 {
	return r.End - r.Start
}

// Contains reports whether the offset lies strictly inside the range.
func (r TextRange) Contains(offset uint32) bool {
	return offset >= r.Start && offset < r.End
}

// ContainsInclusive additionally accepts the end boundary, so that a
// cursor placed right after the last byte still hits the range.
func (r TextRange) ContainsInclusive(offset uint32) bool {
	return offset >= r.Start && offset <= r.End
}

// ContainsRange reports whether other lies fully inside r.
func (r TextRange) ContainsRange(other TextRange) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Cover extends the range to include other.
func (r TextRange) Cover(other TextRange) TextRange {
	if other.Start < r.Start {
		r.Start = other.Start
	}
	if other.End > r.End {
		r.End = other.End
	}
	return r
}

func (r TextRange) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// Span pins a text range to the source it came from. Diagnostics carry
// spans; the HIR itself references sources by key and only uses ranges.
type Span struct {
	URL   string
	Range TextRange
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%s", s.URL, s.Range)
}
