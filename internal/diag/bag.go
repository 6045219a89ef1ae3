package diag

import (
	"fmt"
	"sort"
)

// Bag is a bounded, sortable collection of diagnostics.
type Bag struct {
	items []Diagnostic
	max   uint16
}

func NewBag(max int) *Bag {
	return &Bag{
		items: make([]Diagnostic, 0, max),
		max:   uint16(max),
	}
}

// Add appends a diagnostic, honoring the limit.
// Returns false if the bag is full.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors reports whether at least one diagnostic has Severity >= Error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns a read-only view of the diagnostics.
// Callers must not modify the returned slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends the diagnostics from another bag, growing the limit when
// needed to fit everything.
func (b *Bag) Merge(other *Bag) {
	newTotal := len(b.items) + len(other.items)
	if uint16(newTotal) > b.max {
		b.max = uint16(newTotal)
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics by: URL, start, end, severity (desc), code (asc)
// for stable, deterministic output.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.URL != dj.Primary.URL {
			return di.Primary.URL < dj.Primary.URL
		}
		if di.Primary.Range.Start != dj.Primary.Range.Start {
			return di.Primary.Range.Start < dj.Primary.Range.Start
		}
		if di.Primary.Range.End != dj.Primary.Range.End {
			return di.Primary.Range.End < dj.Primary.Range.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup drops diagnostics with an identical code and primary span.
func (b *Bag) Dedup() {
	seen := make(map[string]bool)
	newItems := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := fmt.Sprintf("%s:%s", d.Code, d.Primary)
		if seen[key] {
			continue
		}
		seen[key] = true
		newItems = append(newItems, d)
	}
	b.items = newItems
}
