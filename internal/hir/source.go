package hir

import "quill/internal/source"

// SourceKind distinguishes executable scripts from definition files.
type SourceKind uint8

const (
	SourceScript SourceKind = iota
	SourceDef
)

func (k SourceKind) String() string {
	if k == SourceDef {
		return "def"
	}
	return "script"
}

// SourceData describes one text document known to the graph. URLs are
// treated as opaque canonical identity: two sources are the same document
// exactly when their URLs are byte-equal.
type SourceData struct {
	URL    string
	Kind   SourceKind
	Module Module
}

// SourceInfo records where an entity came from. A zero Source means the
// entity is synthetic (for example the static module scope); zero ranges
// mean the entity has no corresponding text.
type SourceInfo struct {
	Source         Source
	TextRange      source.TextRange
	SelectionRange source.TextRange
	HasRange       bool
	HasSelection   bool
}

// Is reports whether the entity originates from the given source.
func (s SourceInfo) Is(src Source) bool {
	return !s.Source.IsNull() && s.Source == src
}

func rangeInfo(src Source, rng source.TextRange) SourceInfo {
	return SourceInfo{Source: src, TextRange: rng, HasRange: true}
}

func selectionInfo(src Source, rng, selection source.TextRange) SourceInfo {
	return SourceInfo{
		Source:         src,
		TextRange:      rng,
		SelectionRange: selection,
		HasRange:       true,
		HasSelection:   true,
	}
}
