package hir

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Schema version of the snapshot payload - increment when the layout
// changes. Snapshots are a debugging and caching artifact, not a
// compatibility-bearing format.
const snapshotSchemaVersion uint16 = 1

// Snapshot is a flattened, self-contained export of the graph. Entities
// reference each other through their packed keys.
type Snapshot struct {
	Schema  uint16
	Modules []ModuleSnapshot
	Scopes  []ScopeSnapshot
	Symbols []SymbolSnapshot
	Sources []SourceSnapshot
	Types   []TypeSnapshot
}

type ModuleSnapshot struct {
	Key       uint64
	URL       string
	Static    bool
	Scope     uint64
	Docs      string
	Protected bool
	Sources   []uint64
}

type ScopeSnapshot struct {
	Key          uint64
	ParentScope  uint64
	ParentSymbol uint64
	Symbols      []uint64
	Hoisted      []uint64
	Source       uint64
	Start, End   uint32
}

type SymbolSnapshot struct {
	Key          uint64
	Kind         string
	Name         string
	ParentScope  uint64
	Export       bool
	Type         uint64
	TargetSymbol uint64
	TargetModule uint64
	Source       uint64
	Start, End   uint32
}

type SourceSnapshot struct {
	Key    uint64
	URL    string
	Def    bool
	Module uint64
}

type TypeSnapshot struct {
	Key       uint64
	Rendered  string
	Protected bool
}

// Snapshot flattens the current graph.
func (h *Hir) Snapshot() *Snapshot {
	snap := &Snapshot{Schema: snapshotSchemaVersion}

	for m, data := range h.modules.All() {
		ms := ModuleSnapshot{
			Key:       uint64(m),
			URL:       data.URL(),
			Static:    data.Kind.Tag == ModuleStatic,
			Scope:     uint64(data.Scope),
			Docs:      data.Docs,
			Protected: data.Protected,
		}
		for _, src := range data.Sources {
			ms.Sources = append(ms.Sources, uint64(src))
		}
		snap.Modules = append(snap.Modules, ms)
	}

	for s, data := range h.scopes.All() {
		ss := ScopeSnapshot{
			Key:          uint64(s),
			ParentScope:  uint64(data.Parent.Scope),
			ParentSymbol: uint64(data.Parent.Symbol),
			Source:       uint64(data.Source.Source),
			Start:        data.Source.TextRange.Start,
			End:          data.Source.TextRange.End,
		}
		for _, sym := range data.Symbols {
			ss.Symbols = append(ss.Symbols, uint64(sym))
		}
		for _, sym := range data.Hoisted {
			ss.Hoisted = append(ss.Hoisted, uint64(sym))
		}
		snap.Scopes = append(snap.Scopes, ss)
	}

	for sym, data := range h.symbols.All() {
		target := data.Target()
		snap.Symbols = append(snap.Symbols, SymbolSnapshot{
			Key:          uint64(sym),
			Kind:         data.KindName(),
			Name:         data.Name(),
			ParentScope:  uint64(data.ParentScope),
			Export:       data.Export,
			Type:         uint64(data.Ty),
			TargetSymbol: uint64(target.Symbol),
			TargetModule: uint64(target.Module),
			Source:       uint64(data.Source.Source),
			Start:        data.Source.TextRange.Start,
			End:          data.Source.TextRange.End,
		})
	}

	for src, data := range h.sources.All() {
		snap.Sources = append(snap.Sources, SourceSnapshot{
			Key:    uint64(src),
			URL:    data.URL,
			Def:    data.Kind == SourceDef,
			Module: uint64(data.Module),
		})
	}

	for t, data := range h.types.All() {
		snap.Types = append(snap.Types, TypeSnapshot{
			Key:       uint64(t),
			Rendered:  h.FormatType(t),
			Protected: data.Protected,
		})
	}

	return snap
}

// EncodeSnapshot writes the msgpack snapshot of the graph to w.
func (h *Hir) EncodeSnapshot(w io.Writer) error {
	if err := msgpack.NewEncoder(w).Encode(h.Snapshot()); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a snapshot payload back. Schema mismatches fail.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Schema != snapshotSchemaVersion {
		return nil, fmt.Errorf("snapshot schema %d not supported (want %d)", snap.Schema, snapshotSchemaVersion)
	}
	return &snap, nil
}

// KindName returns a short stable name for the symbol's kind, used by the
// snapshot format and diagnostic tooling.
func (d *SymbolData) KindName() string {
	switch d.Kind.(type) {
	case *FnSymbol:
		return "fn"
	case *OpSymbol:
		return "op"
	case *DeclSymbol:
		return "decl"
	case *RefSymbol:
		return "ref"
	case *PathSymbol:
		return "path"
	case *BlockSymbol:
		return "block"
	case *LitSymbol:
		return "lit"
	case *UnarySymbol:
		return "unary"
	case *BinarySymbol:
		return "binary"
	case *ArraySymbol:
		return "array"
	case *IndexSymbol:
		return "index"
	case *ObjectSymbol:
		return "object"
	case *CallSymbol:
		return "call"
	case *ClosureSymbol:
		return "closure"
	case *IfSymbol:
		return "if"
	case *LoopSymbol:
		return "loop"
	case *ForSymbol:
		return "for"
	case *WhileSymbol:
		return "while"
	case *BreakSymbol:
		return "break"
	case *ContinueSymbol:
		return "continue"
	case *ReturnSymbol:
		return "return"
	case *ThrowSymbol:
		return "throw"
	case *SwitchSymbol:
		return "switch"
	case *ImportSymbol:
		return "import"
	case *ExportSymbol:
		return "export"
	case *TrySymbol:
		return "try"
	case *DiscardSymbol:
		return "discard"
	default:
		return "unknown"
	}
}
