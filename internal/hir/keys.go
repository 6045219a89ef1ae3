// Package hir builds and queries the semantic graph of a Quill workspace:
// modules, scopes, symbols, sources and types stored in generational
// arenas, with reference resolution, shallow type inference and
// position-based queries on top.
package hir

import "fmt"

// key packs a slot index into the low 32 bits and a generation into the
// high 32 bits. Generation 0 is never allocated, so the zero value of
// every key type is the null key.
type key uint64

func makeKey(index, generation uint32) key {
	return key(uint64(generation)<<32 | uint64(index))
}

func (k key) index() uint32      { return uint32(k) }
func (k key) generation() uint32 { return uint32(k >> 32) }
func (k key) isNull() bool       { return k == 0 }

func (k key) String() string {
	if k.isNull() {
		return "null"
	}
	return fmt.Sprintf("%d:%d", k.index(), k.generation())
}

// Module identifies a ModuleData entry.
type Module uint64

// Scope identifies a ScopeData entry.
type Scope uint64

// Symbol identifies a SymbolData entry.
type Symbol uint64

// Source identifies a SourceData entry.
type Source uint64

// Type identifies a TypeData entry.
type Type uint64

func (m Module) IsNull() bool { return key(m).isNull() }
func (s Scope) IsNull() bool  { return key(s).isNull() }
func (s Symbol) IsNull() bool { return key(s).isNull() }
func (s Source) IsNull() bool { return key(s).isNull() }
func (t Type) IsNull() bool   { return key(t).isNull() }

func (m Module) String() string { return "Module(" + key(m).String() + ")" }
func (s Scope) String() string  { return "Scope(" + key(s).String() + ")" }
func (s Symbol) String() string { return "Symbol(" + key(s).String() + ")" }
func (s Source) String() string { return "Source(" + key(s).String() + ")" }
func (t Type) String() string   { return "Type(" + key(t).String() + ")" }
