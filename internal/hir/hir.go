package hir

import "iter"

// Hir is the semantic graph of a workspace. It is not safe for concurrent
// use; callers serialize access (see internal/workspace).
//
// Keys are only meaningful within the graph that issued them; using a key
// from another Hir is undefined.
type Hir struct {
	staticModule  Module
	virtualSource Source

	modules arena[Module, ModuleData]
	scopes  arena[Scope, ScopeData]
	symbols arena[Symbol, SymbolData]
	sources arena[Source, SourceData]
	types   arena[Type, TypeData]

	builtinTypes BuiltinTypes
	resolver     ModuleResolver
}

// New returns an empty, prepared graph with the default import strategy.
func New() *Hir {
	h := &Hir{resolver: DefaultResolver{}}
	h.prepare()
	return h
}

// SetModuleResolver swaps the import URL strategy. Passing nil restores
// the default.
func (h *Hir) SetModuleResolver(r ModuleResolver) {
	if r == nil {
		r = DefaultResolver{}
	}
	h.resolver = r
}

// StaticModule returns the root namespace module.
func (h *Hir) StaticModule() Module { return h.staticModule }

// VirtualSource returns the graph-owned synthetic definition source.
func (h *Hir) VirtualSource() Source { return h.virtualSource }

// Builtins exposes the interned primitive type keys.
func (h *Hir) Builtins() BuiltinTypes { return h.builtinTypes }

// prepare ensures the graph's permanent entities exist: the static module
// with its scope, the virtual source, and the builtin types.
func (h *Hir) prepare() {
	if h.staticModule.IsNull() {
		scope := h.scopes.Insert(ScopeData{})
		h.staticModule = h.modules.Insert(ModuleData{
			Scope:     scope,
			Kind:      StaticModuleKind(),
			Protected: true,
		})
	}
	if h.virtualSource.IsNull() {
		h.virtualSource = h.sources.Insert(SourceData{
			URL:    VirtualSourceURL,
			Kind:   SourceDef,
			Module: h.staticModule,
		})
	}
	if !h.builtinTypes.initialized() {
		mk := func(tag TypeKindTag) Type {
			return h.types.Insert(TypeData{Protected: true, Kind: TypeKind{Tag: tag}})
		}
		h.builtinTypes = BuiltinTypes{
			Module:    mk(TypeModule),
			Int:       mk(TypeInt),
			Float:     mk(TypeFloat),
			Bool:      mk(TypeBool),
			Char:      mk(TypeChar),
			String:    mk(TypeString),
			Timestamp: mk(TypeTimestamp),
			Void:      mk(TypeVoid),
			Unknown:   mk(TypeUnknown),
		}
	}
}

// SymbolData returns the symbol's data, or nil for a stale key. Null keys
// panic: they indicate a caller bug, not a removed entity.
func (h *Hir) SymbolData(s Symbol) *SymbolData { return h.symbols.Get(s) }

// ScopeData returns the scope's data, or nil for a stale key.
func (h *Hir) ScopeData(s Scope) *ScopeData { return h.scopes.Get(s) }

// ModuleData returns the module's data, or nil for a stale key.
func (h *Hir) ModuleData(m Module) *ModuleData { return h.modules.Get(m) }

// SourceData returns the source's data, or nil for a stale key.
func (h *Hir) SourceData(s Source) *SourceData { return h.sources.Get(s) }

// TypeData returns the type's data, or nil for a stale key.
func (h *Hir) TypeData(t Type) *TypeData { return h.types.Get(t) }

func (h *Hir) mustSymbol(s Symbol) *SymbolData {
	d := h.symbols.Get(s)
	if d == nil {
		panic("hir: symbol not found: " + s.String())
	}
	return d
}

func (h *Hir) mustScope(s Scope) *ScopeData {
	d := h.scopes.Get(s)
	if d == nil {
		panic("hir: scope not found: " + s.String())
	}
	return d
}

func (h *Hir) mustModule(m Module) *ModuleData {
	d := h.modules.Get(m)
	if d == nil {
		panic("hir: module not found: " + m.String())
	}
	return d
}

func (h *Hir) mustSource(s Source) *SourceData {
	d := h.sources.Get(s)
	if d == nil {
		panic("hir: source not found: " + s.String())
	}
	return d
}

// Symbols iterates all live symbols in slot order.
func (h *Hir) Symbols() iter.Seq2[Symbol, *SymbolData] { return h.symbols.All() }

// Scopes iterates all live scopes in slot order.
func (h *Hir) Scopes() iter.Seq2[Scope, *ScopeData] { return h.scopes.All() }

// Modules iterates all live modules in slot order.
func (h *Hir) Modules() iter.Seq2[Module, *ModuleData] { return h.modules.All() }

// Sources iterates all live sources in slot order.
func (h *Hir) Sources() iter.Seq2[Source, *SourceData] { return h.sources.All() }

// Types iterates all live types in slot order.
func (h *Hir) Types() iter.Seq2[Type, *TypeData] { return h.types.All() }

// SymbolCount returns the number of live symbols.
func (h *Hir) SymbolCount() int { return h.symbols.Len() }

// ScopeCount returns the number of live scopes.
func (h *Hir) ScopeCount() int { return h.scopes.Len() }
