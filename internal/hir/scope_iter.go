package hir

import "iter"

// scopeSymbols iterates the scope's direct symbols, ordered first, then
// hoisted, both in insertion order.
func (h *Hir) scopeSymbols(scope Scope) iter.Seq[Symbol] {
	return func(yield func(Symbol) bool) {
		data := h.scopes.Get(scope)
		if data == nil {
			return
		}
		for _, s := range data.Symbols {
			if !yield(s) {
				return
			}
		}
		for _, s := range data.Hoisted {
			if !yield(s) {
				return
			}
		}
	}
}

// ScopeSymbols is the exported form of scopeSymbols.
func (h *Hir) ScopeSymbols(scope Scope) iter.Seq[Symbol] {
	return h.scopeSymbols(scope)
}

// VisibleSymbolsFromSymbol iterates every symbol visible from the given
// symbol's position, nearest first.
//
// Within the starting scope the walk yields the ordered symbols that
// precede the start position, in reverse, then the scope's hoisted
// symbols. It then climbs: a symbol-parented scope continues in the owner
// symbol's scope from the owner's own position, so a hoisted owner (a
// function, say) hides the ordered symbols around it; a scope-parented
// scope yields the parent's full contents. The walk bottoms out in the
// static scope.
func (h *Hir) VisibleSymbolsFromSymbol(sym Symbol) iter.Seq[Symbol] {
	return func(yield func(Symbol) bool) {
		data := h.symbols.Get(sym)
		if data == nil || data.ParentScope.IsNull() {
			return
		}
		h.visibleFrom(data.ParentScope, sym, yield)
	}
}

// VisibleSymbolsFromOffset iterates the symbols visible at a text offset
// in a source, nearest first. When the offset falls inside a symbol the
// walk starts at that symbol; otherwise it starts at the end of the
// innermost scope covering the offset, falling back to the source's
// module scope.
func (h *Hir) VisibleSymbolsFromOffset(src Source, offset uint32) iter.Seq[Symbol] {
	return func(yield func(Symbol) bool) {
		if sym, ok := h.SymbolAt(src, offset, true); ok {
			data := h.mustSymbol(sym)
			if !data.ParentScope.IsNull() {
				h.visibleFrom(data.ParentScope, sym, yield)
				return
			}
		}
		scope, ok := h.ScopeAt(src, offset, true)
		if !ok {
			module := h.mustSource(src).Module
			if module.IsNull() {
				return
			}
			scope = h.mustModule(module).Scope
		}
		h.visibleFrom(scope, 0, yield)
	}
}

// visibleFrom drives the outward walk. A null cursor means "from the end
// of the scope": all ordered symbols are visible.
func (h *Hir) visibleFrom(scope Scope, cursor Symbol, yield func(Symbol) bool) {
	for {
		data := h.scopes.Get(scope)
		if data == nil {
			return
		}

		if cursor.IsNull() {
			for i := len(data.Symbols) - 1; i >= 0; i-- {
				if !yield(data.Symbols[i]) {
					return
				}
			}
		} else {
			at := -1
			for i, s := range data.Symbols {
				if s == cursor {
					at = i
					break
				}
			}
			// A hoisted cursor yields no ordered symbols: hoisted owners
			// (functions) do not see the bindings around them.
			for i := at - 1; i >= 0; i-- {
				if !yield(data.Symbols[i]) {
					return
				}
			}
		}

		for _, s := range data.Hoisted {
			if !yield(s) {
				return
			}
		}

		switch {
		case !data.Parent.Symbol.IsNull():
			owner := data.Parent.Symbol
			ownerData := h.symbols.Get(owner)
			if ownerData == nil || ownerData.ParentScope.IsNull() {
				return
			}
			cursor = owner
			scope = ownerData.ParentScope
		case !data.Parent.Scope.IsNull():
			cursor = 0
			scope = data.Parent.Scope
		default:
			return
		}
	}
}

// ownedScopes returns the scopes a symbol owns directly.
func ownedScopes(kind SymbolKind) []Scope {
	switch k := kind.(type) {
	case *FnSymbol:
		return []Scope{k.Scope}
	case *OpSymbol:
		return []Scope{k.Scope}
	case *DeclSymbol:
		if !k.ValueScope.IsNull() {
			return []Scope{k.ValueScope}
		}
	case *PathSymbol:
		return []Scope{k.Scope}
	case *BlockSymbol:
		return []Scope{k.Scope}
	case *BinarySymbol:
		return []Scope{k.Scope}
	case *ClosureSymbol:
		return []Scope{k.Scope}
	case *IfSymbol:
		scopes := make([]Scope, 0, len(k.Branches))
		for _, b := range k.Branches {
			scopes = append(scopes, b.Scope)
		}
		return scopes
	case *LoopSymbol:
		return []Scope{k.Scope}
	case *ForSymbol:
		return []Scope{k.Scope}
	case *WhileSymbol:
		return []Scope{k.Scope}
	case *TrySymbol:
		return []Scope{k.TryScope, k.CatchScope}
	case *ImportSymbol:
		return []Scope{k.Scope}
	}
	return nil
}

// DescendantSymbols appends every symbol transitively contained in sym's
// owned scopes to out and returns it. sym itself is not included.
func (h *Hir) DescendantSymbols(sym Symbol, out []Symbol) []Symbol {
	data := h.symbols.Get(sym)
	if data == nil {
		return out
	}
	for _, scope := range ownedScopes(data.Kind) {
		if scope.IsNull() {
			continue
		}
		for member := range h.scopeSymbols(scope) {
			out = append(out, member)
			out = h.DescendantSymbols(member, out)
		}
	}
	return out
}
