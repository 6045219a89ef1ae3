package hir

// ScopeParent is either a scope or a symbol. Scopes owned by a symbol
// (function bodies, closures, decl values, try/catch blocks and so on)
// are parented by that symbol, which lets the visibility walk continue in
// the outer scope from the owner's own position.
type ScopeParent struct {
	Scope  Scope
	Symbol Symbol
}

func (p ScopeParent) IsNull() bool {
	return p.Scope.IsNull() && p.Symbol.IsNull()
}

// ScopeData is one lexical scope: an ordered symbol list plus a hoisted
// set visible regardless of position. Both keep insertion order so that
// iteration, and therefore resolution, is deterministic.
type ScopeData struct {
	Source  SourceInfo
	Parent  ScopeParent
	Symbols []Symbol
	Hoisted []Symbol
}

// ContainsSymbol reports whether the symbol is directly in this scope,
// ordered or hoisted.
func (s *ScopeData) ContainsSymbol(sym Symbol) bool {
	for _, existing := range s.Hoisted {
		if existing == sym {
			return true
		}
	}
	for _, existing := range s.Symbols {
		if existing == sym {
			return true
		}
	}
	return false
}

// addSymbolToScope places sym into the scope, hoisted or ordered, and
// records the back pointer. A symbol belongs to at most one scope; a
// second placement is a builder bug and panics.
func (h *Hir) addSymbolToScope(scope Scope, sym Symbol, hoist bool) {
	if scope.IsNull() {
		panic("hir: scope cannot be null")
	}
	if sym.IsNull() {
		panic("hir: symbol cannot be null")
	}
	scopeData := h.mustScope(scope)
	if scopeData.ContainsSymbol(sym) {
		panic("hir: symbol already in scope")
	}
	if hoist {
		scopeData.Hoisted = append(scopeData.Hoisted, sym)
	} else {
		scopeData.Symbols = append(scopeData.Symbols, sym)
	}

	symData := h.mustSymbol(sym)
	if !symData.ParentScope.IsNull() {
		panic("hir: symbol already has a parent scope")
	}
	symData.ParentScope = scope
}

// setScopeParent links a scope to its parent exactly once.
func (h *Hir) setScopeParent(scope Scope, parent ScopeParent) {
	if parent.Scope == scope && !scope.IsNull() {
		panic("hir: scope cannot be its own parent")
	}
	scopeData := h.mustScope(scope)
	if !scopeData.Parent.IsNull() {
		panic("hir: scope already has a parent")
	}
	scopeData.Parent = parent
}

func scopeParentOf(s Scope) ScopeParent   { return ScopeParent{Scope: s} }
func symbolParentOf(s Symbol) ScopeParent { return ScopeParent{Symbol: s} }
