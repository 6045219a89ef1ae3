package hir

import "sort"

// ModuleByURL finds the module whose identity is the given URL.
func (h *Hir) ModuleByURL(url string) (Module, bool) {
	for m, data := range h.modules.All() {
		if data.Kind.Tag == ModuleURL && data.Kind.URL == url {
			return m, true
		}
	}
	return 0, false
}

// ModuleOfScope walks upward from a scope to the module that ultimately
// contains it. Returns false for detached scopes.
func (h *Hir) ModuleOfScope(scope Scope) (Module, bool) {
	for !scope.IsNull() {
		for m, data := range h.modules.All() {
			if data.Scope == scope {
				return m, true
			}
		}
		data := h.scopes.Get(scope)
		if data == nil {
			return 0, false
		}
		switch {
		case !data.Parent.Scope.IsNull():
			scope = data.Parent.Scope
		case !data.Parent.Symbol.IsNull():
			owner := h.symbols.Get(data.Parent.Symbol)
			if owner == nil {
				return 0, false
			}
			scope = owner.ParentScope
		default:
			return 0, false
		}
	}
	return 0, false
}

// ModuleBySymbol returns the module containing the symbol.
func (h *Hir) ModuleBySymbol(sym Symbol) (Module, bool) {
	data := h.symbols.Get(sym)
	if data == nil {
		return 0, false
	}
	return h.ModuleOfScope(data.ParentScope)
}

// ModuleBySource returns the module a source contributes to.
func (h *Hir) ModuleBySource(src Source) (Module, bool) {
	data := h.sources.Get(src)
	if data == nil || data.Module.IsNull() {
		return 0, false
	}
	return data.Module, true
}

// MissingModules returns the URLs of modules that imports resolve to but
// that have no loaded source, sorted and deduplicated. Workspace loading
// calls this in a fixed point loop until nothing is missing.
func (h *Hir) MissingModules() []string {
	seen := map[string]struct{}{}
	for _, data := range h.symbols.All() {
		imp, ok := data.Kind.(*ImportSymbol)
		if !ok || imp.Path == "" || !imp.Target.IsNull() {
			continue
		}
		url := h.resolveImportURL(data.Source.Source, imp.Path)
		if url == "" {
			continue
		}
		if _, loaded := h.SourceByURL(url); loaded {
			continue
		}
		if _, exists := h.ModuleByURL(url); exists {
			continue
		}
		seen[url] = struct{}{}
	}
	missing := make([]string, 0, len(seen))
	for url := range seen {
		missing = append(missing, url)
	}
	sort.Strings(missing)
	return missing
}

// FindInModule looks up an exported name in a module's scope.
func (h *Hir) FindInModule(module Module, name string) (Symbol, bool) {
	data := h.modules.Get(module)
	if data == nil {
		return 0, false
	}
	for sym := range h.scopeSymbols(data.Scope) {
		symData := h.mustSymbol(sym)
		if symData.Export && symData.Name() == name {
			return sym, true
		}
	}
	return 0, false
}

// TargetModule chases a symbol's target chain until it lands on a module:
// a reference to an import alias yields the imported module. The visited
// set guards against reference cycles left by partial resolution.
func (h *Hir) TargetModule(sym Symbol) (Module, bool) {
	visited := map[Symbol]struct{}{}
	for !sym.IsNull() {
		if _, dup := visited[sym]; dup {
			return 0, false
		}
		visited[sym] = struct{}{}
		data := h.symbols.Get(sym)
		if data == nil {
			return 0, false
		}
		if imp, ok := data.Kind.(*ImportSymbol); ok {
			if imp.Target.IsNull() {
				return 0, false
			}
			return imp.Target, true
		}
		target := data.Target()
		if !target.Module.IsNull() {
			return target.Module, true
		}
		sym = target.Symbol
	}
	return 0, false
}
