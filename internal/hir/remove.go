package hir

// RemoveSource deletes a source and everything it contributed: its
// symbols, their scopes, its inferred types, and its module when no other
// source keeps the module alive. Targets and back-references pointing at
// removed entities are cleared, so the surviving graph never holds a
// dangling key.
func (h *Hir) RemoveSource(src Source) {
	if h.sources.Get(src) == nil {
		return
	}

	doomed := map[Symbol]struct{}{}
	for _, sym := range h.symbols.Keys() {
		if data := h.symbols.Get(sym); data != nil && data.Source.Is(src) {
			doomed[sym] = struct{}{}
		}
	}

	h.scrubSymbolLinks(doomed)

	// Detach doomed symbols from scopes that survive them, then drop the
	// symbols and every scope the source created.
	for sym := range doomed {
		data := h.mustSymbol(sym)
		if scopeData := h.scopes.Get(data.ParentScope); !data.ParentScope.IsNull() && scopeData != nil {
			scopeData.Symbols = deleteSymbol(scopeData.Symbols, sym)
			scopeData.Hoisted = deleteSymbol(scopeData.Hoisted, sym)
		}
		h.symbols.Remove(sym)
	}
	for _, scope := range h.scopes.Keys() {
		if data := h.scopes.Get(scope); data != nil && data.Source.Is(src) {
			h.scopes.Remove(scope)
		}
	}

	h.removeSourceTypes(src)
	h.detachFromModule(src)
	h.sources.Remove(src)
}

// scrubSymbolLinks clears targets and back-references held by surviving
// symbols that point into the doomed set.
func (h *Hir) scrubSymbolLinks(doomed map[Symbol]struct{}) {
	dead := func(s Symbol) bool {
		if s.IsNull() {
			return false
		}
		_, ok := doomed[s]
		return ok
	}

	for _, sym := range h.symbols.Keys() {
		if _, gone := doomed[sym]; gone {
			continue
		}
		data := h.symbols.Get(sym)
		if data == nil {
			continue
		}
		switch k := data.Kind.(type) {
		case *RefSymbol:
			if dead(k.Target.Symbol) {
				k.Target = ReferenceTarget{}
			}
		case *DeclSymbol:
			if dead(k.Target.Symbol) {
				k.Target = ReferenceTarget{}
			}
			scrubReferences(k.References, doomed)
		case *FnSymbol:
			scrubReferences(k.References, doomed)
		case *OpSymbol:
			scrubReferences(k.References, doomed)
		case *ImportSymbol:
			if dead(k.Alias) {
				k.Alias = 0
			}
			if dead(k.PathRef) {
				k.PathRef = 0
			}
		}
	}
}

func scrubReferences(refs map[Symbol]struct{}, doomed map[Symbol]struct{}) {
	for ref := range refs {
		if _, gone := doomed[ref]; gone {
			delete(refs, ref)
		}
	}
}

func deleteSymbol(list []Symbol, sym Symbol) []Symbol {
	for i, s := range list {
		if s == sym {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// removeSourceTypes drops the unprotected types inferred from the source
// and resets any symbol that still pointed at one.
func (h *Hir) removeSourceTypes(src Source) {
	removed := false
	for _, t := range h.types.Keys() {
		if data := h.types.Get(t); data != nil && !data.Protected && data.Source.Is(src) {
			h.types.Remove(t)
			removed = true
		}
	}
	if !removed {
		return
	}
	for _, data := range h.symbols.All() {
		if !data.Ty.IsNull() && h.types.Get(data.Ty) == nil {
			data.Ty = h.builtinTypes.Unknown
		}
	}
}

// detachFromModule unlinks the source from its module and prunes the
// module once nothing contributes to it anymore. A pruned static module
// also loses its synthetic import from the static scope.
func (h *Hir) detachFromModule(src Source) {
	module := h.mustSource(src).Module
	if module.IsNull() {
		return
	}
	data := h.modules.Get(module)
	if data == nil {
		return
	}

	data.removeSource(src)
	if len(data.Sources) > 0 || data.Protected {
		return
	}

	url := data.URL()
	h.scopes.Remove(data.Scope)
	h.modules.Remove(module)

	// Imports can no longer land on the pruned module.
	for _, data := range h.symbols.All() {
		switch k := data.Kind.(type) {
		case *ImportSymbol:
			if k.Target == module {
				k.Target = 0
			}
		case *DeclSymbol:
			if k.Target.Module == module {
				k.Target = ReferenceTarget{}
			}
		case *RefSymbol:
			if k.Target.Module == module {
				k.Target = ReferenceTarget{}
			}
		}
	}

	if url != "" {
		h.dropStaticRegistration(url)
	}
}

// dropStaticRegistration removes the synthetic static-scope import that
// registerStaticModule created for the given module URL.
func (h *Hir) dropStaticRegistration(url string) {
	staticScope := h.mustModule(h.staticModule).Scope

	var importSym Symbol
	for sym := range h.scopeSymbols(staticScope) {
		data := h.mustSymbol(sym)
		if imp, ok := data.Kind.(*ImportSymbol); ok && imp.Path == url && data.Source.Source == h.virtualSource {
			importSym = sym
			break
		}
	}
	if importSym.IsNull() {
		return
	}

	imp := h.mustSymbol(importSym).Kind.(*ImportSymbol)
	if !imp.Alias.IsNull() {
		h.symbols.Remove(imp.Alias)
	}
	if !imp.Scope.IsNull() {
		h.scopes.Remove(imp.Scope)
	}

	staticData := h.mustScope(staticScope)
	staticData.Symbols = deleteSymbol(staticData.Symbols, importSym)
	staticData.Hoisted = deleteSymbol(staticData.Hoisted, importSym)
	h.symbols.Remove(importSym)
}
