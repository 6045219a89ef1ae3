package hir

// ClearReferences detaches every resolved target and back-reference,
// returning the graph to its unresolved state. Resolution always starts
// from here, so resolving twice yields the same graph as resolving once.
func (h *Hir) ClearReferences() {
	for _, data := range h.symbols.All() {
		switch k := data.Kind.(type) {
		case *RefSymbol:
			k.Target = ReferenceTarget{}
		case *DeclSymbol:
			k.Target = ReferenceTarget{}
			k.References = nil
		case *ImportSymbol:
			k.Target = 0
		case *FnSymbol:
			k.References = nil
		case *OpSymbol:
			k.References = nil
		}
	}
}

// ResolveReferences rebinds the whole graph: imports first, then paths,
// then plain references. Safe to call any number of times.
func (h *Hir) ResolveReferences() {
	h.ClearReferences()
	h.resolveImports()
	h.resolvePaths()
	h.resolveScopeReferences()
}

// ResolveAll resolves references and then infers types.
func (h *Hir) ResolveAll() {
	h.ResolveReferences()
	h.InferTypes()
}

// resolveImports binds every import to the module its path resolves to.
// The alias declaration is pointed at the module so that references to
// the alias chase through to it.
func (h *Hir) resolveImports() {
	for _, sym := range h.symbols.Keys() {
		data := h.symbols.Get(sym)
		if data == nil {
			continue
		}
		imp, ok := data.Kind.(*ImportSymbol)
		if !ok || imp.Path == "" {
			continue
		}

		url := h.resolveImportURL(data.Source.Source, imp.Path)
		if url == "" {
			continue
		}

		var module Module
		if src, loaded := h.SourceByURL(url); loaded {
			module = h.mustSource(src).Module
		} else if m, exists := h.ModuleByURL(url); exists {
			module = m
		}
		if module.IsNull() {
			continue
		}

		imp.Target = module
		if !imp.Alias.IsNull() {
			if alias, ok := h.mustSymbol(imp.Alias).Kind.(*DeclSymbol); ok {
				alias.Target = ModuleTarget(module)
			}
		}
	}
}

// resolvePaths binds `a::b::c` chains. The first segment resolves through
// the visibility walk and must name a module (an import alias, including
// the synthetic ones registered for static modules); every later segment
// is looked up among the exports of the module the previous segment
// landed on.
func (h *Hir) resolvePaths() {
	for _, sym := range h.symbols.Keys() {
		data := h.symbols.Get(sym)
		if data == nil {
			continue
		}
		path, ok := data.Kind.(*PathSymbol)
		if !ok || len(path.Segments) == 0 {
			continue
		}

		var module Module
		for i, seg := range path.Segments {
			segData := h.mustSymbol(seg)
			ref, ok := segData.Kind.(*RefSymbol)
			if !ok {
				break
			}

			var target ReferenceTarget
			if i == 0 {
				target = h.resolvePathHead(seg, ref.Name)
			} else if !module.IsNull() {
				if found, ok := h.FindInModule(module, ref.Name); ok {
					target = SymbolTarget(found)
				}
			}
			if target.IsNull() {
				break
			}

			ref.Target = target
			if !target.Symbol.IsNull() {
				addReference(h.mustSymbol(target.Symbol).Kind, seg)
			}

			if i+1 < len(path.Segments) {
				module = h.segmentModule(target)
				if module.IsNull() {
					break
				}
			}
		}
	}
}

// resolvePathHead finds what the first path segment names: the nearest
// visible import alias or module-valued declaration with that name.
func (h *Hir) resolvePathHead(seg Symbol, name string) ReferenceTarget {
	for visible := range h.VisibleSymbolsFromSymbol(seg) {
		visData := h.mustSymbol(visible)
		switch k := visData.Kind.(type) {
		case *DeclSymbol:
			if k.IsImport && k.Name == name {
				return SymbolTarget(visible)
			}
		case *ImportSymbol:
			if k.AliasName == name {
				if !k.Alias.IsNull() {
					return SymbolTarget(k.Alias)
				}
				return SymbolTarget(visible)
			}
		}
	}
	return ReferenceTarget{}
}

// segmentModule turns a resolved segment target into the module to search
// the next segment in.
func (h *Hir) segmentModule(target ReferenceTarget) Module {
	if !target.Module.IsNull() {
		return target.Module
	}
	if m, ok := h.TargetModule(target.Symbol); ok {
		return m
	}
	return 0
}

// resolveScopeReferences binds plain name uses. Targets are computed for
// every reference against the pre-existing graph first and applied
// afterwards, so the outcome never depends on the order references are
// visited in.
func (h *Hir) resolveScopeReferences() {
	type binding struct {
		ref    Symbol
		target Symbol
	}
	var bindings []binding

	for _, sym := range h.symbols.Keys() {
		data := h.symbols.Get(sym)
		if data == nil {
			continue
		}
		ref, ok := data.Kind.(*RefSymbol)
		if !ok || ref.FieldAccess || ref.PartOfPath || ref.Name == "" {
			continue
		}
		if target, ok := h.lookupVisible(sym, ref.Name); ok {
			bindings = append(bindings, binding{ref: sym, target: target})
		}
	}

	for _, b := range bindings {
		refData := h.mustSymbol(b.ref)
		if ref, ok := refData.Kind.(*RefSymbol); ok {
			ref.Target = SymbolTarget(b.target)
		}
		addReference(h.mustSymbol(b.target).Kind, b.ref)
	}
}

// lookupVisible finds the nearest visible declaration, function, custom
// operator or import alias with the given name.
func (h *Hir) lookupVisible(from Symbol, name string) (Symbol, bool) {
	for visible := range h.VisibleSymbolsFromSymbol(from) {
		data := h.mustSymbol(visible)
		switch k := data.Kind.(type) {
		case *FnSymbol, *OpSymbol, *DeclSymbol:
			if data.Name() == name {
				return visible, true
			}
		case *ImportSymbol:
			if k.AliasName == name {
				if !k.Alias.IsNull() {
					return k.Alias, true
				}
				return visible, true
			}
		}
	}
	return 0, false
}
