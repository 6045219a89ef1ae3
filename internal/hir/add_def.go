package hir

import "quill/internal/syntax"

// addDef indexes a definition file. `module name;` binds the declarations
// to the named static module; a bare `module;` (or no header) binds them
// to the script the definition file sits next to.
func (h *Hir) addDef(src Source, root *syntax.Node) {
	url := h.mustSource(src).URL

	kind := URLModuleKind(scriptURL(url))
	isStatic := false
	if header := root.FirstOfKind(syntax.NodeModuleHeader); header != nil {
		if name := header.IdentText(); name != "" {
			kind = URLModuleKind(StaticURLScheme + "://" + name)
			isStatic = true
		}
	}

	module := h.ensureModule(kind)
	h.mustModule(module).addSource(src)
	if docs := defDocs(root); docs != "" {
		h.mustModule(module).Docs = docs
	}
	h.mustSource(src).Module = module

	if isStatic {
		h.registerStaticModule(module)
	}

	scope := h.mustModule(module).Scope
	for _, stmt := range root.Children {
		h.addDefStatement(src, scope, stmt)
	}
}

// addDefStatement adds one top-level definition statement. Unlike script
// statements, definitions are order-independent: everything is hoisted.
func (h *Hir) addDefStatement(src Source, scope Scope, n *syntax.Node) {
	switch n.Kind {
	case syntax.NodeFn:
		h.addFn(src, scope, true, n, true)
	case syntax.NodeOpDecl:
		h.addOpDecl(src, scope, n)
	case syntax.NodeConst:
		h.addDecl(src, scope, true, n, true, true)
	case syntax.NodeLet:
		h.addDecl(src, scope, false, n, false, true)
	case syntax.NodeImport:
		h.addImport(src, scope, true, n, true)
	case syntax.NodeExport:
		for _, c := range n.Children {
			if c.Kind == syntax.NodeDoc || c.Kind == syntax.NodeModuleDoc {
				continue
			}
			h.addDefStatement(src, scope, c)
			break
		}
	case syntax.NodeModuleHeader, syntax.NodeModuleDoc, syntax.NodeDoc:
		// handled by addDef / attached to declarations
	}
}

// defDocs prefers the module header's documentation, falling back to
// leading //! lines.
func defDocs(root *syntax.Node) string {
	if header := root.FirstOfKind(syntax.NodeModuleHeader); header != nil {
		if docs := header.DocText(); docs != "" {
			return docs
		}
	}
	return moduleDocs(root)
}
