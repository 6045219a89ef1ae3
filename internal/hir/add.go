package hir

import (
	"strings"

	"quill/internal/syntax"
)

// AddSource (re)indexes one document. An existing source with the same
// URL is removed first, so repeated calls with updated trees keep the
// graph consistent. Call ResolveAll afterwards.
func (h *Hir) AddSource(url string, root *syntax.Node) {
	h.prepare()

	if existing, ok := h.SourceByURL(url); ok {
		h.RemoveSource(existing)
	}

	switch root.Kind {
	case syntax.NodeScript:
		src := h.sources.Insert(SourceData{URL: url, Kind: SourceScript})
		h.addScript(src, root)
	case syntax.NodeDef:
		src := h.sources.Insert(SourceData{URL: url, Kind: SourceDef})
		h.addDef(src, root)
	}
}

// ensureModule returns the module with the given identity, creating URL
// modules on demand. Module scopes hang off the static scope so every
// visibility walk bottoms out in the static namespace.
func (h *Hir) ensureModule(kind ModuleKind) Module {
	if kind.Tag == ModuleStatic {
		return h.staticModule
	}
	for m, data := range h.modules.All() {
		if data.Kind == kind {
			return m
		}
	}
	scope := h.scopes.Insert(ScopeData{
		Parent: scopeParentOf(h.mustModule(h.staticModule).Scope),
	})
	return h.modules.Insert(ModuleData{Scope: scope, Kind: kind})
}

// registerStaticModule makes a quill-static module reachable by name from
// every scope. A synthetic hoisted import is placed into the static scope
// on behalf of the virtual source; ordinary import resolution then binds
// it like any other import.
func (h *Hir) registerStaticModule(module Module) {
	data := h.mustModule(module)
	url := data.URL()
	if !strings.HasPrefix(url, StaticURLScheme+"://") {
		return
	}
	name := strings.TrimPrefix(url, StaticURLScheme+"://")

	staticScope := h.mustModule(h.staticModule).Scope
	for sym := range h.scopeSymbols(staticScope) {
		if imp, ok := h.mustSymbol(sym).Kind.(*ImportSymbol); ok && imp.Path == url {
			return
		}
	}

	importScope := h.scopes.Insert(ScopeData{
		Source: SourceInfo{Source: h.virtualSource},
	})

	alias := h.symbols.Insert(SymbolData{
		Source: SourceInfo{Source: h.virtualSource},
		Export: true,
		Ty:     h.builtinTypes.Unknown,
		Kind:   &DeclSymbol{Name: name, IsImport: true},
	})
	h.addSymbolToScope(importScope, alias, true)

	importSym := h.symbols.Insert(SymbolData{
		Source: SourceInfo{Source: h.virtualSource},
		Export: true,
		Ty:     h.builtinTypes.Unknown,
		Kind: &ImportSymbol{
			Scope:     importScope,
			Path:      url,
			Alias:     alias,
			AliasName: name,
		},
	})
	h.addSymbolToScope(staticScope, importSym, true)
	h.setScopeParent(importScope, symbolParentOf(importSym))
}
