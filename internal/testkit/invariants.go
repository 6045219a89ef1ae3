// Package testkit provides structural checks shared by tests that build
// semantic graphs.
package testkit

import (
	"fmt"

	"quill/internal/hir"
)

// CheckGraphInvariants verifies the structural invariants of a graph:
// 1) every symbol's parent scope is live, and that scope lists the symbol
// 2) scope member lists only contain live symbols that point back
// 3) a scope has at most one parent, and never itself
// 4) resolved targets and inferred types reference live entities
// 5) every source's module and every module's scope are live
func CheckGraphInvariants(h *hir.Hir) error {
	for sym, data := range h.Symbols() {
		if !data.ParentScope.IsNull() {
			scope := h.ScopeData(data.ParentScope)
			if scope == nil {
				return fmt.Errorf("%v: dangling parent scope %v", sym, data.ParentScope)
			}
			if !scope.ContainsSymbol(sym) {
				return fmt.Errorf("%v: parent scope %v does not list it", sym, data.ParentScope)
			}
		}
		target := data.Target()
		if !target.Symbol.IsNull() && h.SymbolData(target.Symbol) == nil {
			return fmt.Errorf("%v: dangling target symbol %v", sym, target.Symbol)
		}
		if !target.Module.IsNull() && h.ModuleData(target.Module) == nil {
			return fmt.Errorf("%v: dangling target module %v", sym, target.Module)
		}
		if !data.Ty.IsNull() && h.TypeData(data.Ty) == nil {
			return fmt.Errorf("%v: dangling type %v", sym, data.Ty)
		}
	}

	for scope, data := range h.Scopes() {
		if data.Parent.Scope == scope {
			return fmt.Errorf("%v: scope is its own parent", scope)
		}
		if !data.Parent.Scope.IsNull() && !data.Parent.Symbol.IsNull() {
			return fmt.Errorf("%v: scope has two parents", scope)
		}
		if !data.Parent.Scope.IsNull() && h.ScopeData(data.Parent.Scope) == nil {
			return fmt.Errorf("%v: dangling parent scope %v", scope, data.Parent.Scope)
		}
		if !data.Parent.Symbol.IsNull() && h.SymbolData(data.Parent.Symbol) == nil {
			return fmt.Errorf("%v: dangling parent symbol %v", scope, data.Parent.Symbol)
		}
		for _, member := range data.Symbols {
			if err := checkMember(h, scope, member); err != nil {
				return err
			}
		}
		for _, member := range data.Hoisted {
			if err := checkMember(h, scope, member); err != nil {
				return err
			}
		}
	}

	for src, data := range h.Sources() {
		if !data.Module.IsNull() && h.ModuleData(data.Module) == nil {
			return fmt.Errorf("%v: dangling module %v", src, data.Module)
		}
	}

	for module, data := range h.Modules() {
		if h.ScopeData(data.Scope) == nil {
			return fmt.Errorf("%v: dangling scope %v", module, data.Scope)
		}
		for _, src := range data.Sources {
			if h.SourceData(src) == nil {
				return fmt.Errorf("%v: dangling source %v", module, src)
			}
		}
	}

	return nil
}

func checkMember(h *hir.Hir, scope hir.Scope, member hir.Symbol) error {
	data := h.SymbolData(member)
	if data == nil {
		return fmt.Errorf("%v: lists removed symbol %v", scope, member)
	}
	if data.ParentScope != scope {
		return fmt.Errorf("%v: member %v points at scope %v", scope, member, data.ParentScope)
	}
	return nil
}
