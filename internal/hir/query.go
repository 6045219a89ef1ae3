package hir

import (
	"iter"

	"quill/internal/source"
)

// SourceByURL finds the source registered under the given URL.
func (h *Hir) SourceByURL(url string) (Source, bool) {
	for src, data := range h.sources.All() {
		if data.URL == url {
			return src, true
		}
	}
	return 0, false
}

// nestedBefore orders candidate ranges for position queries: the smaller
// (more deeply nested) range wins, a later start breaking ties.
func nestedBefore(a, b source.TextRange) bool {
	if a.Len() != b.Len() {
		return a.Len() < b.Len()
	}
	return a.Start > b.Start
}

// SymbolAt returns the innermost symbol whose range covers the offset in
// the given source. With inclusive set, an offset sitting right after a
// symbol's last byte still counts, matching editor cursor behavior.
func (h *Hir) SymbolAt(src Source, offset uint32, inclusive bool) (Symbol, bool) {
	var best Symbol
	var bestRange source.TextRange
	found := false
	for sym, data := range h.symbols.All() {
		if !data.Source.Is(src) || !data.Source.HasRange {
			continue
		}
		rng := data.Source.TextRange
		hit := rng.Contains(offset) || (inclusive && rng.ContainsInclusive(offset))
		if !hit {
			continue
		}
		if !found || nestedBefore(rng, bestRange) {
			best, bestRange, found = sym, rng, true
		}
	}
	return best, found
}

// SymbolSelectionAt is like SymbolAt but matches against selection ranges
// (the name token of a declaration rather than its whole extent).
func (h *Hir) SymbolSelectionAt(src Source, offset uint32, inclusive bool) (Symbol, bool) {
	var best Symbol
	var bestRange source.TextRange
	found := false
	for sym, data := range h.symbols.All() {
		if !data.Source.Is(src) || !data.Source.HasSelection {
			continue
		}
		rng := data.Source.SelectionRange
		hit := rng.Contains(offset) || (inclusive && rng.ContainsInclusive(offset))
		if !hit {
			continue
		}
		if !found || nestedBefore(rng, bestRange) {
			best, bestRange, found = sym, rng, true
		}
	}
	return best, found
}

// ScopeAt returns the innermost scope whose range covers the offset,
// falling back to the source's module scope when no lexical scope hits.
func (h *Hir) ScopeAt(src Source, offset uint32, inclusive bool) (Scope, bool) {
	var best Scope
	var bestRange source.TextRange
	found := false
	for scope, data := range h.scopes.All() {
		if !data.Source.Is(src) || !data.Source.HasRange {
			continue
		}
		rng := data.Source.TextRange
		hit := rng.Contains(offset) || (inclusive && rng.ContainsInclusive(offset))
		if !hit {
			continue
		}
		if !found || nestedBefore(rng, bestRange) {
			best, bestRange, found = scope, rng, true
		}
	}
	if found {
		return best, true
	}
	module := h.mustSource(src).Module
	if module.IsNull() {
		return 0, false
	}
	return h.mustModule(module).Scope, true
}

// SymbolsOfSource iterates every symbol that originates from the source,
// in slot order.
func (h *Hir) SymbolsOfSource(src Source) iter.Seq[Symbol] {
	return func(yield func(Symbol) bool) {
		for sym, data := range h.symbols.All() {
			if data.Source.Is(src) && !yield(sym) {
				return
			}
		}
	}
}

// Operators iterates all custom operator declarations in the graph.
func (h *Hir) Operators() iter.Seq2[Symbol, *OpSymbol] {
	return func(yield func(Symbol, *OpSymbol) bool) {
		for sym, data := range h.symbols.All() {
			if op, ok := data.Kind.(*OpSymbol); ok && !yield(sym, op) {
				return
			}
		}
	}
}

// OperatorByName finds a custom operator by its token.
func (h *Hir) OperatorByName(name string) (Symbol, bool) {
	for sym, op := range h.Operators() {
		if op.Name == name {
			return sym, true
		}
	}
	return 0, false
}

// TargetSymbol follows a symbol's target chain to the declaration it
// ultimately names: references through aliases, aliases through their
// declarations. Returns the input when it points nowhere further.
func (h *Hir) TargetSymbol(sym Symbol) Symbol {
	seen := map[Symbol]struct{}{}
	for {
		if _, dup := seen[sym]; dup {
			return sym
		}
		seen[sym] = struct{}{}
		data := h.symbols.Get(sym)
		if data == nil {
			return sym
		}
		target := data.Target()
		if target.Symbol.IsNull() {
			return sym
		}
		sym = target.Symbol
	}
}
