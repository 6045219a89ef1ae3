package hir

import (
	"fmt"

	"quill/internal/diag"
	"quill/internal/source"
)

// ErrorKind discriminates semantic errors.
type ErrorKind uint8

const (
	ErrUnresolvedReference ErrorKind = iota
	ErrUnresolvedImport
	ErrDuplicateFnParameter
	ErrNestedFunction
)

// Error is one semantic error derived from the resolved graph. Errors is
// stateless: nothing is stored on the graph, collection just reads it.
type Error struct {
	Kind   ErrorKind
	Symbol Symbol // the offending symbol

	Name     string // unresolved or duplicated name, import path
	Similar  Symbol // closest visible name, if any (unresolved reference)
	Existing Symbol // first declaration (duplicate parameter)
}

// Errors collects the semantic errors of every loaded source.
// Resolution must have run first; unresolved targets are the signal.
func (h *Hir) Errors() []Error {
	var out []Error
	for _, src := range h.sources.Keys() {
		if src == h.virtualSource {
			continue
		}
		out = append(out, h.ErrorsForSource(src)...)
	}
	return out
}

// ErrorsForSource collects the semantic errors of one source.
func (h *Hir) ErrorsForSource(src Source) []Error {
	if h.sources.Get(src) == nil {
		return nil
	}

	var out []Error
	for sym := range h.SymbolsOfSource(src) {
		symData := h.mustSymbol(sym)

		switch k := symData.Kind.(type) {
		case *RefSymbol:
			if k.FieldAccess || k.PartOfPath || k.Name == "" || k.Name == "this" {
				continue
			}
			if k.Target.IsNull() {
				out = append(out, h.unresolvedError(sym, k.Name))
			}

		case *PathSymbol:
			// Only the first unresolved segment is an error; later
			// segments cannot resolve once one is missing.
			for _, seg := range k.Segments {
				ref, ok := h.mustSymbol(seg).Kind.(*RefSymbol)
				if !ok {
					continue
				}
				if ref.Target.IsNull() {
					out = append(out, h.unresolvedError(seg, ref.Name))
					break
				}
			}

		case *ImportSymbol:
			if k.Path != "" && k.Target.IsNull() {
				out = append(out, Error{Kind: ErrUnresolvedImport, Symbol: sym, Name: k.Path})
			}

		case *FnSymbol:
			out = h.appendDuplicateParams(out, k.Scope)
			if !k.IsDef && !h.isModuleScope(symData.ParentScope) {
				out = append(out, Error{Kind: ErrNestedFunction, Symbol: sym, Name: k.Name})
			}

		case *OpSymbol:
			out = h.appendDuplicateParams(out, k.Scope)

		case *ClosureSymbol:
			out = h.appendDuplicateParams(out, k.Scope)
		}
	}
	return out
}

func (h *Hir) unresolvedError(sym Symbol, name string) Error {
	e := Error{Kind: ErrUnresolvedReference, Symbol: sym, Name: name}
	if similar, ok := h.findSimilarName(sym, name); ok {
		e.Similar = similar
	}
	return e
}

// appendDuplicateParams flags repeated parameter names in the ordered
// parameter prefix of a function-like scope. `_` never collides.
func (h *Hir) appendDuplicateParams(out []Error, scope Scope) []Error {
	data := h.scopes.Get(scope)
	if data == nil {
		return out
	}
	first := map[string]Symbol{}
	for _, s := range data.Symbols {
		symData := h.mustSymbol(s)
		if !symData.IsParam() {
			break
		}
		name := symData.Name()
		if name == "" || name == "_" {
			continue
		}
		if prev, dup := first[name]; dup {
			out = append(out, Error{
				Kind:     ErrDuplicateFnParameter,
				Symbol:   s,
				Name:     name,
				Existing: prev,
			})
			continue
		}
		first[name] = s
	}
	return out
}

func (h *Hir) isModuleScope(scope Scope) bool {
	if scope.IsNull() {
		return false
	}
	for _, data := range h.modules.All() {
		if data.Scope == scope {
			return true
		}
	}
	return false
}

// CollectErrors bridges semantic errors into diagnostics for every source.
func (h *Hir) CollectErrors(rep diag.Reporter) {
	for _, src := range h.sources.Keys() {
		if src == h.virtualSource {
			continue
		}
		h.CollectSourceErrors(src, rep)
	}
}

// CollectSourceErrors bridges one source's semantic errors into
// diagnostics.
func (h *Hir) CollectSourceErrors(src Source, rep diag.Reporter) {
	data := h.sources.Get(src)
	if data == nil {
		return
	}
	url := data.URL

	for _, e := range h.ErrorsForSource(src) {
		switch e.Kind {
		case ErrUnresolvedReference:
			b := diag.ReportError(rep, diag.HirUnresolvedReference,
				h.symbolSpan(url, e.Symbol),
				fmt.Sprintf("unknown symbol `%s`", e.Name))
			if !e.Similar.IsNull() {
				b.WithNote(h.symbolSpan(url, e.Similar),
					fmt.Sprintf("did you mean `%s`?", h.mustSymbol(e.Similar).Name()))
			}
			b.Emit()

		case ErrUnresolvedImport:
			diag.ReportError(rep, diag.HirUnresolvedImport,
				h.symbolSpan(url, e.Symbol),
				fmt.Sprintf("unresolved import %q", e.Name)).Emit()

		case ErrDuplicateFnParameter:
			diag.ReportError(rep, diag.HirDuplicateParameter,
				h.symbolSpan(url, e.Symbol),
				fmt.Sprintf("duplicate parameter `%s`", e.Name)).
				WithNote(h.symbolSpan(url, e.Existing), "first declared here").
				Emit()

		case ErrNestedFunction:
			diag.ReportError(rep, diag.HirNestedFunction,
				h.symbolSpan(url, e.Symbol),
				fmt.Sprintf("function `%s` cannot be declared inside another scope", e.Name)).Emit()
		}
	}
}

// symbolSpan prefers the selection range (the name token) over the full
// extent.
func (h *Hir) symbolSpan(url string, sym Symbol) source.Span {
	info := h.mustSymbol(sym).Source
	rng := info.TextRange
	if info.HasSelection {
		rng = info.SelectionRange
	}
	return source.Span{URL: url, Range: rng}
}

// findSimilarName looks through the symbols visible from sym for the name
// closest to the unresolved one. Only sufficiently close matches count.
func (h *Hir) findSimilarName(sym Symbol, name string) (Symbol, bool) {
	var best Symbol
	bestScore := 0.0
	for visible := range h.VisibleSymbolsFromSymbol(sym) {
		data := h.mustSymbol(visible)
		switch data.Kind.(type) {
		case *FnSymbol, *OpSymbol, *DeclSymbol:
		default:
			continue
		}
		candidate := data.Name()
		if candidate == "" || candidate == name {
			continue
		}
		if score := nameSimilarity(name, candidate); score >= 0.5 && score > bestScore {
			best, bestScore = visible, score
		}
	}
	return best, !best.IsNull()
}

// nameSimilarity is edit distance with adjacent transpositions, normalized
// to [0, 1] where 1 is an exact match.
func nameSimilarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1
	}
	dist := editDistance(ra, rb)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	return 1 - float64(dist)/float64(longest)
}

func editDistance(a, b []rune) int {
	rows := len(a) + 1
	cols := len(b) + 1
	d := make([][]int, rows)
	for i := range d {
		d[i] = make([]int, cols)
		d[i][0] = i
	}
	for j := 0; j < cols; j++ {
		d[0][j] = j
	}

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			best := d[i-1][j] + 1
			if v := d[i][j-1] + 1; v < best {
				best = v
			}
			if v := d[i-1][j-1] + cost; v < best {
				best = v
			}
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				if v := d[i-2][j-2] + 1; v < best {
					best = v
				}
			}
			d[i][j] = best
		}
	}
	return d[rows-1][cols-1]
}
