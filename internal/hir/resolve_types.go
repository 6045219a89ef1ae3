package hir

// InferTypes runs one shallow inference pass over the whole graph. All
// previously inferred (unprotected) types are dropped first, so repeated
// passes converge on the same arena contents instead of accumulating
// garbage.
func (h *Hir) InferTypes() {
	for _, t := range h.types.Keys() {
		if data := h.types.Get(t); data != nil && !data.Protected {
			h.types.Remove(t)
		}
	}
	for _, sym := range h.symbols.Keys() {
		if data := h.symbols.Get(sym); data != nil {
			data.Ty = h.builtinTypes.Unknown
		}
	}

	seen := map[Symbol]struct{}{}
	for _, sym := range h.symbols.Keys() {
		h.inferType(sym, seen)
	}
}

// inferType computes and caches the type of one symbol. Reference cycles
// bottom out at unknown: a symbol revisited while its own type is still
// being computed reports whatever is cached so far.
func (h *Hir) inferType(sym Symbol, seen map[Symbol]struct{}) Type {
	if sym.IsNull() {
		return h.builtinTypes.Unknown
	}
	data := h.symbols.Get(sym)
	if data == nil {
		return h.builtinTypes.Unknown
	}
	if _, done := seen[sym]; done {
		return data.Ty
	}
	seen[sym] = struct{}{}

	data.Ty = h.computeType(sym, data, seen)
	return data.Ty
}

func (h *Hir) computeType(sym Symbol, data *SymbolData, seen map[Symbol]struct{}) Type {
	b := h.builtinTypes

	switch k := data.Kind.(type) {
	case *LitSymbol:
		switch k.Value.Kind {
		case ValueInt:
			return b.Int
		case ValueFloat:
			return b.Float
		case ValueBool:
			return b.Bool
		case ValueString:
			return b.String
		case ValueChar:
			return b.Char
		default:
			return b.Unknown
		}

	case *RefSymbol:
		if !k.Target.Symbol.IsNull() {
			return h.inferType(k.Target.Symbol, seen)
		}
		if !k.Target.Module.IsNull() {
			return b.Module
		}
		return b.Unknown

	case *DeclSymbol:
		if k.IsImport {
			return b.Module
		}
		if !k.Value.IsNull() {
			return h.inferType(k.Value, seen)
		}
		return b.Unknown

	case *PathSymbol:
		if n := len(k.Segments); n > 0 {
			return h.inferType(k.Segments[n-1], seen)
		}
		return b.Unknown

	case *BlockSymbol:
		return h.scopeValueType(k.Scope, seen)

	case *IfSymbol:
		types := make([]Type, 0, len(k.Branches))
		for _, branch := range k.Branches {
			types = append(types, h.scopeValueType(branch.Scope, seen))
		}
		return h.unionOf(data.Source, types)

	case *SwitchSymbol:
		types := make([]Type, 0, len(k.Arms))
		for _, arm := range k.Arms {
			types = append(types, h.inferType(arm.Value, seen))
		}
		return h.unionOf(data.Source, types)

	case *FnSymbol:
		return h.fnType(data.Source, k.Scope, false, seen)

	case *OpSymbol:
		return h.fnType(data.Source, k.Scope, false, seen)

	case *ClosureSymbol:
		return h.closureType(data.Source, k, seen)

	case *CallSymbol:
		callee := h.inferType(k.Lhs, seen)
		if td := h.types.Get(callee); callee != b.Unknown && td != nil && td.Kind.Tag == TypeFn {
			return td.Kind.Ret
		}
		return b.Unknown

	case *IndexSymbol:
		base := h.inferType(k.Base, seen)
		if td := h.types.Get(base); base != b.Unknown && td != nil && td.Kind.Tag == TypeArray {
			return td.Kind.Items
		}
		return b.Unknown

	case *ArraySymbol:
		types := make([]Type, 0, len(k.Values))
		for _, v := range k.Values {
			types = append(types, h.inferType(v, seen))
		}
		items := h.unionOf(data.Source, types)
		return h.types.Insert(TypeData{
			Source: data.Source,
			Kind:   TypeKind{Tag: TypeArray, Items: items, KnownItems: len(k.Values)},
		})

	case *ObjectSymbol:
		fields := make([]TypeField, 0, len(k.Fields))
		for _, f := range k.Fields {
			fields = append(fields, TypeField{Name: f.Name, Ty: h.inferType(f.Value, seen)})
		}
		return h.types.Insert(TypeData{
			Source: data.Source,
			Kind:   TypeKind{Tag: TypeObject, Fields: fields},
		})

	case *BinarySymbol:
		if k.IsFieldAccess() {
			return h.fieldAccessType(k, seen)
		}
		return b.Unknown

	case *UnarySymbol:
		if k.Op == "!" {
			return b.Bool
		}
		return h.inferType(k.Rhs, seen)

	case *ImportSymbol:
		return b.Module

	case *ExportSymbol:
		return h.inferType(k.Target, seen)

	case *LoopSymbol, *ForSymbol, *WhileSymbol, *TrySymbol,
		*BreakSymbol, *ContinueSymbol, *ReturnSymbol, *ThrowSymbol:
		return b.Void

	default:
		return b.Unknown
	}
}

// scopeValueType is the type a block-like scope evaluates to: its last
// statement's type, or void when empty.
func (h *Hir) scopeValueType(scope Scope, seen map[Symbol]struct{}) Type {
	data := h.scopes.Get(scope)
	if data == nil || len(data.Symbols) == 0 {
		return h.builtinTypes.Void
	}
	return h.inferType(data.Symbols[len(data.Symbols)-1], seen)
}

// fnType builds a fn type from the owning scope: the parameter prefix of
// the ordered list, then the type of the last body statement.
func (h *Hir) fnType(src SourceInfo, scope Scope, isClosure bool, seen map[Symbol]struct{}) Type {
	data := h.scopes.Get(scope)
	if data == nil {
		return h.builtinTypes.Unknown
	}

	var params []TypeParam
	body := data.Symbols
	for len(body) > 0 {
		symData := h.mustSymbol(body[0])
		if !symData.IsParam() {
			break
		}
		params = append(params, TypeParam{
			Name: symData.Name(),
			Ty:   h.inferType(body[0], seen),
		})
		body = body[1:]
	}

	ret := h.builtinTypes.Void
	if len(body) > 0 {
		ret = h.inferType(body[len(body)-1], seen)
	}

	return h.types.Insert(TypeData{
		Source: src,
		Kind:   TypeKind{Tag: TypeFn, IsClosure: isClosure, Params: params, Ret: ret},
	})
}

func (h *Hir) closureType(src SourceInfo, k *ClosureSymbol, seen map[Symbol]struct{}) Type {
	data := h.scopes.Get(k.Scope)
	if data == nil {
		return h.builtinTypes.Unknown
	}

	var params []TypeParam
	for _, s := range data.Symbols {
		symData := h.mustSymbol(s)
		if !symData.IsParam() {
			break
		}
		params = append(params, TypeParam{Name: symData.Name(), Ty: h.inferType(s, seen)})
	}

	ret := h.builtinTypes.Void
	if !k.Expr.IsNull() {
		ret = h.inferType(k.Expr, seen)
	}

	return h.types.Insert(TypeData{
		Source: src,
		Kind:   TypeKind{Tag: TypeFn, IsClosure: true, Params: params, Ret: ret},
	})
}

// fieldAccessType resolves `lhs.name` against an inferred object type.
func (h *Hir) fieldAccessType(k *BinarySymbol, seen map[Symbol]struct{}) Type {
	lhs := h.inferType(k.Lhs, seen)
	td := h.types.Get(lhs)
	if lhs == h.builtinTypes.Unknown || td == nil || td.Kind.Tag != TypeObject {
		return h.builtinTypes.Unknown
	}

	rhsData := h.symbols.Get(k.Rhs)
	if rhsData == nil {
		return h.builtinTypes.Unknown
	}
	name := ""
	switch r := rhsData.Kind.(type) {
	case *RefSymbol:
		name = r.Name
	case *CallSymbol:
		return h.builtinTypes.Unknown
	default:
		return h.builtinTypes.Unknown
	}

	for _, f := range td.Kind.Fields {
		if f.Name == name {
			return f.Ty
		}
	}
	return h.builtinTypes.Unknown
}
