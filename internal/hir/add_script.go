package hir

import (
	"strconv"
	"strings"

	"quill/internal/source"
	"quill/internal/syntax"
)

func (h *Hir) addScript(src Source, root *syntax.Node) {
	url := h.mustSource(src).URL

	module := h.ensureModule(URLModuleKind(url))
	h.mustModule(module).addSource(src)
	if docs := moduleDocs(root); docs != "" {
		h.mustModule(module).Docs = docs
	}
	h.mustSource(src).Module = module

	h.addStatements(src, h.mustModule(module).Scope, true, root.Children)
}

func (h *Hir) addStatements(src Source, scope Scope, canExport bool, stmts []*syntax.Node) {
	for _, stmt := range stmts {
		h.addExpression(src, scope, canExport, stmt)
	}
}

// addExpression builds the symbol for one syntax node inside the given
// scope and returns it. Nodes with no semantic content return the null
// symbol. The builder never reports diagnostics; malformed trees simply
// produce fewer symbols.
func (h *Hir) addExpression(src Source, scope Scope, canExport bool, n *syntax.Node) Symbol {
	if n == nil {
		return 0
	}

	switch n.Kind {
	case syntax.NodeIdent:
		return h.addRef(src, scope, canExport, n, false)

	case syntax.NodePath:
		return h.addPath(src, scope, canExport, n)

	case syntax.NodeLitInt, syntax.NodeLitFloat, syntax.NodeLitBool,
		syntax.NodeLitString, syntax.NodeLitChar:
		sym := h.symbols.Insert(SymbolData{
			Source: rangeInfo(src, n.Range),
			Ty:     h.builtinTypes.Unknown,
			Kind:   &LitSymbol{Value: litValue(n)},
		})
		h.addSymbolToScope(scope, sym, false)
		return sym

	case syntax.NodeDiscard:
		sym := h.symbols.Insert(SymbolData{
			Source: rangeInfo(src, n.Range),
			Ty:     h.builtinTypes.Unknown,
			Kind:   &DiscardSymbol{},
		})
		h.addSymbolToScope(scope, sym, false)
		return sym

	case syntax.NodeLet:
		return h.addDecl(src, scope, canExport, n, false, false)

	case syntax.NodeConst:
		return h.addDecl(src, scope, canExport, n, true, false)

	case syntax.NodeFn:
		return h.addFn(src, scope, canExport, n, false)

	case syntax.NodeOpDecl:
		return h.addOpDecl(src, scope, n)

	case syntax.NodeBlock:
		blockScope := h.scopes.Insert(ScopeData{Source: rangeInfo(src, n.Range)})
		sym := h.symbols.Insert(SymbolData{
			Source: rangeInfo(src, n.Range),
			Ty:     h.builtinTypes.Unknown,
			Kind:   &BlockSymbol{Scope: blockScope},
		})
		h.setScopeParent(blockScope, symbolParentOf(sym))
		h.addStatements(src, blockScope, false, n.Children)
		h.addSymbolToScope(scope, sym, false)
		return sym

	case syntax.NodeParen:
		return h.addExpression(src, scope, false, n.Child(0))

	case syntax.NodeUnary:
		rhs := h.addExpression(src, scope, false, n.Child(1))
		sym := h.symbols.Insert(SymbolData{
			Source: rangeInfo(src, n.Range),
			Ty:     h.builtinTypes.Unknown,
			Kind:   &UnarySymbol{Op: n.OpText(), Rhs: rhs},
		})
		h.addSymbolToScope(scope, sym, false)
		return sym

	case syntax.NodeBinary:
		binScope := h.scopes.Insert(ScopeData{Source: rangeInfo(src, n.Range)})
		lhs := h.addExpression(src, binScope, false, n.Child(0))
		rhs := h.addExpression(src, binScope, false, n.Child(2))
		op := n.OpText()
		if op == "." {
			h.markFieldAccess(rhs)
		}
		sym := h.symbols.Insert(SymbolData{
			Source: rangeInfo(src, n.Range),
			Ty:     h.builtinTypes.Unknown,
			Kind:   &BinarySymbol{Scope: binScope, Op: op, Lhs: lhs, Rhs: rhs},
		})
		h.setScopeParent(binScope, symbolParentOf(sym))
		h.addSymbolToScope(scope, sym, false)
		return sym

	case syntax.NodeArray:
		values := make([]Symbol, 0, len(n.Children))
		for _, c := range n.Children {
			if v := h.addExpression(src, scope, false, c); !v.IsNull() {
				values = append(values, v)
			}
		}
		sym := h.symbols.Insert(SymbolData{
			Source: rangeInfo(src, n.Range),
			Ty:     h.builtinTypes.Unknown,
			Kind:   &ArraySymbol{Values: values},
		})
		h.addSymbolToScope(scope, sym, false)
		return sym

	case syntax.NodeIndex:
		base := h.addExpression(src, scope, false, n.Child(0))
		index := h.addExpression(src, scope, false, n.Child(1))
		sym := h.symbols.Insert(SymbolData{
			Source: rangeInfo(src, n.Range),
			Ty:     h.builtinTypes.Unknown,
			Kind:   &IndexSymbol{Base: base, Index: index},
		})
		h.addSymbolToScope(scope, sym, false)
		return sym

	case syntax.NodeObject:
		var fields []ObjectField
		for _, fieldNode := range n.ChildrenOfKind(syntax.NodeObjectField) {
			keyNode := fieldNode.Child(0)
			if keyNode == nil {
				continue
			}
			name := keyNode.Text
			if keyNode.Kind == syntax.NodeLitString {
				name = keyNode.StringValue()
			}
			fields = append(fields, ObjectField{
				Name:        name,
				NameSource:  rangeInfo(src, keyNode.Range),
				FieldSource: rangeInfo(src, fieldNode.Range),
				Value:       h.addExpression(src, scope, false, fieldNode.Child(1)),
			})
		}
		sym := h.symbols.Insert(SymbolData{
			Source: rangeInfo(src, n.Range),
			Ty:     h.builtinTypes.Unknown,
			Kind:   &ObjectSymbol{Fields: fields},
		})
		h.addSymbolToScope(scope, sym, false)
		return sym

	case syntax.NodeCall:
		lhs := h.addExpression(src, scope, false, n.Child(0))
		var args []Symbol
		if argList := n.FirstOfKind(syntax.NodeArgList); argList != nil {
			for _, c := range argList.Children {
				if a := h.addExpression(src, scope, false, c); !a.IsNull() {
					args = append(args, a)
				}
			}
		}
		sym := h.symbols.Insert(SymbolData{
			Source: rangeInfo(src, n.Range),
			Ty:     h.builtinTypes.Unknown,
			Kind:   &CallSymbol{Lhs: lhs, Arguments: args},
		})
		h.addSymbolToScope(scope, sym, false)
		return sym

	case syntax.NodeClosure:
		closureScope := h.scopes.Insert(ScopeData{Source: rangeInfo(src, n.Range)})
		h.addParams(src, closureScope, n.FirstOfKind(syntax.NodeParamList))
		var body Symbol
		if len(n.Children) > 1 {
			body = h.addExpression(src, closureScope, false, n.Child(1))
		}
		sym := h.symbols.Insert(SymbolData{
			Source: rangeInfo(src, n.Range),
			Ty:     h.builtinTypes.Unknown,
			Kind:   &ClosureSymbol{Scope: closureScope, Expr: body},
		})
		h.addSymbolToScope(scope, sym, false)
		h.setScopeParent(closureScope, symbolParentOf(sym))
		return sym

	case syntax.NodeIf:
		var branches []IfBranch
		var branchScopes []Scope
		for _, branchNode := range n.ChildrenOfKind(syntax.NodeBranch) {
			block := branchNode.FirstOfKind(syntax.NodeBlock)
			var cond Symbol
			if first := branchNode.Child(0); first != nil && first != block {
				cond = h.addExpression(src, scope, false, first)
			}
			branchScope := h.scopes.Insert(ScopeData{Source: rangeInfo(src, blockRange(branchNode, block))})
			if block != nil {
				h.addStatements(src, branchScope, false, block.Children)
			}
			branches = append(branches, IfBranch{Condition: cond, Scope: branchScope})
			branchScopes = append(branchScopes, branchScope)
		}
		sym := h.symbols.Insert(SymbolData{
			Source: rangeInfo(src, n.Range),
			Ty:     h.builtinTypes.Unknown,
			Kind:   &IfSymbol{Branches: branches},
		})
		for _, bs := range branchScopes {
			h.setScopeParent(bs, symbolParentOf(sym))
		}
		h.addSymbolToScope(scope, sym, false)
		return sym

	case syntax.NodeLoop:
		block := n.FirstOfKind(syntax.NodeBlock)
		loopScope := h.scopes.Insert(ScopeData{Source: rangeInfo(src, blockRange(n, block))})
		if block != nil {
			h.addStatements(src, loopScope, false, block.Children)
		}
		sym := h.symbols.Insert(SymbolData{
			Source: rangeInfo(src, n.Range),
			Ty:     h.builtinTypes.Unknown,
			Kind:   &LoopSymbol{Scope: loopScope},
		})
		h.setScopeParent(loopScope, symbolParentOf(sym))
		h.addSymbolToScope(scope, sym, false)
		return sym

	case syntax.NodeFor:
		return h.addFor(src, scope, n)

	case syntax.NodeWhile:
		block := n.FirstOfKind(syntax.NodeBlock)
		var cond Symbol
		if first := n.Child(0); first != nil && first != block {
			cond = h.addExpression(src, scope, false, first)
		}
		whileScope := h.scopes.Insert(ScopeData{Source: rangeInfo(src, blockRange(n, block))})
		if block != nil {
			h.addStatements(src, whileScope, false, block.Children)
		}
		sym := h.symbols.Insert(SymbolData{
			Source: rangeInfo(src, n.Range),
			Ty:     h.builtinTypes.Unknown,
			Kind:   &WhileSymbol{Condition: cond, Scope: whileScope},
		})
		h.setScopeParent(whileScope, symbolParentOf(sym))
		h.addSymbolToScope(scope, sym, false)
		return sym

	case syntax.NodeBreak:
		sym := h.symbols.Insert(SymbolData{
			Source: rangeInfo(src, n.Range),
			Ty:     h.builtinTypes.Unknown,
			Kind:   &BreakSymbol{},
		})
		h.addSymbolToScope(scope, sym, false)
		return sym

	case syntax.NodeContinue:
		sym := h.symbols.Insert(SymbolData{
			Source: rangeInfo(src, n.Range),
			Ty:     h.builtinTypes.Unknown,
			Kind:   &ContinueSymbol{},
		})
		h.addSymbolToScope(scope, sym, false)
		return sym

	case syntax.NodeReturn:
		expr := h.addExpression(src, scope, false, n.Child(0))
		sym := h.symbols.Insert(SymbolData{
			Source: rangeInfo(src, n.Range),
			Ty:     h.builtinTypes.Unknown,
			Kind:   &ReturnSymbol{Expr: expr},
		})
		h.addSymbolToScope(scope, sym, false)
		return sym

	case syntax.NodeThrow:
		expr := h.addExpression(src, scope, false, n.Child(0))
		sym := h.symbols.Insert(SymbolData{
			Source: rangeInfo(src, n.Range),
			Ty:     h.builtinTypes.Unknown,
			Kind:   &ThrowSymbol{Expr: expr},
		})
		h.addSymbolToScope(scope, sym, false)
		return sym

	case syntax.NodeSwitch:
		return h.addSwitch(src, scope, n)

	case syntax.NodeTry:
		return h.addTry(src, scope, n)

	case syntax.NodeImport:
		return h.addImport(src, scope, canExport, n, false)

	case syntax.NodeExport:
		var target Symbol
		for _, c := range n.Children {
			if c.Kind == syntax.NodeDoc || c.Kind == syntax.NodeModuleDoc {
				continue
			}
			target = h.addExpression(src, scope, true, c)
			break
		}
		sym := h.symbols.Insert(SymbolData{
			// The wrapped declaration is exported, not the marker.
			Source: rangeInfo(src, n.Range),
			Ty:     h.builtinTypes.Unknown,
			Kind:   &ExportSymbol{Target: target},
		})
		h.addSymbolToScope(scope, sym, false)
		return sym

	default:
		// Error nodes, module headers in scripts, stray docs.
		return 0
	}
}

func (h *Hir) addRef(src Source, scope Scope, canExport bool, n *syntax.Node, partOfPath bool) Symbol {
	sym := h.symbols.Insert(SymbolData{
		Export: canExport,
		Source: selectionInfo(src, n.Range, n.Range),
		Ty:     h.builtinTypes.Unknown,
		Kind:   &RefSymbol{Name: n.Text, PartOfPath: partOfPath},
	})
	h.addSymbolToScope(scope, sym, false)
	return sym
}

func (h *Hir) addPath(src Source, scope Scope, canExport bool, n *syntax.Node) Symbol {
	pathScope := h.scopes.Insert(ScopeData{Source: rangeInfo(src, n.Range)})

	var segments []Symbol
	for _, seg := range n.ChildrenOfKind(syntax.NodeIdent) {
		segments = append(segments, h.addRef(src, pathScope, canExport, seg, true))
	}

	sym := h.symbols.Insert(SymbolData{
		Source: rangeInfo(src, n.Range),
		Ty:     h.builtinTypes.Unknown,
		Kind:   &PathSymbol{Scope: pathScope, Segments: segments},
	})
	h.addSymbolToScope(scope, sym, false)
	h.setScopeParent(pathScope, symbolParentOf(sym))
	return sym
}

func (h *Hir) addDecl(src Source, scope Scope, export bool, n *syntax.Node, isConst, hoist bool) Symbol {
	var nameNode, valueNode *syntax.Node
	for _, c := range n.Children {
		if c.Kind == syntax.NodeDoc || c.Kind == syntax.NodeModuleDoc {
			continue
		}
		if nameNode == nil && (c.Kind == syntax.NodeIdent || c.Kind == syntax.NodeDiscard) {
			nameNode = c
			continue
		}
		if nameNode != nil {
			valueNode = c
			break
		}
	}

	var value Symbol
	var valueScope Scope
	if valueNode != nil {
		valueScope = h.scopes.Insert(ScopeData{Source: rangeInfo(src, valueNode.Range)})
		value = h.addExpression(src, valueScope, false, valueNode)
	}

	info := rangeInfo(src, n.Range)
	name := ""
	if nameNode != nil {
		info = selectionInfo(src, n.Range, nameNode.Range)
		name = nameNode.Text
	}

	sym := h.symbols.Insert(SymbolData{
		Export: export,
		Source: info,
		Ty:     h.builtinTypes.Unknown,
		Kind: &DeclSymbol{
			Name:       name,
			Docs:       n.DocText(),
			IsConst:    isConst,
			Value:      value,
			ValueScope: valueScope,
		},
	})
	if !valueScope.IsNull() {
		h.setScopeParent(valueScope, symbolParentOf(sym))
	}
	h.addSymbolToScope(scope, sym, hoist)
	return sym
}

func (h *Hir) addFn(src Source, scope Scope, canExport bool, n *syntax.Node, isDef bool) Symbol {
	fnScope := h.scopes.Insert(ScopeData{Source: rangeInfo(src, n.Range)})
	h.addParams(src, fnScope, n.FirstOfKind(syntax.NodeParamList))

	body := n.FirstOfKind(syntax.NodeBlock)
	if body != nil {
		h.addStatements(src, fnScope, false, body.Children)
	}

	private := n.OpText() == "private"

	info := rangeInfo(src, n.Range)
	name := ""
	if ident := n.FirstOfKind(syntax.NodeIdent); ident != nil {
		info = selectionInfo(src, n.Range, ident.Range)
		name = ident.Text
	}

	sym := h.symbols.Insert(SymbolData{
		Export: canExport && !private,
		Source: info,
		Ty:     h.builtinTypes.Unknown,
		Kind: &FnSymbol{
			Name:    name,
			Docs:    n.DocText(),
			Scope:   fnScope,
			IsDef:   isDef || body == nil,
			Private: private,
		},
	})
	h.addSymbolToScope(scope, sym, true)
	h.setScopeParent(fnScope, symbolParentOf(sym))
	return sym
}

func (h *Hir) addOpDecl(src Source, scope Scope, n *syntax.Node) Symbol {
	opScope := h.scopes.Insert(ScopeData{Source: rangeInfo(src, n.Range)})
	h.addParams(src, opScope, n.FirstOfKind(syntax.NodeParamList))

	if body := n.FirstOfKind(syntax.NodeBlock); body != nil {
		h.addStatements(src, opScope, false, body.Children)
	}

	sym := h.symbols.Insert(SymbolData{
		Export: true,
		Source: rangeInfo(src, n.Range),
		Ty:     h.builtinTypes.Unknown,
		Kind: &OpSymbol{
			Name:  n.OpText(),
			Docs:  n.DocText(),
			Scope: opScope,
		},
	})
	h.addSymbolToScope(scope, sym, true)
	h.setScopeParent(opScope, symbolParentOf(sym))
	return sym
}

// addParams inserts the parameter declarations as the ordered prefix of
// the owning scope.
func (h *Hir) addParams(src Source, scope Scope, paramList *syntax.Node) {
	if paramList == nil {
		return
	}
	for _, param := range paramList.ChildrenOfKind(syntax.NodeParam) {
		info := rangeInfo(src, param.Range)
		name := ""
		if id := param.Child(0); id != nil {
			info = selectionInfo(src, param.Range, id.Range)
			name = id.Text
		}
		sym := h.symbols.Insert(SymbolData{
			Source: info,
			Ty:     h.builtinTypes.Unknown,
			Kind:   &DeclSymbol{Name: name, IsParam: true},
		})
		h.addSymbolToScope(scope, sym, false)
	}
}

func (h *Hir) addFor(src Source, scope Scope, n *syntax.Node) Symbol {
	block := n.FirstOfKind(syntax.NodeBlock)
	forScope := h.scopes.Insert(ScopeData{Source: rangeInfo(src, blockRange(n, block))})

	var rest []*syntax.Node
	for _, c := range n.Children {
		if c != block {
			rest = append(rest, c)
		}
	}

	var iterNode *syntax.Node
	switch len(rest) {
	case 0:
	case 1:
		iterNode = rest[0]
	default:
		pat := rest[0]
		if pat.Kind == syntax.NodeIdent || pat.Kind == syntax.NodeDiscard {
			decl := h.symbols.Insert(SymbolData{
				Source: selectionInfo(src, pat.Range, pat.Range),
				Ty:     h.builtinTypes.Unknown,
				Kind:   &DeclSymbol{Name: pat.Text, IsPat: true},
			})
			h.addSymbolToScope(forScope, decl, false)
		}
		iterNode = rest[1]
	}

	iterable := h.addExpression(src, scope, false, iterNode)

	if block != nil {
		h.addStatements(src, forScope, false, block.Children)
	}

	sym := h.symbols.Insert(SymbolData{
		Source: rangeInfo(src, n.Range),
		Ty:     h.builtinTypes.Unknown,
		Kind:   &ForSymbol{Iterable: iterable, Scope: forScope},
	})
	h.setScopeParent(forScope, symbolParentOf(sym))
	h.addSymbolToScope(scope, sym, false)
	return sym
}

func (h *Hir) addSwitch(src Source, scope Scope, n *syntax.Node) Symbol {
	var target Symbol
	if first := n.Child(0); first != nil && first.Kind != syntax.NodeSwitchArm {
		target = h.addExpression(src, scope, false, first)
	}

	var arms []SwitchArm
	for _, armNode := range n.ChildrenOfKind(syntax.NodeSwitchArm) {
		arms = append(arms, SwitchArm{
			Pattern: h.addExpression(src, scope, false, armNode.Child(0)),
			Value:   h.addExpression(src, scope, false, armNode.Child(1)),
		})
	}

	sym := h.symbols.Insert(SymbolData{
		Source: rangeInfo(src, n.Range),
		Ty:     h.builtinTypes.Unknown,
		Kind:   &SwitchSymbol{Target: target, Arms: arms},
	})
	h.addSymbolToScope(scope, sym, false)
	return sym
}

func (h *Hir) addTry(src Source, scope Scope, n *syntax.Node) Symbol {
	blocks := n.ChildrenOfKind(syntax.NodeBlock)

	var tryBlock, catchBlock *syntax.Node
	if len(blocks) > 0 {
		tryBlock = blocks[0]
	}
	if len(blocks) > 1 {
		catchBlock = blocks[1]
	}

	tryScope := h.scopes.Insert(ScopeData{Source: rangeInfo(src, blockRange(n, tryBlock))})
	if tryBlock != nil {
		h.addStatements(src, tryScope, false, tryBlock.Children)
	}

	catchScope := h.scopes.Insert(ScopeData{Source: rangeInfo(src, blockRange(n, catchBlock))})
	h.addParams(src, catchScope, n.FirstOfKind(syntax.NodeParamList))
	if catchBlock != nil {
		h.addStatements(src, catchScope, false, catchBlock.Children)
	}

	sym := h.symbols.Insert(SymbolData{
		Source: rangeInfo(src, n.Range),
		Ty:     h.builtinTypes.Unknown,
		Kind:   &TrySymbol{TryScope: tryScope, CatchScope: catchScope},
	})
	h.setScopeParent(tryScope, symbolParentOf(sym))
	h.setScopeParent(catchScope, symbolParentOf(sym))
	h.addSymbolToScope(scope, sym, false)
	return sym
}

func (h *Hir) addImport(src Source, scope Scope, canExport bool, n *syntax.Node, hoist bool) Symbol {
	importScope := h.scopes.Insert(ScopeData{Source: rangeInfo(src, n.Range)})

	path := ""
	var pathRef Symbol
	if lit := n.FirstOfKind(syntax.NodeLitString); lit != nil {
		path = lit.StringValue()
		pathRef = h.addExpression(src, importScope, false, lit)
	}

	var alias Symbol
	aliasName := ""
	if aliasNode := n.FirstOfKind(syntax.NodeIdent); aliasNode != nil {
		aliasName = aliasNode.Text
		alias = h.symbols.Insert(SymbolData{
			Export: canExport,
			Source: selectionInfo(src, aliasNode.Range, aliasNode.Range),
			Ty:     h.builtinTypes.Unknown,
			Kind:   &DeclSymbol{Name: aliasName, IsImport: true},
		})
		h.addSymbolToScope(importScope, alias, hoist)
	}

	sym := h.symbols.Insert(SymbolData{
		Export: true,
		Source: rangeInfo(src, n.Range),
		Ty:     h.builtinTypes.Unknown,
		Kind: &ImportSymbol{
			Scope:     importScope,
			Path:      path,
			PathRef:   pathRef,
			Alias:     alias,
			AliasName: aliasName,
		},
	})
	h.addSymbolToScope(scope, sym, hoist)
	h.setScopeParent(importScope, symbolParentOf(sym))
	return sym
}

// markFieldAccess flags the reference on the right of a '.' so that
// resolution and error collection skip it. Method calls keep the flag on
// the callee.
func (h *Hir) markFieldAccess(sym Symbol) {
	if sym.IsNull() {
		return
	}
	switch k := h.mustSymbol(sym).Kind.(type) {
	case *RefSymbol:
		k.FieldAccess = true
	case *CallSymbol:
		h.markFieldAccess(k.Lhs)
	}
}

func moduleDocs(root *syntax.Node) string {
	var lines []string
	for _, c := range root.ChildrenOfKind(syntax.NodeModuleDoc) {
		line := strings.TrimPrefix(c.Text, "//!")
		lines = append(lines, strings.TrimPrefix(line, " "))
	}
	return strings.Join(lines, "\n")
}

func blockRange(parent, block *syntax.Node) source.TextRange {
	if block != nil {
		return block.Range
	}
	return parent.Range
}

func litValue(n *syntax.Node) Value {
	switch n.Kind {
	case syntax.NodeLitInt:
		if v, err := strconv.ParseInt(n.Text, 10, 64); err == nil {
			return IntValue(v)
		}
	case syntax.NodeLitFloat:
		if v, err := strconv.ParseFloat(n.Text, 64); err == nil {
			return FloatValue(v)
		}
	case syntax.NodeLitBool:
		return BoolValue(n.Text == "true")
	case syntax.NodeLitString:
		return StringValue(n.StringValue())
	case syntax.NodeLitChar:
		if r := charValue(n.Text); r != 0 {
			return CharValue(r)
		}
	}
	return Value{}
}

func charValue(text string) rune {
	if len(text) < 2 {
		return 0
	}
	body := text[1 : len(text)-1]
	if body == "" {
		return 0
	}
	if body[0] != '\\' {
		return []rune(body)[0]
	}
	if len(body) < 2 {
		return 0
	}
	switch body[1] {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '\\':
		return '\\'
	case '\'':
		return '\''
	case '"':
		return '"'
	default:
		return rune(body[1])
	}
}
