package hir

// ReferenceTarget is what a reference or alias resolved to: a symbol or a
// module. The zero value means unresolved.
type ReferenceTarget struct {
	Symbol Symbol
	Module Module
}

func SymbolTarget(s Symbol) ReferenceTarget { return ReferenceTarget{Symbol: s} }
func ModuleTarget(m Module) ReferenceTarget { return ReferenceTarget{Module: m} }

func (t ReferenceTarget) IsNull() bool {
	return t.Symbol.IsNull() && t.Module.IsNull()
}

// SymbolData is one node of the semantic graph.
type SymbolData struct {
	Source      SourceInfo
	ParentScope Scope
	Export      bool
	Ty          Type
	Kind        SymbolKind
}

// Name returns the name the symbol contributes to name resolution, or ""
// for anonymous symbols.
func (d *SymbolData) Name() string {
	switch k := d.Kind.(type) {
	case *FnSymbol:
		return k.Name
	case *OpSymbol:
		return k.Name
	case *DeclSymbol:
		return k.Name
	case *RefSymbol:
		return k.Name
	case *ImportSymbol:
		return k.AliasName
	default:
		return ""
	}
}

// Docs returns attached documentation, or "".
func (d *SymbolData) Docs() string {
	switch k := d.Kind.(type) {
	case *FnSymbol:
		return k.Docs
	case *OpSymbol:
		return k.Docs
	case *DeclSymbol:
		return k.Docs
	default:
		return ""
	}
}

// Target returns what the symbol points at, for the kinds that point.
func (d *SymbolData) Target() ReferenceTarget {
	switch k := d.Kind.(type) {
	case *RefSymbol:
		return k.Target
	case *DeclSymbol:
		return k.Target
	case *ImportSymbol:
		return ReferenceTarget{Module: k.Target}
	default:
		return ReferenceTarget{}
	}
}

// IsParam reports whether the symbol is a parameter declaration.
func (d *SymbolData) IsParam() bool {
	decl, ok := d.Kind.(*DeclSymbol)
	return ok && decl.IsParam
}

// SymbolKind is a closed sum; exactly one *XxxSymbol struct per variant.
type SymbolKind interface{ isSymbolKind() }

// FnSymbol is a named function. The scope holds the parameters first,
// then the body statements.
type FnSymbol struct {
	Name       string
	Docs       string
	Scope      Scope
	IsDef      bool // signature from a definition file, has no body
	Private    bool
	References map[Symbol]struct{}
}

// OpSymbol is a custom operator declaration.
type OpSymbol struct {
	Name       string
	Docs       string
	Scope      Scope
	References map[Symbol]struct{}
}

// DeclSymbol is a binding: let, const, parameter, loop or catch pattern,
// or an import alias.
type DeclSymbol struct {
	Name       string
	Docs       string
	IsConst    bool
	IsParam    bool
	IsPat      bool
	IsImport   bool
	Value      Symbol // initializer expression, if any
	ValueScope Scope  // scope holding the initializer, parented by this decl
	Target     ReferenceTarget
	References map[Symbol]struct{}
}

// RefSymbol is a use of a name.
type RefSymbol struct {
	Name        string
	Target      ReferenceTarget
	FieldAccess bool // right side of '.', never resolved through scopes
	PartOfPath  bool
}

// PathSymbol is a `::`-separated reference chain; segments are RefSymbols
// living in their own scope.
type PathSymbol struct {
	Scope    Scope
	Segments []Symbol
}

// BlockSymbol is a braced statement list with its own scope.
type BlockSymbol struct {
	Scope Scope
}

// LitSymbol is a literal expression.
type LitSymbol struct {
	Value Value
}

type UnarySymbol struct {
	Op  string
	Rhs Symbol
}

// BinarySymbol covers operators and field access; operands live in a
// dedicated scope parented by this symbol.
type BinarySymbol struct {
	Scope Scope
	Op    string
	Lhs   Symbol
	Rhs   Symbol
}

// IsFieldAccess reports whether this is a '.' access.
func (b *BinarySymbol) IsFieldAccess() bool { return b.Op == "." }

type ArraySymbol struct {
	Values []Symbol
}

type IndexSymbol struct {
	Base  Symbol
	Index Symbol
}

// ObjectField is one `name: value` pair of an object literal.
type ObjectField struct {
	Name        string
	NameSource  SourceInfo
	FieldSource SourceInfo
	Value       Symbol
}

type ObjectSymbol struct {
	Fields []ObjectField // ordered by appearance
}

type CallSymbol struct {
	Lhs       Symbol
	Arguments []Symbol
}

// ClosureSymbol owns a scope with the parameters followed by the body.
type ClosureSymbol struct {
	Scope Scope
	Expr  Symbol
}

// IfBranch is one condition/body pair; the trailing else has a null
// condition.
type IfBranch struct {
	Condition Symbol
	Scope     Scope
}

type IfSymbol struct {
	Branches []IfBranch
}

type LoopSymbol struct {
	Scope Scope
}

// ForSymbol's scope holds the loop variable followed by the body.
type ForSymbol struct {
	Iterable Symbol
	Scope    Scope
}

type WhileSymbol struct {
	Condition Symbol
	Scope     Scope
}

type BreakSymbol struct{}

type ContinueSymbol struct{}

type ReturnSymbol struct {
	Expr Symbol
}

type ThrowSymbol struct {
	Expr Symbol
}

// SwitchArm pairs a pattern expression with a value expression.
type SwitchArm struct {
	Pattern Symbol
	Value   Symbol
}

type SwitchSymbol struct {
	Target Symbol
	Arms   []SwitchArm
}

// ImportSymbol owns a scope containing the alias declaration.
type ImportSymbol struct {
	Scope     Scope
	Path      string // unescaped import path as written
	PathRef   Symbol // the literal expression symbol
	Alias     Symbol // alias DeclSymbol, null when `import "x";`
	AliasName string
	Target    Module
}

// ExportSymbol wraps an exported declaration; the export marker itself is
// not a visible name.
type ExportSymbol struct {
	Target Symbol
}

// TrySymbol owns two scopes; the catch scope holds the catch parameter
// followed by the handler body.
type TrySymbol struct {
	TryScope   Scope
	CatchScope Scope
}

type DiscardSymbol struct{}

func (*FnSymbol) isSymbolKind()       {}
func (*OpSymbol) isSymbolKind()       {}
func (*DeclSymbol) isSymbolKind()     {}
func (*RefSymbol) isSymbolKind()      {}
func (*PathSymbol) isSymbolKind()     {}
func (*BlockSymbol) isSymbolKind()    {}
func (*LitSymbol) isSymbolKind()      {}
func (*UnarySymbol) isSymbolKind()    {}
func (*BinarySymbol) isSymbolKind()   {}
func (*ArraySymbol) isSymbolKind()    {}
func (*IndexSymbol) isSymbolKind()    {}
func (*ObjectSymbol) isSymbolKind()   {}
func (*CallSymbol) isSymbolKind()     {}
func (*ClosureSymbol) isSymbolKind()  {}
func (*IfSymbol) isSymbolKind()       {}
func (*LoopSymbol) isSymbolKind()     {}
func (*ForSymbol) isSymbolKind()      {}
func (*WhileSymbol) isSymbolKind()    {}
func (*BreakSymbol) isSymbolKind()    {}
func (*ContinueSymbol) isSymbolKind() {}
func (*ReturnSymbol) isSymbolKind()   {}
func (*ThrowSymbol) isSymbolKind()    {}
func (*SwitchSymbol) isSymbolKind()   {}
func (*ImportSymbol) isSymbolKind()   {}
func (*ExportSymbol) isSymbolKind()   {}
func (*TrySymbol) isSymbolKind()      {}
func (*DiscardSymbol) isSymbolKind()  {}

// addReference records a back-reference on a Fn, Op or Decl target.
func addReference(kind SymbolKind, ref Symbol) {
	switch k := kind.(type) {
	case *FnSymbol:
		if k.References == nil {
			k.References = make(map[Symbol]struct{})
		}
		k.References[ref] = struct{}{}
	case *OpSymbol:
		if k.References == nil {
			k.References = make(map[Symbol]struct{})
		}
		k.References[ref] = struct{}{}
	case *DeclSymbol:
		if k.References == nil {
			k.References = make(map[Symbol]struct{})
		}
		k.References[ref] = struct{}{}
	}
}

// dropReference removes a back-reference, if present.
func dropReference(kind SymbolKind, ref Symbol) {
	switch k := kind.(type) {
	case *FnSymbol:
		delete(k.References, ref)
	case *OpSymbol:
		delete(k.References, ref)
	case *DeclSymbol:
		delete(k.References, ref)
	}
}
