package hir

import "strings"

// TypeKindTag discriminates type kinds.
type TypeKindTag uint8

const (
	TypeUnknown TypeKindTag = iota
	TypeModule
	TypeInt
	TypeFloat
	TypeBool
	TypeChar
	TypeString
	TypeTimestamp
	TypeVoid
	TypeArray
	TypeObject
	TypeUnion
	TypeFn
	TypeCustom
)

// TypeKind is one inferred type shape. Only the fields relevant to the
// tag are populated.
type TypeKind struct {
	Tag TypeKindTag

	// TypeArray
	Items      Type
	KnownItems int

	// TypeObject: ordered fields
	Fields []TypeField

	// TypeUnion: deduplicated member list, order of first appearance
	Members []Type

	// TypeFn
	IsClosure bool
	Params    []TypeParam
	Ret       Type

	// TypeCustom
	Name string
}

type TypeField struct {
	Name string
	Ty   Type
}

type TypeParam struct {
	Name string
	Ty   Type
}

// TypeData is one interned type. Protected types are the builtins and are
// never removed with their source.
type TypeData struct {
	Source    SourceInfo
	Protected bool
	Kind      TypeKind
}

// BuiltinTypes caches the pre-interned primitive type keys. They are
// created once in prepare and live as long as the graph.
type BuiltinTypes struct {
	Module    Type
	Int       Type
	Float     Type
	Bool      Type
	Char      Type
	String    Type
	Timestamp Type
	Void      Type
	Unknown   Type
}

func (b BuiltinTypes) initialized() bool {
	return !b.Unknown.IsNull()
}

// unionOf folds a list of candidate types into one: empty folds to void,
// a single distinct member folds to itself, anything else becomes a
// deduplicated union. Builtins are interned, so key identity doubles as
// structural identity for them.
func (h *Hir) unionOf(src SourceInfo, types []Type) Type {
	var members []Type
	for _, t := range types {
		if t.IsNull() {
			continue
		}
		dup := false
		for _, m := range members {
			if m == t {
				dup = true
				break
			}
		}
		if !dup {
			members = append(members, t)
		}
	}

	switch len(members) {
	case 0:
		return h.builtinTypes.Void
	case 1:
		return members[0]
	default:
		return h.types.Insert(TypeData{
			Source: src,
			Kind:   TypeKind{Tag: TypeUnion, Members: members},
		})
	}
}

// FormatType renders a type for presentation. Unknown renders as "?".
func (h *Hir) FormatType(t Type) string {
	var sb strings.Builder
	h.formatType(&sb, t, 0)
	return sb.String()
}

func (h *Hir) formatType(sb *strings.Builder, t Type, depth int) {
	if depth > 16 {
		sb.WriteString("...")
		return
	}
	if t.IsNull() {
		sb.WriteString("?")
		return
	}
	data := h.types.Get(t)
	if data == nil {
		sb.WriteString("?")
		return
	}

	switch data.Kind.Tag {
	case TypeModule:
		sb.WriteString("module")
	case TypeInt:
		sb.WriteString("int")
	case TypeFloat:
		sb.WriteString("float")
	case TypeBool:
		sb.WriteString("bool")
	case TypeChar:
		sb.WriteString("char")
	case TypeString:
		sb.WriteString("String")
	case TypeTimestamp:
		sb.WriteString("timestamp")
	case TypeVoid:
		sb.WriteString("()")
	case TypeArray:
		sb.WriteString("[")
		h.formatType(sb, data.Kind.Items, depth+1)
		sb.WriteString("]")
	case TypeObject:
		sb.WriteString("#{")
		for i, f := range data.Kind.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Name)
			sb.WriteString(": ")
			h.formatType(sb, f.Ty, depth+1)
		}
		sb.WriteString("}")
	case TypeUnion:
		for i, m := range data.Kind.Members {
			if i > 0 {
				sb.WriteString(" | ")
			}
			h.formatType(sb, m, depth+1)
		}
	case TypeFn:
		if data.Kind.IsClosure {
			sb.WriteString("|")
		} else {
			sb.WriteString("fn (")
		}
		for i, p := range data.Kind.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Name)
			sb.WriteString(": ")
			h.formatType(sb, p.Ty, depth+1)
		}
		if data.Kind.IsClosure {
			sb.WriteString("|")
		} else {
			sb.WriteString(")")
		}
		sb.WriteString(" -> ")
		h.formatType(sb, data.Kind.Ret, depth+1)
	case TypeCustom:
		sb.WriteString(data.Kind.Name)
	default:
		sb.WriteString("?")
	}
}
