package syntax

// NodeKind classifies a syntax tree node.
type NodeKind uint8

const (
	NodeError NodeKind = iota

	// Leaves.
	NodeIdent
	NodeLitInt
	NodeLitFloat
	NodeLitBool
	NodeLitString
	NodeLitChar
	NodeOp      // operator leaf inside unary/binary/op-decl nodes
	NodeDiscard // the `_` pattern
	NodeDoc
	NodeModuleDoc

	// Roots.
	NodeScript // statement list executed top to bottom
	NodeDef    // definition file: header plus declarations only

	// Declarations and statements.
	NodeModuleHeader
	NodeLet
	NodeConst
	NodeFn
	NodeOpDecl
	NodeParamList
	NodeParam
	NodeBlock
	NodeIf
	NodeBranch // one condition+body pair of an if chain; else has no condition
	NodeLoop
	NodeFor
	NodeWhile
	NodeBreak
	NodeContinue
	NodeReturn
	NodeThrow
	NodeSwitch
	NodeSwitchArm
	NodeImport
	NodeExport
	NodeTry

	// Expressions.
	NodePath
	NodeUnary
	NodeBinary
	NodeParen
	NodeArray
	NodeObject
	NodeObjectField
	NodeIndex
	NodeCall
	NodeArgList
	NodeClosure
)

var nodeKindNames = map[NodeKind]string{
	NodeError:        "Error",
	NodeIdent:        "Ident",
	NodeLitInt:       "LitInt",
	NodeLitFloat:     "LitFloat",
	NodeLitBool:      "LitBool",
	NodeLitString:    "LitString",
	NodeLitChar:      "LitChar",
	NodeOp:           "Op",
	NodeDiscard:      "Discard",
	NodeDoc:          "Doc",
	NodeModuleDoc:    "ModuleDoc",
	NodeScript:       "Script",
	NodeDef:          "Def",
	NodeModuleHeader: "ModuleHeader",
	NodeLet:          "Let",
	NodeConst:        "Const",
	NodeFn:           "Fn",
	NodeOpDecl:       "OpDecl",
	NodeParamList:    "ParamList",
	NodeParam:        "Param",
	NodeBlock:        "Block",
	NodeIf:           "If",
	NodeBranch:       "Branch",
	NodeLoop:         "Loop",
	NodeFor:          "For",
	NodeWhile:        "While",
	NodeBreak:        "Break",
	NodeContinue:     "Continue",
	NodeReturn:       "Return",
	NodeThrow:        "Throw",
	NodeSwitch:       "Switch",
	NodeSwitchArm:    "SwitchArm",
	NodeImport:       "Import",
	NodeExport:       "Export",
	NodeTry:          "Try",
	NodePath:         "Path",
	NodeUnary:        "Unary",
	NodeBinary:       "Binary",
	NodeParen:        "Paren",
	NodeArray:        "Array",
	NodeObject:       "Object",
	NodeObjectField:  "ObjectField",
	NodeIndex:        "Index",
	NodeCall:         "Call",
	NodeArgList:      "ArgList",
	NodeClosure:      "Closure",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsLeaf reports whether nodes of this kind carry text instead of children.
func (k NodeKind) IsLeaf() bool {
	return k >= NodeIdent && k <= NodeModuleDoc
}
