package token

// Kind classifies a lexical token.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindEOF

	KindIdent
	KindInt
	KindFloat
	KindString
	KindChar

	// Doc comments survive lexing; ordinary comments are dropped.
	KindDocComment    // ///
	KindModuleComment // //!

	// Keywords.
	KindKwLet
	KindKwConst
	KindKwFn
	KindKwOp
	KindKwModule
	KindKwIf
	KindKwElse
	KindKwLoop
	KindKwFor
	KindKwWhile
	KindKwIn
	KindKwBreak
	KindKwContinue
	KindKwReturn
	KindKwThrow
	KindKwSwitch
	KindKwTry
	KindKwCatch
	KindKwImport
	KindKwExport
	KindKwAs
	KindKwPrivate
	KindKwTrue
	KindKwFalse

	// Punctuation and operators.
	KindLParen
	KindRParen
	KindLBrace
	KindRBrace
	KindLBracket
	KindRBracket
	KindHashBrace // #{
	KindComma
	KindSemi
	KindColon
	KindPathSep // ::
	KindDot
	KindArrow // =>
	KindPipe  // | (closure parameter delimiter)
	KindUnderscore

	KindAssign // =
	KindPlus
	KindMinus
	KindStar
	KindSlash
	KindPercent
	KindEq // ==
	KindNe // !=
	KindLt
	KindLe
	KindGt
	KindGe
	KindAndAnd
	KindOrOr
	KindBang
)

var keywords = map[string]Kind{
	"let":      KindKwLet,
	"const":    KindKwConst,
	"fn":       KindKwFn,
	"op":       KindKwOp,
	"module":   KindKwModule,
	"if":       KindKwIf,
	"else":     KindKwElse,
	"loop":     KindKwLoop,
	"for":      KindKwFor,
	"while":    KindKwWhile,
	"in":       KindKwIn,
	"break":    KindKwBreak,
	"continue": KindKwContinue,
	"return":   KindKwReturn,
	"throw":    KindKwThrow,
	"switch":   KindKwSwitch,
	"try":      KindKwTry,
	"catch":    KindKwCatch,
	"import":   KindKwImport,
	"export":   KindKwExport,
	"as":       KindKwAs,
	"private":  KindKwPrivate,
	"true":     KindKwTrue,
	"false":    KindKwFalse,
}

// LookupIdent maps identifier text to a keyword kind, or KindIdent.
func LookupIdent(text string) Kind {
	if kw, ok := keywords[text]; ok {
		return kw
	}
	return KindIdent
}

// IsKeyword reports whether the kind is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KindKwLet && k <= KindKwFalse
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

var kindNames = map[Kind]string{
	KindEOF:           "eof",
	KindIdent:         "identifier",
	KindInt:           "integer literal",
	KindFloat:         "float literal",
	KindString:        "string literal",
	KindChar:          "char literal",
	KindDocComment:    "doc comment",
	KindModuleComment: "module comment",
	KindKwLet:         "'let'",
	KindKwConst:       "'const'",
	KindKwFn:          "'fn'",
	KindKwOp:          "'op'",
	KindKwModule:      "'module'",
	KindKwIf:          "'if'",
	KindKwElse:        "'else'",
	KindKwLoop:        "'loop'",
	KindKwFor:         "'for'",
	KindKwWhile:       "'while'",
	KindKwIn:          "'in'",
	KindKwBreak:       "'break'",
	KindKwContinue:    "'continue'",
	KindKwReturn:      "'return'",
	KindKwThrow:       "'throw'",
	KindKwSwitch:      "'switch'",
	KindKwTry:         "'try'",
	KindKwCatch:       "'catch'",
	KindKwImport:      "'import'",
	KindKwExport:      "'export'",
	KindKwAs:          "'as'",
	KindKwPrivate:     "'private'",
	KindKwTrue:        "'true'",
	KindKwFalse:       "'false'",
	KindLParen:        "'('",
	KindRParen:        "')'",
	KindLBrace:        "'{'",
	KindRBrace:        "'}'",
	KindLBracket:      "'['",
	KindRBracket:      "']'",
	KindHashBrace:     "'#{'",
	KindComma:         "','",
	KindSemi:          "';'",
	KindColon:         "':'",
	KindPathSep:       "'::'",
	KindDot:           "'.'",
	KindArrow:         "'=>'",
	KindPipe:          "'|'",
	KindUnderscore:    "'_'",
	KindAssign:        "'='",
	KindPlus:          "'+'",
	KindMinus:         "'-'",
	KindStar:          "'*'",
	KindSlash:         "'/'",
	KindPercent:       "'%'",
	KindEq:            "'=='",
	KindNe:            "'!='",
	KindLt:            "'<'",
	KindLe:            "'<='",
	KindGt:            "'>'",
	KindGe:            "'>='",
	KindAndAnd:        "'&&'",
	KindOrOr:          "'||'",
	KindBang:          "'!'",
}
