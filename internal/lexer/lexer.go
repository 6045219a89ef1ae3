// Package lexer turns Quill source text into a flat token stream.
// Ordinary comments and whitespace are dropped; doc comments are kept so
// the parser can attach them to the following declaration.
package lexer

import (
	"fmt"
	"strings"

	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/token"
)

// Lexer scans one source text.
type Lexer struct {
	url      string
	src      string
	pos      uint32
	reporter diag.Reporter
}

// New creates a lexer for the given text. The url is only used for
// diagnostic spans.
func New(url, src string, reporter diag.Reporter) *Lexer {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Lexer{url: url, src: src, reporter: reporter}
}

// Lex scans the whole input and returns the tokens, terminated by EOF.
func Lex(url, src string, reporter diag.Reporter) []token.Token {
	lx := New(url, src, reporter)
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.KindEOF {
			return tokens
		}
	}
}

// Next scans and returns the next non-trivia token.
func (lx *Lexer) Next() token.Token {
	for {
		lx.skipWhitespace()
		if lx.eof() {
			return lx.make(token.KindEOF, lx.pos, lx.pos)
		}

		c := lx.src[lx.pos]
		switch {
		case c == '/' && lx.peekAt(1) == '/':
			if tok, keep := lx.scanLineComment(); keep {
				return tok
			}
			continue
		case c == '/' && lx.peekAt(1) == '*':
			lx.skipBlockComment()
			continue
		case isIdentStart(c):
			return lx.scanIdent()
		case c >= '0' && c <= '9':
			return lx.scanNumber()
		case c == '"':
			return lx.scanString()
		case c == '\'':
			return lx.scanChar()
		default:
			return lx.scanOperator()
		}
	}
}

func (lx *Lexer) scanIdent() token.Token {
	start := lx.pos
	for !lx.eof() && isIdentPart(lx.src[lx.pos]) {
		lx.pos++
	}
	text := lx.src[start:lx.pos]
	if text == "_" {
		return lx.make(token.KindUnderscore, start, lx.pos)
	}
	return lx.make(token.LookupIdent(text), start, lx.pos)
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.pos
	kind := token.KindInt
	for !lx.eof() && isDigit(lx.src[lx.pos]) {
		lx.pos++
	}
	// A fraction part requires a digit right after the dot, so that
	// `1.abs()` still lexes as an int followed by a method call.
	if !lx.eof() && lx.src[lx.pos] == '.' && isDigit(lx.peekAt(1)) {
		kind = token.KindFloat
		lx.pos++
		for !lx.eof() && isDigit(lx.src[lx.pos]) {
			lx.pos++
		}
	}
	if !lx.eof() && isIdentStart(lx.src[lx.pos]) {
		for !lx.eof() && isIdentPart(lx.src[lx.pos]) {
			lx.pos++
		}
		lx.report(diag.LexBadNumber, start, "malformed numeric literal")
	}
	return lx.make(kind, start, lx.pos)
}

func (lx *Lexer) scanString() token.Token {
	start := lx.pos
	lx.pos++ // opening quote
	for !lx.eof() {
		c := lx.src[lx.pos]
		if c == '\\' && lx.pos+1 < uint32(len(lx.src)) {
			lx.pos += 2
			continue
		}
		if c == '"' {
			lx.pos++
			return lx.make(token.KindString, start, lx.pos)
		}
		if c == '\n' {
			break
		}
		lx.pos++
	}
	lx.report(diag.LexUnterminatedString, start, "unterminated string literal")
	return lx.make(token.KindString, start, lx.pos)
}

func (lx *Lexer) scanChar() token.Token {
	start := lx.pos
	lx.pos++ // opening quote
	for !lx.eof() {
		c := lx.src[lx.pos]
		if c == '\\' && lx.pos+1 < uint32(len(lx.src)) {
			lx.pos += 2
			continue
		}
		if c == '\'' {
			lx.pos++
			return lx.make(token.KindChar, start, lx.pos)
		}
		if c == '\n' {
			break
		}
		lx.pos++
	}
	lx.report(diag.LexUnterminatedChar, start, "unterminated char literal")
	return lx.make(token.KindChar, start, lx.pos)
}

func (lx *Lexer) scanLineComment() (token.Token, bool) {
	start := lx.pos
	for !lx.eof() && lx.src[lx.pos] != '\n' {
		lx.pos++
	}
	text := lx.src[start:lx.pos]
	switch {
	case strings.HasPrefix(text, "///"):
		return lx.make(token.KindDocComment, start, lx.pos), true
	case strings.HasPrefix(text, "//!"):
		return lx.make(token.KindModuleComment, start, lx.pos), true
	default:
		return token.Token{}, false
	}
}

func (lx *Lexer) skipBlockComment() {
	lx.pos += 2
	depth := 1
	for !lx.eof() && depth > 0 {
		if lx.src[lx.pos] == '/' && lx.peekAt(1) == '*' {
			depth++
			lx.pos += 2
			continue
		}
		if lx.src[lx.pos] == '*' && lx.peekAt(1) == '/' {
			depth--
			lx.pos += 2
			continue
		}
		lx.pos++
	}
}

func (lx *Lexer) scanOperator() token.Token {
	start := lx.pos
	two := ""
	if lx.pos+2 <= uint32(len(lx.src)) {
		two = lx.src[lx.pos : lx.pos+2]
	}

	if kind, ok := twoCharOps[two]; ok {
		lx.pos += 2
		return lx.make(kind, start, lx.pos)
	}
	if kind, ok := oneCharOps[lx.src[lx.pos]]; ok {
		lx.pos++
		return lx.make(kind, start, lx.pos)
	}

	lx.pos++
	lx.report(diag.LexUnknownChar, start, fmt.Sprintf("unexpected character %q", lx.src[start]))
	return lx.make(token.KindInvalid, start, lx.pos)
}

var twoCharOps = map[string]token.Kind{
	"#{": token.KindHashBrace,
	"::": token.KindPathSep,
	"=>": token.KindArrow,
	"==": token.KindEq,
	"!=": token.KindNe,
	"<=": token.KindLe,
	">=": token.KindGe,
	"&&": token.KindAndAnd,
	"||": token.KindOrOr,
}

var oneCharOps = map[byte]token.Kind{
	'(': token.KindLParen,
	')': token.KindRParen,
	'{': token.KindLBrace,
	'}': token.KindRBrace,
	'[': token.KindLBracket,
	']': token.KindRBracket,
	',': token.KindComma,
	';': token.KindSemi,
	':': token.KindColon,
	'.': token.KindDot,
	'|': token.KindPipe,
	'=': token.KindAssign,
	'+': token.KindPlus,
	'-': token.KindMinus,
	'*': token.KindStar,
	'/': token.KindSlash,
	'%': token.KindPercent,
	'<': token.KindLt,
	'>': token.KindGt,
	'!': token.KindBang,
}

func (lx *Lexer) skipWhitespace() {
	for !lx.eof() {
		switch lx.src[lx.pos] {
		case ' ', '\t', '\r', '\n':
			lx.pos++
		default:
			return
		}
	}
}

func (lx *Lexer) make(kind token.Kind, start, end uint32) token.Token {
	return token.Token{
		Kind:  kind,
		Text:  lx.src[start:end],
		Range: source.TextRange{Start: start, End: end},
	}
}

func (lx *Lexer) report(code diag.Code, start uint32, msg string) {
	span := source.Span{URL: lx.url, Range: source.TextRange{Start: start, End: lx.pos}}
	diag.ReportError(lx.reporter, code, span, msg).Emit()
}

func (lx *Lexer) eof() bool {
	return lx.pos >= uint32(len(lx.src))
}

func (lx *Lexer) peekAt(n uint32) byte {
	if lx.pos+n >= uint32(len(lx.src)) {
		return 0
	}
	return lx.src[lx.pos+n]
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
