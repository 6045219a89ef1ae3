// Package parser builds syntax trees from token streams. It is error
// tolerant: malformed input yields Error nodes plus diagnostics, never a
// failed parse, so semantic analysis always has a tree to work with.
package parser

import (
	"fmt"

	"quill/internal/diag"
	"quill/internal/lexer"
	"quill/internal/source"
	"quill/internal/syntax"
	"quill/internal/token"
)

// Parser consumes a token stream and produces one syntax tree.
type Parser struct {
	url      string
	tokens   []token.Token
	pos      int
	reporter diag.Reporter
	docs     []*syntax.Node // pending doc comments for the next declaration
}

// ParseScript lexes and parses src as an executable script.
func ParseScript(url, src string, reporter diag.Reporter) *syntax.Node {
	p := newParser(url, src, reporter)
	return p.parseRoot(syntax.NodeScript)
}

// ParseDef lexes and parses src as a definition file. Definition files
// share the script grammar; the distinction matters to the HIR builder,
// which binds Def roots into module signatures.
func ParseDef(url, src string, reporter diag.Reporter) *syntax.Node {
	p := newParser(url, src, reporter)
	return p.parseRoot(syntax.NodeDef)
}

func newParser(url, src string, reporter diag.Reporter) *Parser {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Parser{
		url:      url,
		tokens:   lexer.Lex(url, src, reporter),
		reporter: reporter,
	}
}

func (p *Parser) parseRoot(kind syntax.NodeKind) *syntax.Node {
	root := syntax.NewNode(kind, source.TextRange{})
	for !p.at(token.KindEOF) {
		if p.at(token.KindModuleComment) {
			tok := p.advance()
			root.Add(syntax.NewLeaf(syntax.NodeModuleDoc, tok.Range, tok.Text))
			continue
		}
		before := p.pos
		root.Add(p.parseStmt())
		if p.pos == before {
			p.errorAtCurrent(diag.SynUnexpectedToken, fmt.Sprintf("unexpected %s", p.peek().Kind))
			p.advance()
		}
	}
	if root.Range.Empty() && len(p.tokens) > 0 {
		root.Range = p.tokens[len(p.tokens)-1].Range
	}
	return root
}

// ---- statements ----

func (p *Parser) parseStmt() *syntax.Node {
	p.collectDocs()

	switch p.peek().Kind {
	case token.KindKwModule:
		return p.parseModuleHeader()
	case token.KindKwImport:
		return p.parseImport()
	case token.KindKwExport:
		return p.parseExport()
	case token.KindKwPrivate:
		return p.parsePrivateDecl()
	case token.KindKwLet:
		return p.parseLet(syntax.NodeLet, token.KindKwLet)
	case token.KindKwConst:
		return p.parseLet(syntax.NodeConst, token.KindKwConst)
	case token.KindKwFn:
		return p.parseFn(false)
	case token.KindKwOp:
		return p.parseOpDecl()
	case token.KindKwIf:
		return p.parseIf()
	case token.KindKwLoop:
		return p.parseLoop()
	case token.KindKwFor:
		return p.parseFor()
	case token.KindKwWhile:
		return p.parseWhile()
	case token.KindKwBreak:
		return p.parseJump(syntax.NodeBreak)
	case token.KindKwContinue:
		return p.parseJump(syntax.NodeContinue)
	case token.KindKwReturn:
		return p.parseValueStmt(syntax.NodeReturn)
	case token.KindKwThrow:
		return p.parseValueStmt(syntax.NodeThrow)
	case token.KindKwSwitch:
		return p.parseSwitch()
	case token.KindKwTry:
		return p.parseTry()
	case token.KindLBrace:
		return p.parseBlock()
	case token.KindSemi:
		tok := p.advance()
		return syntax.NewNode(syntax.NodeBlock, tok.Range)
	default:
		expr := p.parseExpr()
		p.eat(token.KindSemi)
		return expr
	}
}

func (p *Parser) parseModuleHeader() *syntax.Node {
	node := p.startNode(syntax.NodeModuleHeader)
	p.advance() // module
	if p.at(token.KindIdent) {
		tok := p.advance()
		node.Add(syntax.NewLeaf(syntax.NodeIdent, tok.Range, tok.Text))
	}
	p.expectSemi(node)
	return node
}

func (p *Parser) parseImport() *syntax.Node {
	node := p.startNode(syntax.NodeImport)
	p.advance() // import
	if p.at(token.KindString) {
		tok := p.advance()
		node.Add(syntax.NewLeaf(syntax.NodeLitString, tok.Range, tok.Text))
	} else {
		p.errorAtCurrent(diag.SynExpectExpression, "expected an import path string")
	}
	if p.eat(token.KindKwAs) {
		if p.at(token.KindIdent) {
			tok := p.advance()
			node.Add(syntax.NewLeaf(syntax.NodeIdent, tok.Range, tok.Text))
		} else {
			p.errorAtCurrent(diag.SynExpectIdentifier, "expected an alias name after 'as'")
		}
	}
	p.expectSemi(node)
	return node
}

func (p *Parser) parseExport() *syntax.Node {
	node := p.startNode(syntax.NodeExport)
	p.advance() // export
	node.Add(p.parseStmt())
	return node
}

func (p *Parser) parsePrivateDecl() *syntax.Node {
	p.advance() // private
	if p.at(token.KindKwFn) {
		return p.parseFn(true)
	}
	p.errorAtCurrent(diag.SynUnexpectedToken, "'private' is only allowed before 'fn'")
	return p.parseStmt()
}

func (p *Parser) parseLet(kind syntax.NodeKind, kw token.Kind) *syntax.Node {
	node := p.startNode(kind)
	p.takeDocs(node)
	p.expect(kw)
	switch {
	case p.at(token.KindIdent):
		tok := p.advance()
		node.Add(syntax.NewLeaf(syntax.NodeIdent, tok.Range, tok.Text))
	case p.at(token.KindUnderscore):
		tok := p.advance()
		node.Add(syntax.NewLeaf(syntax.NodeDiscard, tok.Range, tok.Text))
	default:
		p.errorAtCurrent(diag.SynExpectIdentifier, "expected a binding name")
	}
	if p.eat(token.KindAssign) {
		node.Add(p.parseExpr())
	}
	p.expectSemi(node)
	return node
}

func (p *Parser) parseFn(private bool) *syntax.Node {
	node := p.startNode(syntax.NodeFn)
	p.takeDocs(node)
	if private {
		node.Add(syntax.NewLeaf(syntax.NodeOp, p.peek().Range, "private"))
	}
	p.expect(token.KindKwFn)
	if p.at(token.KindIdent) {
		tok := p.advance()
		node.Add(syntax.NewLeaf(syntax.NodeIdent, tok.Range, tok.Text))
	} else {
		p.errorAtCurrent(diag.SynExpectIdentifier, "expected a function name")
	}
	node.Add(p.parseParamList(token.KindLParen, token.KindRParen))
	if p.at(token.KindLBrace) {
		node.Add(p.parseBlock())
	} else {
		// Definition files declare signatures without bodies.
		p.expectSemi(node)
	}
	return node
}

func (p *Parser) parseOpDecl() *syntax.Node {
	node := p.startNode(syntax.NodeOpDecl)
	p.takeDocs(node)
	p.advance() // op
	// A custom operator name is a maximal run of adjacent operator
	// tokens: `<=>` lexes as `<=` `>` and is glued back together here.
	if !isOpToken(p.peek().Kind) {
		p.errorAtCurrent(diag.SynUnexpectedToken, "expected an operator")
	} else {
		first := p.advance()
		rng := first.Range
		text := first.Text
		for isOpToken(p.peek().Kind) && p.peek().Range.Start == rng.End {
			tok := p.advance()
			text += tok.Text
			rng = rng.Cover(tok.Range)
		}
		node.Add(syntax.NewLeaf(syntax.NodeOp, rng, text))
	}
	if p.at(token.KindLParen) {
		node.Add(p.parseParamList(token.KindLParen, token.KindRParen))
	}
	if p.at(token.KindLBrace) {
		node.Add(p.parseBlock())
	} else {
		p.expectSemi(node)
	}
	return node
}

// isOpToken reports whether the token can be part of a custom operator
// name.
func isOpToken(k token.Kind) bool {
	switch k {
	case token.KindPlus, token.KindMinus, token.KindStar, token.KindSlash,
		token.KindPercent, token.KindLt, token.KindGt, token.KindLe,
		token.KindGe, token.KindEq, token.KindNe, token.KindBang,
		token.KindPipe, token.KindAndAnd, token.KindOrOr, token.KindAssign,
		token.KindArrow:
		return true
	}
	return false
}

func (p *Parser) parseParamList(open, close token.Kind) *syntax.Node {
	node := p.startNode(syntax.NodeParamList)
	if !p.eat(open) {
		p.errorAtCurrent(diag.SynUnexpectedToken, fmt.Sprintf("expected %s", open))
		return node
	}
	for !p.at(close) && !p.at(token.KindEOF) {
		param := p.startNode(syntax.NodeParam)
		switch {
		case p.at(token.KindIdent):
			tok := p.advance()
			param.Add(syntax.NewLeaf(syntax.NodeIdent, tok.Range, tok.Text))
		case p.at(token.KindUnderscore):
			tok := p.advance()
			param.Add(syntax.NewLeaf(syntax.NodeDiscard, tok.Range, tok.Text))
		default:
			p.errorAtCurrent(diag.SynExpectIdentifier, "expected a parameter name")
			p.advance()
		}
		node.Add(param)
		if !p.eat(token.KindComma) {
			break
		}
	}
	if !p.eat(close) {
		p.errorAtCurrent(diag.SynUnclosedParen, "unclosed parameter list")
	}
	node.Range = node.Range.Cover(p.prev().Range)
	return node
}

func (p *Parser) parseBlock() *syntax.Node {
	node := p.startNode(syntax.NodeBlock)
	p.expect(token.KindLBrace)
	for !p.at(token.KindRBrace) && !p.at(token.KindEOF) {
		before := p.pos
		node.Add(p.parseStmt())
		if p.pos == before {
			p.advance()
		}
	}
	if !p.eat(token.KindRBrace) {
		p.errorAtCurrent(diag.SynUnclosedBrace, "unclosed block")
	}
	node.Range = node.Range.Cover(p.prev().Range)
	return node
}

func (p *Parser) parseIf() *syntax.Node {
	node := p.startNode(syntax.NodeIf)
	for {
		branch := p.startNode(syntax.NodeBranch)
		p.expect(token.KindKwIf)
		branch.Add(p.parseExpr())
		branch.Add(p.parseBlock())
		node.Add(branch)

		if !p.eat(token.KindKwElse) {
			break
		}
		if p.at(token.KindKwIf) {
			continue
		}
		// Trailing else: a branch without a condition.
		elseBranch := p.startNode(syntax.NodeBranch)
		elseBranch.Add(p.parseBlock())
		node.Add(elseBranch)
		break
	}
	return node
}

func (p *Parser) parseLoop() *syntax.Node {
	node := p.startNode(syntax.NodeLoop)
	p.advance() // loop
	node.Add(p.parseBlock())
	return node
}

func (p *Parser) parseFor() *syntax.Node {
	node := p.startNode(syntax.NodeFor)
	p.advance() // for
	switch {
	case p.at(token.KindIdent):
		tok := p.advance()
		node.Add(syntax.NewLeaf(syntax.NodeIdent, tok.Range, tok.Text))
	case p.at(token.KindUnderscore):
		tok := p.advance()
		node.Add(syntax.NewLeaf(syntax.NodeDiscard, tok.Range, tok.Text))
	default:
		p.errorAtCurrent(diag.SynExpectIdentifier, "expected a loop variable")
	}
	p.expect(token.KindKwIn)
	node.Add(p.parseExpr())
	node.Add(p.parseBlock())
	return node
}

func (p *Parser) parseWhile() *syntax.Node {
	node := p.startNode(syntax.NodeWhile)
	p.advance() // while
	node.Add(p.parseExpr())
	node.Add(p.parseBlock())
	return node
}

func (p *Parser) parseJump(kind syntax.NodeKind) *syntax.Node {
	node := p.startNode(kind)
	p.advance()
	p.expectSemi(node)
	return node
}

func (p *Parser) parseValueStmt(kind syntax.NodeKind) *syntax.Node {
	node := p.startNode(kind)
	p.advance()
	if !p.at(token.KindSemi) && !p.at(token.KindRBrace) && !p.at(token.KindEOF) {
		node.Add(p.parseExpr())
	}
	p.expectSemi(node)
	return node
}

func (p *Parser) parseSwitch() *syntax.Node {
	node := p.startNode(syntax.NodeSwitch)
	p.advance() // switch
	node.Add(p.parseExpr())
	if !p.eat(token.KindLBrace) {
		p.errorAtCurrent(diag.SynUnexpectedToken, "expected '{' after switch value")
		return node
	}
	for !p.at(token.KindRBrace) && !p.at(token.KindEOF) {
		arm := p.startNode(syntax.NodeSwitchArm)
		if p.at(token.KindUnderscore) {
			tok := p.advance()
			arm.Add(syntax.NewLeaf(syntax.NodeDiscard, tok.Range, tok.Text))
		} else {
			arm.Add(p.parseExpr())
		}
		p.expect(token.KindArrow)
		if p.at(token.KindLBrace) {
			arm.Add(p.parseBlock())
		} else {
			arm.Add(p.parseExpr())
		}
		node.Add(arm)
		if !p.eat(token.KindComma) {
			break
		}
	}
	if !p.eat(token.KindRBrace) {
		p.errorAtCurrent(diag.SynUnclosedBrace, "unclosed switch body")
	}
	node.Range = node.Range.Cover(p.prev().Range)
	return node
}

func (p *Parser) parseTry() *syntax.Node {
	node := p.startNode(syntax.NodeTry)
	p.advance() // try
	node.Add(p.parseBlock())
	if !p.eat(token.KindKwCatch) {
		p.errorAtCurrent(diag.SynExpectCatch, "expected 'catch' after try block")
		return node
	}
	if p.at(token.KindLParen) {
		node.Add(p.parseParamList(token.KindLParen, token.KindRParen))
	}
	node.Add(p.parseBlock())
	return node
}

// ---- expressions ----

// Binding powers, lowest first.
const (
	precNone    = iota
	precAssign  // =
	precOr      // ||
	precAnd     // &&
	precEq      // == !=
	precCmp     // < <= > >=
	precAdd     // + -
	precMul     // * / %
	precUnary   // ! -
	precPostfix // call, index, field access
)

var binaryPrec = map[token.Kind]int{
	token.KindAssign:  precAssign,
	token.KindOrOr:    precOr,
	token.KindAndAnd:  precAnd,
	token.KindEq:      precEq,
	token.KindNe:      precEq,
	token.KindLt:      precCmp,
	token.KindLe:      precCmp,
	token.KindGt:      precCmp,
	token.KindGe:      precCmp,
	token.KindPlus:    precAdd,
	token.KindMinus:   precAdd,
	token.KindStar:    precMul,
	token.KindSlash:   precMul,
	token.KindPercent: precMul,
}

func (p *Parser) parseExpr() *syntax.Node {
	return p.parseBinary(precAssign)
}

func (p *Parser) parseBinary(minPrec int) *syntax.Node {
	lhs := p.parseUnary()
	for {
		prec, ok := binaryPrec[p.peek().Kind]
		if !ok || prec < minPrec {
			return lhs
		}
		opTok := p.advance()
		// Assignment is right associative, everything else left.
		nextPrec := prec + 1
		if prec == precAssign {
			nextPrec = prec
		}
		rhs := p.parseBinary(nextPrec)
		lhs = syntax.NewNode(syntax.NodeBinary, lhs.Range.Cover(rhs.Range),
			lhs,
			syntax.NewLeaf(syntax.NodeOp, opTok.Range, opTok.Text),
			rhs,
		)
	}
}

func (p *Parser) parseUnary() *syntax.Node {
	switch p.peek().Kind {
	case token.KindMinus, token.KindBang:
		opTok := p.advance()
		operand := p.parseUnary()
		rng := opTok.Range.Cover(operand.Range)
		return syntax.NewNode(syntax.NodeUnary, rng,
			syntax.NewLeaf(syntax.NodeOp, opTok.Range, opTok.Text),
			operand,
		)
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() *syntax.Node {
	expr := p.parsePrimary()
	for {
		switch p.peek().Kind {
		case token.KindLParen:
			args := p.parseArgList()
			expr = syntax.NewNode(syntax.NodeCall, expr.Range.Cover(args.Range), expr, args)
		case token.KindLBracket:
			p.advance()
			index := p.parseExpr()
			end := p.peek().Range
			if p.eat(token.KindRBracket) {
				end = p.prev().Range
			} else {
				p.errorAtCurrent(diag.SynUnclosedBracket, "unclosed index expression")
			}
			expr = syntax.NewNode(syntax.NodeIndex, expr.Range.Cover(end), expr, index)
		case token.KindDot:
			opTok := p.advance()
			field := p.parsePostfixField()
			expr = syntax.NewNode(syntax.NodeBinary, expr.Range.Cover(field.Range),
				expr,
				syntax.NewLeaf(syntax.NodeOp, opTok.Range, opTok.Text),
				field,
			)
		default:
			return expr
		}
	}
}

// parsePostfixField parses the right side of a '.' so that method calls
// bind the argument list to the member, keeping `a.b(c)` as a.(b(c)).
func (p *Parser) parsePostfixField() *syntax.Node {
	if !p.at(token.KindIdent) {
		p.errorAtCurrent(diag.SynExpectIdentifier, "expected a field or method name")
		return p.errorNode()
	}
	tok := p.advance()
	field := syntax.NewLeaf(syntax.NodeIdent, tok.Range, tok.Text)
	if p.at(token.KindLParen) {
		args := p.parseArgList()
		return syntax.NewNode(syntax.NodeCall, field.Range.Cover(args.Range), field, args)
	}
	return field
}

func (p *Parser) parseArgList() *syntax.Node {
	node := p.startNode(syntax.NodeArgList)
	p.expect(token.KindLParen)
	for !p.at(token.KindRParen) && !p.at(token.KindEOF) {
		node.Add(p.parseExpr())
		if !p.eat(token.KindComma) {
			break
		}
	}
	if !p.eat(token.KindRParen) {
		p.errorAtCurrent(diag.SynUnclosedParen, "unclosed argument list")
	}
	node.Range = node.Range.Cover(p.prev().Range)
	return node
}

func (p *Parser) parsePrimary() *syntax.Node {
	tok := p.peek()
	switch tok.Kind {
	case token.KindInt:
		p.advance()
		return syntax.NewLeaf(syntax.NodeLitInt, tok.Range, tok.Text)
	case token.KindFloat:
		p.advance()
		return syntax.NewLeaf(syntax.NodeLitFloat, tok.Range, tok.Text)
	case token.KindString:
		p.advance()
		return syntax.NewLeaf(syntax.NodeLitString, tok.Range, tok.Text)
	case token.KindChar:
		p.advance()
		return syntax.NewLeaf(syntax.NodeLitChar, tok.Range, tok.Text)
	case token.KindKwTrue, token.KindKwFalse:
		p.advance()
		return syntax.NewLeaf(syntax.NodeLitBool, tok.Range, tok.Text)
	case token.KindIdent:
		return p.parsePathOrIdent()
	case token.KindUnderscore:
		p.advance()
		return syntax.NewLeaf(syntax.NodeDiscard, tok.Range, tok.Text)
	case token.KindLParen:
		return p.parseParen()
	case token.KindLBracket:
		return p.parseArray()
	case token.KindHashBrace:
		return p.parseObject()
	case token.KindPipe, token.KindOrOr:
		return p.parseClosure()
	case token.KindLBrace:
		return p.parseBlock()
	case token.KindKwIf:
		return p.parseIf()
	case token.KindKwSwitch:
		return p.parseSwitch()
	default:
		p.errorAtCurrent(diag.SynExpectExpression, fmt.Sprintf("expected an expression, found %s", tok.Kind))
		p.advance()
		return p.errorNode()
	}
}

func (p *Parser) parsePathOrIdent() *syntax.Node {
	first := p.advance()
	ident := syntax.NewLeaf(syntax.NodeIdent, first.Range, first.Text)
	if !p.at(token.KindPathSep) {
		return ident
	}
	path := syntax.NewNode(syntax.NodePath, first.Range, ident)
	for p.eat(token.KindPathSep) {
		if !p.at(token.KindIdent) {
			p.errorAtCurrent(diag.SynExpectIdentifier, "expected a path segment after '::'")
			break
		}
		seg := p.advance()
		path.Add(syntax.NewLeaf(syntax.NodeIdent, seg.Range, seg.Text))
	}
	return path
}

func (p *Parser) parseParen() *syntax.Node {
	node := p.startNode(syntax.NodeParen)
	p.advance() // (
	node.Add(p.parseExpr())
	if !p.eat(token.KindRParen) {
		p.errorAtCurrent(diag.SynUnclosedParen, "unclosed parenthesized expression")
	}
	node.Range = node.Range.Cover(p.prev().Range)
	return node
}

func (p *Parser) parseArray() *syntax.Node {
	node := p.startNode(syntax.NodeArray)
	p.advance() // [
	for !p.at(token.KindRBracket) && !p.at(token.KindEOF) {
		node.Add(p.parseExpr())
		if !p.eat(token.KindComma) {
			break
		}
	}
	if !p.eat(token.KindRBracket) {
		p.errorAtCurrent(diag.SynUnclosedBracket, "unclosed array literal")
	}
	node.Range = node.Range.Cover(p.prev().Range)
	return node
}

func (p *Parser) parseObject() *syntax.Node {
	node := p.startNode(syntax.NodeObject)
	p.advance() // #{
	for !p.at(token.KindRBrace) && !p.at(token.KindEOF) {
		field := p.startNode(syntax.NodeObjectField)
		switch {
		case p.at(token.KindIdent):
			tok := p.advance()
			field.Add(syntax.NewLeaf(syntax.NodeIdent, tok.Range, tok.Text))
		case p.at(token.KindString):
			tok := p.advance()
			field.Add(syntax.NewLeaf(syntax.NodeLitString, tok.Range, tok.Text))
		default:
			p.errorAtCurrent(diag.SynExpectIdentifier, "expected an object key")
			p.advance()
		}
		if p.eat(token.KindColon) {
			field.Add(p.parseExpr())
		}
		node.Add(field)
		if !p.eat(token.KindComma) {
			break
		}
	}
	if !p.eat(token.KindRBrace) {
		p.errorAtCurrent(diag.SynUnclosedBrace, "unclosed object literal")
	}
	node.Range = node.Range.Cover(p.prev().Range)
	return node
}

func (p *Parser) parseClosure() *syntax.Node {
	node := p.startNode(syntax.NodeClosure)
	if p.at(token.KindOrOr) {
		// `||` lexes as one token when the parameter list is empty.
		tok := p.advance()
		node.Add(syntax.NewNode(syntax.NodeParamList, tok.Range))
	} else {
		node.Add(p.parseParamList(token.KindPipe, token.KindPipe))
	}
	if p.at(token.KindLBrace) {
		node.Add(p.parseBlock())
	} else {
		node.Add(p.parseExpr())
	}
	return node
}

// ---- plumbing ----

func (p *Parser) collectDocs() {
	for p.at(token.KindDocComment) {
		tok := p.advance()
		p.docs = append(p.docs, syntax.NewLeaf(syntax.NodeDoc, tok.Range, tok.Text))
	}
}

// takeDocs moves pending doc comments onto a declaration node. Docs not
// followed by a documentable declaration are dropped.
func (p *Parser) takeDocs(node *syntax.Node) {
	for _, d := range p.docs {
		node.Add(d)
	}
	p.docs = nil
}

func (p *Parser) startNode(kind syntax.NodeKind) *syntax.Node {
	return syntax.NewNode(kind, p.peek().Range)
}

func (p *Parser) errorNode() *syntax.Node {
	return syntax.NewNode(syntax.NodeError, p.prev().Range)
}

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) prev() token.Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	if p.pos > len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) eat(k token.Kind) bool {
	if !p.at(k) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) expect(k token.Kind) token.Token {
	if p.at(k) {
		return p.advance()
	}
	p.errorAtCurrent(diag.SynUnexpectedToken, fmt.Sprintf("expected %s, found %s", k, p.peek().Kind))
	return p.peek()
}

func (p *Parser) expectSemi(node *syntax.Node) {
	if p.eat(token.KindSemi) {
		node.Range = node.Range.Cover(p.prev().Range)
		return
	}
	// A missing semicolon before '}' or EOF is tolerated so that the
	// last expression of a block works without one.
	if p.at(token.KindRBrace) || p.at(token.KindEOF) {
		return
	}
	p.errorAtCurrent(diag.SynExpectSemicolon, "expected ';'")
}

func (p *Parser) errorAtCurrent(code diag.Code, msg string) {
	span := source.Span{URL: p.url, Range: p.peek().Range}
	diag.ReportError(p.reporter, code, span, msg).Emit()
}
