package lexer

import (
	"testing"

	"quill/internal/diag"
	"quill/internal/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Kind)
	}
	return out
}

func TestLexBasicScript(t *testing.T) {
	src := `let x = 1 + 2.5;`
	tokens := Lex("test:///a.qll", src, nil)

	want := []token.Kind{
		token.KindKwLet, token.KindIdent, token.KindAssign,
		token.KindInt, token.KindPlus, token.KindFloat,
		token.KindSemi, token.KindEOF,
	}
	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("token count: got %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLexMultiCharOperators(t *testing.T) {
	src := `a::b == c != d <= e >= f && g || #{ x => y }`
	tokens := Lex("test:///a.qll", src, nil)

	wantOps := []token.Kind{
		token.KindPathSep, token.KindEq, token.KindNe,
		token.KindLe, token.KindGe, token.KindAndAnd,
		token.KindOrOr, token.KindHashBrace, token.KindArrow,
	}
	var gotOps []token.Kind
	for _, tok := range tokens {
		for _, w := range wantOps {
			if tok.Kind == w {
				gotOps = append(gotOps, tok.Kind)
				break
			}
		}
	}
	if len(gotOps) != len(wantOps) {
		t.Fatalf("multi-char ops: got %v, want %v", gotOps, wantOps)
	}
	for i := range wantOps {
		if gotOps[i] != wantOps[i] {
			t.Fatalf("op %d: got %s, want %s", i, gotOps[i], wantOps[i])
		}
	}
}

func TestLexCommentsAndDocs(t *testing.T) {
	src := "//! module docs\n// dropped\n/// item docs\nfn f() {}\n/* block\ncomment */ 1"
	tokens := Lex("test:///a.qll", src, nil)

	got := kinds(tokens)
	want := []token.Kind{
		token.KindModuleComment, token.KindDocComment,
		token.KindKwFn, token.KindIdent, token.KindLParen, token.KindRParen,
		token.KindLBrace, token.KindRBrace,
		token.KindInt, token.KindEOF,
	}
	if len(got) != len(want) {
		t.Fatalf("token kinds: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
	if tokens[0].Text != "//! module docs" {
		t.Fatalf("module doc text: got %q", tokens[0].Text)
	}
}

func TestLexStringAndCharLiterals(t *testing.T) {
	tokens := Lex("test:///a.qll", `"hi \" there" 'x' '\n'`, nil)
	got := kinds(tokens)
	want := []token.Kind{token.KindString, token.KindChar, token.KindChar, token.KindEOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
	if tokens[0].Text != `"hi \" there"` {
		t.Fatalf("string text: got %q", tokens[0].Text)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	bag := diag.NewBag(8)
	Lex("test:///a.qll", "\"open\nlet x;", diag.BagReporter{Bag: bag})

	if !bag.HasErrors() {
		t.Fatalf("expected an unterminated string error")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.LexUnterminatedString {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LexUnterminatedString, got %v", bag.Items())
	}
}

func TestLexUnknownChar(t *testing.T) {
	bag := diag.NewBag(8)
	tokens := Lex("test:///a.qll", "let x = @;", diag.BagReporter{Bag: bag})

	if !bag.HasErrors() {
		t.Fatalf("expected an unknown character error")
	}
	hasInvalid := false
	for _, tok := range tokens {
		if tok.Kind == token.KindInvalid {
			hasInvalid = true
		}
	}
	if !hasInvalid {
		t.Fatalf("expected an invalid token in the stream")
	}
}

func TestLexNumberFollowedByMethodCall(t *testing.T) {
	tokens := Lex("test:///a.qll", "1.abs()", nil)
	got := kinds(tokens)
	want := []token.Kind{
		token.KindInt, token.KindDot, token.KindIdent,
		token.KindLParen, token.KindRParen, token.KindEOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLexRanges(t *testing.T) {
	tokens := Lex("test:///a.qll", "let abc = 42;", nil)
	// "abc" occupies bytes 4..7.
	if tokens[1].Range.Start != 4 || tokens[1].Range.End != 7 {
		t.Fatalf("ident range: got %s, want 4..7", tokens[1].Range)
	}
}
