package parser

import (
	"testing"

	"quill/internal/diag"
	"quill/internal/syntax"
)

func parseClean(t *testing.T, src string) *syntax.Node {
	t.Helper()
	bag := diag.NewBag(16)
	root := ParseScript("test:///a.qll", src, diag.BagReporter{Bag: bag})
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v\n%s", bag.Items(), syntax.Dump(root))
	}
	return root
}

func TestParseLetAndConst(t *testing.T) {
	root := parseClean(t, "let x = 1;\nconst Y = \"s\";")

	let := root.Child(0)
	if !let.Is(syntax.NodeLet) || let.IdentText() != "x" {
		t.Fatalf("expected let x, got:\n%s", syntax.Dump(root))
	}
	if let.FirstOfKind(syntax.NodeLitInt) == nil {
		t.Fatalf("let value missing:\n%s", syntax.Dump(let))
	}
	cst := root.Child(1)
	if !cst.Is(syntax.NodeConst) || cst.IdentText() != "Y" {
		t.Fatalf("expected const Y, got:\n%s", syntax.Dump(root))
	}
	if got := cst.FirstOfKind(syntax.NodeLitString).StringValue(); got != "s" {
		t.Fatalf("const value: got %q, want %q", got, "s")
	}
}

func TestParseFnWithDocs(t *testing.T) {
	root := parseClean(t, "/// Adds numbers.\n/// Second line.\nfn add(a, b) { return a + b; }")

	fn := root.FirstOfKind(syntax.NodeFn)
	if fn == nil {
		t.Fatalf("no fn node:\n%s", syntax.Dump(root))
	}
	if fn.IdentText() != "add" {
		t.Fatalf("fn name: got %q", fn.IdentText())
	}
	if got := fn.DocText(); got != "Adds numbers.\nSecond line." {
		t.Fatalf("fn docs: got %q", got)
	}
	params := fn.FirstOfKind(syntax.NodeParamList)
	if n := len(params.ChildrenOfKind(syntax.NodeParam)); n != 2 {
		t.Fatalf("param count: got %d, want 2", n)
	}
	if fn.FirstOfKind(syntax.NodeBlock) == nil {
		t.Fatalf("fn body missing")
	}
}

func TestParsePrecedence(t *testing.T) {
	root := parseClean(t, "a + b * c;")

	bin := root.Child(0)
	if !bin.Is(syntax.NodeBinary) || bin.OpText() != "+" {
		t.Fatalf("expected top-level +, got:\n%s", syntax.Dump(root))
	}
	rhs := bin.Child(2)
	if !rhs.Is(syntax.NodeBinary) || rhs.OpText() != "*" {
		t.Fatalf("expected * under +, got:\n%s", syntax.Dump(bin))
	}
}

func TestParseAssignRightAssociative(t *testing.T) {
	root := parseClean(t, "a = b = c;")

	outer := root.Child(0)
	if !outer.Is(syntax.NodeBinary) || outer.OpText() != "=" {
		t.Fatalf("expected assignment, got:\n%s", syntax.Dump(root))
	}
	inner := outer.Child(2)
	if !inner.Is(syntax.NodeBinary) || inner.OpText() != "=" {
		t.Fatalf("expected nested assignment on the right, got:\n%s", syntax.Dump(outer))
	}
}

func TestParseIfElseChain(t *testing.T) {
	root := parseClean(t, "if a { 1 } else if b { 2 } else { 3 }")

	ifNode := root.FirstOfKind(syntax.NodeIf)
	branches := ifNode.ChildrenOfKind(syntax.NodeBranch)
	if len(branches) != 3 {
		t.Fatalf("branch count: got %d, want 3\n%s", len(branches), syntax.Dump(ifNode))
	}
	// The trailing else has no condition, only a block.
	last := branches[2]
	if last.FirstOfKind(syntax.NodeBlock) == nil || len(last.Children) != 1 {
		t.Fatalf("else branch malformed:\n%s", syntax.Dump(last))
	}
}

func TestParsePath(t *testing.T) {
	root := parseClean(t, "math::vec::length(v);")

	call := root.FirstOfKind(syntax.NodeCall)
	path := call.FirstOfKind(syntax.NodePath)
	if path == nil {
		t.Fatalf("expected a path callee:\n%s", syntax.Dump(root))
	}
	segs := path.ChildrenOfKind(syntax.NodeIdent)
	if len(segs) != 3 || segs[0].Text != "math" || segs[2].Text != "length" {
		t.Fatalf("path segments wrong:\n%s", syntax.Dump(path))
	}
}

func TestParseMethodCall(t *testing.T) {
	root := parseClean(t, "x.len();")

	dot := root.Child(0)
	if !dot.Is(syntax.NodeBinary) || dot.OpText() != "." {
		t.Fatalf("expected dot access, got:\n%s", syntax.Dump(root))
	}
	call := dot.Child(2)
	if !call.Is(syntax.NodeCall) || call.IdentText() != "len" {
		t.Fatalf("method call should bind args to the member:\n%s", syntax.Dump(dot))
	}
}

func TestParseClosures(t *testing.T) {
	root := parseClean(t, "let f = |a, b| a + b;\nlet g = || 1;")

	f := root.Child(0).FirstOfKind(syntax.NodeClosure)
	if f == nil {
		t.Fatalf("no closure:\n%s", syntax.Dump(root))
	}
	params := f.FirstOfKind(syntax.NodeParamList)
	if n := len(params.ChildrenOfKind(syntax.NodeParam)); n != 2 {
		t.Fatalf("closure params: got %d, want 2", n)
	}
	g := root.Child(1).FirstOfKind(syntax.NodeClosure)
	if g == nil || len(g.FirstOfKind(syntax.NodeParamList).Children) != 0 {
		t.Fatalf("empty closure params expected:\n%s", syntax.Dump(root))
	}
}

func TestParseObjectAndArray(t *testing.T) {
	root := parseClean(t, `let o = #{ a: 1, "b": [2, 3] };`)

	obj := root.Child(0).FirstOfKind(syntax.NodeObject)
	fields := obj.ChildrenOfKind(syntax.NodeObjectField)
	if len(fields) != 2 {
		t.Fatalf("object fields: got %d, want 2\n%s", len(fields), syntax.Dump(obj))
	}
	arr := fields[1].FirstOfKind(syntax.NodeArray)
	if arr == nil || len(arr.Children) != 2 {
		t.Fatalf("array literal malformed:\n%s", syntax.Dump(fields[1]))
	}
}

func TestParseImport(t *testing.T) {
	root := parseClean(t, `import "./math.qll" as math;`)

	imp := root.FirstOfKind(syntax.NodeImport)
	if got := imp.FirstOfKind(syntax.NodeLitString).StringValue(); got != "./math.qll" {
		t.Fatalf("import path: got %q", got)
	}
	if imp.IdentText() != "math" {
		t.Fatalf("import alias: got %q", imp.IdentText())
	}
}

func TestParseTryCatch(t *testing.T) {
	root := parseClean(t, "try { risky(); } catch (err) { log(err); }")

	try := root.FirstOfKind(syntax.NodeTry)
	blocks := try.ChildrenOfKind(syntax.NodeBlock)
	if len(blocks) != 2 {
		t.Fatalf("try blocks: got %d, want 2\n%s", len(blocks), syntax.Dump(try))
	}
	catch := try.FirstOfKind(syntax.NodeParamList)
	if catch == nil || catch.FirstOfKind(syntax.NodeParam).IdentText() != "err" {
		t.Fatalf("catch parameter missing:\n%s", syntax.Dump(try))
	}
}

func TestParseSwitch(t *testing.T) {
	root := parseClean(t, "switch x { 1 => \"one\", _ => { \"other\" } }")

	sw := root.FirstOfKind(syntax.NodeSwitch)
	arms := sw.ChildrenOfKind(syntax.NodeSwitchArm)
	if len(arms) != 2 {
		t.Fatalf("switch arms: got %d, want 2\n%s", len(arms), syntax.Dump(sw))
	}
	if arms[1].FirstOfKind(syntax.NodeDiscard) == nil {
		t.Fatalf("default arm should use discard pattern:\n%s", syntax.Dump(arms[1]))
	}
}

func TestParseDefSignatures(t *testing.T) {
	bag := diag.NewBag(16)
	root := ParseDef("test:///m.d.qll", "module math;\n\nfn add(a, b);\nfn zero();", diag.BagReporter{Bag: bag})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if !root.Is(syntax.NodeDef) {
		t.Fatalf("expected Def root, got %s", root.Kind)
	}
	header := root.FirstOfKind(syntax.NodeModuleHeader)
	if header == nil || header.IdentText() != "math" {
		t.Fatalf("module header missing:\n%s", syntax.Dump(root))
	}
	fns := root.ChildrenOfKind(syntax.NodeFn)
	if len(fns) != 2 {
		t.Fatalf("fn signatures: got %d, want 2", len(fns))
	}
	if fns[0].FirstOfKind(syntax.NodeBlock) != nil {
		t.Fatalf("signature should have no body")
	}
}

func TestParseErrorRecovery(t *testing.T) {
	bag := diag.NewBag(16)
	root := ParseScript("test:///a.qll", "let = 1;\nlet y = 2;", diag.BagReporter{Bag: bag})

	if !bag.HasErrors() {
		t.Fatalf("expected errors for missing binding name")
	}
	// The second statement still parses.
	found := false
	for _, c := range root.Children {
		if c.Is(syntax.NodeLet) && c.IdentText() == "y" {
			found = true
		}
	}
	if !found {
		t.Fatalf("parser did not recover:\n%s", syntax.Dump(root))
	}
}

func TestParseExportAndPrivate(t *testing.T) {
	root := parseClean(t, "export let x = 1;\nprivate fn hidden() {}")

	exp := root.FirstOfKind(syntax.NodeExport)
	if exp == nil || exp.FirstOfKind(syntax.NodeLet) == nil {
		t.Fatalf("export should wrap the declaration:\n%s", syntax.Dump(root))
	}
	fn := root.FirstOfKind(syntax.NodeFn)
	if fn == nil || fn.OpText() != "private" {
		t.Fatalf("private fn marker missing:\n%s", syntax.Dump(root))
	}
}

func TestParseCustomOperatorName(t *testing.T) {
	root := parseClean(t, "op <=>(a, b) { 1 }")

	op := root.FirstOfKind(syntax.NodeOpDecl)
	if op == nil {
		t.Fatalf("no op declaration:\n%s", syntax.Dump(root))
	}
	// `<=>` lexes as two tokens; the declaration glues them back.
	if got := op.OpText(); got != "<=>" {
		t.Fatalf("operator name: got %q, want %q", got, "<=>")
	}
	params := op.FirstOfKind(syntax.NodeParamList)
	if n := len(params.ChildrenOfKind(syntax.NodeParam)); n != 2 {
		t.Fatalf("param count: got %d, want 2", n)
	}
}

func TestParseCustomOperatorStopsAtGap(t *testing.T) {
	bag := diag.NewBag(16)
	root := ParseScript("test:///a.qll", "op == =(a, b) { 1 }", diag.BagReporter{Bag: bag})

	// Whitespace ends the operator name: only adjacent tokens glue.
	op := root.FirstOfKind(syntax.NodeOpDecl)
	if op == nil || op.OpText() != "==" {
		t.Fatalf("operator name should stop at the gap:\n%s", syntax.Dump(root))
	}
	if !bag.HasErrors() {
		t.Fatalf("the stray '=' after the gap must be a parse error")
	}
}
