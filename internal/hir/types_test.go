package hir

import "testing"

func declType(t *testing.T, h *Hir, name string) Type {
	t.Helper()
	decls := declsNamed(h, name)
	if len(decls) != 1 {
		t.Fatalf("want one %q declaration, got %d", name, len(decls))
	}
	return h.SymbolData(decls[0]).Ty
}

func TestLiteralTypes(t *testing.T) {
	h := New()
	buildScript(t, h, "file:///ws/a.qll", `
let i = 1;
let f = 2.5;
let b = true;
let s = "hi";
let c = 'x';
`)

	cases := []struct {
		name string
		want string
	}{
		{"i", "int"},
		{"f", "float"},
		{"b", "bool"},
		{"s", "String"},
		{"c", "char"},
	}
	for _, c := range cases {
		if got := h.FormatType(declType(t, h, c.name)); got != c.want {
			t.Fatalf("type of %s = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestArrayUnionLaw(t *testing.T) {
	h := New()
	buildScript(t, h, "file:///ws/a.qll", `
let mixed = [1, 2.0, 3];
let same = [1, 2, 3];
let empty = [];
`)

	if got := h.FormatType(declType(t, h, "mixed")); got != "[int | float]" {
		t.Fatalf("mixed array type = %q", got)
	}
	// A single distinct member collapses to itself, never a union.
	if got := h.FormatType(declType(t, h, "same")); got != "[int]" {
		t.Fatalf("uniform array type = %q", got)
	}
	// No members folds to void.
	if got := h.FormatType(declType(t, h, "empty")); got != "[()]" {
		t.Fatalf("empty array type = %q", got)
	}

	data := h.TypeData(declType(t, h, "mixed"))
	if data.Kind.Tag != TypeArray || data.Kind.KnownItems != 3 {
		t.Fatalf("mixed array kind = %+v", data.Kind)
	}
}

func TestIfUnion(t *testing.T) {
	h := New()
	buildScript(t, h, "file:///ws/a.qll", `
let v = if true { 1 } else { 2.0 };
`)

	if got := h.FormatType(declType(t, h, "v")); got != "int | float" {
		t.Fatalf("if expression type = %q", got)
	}
}

func TestFnAndCallTypes(t *testing.T) {
	h := New()
	buildScript(t, h, "file:///ws/a.qll", `
fn one() { 1 }

let v = one();
`)

	fn := fnNamed(t, h, "one")
	if got := h.FormatType(h.SymbolData(fn).Ty); got != "fn () -> int" {
		t.Fatalf("fn type = %q", got)
	}
	if got := h.FormatType(declType(t, h, "v")); got != "int" {
		t.Fatalf("call result type = %q", got)
	}
}

func TestClosureType(t *testing.T) {
	h := New()
	buildScript(t, h, "file:///ws/a.qll", `
let double = |x| 2;
`)

	data := h.TypeData(declType(t, h, "double"))
	if data == nil || data.Kind.Tag != TypeFn || !data.Kind.IsClosure {
		t.Fatalf("closure type kind = %+v", data)
	}
	if got := h.FormatType(declType(t, h, "double")); got != "|x: ?| -> int" {
		t.Fatalf("closure type = %q", got)
	}
}

func TestObjectFieldAccessType(t *testing.T) {
	h := New()
	buildScript(t, h, "file:///ws/a.qll", `
let o = #{x: 1, y: "s"};
let v = o.y;
`)

	if got := h.FormatType(declType(t, h, "o")); got != `#{x: int, y: String}` {
		t.Fatalf("object type = %q", got)
	}
	if got := h.FormatType(declType(t, h, "v")); got != "String" {
		t.Fatalf("field access type = %q", got)
	}
}

func TestIndexingArrayYieldsItemType(t *testing.T) {
	h := New()
	buildScript(t, h, "file:///ws/a.qll", `
let xs = [1, 2];
let v = xs[0];
`)

	if got := h.FormatType(declType(t, h, "v")); got != "int" {
		t.Fatalf("index type = %q", got)
	}
}

func TestSelfReferentialDeclStaysUnknown(t *testing.T) {
	h := New()
	buildScript(t, h, "file:///ws/a.qll", `
let a = 1;
let a = a;
`)

	decls := declsNamed(h, "a")
	// The second declaration chases the reference to the first.
	if got := h.FormatType(h.SymbolData(decls[1]).Ty); got != "int" {
		t.Fatalf("shadowing decl type = %q", got)
	}
}
