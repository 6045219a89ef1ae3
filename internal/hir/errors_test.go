package hir

import (
	"strings"
	"testing"

	"quill/internal/diag"
)

func TestUnresolvedReferenceSuggestsSimilarName(t *testing.T) {
	h := New()
	buildScript(t, h, "file:///ws/a.qll", `
let apple = 1;
aple;
`)

	errs := h.Errors()
	if len(errs) != 1 || errs[0].Kind != ErrUnresolvedReference {
		t.Fatalf("want one unresolved reference, got %+v", errs)
	}
	if errs[0].Name != "aple" {
		t.Fatalf("error names %q", errs[0].Name)
	}
	want := declsNamed(h, "apple")[0]
	if errs[0].Similar != want {
		t.Fatalf("similar = %v, want decl %v", errs[0].Similar, want)
	}
}

func TestNoSuggestionForDistantNames(t *testing.T) {
	h := New()
	buildScript(t, h, "file:///ws/a.qll", `
let apple = 1;
zzz;
`)

	errs := h.Errors()
	if len(errs) != 1 {
		t.Fatalf("want one error, got %+v", errs)
	}
	if !errs[0].Similar.IsNull() {
		t.Fatalf("suggestion %v for a name nothing resembles", errs[0].Similar)
	}
}

func TestDuplicateParameters(t *testing.T) {
	h := New()
	buildScript(t, h, "file:///ws/a.qll", "fn f(a, b, a) { 1 }")

	errs := h.Errors()
	if len(errs) != 1 || errs[0].Kind != ErrDuplicateFnParameter {
		t.Fatalf("want one duplicate parameter, got %+v", errs)
	}
	if errs[0].Name != "a" {
		t.Fatalf("duplicate names %q", errs[0].Name)
	}
	if errs[0].Existing.IsNull() || errs[0].Existing == errs[0].Symbol {
		t.Fatalf("existing declaration not recorded")
	}
}

func TestDiscardParameterNeverCollides(t *testing.T) {
	h := New()
	buildScript(t, h, "file:///ws/a.qll", "fn g(_, _, x) { x }")

	if errs := h.Errors(); len(errs) != 0 {
		t.Fatalf("discard parameters flagged: %+v", errs)
	}
}

func TestNestedFunction(t *testing.T) {
	h := New()
	buildScript(t, h, "file:///ws/a.qll", `
fn outer() {
	fn inner() { 1 }
}
`)

	var nested []Error
	for _, e := range h.Errors() {
		if e.Kind == ErrNestedFunction {
			nested = append(nested, e)
		}
	}
	if len(nested) != 1 || nested[0].Name != "inner" {
		t.Fatalf("want inner flagged as nested, got %+v", nested)
	}
}

func TestFieldAccessAndThisExempt(t *testing.T) {
	h := New()
	buildScript(t, h, "file:///ws/a.qll", `
let n = 1;
n.abs();
this;
`)

	if errs := h.Errors(); len(errs) != 0 {
		t.Fatalf("field access or this reported: %+v", errs)
	}
}

func TestDiagnosticBridge(t *testing.T) {
	h := New()
	src := buildScript(t, h, "file:///ws/a.qll", `
let apple = 1;
aple;
fn f(a, a) { 1 }
`)

	bag := diag.NewBag(16)
	h.CollectSourceErrors(src, diag.BagReporter{Bag: bag})
	bag.Sort()

	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("want 2 diagnostics, got %d", len(items))
	}
	codes := map[diag.Code]bool{}
	for _, d := range items {
		codes[d.Code] = true
		if d.Primary.URL != "file:///ws/a.qll" {
			t.Fatalf("diagnostic span in %q", d.Primary.URL)
		}
	}
	if !codes[diag.HirUnresolvedReference] || !codes[diag.HirDuplicateParameter] {
		t.Fatalf("unexpected codes: %v", codes)
	}
	for _, d := range items {
		if d.Code == diag.HirUnresolvedReference {
			if len(d.Notes) != 1 || !strings.Contains(d.Notes[0].Msg, "apple") {
				t.Fatalf("missing suggestion note: %+v", d.Notes)
			}
		}
	}
}

func TestNameSimilarity(t *testing.T) {
	cases := []struct {
		a, b string
		min  float64
		max  float64
	}{
		{"apple", "aple", 0.75, 0.85},
		{"recieve", "receive", 0.8, 0.9},
		{"x", "x", 1, 1},
		{"abc", "xyz", 0, 0.01},
	}
	for _, c := range cases {
		got := nameSimilarity(c.a, c.b)
		if got < c.min || got > c.max {
			t.Fatalf("similarity(%q, %q) = %v, want within [%v, %v]", c.a, c.b, got, c.min, c.max)
		}
	}
}
