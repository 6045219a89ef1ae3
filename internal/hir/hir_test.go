package hir

import (
	"testing"

	"quill/internal/diag"
	"quill/internal/parser"
	"quill/internal/syntax"
)

func mustParseScript(t *testing.T, url, text string) *syntax.Node {
	t.Helper()
	bag := diag.NewBag(64)
	root := parser.ParseScript(url, text, diag.BagReporter{Bag: bag})
	if bag.HasErrors() {
		for _, d := range bag.Items() {
			t.Logf("%s: %s", d.Primary, d.Message)
		}
		t.Fatalf("unexpected parse errors in %s", url)
	}
	return root
}

func mustParseDef(t *testing.T, url, text string) *syntax.Node {
	t.Helper()
	bag := diag.NewBag(64)
	root := parser.ParseDef(url, text, diag.BagReporter{Bag: bag})
	if bag.HasErrors() {
		for _, d := range bag.Items() {
			t.Logf("%s: %s", d.Primary, d.Message)
		}
		t.Fatalf("unexpected parse errors in %s", url)
	}
	return root
}

func buildScript(t *testing.T, h *Hir, url, text string) Source {
	t.Helper()
	h.AddSource(url, mustParseScript(t, url, text))
	h.ResolveAll()
	src, ok := h.SourceByURL(url)
	if !ok {
		t.Fatalf("source %s not registered", url)
	}
	return src
}

func buildDef(t *testing.T, h *Hir, url, text string) Source {
	t.Helper()
	h.AddSource(url, mustParseDef(t, url, text))
	h.ResolveAll()
	src, ok := h.SourceByURL(url)
	if !ok {
		t.Fatalf("source %s not registered", url)
	}
	return src
}

// declsNamed returns the declarations with the given name in creation
// order.
func declsNamed(h *Hir, name string) []Symbol {
	var out []Symbol
	for sym, data := range h.Symbols() {
		if decl, ok := data.Kind.(*DeclSymbol); ok && decl.Name == name {
			out = append(out, sym)
		}
	}
	return out
}

// refsNamed returns the plain references with the given name in creation
// order.
func refsNamed(h *Hir, name string) []Symbol {
	var out []Symbol
	for sym, data := range h.Symbols() {
		if ref, ok := data.Kind.(*RefSymbol); ok && ref.Name == name {
			out = append(out, sym)
		}
	}
	return out
}

func fnNamed(t *testing.T, h *Hir, name string) Symbol {
	t.Helper()
	for sym, data := range h.Symbols() {
		if fn, ok := data.Kind.(*FnSymbol); ok && fn.Name == name {
			return sym
		}
	}
	t.Fatalf("function %s not found", name)
	return 0
}

func TestAddScriptCreatesModule(t *testing.T) {
	h := New()
	src := buildScript(t, h, "file:///ws/a.qll", "let answer = 42;")

	module, ok := h.ModuleBySource(src)
	if !ok {
		t.Fatalf("source has no module")
	}
	if got := h.ModuleData(module).URL(); got != "file:///ws/a.qll" {
		t.Fatalf("module URL = %q, want the source URL", got)
	}
	if _, ok := h.FindInModule(module, "answer"); !ok {
		t.Fatalf("top-level declaration not exported from module scope")
	}
}

func TestModuleDocs(t *testing.T) {
	h := New()
	src := buildScript(t, h, "file:///ws/a.qll", "//! Geometry helpers.\nlet pi = 3;")

	module, _ := h.ModuleBySource(src)
	if got := h.ModuleData(module).Docs; got != "Geometry helpers." {
		t.Fatalf("module docs = %q", got)
	}
}

func TestFnHoistingAndPrivacy(t *testing.T) {
	h := New()
	src := buildScript(t, h, "file:///ws/a.qll", `
private fn secret() { 1 }
fn visible() { 2 }
`)

	module, _ := h.ModuleBySource(src)
	if _, ok := h.FindInModule(module, "visible"); !ok {
		t.Fatalf("public fn not exported")
	}
	if _, ok := h.FindInModule(module, "secret"); ok {
		t.Fatalf("private fn must not be exported")
	}

	scope := h.ModuleData(module).Scope
	secret := fnNamed(t, h, "secret")
	hoisted := false
	for _, s := range h.ScopeData(scope).Hoisted {
		if s == secret {
			hoisted = true
		}
	}
	if !hoisted {
		t.Fatalf("fn declaration not hoisted into module scope")
	}
}

func TestDefStaticModule(t *testing.T) {
	h := New()
	buildDef(t, h, "file:///ws/math.d.qll", `
module math;

fn sin(x);
fn cos(x);
`)

	module, ok := h.ModuleByURL("quill-static://math")
	if !ok {
		t.Fatalf("static module not created")
	}
	if _, ok := h.FindInModule(module, "sin"); !ok {
		t.Fatalf("def fn not exported from static module")
	}

	buildScript(t, h, "file:///ws/use.qll", "math::sin(1);")
	if errs := h.Errors(); len(errs) != 0 {
		t.Fatalf("static module path did not resolve: %+v", errs)
	}
}

func TestDefSidecarBindsToScript(t *testing.T) {
	h := New()
	buildScript(t, h, "file:///ws/app.qll", "helper(1);")
	buildDef(t, h, "file:///ws/app.d.qll", `
module;

fn helper(x);
`)
	h.ResolveAll()

	script, _ := h.SourceByURL("file:///ws/app.qll")
	def, _ := h.SourceByURL("file:///ws/app.d.qll")
	sm, _ := h.ModuleBySource(script)
	dm, _ := h.ModuleBySource(def)
	if sm != dm {
		t.Fatalf("sidecar def bound to %v, script module is %v", dm, sm)
	}
	if errs := h.Errors(); len(errs) != 0 {
		t.Fatalf("call into def signature did not resolve: %+v", errs)
	}
}

func TestDefDeclExports(t *testing.T) {
	h := New()
	src := buildDef(t, h, "file:///ws/cfg.d.qll", `
module cfg;

const LIMIT = 10;
let hidden = 1;
`)
	_ = src

	module, _ := h.ModuleByURL("quill-static://cfg")
	if _, ok := h.FindInModule(module, "LIMIT"); !ok {
		t.Fatalf("const in def must be exported")
	}
	if _, ok := h.FindInModule(module, "hidden"); ok {
		t.Fatalf("let in def must stay private")
	}
}
