package hir

import "testing"

func TestRemoveSourceCompleteness(t *testing.T) {
	h := New()
	dep := buildScript(t, h, "file:///ws/b.qll", "fn helper() { 1 }")
	buildScript(t, h, "file:///ws/a.qll", `
import "./b" as bee;

bee::helper();
`)

	h.RemoveSource(dep)
	h.ResolveAll()

	if _, ok := h.SourceByURL("file:///ws/b.qll"); ok {
		t.Fatalf("removed source still registered")
	}
	if _, ok := h.ModuleByURL("file:///ws/b.qll"); ok {
		t.Fatalf("sourceless module not pruned")
	}

	// Nothing in the surviving graph may point at removed entities.
	for sym, data := range h.Symbols() {
		if data.Source.Is(dep) {
			t.Fatalf("symbol %v from removed source survived", sym)
		}
		if !data.ParentScope.IsNull() && h.ScopeData(data.ParentScope) == nil {
			t.Fatalf("symbol %v has dangling parent scope", sym)
		}
		target := data.Target()
		if !target.Symbol.IsNull() && h.SymbolData(target.Symbol) == nil {
			t.Fatalf("symbol %v targets a removed symbol", sym)
		}
		if !target.Module.IsNull() && h.ModuleData(target.Module) == nil {
			t.Fatalf("symbol %v targets a removed module", sym)
		}
		if !data.Ty.IsNull() && h.TypeData(data.Ty) == nil {
			t.Fatalf("symbol %v keeps a removed type", sym)
		}
	}
	for scope, data := range h.Scopes() {
		for _, member := range append(append([]Symbol{}, data.Symbols...), data.Hoisted...) {
			if h.SymbolData(member) == nil {
				t.Fatalf("scope %v lists removed symbol %v", scope, member)
			}
		}
	}

	// The import in a.qll is unresolved again, and so is the path segment
	// that used to land in the removed module.
	var imports, refs int
	for _, e := range h.Errors() {
		switch e.Kind {
		case ErrUnresolvedImport:
			imports++
		case ErrUnresolvedReference:
			refs++
		}
	}
	if imports != 1 || refs != 1 {
		t.Fatalf("want 1 unresolved import and 1 unresolved reference, got %d and %d", imports, refs)
	}
}

func TestRoundTripReplacement(t *testing.T) {
	h := New()
	const url = "file:///ws/a.qll"
	const text = `
fn add(a, b) { a }

let x = 1;
add(x, 2);
`
	buildScript(t, h, url, text)
	symbols, scopes := h.SymbolCount(), h.ScopeCount()

	// Replace with different content, then restore.
	buildScript(t, h, url, "let other = [1, 2];")
	buildScript(t, h, url, text)

	if h.SymbolCount() != symbols {
		t.Fatalf("symbol count drifted: %d -> %d", symbols, h.SymbolCount())
	}
	if h.ScopeCount() != scopes {
		t.Fatalf("scope count drifted: %d -> %d", scopes, h.ScopeCount())
	}
	if errs := h.Errors(); len(errs) != 0 {
		t.Fatalf("restored source has errors: %+v", errs)
	}
}

func TestStaleKeysMissAfterReplacement(t *testing.T) {
	h := New()
	const url = "file:///ws/a.qll"
	src := buildScript(t, h, url, "let x = 1;")
	decl := declsNamed(h, "x")[0]

	buildScript(t, h, url, "let x = 1;")

	if h.SourceData(src) != nil {
		t.Fatalf("stale source key still resolves")
	}
	if h.SymbolData(decl) != nil {
		t.Fatalf("stale symbol key still resolves")
	}
	// The replacement is intact under fresh keys.
	if got := len(declsNamed(h, "x")); got != 1 {
		t.Fatalf("want 1 declaration after replacement, got %d", got)
	}
}

func TestRemoveStaticModuleRegistration(t *testing.T) {
	h := New()
	def := buildDef(t, h, "file:///ws/math.d.qll", `
module math;

fn sin(x);
`)

	staticScope := h.ModuleData(h.StaticModule()).Scope
	if len(h.ScopeData(staticScope).Hoisted) != 1 {
		t.Fatalf("static registration missing")
	}

	h.RemoveSource(def)

	if _, ok := h.ModuleByURL("quill-static://math"); ok {
		t.Fatalf("static module survived source removal")
	}
	data := h.ScopeData(staticScope)
	if len(data.Hoisted)+len(data.Symbols) != 0 {
		t.Fatalf("synthetic static import not cleaned up")
	}
}
