package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"quill/internal/diag"
	"quill/internal/hir"
	"quill/internal/testkit"
)

func writeFile(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func loadDir(t *testing.T, dir string) *Workspace {
	t.Helper()
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	w := New(dir, cfg)
	if err := w.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return w
}

func checkInvariants(t *testing.T, w *Workspace) {
	t.Helper()
	w.Read(func(h *hir.Hir) {
		if err := testkit.CheckGraphInvariants(h); err != nil {
			t.Fatalf("graph invariants: %v", err)
		}
	})
}

func TestLoadResolvesWorkspaceImports(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.qll", "fn double(x) { x + x }\n")
	writeFile(t, dir, "main.qll", "import \"./lib\" as lib;\nlib::double(2);\n")

	w := loadDir(t, dir)

	bag := w.Diagnostics()
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	checkInvariants(t, w)

	w.Read(func(h *hir.Hir) {
		if _, ok := h.SourceByURL(urlFromPath(filepath.Join(dir, "lib.qll"))); !ok {
			t.Fatalf("lib.qll not indexed")
		}
		if missing := h.MissingModules(); len(missing) != 0 {
			t.Fatalf("missing modules: %v", missing)
		}
	})
}

func TestLoadChasesImportsOutsideRoots(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, "source_roots = [\"src\"]\n")
	writeFile(t, dir, filepath.Join("src", "main.qll"),
		"import \"../vendor/helper\" as helper;\nhelper::greet();\n")
	helperPath := writeFile(t, dir, filepath.Join("vendor", "helper.qll"),
		"fn greet() { \"hi\" }\n")

	w := loadDir(t, dir)

	bag := w.Diagnostics()
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	w.Read(func(h *hir.Hir) {
		if _, ok := h.SourceByURL(urlFromPath(helperPath)); !ok {
			t.Fatalf("helper.qll was not chased in")
		}
	})
	checkInvariants(t, w)
}

func TestUnresolvedImportSurfaces(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.qll", "import \"./gone\" as gone;\n")

	w := loadDir(t, dir)

	bag := w.Diagnostics()
	if !bag.HasErrors() {
		t.Fatalf("expected an unresolved import error")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.HirUnresolvedImport {
			found = true
		}
	}
	if !found {
		t.Fatalf("no unresolved-import diagnostic in %+v", bag.Items())
	}
}

func TestRemoveBreaksImport(t *testing.T) {
	dir := t.TempDir()
	libPath := writeFile(t, dir, "lib.qll", "fn id(x) { x }\n")
	writeFile(t, dir, "main.qll", "import \"./lib\" as lib;\nlib::id(1);\n")

	w := loadDir(t, dir)
	if w.Diagnostics().HasErrors() {
		t.Fatalf("setup should be clean")
	}

	if !w.Remove(urlFromPath(libPath)) {
		t.Fatalf("Remove returned false for a loaded url")
	}
	w.Resolve()

	if !w.Diagnostics().HasErrors() {
		t.Fatalf("expected errors after removing the imported source")
	}
	checkInvariants(t, w)
}

func TestSetTextReplacesSource(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, Config{})
	url := urlFromPath(filepath.Join(dir, "a.qll"))

	w.SetText(url, "missing();\n")
	w.Resolve()
	if !w.Diagnostics().HasErrors() {
		t.Fatalf("first revision should have an unresolved reference")
	}

	w.SetText(url, "fn missing() { 1 }\nmissing();\n")
	w.Resolve()
	if bag := w.Diagnostics(); bag.HasErrors() {
		t.Fatalf("second revision should be clean: %+v", bag.Items())
	}

	w.Read(func(h *hir.Hir) {
		count := 0
		for _, data := range h.Sources() {
			if data.URL == url {
				count++
			}
		}
		if count != 1 {
			t.Fatalf("want one source for %s, got %d", url, count)
		}
	})
	checkInvariants(t, w)
}

func TestDefSidecarLoads(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.qll", "double(2);\n")
	writeFile(t, dir, "main.d.qll", "fn double(x);\n")

	w := loadDir(t, dir)

	if bag := w.Diagnostics(); bag.HasErrors() {
		t.Fatalf("sidecar definition should satisfy the call: %+v", bag.Items())
	}
	checkInvariants(t, w)
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.SourceRoots) != 1 || cfg.SourceRoots[0] != "." {
		t.Fatalf("default source roots = %v", cfg.SourceRoots)
	}
	if cfg.MaxDiagnostics != 100 {
		t.Fatalf("default max diagnostics = %d", cfg.MaxDiagnostics)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, "source_roots = [\"src\", \"lib\"]\njobs = 2\nmax_diagnostics = 10\n")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.SourceRoots) != 2 || cfg.SourceRoots[0] != "src" {
		t.Fatalf("source roots = %v", cfg.SourceRoots)
	}
	if cfg.Jobs != 2 || cfg.MaxDiagnostics != 10 {
		t.Fatalf("jobs = %d, max = %d", cfg.Jobs, cfg.MaxDiagnostics)
	}
}
