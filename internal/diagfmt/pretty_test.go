package diagfmt

import (
	"strings"
	"testing"

	"quill/internal/diag"
	"quill/internal/source"
)

func sampleBag() (*diag.Bag, TextProvider) {
	const text = "let x = oops;\n"
	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.HirUnresolvedReference,
		Message:  "unknown symbol `oops`",
		Primary:  source.Span{URL: "file:///ws/a.qll", Range: source.NewTextRange(8, 12)},
		Notes: []diag.Note{
			{Span: source.Span{URL: "file:///ws/a.qll", Range: source.NewTextRange(4, 5)}, Msg: "did you mean `x`?"},
		},
	})
	texts := func(url string) (string, bool) {
		if url == "file:///ws/a.qll" {
			return text, true
		}
		return "", false
	}
	return bag, texts
}

func TestPrettyOutput(t *testing.T) {
	bag, texts := sampleBag()

	var sb strings.Builder
	Pretty(&sb, bag, texts, PrettyOpts{ShowNotes: true})
	got := sb.String()

	for _, want := range []string{
		"file:///ws/a.qll:1:9",
		"ERROR HIR3001",
		"unknown symbol `oops`",
		"let x = oops;",
		"^~~~",
		"did you mean `x`?",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPrettyBasenamePaths(t *testing.T) {
	bag, texts := sampleBag()

	var sb strings.Builder
	Pretty(&sb, bag, texts, PrettyOpts{PathMode: PathModeBasename})
	if !strings.Contains(sb.String(), "a.qll:1:9") {
		t.Fatalf("basename path missing:\n%s", sb.String())
	}
	if strings.Contains(sb.String(), "file:///ws") {
		t.Fatalf("full path leaked:\n%s", sb.String())
	}
}

func TestJSONOutput(t *testing.T) {
	bag, texts := sampleBag()

	var sb strings.Builder
	err := JSON(&sb, bag, texts, JSONOpts{IncludePositions: true, IncludeNotes: true})
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	got := sb.String()
	for _, want := range []string{
		`"severity": "ERROR"`,
		`"code": "HIR3001"`,
		`"line": 1`,
		`"col": 9`,
		`"did you mean`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("json missing %q:\n%s", want, got)
		}
	}
}
