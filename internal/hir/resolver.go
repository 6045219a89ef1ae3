package hir

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ModuleResolver turns import paths into canonical module URLs. The
// default strategy is filesystem-like; language servers plug in their own.
type ModuleResolver interface {
	// ResolveURL resolves an import path written in the source identified
	// by base. The returned URL is the identity of the imported module.
	ResolveURL(base, importPath string) (string, error)
}

// DefaultResolver accepts absolute URLs verbatim and joins relative paths
// against the importing source's URL, appending the source extension when
// the path has none.
type DefaultResolver struct{}

// SourceExtension is appended to extension-less relative imports.
const SourceExtension = ".qll"

func (DefaultResolver) ResolveURL(base, importPath string) (string, error) {
	if importPath == "" {
		return "", fmt.Errorf("empty import path")
	}

	if hasScheme(importPath) {
		return importPath, nil
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", base, err)
	}

	rel := importPath
	if path.Ext(rel) == "" {
		rel += SourceExtension
	}

	relURL, err := url.Parse(rel)
	if err != nil {
		return "", fmt.Errorf("invalid import path %q: %w", importPath, err)
	}

	return baseURL.ResolveReference(relURL).String(), nil
}

func hasScheme(s string) bool {
	i := strings.Index(s, "://")
	if i <= 0 {
		return false
	}
	for _, c := range s[:i] {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9', c == '+', c == '-', c == '.':
		default:
			return false
		}
	}
	return true
}

// resolveImportURL resolves an import path against the URL of the source
// it appears in. Returns "" when resolution fails.
func (h *Hir) resolveImportURL(src Source, importPath string) string {
	base := ""
	if !src.IsNull() {
		if data := h.sources.Get(src); data != nil {
			base = data.URL
		}
	}
	resolved, err := h.resolver.ResolveURL(base, importPath)
	if err != nil {
		return ""
	}
	return resolved
}

// scriptURL maps a definition file URL to the script it describes:
// `foo.d.qll` describes `foo.qll`. Returns the input unchanged when the
// URL is not a definition URL.
func scriptURL(defURL string) string {
	const defSuffix = ".d" + SourceExtension
	if stripped, ok := strings.CutSuffix(defURL, defSuffix); ok {
		return stripped + SourceExtension
	}
	return defURL
}
