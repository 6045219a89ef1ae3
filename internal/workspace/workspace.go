// Package workspace owns a semantic graph for a directory of sources and
// serializes access to it. The graph itself is single-threaded; the
// workspace takes the write lock for mutations (adding, removing,
// resolving) and the read lock for queries, so a language server or CLI
// can fan out reads freely.
package workspace

import (
	"io"
	"strings"
	"sync"

	"quill/internal/diag"
	"quill/internal/hir"
	"quill/internal/parser"
	"quill/internal/syntax"
)

// Workspace binds parsed texts, their parse diagnostics and the semantic
// graph together under one lock.
type Workspace struct {
	cfg  Config
	root string

	mu    sync.RWMutex
	graph *hir.Hir
	texts map[string]string
	parse map[string]*diag.Bag
}

// New returns an empty workspace rooted at dir.
func New(root string, cfg Config) *Workspace {
	cfg.applyDefaults()
	return &Workspace{
		cfg:   cfg,
		root:  root,
		graph: hir.New(),
		texts: make(map[string]string),
		parse: make(map[string]*diag.Bag),
	}
}

// Root returns the workspace root directory.
func (w *Workspace) Root() string { return w.root }

// SetText parses text and (re)indexes it under url without resolving.
// Batch loaders call Resolve once at the end; interactive edits call
// SetText then Resolve.
func (w *Workspace) SetText(url, text string) {
	root, bag := w.parseText(url, text)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.texts[url] = text
	w.parse[url] = bag
	w.graph.AddSource(url, root)
}

// Remove drops the source with the given url from the workspace. Returns
// false when the url is unknown. Call Resolve afterwards.
func (w *Workspace) Remove(url string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	src, ok := w.graph.SourceByURL(url)
	if !ok {
		return false
	}
	w.graph.RemoveSource(src)
	delete(w.texts, url)
	delete(w.parse, url)
	return true
}

// Resolve recomputes references and types across the whole graph.
func (w *Workspace) Resolve() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.graph.ResolveAll()
}

// Read runs fn with shared access to the graph. fn must not retain the
// graph or mutate it.
func (w *Workspace) Read(fn func(h *hir.Hir)) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	fn(w.graph)
}

// Text returns the stored text for url. Its signature matches
// diagfmt.TextProvider.
func (w *Workspace) Text(url string) (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	text, ok := w.texts[url]
	return text, ok
}

// Diagnostics merges parse and semantic diagnostics into one sorted bag.
func (w *Workspace) Diagnostics() *diag.Bag {
	w.mu.RLock()
	defer w.mu.RUnlock()

	bag := diag.NewBag(w.cfg.MaxDiagnostics)
	for _, fileBag := range w.parse {
		bag.Merge(fileBag)
	}
	w.graph.CollectErrors(diag.BagReporter{Bag: bag})
	bag.Sort()
	bag.Dedup()
	return bag
}

// WriteSnapshot serializes the graph to w, see hir.EncodeSnapshot.
func (w *Workspace) WriteSnapshot(out io.Writer) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.graph.EncodeSnapshot(out)
}

func (w *Workspace) parseText(url, text string) (root *syntax.Node, bag *diag.Bag) {
	bag = diag.NewBag(w.cfg.MaxDiagnostics)
	rep := diag.BagReporter{Bag: bag}
	if isDefURL(url) {
		return parser.ParseDef(url, text, rep), bag
	}
	return parser.ParseScript(url, text, rep), bag
}

func isDefURL(url string) bool {
	return strings.HasSuffix(url, ".d"+hir.SourceExtension)
}
