package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"quill/internal/diag"
	"quill/internal/hir"
	"quill/internal/syntax"
)

// maxImportRounds bounds the missing-module fixed point; each round must
// load at least one new file to continue, so the bound only guards against
// pathological resolver behavior.
const maxImportRounds = 64

type parsedFile struct {
	url  string
	text string
	root *syntax.Node
	bag  *diag.Bag
}

// Load scans the configured source roots, parses everything in parallel,
// indexes the results and resolves. Imports pointing outside the roots are
// chased until no loadable module is missing.
func (w *Workspace) Load(ctx context.Context) error {
	var paths []string
	for _, root := range w.cfg.SourceRoots {
		dir := root
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(w.root, dir)
		}
		found, err := listSources(dir)
		if err != nil {
			return err
		}
		paths = append(paths, found...)
	}
	sort.Strings(paths)

	if err := w.loadPaths(ctx, paths); err != nil {
		return err
	}
	w.Resolve()
	return w.loadMissing(ctx)
}

// loadMissing iterates resolve + fetch until every loadable missing module
// is in the graph. Modules that cannot be read stay missing and surface as
// unresolved-import diagnostics.
func (w *Workspace) loadMissing(ctx context.Context) error {
	for range maxImportRounds {
		var missing []string
		w.Read(func(h *hir.Hir) { missing = h.MissingModules() })

		var paths []string
		for _, url := range missing {
			path, ok := pathFromURL(url)
			if !ok {
				continue
			}
			if _, err := os.Stat(path); err != nil {
				continue
			}
			paths = append(paths, path)
		}
		if len(paths) == 0 {
			return nil
		}
		if err := w.loadPaths(ctx, paths); err != nil {
			return err
		}
		w.Resolve()
	}
	return fmt.Errorf("import resolution did not converge after %d rounds", maxImportRounds)
}

// loadPaths reads and parses files in parallel, then indexes the results
// serially. Each worker writes only its own slot, so the results slice
// needs no lock.
func (w *Workspace) loadPaths(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	jobs := w.cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]parsedFile, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			url := urlFromPath(path)
			text := string(data)
			root, bag := w.parseText(url, text)
			results[i] = parsedFile{url: url, text: text, root: root, bag: bag}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, r := range results {
		w.texts[r.url] = r.text
		w.parse[r.url] = r.bag
		w.graph.AddSource(r.url, r.root)
	}
	return nil
}

// listSources returns every source file under dir, recursively.
func listSources(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, hir.SourceExtension) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	return paths, nil
}

// urlFromPath converts a filesystem path to the file URL used as the
// source identity in the graph.
func urlFromPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + filepath.ToSlash(abs)
}

// pathFromURL is the inverse of urlFromPath; non-file URLs report false.
func pathFromURL(url string) (string, bool) {
	rest, ok := strings.CutPrefix(url, "file://")
	if !ok {
		return "", false
	}
	return filepath.FromSlash(rest), true
}
