package engine

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/phyten/envfind/internal/detect"
	"github.com/phyten/envfind/internal/logging"
	"github.com/phyten/envfind/internal/pattern"
)

// typicalExcludes are directory names that never hold first-party sources.
var typicalExcludes = []string{
	".git",
	".hg",
	".tox",
	".venv",
	"venv",
	"__pycache__",
	"node_modules",
	"build",
	"dist",
	"site-packages",
}

// resolved is Options with defaults applied.
type resolved struct {
	exts        detect.Extensions
	marker      string
	packageOnly bool
	permissive  bool
	excludes    []string
	log         logging.Logger
}

func resolve(opts Options) resolved {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = detect.Python.Extensions
	}
	marker := strings.TrimSpace(opts.Marker)
	if marker == "" {
		marker = detect.Python.Marker
	}
	var excludes []string
	for _, raw := range opts.Excludes {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			excludes = append(excludes, filepath.ToSlash(strings.TrimSuffix(trimmed, "/")))
		}
	}
	if opts.ExcludeTypical {
		excludes = append(excludes, typicalExcludes...)
	}
	return resolved{
		exts:        detect.NewExtensions(exts),
		marker:      marker,
		packageOnly: opts.PackageOnly,
		permissive:  opts.Permissive,
		excludes:    excludes,
		log:         logging.OrNull(opts.Logger),
	}
}

// excluded matches rel (slash separated) and its base name against the
// exclude globs. Malformed globs never match.
func (r resolved) excluded(rel string) bool {
	base := path.Base(rel)
	for _, pat := range r.excludes {
		if ok, _ := path.Match(pat, rel); ok {
			return true
		}
		if ok, _ := path.Match(pat, base); ok {
			return true
		}
	}
	return false
}

// walker performs the depth-first, pre-order traversal shared by flat and
// detail scans. Every scanned file is reported through visit; every file or
// nested directory that cannot be read is reported through skip.
type walker struct {
	ctx   context.Context
	set   *pattern.Set
	opts  resolved
	root  string
	seen  map[string]struct{}
	visit func(rel string, raw []string)
	skip  func(Skip)
}

func newWalker(ctx context.Context, set *pattern.Set, root string, opts resolved) *walker {
	if ctx == nil {
		ctx = context.Background()
	}
	return &walker{
		ctx:  ctx,
		set:  set,
		opts: opts,
		root: root,
		seen: make(map[string]struct{}),
	}
}

// run walks the root. Only a failure to list the root itself or a cancelled
// context is returned as an error.
func (w *walker) run() error {
	return w.walkDir(w.root)
}

func (w *walker) walkDir(dir string) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}
	realDir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", dir, err)
	}
	if abs, err := filepath.Abs(realDir); err == nil {
		realDir = abs
	}
	if _, ok := w.seen[realDir]; ok {
		w.opts.log.Debug("already visited %s, not descending again", w.rel(dir))
		return nil
	}
	w.seen[realDir] = struct{}{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("list %s: %w", dir, err)
	}
	for _, entry := range entries {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		full := filepath.Join(dir, entry.Name())
		rel := w.rel(full)
		if w.opts.excluded(rel) {
			continue
		}
		info, err := os.Stat(full)
		if err != nil {
			// dangling links and entries removed since the listing
			if w.opts.exts.Matches(full) {
				w.report(rel, fmt.Errorf("%w: %s", ErrNotFound, full))
			}
			continue
		}
		switch {
		case info.IsDir():
			if w.opts.packageOnly && !detect.IsPackage(full, w.opts.marker) {
				continue
			}
			if err := w.walkDir(full); err != nil {
				if ctxErr := w.ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				w.report(rel, err)
			}
		case info.Mode().IsRegular() && w.opts.exts.Matches(full):
			raw, err := ScanFile(w.set, full)
			if err != nil {
				w.report(rel, err)
				continue
			}
			if w.visit != nil {
				w.visit(rel, raw)
			}
		}
	}
	return nil
}

func (w *walker) report(rel string, err error) {
	w.opts.log.Warn("skipped %s: %v", rel, err)
	if w.skip != nil {
		w.skip(Skip{Path: rel, Reason: err.Error(), Err: err})
	}
}

func (w *walker) rel(full string) string {
	rel, err := filepath.Rel(w.root, full)
	if err != nil {
		return filepath.ToSlash(full)
	}
	return filepath.ToSlash(rel)
}
