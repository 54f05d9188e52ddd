package engine

import (
	"context"
	"os"

	"github.com/phyten/envfind/internal/pattern"
)

// Detail walks dir like ScanDirectory but keeps the matches of each file
// apart. Files are keyed by their slash-separated path relative to dir and
// only files with at least one match are kept. Unreadable files end up in
// Skipped and are logged as warnings; they never abort the walk. A dir that
// is not a directory yields an empty result.
func Detail(ctx context.Context, set *pattern.Set, dir string, opts Options) (DetailResult, error) {
	res := DetailResult{Files: make(map[string][]string)}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return res, nil
	}
	w := newWalker(ctx, set, dir, resolve(opts))
	w.visit = func(rel string, raw []string) {
		if found := Normalize(raw); len(found) > 0 {
			res.Files[rel] = found
		}
	}
	w.skip = func(s Skip) { res.Skipped = append(res.Skipped, s) }
	if err := w.run(); err != nil {
		if ctxErr := w.ctx.Err(); ctxErr != nil {
			return res, ctxErr
		}
		// the root could not be listed; nothing was scanned
		w.report(".", err)
	}
	return res, nil
}
