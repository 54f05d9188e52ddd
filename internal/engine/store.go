package engine

import (
	"sort"

	"github.com/phyten/envfind/internal/pattern"
)

// Normalize cleans every raw match, drops duplicates and returns the values
// in ascending byte order. Matches that clean down to nothing are dropped.
// It never returns nil.
func Normalize(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		c := pattern.Clean(r)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
