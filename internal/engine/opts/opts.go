package opts

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/phyten/envfind/internal/detect"
	"github.com/phyten/envfind/internal/engine"
)

var (
	trueLiterals  = map[string]struct{}{"1": {}, "true": {}, "yes": {}, "on": {}}
	falseLiterals = map[string]struct{}{"0": {}, "false": {}, "no": {}, "off": {}}
)

// Flat and detail commands accept different output formats.
var (
	findOutputs   = []string{"list", "json", "env", "template"}
	detailOutputs = []string{"json", "yaml", "table", "csv", "markdown"}
)

// Defaults returns the baseline options shared by every command.
func Defaults() engine.Options {
	return engine.Options{
		Extensions:     append([]string(nil), detect.Python.Extensions...),
		Marker:         detect.Python.Marker,
		PackageOnly:    true,
		Permissive:     false,
		Excludes:       nil,
		ExcludeTypical: false,
	}
}

// NormalizeAndValidate canonicalizes extensions, the marker and the exclude
// globs, rejecting values the walker cannot use.
func NormalizeAndValidate(o *engine.Options) error {
	seen := make(map[string]struct{}, len(o.Extensions))
	exts := make([]string, 0, len(o.Extensions))
	for _, raw := range o.Extensions {
		ext := detect.NormalizeExtension(raw)
		if ext == "" {
			continue
		}
		if strings.ContainsAny(ext[1:], `./\`) {
			return fmt.Errorf("invalid extension: %s", raw)
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		return fmt.Errorf("at least one source extension is required")
	}
	o.Extensions = exts

	o.Marker = strings.TrimSpace(o.Marker)
	if o.Marker == "" {
		o.Marker = detect.Python.Marker
	}
	if strings.ContainsAny(o.Marker, `/\`) {
		return fmt.Errorf("marker must be a file name, got %q", o.Marker)
	}

	o.Excludes = trimSlice(o.Excludes)
	for _, pat := range o.Excludes {
		if _, err := path.Match(pat, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pat, err)
		}
	}
	return nil
}

// ParseBool converts a string literal into a boolean, accepting multiple synonyms.
func ParseBool(raw, key string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := trueLiterals[v]; ok {
		return true, nil
	}
	if _, ok := falseLiterals[v]; ok {
		return false, nil
	}
	return false, fmt.Errorf("invalid value for %s: %q", key, raw)
}

// ParseIntInRange parses a string into an int and ensures it falls within [min, max].
// If max < min, the upper bound is ignored.
func ParseIntInRange(raw, key string, min, max int) (int, error) {
	n, err := parseInt(raw, key)
	if err != nil {
		return 0, err
	}
	if n < min {
		if max >= min {
			return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
		}
		return 0, fmt.Errorf("%s must be >= %d", key, min)
	}
	if max >= min && n > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}
	return n, nil
}

// NormalizeFindOutput validates the output format of flat results. Empty
// means list.
func NormalizeFindOutput(value string) (string, error) {
	return normalizeOutput(value, "list", findOutputs)
}

// NormalizeDetailOutput validates the output format of detail results.
// Empty means json.
func NormalizeDetailOutput(value string) (string, error) {
	return normalizeOutput(value, "json", detailOutputs)
}

func normalizeOutput(value, def string, allowed []string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return def, nil
	}
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid --output: %s (want one of %s)", value, strings.Join(allowed, "|"))
}

// SplitMulti turns repeated flag values (and comma-separated values) into a flat slice.
func SplitMulti(vals []string) []string {
	var out []string
	for _, raw := range vals {
		for _, piece := range strings.Split(raw, ",") {
			part := strings.TrimSpace(piece)
			if part == "" {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}

func parseInt(raw, key string) (int, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	return n, nil
}

func trimSlice(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := values[:0]
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
