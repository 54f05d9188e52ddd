// Package detect decides which files count as source files and which
// directories count as packages.
package detect

import (
	"os"
	"path/filepath"
	"strings"
)

// Language describes the files a scan reads and the marker that turns a
// directory into a package.
type Language struct {
	Name       string
	Extensions []string
	Marker     string
}

// Python is the default language: .py and .pyx sources, __init__.py marker.
var Python = Language{
	Name:       "python",
	Extensions: []string{".py", ".pyx"},
	Marker:     "__init__.py",
}

// Extensions is a normalized, case-insensitive set of file extensions.
type Extensions struct {
	set map[string]struct{}
}

// NewExtensions accepts values with or without the leading dot. Empty
// entries are dropped.
func NewExtensions(values []string) Extensions {
	set := make(map[string]struct{}, len(values))
	for _, raw := range values {
		ext := NormalizeExtension(raw)
		if ext == "" {
			continue
		}
		set[ext] = struct{}{}
	}
	return Extensions{set: set}
}

// NormalizeExtension lower-cases ext and makes sure it starts with a dot.
func NormalizeExtension(raw string) string {
	ext := strings.ToLower(strings.TrimSpace(raw))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Matches reports whether the extension of p is in the set.
func (e Extensions) Matches(p string) bool {
	if len(e.set) == 0 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(p))
	if ext == "" {
		return false
	}
	_, ok := e.set[ext]
	return ok
}

// IsPackage reports whether marker exists directly inside dir as a regular
// file. An empty marker makes every directory a package.
func IsPackage(dir, marker string) bool {
	if marker == "" {
		return true
	}
	info, err := os.Stat(filepath.Join(dir, marker))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
