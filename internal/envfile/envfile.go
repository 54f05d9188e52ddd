// Package envfile compares the variables found in code with the ones an
// existing .env file defines.
package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/joho/godotenv"
)

// ErrNotFound means the env file does not exist.
var ErrNotFound = errors.New("env file does not exist")

// Report lists names used in code but absent from the env file (Missing)
// and names the file defines that code never reads (Unused). Both are
// sorted and never nil.
type Report struct {
	Path    string   `json:"path"`
	Defined int      `json:"defined"`
	Missing []string `json:"missing"`
	Unused  []string `json:"unused"`
}

// OK reports whether every name used in code is defined.
func (r Report) OK() bool { return len(r.Missing) == 0 }

// Read parses the env file at path.
func Read(path string) (map[string]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return vars, nil
}

// Check reads envPath and compares it with found.
func Check(found []string, envPath string) (Report, error) {
	vars, err := Read(envPath)
	if err != nil {
		return Report{}, err
	}
	r := Compare(found, vars)
	r.Path = envPath
	return r, nil
}

// Compare diffs found against defined.
func Compare(found []string, defined map[string]string) Report {
	used := make(map[string]struct{}, len(found))
	missing := make([]string, 0)
	for _, name := range found {
		if _, dup := used[name]; dup {
			continue
		}
		used[name] = struct{}{}
		if _, ok := defined[name]; !ok {
			missing = append(missing, name)
		}
	}
	unused := make([]string, 0)
	for name := range defined {
		if _, ok := used[name]; !ok {
			unused = append(unused, name)
		}
	}
	sort.Strings(missing)
	sort.Strings(unused)
	return Report{Defined: len(defined), Missing: missing, Unused: unused}
}
