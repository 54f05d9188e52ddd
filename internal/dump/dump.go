// Package dump writes the .env.example templates for a set of variable names.
package dump

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/phyten/envfind/internal/filelock"
	"github.com/phyten/envfind/internal/logging"
	"github.com/phyten/envfind/internal/output"
)

const (
	EnvTemplate  = ".env.example"
	JSONTemplate = ".env.example.json"
)

var (
	// ErrOutputDir means the output location is missing or not a directory.
	ErrOutputDir = errors.New("output location is not a directory")
	// ErrWrite wraps any failure while writing a template.
	ErrWrite = errors.New("write template")
)

// Which selects the templates Dump writes.
type Which int

const (
	All Which = iota
	EnvOnly
	JSONOnly
)

// ParseWhich accepts all, env and json. Empty means all.
func ParseWhich(raw string) (Which, error) {
	switch raw {
	case "", "all":
		return All, nil
	case "env":
		return EnvOnly, nil
	case "json":
		return JSONOnly, nil
	default:
		return All, fmt.Errorf("invalid template kind: %s", raw)
	}
}

// Dump writes the templates for names into outDir and returns the paths it
// wrote. Writes into the same directory are serialized across processes and
// each file is replaced atomically.
func Dump(ctx context.Context, names []string, outDir string, which Which, log logging.Logger) ([]string, error) {
	log = logging.OrNull(log)
	info, err := os.Stat(outDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrOutputDir, outDir)
	}

	var files []filelock.File
	if which == All || which == EnvOnly {
		files = append(files, filelock.File{
			Path: filepath.Join(outDir, EnvTemplate),
			Data: []byte(output.EnvTemplate(names)),
		})
	}
	if which == All || which == JSONOnly {
		data, err := output.MarshalTemplate(names)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWrite, err)
		}
		files = append(files, filelock.File{
			Path: filepath.Join(outDir, JSONTemplate),
			Data: data,
		})
	}

	if err := filelock.LockAndWrite(ctx, filelock.LockPathFor(outDir), files...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		log.Info("variables dumped to %s", f.Path)
		paths = append(paths, f.Path)
	}
	return paths, nil
}
