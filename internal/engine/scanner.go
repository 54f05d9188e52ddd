package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/phyten/envfind/internal/pattern"
)

// Classify decides how path is scanned. Existing directories are walked and
// paths with a recognized source extension are read as files. Anything else
// is rejected with ErrInvalidTarget, unless opts.Permissive is set, in which
// case the argument itself is scanned as text.
func Classify(path string, opts Options) (Target, error) {
	r := resolve(opts)
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return Target{Kind: KindDirectory, Value: path}, nil
	}
	if r.exts.Matches(path) {
		return Target{Kind: KindFile, Value: path}, nil
	}
	if r.permissive {
		return Target{Kind: KindText, Value: path}, nil
	}
	return Target{}, fmt.Errorf("%w: %s", ErrInvalidTarget, path)
}

// ScanString applies set to text.
func ScanString(set *pattern.Set, text string) []string {
	return set.Apply(text)
}

// ScanFile reads path and applies set to its content. It fails with
// ErrNotFound when path is not an existing regular file and with
// ErrUndecodable when the content is not text.
func ScanFile(set *pattern.Set, path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrNotFound, path)
	}
	text, err := readSource(path)
	if err != nil {
		return nil, err
	}
	return ScanString(set, text), nil
}

// ScanDirectory walks dir and returns the raw matches of every scanned file
// in traversal order, along with the files that had to be skipped.
func ScanDirectory(ctx context.Context, set *pattern.Set, dir string, opts Options) ([]string, []Skip, error) {
	var (
		raw     []string
		skipped []Skip
	)
	w := newWalker(ctx, set, dir, resolve(opts))
	w.visit = func(_ string, matches []string) { raw = append(raw, matches...) }
	w.skip = func(s Skip) { skipped = append(skipped, s) }
	if err := w.run(); err != nil {
		return nil, skipped, err
	}
	return raw, skipped, nil
}

// Scanner is bound to a single target. Its flat result is computed on the
// first FindMatches call and reused for the lifetime of the value.
// A Scanner is not safe for concurrent use.
type Scanner struct {
	set    *pattern.Set
	target Target
	opts   Options

	computed bool
	matches  []string
	skipped  []Skip
}

// NewScanner classifies path and binds a scanner to it.
func NewScanner(path string, set *pattern.Set, opts Options) (*Scanner, error) {
	if set == nil {
		return nil, errors.New("pattern set is nil")
	}
	target, err := Classify(path, opts)
	if err != nil {
		return nil, err
	}
	return &Scanner{set: set, target: target, opts: opts}, nil
}

// NewTextScanner binds a scanner to raw text.
func NewTextScanner(text string, set *pattern.Set) *Scanner {
	if set == nil {
		panic("pattern set cannot be nil")
	}
	return &Scanner{set: set, target: Target{Kind: KindText, Value: text}}
}

// Target returns the bound input.
func (s *Scanner) Target() Target { return s.target }

// Patterns returns the pattern set the scanner applies.
func (s *Scanner) Patterns() *pattern.Set { return s.set }

// FindMatches returns the cleaned, deduplicated and sorted matches of the
// target. The first successful call does the work; later calls return the
// same slice without scanning again. A failed or cancelled call leaves the
// scanner uncomputed.
func (s *Scanner) FindMatches(ctx context.Context) ([]string, error) {
	if s.computed {
		return s.matches, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	raw, skipped, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	s.matches = Normalize(raw)
	s.skipped = skipped
	s.computed = true
	return s.matches, nil
}

// Skipped lists the files a directory scan could not read. It is empty until
// FindMatches has succeeded.
func (s *Scanner) Skipped() []Skip {
	out := make([]Skip, len(s.skipped))
	copy(out, s.skipped)
	return out
}

func (s *Scanner) scan(ctx context.Context) ([]string, []Skip, error) {
	switch s.target.Kind {
	case KindDirectory:
		return ScanDirectory(ctx, s.set, s.target.Value, s.opts)
	case KindFile:
		raw, err := ScanFile(s.set, s.target.Value)
		return raw, nil, err
	default:
		return ScanString(s.set, s.target.Value), nil, nil
	}
}
