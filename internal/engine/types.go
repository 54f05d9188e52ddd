package engine

import (
	"errors"

	"github.com/phyten/envfind/internal/logging"
)

var (
	// ErrInvalidTarget is returned by strict classification when a path is
	// neither a directory nor a recognized source file.
	ErrInvalidTarget = errors.New("path must be a source file or directory")
	// ErrNotFound means a file expected at scan time does not exist.
	ErrNotFound = errors.New("file does not exist")
	// ErrUndecodable means the file content is not text.
	ErrUndecodable = errors.New("file content is not valid text")
)

// Kind はスキャン対象の種別を表す
type Kind int

const (
	KindText Kind = iota
	KindFile
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "text"
	}
}

// Target は Scanner が束縛する 1 つの入力
type Target struct {
	Kind  Kind
	Value string
}

// Skip はスキャンできずに除外したファイルを表す
type Skip struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

// DetailResult はファイルごとの検出結果
type DetailResult struct {
	Files   map[string][]string `json:"files"`
	Skipped []Skip              `json:"skipped,omitempty"`
}

// Paths returns the file keys in sorted order.
func (r DetailResult) Paths() []string {
	return sortedKeys(r.Files)
}

// Options は実行オプション
type Options struct {
	Extensions     []string // recognized source extensions; default .py/.pyx
	Marker         string   // package marker file; default __init__.py
	PackageOnly    bool     // descend only into directories holding Marker
	Permissive     bool     // unclassifiable arguments are scanned as raw text
	Excludes       []string // glob patterns matched against relative paths and base names
	ExcludeTypical bool
	Logger         logging.Logger
}
