// Package filelock serializes template writes across processes and replaces
// files atomically.
package filelock

import (
	"context"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// retryDelay is how often a blocked Lock polls for the lock.
const retryDelay = 50 * time.Millisecond

// File is one file written by LockAndWrite.
type File struct {
	Path string
	Data []byte
}

// FileLock is an exclusive advisory lock backed by a lock file.
type FileLock struct {
	flock *flock.Flock
	path  string
}

func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Lock blocks until the lock is held or ctx is done.
func (fl *FileLock) Lock(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	locked, err := fl.flock.TryLockContext(ctx, retryDelay)
	if err != nil {
		return fmt.Errorf("acquire lock %s: %w", fl.path, err)
	}
	if !locked {
		return fmt.Errorf("acquire lock %s: not acquired", fl.path)
	}
	return nil
}

// TryLock takes the lock without blocking and reports whether it did.
func (fl *FileLock) TryLock() (bool, error) {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("try lock %s: %w", fl.path, err)
	}
	return acquired, nil
}

func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", fl.path, err)
	}
	return nil
}

// LockPathFor returns the lock file guarding writes into dir. It lives in the
// temp directory so scanned trees stay clean; the name is derived from the
// absolute dir path.
func LockPathFor(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(dir))
	return filepath.Join(os.TempDir(), fmt.Sprintf("envfind-%016x.lock", h.Sum64()))
}

// AtomicWrite replaces path with data through a temp file in the same
// directory and a rename. The parent directory must exist. Readers see
// either the old or the new content, never a partial write.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tempFile, err := os.CreateTemp(dir, ".tmp-envfind-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tempPath := tempFile.Name()
	defer func() {
		if tempFile != nil {
			_ = tempFile.Close()
			_ = os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		tempFile = nil
		return fmt.Errorf("rename temp file to %s: %w", path, err)
	}
	tempFile = nil
	return nil
}

// LockAndWrite holds the lock at lockPath while every file is written with
// AtomicWrite, in order. It stops at the first failure.
func LockAndWrite(ctx context.Context, lockPath string, files ...File) error {
	lock := NewFileLock(lockPath)
	if err := lock.Lock(ctx); err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	for _, f := range files {
		if err := AtomicWrite(f.Path, f.Data); err != nil {
			return err
		}
	}
	return nil
}
