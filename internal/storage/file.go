package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"packlist/internal/fileutil"
)

const lockRetryDelay = 25 * time.Millisecond

// FileMedium stores the value in <dir>/<key>.json.
type FileMedium struct {
	path     string
	mu       sync.Mutex
	lock     *flock.Flock
	readOnly bool
}

// NewFile returns a medium rooted at dir for key. The directory is created on
// first write.
func NewFile(dir, key string) (*FileMedium, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("file medium requires a directory")
	}
	name, err := fileNameForKey(key)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, name)
	return &FileMedium{
		path: path,
		lock: flock.New(path + ".lock"),
	}, nil
}

// NewFileReadOnly returns a medium that reads like NewFile but refuses writes
// and never creates the lock file.
func NewFileReadOnly(dir, key string) (*FileMedium, error) {
	f, err := NewFile(dir, key)
	if err != nil {
		return nil, err
	}
	f.readOnly = true
	return f, nil
}

// Path returns the backing file path.
func (f *FileMedium) Path() string {
	return f.path
}

func (f *FileMedium) Read(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := os.Stat(f.path); errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if f.shouldLockRead() {
		locked, err := f.lock.TryRLockContext(ctx, lockRetryDelay)
		if err != nil {
			return "", false, fmt.Errorf("lock %s: %w", f.lock.Path(), err)
		}
		if !locked {
			return "", false, fmt.Errorf("lock %s: not acquired", f.lock.Path())
		}
		defer f.lock.Unlock() //nolint:errcheck
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", f.path, err)
	}
	return string(data), true, nil
}

// Write replaces the file atomically via a temp file and rename.
func (f *FileMedium) Write(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.readOnly {
		return fmt.Errorf("write %s: %w", f.path, ErrReadOnly)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	locked, err := f.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock %s: %w", f.lock.Path(), err)
	}
	if !locked {
		return fmt.Errorf("lock %s: not acquired", f.lock.Path())
	}
	defer f.lock.Unlock() //nolint:errcheck

	return fileutil.WriteFileAtomic(f.path, []byte(value), 0o644)
}

// shouldLockRead reports whether a read takes the shared lock. A read-only
// medium skips it when no lock file exists, since flock would create one.
func (f *FileMedium) shouldLockRead() bool {
	if !f.readOnly {
		return true
	}
	_, err := os.Stat(f.lock.Path())
	return err == nil
}

func fileNameForKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("storage key is empty")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("storage key %q must not contain path separators", key)
	}
	return key + ".json", nil
}

// Close releases the lock file handle.
func (f *FileMedium) Close() error {
	return f.lock.Close()
}
