package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"packlist/internal/checklist"
	"packlist/internal/fileutil"
)

// MaxImportSize caps the size of an import file.
const MaxImportSize = 1 << 20

// ErrExists is returned when a backup with the same name is already present.
var ErrExists = errors.New("backup already exists")

// Entry describes one backup file.
type Entry struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
	// Taken is parsed from the filename.
	Taken time.Time
}

// Write stores snapshot under dir using the snapshot's filename and returns
// the full path. dir is created if missing.
func Write(dir string, snapshot checklist.Snapshot) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", errors.New("backup directory is empty")
	}
	name := filepath.Base(snapshot.Filename)
	if name == "." || name != snapshot.Filename {
		return "", fmt.Errorf("invalid backup filename %q", snapshot.Filename)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := fileutil.WriteFileExclusive(path, snapshot.Data, 0o644); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%w: %s", ErrExists, path)
		}
		return "", fmt.Errorf("write backup: %w", err)
	}
	return path, nil
}

// ReadFile reads a whole import blob from path.
func ReadFile(path string) ([]byte, error) {
	data, err := fileutil.ReadFileLimit(path, MaxImportSize)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	return data, nil
}

// List returns the backups in dir, newest first. A missing directory yields
// an empty list.
func List(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list backups: %w", err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() {
			continue
		}
		name := dirEntry.Name()
		taken, ok := checklist.ParseBackupTime(name)
		if !ok {
			continue
		}
		info, err := dirEntry.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		entries = append(entries, Entry{
			Name:    name,
			Path:    filepath.Join(dir, name),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Taken:   taken,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Taken.Equal(entries[j].Taken) {
			return entries[i].Taken.After(entries[j].Taken)
		}
		return entries[i].Name > entries[j].Name
	})
	return entries, nil
}
