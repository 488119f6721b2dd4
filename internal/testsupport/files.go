package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"packlist/internal/checklist"
)

// WriteFile writes data to path, creating parent directories.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteBackup writes items to path in the backup file format.
func WriteBackup(t testing.TB, path string, items ...checklist.Item) {
	t.Helper()

	data, err := checklist.EncodeItems(items)
	if err != nil {
		t.Fatalf("encode items: %v", err)
	}
	WriteFile(t, path, data)
}
