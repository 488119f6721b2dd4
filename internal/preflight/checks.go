package preflight

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"packlist/internal/checklist"
	"packlist/internal/config"
	"packlist/internal/storage"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckStorage reads the stored checklist without modifying it and reports
// whether the next load would adopt it.
func CheckStorage(ctx context.Context, cfg *config.Config) Result {
	const name = "Stored checklist"

	backend, err := storage.OpenReadOnly(ctx, cfg)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("open %s backend: %v", cfg.Storage.Backend, err)}
	}
	defer backend.Close()

	raw, ok, err := backend.Read(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", backend.Path(), err)}
	}
	if !ok {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (not saved yet; defaults on first use)", backend.Path())}
	}
	items, err := checklist.DecodeItems([]byte(raw))
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v; defaults will replace it)", backend.Path(), err)}
	}
	checked := 0
	for _, item := range items {
		if item.Checked {
			checked++
		}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d items, %d packed)", backend.Path(), len(items), checked)}
}
