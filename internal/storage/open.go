package storage

import (
	"context"
	"errors"
	"fmt"

	"packlist/internal/config"
)

// ErrReadOnly is returned by writes to a medium opened with OpenReadOnly.
var ErrReadOnly = errors.New("storage opened read-only")

// Backend is a medium the caller must close.
type Backend interface {
	Read(ctx context.Context) (string, bool, error)
	Write(ctx context.Context, value string) error
	Path() string
	Close() error
}

// Open returns the medium selected by cfg.Storage.Backend.
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	if cfg == nil {
		return nil, fmt.Errorf("storage: config is nil")
	}
	switch cfg.Storage.Backend {
	case config.BackendFile:
		return NewFile(cfg.Paths.DataDir, cfg.Storage.Key)
	case config.BackendSQLite:
		return OpenSQLite(ctx, cfg.Paths.DataDir, cfg.Storage.Key)
	default:
		return nil, fmt.Errorf("storage: unsupported backend %q", cfg.Storage.Backend)
	}
}

// OpenReadOnly returns the selected medium for inspection. It creates no
// files and its Write always fails with ErrReadOnly.
func OpenReadOnly(ctx context.Context, cfg *config.Config) (Backend, error) {
	if cfg == nil {
		return nil, fmt.Errorf("storage: config is nil")
	}
	switch cfg.Storage.Backend {
	case config.BackendFile:
		return NewFileReadOnly(cfg.Paths.DataDir, cfg.Storage.Key)
	case config.BackendSQLite:
		return OpenSQLiteReadOnly(ctx, cfg.Paths.DataDir, cfg.Storage.Key)
	default:
		return nil, fmt.Errorf("storage: unsupported backend %q", cfg.Storage.Backend)
	}
}
