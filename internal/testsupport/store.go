package testsupport

import (
	"context"
	"testing"

	"packlist/internal/checklist"
	"packlist/internal/config"
	"packlist/internal/storage"
)

// MustOpenStore opens the configured backend, loads a checklist.Store over it
// and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *checklist.Store {
	t.Helper()

	backend, err := storage.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = backend.Close()
	})

	store, err := checklist.New(backend)
	if err != nil {
		t.Fatalf("checklist.New: %v", err)
	}
	store.Load(context.Background())
	return store
}

// SeedItems persists items through the configured backend before any store
// reads them.
func SeedItems(t testing.TB, cfg *config.Config, items ...checklist.Item) {
	t.Helper()

	backend, err := storage.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer backend.Close()

	data, err := checklist.EncodeItems(items)
	if err != nil {
		t.Fatalf("encode items: %v", err)
	}
	if err := backend.Write(context.Background(), string(data)); err != nil {
		t.Fatalf("seed items: %v", err)
	}
}
