package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrQuotaExceeded is returned by a MemoryMedium configured to fail writes.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// MemoryMedium keeps the value in memory.
type MemoryMedium struct {
	mu        sync.Mutex
	value     string
	present   bool
	writes    int
	failWrite error
	failRead  error
}

// NewMemory returns an empty in-memory medium.
func NewMemory() *MemoryMedium {
	return &MemoryMedium{}
}

// NewMemoryWith returns an in-memory medium pre-seeded with value.
func NewMemoryWith(value string) *MemoryMedium {
	return &MemoryMedium{value: value, present: true}
}

func (m *MemoryMedium) Read(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failRead != nil {
		return "", false, m.failRead
	}
	return m.value, m.present, nil
}

func (m *MemoryMedium) Write(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return m.failWrite
	}
	m.value = value
	m.present = true
	m.writes++
	return nil
}

// FailWrites makes subsequent writes return err; nil restores normal writes.
func (m *MemoryMedium) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrite = err
}

// FailReads makes subsequent reads return err; nil restores normal reads.
func (m *MemoryMedium) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failRead = err
}

// Value returns the stored value and whether one exists.
func (m *MemoryMedium) Value() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, m.present
}

// Writes returns the number of successful writes.
func (m *MemoryMedium) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Path describes the medium for status output.
func (m *MemoryMedium) Path() string { return "memory" }

// Close is a no-op.
func (m *MemoryMedium) Close() error { return nil }
