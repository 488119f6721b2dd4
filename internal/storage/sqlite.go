package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes.
const schemaVersion = 1

// SQLiteFileName is the database file created inside the data directory.
const SQLiteFileName = "packlist.db"

// ErrSchemaMismatch indicates the database was created by an incompatible version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// SQLiteMedium stores the value as a row in a key/value table.
type SQLiteMedium struct {
	db       *sql.DB
	path     string
	key      string
	readOnly bool
}

// OpenSQLite opens (creating if needed) <dir>/packlist.db for key.
func OpenSQLite(ctx context.Context, dir, key string) (*SQLiteMedium, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, errors.New("storage key is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	dbPath := filepath.Join(dir, SQLiteFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	medium := &SQLiteMedium{db: db, path: dbPath, key: key}
	if err := medium.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return medium, nil
}

// OpenSQLiteReadOnly opens <dir>/packlist.db without creating or migrating
// it. A missing database, or one without a schema yet, reads as absent.
func OpenSQLiteReadOnly(ctx context.Context, dir, key string) (*SQLiteMedium, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, errors.New("storage key is empty")
	}
	dbPath := filepath.Join(dir, SQLiteFileName)
	medium := &SQLiteMedium{path: dbPath, key: key, readOnly: true}
	if _, err := os.Stat(dbPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return medium, nil
		}
		return nil, fmt.Errorf("stat sqlite db: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragma: %w", err)
	}

	medium.db = db
	exists, err := medium.checkSchema(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if !exists {
		_ = db.Close()
		medium.db = nil
	}
	return medium, nil
}

// Path returns the database file path.
func (m *SQLiteMedium) Path() string {
	return m.path
}

// Close closes the underlying database connection.
func (m *SQLiteMedium) Close() error {
	if m == nil || m.db == nil {
		return nil
	}
	return m.db.Close()
}

func (m *SQLiteMedium) Read(ctx context.Context) (string, bool, error) {
	if m.db == nil {
		return "", false, nil
	}
	var value string
	err := m.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, m.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", m.key, err)
	}
	return value, true, nil
}

func (m *SQLiteMedium) Write(ctx context.Context, value string) error {
	if m.readOnly {
		return fmt.Errorf("write %s: %w", m.key, ErrReadOnly)
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := m.db.ExecContext(
		ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		m.key,
		value,
		timestamp,
	)
	if err != nil {
		return fmt.Errorf("write %s: %w", m.key, err)
	}
	return nil
}

func (m *SQLiteMedium) initSchema(ctx context.Context) error {
	exists, err := m.checkSchema(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return m.createSchema(ctx)
	}
	return nil
}

// checkSchema reports whether the schema exists and matches schemaVersion.
func (m *SQLiteMedium) checkSchema(ctx context.Context) (bool, error) {
	var tableExists int
	err := m.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return false, fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		return false, nil
	}

	var version int
	err = m.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return false, fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return false, fmt.Errorf("%w: database has version %d, expected %d (export a backup, delete %s, then import)",
			ErrSchemaMismatch, version, schemaVersion, m.path)
	}
	return true, nil
}

func (m *SQLiteMedium) createSchema(ctx context.Context) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}
