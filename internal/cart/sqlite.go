package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const slotSchema = `CREATE TABLE IF NOT EXISTS slots (
	name       TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLiteSlot stores the cart as one row of a slots table, keyed by name.
// Several named slots may share one database file.
type SQLiteSlot struct {
	db   *sql.DB
	name string
}

var _ Slot = (*SQLiteSlot)(nil)

// OpenSQLiteSlot opens (creating if needed) the database at path and
// returns the slot called name. Close releases the database.
func OpenSQLiteSlot(ctx context.Context, path, name string) (*SQLiteSlot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("slot name is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cart dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cart db: %w", err)
	}
	// One connection serializes writers; the cart has a single owner anyway.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, slotSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init cart db: %w", err)
	}
	return &SQLiteSlot{db: db, name: name}, nil
}

// Name returns the slot name.
func (s *SQLiteSlot) Name() string {
	return s.name
}

// Read returns the stored value, or nil when the slot has no row yet.
func (s *SQLiteSlot) Read(ctx context.Context) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE name = ?`, s.name).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("read slot %s: %w", s.name, err)
	}
	return value, nil
}

// Write upserts the slot row.
func (s *SQLiteSlot) Write(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO slots (name, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.name, data, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("write slot %s: %w", s.name, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteSlot) Close() error {
	return s.db.Close()
}
