// Package history persists committed calculations: a bounded,
// insertion-ordered list of (formula snapshot, answer) pairs.
//
// Entries are stored in SQLite. The id column is the index list of
// the persistence layout: AUTOINCREMENT keeps IDs monotonically
// increasing for the lifetime of the database, including across
// eviction. Each row is one value record, a serialized formula (see
// internal/codec) plus its numeric answer.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - Initial schema
const currentSchemaVersion = 1

// DefaultCapacity is the bounded entry count. Inserting past the cap
// evicts the oldest (lowest-ID) entries.
const DefaultCapacity = 64

// Store provides durable storage for calculation history.
type Store struct {
	db       *sql.DB
	capacity int
}

// Option configures a Store.
type Option func(*Store)

// WithCapacity overrides the bounded entry count. The 64-slot cap is
// policy, not structure.
func WithCapacity(n int) Option {
	return func(s *Store) {
		s.capacity = n
	}
}

// Open creates or opens the history database at the given path.
// Applies required pragmas and the schema automatically; safe to call
// against an existing database.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection
	// avoids SQLITE_BUSY under interleaved reads and writes.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	s := &Store{db: db, capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Capacity returns the configured entry cap.
func (s *Store) Capacity() int { return s.capacity }

// DB returns the underlying sql.DB for direct queries.
// Use with caution - prefer using Store methods when available.
func (s *Store) DB() *sql.DB {
	return s.db
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and records the
// schema version. Idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}
