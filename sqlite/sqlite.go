// Package sqlite provides SQLite-based storage implementations for harvest services.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fwojciec/harvest"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db     *sql.DB
	path   string
	policy harvest.UniquePolicy
}

// Option configures a DB.
type Option func(*DB)

// WithPolicy sets the uniqueness policy contacts are stored under.
// Defaults to harvest.PolicyTriple.
func WithPolicy(p harvest.UniquePolicy) Option {
	return func(db *DB) {
		db.policy = p
	}
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string, opts ...Option) *DB {
	db := &DB{
		path:   path,
		policy: harvest.PolicyTriple,
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Policy returns the uniqueness policy the database was configured with.
func (db *DB) Policy() harvest.UniquePolicy {
	return db.policy
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	if err := db.policy.Validate(); err != nil {
		return err
	}

	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	// Verify connection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait 5 seconds on lock contention instead of failing with "database is locked".
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := db.checkPolicy(); err != nil {
		conn.Close()
		return err
	}

	if db.policy == harvest.PolicyEmail {
		if _, err := conn.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_contacts_email ON contacts(email)`); err != nil {
			conn.Close()
			return fmt.Errorf("failed to create email index: %w", err)
		}
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// createSchema creates the contacts and meta tables if they don't exist.
func (db *DB) createSchema() error {
	_, err := db.db.Exec(`
		CREATE TABLE IF NOT EXISTS contacts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			secondary TEXT NOT NULL,
			email TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_contacts_triple ON contacts(name, secondary, email);

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// checkPolicy records the policy on first open and rejects a later open
// under a different one. A database keeps the policy it was created with.
// Returns EINVALID on a mismatch.
func (db *DB) checkPolicy() error {
	if _, err := db.db.Exec(`INSERT OR IGNORE INTO meta (key, value) VALUES ('policy', ?)`, string(db.policy)); err != nil {
		return fmt.Errorf("failed to record policy: %w", err)
	}

	var stored string
	if err := db.db.QueryRow(`SELECT value FROM meta WHERE key = 'policy'`).Scan(&stored); err != nil {
		return fmt.Errorf("failed to read policy: %w", err)
	}

	if harvest.UniquePolicy(stored) != db.policy {
		return harvest.Errorf(harvest.EINVALID, "database %q was created with uniqueness policy %q, cannot open with %q", db.path, stored, string(db.policy))
	}
	return nil
}
