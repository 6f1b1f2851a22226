package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the ent SQL driver and provides access to repositories.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequenceCounter
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	if err := migrate(context.Background(), drv); err != nil {
		drv.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db, drv: drv, seq: &sequenceCounter{}}, nil
}

// Driver returns the underlying ent SQL driver.
func (s *Store) Driver() *entsql.Driver {
	return s.drv
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{drv: s.drv, seq: s.seq, now: time.Now}
}

// SnapshotRepo returns a SnapshotRepo backed by this store.
func (s *Store) SnapshotRepo() SnapshotRepo {
	return &snapshotRepo{drv: s.drv}
}

// Reset deletes all learner data (sessions, rounds, answers, snapshots)
// in one transaction. LLM request events and the sequence are kept.
func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	for _, table := range learnerTables {
		query, args := entsql.Dialect(dialect.SQLite).Delete(table).Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			tx.Rollback()
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}
	return nil
}

// migrate creates tables and indexes that don't exist yet.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	for _, stmt := range schema {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return err
		}
	}
	return nil
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. FACTZ_DB environment variable
// 2. $XDG_DATA_HOME/factz/factz.db
// 3. ~/.local/share/factz/factz.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("FACTZ_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "factz", "factz.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}
