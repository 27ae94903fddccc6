// Package history keeps an append-only revision log of the task
// document in SQLite, one row per store mutation, backing the history
// and undo commands.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// OpenDB opens the revision database at the given path, creating the
// parent directory as needed. ":memory:" opens an in-memory database.
// WAL mode is enabled and the schema migrated automatically.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS revisions (
		id         TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		reason     TEXT NOT NULL,
		document   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_revisions_created_at
		ON revisions(created_at)`,
}

func migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
