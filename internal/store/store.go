// Package store persists analysis runs to SQLite so UI behavior can be
// inventoried over time and diffed between revisions.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite data access layer for snapshot runs.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use in transactions.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates the snapshot tables and indexes. Idempotent.
func (s *Store) Migrate() error {
	_, err := s.db.Exec(schemaDDL)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS runs (
  id              TEXT PRIMARY KEY,
  root            TEXT NOT NULL,
  created_at      TIMESTAMP,
  file_count      INTEGER
);

CREATE TABLE IF NOT EXISTS files (
  id              INTEGER PRIMARY KEY,
  run_id          TEXT NOT NULL REFERENCES runs(id),
  path            TEXT NOT NULL,
  flow_count      INTEGER
);

CREATE TABLE IF NOT EXISTS flows (
  id              INTEGER PRIMARY KEY,
  file_id         INTEGER NOT NULL REFERENCES files(id),
  ordinal         INTEGER NOT NULL,
  context         TEXT,
  element_type    TEXT NOT NULL,
  label           TEXT,
  response_var    TEXT,
  action_type     TEXT NOT NULL,
  source          TEXT
);

CREATE TABLE IF NOT EXISTS mutations (
  id              INTEGER PRIMARY KEY,
  flow_id         INTEGER NOT NULL REFERENCES flows(id),
  ordinal         INTEGER NOT NULL,
  target          TEXT NOT NULL,
  mutation_type   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_files_run ON files(run_id);
CREATE INDEX IF NOT EXISTS idx_files_path ON files(path);
CREATE INDEX IF NOT EXISTS idx_flows_file ON flows(file_id);
CREATE INDEX IF NOT EXISTS idx_mutations_flow ON mutations(flow_id);
`

// DeleteRun transactionally removes a run and all of its data.
// Deletes in reverse-dependency order to respect FK constraints.
func (s *Store) DeleteRun(runID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM mutations WHERE flow_id IN
		   (SELECT flows.id FROM flows JOIN files ON flows.file_id = files.id WHERE files.run_id = ?)`,
		`DELETE FROM flows WHERE file_id IN (SELECT id FROM files WHERE run_id = ?)`,
		`DELETE FROM files WHERE run_id = ?`,
		`DELETE FROM runs WHERE id = ?`,
	} {
		if _, err := tx.Exec(q, runID); err != nil {
			return fmt.Errorf("delete run data: %w", err)
		}
	}

	return tx.Commit()
}
