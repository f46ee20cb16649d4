package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNoPlans is returned when no plan has been saved yet.
var ErrNoPlans = errors.New("store: no saved plans")

// Store manages the SQLite connection and schema.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the plan database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("schema migration failed: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS plans (
		run_id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		program TEXT NOT NULL,
		solver TEXT NOT NULL,
		status TEXT NOT NULL,
		objective REAL NOT NULL,
		horizon INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS plan_legs (
		run_id TEXT NOT NULL REFERENCES plans(run_id) ON DELETE CASCADE,
		day INTEGER NOT NULL,
		arc TEXT NOT NULL,
		kind TEXT NOT NULL,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		passengers REAL NOT NULL,
		flights INTEGER NOT NULL,
		PRIMARY KEY (run_id, day, arc)
	);

	-- Aircraft at each airport at the start of each day, 0..horizon.
	CREATE TABLE IF NOT EXISTS fleet_positions (
		run_id TEXT NOT NULL REFERENCES plans(run_id) ON DELETE CASCADE,
		day INTEGER NOT NULL,
		airport TEXT NOT NULL,
		aircraft INTEGER NOT NULL,
		PRIMARY KEY (run_id, day, airport)
	);

	CREATE INDEX IF NOT EXISTS idx_plans_created_at ON plans(created_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create plan tables: %w", err)
	}
	return nil
}
