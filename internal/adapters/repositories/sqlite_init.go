package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the SQLite report tables.
func InitSchema(db *sql.DB) error {
	return initSchema(db, []string{
		`
	CREATE TABLE IF NOT EXISTS mission_reports (
		run_id TEXT PRIMARY KEY,
		mission_id TEXT NOT NULL,
		created_at TEXT NOT NULL,
		body TEXT NOT NULL
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_mission_reports_mission_id
	ON mission_reports(mission_id, created_at);
	`,
	})
}

// InitPostgresSchema creates the Postgres report tables.
func InitPostgresSchema(db *sql.DB) error {
	return initSchema(db, []string{
		`
	CREATE TABLE IF NOT EXISTS mission_reports (
		run_id TEXT PRIMARY KEY,
		mission_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		body JSONB NOT NULL
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_mission_reports_mission_id
	ON mission_reports(mission_id, created_at);
	`,
	})
}

func initSchema(db *sql.DB, statements []string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
