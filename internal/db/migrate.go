package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent, so it is
// safe to run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ADD COLUMN has no IF NOT EXISTS form; a re-run reports the column as duplicate.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plans (
		id           TEXT PRIMARY KEY,
		setup_name   TEXT NOT NULL DEFAULT '',
		source       TEXT NOT NULL DEFAULT 'paste'
		             CHECK(source IN ('paste','file','remote','sample')),
		upper_end_in INTEGER NOT NULL DEFAULT 0,
		lower_end_in INTEGER NOT NULL DEFAULT 0,
		document     TEXT NOT NULL,
		saved_at     TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`ALTER TABLE plans ADD COLUMN label TEXT NOT NULL DEFAULT ''`,

	`CREATE INDEX IF NOT EXISTS idx_plans_updated ON plans(updated_at)`,
}
