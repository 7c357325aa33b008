package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS settings (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS edit_log (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		id         TEXT NOT NULL UNIQUE,
		issue_id   INTEGER NOT NULL,
		kind       TEXT NOT NULL
		           CHECK(kind IN ('move','resize','reparent','quick_edit')),
		fields     TEXT NOT NULL DEFAULT '',
		outcome    TEXT NOT NULL
		           CHECK(outcome IN ('applied','fetch_failed','permission_denied',
		                             'validation_failed','transport_failed','abandoned')),
		created_at TEXT NOT NULL
	)`,

	`ALTER TABLE edit_log ADD COLUMN detail TEXT NOT NULL DEFAULT ''`,

	`CREATE INDEX IF NOT EXISTS idx_edit_log_issue ON edit_log(issue_id)`,
	`CREATE INDEX IF NOT EXISTS idx_edit_log_created ON edit_log(created_at)`,
}
