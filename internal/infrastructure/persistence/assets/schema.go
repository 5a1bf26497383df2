package assets

import (
	"database/sql"
	"fmt"
)

// EnsureSchema creates the lifecycle tables if they do not exist yet. Runs
// once per tenant during pre-activation.
func EnsureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS entities (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			thumbnail_ref TEXT,
			is_published INTEGER NOT NULL DEFAULT 0,
			archived_at TEXT,
			deleted_at TEXT,
			approval_status TEXT NOT NULL DEFAULT 'none',
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE TABLE IF NOT EXISTS entity_metadata (
			entity_id TEXT NOT NULL,
			field TEXT NOT NULL,
			value TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (entity_id, field)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entities_kind ON entities(kind)`,
		`CREATE INDEX IF NOT EXISTS idx_entities_deleted ON entities(deleted_at)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema bootstrap failed: %w", err)
		}
	}
	return nil
}
