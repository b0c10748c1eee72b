package snapshot

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "exports: one row per snapshot written",
		SQL: `
CREATE TABLE exports (
    id          INTEGER PRIMARY KEY,
    source      TEXT NOT NULL,
    mode        TEXT NOT NULL CHECK (mode IN ('frecent', 'rank', 'time')),
    entry_count INTEGER NOT NULL,
    exported_at INTEGER NOT NULL
);

CREATE INDEX idx_exports_exported_at ON exports(exported_at DESC);
`,
	},
	{
		Version:     2,
		Description: "entries: ranked path records per export",
		SQL: `
CREATE TABLE entries (
    export_id  INTEGER NOT NULL,
    position   INTEGER NOT NULL,
    path       TEXT NOT NULL,
    rank       INTEGER NOT NULL CHECK (rank >= 0),
    last_used  INTEGER NOT NULL,
    frecent    REAL NOT NULL,

    PRIMARY KEY (export_id, position),
    FOREIGN KEY (export_id) REFERENCES exports(id) ON DELETE CASCADE
);

CREATE INDEX idx_entries_path ON entries(path);
`,
	},
}

func (db *DB) migrate() error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&version)
	return version, err
}
