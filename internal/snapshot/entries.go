package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lazypower/zjump/internal/store"
)

// Export is one recorded snapshot.
type Export struct {
	ID         int64
	Source     string
	Mode       string
	EntryCount int
	ExportedAt int64
}

// WriteExport stores entries, already ranked, as a new export and returns its ID.
func (db *DB) WriteExport(ctx context.Context, source string, mode store.Mode, entries []store.Entry) (int64, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin export: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO exports (source, mode, entry_count, exported_at)
		VALUES (?, ?, ?, ?)
	`, source, mode.String(), len(entries), time.Now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("insert export: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("export id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (export_id, position, path, rank, last_used, frecent)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare entry insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, id, i, e.Path, e.Rank, e.LastUsed, e.Frecent); err != nil {
			return 0, fmt.Errorf("insert entry %q: %w", e.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit export: %w", err)
	}
	return id, nil
}

// LatestExport returns the most recent export, or nil if none exist.
func (db *DB) LatestExport(ctx context.Context) (*Export, error) {
	var e Export
	err := db.QueryRowContext(ctx, `
		SELECT id, source, mode, entry_count, exported_at
		FROM exports ORDER BY id DESC LIMIT 1
	`).Scan(&e.ID, &e.Source, &e.Mode, &e.EntryCount, &e.ExportedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest export: %w", err)
	}
	return &e, nil
}

// Entries returns the entries of an export in their ranked order.
func (db *DB) Entries(ctx context.Context, exportID int64) ([]store.Entry, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT path, rank, last_used, frecent
		FROM entries WHERE export_id = ? ORDER BY position
	`, exportID)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var out []store.Entry
	for rows.Next() {
		var e store.Entry
		if err := rows.Scan(&e.Path, &e.Rank, &e.LastUsed, &e.Frecent); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
