package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema contains the DDL for all tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS content (
		kind       TEXT NOT NULL,
		id         TEXT NOT NULL,
		position   INTEGER NOT NULL DEFAULT 0,
		published  INTEGER NOT NULL DEFAULT 0,
		payload    TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (kind, id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_content_kind_order ON content(kind, position, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_content_kind_published ON content(kind, published)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
