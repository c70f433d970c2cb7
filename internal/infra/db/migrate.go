package db

import (
	"context"
	"database/sql"
	"fmt"
)

var upStatements = []string{
	`
CREATE TABLE IF NOT EXISTS tldr_settings (
    key        VARCHAR(191) PRIMARY KEY,
    value      TEXT,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS idx_tldr_settings_updated_at ON tldr_settings(updated_at DESC)`,
}

// MigrateUp creates the settings table. It is safe to run on every start.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	for _, stmt := range upStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
	}
	return nil
}

// MigrateDown drops the settings table and every stored selection with it.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS tldr_settings`); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}
