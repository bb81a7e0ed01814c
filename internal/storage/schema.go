package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// InitSchema creates all tables and indexes.
func InitSchema(ctx context.Context, db *sql.DB) error {
	return createInteractionsTable(ctx, db)
}

func createInteractionsTable(ctx context.Context, db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS interactions (
		id TEXT PRIMARY KEY,
		request_id TEXT NOT NULL DEFAULT '',
		query_text TEXT NOT NULL,
		response_text TEXT NOT NULL,
		routed_to TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_interactions_created_at ON interactions(created_at);
	CREATE INDEX IF NOT EXISTS idx_interactions_routed_to ON interactions(routed_to);
	`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create interactions table: %w", err)
	}
	return nil
}
