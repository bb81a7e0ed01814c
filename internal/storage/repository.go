package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// slowQueryThreshold triggers a warn log for slow statements.
const slowQueryThreshold = 100 * time.Millisecond

// SaveInteraction inserts an interaction. CreatedAt defaults to now.
func (db *DB) SaveInteraction(ctx context.Context, in *Interaction) error {
	if in.ID == "" {
		return fmt.Errorf("interaction id is required")
	}
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO interactions (id, request_id, query_text, response_text, routed_to, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	start := time.Now()
	_, err := db.conn.ExecContext(ctx, query,
		in.ID, in.RequestID, in.QueryText, in.ResponseText, in.RoutedTo, createdAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save interaction: %w", err)
	}

	if duration := time.Since(start); duration > slowQueryThreshold {
		slog.WarnContext(ctx, "slow database operation",
			"operation", "SaveInteraction",
			"duration_ms", duration.Milliseconds())
	}
	return nil
}

// RecentInteractions returns up to limit interactions, newest first.
func (db *DB) RecentInteractions(ctx context.Context, limit int) ([]Interaction, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, request_id, query_text, response_text, routed_to, created_at
		FROM interactions
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`
	rows, err := db.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Interaction
	for rows.Next() {
		var in Interaction
		var createdAt int64
		if err := rows.Scan(&in.ID, &in.RequestID, &in.QueryText, &in.ResponseText, &in.RoutedTo, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		in.CreatedAt = time.UnixMilli(createdAt)
		out = append(out, in)
	}
	return out, rows.Err()
}

// CountByRoute returns the number of interactions per routing label.
func (db *DB) CountByRoute(ctx context.Context) (map[string]int, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT routed_to, COUNT(*) FROM interactions GROUP BY routed_to`)
	if err != nil {
		return nil, fmt.Errorf("failed to count interactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var route string
		var n int
		if err := rows.Scan(&route, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[route] = n
	}
	return counts, rows.Err()
}
