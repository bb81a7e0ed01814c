package analytics

import (
	"context"

	"github.com/google/uuid"

	"github.com/garyellow/syllabus-assistant-go/internal/storage"
)

// InteractionSaver persists an interaction. Implemented by *storage.DB.
type InteractionSaver interface {
	SaveInteraction(ctx context.Context, in *storage.Interaction) error
}

// SQLiteSink writes events to the local interactions table.
type SQLiteSink struct {
	db InteractionSaver
}

// NewSQLiteSink creates a SQLite sink.
func NewSQLiteSink(db InteractionSaver) *SQLiteSink {
	return &SQLiteSink{db: db}
}

// Name implements Sink.
func (s *SQLiteSink) Name() string { return "sqlite" }

// Record implements Sink.
func (s *SQLiteSink) Record(ctx context.Context, ev Event) error {
	return s.db.SaveInteraction(ctx, &storage.Interaction{
		ID:           uuid.NewString(),
		RequestID:    ev.RequestID,
		QueryText:    ev.QueryText,
		ResponseText: ev.ResponseText,
		RoutedTo:     ev.RoutedTo,
		CreatedAt:    ev.Timestamp,
	})
}
