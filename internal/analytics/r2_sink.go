package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Uploader stores an object. Implemented by *r2client.Client.
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// R2Sink writes each event as its own JSON object under
// <prefix>/<YYYY-MM-DD>/<unixnano>-<uuid>.json so writers never contend.
type R2Sink struct {
	uploader Uploader
	prefix   string
	now      func() time.Time
}

// NewR2Sink creates an R2 sink writing under prefix.
func NewR2Sink(uploader Uploader, prefix string) *R2Sink {
	return &R2Sink{uploader: uploader, prefix: prefix, now: time.Now}
}

// Name implements Sink.
func (s *R2Sink) Name() string { return "r2" }

// Record implements Sink.
func (s *R2Sink) Record(ctx context.Context, ev Event) error {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = s.now()
	}
	ev.Timestamp = ev.Timestamp.UTC()

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	key := s.objectKey(ev.Timestamp)
	if _, err := s.uploader.Upload(ctx, key, body, "application/json"); err != nil {
		return fmt.Errorf("upload event: %w", err)
	}
	return nil
}

func (s *R2Sink) objectKey(ts time.Time) string {
	name := strconv.FormatInt(ts.UnixNano(), 10) + "-" + uuid.NewString() + ".json"
	return path.Join(s.prefix, ts.Format(time.DateOnly), name)
}
