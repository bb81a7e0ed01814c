// Package document caches the parsed syllabus.
//
// A Snapshot is immutable. The Store replaces it wholesale when the
// source version changes and never edits one in place.
package document

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	domerrors "github.com/garyellow/syllabus-assistant-go/internal/errors"
	"github.com/garyellow/syllabus-assistant-go/internal/logger"
	"github.com/garyellow/syllabus-assistant-go/internal/metrics"
	"github.com/garyellow/syllabus-assistant-go/internal/syllabus"
)

// Snapshot is one parsed version of the syllabus.
type Snapshot struct {
	Version  string
	Text     string
	Sections []syllabus.Section
	Hash     string // sha256 of Text
	LoadedAt time.Time
}

// Empty reports whether the snapshot holds no document text.
func (s *Snapshot) Empty() bool {
	return s == nil || s.Text == ""
}

func newSnapshot(text, version string, now time.Time) *Snapshot {
	return &Snapshot{
		Version:  version,
		Text:     text,
		Sections: syllabus.Sectionize(text),
		Hash:     syllabus.ContentHash(text),
		LoadedAt: now,
	}
}

var emptySnapshot = &Snapshot{}

// Store serves the current Snapshot, rechecking the source version at
// most once per interval.
type Store struct {
	source  Source
	recheck time.Duration
	logger  *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	group singleflight.Group

	mu        sync.RWMutex
	current   *Snapshot
	checkedAt time.Time
}

// NewStore creates a store. A recheck of zero checks the version on
// every call.
func NewStore(source Source, recheck time.Duration, log *logger.Logger, m *metrics.Metrics) *Store {
	return &Store{
		source:  source,
		recheck: recheck,
		logger:  log.WithModule("document"),
		metrics: m,
		now:     time.Now,
	}
}

// Snapshot returns the current document. It never fails: a missing or
// unreadable document yields the last good snapshot, or an empty one.
func (s *Store) Snapshot(ctx context.Context) *Snapshot {
	s.mu.RLock()
	current, checkedAt := s.current, s.checkedAt
	s.mu.RUnlock()

	if current != nil && s.now().Sub(checkedAt) < s.recheck {
		return current
	}

	v, _, shared := s.group.Do("document", func() (any, error) {
		return s.refresh(context.WithoutCancel(ctx)), nil
	})
	if shared {
		s.metrics.RecordSingleflightDedup("document")
	}
	return v.(*Snapshot)
}

// Current returns the cached snapshot without touching the source.
// Nil before the first load.
func (s *Store) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) refresh(ctx context.Context) *Snapshot {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current != nil && current.Version != "" {
		version, err := s.source.Version(ctx)
		if err == nil && version == current.Version {
			s.publish(current)
			return current
		}
	}

	data, version, err := s.source.Load(ctx)
	if err != nil {
		s.metrics.RecordDocumentLoad(s.source.Name(), "error", 0)
		log := s.logger.WithError(err).WithField("source", s.source.Name())
		if domerrors.IsNotFound(err) {
			log.WarnContext(ctx, "Syllabus document not found, serving empty document")
		} else {
			log.WarnContext(ctx, "Failed to load syllabus document")
		}
		// Keep serving the last good version.
		if current != nil && current != emptySnapshot {
			s.publish(current)
			return current
		}
		s.publish(emptySnapshot)
		return emptySnapshot
	}

	snap := newSnapshot(string(data), version, s.now())
	s.metrics.RecordDocumentLoad(s.source.Name(), "success", len(snap.Sections))
	s.logger.WithFields(map[string]any{
		"source":   s.source.Name(),
		"version":  version,
		"sections": len(snap.Sections),
		"bytes":    len(data),
	}).InfoContext(ctx, "Loaded syllabus document")

	s.publish(snap)
	return snap
}

func (s *Store) publish(snap *Snapshot) {
	s.mu.Lock()
	s.current = snap
	s.checkedAt = s.now()
	s.mu.Unlock()
}
