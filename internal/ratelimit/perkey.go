package ratelimit

import (
	"sync"
	"time"
)

// Config configures a PerKey limiter.
type Config struct {
	PerMinute     float64       // sustained requests per minute per key
	Burst         float64       // bucket capacity; 0 = PerMinute/6, at least 1
	CleanupPeriod time.Duration // idle bucket sweep interval; 0 = 5 minutes
}

// PerKey keeps one Bucket per key and sweeps idle buckets in the background.
type PerKey struct {
	mu      sync.Mutex
	buckets map[string]*Bucket
	cfg     Config
	now     func() time.Time
	stopCh  chan struct{}
	stop    sync.Once
}

// NewPerKey starts a per-key limiter. Call Stop to end the sweeper.
func NewPerKey(cfg Config) *PerKey {
	l := newPerKey(cfg, time.Now)
	go l.sweepLoop()
	return l
}

func newPerKey(cfg Config, now func() time.Time) *PerKey {
	if cfg.Burst <= 0 {
		cfg.Burst = max(1, cfg.PerMinute/6)
	}
	if cfg.CleanupPeriod <= 0 {
		cfg.CleanupPeriod = 5 * time.Minute
	}
	return &PerKey{
		buckets: make(map[string]*Bucket),
		cfg:     cfg,
		now:     now,
		stopCh:  make(chan struct{}),
	}
}

// Allow reports whether key may make another request now.
// An empty key is always allowed.
func (l *PerKey) Allow(key string) bool {
	if key == "" {
		return true
	}

	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = newBucket(l.cfg.Burst, l.cfg.PerMinute/60, l.now)
		l.buckets[key] = b
	}
	l.mu.Unlock()

	return b.Allow()
}

// Active returns the number of tracked keys.
func (l *PerKey) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *PerKey) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.Full() {
			delete(l.buckets, key)
		}
	}
}

func (l *PerKey) sweepLoop() {
	ticker := time.NewTicker(l.cfg.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

// Stop ends the sweeper. Safe to call more than once.
func (l *PerKey) Stop() {
	l.stop.Do(func() { close(l.stopCh) })
}
