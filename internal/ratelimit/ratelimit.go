// Package ratelimit provides token bucket rate limiting for /api/ask
// callers, keyed by client address.
package ratelimit

import (
	"sync"
	"time"
)

// Bucket is a token bucket. It is safe for concurrent use.
//
// Tokens are added at refillRate per second up to capacity; each allowed
// request takes one token.
type Bucket struct {
	mu         sync.Mutex
	tokens     float64
	capacity   float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	now        func() time.Time
}

// NewBucket creates a full bucket.
func NewBucket(capacity, refillRate float64) *Bucket {
	return newBucket(capacity, refillRate, time.Now)
}

func newBucket(capacity, refillRate float64, now func() time.Time) *Bucket {
	return &Bucket{
		tokens:     capacity,
		capacity:   capacity,
		refillRate: refillRate,
		lastRefill: now(),
		now:        now,
	}
}

// refill must be called with mu held.
func (b *Bucket) refill() {
	now := b.now()
	b.tokens = min(b.capacity, b.tokens+now.Sub(b.lastRefill).Seconds()*b.refillRate)
	b.lastRefill = now
}

// Allow takes a token if one is available.
func (b *Bucket) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill()
	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Full reports whether the bucket has refilled to capacity, meaning its
// key has been idle long enough to forget.
func (b *Bucket) Full() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill()
	return b.tokens >= b.capacity
}
