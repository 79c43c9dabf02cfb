package ratelimit

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Default bucket parameters for expensive endpoints.
const (
	DefaultCapacity       = 10
	DefaultRefillPerMin   = 10
	DefaultMaxIdentifiers = 10000
)

// bucket is a lazily-refilled token bucket. Refill is computed from elapsed
// wall-clock time at consume; there is no background timer.
type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// Limiter holds one token bucket per identifier inside a size-capped LRU,
// so the identifier set cannot grow without bound. Stale identifiers are
// evicted least-recently-used; an evicted identifier simply starts over
// with a full bucket.
type Limiter struct {
	mu       sync.Mutex
	buckets  *lru.Cache[string, *bucket]
	capacity float64
	perMs    float64 // refill rate in tokens per millisecond
	now      func() time.Time
}

// New creates a limiter with the given bucket capacity, refill rate in
// tokens per minute, and maximum number of tracked identifiers.
func New(capacity int, refillPerMinute int, maxIdentifiers int) *Limiter {
	cache, err := lru.New[string, *bucket](maxIdentifiers)
	if err != nil {
		// Only reachable with a non-positive size
		panic(err)
	}
	return &Limiter{
		buckets:  cache,
		capacity: float64(capacity),
		perMs:    float64(refillPerMinute) / 60000.0,
		now:      time.Now,
	}
}

// NewDefault creates a limiter with the standard parameters:
// capacity 10, refill 10/minute, at most 10000 identifiers.
func NewDefault() *Limiter {
	return New(DefaultCapacity, DefaultRefillPerMin, DefaultMaxIdentifiers)
}

// Allow refills the identifier's bucket proportionally to elapsed time,
// capped at capacity, then consumes one token if at least one is available.
// It returns false when the request must be rejected.
func (l *Limiter) Allow(identifier string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	b, ok := l.buckets.Get(identifier)
	if !ok {
		b = &bucket{tokens: l.capacity, lastRefill: now}
		l.buckets.Add(identifier, b)
	}

	elapsed := now.Sub(b.lastRefill)
	if elapsed > 0 {
		b.tokens += float64(elapsed.Milliseconds()) * l.perMs
		if b.tokens > l.capacity {
			b.tokens = l.capacity
		}
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Len reports the number of tracked identifiers.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buckets.Len()
}

// SetClock overrides the wall clock, for tests.
func (l *Limiter) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}
