package ratelimit

import (
	"sync"
	"time"
)

const (
	DefaultLimit  = 10
	DefaultWindow = time.Hour
)

// Limiter counts hits per key over a rolling window. A hit is rejected once
// the key already has Limit hits younger than Window.
type Limiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	now    func() time.Time
	hits   map[string][]time.Time
}

type Option func(*Limiter)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

func New(limit int, window time.Duration, opts ...Option) *Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	l := &Limiter{
		limit:  limit,
		window: window,
		now:    time.Now,
		hits:   make(map[string][]time.Time),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow records a hit for key and reports whether it fits in the window.
// Rejected hits are not recorded.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	recent := l.prune(key, now)
	if len(recent) >= l.limit {
		return false
	}
	l.hits[key] = append(recent, now)
	return true
}

// Remaining returns how many hits key may still make in the current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.limit - len(l.prune(key, l.now()))
}

// RetryAfter is how long until key frees a slot; zero when a slot is free.
func (l *Limiter) RetryAfter(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	recent := l.prune(key, now)
	if len(recent) < l.limit {
		return 0
	}
	return recent[0].Add(l.window).Sub(now)
}

func (l *Limiter) Limit() int            { return l.limit }
func (l *Limiter) Window() time.Duration { return l.window }

// prune drops expired hits for key and returns what is left.
// Callers hold l.mu.
func (l *Limiter) prune(key string, now time.Time) []time.Time {
	hits := l.hits[key]
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	if i == len(hits) {
		delete(l.hits, key)
		return nil
	}
	hits = hits[i:]
	l.hits[key] = hits
	return hits
}
