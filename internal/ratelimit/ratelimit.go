// Package ratelimit provides a keyed sliding-window request limiter. State is
// in-process and resets on restart, which is acceptable for its one job:
// keeping barcode lookups against third-party APIs polite. It is not a
// correctness mechanism.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter allows up to limit events per key within a trailing window.
type Limiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	events map[int64][]time.Time
	now    func() time.Time
}

func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:  limit,
		window: window,
		events: make(map[int64][]time.Time),
		now:    time.Now,
	}
}

// Allow records an event for key and reports whether it fits in the window.
func (l *Limiter) Allow(key int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.events[key][:0]
	for _, t := range l.events[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= l.limit {
		l.events[key] = kept
		return false
	}

	l.events[key] = append(kept, now)
	return true
}

// Prune drops keys with no events inside the window. Callers may run it
// periodically; Allow already trims per key on access.
func (l *Limiter) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	for key, times := range l.events {
		live := false
		for _, t := range times {
			if t.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(l.events, key)
		}
	}
}
