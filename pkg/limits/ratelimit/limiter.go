package ratelimit

import (
	"sync"
	"time"
)

// Clock yields the current time. Production limiters use time.Now;
// tests substitute a deterministic clock.
type Clock func() time.Time

// KeyedLimiter counts requests per key over a rolling window.
//
// A key is allowed while the number of recorded requests inside the
// trailing window is below the limit. An allowed check records the
// request's timestamp as a side effect; a denied check records nothing.
type KeyedLimiter struct {
	limit  int
	window time.Duration
	now    Clock

	mu      sync.RWMutex
	windows map[string]*keyWindow
}

// keyWindow holds one key's timestamps under its own lock.
type keyWindow struct {
	mu         sync.Mutex
	timestamps []time.Time
}

// NewKeyedLimiter creates a limiter allowing limit requests per key per
// window. A limit of 0 disables limiting (every check allows).
func NewKeyedLimiter(limit int, window time.Duration) *KeyedLimiter {
	return NewKeyedLimiterWithClock(limit, window, time.Now)
}

// NewKeyedLimiterWithClock creates a limiter with an explicit clock.
func NewKeyedLimiterWithClock(limit int, window time.Duration, clock Clock) *KeyedLimiter {
	return &KeyedLimiter{
		limit:   limit,
		window:  window,
		now:     clock,
		windows: make(map[string]*keyWindow),
	}
}

// Allow checks the key against the limit and, when allowed, records the
// request into the key's window.
func (l *KeyedLimiter) Allow(key string) bool {
	if l.limit <= 0 {
		return true
	}

	kw := l.keyWindow(key)
	now := l.now()

	kw.mu.Lock()
	defer kw.mu.Unlock()

	kw.prune(now.Add(-l.window))
	if len(kw.timestamps) >= l.limit {
		return false
	}
	kw.timestamps = append(kw.timestamps, now)
	return true
}

// Count returns the number of requests currently inside the key's
// window, after pruning expired entries.
func (l *KeyedLimiter) Count(key string) int {
	kw := l.keyWindow(key)
	now := l.now()

	kw.mu.Lock()
	defer kw.mu.Unlock()

	kw.prune(now.Add(-l.window))
	return len(kw.timestamps)
}

// keyWindow returns the window for a key, creating it on first use.
func (l *KeyedLimiter) keyWindow(key string) *keyWindow {
	l.mu.RLock()
	kw, ok := l.windows[key]
	l.mu.RUnlock()
	if ok {
		return kw
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if kw, ok = l.windows[key]; ok {
		return kw
	}
	kw = &keyWindow{}
	l.windows[key] = kw
	return kw
}

// prune drops timestamps at or before the cutoff. Caller holds kw.mu.
func (kw *keyWindow) prune(cutoff time.Time) {
	idx := 0
	for idx < len(kw.timestamps) && !kw.timestamps[idx].After(cutoff) {
		idx++
	}
	if idx > 0 {
		kw.timestamps = append(kw.timestamps[:0], kw.timestamps[idx:]...)
	}
}
