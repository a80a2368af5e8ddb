package ratelimit

import (
	"sync"
	"time"
)

// UsageLimiter tracks token consumption per key over a rolling window.
//
// Unlike KeyedLimiter it sums weighted samples rather than counting
// requests: each allowed check records the request's estimated token
// cost, and a key is denied once the recorded usage plus the new cost
// would exceed the budget.
type UsageLimiter struct {
	budget int64
	window time.Duration
	now    Clock

	mu      sync.RWMutex
	windows map[string]*usageWindow
}

type usageWindow struct {
	mu      sync.Mutex
	samples []usageSample
}

type usageSample struct {
	at     time.Time
	tokens int64
}

// NewUsageLimiter creates a limiter allowing budget tokens per key per
// window. A budget of 0 disables limiting.
func NewUsageLimiter(budget int64, window time.Duration) *UsageLimiter {
	return NewUsageLimiterWithClock(budget, window, time.Now)
}

// NewUsageLimiterWithClock creates a usage limiter with an explicit clock.
func NewUsageLimiterWithClock(budget int64, window time.Duration, clock Clock) *UsageLimiter {
	return &UsageLimiter{
		budget:  budget,
		window:  window,
		now:     clock,
		windows: make(map[string]*usageWindow),
	}
}

// Allow checks whether the key can spend tokens within its budget and,
// when allowed, records the spend into the key's window. A single spend
// larger than the whole budget is always denied.
func (l *UsageLimiter) Allow(key string, tokens int64) bool {
	if l.budget <= 0 {
		return true
	}

	uw := l.usageWindow(key)
	now := l.now()

	uw.mu.Lock()
	defer uw.mu.Unlock()

	uw.prune(now.Add(-l.window))

	var used int64
	for _, s := range uw.samples {
		used += s.tokens
	}
	if used+tokens > l.budget {
		return false
	}
	uw.samples = append(uw.samples, usageSample{at: now, tokens: tokens})
	return true
}

// Used returns the token usage currently inside the key's window.
func (l *UsageLimiter) Used(key string) int64 {
	uw := l.usageWindow(key)
	now := l.now()

	uw.mu.Lock()
	defer uw.mu.Unlock()

	uw.prune(now.Add(-l.window))

	var used int64
	for _, s := range uw.samples {
		used += s.tokens
	}
	return used
}

func (l *UsageLimiter) usageWindow(key string) *usageWindow {
	l.mu.RLock()
	uw, ok := l.windows[key]
	l.mu.RUnlock()
	if ok {
		return uw
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if uw, ok = l.windows[key]; ok {
		return uw
	}
	uw = &usageWindow{}
	l.windows[key] = uw
	return uw
}

// prune drops samples at or before the cutoff. Caller holds uw.mu.
func (uw *usageWindow) prune(cutoff time.Time) {
	idx := 0
	for idx < len(uw.samples) && !uw.samples[idx].at.After(cutoff) {
		idx++
	}
	if idx > 0 {
		uw.samples = append(uw.samples[:0], uw.samples[idx:]...)
	}
}
