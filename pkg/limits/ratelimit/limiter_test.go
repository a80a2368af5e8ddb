package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock advances only when told to, making window expiry deterministic.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestKeyedLimiterAllowsUpToLimit(t *testing.T) {
	clock := newFakeClock()
	l := NewKeyedLimiterWithClock(3, time.Minute, clock.Now)

	for i := 0; i < 3; i++ {
		if !l.Allow("key-a") {
			t.Fatalf("Allow() = false on request %d, want true", i+1)
		}
	}
	if l.Allow("key-a") {
		t.Error("Allow() = true beyond the limit, want false")
	}
	if got := l.Count("key-a"); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
}

func TestKeyedLimiterDenyDoesNotRecord(t *testing.T) {
	clock := newFakeClock()
	l := NewKeyedLimiterWithClock(2, time.Minute, clock.Now)

	l.Allow("key-a")
	l.Allow("key-a")

	// Repeated denials must not extend the window.
	for i := 0; i < 5; i++ {
		if l.Allow("key-a") {
			t.Fatal("Allow() = true while window is full")
		}
	}
	if got := l.Count("key-a"); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
}

func TestKeyedLimiterWindowExpiry(t *testing.T) {
	clock := newFakeClock()
	l := NewKeyedLimiterWithClock(2, time.Minute, clock.Now)

	l.Allow("key-a")
	l.Allow("key-a")
	if l.Allow("key-a") {
		t.Fatal("Allow() = true while window is full")
	}

	clock.Advance(61 * time.Second)
	if !l.Allow("key-a") {
		t.Error("Allow() = false after window expiry, want true")
	}
}

func TestKeyedLimiterKeysAreIndependent(t *testing.T) {
	clock := newFakeClock()
	l := NewKeyedLimiterWithClock(1, time.Minute, clock.Now)

	if !l.Allow("key-a") {
		t.Fatal("Allow(key-a) = false, want true")
	}
	if !l.Allow("key-b") {
		t.Error("Allow(key-b) = false after key-a filled its own window")
	}
	if l.Allow("key-a") {
		t.Error("Allow(key-a) = true beyond the limit")
	}
}

func TestKeyedLimiterZeroLimitDisables(t *testing.T) {
	l := NewKeyedLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		if !l.Allow("key-a") {
			t.Fatal("Allow() = false with limiting disabled")
		}
	}
}

func TestKeyedLimiterConcurrentSameKey(t *testing.T) {
	clock := newFakeClock()
	l := NewKeyedLimiterWithClock(50, time.Minute, clock.Now)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 50 {
		t.Errorf("allowed = %d, want exactly 50", allowed)
	}
}

func TestKeyedLimiterConcurrentDistinctKeys(t *testing.T) {
	clock := newFakeClock()
	l := NewKeyedLimiterWithClock(1, time.Minute, clock.Now)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n)
			if !l.Allow(key) {
				t.Errorf("Allow(%s) = false, want true", key)
			}
		}(i)
	}
	wg.Wait()
}

func TestUsageLimiterBudget(t *testing.T) {
	clock := newFakeClock()
	l := NewUsageLimiterWithClock(1000, time.Minute, clock.Now)

	if !l.Allow("key-a", 600) {
		t.Fatal("Allow(600) = false within budget")
	}
	if !l.Allow("key-a", 400) {
		t.Fatal("Allow(400) = false at exact budget")
	}
	if l.Allow("key-a", 1) {
		t.Error("Allow(1) = true over budget")
	}
	if got := l.Used("key-a"); got != 1000 {
		t.Errorf("Used() = %d, want 1000", got)
	}
}

func TestUsageLimiterOversizedSpendDenied(t *testing.T) {
	l := NewUsageLimiter(100, time.Minute)
	if l.Allow("key-a", 101) {
		t.Error("Allow() = true for spend larger than the whole budget")
	}
	if got := l.Used("key-a"); got != 0 {
		t.Errorf("Used() = %d after denial, want 0", got)
	}
}

func TestUsageLimiterWindowExpiry(t *testing.T) {
	clock := newFakeClock()
	l := NewUsageLimiterWithClock(1000, time.Minute, clock.Now)

	l.Allow("key-a", 1000)
	if l.Allow("key-a", 10) {
		t.Fatal("Allow() = true at exhausted budget")
	}

	clock.Advance(61 * time.Second)
	if !l.Allow("key-a", 1000) {
		t.Error("Allow() = false after window expiry, want true")
	}
}
