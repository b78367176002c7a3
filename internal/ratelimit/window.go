// Package ratelimit implements a per-key sliding-window log limiter.
package ratelimit

import (
	"sync"
	"time"
)

// Window allows at most max events per key within a rolling window.
type Window struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	events map[int64][]time.Time
	// keys rejected since their last accepted event
	blocked map[int64]bool
}

// New creates a limiter. max < 1 is treated as 1.
func New(max int, window time.Duration) *Window {
	if max < 1 {
		max = 1
	}
	return &Window{
		max:     max,
		window:  window,
		events:  make(map[int64][]time.Time),
		blocked: make(map[int64]bool),
	}
}

// Allow records an event for key at now and reports whether it is within the limit.
// Rejected events are not recorded.
func (w *Window) Allow(key int64, now time.Time) bool {
	ok, _ := w.allow(key, now)
	return ok
}

// AllowFirstReject is Allow that also reports whether this is the first
// rejection since the key was last accepted.
func (w *Window) AllowFirstReject(key int64, now time.Time) (allowed, firstReject bool) {
	return w.allow(key, now)
}

func (w *Window) allow(key int64, now time.Time) (bool, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	kept := prune(w.events[key], now.Add(-w.window))
	if len(kept) >= w.max {
		w.events[key] = kept
		first := !w.blocked[key]
		w.blocked[key] = true
		return false, first
	}
	w.events[key] = append(kept, now)
	delete(w.blocked, key)
	return true, false
}

// Prune drops keys with no event left in the window and returns how many were removed.
func (w *Window) Prune(now time.Time) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	cutoff := now.Add(-w.window)
	removed := 0
	for key, ts := range w.events {
		kept := prune(ts, cutoff)
		if len(kept) == 0 {
			delete(w.events, key)
			delete(w.blocked, key)
			removed++
			continue
		}
		w.events[key] = kept
	}
	return removed
}

// prune keeps timestamps strictly after cutoff. ts is sorted ascending.
func prune(ts []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(ts) && !ts[i].After(cutoff) {
		i++
	}
	if i == 0 {
		return ts
	}
	return append([]time.Time(nil), ts[i:]...)
}
