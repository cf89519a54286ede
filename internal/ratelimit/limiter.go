// Package ratelimit provides the two admission policies used around the
// job-board upstream: a counting sliding window for the inbound proxy
// endpoint and a minimum-delay pacer for outbound fetches.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter admits at most max requests per trailing window. Instances are
// shared across concurrent requests, so all state is mutex-guarded.
type Limiter struct {
	mu         sync.Mutex
	window     time.Duration
	max        int
	timestamps []time.Time
	now        func() time.Time
}

func NewLimiter(window time.Duration, max int) *Limiter {
	return &Limiter{
		window: window,
		max:    max,
		now:    time.Now,
	}
}

// Allow reports whether another request may proceed right now, recording
// it when admitted. Entries older than the window are purged before every
// decision, so the timestamp slice never exceeds max after a successful
// admission.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.purge()
	if len(l.timestamps) >= l.max {
		return false
	}
	l.timestamps = append(l.timestamps, l.now())
	return true
}

// NextAllowedTime returns when the oldest recorded request exits the
// window. Zero time when nothing is recorded. Advisory only; used to build
// Retry-After hints.
func (l *Limiter) NextAllowedTime() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.purge()
	if len(l.timestamps) == 0 {
		return time.Time{}
	}
	return l.timestamps[0].Add(l.window)
}

// Remaining returns how many admissions are left in the current window.
func (l *Limiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.purge()
	remaining := l.max - len(l.timestamps)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (l *Limiter) purge() {
	cutoff := l.now().Add(-l.window)
	kept := l.timestamps[:0]
	for _, ts := range l.timestamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	l.timestamps = kept
}
