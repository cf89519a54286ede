package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Pacer enforces a minimum delay between successive outbound calls. Unlike
// Limiter it never rejects; callers block until their reserved slot
// arrives. The slot is reserved under the lock so concurrent searches
// queue up behind one another instead of bursting at the upstream.
type Pacer struct {
	mu       sync.Mutex
	minDelay time.Duration
	next     time.Time
	now      func() time.Time
}

func NewPacer(minDelay time.Duration) *Pacer {
	return &Pacer{
		minDelay: minDelay,
		now:      time.Now,
	}
}

// Wait blocks until the caller's slot arrives or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	now := p.now()
	slot := p.next
	if slot.Before(now) {
		slot = now
	}
	p.next = slot.Add(p.minDelay)
	p.mu.Unlock()

	delay := slot.Sub(now)
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
