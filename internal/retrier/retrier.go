// Package retrier implements the retry policies wrapped around outbound
// calls: bounded attempts with a pluggable backoff curve, plus a
// server-directed pause path for upstream rate-limit signals.
package retrier

import (
	"context"
	"errors"
	"time"
)

// BackoffFunc maps a 1-based attempt number to the delay before the next try.
type BackoffFunc func(attempt int) time.Duration

// Linear grows the delay by base per failed attempt.
func Linear(base time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		return time.Duration(attempt) * base
	}
}

// Constant waits the same delay between every attempt.
func Constant(delay time.Duration) BackoffFunc {
	return func(int) time.Duration {
		return delay
	}
}

// PauseError tells the retrier to wait a server-specified duration and try
// again without consuming an attempt. Used for rate-limit responses where
// the upstream names its own cooldown.
type PauseError struct {
	Delay time.Duration
	Err   error
}

func (e *PauseError) Error() string {
	if e.Err == nil {
		return "upstream requested pause"
	}
	return e.Err.Error()
}

func (e *PauseError) Unwrap() error {
	return e.Err
}

// Policy is a retry configuration. The zero value is unusable; construct
// with New.
type Policy struct {
	MaxAttempts int
	Backoff     BackoffFunc
	// Retryable classifies errors; nil means every error is retryable.
	Retryable func(error) bool
	// Sleep is injectable for tests; nil uses a ctx-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

func New(maxAttempts int, backoff BackoffFunc) Policy {
	return Policy{MaxAttempts: maxAttempts, Backoff: backoff}
}

// Do runs op until it succeeds, a non-retryable error occurs, or the
// attempt budget is exhausted, in which case the last error is returned.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	attempt := 1
	for {
		err := op(ctx)
		if err == nil {
			return nil
		}

		var pause *PauseError
		if errors.As(err, &pause) {
			// Server-directed cooldown; does not count against the budget.
			if serr := sleep(ctx, pause.Delay); serr != nil {
				return serr
			}
			continue
		}

		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		if attempt >= p.MaxAttempts {
			return err
		}

		if serr := sleep(ctx, p.Backoff(attempt)); serr != nil {
			return serr
		}
		attempt++
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
