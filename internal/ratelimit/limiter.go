// Package ratelimit throttles outbound DNS probes.
package ratelimit

import (
	"context"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"
)

// Limiter wraps a token-bucket rate limiter and adds ±20% jitter to wait
// intervals. A nil *Limiter never waits, so callers can treat "no limit
// configured" as the zero case.
type Limiter struct {
	inner *rate.Limiter
}

// New creates a Limiter with the given queries-per-second rate and burst
// capacity. rps <= 0 returns nil: unlimited.
func New(rps float64, burst int) *Limiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiter{inner: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Wait reserves a token and blocks until it becomes available, with ±20%
// random jitter added to the wait. Returns ctx.Err() if the context is
// cancelled before the token is granted.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}

	res := l.inner.Reserve()
	if !res.OK() {
		return ctx.Err()
	}

	delay := res.Delay()
	if delay <= 0 {
		return nil
	}

	// Jitter spreads probe bursts so the upstream sees no fixed cadence.
	factor := 0.20
	jitter := time.Duration(float64(delay) * factor * (rand.Float64()*2 - 1)) //nolint:gosec // non-cryptographic random is fine for jitter
	delay = max(0, delay+jitter)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		res.Cancel()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
