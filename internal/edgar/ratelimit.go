package edgar

import (
	"context"
	"sync"
	"time"
)

// Limiter spaces requests evenly to stay under a per-second ceiling.
//
// The SEC throttles aggressively above 10 req/s, so the limiter enforces
// even spacing (one request per 1/rate seconds) rather than bursting a
// full bucket at window start.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
}

// NewLimiter creates a limiter allowing ratePerSec requests per second.
func NewLimiter(ratePerSec int) *Limiter {
	if ratePerSec < 1 {
		ratePerSec = 1
	}
	return &Limiter{
		interval: time.Second / time.Duration(ratePerSec),
	}
}

// Wait blocks until the caller may issue a request, or the context is done.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	now := time.Now()
	if l.next.Before(now) {
		l.next = now
	}
	wait := l.next.Sub(now)
	l.next = l.next.Add(l.interval)
	l.mu.Unlock()

	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
