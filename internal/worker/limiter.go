package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter caps how many documents per second enter processing
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter allows rowsPerSecond with the given burst. A rate of zero or
// less disables limiting; a burst below one becomes one.
func NewLimiter(rowsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Limit(rowsPerSecond)
	if rowsPerSecond <= 0 {
		limit = rate.Inf
	}
	return &Limiter{limiter: rate.NewLimiter(limit, burst)}
}

// Wait blocks until a document may start or ctx is done
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return ctx.Err()
	}
	return l.limiter.Wait(ctx)
}

// Allow reports whether a document may start now, consuming a token if so
func (l *Limiter) Allow() bool {
	if l == nil {
		return true
	}
	return l.limiter.Allow()
}

// Unlimited reports whether the limiter never delays
func (l *Limiter) Unlimited() bool {
	return l == nil || l.limiter.Limit() == rate.Inf
}
