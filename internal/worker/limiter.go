package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter paces outbound classifications issued by a batch run. It only
// spaces out our own calls; upstream throttling is still reported as a
// rate-limit error and never retried.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a limiter allowing requestsPerSecond with the given
// burst. A non-positive rate disables pacing.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if requestsPerSecond <= 0 {
		return &Limiter{}
	}
	if burst <= 0 {
		burst = 1
	}

	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Enabled reports whether pacing is active
func (l *Limiter) Enabled() bool {
	return l != nil && l.limiter != nil
}

// Wait blocks until the next call is allowed or ctx is done
func (l *Limiter) Wait(ctx context.Context) error {
	if !l.Enabled() {
		return ctx.Err()
	}
	return l.limiter.Wait(ctx)
}
