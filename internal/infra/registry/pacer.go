package registry

import (
	"context"

	"golang.org/x/time/rate"
)

// Pacer spaces out outbound provider requests with a token bucket.
// A nil *Pacer never blocks.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer returns a Pacer allowing requestsPerSecond with the given burst.
// A non-positive rate disables pacing and returns nil.
func NewPacer(requestsPerSecond float64, burst int) *Pacer {
	if requestsPerSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Wait blocks until a request may proceed or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}
