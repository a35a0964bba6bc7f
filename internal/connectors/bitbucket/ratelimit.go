package bitbucket

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// ProactiveRate is the proactive throttle rate (~2 req/sec). Bitbucket's
	// hourly API quota is generous but unadvertised; the transport contract
	// exposes no response headers, so throttling is purely proactive.
	ProactiveRate = 2.0

	// Burst allows short request bursts during pagination.
	Burst = 4
)

// RateLimiter throttles API requests ahead of Bitbucket's quota.
type RateLimiter struct {
	mu      sync.Mutex
	bucket  *rate.Limiter
	holdOff time.Time
}

// NewRateLimiter creates a rate limiter with proactive throttling.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(ProactiveRate), Burst),
	}
}

// Wait blocks until it's safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	holdOff := r.holdOff
	r.mu.Unlock()

	if until := time.Until(holdOff); until > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(until):
		}
	}

	return r.bucket.Wait(ctx)
}

// Backoff pauses all requests for the given duration. Called when the API
// answers 429.
func (r *RateLimiter) Backoff(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.holdOff = time.Now().Add(d)
}
