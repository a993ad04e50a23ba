package llm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitProvider spaces requests out so a shared limiter is never
// exceeded. Text and vision providers built from one config share it.
type RateLimitProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// NewLimiter returns a limiter allowing perMinute requests per minute with
// no burst, or nil when perMinute is not positive.
func NewLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

// WithRateLimit wraps p so every Generate waits on l first. A nil l returns
// p unchanged.
func WithRateLimit(p Provider, l *rate.Limiter) Provider {
	if l == nil {
		return p
	}
	return &RateLimitProvider{inner: p, limiter: l}
}

func (r *RateLimitProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// The limiter refuses up front when the deadline is too close.
		return nil, fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
	}
	return r.inner.Generate(ctx, req)
}

func (r *RateLimitProvider) ModelID() string {
	return r.inner.ModelID()
}
