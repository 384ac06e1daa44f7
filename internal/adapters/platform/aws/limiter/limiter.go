package limiter

import (
	"context"

	"golang.org/x/time/rate"
)

const (
	defaultRateLimitRPS = 20
	minRateLimitRPS     = 1
	maxRateLimitRPS     = 100
)

// Limiter throttles every AWS API call the scheduler makes, across all
// regions, so a wide fleet does not trip provider-side rate limits. It is
// constructed once per invocation and shared by all regional clients.
type Limiter struct {
	rl *rate.Limiter
}

func New(rps int) *Limiter {
	if rps < minRateLimitRPS || rps > maxRateLimitRPS {
		rps = defaultRateLimitRPS
	}
	return &Limiter{rl: rate.NewLimiter(rate.Limit(rps), rps)}
}

func (l *Limiter) Wait(ctx context.Context) error {
	return l.rl.Wait(ctx)
}
