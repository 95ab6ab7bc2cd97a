package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/notesbox/pkg/apierr"

	"github.com/go-redis/redis_rate/v9"
)

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

var _ Limiter = (*GCRA)(nil)

// GCRA delegates to redis_rate, which evaluates the limit atomically in a
// Redis script. Only usable with the Redis store backend.
type GCRA struct {
	limiter RequestRateLimiter
	limit   redis_rate.Limit
}

func NewGCRA(limiter RequestRateLimiter, limit int, window time.Duration) (*GCRA, error) {
	if err := validateParams(limit, window); err != nil {
		return nil, err
	}
	return &GCRA{
		limiter: limiter,
		limit: redis_rate.Limit{
			Rate:   limit,
			Burst:  limit,
			Period: window,
		},
	}, nil
}

func (l *GCRA) Allow(ctx context.Context, client string) (*Result, error) {
	res, err := l.limiter.Allow(ctx, CounterKey(client), l.limit)
	if err != nil {
		return nil, fmt.Errorf("redis rate allow: %w", err)
	}

	result := &Result{
		Allowed:    res.Allowed > 0,
		Limit:      l.limit.Rate,
		Remaining:  res.Remaining,
		RetryAfter: res.RetryAfter,
	}
	if !result.Allowed {
		if result.RetryAfter < 0 {
			result.RetryAfter = 0
		}
		return result, apierr.NewTooManyRequestsError()
	}

	return result, nil
}
