package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// KeyPrefix namespaces the per-client counters inside the shared store.
const KeyPrefix = "rate_limit:"

const (
	StrategyFixedWindow = "fixed-window"
	StrategyGCRA        = "gcra"
)

type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter gates requests per client identifier. When the client is over
// budget, Allow returns a populated Result together with an apierr error of
// kind TooManyRequests. Any other error means the limiter could not decide.
type Limiter interface {
	Allow(ctx context.Context, client string) (*Result, error)
}

func CounterKey(client string) string {
	return KeyPrefix + client
}

func validateParams(limit int, window time.Duration) error {
	if limit <= 0 {
		return fmt.Errorf("rate limit must be positive, got %d", limit)
	}
	if window <= 0 {
		return fmt.Errorf("rate limit window must be positive, got %s", window)
	}
	return nil
}
