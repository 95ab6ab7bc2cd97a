package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/2beens/notesbox/internal/store"
	"github.com/2beens/notesbox/pkg/apierr"

	log "github.com/sirupsen/logrus"
)

var _ Limiter = (*FixedWindow)(nil)

// FixedWindow counts requests per client in the store, the counter expiring
// with the store's own TTL. The read-modify-write is not atomic: concurrent
// requests of one client may overshoot the limit.
type FixedWindow struct {
	store  store.Store
	limit  int
	window time.Duration
}

func NewFixedWindow(s store.Store, limit int, window time.Duration) (*FixedWindow, error) {
	if err := validateParams(limit, window); err != nil {
		return nil, err
	}
	return &FixedWindow{
		store:  s,
		limit:  limit,
		window: window,
	}, nil
}

func (l *FixedWindow) Allow(ctx context.Context, client string) (*Result, error) {
	key := CounterKey(client)

	count := 0
	raw, err := l.store.Get(ctx, key)
	switch {
	case err == nil:
		count, err = strconv.Atoi(raw)
		if err != nil {
			log.Warnf("rate limiter: invalid counter [%s] for %s, resetting", raw, client)
			count = 0
		}
	case errors.Is(err, store.ErrNotFound):
		// first request in the window
	default:
		return nil, fmt.Errorf("read rate limit counter: %w", err)
	}

	if count >= l.limit {
		return &Result{
			Allowed:    false,
			Limit:      l.limit,
			Remaining:  0,
			RetryAfter: l.window,
		}, apierr.NewTooManyRequestsError()
	}

	count++
	if err := l.store.Put(ctx, key, strconv.Itoa(count), l.window); err != nil {
		return nil, fmt.Errorf("write rate limit counter: %w", err)
	}

	return &Result{
		Allowed:   true,
		Limit:     l.limit,
		Remaining: l.limit - count,
	}, nil
}
