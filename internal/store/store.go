package store

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("key not found")

// Store is a flat key-value store with string values. Keys passed to and
// returned from a Store are never namespaced; backends apply their own
// namespace internally.
type Store interface {
	// Get returns ErrNotFound when the key is absent or expired.
	Get(ctx context.Context, key string) (string, error)
	// Put writes value under key. A zero ttl means the entry never expires.
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// ListKeys enumerates all live keys in no particular order.
	ListKeys(ctx context.Context) ([]string, error)
}

const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

func namespacedPrefix(namespace string) string {
	if namespace == "" {
		return ""
	}
	return namespace + ":"
}
