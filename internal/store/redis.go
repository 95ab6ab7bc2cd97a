package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisScanCount = 100

var _ Store = (*RedisStore)(nil)

type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: namespacedPrefix(namespace),
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, nil
}

func (s *RedisStore) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) ListKeys(ctx context.Context) ([]string, error) {
	var (
		cursor uint64
		keys   []string
	)
	// SCAN may return the same key more than once
	seen := make(map[string]bool)
	for {
		page, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", redisScanCount).Result()
		if err != nil {
			return nil, fmt.Errorf("redis scan: %w", err)
		}
		for _, k := range page {
			k = strings.TrimPrefix(k, s.prefix)
			if seen[k] {
				continue
			}
			seen[k] = true
			keys = append(keys, k)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return keys, nil
}
