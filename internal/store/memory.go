package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/coocood/freecache"
)

const megabyte = 1024 * 1024

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps entries in a freecache ring buffer. It is meant for
// local development and tests: entries may be evicted once the cache is
// full, and TTLs have a one second resolution.
type MemoryStore struct {
	cache  *freecache.Cache
	prefix string
}

func NewMemoryStore(namespace string, sizeMegabytes int) *MemoryStore {
	return &MemoryStore{
		cache:  freecache.NewCache(sizeMegabytes * megabyte),
		prefix: namespacedPrefix(namespace),
	}
}

// NewMemoryStoreWithTimer lets tests drive expiration with their own clock.
func NewMemoryStoreWithTimer(namespace string, sizeMegabytes int, timer freecache.Timer) *MemoryStore {
	return &MemoryStore{
		cache:  freecache.NewCacheCustomTimer(sizeMegabytes*megabyte, timer),
		prefix: namespacedPrefix(namespace),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	val, err := s.cache.Get([]byte(s.prefix + key))
	if err != nil {
		if errors.Is(err, freecache.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("memory get %s: %w", key, err)
	}
	return string(val), nil
}

func (s *MemoryStore) Put(_ context.Context, key, value string, ttl time.Duration) error {
	if err := s.cache.Set([]byte(s.prefix+key), []byte(value), ttlSeconds(ttl)); err != nil {
		return fmt.Errorf("memory set %s: %w", key, err)
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.cache.Del([]byte(s.prefix + key))
	return nil
}

func (s *MemoryStore) ListKeys(_ context.Context) ([]string, error) {
	var candidates []string
	it := s.cache.NewIterator()
	for entry := it.Next(); entry != nil; entry = it.Next() {
		k := string(entry.Key)
		if !strings.HasPrefix(k, s.prefix) {
			continue
		}
		candidates = append(candidates, k)
	}

	keys := make([]string, 0, len(candidates))
	for _, k := range candidates {
		// the iterator does not check expiration
		if _, err := s.cache.Get([]byte(k)); err != nil {
			continue
		}
		keys = append(keys, strings.TrimPrefix(k, s.prefix))
	}
	return keys, nil
}

func (s *MemoryStore) EntryCount() int64 {
	return s.cache.EntryCount()
}

// ttlSeconds rounds up, so a sub-second ttl still expires the entry.
func ttlSeconds(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	return int(math.Ceil(ttl.Seconds()))
}
