package store

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testTimer struct {
	now uint32
}

func (t *testTimer) Now() uint32 {
	return t.now
}

func TestMemoryStore_BasicCRUD(t *testing.T) {
	s := NewMemoryStore("notes", 1)
	ctx := context.Background()

	keys, err := s.ListKeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, "a", "value-a", 0))
	require.NoError(t, s.Put(ctx, "b", "value-b", 0))

	val, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "value-a", val)

	// last write wins
	require.NoError(t, s.Put(ctx, "a", "value-a2", 0))
	val, err = s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "value-a2", val)

	keys, err = s.ListKeys(ctx)
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "a"))
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	keys, err = s.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, keys)
}

func TestMemoryStore_Namespaces(t *testing.T) {
	timer := &testTimer{now: 1000}
	notes := NewMemoryStoreWithTimer("notes", 1, timer)
	// same underlying cache, different namespace
	other := &MemoryStore{cache: notes.cache, prefix: namespacedPrefix("other")}
	ctx := context.Background()

	require.NoError(t, notes.Put(ctx, "k", "notes-value", 0))
	require.NoError(t, other.Put(ctx, "k", "other-value", 0))

	val, err := notes.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "notes-value", val)
	val, err = other.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "other-value", val)

	keys, err := notes.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, keys)
}

func TestMemoryStore_TTL(t *testing.T) {
	timer := &testTimer{now: 1000}
	s := NewMemoryStoreWithTimer("notes", 1, timer)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "counter", "3", time.Minute))
	require.NoError(t, s.Put(ctx, "forever", "x", 0))

	timer.now += 59
	val, err := s.Get(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, "3", val)

	timer.now += 1
	_, err = s.Get(ctx, "counter")
	assert.ErrorIs(t, err, ErrNotFound)

	keys, err := s.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"forever"}, keys)

	// sub-second ttl still expires
	require.NoError(t, s.Put(ctx, "short", "x", 200*time.Millisecond))
	_, err = s.Get(ctx, "short")
	require.NoError(t, err)
	timer.now++
	_, err = s.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTTLSeconds(t *testing.T) {
	assert.Equal(t, 0, ttlSeconds(0))
	assert.Equal(t, 0, ttlSeconds(-time.Second))
	assert.Equal(t, 1, ttlSeconds(time.Millisecond))
	assert.Equal(t, 60, ttlSeconds(time.Minute))
	assert.Equal(t, 61, ttlSeconds(time.Minute+time.Millisecond))
}
