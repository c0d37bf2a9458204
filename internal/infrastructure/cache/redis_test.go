package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store := NewRedisStore(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStore_SetExistsDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Connect(ctx))
	require.NoError(t, store.Set(ctx, "k", "v", time.Minute))

	ok, err := store.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Delete(ctx, "k", "missing"))
	ok, err = store.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, store.Delete(ctx))
}

func TestRedisStore_IncrementAndExpire(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	n, err := store.Increment(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = store.Increment(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, store.Expire(ctx, "counter", 10*time.Second))
	ttl, err := store.TTL(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, ttl)

	mr.FastForward(11 * time.Second)
	ok, err := store.Exists(ctx, "counter")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_HealthCheck(t *testing.T) {
	store, _ := newTestStore(t)
	assert.NoError(t, store.HealthCheck(context.Background()))

	down := NewRedisStore("127.0.0.1:1", "", 0)
	defer down.Close()
	assert.Error(t, down.HealthCheck(context.Background()))
}
