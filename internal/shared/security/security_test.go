package security_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"research-blog-backend/internal/infrastructure/cache"
	"research-blog-backend/internal/shared/security"
)

func newStore(t *testing.T) (*cache.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store := cache.NewRedisStore(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestTokenDenylist(t *testing.T) {
	store, mr := newStore(t)
	denylist := security.NewTokenDenylist(store)
	ctx := context.Background()

	revoked, err := denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, denylist.Revoke(ctx, "jti-1", time.Minute))

	revoked, err = denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenDenylist_IgnoresExpiredOrEmpty(t *testing.T) {
	store, mr := newStore(t)
	denylist := security.NewTokenDenylist(store)
	ctx := context.Background()

	require.NoError(t, denylist.Revoke(ctx, "jti-2", 0))
	require.NoError(t, denylist.Revoke(ctx, "", time.Minute))
	assert.Empty(t, mr.Keys())
}

func TestLoginThrottle_LocksAfterMaxAttempts(t *testing.T) {
	store, _ := newStore(t)
	throttle := security.NewLoginThrottle(store, 3, 15*time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, throttle.Check(ctx, "a@b.com"))
		require.NoError(t, throttle.RecordFailure(ctx, "a@b.com"))
	}
	require.NoError(t, throttle.Check(ctx, "a@b.com"))

	require.NoError(t, throttle.RecordFailure(ctx, "A@B.com"))
	assert.ErrorIs(t, throttle.Check(ctx, "a@b.com"), security.ErrTooManyAttempts)

	require.NoError(t, throttle.Check(ctx, "other@b.com"))
}

func TestLoginThrottle_LockExpires(t *testing.T) {
	store, mr := newStore(t)
	throttle := security.NewLoginThrottle(store, 1, time.Minute)
	ctx := context.Background()

	require.NoError(t, throttle.RecordFailure(ctx, "a@b.com"))
	assert.ErrorIs(t, throttle.Check(ctx, "a@b.com"), security.ErrTooManyAttempts)

	mr.FastForward(61 * time.Second)
	assert.NoError(t, throttle.Check(ctx, "a@b.com"))
}

func TestLoginThrottle_ResetClearsCounter(t *testing.T) {
	store, _ := newStore(t)
	throttle := security.NewLoginThrottle(store, 2, time.Minute)
	ctx := context.Background()

	require.NoError(t, throttle.RecordFailure(ctx, "a@b.com"))
	require.NoError(t, throttle.Reset(ctx, "a@b.com"))
	require.NoError(t, throttle.RecordFailure(ctx, "a@b.com"))

	assert.NoError(t, throttle.Check(ctx, "a@b.com"))
}
