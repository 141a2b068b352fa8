package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisLocker(client), mr
}

func TestRedisLocker_Exclusive(t *testing.T) {
	l, mr := newRedisLocker(t)
	ctx := context.Background()

	release, ok, err := l.TryLock(ctx, "payment_timeout", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, mr.Exists("sweep:payment_timeout"))

	_, ok, err = l.TryLock(ctx, "payment_timeout", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	release()
	assert.False(t, mr.Exists("sweep:payment_timeout"))

	_, ok, err = l.TryLock(ctx, "payment_timeout", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLocker_ExpiresWithTTL(t *testing.T) {
	l, mr := newRedisLocker(t)
	ctx := context.Background()

	_, ok, err := l.TryLock(ctx, "delivery_timeout", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)
	_, ok, err = l.TryLock(ctx, "delivery_timeout", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

// lock หมดอายุแล้วคนอื่นถือต่อ release ของเราต้องไม่ลบของเขา
func TestRedisLocker_ReleaseKeepsForeignToken(t *testing.T) {
	l, mr := newRedisLocker(t)
	ctx := context.Background()

	release, ok, err := l.TryLock(ctx, "payment_timeout", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, mr.Set("sweep:payment_timeout", "someone-else"))
	release()

	v, err := mr.Get("sweep:payment_timeout")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", v)
}

func TestRedisLocker_Unavailable(t *testing.T) {
	l, mr := newRedisLocker(t)
	mr.Close()

	_, ok, err := l.TryLock(context.Background(), "payment_timeout", time.Minute)
	assert.Error(t, err)
	assert.False(t, ok)
}
