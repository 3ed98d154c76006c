package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rediscache "github.com/wagateway/gateway/internal/infrastructure/cache/redis"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *rediscache.Cache) {
	t.Helper()

	mr := miniredis.RunT(t)

	c, err := rediscache.NewCache(context.Background(), rediscache.Config{
		Host:       mr.Host(),
		Port:       mr.Port(),
		DefaultTTL: time.Minute,
	})
	require.NoError(t, err)

	t.Cleanup(func() { c.Close() })

	return mr, c
}

func TestNewCache_ConnectionRefused(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	c, err := rediscache.NewCache(context.Background(), rediscache.Config{Host: host, Port: port})

	assert.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestCache_SetAndGet(t *testing.T) {
	mr, c := setupMiniredis(t)
	ctx := context.Background()

	err := c.Set(ctx, "reply:abc", []byte("hello"), 0)
	require.NoError(t, err)

	result, err := c.Get(ctx, "reply:abc")
	assert.NoError(t, err)
	assert.Equal(t, []byte("hello"), result)

	assert.True(t, mr.Exists(rediscache.DefaultKeyPrefix+"reply:abc"))
	assert.Equal(t, time.Minute, mr.TTL(rediscache.DefaultKeyPrefix+"reply:abc"))
}

func TestCache_GetNotFound(t *testing.T) {
	_, c := setupMiniredis(t)

	result, err := c.Get(context.Background(), "missing")

	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestCache_TTLExpiration(t *testing.T) {
	mr, c := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "expiring", []byte("v"), time.Second))

	mr.FastForward(2 * time.Second)

	result, err := c.Get(ctx, "expiring")
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestCache_Delete(t *testing.T) {
	_, c := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))

	deleted, err := c.Delete(ctx, "k")
	assert.NoError(t, err)
	assert.True(t, deleted)

	result, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestCache_DeletePatternLeavesForeignKeys(t *testing.T) {
	mr, c := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "reply:1", []byte("a"), 0))
	require.NoError(t, c.Set(ctx, "reply:2", []byte("b"), 0))
	require.NoError(t, mr.Set("reply:3", "not ours"))

	deleted, err := c.DeletePattern(ctx, "reply:*")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	assert.Contains(t, mr.Keys(), "reply:3")
}

func TestCache_CountPattern(t *testing.T) {
	_, c := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "reply:1", []byte("a"), 0))
	require.NoError(t, c.Set(ctx, "reply:2", []byte("b"), 0))
	require.NoError(t, c.Set(ctx, "other", []byte("c"), 0))

	count, err := c.CountPattern(ctx, "reply:*")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCache_Ping(t *testing.T) {
	_, c := setupMiniredis(t)

	assert.NoError(t, c.Ping(context.Background()))
}
