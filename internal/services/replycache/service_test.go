package replycache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wagateway/gateway/internal/infrastructure/cache/memory"
	"github.com/wagateway/gateway/internal/services/replycache"
	"github.com/wagateway/gateway/internal/testutils/mocks"
)

func newMemoryService(t *testing.T, ttl time.Duration) replycache.Service {
	t.Helper()

	backend := memory.NewCache(memory.Config{DefaultTTL: ttl})
	t.Cleanup(func() { backend.Close() })

	svc, err := replycache.NewService(&replycache.Config{Cache: backend, TTL: ttl})
	require.NoError(t, err)
	return svc
}

func TestNewService_NilConfig(t *testing.T) {
	svc, err := replycache.NewService(nil)

	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "config is required")
}

func TestNewService_NilCache(t *testing.T) {
	svc, err := replycache.NewService(&replycache.Config{})

	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "cache is required")
}

func TestService_RoundTrip(t *testing.T) {
	svc := newMemoryService(t, time.Minute)
	ctx := context.Background()

	svc.Set(ctx, "reply:k", "hi there")

	value, ok := svc.Get(ctx, "reply:k")
	assert.True(t, ok)
	assert.Equal(t, "hi there", value)
}

func TestService_ExpiresAfterTTL(t *testing.T) {
	svc := newMemoryService(t, 50*time.Millisecond)
	ctx := context.Background()

	svc.Set(ctx, "reply:k", "hi there")

	assert.Eventually(t, func() bool {
		_, ok := svc.Get(ctx, "reply:k")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestService_StatsCountHitsAndMisses(t *testing.T) {
	svc := newMemoryService(t, time.Minute)
	ctx := context.Background()

	svc.Get(ctx, "reply:missing")
	svc.Set(ctx, "reply:a", "A")
	svc.Get(ctx, "reply:a")
	svc.Get(ctx, "reply:a")

	stats := svc.Stats(ctx)
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Keys)
}

func TestService_FlushAll(t *testing.T) {
	svc := newMemoryService(t, time.Minute)
	ctx := context.Background()

	svc.Set(ctx, "reply:a", "A")
	svc.Set(ctx, "reply:b", "B")

	n, err := svc.FlushAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, ok := svc.Get(ctx, "reply:a")
	assert.False(t, ok)
	_, ok = svc.Get(ctx, "reply:b")
	assert.False(t, ok)
	assert.Zero(t, svc.Stats(ctx).Keys)
}

func TestService_FlushAllKeepsCounters(t *testing.T) {
	svc := newMemoryService(t, time.Minute)
	ctx := context.Background()

	svc.Set(ctx, "reply:a", "A")
	svc.Get(ctx, "reply:a")
	_, err := svc.FlushAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), svc.Stats(ctx).Hits)
}

func TestService_BackendErrorIsMiss(t *testing.T) {
	mockCache := &mocks.MockCache{}
	mockCache.On("Get", mock.Anything, "reply:k").Return(nil, assert.AnError)
	mockCache.On("CountPattern", mock.Anything, "reply:*").Return(int64(0), nil)

	svc, err := replycache.NewService(&replycache.Config{Cache: mockCache})
	require.NoError(t, err)

	_, ok := svc.Get(context.Background(), "reply:k")

	assert.False(t, ok)
	assert.Equal(t, int64(1), svc.Stats(context.Background()).Misses)
	mockCache.AssertExpectations(t)
}

func TestService_SetUsesConfiguredTTL(t *testing.T) {
	mockCache := &mocks.MockCache{}
	mockCache.On("Set", mock.Anything, "reply:k", []byte("v"), 42*time.Second).Return(assert.AnError)

	svc, err := replycache.NewService(&replycache.Config{Cache: mockCache, TTL: 42 * time.Second})
	require.NoError(t, err)

	// a failing backend is not fatal
	svc.Set(context.Background(), "reply:k", "v")

	mockCache.AssertExpectations(t)
}

func TestService_FlushAllError(t *testing.T) {
	mockCache := &mocks.MockCache{}
	mockCache.On("DeletePattern", mock.Anything, "reply:*").Return(int64(0), assert.AnError)

	svc, err := replycache.NewService(&replycache.Config{Cache: mockCache})
	require.NoError(t, err)

	_, err = svc.FlushAll(context.Background())

	assert.ErrorIs(t, err, assert.AnError)
}
