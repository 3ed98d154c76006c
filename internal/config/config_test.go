package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagateway/gateway/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, "*", cfg.Server.CORSOrigin)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 500, cfg.AI.MaxTokens)
	assert.InDelta(t, 0.7, cfg.AI.Temperature, 0.0001)
	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Equal(t, 300*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 600*time.Second, cfg.Cache.CheckPeriod)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 100, cfg.RateLimit.MaxRequests)
	assert.True(t, cfg.Features.Logging)
	assert.True(t, cfg.Features.Caching)
	assert.True(t, cfg.Features.RateLimiting)
	assert.True(t, cfg.Features.CORS)
	assert.True(t, cfg.Features.Compression)
	assert.True(t, cfg.Features.SecurityHeaders)
	assert.True(t, cfg.WhatsApp.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8085")
	t.Setenv("AI_MODEL", "llama3")
	t.Setenv("AI_TEMPERATURE", "0.2")
	t.Setenv("AI_TIMEOUT_SECONDS", "5")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("ENABLE_CACHING", "false")
	t.Setenv("ENABLE_COMPRESSION", "0")
	t.Setenv("WHATSAPP_ENABLED", "off")
	t.Setenv("BOT_ERROR_MESSAGE", "Oops")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8085", cfg.Server.Address())
	assert.Equal(t, "llama3", cfg.AI.Model)
	assert.InDelta(t, 0.2, cfg.AI.Temperature, 0.0001)
	assert.Equal(t, 5*time.Second, cfg.AI.Timeout)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.False(t, cfg.Features.Caching)
	assert.False(t, cfg.Features.Compression)
	assert.False(t, cfg.WhatsApp.Enabled)
	assert.Equal(t, "Oops", cfg.Messages.Error)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("AI_TEMPERATURE", "warm")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.InDelta(t, 0.7, cfg.AI.Temperature, 0.0001)
}

func TestLoad_UnsupportedCacheType(t *testing.T) {
	t.Setenv("CACHE_TYPE", "memcached")

	cfg, err := config.Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "unsupported CACHE_TYPE")
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "70000")

	_, err := config.Load()

	assert.ErrorContains(t, err, "invalid PORT")
}
