// Package replycache caches AI replies keyed by a fingerprint of platform and message.
package replycache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wagateway/gateway/internal/core/cache"
)

// DefaultTTL is the lifetime of a cached reply when none is configured.
const DefaultTTL = 300 * time.Second

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Keys   int64 `json:"keys"`
}

// Service is the response cache used by the message pipeline.
type Service interface {
	// Get returns the reply stored under key, or false if absent or expired.
	Get(ctx context.Context, key string) (string, bool)

	// Set stores a reply under key, resetting its expiry.
	Set(ctx context.Context, key string, value string)

	// FlushAll removes every cached reply.
	FlushAll(ctx context.Context) (int64, error)

	// Stats returns hit/miss counters since start and the live key count.
	Stats(ctx context.Context) Stats
}

// Config holds the configuration for the reply cache.
type Config struct {
	Cache cache.Cache
	TTL   time.Duration
}

// service implements the Service interface.
type service struct {
	cache  cache.Cache
	ttl    time.Duration
	hits   atomic.Int64
	misses atomic.Int64
}

// NewService creates a new reply cache over a cache backend.
func NewService(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Cache == nil {
		return nil, fmt.Errorf("cache is required")
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &service{
		cache: cfg.Cache,
		ttl:   ttl,
	}, nil
}

// Get looks up a reply. Backend failures count as misses.
func (s *service) Get(ctx context.Context, key string) (string, bool) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("reply cache lookup failed")
	}
	if err != nil || value == nil {
		s.misses.Add(1)
		return "", false
	}

	s.hits.Add(1)
	return string(value), true
}

// Set stores a reply. Backend failures are logged and dropped.
func (s *service) Set(ctx context.Context, key string, value string) {
	if err := s.cache.Set(ctx, key, []byte(value), s.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("reply cache store failed")
	}
}

// FlushAll removes every cached reply.
func (s *service) FlushAll(ctx context.Context) (int64, error) {
	n, err := s.cache.DeletePattern(ctx, KeyPrefix+"*")
	if err != nil {
		return n, fmt.Errorf("failed to flush reply cache: %w", err)
	}
	return n, nil
}

// Stats returns a snapshot of the counters.
func (s *service) Stats(ctx context.Context) Stats {
	keys, err := s.cache.CountPattern(ctx, KeyPrefix+"*")
	if err != nil {
		log.Warn().Err(err).Msg("failed to count reply cache keys")
	}

	return Stats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
		Keys:   keys,
	}
}
