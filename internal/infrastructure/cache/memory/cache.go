// Package memory provides the in-process cache implementation.
package memory

import (
	"context"
	"fmt"
	"path"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// DefaultTTL is used when no TTL is configured.
	DefaultTTL = 5 * time.Minute
	// DefaultMaxEntries bounds the number of entries held in memory.
	DefaultMaxEntries = 1000
)

// Config holds in-memory cache configuration.
type Config struct {
	DefaultTTL time.Duration
	// CheckPeriod is how often expired entries are swept. Zero disables the
	// sweeper; expired entries are then dropped on read or by LRU eviction.
	CheckPeriod time.Duration
	// MaxEntries caps the entry count; the least recently used entry is
	// evicted first. Zero means DefaultMaxEntries.
	MaxEntries int
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Cache implements the cache.Cache interface on top of a size-bounded LRU.
// Every entry carries its own expiry, checked on read and removed by the
// sweeper. The LRU runs no background goroutine, so Close releases
// everything the cache started.
type Cache struct {
	lru        *lru.Cache[string, entry]
	defaultTTL time.Duration
	now        func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

// NewCache creates a new in-memory cache instance.
func NewCache(cfg Config) *Cache {
	ttl := cfg.DefaultTTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	size := cfg.MaxEntries
	if size <= 0 {
		size = DefaultMaxEntries
	}

	// lru.New only fails for a non-positive size.
	entries, _ := lru.New[string, entry](size)

	c := &Cache{
		lru:        entries,
		defaultTTL: ttl,
		now:        time.Now,
		stop:       make(chan struct{}),
	}

	if cfg.CheckPeriod > 0 {
		go c.sweep(cfg.CheckPeriod)
	}

	return c
}

// Get retrieves a value by key. Returns nil if the key is absent or expired.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	e, ok := c.lru.Get(key)
	if !ok {
		return nil, nil
	}
	if !c.now().Before(e.expiresAt) {
		c.lru.Remove(key)
		return nil, nil
	}
	return e.value, nil
}

// Set stores a value. A zero or over-long ttl is clamped to the default TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 || ttl > c.defaultTTL {
		ttl = c.defaultTTL
	}
	c.lru.Add(key, entry{value: value, expiresAt: c.now().Add(ttl)})
	return nil
}

// Delete removes a key.
func (c *Cache) Delete(ctx context.Context, key string) (bool, error) {
	return c.lru.Remove(key), nil
}

// DeletePattern removes all keys matching the glob pattern.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) (int64, error) {
	if pattern == "*" {
		n := int64(c.lru.Len())
		c.lru.Purge()
		return n, nil
	}

	var deleted int64
	for _, key := range c.lru.Keys() {
		matched, err := path.Match(pattern, key)
		if err != nil {
			return deleted, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if matched && c.lru.Remove(key) {
			deleted++
		}
	}
	return deleted, nil
}

// CountPattern counts live keys matching the glob pattern.
func (c *Cache) CountPattern(ctx context.Context, pattern string) (int64, error) {
	now := c.now()
	var count int64
	for _, key := range c.lru.Keys() {
		matched, err := path.Match(pattern, key)
		if err != nil {
			return 0, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if !matched {
			continue
		}
		if e, ok := c.lru.Peek(key); ok && now.Before(e.expiresAt) {
			count++
		}
	}
	return count, nil
}

// Ping always succeeds for the in-process cache.
func (c *Cache) Ping(ctx context.Context) error {
	return nil
}

// Close stops the sweeper and drops all entries. Safe to call more than once.
func (c *Cache) Close() error {
	c.stopOnce.Do(func() {
		close(c.stop)
		c.lru.Purge()
	})
	return nil
}

// sweep removes entries whose own expiry has passed.
func (c *Cache) sweep(period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.deleteExpired()
		}
	}
}

func (c *Cache) deleteExpired() int {
	now := c.now()
	removed := 0
	for _, key := range c.lru.Keys() {
		e, ok := c.lru.Peek(key)
		if ok && now.Before(e.expiresAt) {
			continue
		}
		if c.lru.Remove(key) {
			removed++
		}
	}
	return removed
}
