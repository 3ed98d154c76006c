package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"

	domainerrors "github.com/wagateway/gateway/internal/domain/errors"
)

// maxTrackedClients bounds the number of client windows held in memory.
// Least recently seen clients are evicted first; a stale window is reset on
// the client's next request.
const maxTrackedClients = 10000

// RateLimitConfig configures the fixed-window limiter.
type RateLimitConfig struct {
	Window      time.Duration
	MaxRequests int
}

type clientWindow struct {
	start time.Time
	count int
}

// RateLimiter allows MaxRequests per client IP in each fixed window.
type RateLimiter struct {
	mu      sync.Mutex
	windows *lru.Cache[string, *clientWindow]
	window  time.Duration
	limit   int
	now     func() time.Time
}

// NewRateLimiter creates a fixed-window rate limiter.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	// lru.New only fails for a non-positive size.
	windows, _ := lru.New[string, *clientWindow](maxTrackedClients)

	return &RateLimiter{
		windows: windows,
		window:  cfg.Window,
		limit:   cfg.MaxRequests,
		now:     time.Now,
	}
}

// allow counts one request for key and reports whether it fits the window,
// the remaining budget and when the window resets.
func (l *RateLimiter) allow(key string) (bool, int, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows.Get(key)
	if !ok || now.Sub(w.start) >= l.window {
		w = &clientWindow{start: now}
		l.windows.Add(key, w)
	}
	w.count++

	remaining := l.limit - w.count
	if remaining < 0 {
		remaining = 0
	}
	return w.count <= l.limit, remaining, w.start.Add(l.window)
}

// Handler returns the gin middleware.
func (l *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, remaining, reset := l.allow(c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if !ok {
			retryAfter := int(reset.Sub(l.now()).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			logger := GetRequestLogger(c)
			logger.Warn().Str("client_ip", c.ClientIP()).Msg("rate limit exceeded")
			HandleError(c, domainerrors.NewRateLimitedError())
			return
		}

		c.Next()
	}
}
