package dto

import "time"

// HealthResponse represents the GET / health check.
type HealthResponse struct {
	Status      string    `json:"status"`
	BotStatus   string    `json:"botStatus"`
	Timestamp   time.Time `json:"timestamp"`
	Version     string    `json:"version"`
	ActiveUsers int       `json:"activeUsers"`
}

// StatusResponse represents GET /api/status.
type StatusResponse struct {
	WhatsApp WhatsAppStatus `json:"whatsapp"`
	Server   ServerStatus   `json:"server"`
	Cache    CacheStatus    `json:"cache"`
}

// WhatsAppStatus describes the chat client session.
type WhatsAppStatus struct {
	Status         string `json:"status"`
	ConnectedUsers int    `json:"connectedUsers"`
}

// ServerStatus describes the running process.
type ServerStatus struct {
	// Uptime in seconds.
	Uptime      float64     `json:"uptime"`
	Memory      MemoryStats `json:"memory"`
	Environment string      `json:"environment"`
}

// MemoryStats is a subset of runtime.MemStats, in bytes.
type MemoryStats struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"totalAlloc"`
	Sys        uint64 `json:"sys"`
	HeapInUse  uint64 `json:"heapInUse"`
	NumGC      uint32 `json:"numGC"`
	Goroutines int    `json:"goroutines"`
}

// CacheStatus describes the reply cache.
type CacheStatus struct {
	Keys  int64      `json:"keys"`
	Stats CacheStats `json:"stats"`
}

// CacheStats holds reply cache counters.
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Keys   int64 `json:"keys"`
}

// ChatResponse represents a successful POST /api/chat.
type ChatResponse struct {
	Success   bool      `json:"success"`
	Reply     string    `json:"reply"`
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"sessionId"`
	Cached    bool      `json:"cached"`
}

// SuccessResponse is the generic acknowledgement body.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AnalyticsResponse represents GET /api/analytics.
type AnalyticsResponse struct {
	TotalUsers  int       `json:"totalUsers"`
	Uptime      float64   `json:"uptime"`
	CacheHits   int64     `json:"cacheHits"`
	CacheMisses int64     `json:"cacheMisses"`
	BotStatus   string    `json:"botStatus"`
	Timestamp   time.Time `json:"timestamp"`
}

// NotFoundResponse is returned for unmatched routes.
type NotFoundResponse struct {
	Error              string   `json:"error"`
	AvailableEndpoints []string `json:"available_endpoints"`
}
