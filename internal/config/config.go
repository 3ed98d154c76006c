// Package config handles application configuration loading and management.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig
	AI        AIConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Features  FeatureConfig
	WhatsApp  WhatsAppConfig
	Messages  MessagesConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host        string
	Port        int
	GinMode     string
	Environment string
	CORSOrigin  string
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AIConfig holds the completion API configuration.
type AIConfig struct {
	URL         string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// CacheConfig holds reply cache configuration.
type CacheConfig struct {
	Type        string
	TTL         time.Duration
	CheckPeriod time.Duration
	MaxEntries  int
	Host        string
	Port        string
	Password    string
	DB          int
}

// RateLimitConfig holds the fixed-window limiter configuration for /api routes.
type RateLimitConfig struct {
	Window      time.Duration
	MaxRequests int
}

// FeatureConfig switches middleware and caching on or off.
type FeatureConfig struct {
	Logging         bool
	Caching         bool
	RateLimiting    bool
	CORS            bool
	Compression     bool
	SecurityHeaders bool
}

// WhatsAppConfig holds the chat client configuration.
type WhatsAppConfig struct {
	Enabled  bool
	StoreDSN string
}

// MessagesConfig holds the user-facing failure texts.
type MessagesConfig struct {
	Error   string
	Timeout string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        getEnvAsInt("PORT", 3000),
			GinMode:     getEnv("GIN_MODE", "release"),
			Environment: getEnv("ENVIRONMENT", "development"),
			CORSOrigin:  getEnv("CORS_ORIGIN", "*"),
		},
		AI: AIConfig{
			URL:         getEnv("AI_API_URL", "https://api.openai.com/v1"),
			APIKey:      getEnv("AI_API_KEY", ""),
			Model:       getEnv("AI_MODEL", "gpt-3.5-turbo"),
			MaxTokens:   getEnvAsInt("AI_MAX_TOKENS", 500),
			Temperature: float32(getEnvAsFloat("AI_TEMPERATURE", 0.7)),
			Timeout:     time.Duration(getEnvAsInt("AI_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Cache: CacheConfig{
			Type:        getEnv("CACHE_TYPE", "memory"),
			TTL:         time.Duration(getEnvAsInt("CACHE_TTL_SECONDS", 300)) * time.Second,
			CheckPeriod: time.Duration(getEnvAsInt("CACHE_CHECK_PERIOD_SECONDS", 600)) * time.Second,
			MaxEntries:  getEnvAsInt("CACHE_MAX_ENTRIES", 1000),
			Host:        getEnv("REDIS_HOST", "localhost"),
			Port:        getEnv("REDIS_PORT", "6379"),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          getEnvAsInt("REDIS_DB", 0),
		},
		RateLimit: RateLimitConfig{
			Window:      time.Duration(getEnvAsInt("RATE_LIMIT_WINDOW_MINUTES", 15)) * time.Minute,
			MaxRequests: getEnvAsInt("RATE_LIMIT_MAX_REQUESTS", 100),
		},
		Features: FeatureConfig{
			Logging:         getEnvAsBool("ENABLE_LOGGING", true),
			Caching:         getEnvAsBool("ENABLE_CACHING", true),
			RateLimiting:    getEnvAsBool("ENABLE_RATE_LIMITING", true),
			CORS:            getEnvAsBool("ENABLE_CORS", true),
			Compression:     getEnvAsBool("ENABLE_COMPRESSION", true),
			SecurityHeaders: getEnvAsBool("ENABLE_SECURITY_HEADERS", true),
		},
		WhatsApp: WhatsAppConfig{
			Enabled:  getEnvAsBool("WHATSAPP_ENABLED", true),
			StoreDSN: getEnv("WHATSAPP_STORE_DSN", "file:whatsapp-session.db?_foreign_keys=on"),
		},
		Messages: MessagesConfig{
			Error:   getEnv("BOT_ERROR_MESSAGE", "Sorry, I'm having trouble right now. Please try again later."),
			Timeout: getEnv("BOT_TIMEOUT_MESSAGE", "Sorry, that took too long to answer. Please try again in a moment."),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that have no usable fallback.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d", c.Server.Port)
	}
	if c.AI.URL == "" {
		return fmt.Errorf("AI_API_URL is required")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL_SECONDS must be positive")
	}
	if c.RateLimit.Window <= 0 || c.RateLimit.MaxRequests <= 0 {
		return fmt.Errorf("rate limit window and max requests must be positive")
	}
	switch c.Cache.Type {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported CACHE_TYPE: %s", c.Cache.Type)
	}
	return nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat gets an environment variable as a float with a default value.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsBool gets an environment variable as a boolean with a default value.
// Only "false", "0", "no" and "off" disable a flag.
func getEnvAsBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	switch value {
	case "":
		return defaultValue
	case "false", "0", "no", "off":
		return false
	default:
		return true
	}
}
