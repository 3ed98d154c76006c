// Package main is the entry point for the WhatsApp AI Gateway.
// @title WhatsApp AI Gateway API
// @version 1.0
// @description AI replies for WhatsApp chats and a web chat endpoint, with a TTL reply cache.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/wagateway/gateway/docs"
	"github.com/wagateway/gateway/internal/api/handlers"
	"github.com/wagateway/gateway/internal/api/middleware"
	"github.com/wagateway/gateway/internal/api/routes"
	"github.com/wagateway/gateway/internal/config"
	"github.com/wagateway/gateway/internal/core/cache"
	memorycache "github.com/wagateway/gateway/internal/infrastructure/cache/memory"
	rediscache "github.com/wagateway/gateway/internal/infrastructure/cache/redis"
	"github.com/wagateway/gateway/internal/infrastructure/whatsapp"
	"github.com/wagateway/gateway/internal/services/completion"
	"github.com/wagateway/gateway/internal/services/pipeline"
	"github.com/wagateway/gateway/internal/services/replycache"
	"github.com/wagateway/gateway/internal/services/session"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "1.0.0"

func main() {
	startedAt := time.Now()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize cache backend using factory pattern
	var (
		cacheBackend cache.Cache
		replies      replycache.Service
	)
	if cfg.Features.Caching {
		cacheBackend, err = createCache(ctx, cfg.Cache)
		if err != nil {
			log.Fatal().Err(err).Str("type", cfg.Cache.Type).Msg("failed to initialize cache")
		}

		replies, err = replycache.NewService(&replycache.Config{
			Cache: cacheBackend,
			TTL:   cfg.Cache.TTL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize reply cache")
		}
	} else {
		log.Info().Msg("reply caching disabled")
	}

	completionClient, err := completion.NewClient(&completion.ClientConfig{
		BaseURL:        cfg.AI.URL,
		APIKey:         cfg.AI.APIKey,
		Model:          cfg.AI.Model,
		MaxTokens:      cfg.AI.MaxTokens,
		Temperature:    cfg.AI.Temperature,
		Timeout:        cfg.AI.Timeout,
		ErrorMessage:   cfg.Messages.Error,
		TimeoutMessage: cfg.Messages.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize completion client")
	}

	state := session.NewState()

	messagePipeline, err := pipeline.NewService(&pipeline.Config{
		Completion:   completionClient,
		Cache:        replies,
		Session:      state,
		ErrorMessage: cfg.Messages.Error,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize message pipeline")
	}

	// WhatsApp is optional; without it /api/send always answers 503.
	var (
		waClient *whatsapp.Client
		sender   handlers.Sender
	)
	if cfg.WhatsApp.Enabled {
		waClient, err = whatsapp.NewClient(ctx, &whatsapp.Config{
			StoreDSN: cfg.WhatsApp.StoreDSN,
			Pipeline: messagePipeline,
			Session:  state,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize whatsapp client")
		}
		if err := waClient.Connect(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to connect whatsapp client")
		}
		sender = waClient
	} else {
		log.Info().Msg("whatsapp client disabled")
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	router := gin.New()
	routes.Setup(router, &routes.Config{
		HealthHandler: handlers.NewHealthHandler(handlers.HealthConfig{
			Session:     state,
			Cache:       replies,
			Version:     version,
			Environment: cfg.Server.Environment,
			StartedAt:   startedAt,
		}),
		ChatHandler:      handlers.NewChatHandler(messagePipeline),
		MessagingHandler: handlers.NewMessagingHandler(sender, state),
		CacheHandler:     handlers.NewCacheHandler(replies),
		Features: routes.Features{
			Logging:         cfg.Features.Logging,
			RateLimiting:    cfg.Features.RateLimiting,
			CORS:            cfg.Features.CORS,
			Compression:     cfg.Features.Compression,
			SecurityHeaders: cfg.Features.SecurityHeaders,
		},
		CORSOrigin: cfg.Server.CORSOrigin,
		RateLimit: middleware.RateLimitConfig{
			Window:      cfg.RateLimit.Window,
			MaxRequests: cfg.RateLimit.MaxRequests,
		},
		ErrorMessage: cfg.Messages.Error,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("address", cfg.Server.Address()).
			Str("environment", cfg.Server.Environment).
			Str("version", version).
			Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	<-ctx.Done()
	stop()

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	if waClient != nil {
		if err := waClient.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close whatsapp client")
		}
	}

	if cacheBackend != nil {
		if err := cacheBackend.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close cache")
		}
	}

	log.Info().Msg("server exited")
}

// setupLogger configures the global zerolog logger.
func setupLogger(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// createCache creates a cache backend based on the configuration.
func createCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cache.Type(cfg.Type) {
	case cache.TypeRedis:
		c, err := rediscache.NewCache(ctx, rediscache.Config{
			Host:       cfg.Host,
			Port:       cfg.Port,
			Password:   cfg.Password,
			DB:         cfg.DB,
			DefaultTTL: cfg.TTL,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	case cache.TypeMemory:
		return memorycache.NewCache(memorycache.Config{
			DefaultTTL:  cfg.TTL,
			CheckPeriod: cfg.CheckPeriod,
			MaxEntries:  cfg.MaxEntries,
		}), nil
	default:
		return nil, errors.New("unsupported cache type: " + cfg.Type)
	}
}
