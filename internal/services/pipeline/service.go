// Package pipeline turns an inbound message from any origin into an AI reply.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	domainerrors "github.com/wagateway/gateway/internal/domain/errors"
	"github.com/wagateway/gateway/internal/domain/models"
	"github.com/wagateway/gateway/internal/services/completion"
	"github.com/wagateway/gateway/internal/services/replycache"
	"github.com/wagateway/gateway/internal/services/session"
)

const (
	// MaxWebMessageLength is the largest message accepted from the web origin, in characters.
	MaxWebMessageLength = 2000

	// DefaultErrorMessage is shown when a failure carries no user-safe text.
	DefaultErrorMessage = "Sorry, I'm having trouble right now. Please try again later."

	previewLength = 50
)

// Pipeline handles inbound messages.
type Pipeline interface {
	// Handle validates the message, serves it from cache or the completion
	// client and records the user. On a completion failure the returned
	// Reply carries the user-safe message alongside the classified error.
	Handle(ctx context.Context, origin models.Origin, userID, message string) (models.Reply, error)
}

// Config holds the dependencies of the pipeline.
type Config struct {
	Completion completion.Client
	// Cache may be nil when caching is disabled.
	Cache        replycache.Service
	Session      session.State
	ErrorMessage string
}

// service implements the Pipeline interface.
type service struct {
	completion   completion.Client
	cache        replycache.Service
	session      session.State
	errorMessage string
}

// NewService creates a new message pipeline.
func NewService(cfg *Config) (Pipeline, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Completion == nil {
		return nil, fmt.Errorf("completion client is required")
	}
	if cfg.Session == nil {
		return nil, fmt.Errorf("session state is required")
	}

	errorMessage := cfg.ErrorMessage
	if errorMessage == "" {
		errorMessage = DefaultErrorMessage
	}

	return &service{
		completion:   cfg.Completion,
		cache:        cfg.Cache,
		session:      cfg.Session,
		errorMessage: errorMessage,
	}, nil
}

// Handle processes one message.
func (s *service) Handle(ctx context.Context, origin models.Origin, userID, message string) (models.Reply, error) {
	if err := validate(origin, message); err != nil {
		return models.Reply{}, err
	}

	s.session.RecordUser(userID)

	platform := origin.Platform()
	key := replycache.Fingerprint(platform, message)
	logger := log.With().
		Str("origin", string(origin)).
		Str("platform", string(platform)).
		Str("preview", replycache.Preview(message, previewLength)).
		Logger()

	if s.cache != nil {
		if text, ok := s.cache.Get(ctx, key); ok {
			logger.Debug().Msg("reply served from cache")
			return models.Reply{Text: text, Cached: true}, nil
		}
	}

	result, err := s.completion.Complete(ctx, models.CompletionRequest{
		Platform: platform,
		Message:  message,
	})
	if err != nil {
		domainErr, ok := domainerrors.GetDomainError(err)
		if !ok || domainErr.Message == "" {
			domainErr = domainerrors.NewAIUnavailableError(s.errorMessage, err)
		}
		logger.Error().Err(err).Str("code", domainErr.Code).Msg("failed to generate reply")
		return models.Reply{Text: domainErr.Message}, domainErr
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, result.Text)
	}

	logger.Info().Int("reply_length", len(result.Text)).Msg("reply generated")
	return models.Reply{Text: result.Text}, nil
}

func validate(origin models.Origin, message string) error {
	if strings.TrimSpace(message) == "" {
		return domainerrors.NewInvalidInputError("message is required", "message must be a non-empty string")
	}
	if origin == models.OriginWeb && utf8.RuneCountInString(message) > MaxWebMessageLength {
		return domainerrors.NewInvalidInputError(
			"message is too long",
			fmt.Sprintf("message must be at most %d characters", MaxWebMessageLength),
		)
	}
	return nil
}
