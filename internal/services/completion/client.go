// Package completion provides the client for the remote AI completion API.
package completion

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	domainerrors "github.com/wagateway/gateway/internal/domain/errors"
	"github.com/wagateway/gateway/internal/domain/models"
)

const (
	// DefaultTimeout bounds a single completion call.
	DefaultTimeout = 30 * time.Second
	// DefaultModel is used when no model is configured.
	DefaultModel = openai.GPT3Dot5Turbo
	// DefaultMaxTokens caps the length of a reply.
	DefaultMaxTokens = 500
	// DefaultTemperature is the sampling temperature.
	DefaultTemperature = 0.7

	fallbackUserMessage = "Sorry, I'm having trouble right now. Please try again later."
)

// Client defines the interface for the completion client.
type Client interface {
	// Complete issues exactly one completion call. Failures are classified
	// as AiTimeout or AiUnavailable domain errors.
	Complete(ctx context.Context, req models.CompletionRequest) (models.CompletionResult, error)
}

// ClientConfig holds the configuration for the completion client.
type ClientConfig struct {
	// BaseURL is an OpenAI-compatible API root, e.g. https://api.openai.com/v1
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
	Prompts     map[models.Platform]string
	// ErrorMessage and TimeoutMessage are carried by the classified errors
	// and are the only failure text shown to users.
	ErrorMessage   string
	TimeoutMessage string
	HTTPClient     *http.Client
}

// client implements the Client interface.
type client struct {
	api            *openai.Client
	model          string
	maxTokens      int
	temperature    float32
	timeout        time.Duration
	prompts        map[models.Platform]string
	errorMessage   string
	timeoutMessage string
}

// NewClient creates a new completion client.
func NewClient(cfg *ClientConfig) (Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.HTTPClient != nil {
		apiCfg.HTTPClient = cfg.HTTPClient
	}

	c := &client{
		api:            openai.NewClientWithConfig(apiCfg),
		model:          cfg.Model,
		maxTokens:      cfg.MaxTokens,
		temperature:    cfg.Temperature,
		timeout:        cfg.Timeout,
		prompts:        cfg.Prompts,
		errorMessage:   cfg.ErrorMessage,
		timeoutMessage: cfg.TimeoutMessage,
	}

	if c.model == "" {
		c.model = DefaultModel
	}
	if c.maxTokens <= 0 {
		c.maxTokens = DefaultMaxTokens
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.prompts == nil {
		c.prompts = DefaultPrompts
	}
	if c.errorMessage == "" {
		c.errorMessage = fallbackUserMessage
	}
	if c.timeoutMessage == "" {
		c.timeoutMessage = c.errorMessage
	}

	return c, nil
}

// Complete sends the message with the platform system prompt and returns the reply text.
func (c *client) Complete(ctx context.Context, req models.CompletionRequest) (models.CompletionResult, error) {
	systemPrompt := req.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = SystemPrompt(c.prompts, req.Platform)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.Message},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	latency := time.Since(start)

	if err != nil {
		if isTimeout(callCtx, err) {
			log.Error().Err(err).
				Str("platform", string(req.Platform)).
				Dur("timeout", c.timeout).
				Msg("completion call timed out")
			return models.CompletionResult{}, domainerrors.NewAITimeoutError(c.timeoutMessage, err)
		}

		event := log.Error().Err(err).Str("platform", string(req.Platform)).Dur("latency", latency)
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			event = event.Int("status", apiErr.HTTPStatusCode).Str("type", apiErr.Type)
		}
		event.Msg("completion call failed")
		return models.CompletionResult{}, domainerrors.NewAIUnavailableError(c.errorMessage, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		err := fmt.Errorf("empty response from model %s", c.model)
		log.Error().Err(err).Str("platform", string(req.Platform)).Msg("completion call returned no content")
		return models.CompletionResult{}, domainerrors.NewAIUnavailableError(c.errorMessage, err)
	}

	log.Debug().
		Str("platform", string(req.Platform)).
		Str("model", resp.Model).
		Int("tokens", resp.Usage.TotalTokens).
		Dur("latency", latency).
		Msg("completion call succeeded")

	return models.CompletionResult{Text: strings.TrimSpace(resp.Choices[0].Message.Content)}, nil
}

// isTimeout reports whether err came from the call deadline rather than the caller cancelling.
func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
