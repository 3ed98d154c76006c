// Package errors provides domain-specific error types.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for domain errors.
const (
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeAITimeout     = "AI_TIMEOUT"
	ErrCodeAIUnavailable = "AI_UNAVAILABLE"
	ErrCodeBotNotReady   = "BOT_NOT_READY"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeRateLimited   = "RATE_LIMITED"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// DomainError represents a domain-specific error.
//
// Message is always safe to show to an end user. Err carries the internal
// cause and is only ever logged.
type DomainError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewInvalidInputError creates an error for a malformed, missing or oversized field.
func NewInvalidInputError(message string, details string) *DomainError {
	return &DomainError{
		Code:       ErrCodeInvalidInput,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewAITimeoutError creates an error for a completion call that exceeded its deadline.
func NewAITimeoutError(userMessage string, err error) *DomainError {
	return &DomainError{
		Code:       ErrCodeAITimeout,
		Message:    userMessage,
		HTTPStatus: http.StatusGatewayTimeout,
		Err:        err,
	}
}

// NewAIUnavailableError creates an error for any other completion failure.
func NewAIUnavailableError(userMessage string, err error) *DomainError {
	return &DomainError{
		Code:       ErrCodeAIUnavailable,
		Message:    userMessage,
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

// NewBotNotReadyError creates an error for an outbound send while the chat client is not ready.
func NewBotNotReadyError(status string) *DomainError {
	return &DomainError{
		Code:       ErrCodeBotNotReady,
		Message:    "WhatsApp bot is not ready",
		Details:    status,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// NewRateLimitedError creates an error for a client that exhausted its request window.
func NewRateLimitedError() *DomainError {
	return &DomainError{
		Code:       ErrCodeRateLimited,
		Message:    "Too many requests, please try again later.",
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// NewInternalError creates a new internal error. The cause is kept out of Details.
func NewInternalError(message string, err error) *DomainError {
	return &DomainError{
		Code:       ErrCodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// GetDomainError extracts the domain error from an error.
func GetDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

func hasCode(err error, code string) bool {
	domainErr, ok := GetDomainError(err)
	return ok && domainErr.Code == code
}

// IsInvalidInput checks if the error is an invalid input error.
func IsInvalidInput(err error) bool { return hasCode(err, ErrCodeInvalidInput) }

// IsAITimeout checks if the error is a completion timeout.
func IsAITimeout(err error) bool { return hasCode(err, ErrCodeAITimeout) }

// IsAIUnavailable checks if the error is a non-timeout completion failure.
func IsAIUnavailable(err error) bool { return hasCode(err, ErrCodeAIUnavailable) }

// IsBotNotReady checks if the error is a bot-not-ready error.
func IsBotNotReady(err error) bool { return hasCode(err, ErrCodeBotNotReady) }
