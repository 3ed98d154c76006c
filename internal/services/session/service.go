// Package session tracks the WhatsApp client connection status and the users seen by the gateway.
package session

import (
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/wagateway/gateway/internal/domain/models"
)

// State exposes the chat-client session state.
type State interface {
	// Status returns the current connection status.
	Status() models.BotStatus

	// Apply updates the status from a lifecycle signal.
	// Unknown signals are ignored and reported as false.
	Apply(signal models.LifecycleSignal) bool

	// Reset moves the status back to initializing for a new connection attempt.
	Reset()

	// IsReady reports whether outbound messages can be sent.
	IsReady() bool

	// RecordUser adds a user identifier to the active-user set.
	// Empty identifiers are ignored.
	RecordUser(userID string)

	// ActiveUsers returns the distinct user identifiers seen, sorted.
	ActiveUsers() []string

	// ActiveUserCount returns the size of the active-user set.
	ActiveUserCount() int
}

// state implements the State interface.
type state struct {
	mu     sync.RWMutex
	status models.BotStatus
	users  map[string]struct{}
}

// NewState creates a session state in the initializing status.
func NewState() State {
	return &state{
		status: models.BotStatusInitializing,
		users:  make(map[string]struct{}),
	}
}

// Status returns the current connection status.
func (s *state) Status() models.BotStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Apply updates the status from a lifecycle signal.
func (s *state) Apply(signal models.LifecycleSignal) bool {
	next, ok := models.StatusFor(signal)
	if !ok {
		log.Warn().Str("signal", string(signal)).Msg("ignoring unknown lifecycle signal")
		return false
	}

	s.mu.Lock()
	prev := s.status
	s.status = next
	s.mu.Unlock()

	if prev != next {
		log.Info().
			Str("from", prev.String()).
			Str("to", next.String()).
			Msg("bot status changed")
	}
	return true
}

// Reset moves the status back to initializing.
func (s *state) Reset() {
	s.mu.Lock()
	s.status = models.BotStatusInitializing
	s.mu.Unlock()
}

// IsReady reports whether the status is ready.
func (s *state) IsReady() bool {
	return s.Status() == models.BotStatusReady
}

// RecordUser adds a user to the active-user set.
func (s *state) RecordUser(userID string) {
	if userID == "" {
		return
	}
	s.mu.Lock()
	s.users[userID] = struct{}{}
	s.mu.Unlock()
}

// ActiveUsers returns the distinct user identifiers seen.
func (s *state) ActiveUsers() []string {
	s.mu.RLock()
	users := make([]string, 0, len(s.users))
	for u := range s.users {
		users = append(users, u)
	}
	s.mu.RUnlock()

	sort.Strings(users)
	return users
}

// ActiveUserCount returns the size of the active-user set.
func (s *state) ActiveUserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
