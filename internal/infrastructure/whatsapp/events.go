package whatsapp

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"

	"github.com/wagateway/gateway/internal/domain/models"
	"github.com/wagateway/gateway/internal/services/pipeline"
	"github.com/wagateway/gateway/internal/services/replycache"
	"github.com/wagateway/gateway/internal/services/session"
)

const previewLength = 50

// Replier delivers a text reply to a chat.
type Replier interface {
	Reply(ctx context.Context, chat types.JID, text string) error
}

// EventHandler translates whatsmeow events into session signals and pipeline calls.
type EventHandler struct {
	ctx      context.Context
	cancel   context.CancelFunc
	pipeline pipeline.Pipeline
	state    session.State
	replier  Replier
	wg       sync.WaitGroup

	// mu orders wg.Add against Shutdown setting closed.
	mu     sync.Mutex
	closed atomic.Bool

	// OnLoggedOut runs on its own goroutine after the device is logged out.
	OnLoggedOut func()
}

// NewEventHandler creates an event handler. Messages inherit values from ctx
// but not its cancellation; in-flight replies are only cut off by Shutdown.
func NewEventHandler(ctx context.Context, p pipeline.Pipeline, state session.State, replier Replier) *EventHandler {
	base, cancel := context.WithCancel(context.WithoutCancel(ctx))
	return &EventHandler{
		ctx:      base,
		cancel:   cancel,
		pipeline: p,
		state:    state,
		replier:  replier,
	}
}

// HandleEvent is registered with whatsmeow through AddEventHandler.
// Messages are processed on their own goroutine so the event loop is never
// blocked by a completion call.
func (h *EventHandler) HandleEvent(evt interface{}) {
	switch v := evt.(type) {
	case *events.PairSuccess:
		log.Info().Str("jid", v.ID.String()).Msg("whatsapp device paired")
		h.state.Apply(models.SignalAuthenticated)
	case *events.Connected:
		h.state.Apply(models.SignalReady)
	case *events.Disconnected:
		h.state.Apply(models.SignalDisconnected)
	case *events.LoggedOut:
		log.Warn().Str("reason", v.Reason.String()).Msg("whatsapp session logged out")
		h.state.Apply(models.SignalDisconnected)
		if h.OnLoggedOut != nil && !h.closed.Load() {
			go h.OnLoggedOut()
		}
	case *events.Message:
		text, ok := inboundText(v)
		if !ok {
			return
		}
		h.mu.Lock()
		if h.closed.Load() {
			h.mu.Unlock()
			return
		}
		h.wg.Add(1)
		h.mu.Unlock()
		go func() {
			defer h.wg.Done()
			h.handleMessage(v.Info.Chat, v.Info.Sender.ToNonAD().String(), text)
		}()
	}
}

// Wait blocks until every in-flight message has been handled.
func (h *EventHandler) Wait() {
	h.wg.Wait()
}

// Shutdown stops accepting messages and waits up to timeout for in-flight
// ones to finish. Past the timeout their context is cancelled and Shutdown
// waits for them to return. It reports whether everything finished in time.
func (h *EventHandler) Shutdown(timeout time.Duration) bool {
	h.mu.Lock()
	h.closed.Store(true)
	h.mu.Unlock()
	defer h.cancel()

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		return true
	case <-timer.C:
		log.Warn().Dur("timeout", timeout).Msg("cancelling unfinished whatsapp replies")
		h.cancel()
		<-done
		return false
	}
}

func (h *EventHandler) handleMessage(chat types.JID, sender, text string) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Str("chat", chat.String()).
				Msg("panic recovered in whatsapp message handler")
		}
	}()

	log.Debug().
		Str("sender", sender).
		Str("preview", replycache.Preview(text, previewLength)).
		Msg("whatsapp message received")

	reply, err := h.pipeline.Handle(h.ctx, models.OriginChat, sender, text)
	if err != nil {
		log.Warn().Err(err).Str("sender", sender).Msg("pipeline returned an error")
	}
	if reply.Text == "" {
		return
	}

	if err := h.replier.Reply(h.ctx, chat, reply.Text); err != nil {
		log.Error().Err(err).Str("chat", chat.String()).Msg("failed to deliver whatsapp reply")
	}
}

// inboundText returns the text of a message the gateway should answer.
// Own messages, groups, broadcasts and non-text messages are skipped.
func inboundText(evt *events.Message) (string, bool) {
	if evt.Info.IsFromMe || evt.Info.IsGroup {
		return "", false
	}
	if evt.Info.Chat.Server == types.BroadcastServer {
		return "", false
	}

	text := strings.TrimSpace(messageText(evt.Message))
	if text == "" {
		return "", false
	}
	return text, true
}

func messageText(msg *waE2E.Message) string {
	if msg == nil {
		return ""
	}
	if conv := msg.GetConversation(); conv != "" {
		return conv
	}
	return msg.GetExtendedTextMessage().GetText()
}
