// Package whatsapp connects the gateway to WhatsApp through whatsmeow.
package whatsapp

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	// sqlite3 driver for the whatsmeow device store
	_ "github.com/mattn/go-sqlite3"
	"github.com/mdp/qrterminal/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"

	domainerrors "github.com/wagateway/gateway/internal/domain/errors"
	"github.com/wagateway/gateway/internal/domain/models"
	"github.com/wagateway/gateway/internal/services/pipeline"
	"github.com/wagateway/gateway/internal/services/session"
)

// DefaultStoreDSN keeps the device session in a local SQLite file.
const DefaultStoreDSN = "file:whatsapp-session.db?_foreign_keys=on"

// DefaultDrainTimeout bounds how long Close waits for in-flight replies.
const DefaultDrainTimeout = 15 * time.Second

// Config holds the WhatsApp client configuration.
type Config struct {
	StoreDSN string
	Pipeline pipeline.Pipeline
	Session  session.State
	// QROutput receives rendered pairing codes. Defaults to stdout.
	QROutput io.Writer
	// DrainTimeout defaults to DefaultDrainTimeout.
	DrainTimeout time.Duration
}

// Client owns the whatsmeow connection and its device store.
type Client struct {
	wa        *whatsmeow.Client
	container *sqlstore.Container
	state     session.State
	handler   *EventHandler
	qrOut     io.Writer
	drain     time.Duration
	ctx       context.Context
}

// NewClient opens the device store and prepares a whatsmeow client.
// Connect must be called to start the session.
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Pipeline == nil {
		return nil, fmt.Errorf("pipeline is required")
	}
	if cfg.Session == nil {
		return nil, fmt.Errorf("session state is required")
	}

	dsn := cfg.StoreDSN
	if dsn == "" {
		dsn = DefaultStoreDSN
	}

	baseLogger := log.Logger.With().Str("component", "whatsmeow").Logger()

	container, err := sqlstore.New(ctx, "sqlite3", dsn, waLog.Zerolog(baseLogger.With().Str("module", "store").Logger()))
	if err != nil {
		return nil, fmt.Errorf("failed to open whatsapp store: %w", err)
	}

	device, err := container.GetFirstDevice(ctx)
	if err != nil {
		_ = container.Close()
		return nil, fmt.Errorf("failed to load whatsapp device: %w", err)
	}

	qrOut := cfg.QROutput
	if qrOut == nil {
		qrOut = os.Stdout
	}

	drain := cfg.DrainTimeout
	if drain <= 0 {
		drain = DefaultDrainTimeout
	}

	c := &Client{
		wa:        whatsmeow.NewClient(device, waLog.Zerolog(clientLogger(baseLogger))),
		container: container,
		state:     cfg.Session,
		qrOut:     qrOut,
		drain:     drain,
		ctx:       ctx,
	}
	c.handler = NewEventHandler(ctx, cfg.Pipeline, cfg.Session, c)
	c.handler.OnLoggedOut = c.repair
	c.wa.AddEventHandler(c.handler.HandleEvent)

	return c, nil
}

func clientLogger(base zerolog.Logger) zerolog.Logger {
	// whatsmeow is chatty at debug level.
	return base.With().Str("module", "client").Logger().Level(zerolog.InfoLevel)
}

// Connect starts the session. Unpaired devices print QR codes until paired
// or until ctx is cancelled.
func (c *Client) Connect(ctx context.Context) error {
	c.state.Reset()

	if c.wa.Store.ID != nil {
		if err := c.wa.Connect(); err != nil {
			return fmt.Errorf("failed to connect to whatsapp: %w", err)
		}
		return nil
	}

	qrChan, err := c.wa.GetQRChannel(ctx)
	if err != nil {
		return fmt.Errorf("failed to get qr channel: %w", err)
	}
	if err := c.wa.Connect(); err != nil {
		return fmt.Errorf("failed to connect to whatsapp: %w", err)
	}

	go c.watchQR(qrChan)
	return nil
}

// repair drops the dead connection and starts pairing again with a fresh QR code.
func (c *Client) repair() {
	if c.ctx.Err() != nil {
		return
	}
	c.wa.Disconnect()
	if err := c.Connect(c.ctx); err != nil {
		log.Error().Err(err).Msg("failed to restart whatsapp pairing")
	}
}

func (c *Client) watchQR(qrChan <-chan whatsmeow.QRChannelItem) {
	for item := range qrChan {
		switch item.Event {
		case whatsmeow.QRChannelEventCode:
			c.state.Apply(models.SignalQRIssued)
			log.Info().Dur("expires_in", item.Timeout).Msg("scan the QR code with WhatsApp to pair")
			qrterminal.GenerateHalfBlock(item.Code, qrterminal.L, c.qrOut)
		case whatsmeow.QRChannelEventError:
			log.Error().Err(item.Error).Msg("whatsapp pairing failed")
		default:
			log.Info().Str("event", item.Event).Msg("whatsapp qr channel event")
		}
	}
}

// Reply sends text to a chat.
func (c *Client) Reply(ctx context.Context, chat types.JID, text string) error {
	_, err := c.wa.SendMessage(ctx, chat, &waE2E.Message{
		Conversation: proto.String(text),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to %s: %w", chat.User, err)
	}
	return nil
}

// SendText sends text to a phone number. Non-digit characters in number are ignored.
func (c *Client) SendText(ctx context.Context, number, text string) error {
	if !c.state.IsReady() {
		return domainerrors.NewBotNotReadyError(c.state.Status().String())
	}

	jid, err := PhoneJID(number)
	if err != nil {
		return err
	}
	return c.Reply(ctx, jid, text)
}

// Close waits for in-flight replies, disconnects and closes the device store.
func (c *Client) Close() error {
	if !c.handler.Shutdown(c.drain) {
		log.Warn().Msg("some whatsapp replies were not delivered before shutdown")
	}
	c.wa.Disconnect()

	if err := c.container.Close(); err != nil {
		return fmt.Errorf("failed to close whatsapp store: %w", err)
	}
	return nil
}

// PhoneJID builds the user JID for a phone number.
func PhoneJID(number string) (types.JID, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)

	if digits == "" {
		return types.EmptyJID, domainerrors.NewInvalidInputError("number must contain digits", number)
	}
	return types.NewJID(digits, types.DefaultUserServer), nil
}
