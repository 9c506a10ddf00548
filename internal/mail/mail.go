package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shelfwise/bookstore/internal/checkout"
	"github.com/shelfwise/bookstore/internal/config"
)

// ErrSkipped marks deliveries suppressed by configuration. The worker
// records these as skipped, not sent: a disabled pipeline should leave
// an audit trail, not silently discard notifications.
var ErrSkipped = errors.New("purchase alert skipped")

// TransportSMTP and TransportAPI are the two delivery mechanisms.
const (
	TransportSMTP = "smtp"
	TransportAPI  = "api"
)

type Config struct {
	Enabled       bool
	To            string
	Transport     string
	SubjectPrefix string
	FromAddress   string
	FromName      string

	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	SMTPEncryption string
	SMTPTimeout    time.Duration

	APIKey      string
	APIEndpoint string
	APITimeout  time.Duration
}

func ConfigFromEnv() Config {
	username := config.String("MAIL_USERNAME", "")
	fromDefault := "no-reply@example.com"
	if username != "" {
		fromDefault = username
	}

	return Config{
		Enabled:       config.Bool("MAIL_ENABLED", true),
		To:            config.String("PURCHASE_ALERT_TO", ""),
		Transport:     strings.ToLower(config.String("MAIL_TRANSPORT", "")),
		SubjectPrefix: config.String("PURCHASE_ALERT_SUBJECT_PREFIX", "[New Purchase]"),
		FromAddress:   config.String("MAIL_FROM_ADDRESS", fromDefault),
		FromName:      config.String("MAIL_FROM_NAME", "Bookstore"),

		SMTPHost:       config.String("MAIL_HOST", ""),
		SMTPPort:       config.Int("MAIL_PORT", 587),
		SMTPUsername:   username,
		SMTPPassword:   config.String("MAIL_PASSWORD", ""),
		SMTPEncryption: strings.ToLower(config.String("MAIL_ENCRYPTION", "tls")),
		SMTPTimeout:    config.Duration("MAIL_TIMEOUT", 3*time.Second),

		APIKey:      config.String("MAIL_API_KEY", ""),
		APIEndpoint: config.String("MAIL_API_ENDPOINT", ""),
		APITimeout:  config.Duration("MAIL_API_TIMEOUT", 10*time.Second),
	}
}

// Message is a fully rendered mail ready for one transport.
type Message struct {
	FromAddress string
	FromName    string
	To          string
	Subject     string
	HTML        string
	Text        string
}

type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// PayloadContext identifies who placed the order inside the outbox
// payload.
type PayloadContext struct {
	UserType string `json:"user_type"`
	UserID   int64  `json:"user_id"`
}

// Dispatcher renders a purchase alert and hands it to exactly one
// transport.
type Dispatcher struct {
	cfg       Config
	transport Transport
}

func NewDispatcher(cfg Config) (*Dispatcher, error) {
	transport, err := selectTransport(cfg)
	if err != nil {
		return nil, err
	}
	return &Dispatcher{cfg: cfg, transport: transport}, nil
}

// NewDispatcherWithTransport exists for tests and custom transports.
func NewDispatcherWithTransport(cfg Config, transport Transport) *Dispatcher {
	return &Dispatcher{cfg: cfg, transport: transport}
}

// Transport selection: explicit configuration wins; otherwise the
// presence of an API key picks the HTTP transport, else SMTP.
func selectTransport(cfg Config) (Transport, error) {
	name := cfg.Transport
	if name == "" {
		if cfg.APIKey != "" {
			name = TransportAPI
		} else {
			name = TransportSMTP
		}
	}

	switch name {
	case TransportAPI:
		return newAPITransport(cfg)
	case TransportSMTP:
		return newSMTPTransport(cfg)
	default:
		return nil, fmt.Errorf("unknown mail transport %q", name)
	}
}

// SendPurchaseAlert renders and delivers the notification for one
// order. It returns ErrSkipped (wrapped) when delivery is disabled by
// configuration.
func (d *Dispatcher) SendPurchaseAlert(ctx context.Context, order checkout.Order, pc PayloadContext) error {
	if !d.cfg.Enabled {
		return fmt.Errorf("%w: MAIL_ENABLED=false", ErrSkipped)
	}
	if d.cfg.To == "" {
		return fmt.Errorf("%w: PURCHASE_ALERT_TO is empty", ErrSkipped)
	}

	subject := strings.TrimSpace(d.cfg.SubjectPrefix + " " + order.OrderNumber)
	msg := Message{
		FromAddress: d.cfg.FromAddress,
		FromName:    d.cfg.FromName,
		To:          d.cfg.To,
		Subject:     subject,
		HTML:        renderHTML(order, pc),
		Text:        renderText(order, pc),
	}

	if err := d.transport.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to deliver purchase alert for %s: %w", order.OrderNumber, err)
	}
	return nil
}
