package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

type smtpTransport struct {
	cfg Config
}

func newSMTPTransport(cfg Config) (*smtpTransport, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("MAIL_HOST is required for the smtp transport")
	}
	return &smtpTransport{cfg: cfg}, nil
}

// Send performs a synchronous SMTP delivery. Any protocol-level failure
// (and a timeout counts as one) surfaces as an error and flows into the
// worker's retry path.
func (t *smtpTransport) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMsg()
	if err := m.FromFormat(msg.FromName, msg.FromAddress); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Text)
	m.AddAlternativeString(gomail.TypeTextHTML, msg.HTML)

	opts := []gomail.Option{
		gomail.WithPort(t.cfg.SMTPPort),
		gomail.WithTimeout(t.cfg.SMTPTimeout),
	}
	if t.cfg.SMTPEncryption == "ssl" {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	}
	if t.cfg.SMTPUsername != "" || t.cfg.SMTPPassword != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(t.cfg.SMTPUsername),
			gomail.WithPassword(t.cfg.SMTPPassword),
		)
	}

	client, err := gomail.NewClient(t.cfg.SMTPHost, opts...)
	if err != nil {
		return fmt.Errorf("failed to build smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp delivery failed: %w", err)
	}
	return nil
}
