package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends order emails over SMTP. Port 465 uses implicit TLS, any other
// port requires STARTTLS.
type Mailer struct {
	client *mail.Client
	from   string
}

var ErrMissingSender = errors.New("mail sender address is not configured")

func NewMailer(cfg SMTPConfig) (*Mailer, error) {
	if cfg.From == "" {
		return nil, ErrMissingSender
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(15 * time.Second),
	}
	if cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &Mailer{client: client, from: cfg.From}, nil
}

func (m *Mailer) OrderPlaced(ctx context.Context, msg OrderPlaced) error {
	r, err := renderOrderPlaced(msg)
	if err != nil {
		return err
	}
	return m.send(ctx, msg.To, r)
}

func (m *Mailer) OrderStatusChanged(ctx context.Context, msg StatusChanged) error {
	r, err := renderStatusChanged(msg)
	if err != nil {
		return err
	}
	return m.send(ctx, msg.To, r)
}

func (m *Mailer) send(ctx context.Context, to Recipient, r rendered) error {
	if to.Email == "" {
		return errors.New("recipient has no email address")
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(brandName, m.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.AddToFormat(to.DisplayName(), to.Email); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(r.Subject)
	msg.SetBodyString(mail.TypeTextPlain, r.Text)
	msg.AddAlternativeString(mail.TypeTextHTML, r.HTML)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to.Email, err)
	}
	return nil
}
