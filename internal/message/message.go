// internal/message/message.go
//
// Outbound e-mail.
//
// Context
//   The CMS sends one kind of mail today: the public contact form relays a
//   visitor's message to the site owner.  Email is the payload; SMTP
//   delivers it through wneessen/go-mail.  Callers depend on the Sender
//   interface so tests can capture mail instead of dialling a relay.
//
// Style
//   Two-space sentence spacing, Oxford comma, concise inline notes.
//
//------------------------------------------------------------------------------

package message

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Email represents one outbound message.  HTML selects the body type.
type Email struct {
	From    string
	To      []string
	Subject string
	Body    string
	HTML    bool
}

// Sender delivers an Email.
type Sender interface {
	Send(ctx context.Context, msg Email) error
}

// SMTPConfig holds relay settings.  Username empty disables SMTP AUTH.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	TLS      bool
}

// SMTP sends through one relay.  A fresh connection is dialled per message;
// contact-form volume does not justify pooling.
type SMTP struct {
	cfg SMTPConfig
}

// NewSMTP returns an SMTP sender for cfg.
func NewSMTP(cfg SMTPConfig) *SMTP {
	return &SMTP{cfg: cfg}
}

// Send builds a MIME message and delivers it.
func (s *SMTP) Send(ctx context.Context, e Email) error {
	msg, err := build(e)
	if err != nil {
		return err
	}

	opts := []mail.Option{mail.WithPort(s.cfg.Port)}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
		)
	}
	if !s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	c, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	zap.S().Debugw("sending mail", "subject", e.Subject, "to", e.To, "host", s.cfg.Host)
	if err := c.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// ErrNoRelay is returned by Unconfigured.
var ErrNoRelay = errors.New("no smtp relay configured")

// Unconfigured is the Sender used when mail.host is empty.  Every send
// fails, so the contact form reports the relay as unavailable.
type Unconfigured struct{}

// Send always returns ErrNoRelay.
func (Unconfigured) Send(context.Context, Email) error { return ErrNoRelay }

func build(e Email) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(e.From); err != nil {
		return nil, fmt.Errorf("from %q: %w", e.From, err)
	}
	if err := msg.To(e.To...); err != nil {
		return nil, fmt.Errorf("to %v: %w", e.To, err)
	}
	msg.Subject(e.Subject)

	ct := mail.TypeTextPlain
	if e.HTML {
		ct = mail.TypeTextHTML
	}
	msg.SetBodyString(ct, e.Body)
	msg.SetCharset(mail.CharsetUTF8)
	return msg, nil
}
