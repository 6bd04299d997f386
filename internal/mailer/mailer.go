// Package mailer sends the registration confirmation message over SMTP.
// Transport failures are always returned as values, never panics; the
// registration workflow treats them as a recorded non-event.
package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"campaign/internal/participant/models"
)

// Config holds the SMTP transport settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTP dispatches confirmation emails through a configured SMTP relay.
type SMTP struct {
	client   *mail.Client
	from     string
	fromName string
}

// NewSMTP builds the dispatcher. The connection is dialed per send; Verify
// probes connectivity without sending.
func NewSMTP(cfg Config) (*SMTP, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTP{client: client, from: cfg.From, fromName: cfg.FromName}, nil
}

// SendConfirmation renders and submits the confirmation message for a freshly
// registered participant. It returns the message ID on success.
func (s *SMTP) SendConfirmation(ctx context.Context, p *models.Participant) (string, error) {
	body, err := RenderConfirmation(p)
	if err != nil {
		return "", err
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.from); err != nil {
		return "", fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(p.Email); err != nil {
		return "", fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(Subject)
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextHTML, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return "", fmt.Errorf("send confirmation: %w", err)
	}
	return msg.GetMessageID(), nil
}

// Verify probes SMTP connectivity for the liveness endpoint, independent of
// any send.
func (s *SMTP) Verify(ctx context.Context) error {
	if err := s.client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}
	return nil
}

// Noop is a dispatcher that reports success without sending anything. Used in
// dev mode when no SMTP relay is configured.
type Noop struct{}

func (Noop) SendConfirmation(_ context.Context, p *models.Participant) (string, error) {
	return "noop-" + p.ID.String(), nil
}

func (Noop) Verify(context.Context) error { return nil }
