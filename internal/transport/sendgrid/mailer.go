// Package sendgrid delivers subscription notification emails.
package sendgrid

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends plain-text email through the SendGrid API.
type Mailer struct {
	client     *sendgrid.Client
	senderName string
	senderAddr string
}

// New creates a Mailer. senderAddr must be a verified SendGrid sender.
func New(apiKey, senderName, senderAddr string) *Mailer {
	return &Mailer{
		client:     sendgrid.NewSendClient(apiKey),
		senderName: senderName,
		senderAddr: senderAddr,
	}
}

// Send delivers one message to a single recipient.
func (m *Mailer) Send(to, subject, body string) error {
	from := mail.NewEmail(m.senderName, m.senderAddr)
	rcpt := mail.NewEmail("", to)

	msg := mail.NewSingleEmail(from, subject, rcpt, body, "")

	resp, err := m.client.Send(msg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d", resp.StatusCode)
	}
	return nil
}

// HealthCheck reports whether the mailer is usable. SendGrid has no ping
// endpoint, so this only verifies the client is configured.
func (m *Mailer) HealthCheck(_ context.Context) error {
	if m.senderAddr == "" {
		return fmt.Errorf("sendgrid sender address not configured")
	}
	return nil
}
