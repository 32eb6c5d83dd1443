package mailer

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/fieldpoint/academy/internal/metrics"
	"github.com/resend/resend-go/v2"
)

// Mailer defines a high-level interface for sending account emails.
// This decouples the rest of the application from the specific email provider (e.g., Resend).
type Mailer interface {
	SendInvite(toEmail, toName, loginURL string) error
}

type resendMailer struct {
	client  *resend.Client
	from    string
	metrics metrics.Metrics
}

// NewResend creates a Resend-backed mailer.
func NewResend(apiKey, from string, metricsSvc metrics.Metrics) Mailer {
	return &resendMailer{
		client:  resend.NewClient(apiKey),
		from:    from,
		metrics: metricsSvc,
	}
}

// SendInvite emails a newly created staff user a link to sign in.
func (m *resendMailer) SendInvite(toEmail, toName, loginURL string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{toEmail},
		Subject: "You've been added to the academy admin",
		Html: fmt.Sprintf(
			"<p>Hi %s,</p><p>An account has been created for you. Sign in here:</p><p><a href=%q>%s</a></p>",
			toName, loginURL, loginURL),
	}

	sent, err := m.client.Emails.Send(params)
	if err != nil {
		m.metrics.IncInviteEmailsFailed()
		log.Error("Failed to send invite email", "error", err, "to", toEmail)
		return fmt.Errorf("failed to send invite email: %w", err)
	}
	m.metrics.IncInviteEmailsSent()
	log.Info("Sent invite email", "to", toEmail, "messageID", sent.Id)
	return nil
}
