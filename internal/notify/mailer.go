package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Address is a named mailbox.
type Address struct {
	Name  string
	Email string
}

// Message is a fully rendered outbound email.
type Message struct {
	From    Address
	To      Address
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers rendered messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// DefaultSendGridHost is the SendGrid API base URL.
const DefaultSendGridHost = "https://api.sendgrid.com"

type sendGridMailer struct {
	apiKey string
	host   string
	logger zerolog.Logger
}

// NewSendGridMailer creates a mailer that posts to the SendGrid v3 mail API.
// An empty host uses DefaultSendGridHost.
func NewSendGridMailer(apiKey, host string, logger zerolog.Logger) Mailer {
	if host == "" {
		host = DefaultSendGridHost
	}
	return &sendGridMailer{
		apiKey: apiKey,
		host:   host,
		logger: logger.With().Str("component", "sendgrid-mailer").Logger(),
	}
}

func (m *sendGridMailer) Send(ctx context.Context, msg Message) error {
	from := mail.NewEmail(msg.From.Name, msg.From.Email)
	to := mail.NewEmail(msg.To.Name, msg.To.Email)
	email := mail.NewSingleEmail(from, msg.Subject, to, msg.Text, msg.HTML)

	req := sendgrid.GetRequest(m.apiKey, "/v3/mail/send", m.host)
	req.Method = http.MethodPost
	req.Body = mail.GetRequestBody(email)

	resp, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to call sendgrid: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("sendgrid rejected message: status %d: %s", resp.StatusCode, resp.Body)
	}

	m.logger.Debug().
		Str("to", msg.To.Email).
		Str("subject", msg.Subject).
		Int("status", resp.StatusCode).
		Msg("email accepted by sendgrid")
	return nil
}

type logMailer struct {
	logger zerolog.Logger
}

// NewLogMailer returns a mailer that only logs messages. It is used when mail is disabled.
func NewLogMailer(logger zerolog.Logger) Mailer {
	return &logMailer{logger: logger.With().Str("component", "log-mailer").Logger()}
}

func (m *logMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info().
		Str("to", msg.To.Email).
		Str("subject", msg.Subject).
		Msg("mail disabled, message not sent")
	return nil
}
