// Package notify renders and sends transactional email.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/horsh321/teem-server/internal/config"

	"github.com/rs/zerolog"
)

// Result reports the outcome of a best-effort send to the API client.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrWrongPath is returned when a kind is sent through the path that does not
// match its strictness.
var ErrWrongPath = errors.New("notification kind sent through the wrong path")

const (
	msgSent   = "Email sent successfully"
	msgFailed = "Failed to send email"
)

// Notifier renders notification templates and hands them to a Mailer.
type Notifier struct {
	mailer  Mailer
	from    Address
	product string
	link    string
	logger  zerolog.Logger
}

// NewNotifier creates a notifier sending through mailer.
func NewNotifier(mailer Mailer, cfg config.MailConfig, logger zerolog.Logger) *Notifier {
	return &Notifier{
		mailer:  mailer,
		from:    Address{Name: cfg.FromName, Email: cfg.FromAddress},
		product: cfg.ProductName,
		link:    cfg.ClientURL,
		logger:  logger.With().Str("component", "notifier").Logger(),
	}
}

// Notify sends a best-effort kind to the recipient and never fails: a send
// error is logged and reported in the Result. Strict kinds are refused.
func (n *Notifier) Notify(ctx context.Context, kind Kind, to Address, data Data) Result {
	var err error
	if kind.Strict() {
		err = fmt.Errorf("%w: %s must use Send", ErrWrongPath, kind)
	} else {
		err = n.deliver(ctx, kind, to, data)
	}
	if err != nil {
		n.logger.Warn().
			Err(err).
			Str("kind", string(kind)).
			Str("to", to.Email).
			Msg("notification not sent")
		return Result{Success: false, Message: msgFailed}
	}
	return Result{Success: true, Message: msgSent}
}

// Send renders and sends a strict kind, returning any failure. Best-effort
// kinds are refused.
func (n *Notifier) Send(ctx context.Context, kind Kind, to Address, data Data) error {
	if !kind.Strict() {
		return fmt.Errorf("%w: %s must use Notify", ErrWrongPath, kind)
	}
	return n.deliver(ctx, kind, to, data)
}

func (n *Notifier) deliver(ctx context.Context, kind Kind, to Address, data Data) error {
	r, err := render(kind, to.Name, data, n.product, n.link)
	if err != nil {
		return err
	}

	return n.mailer.Send(ctx, Message{
		From:    n.from,
		To:      to,
		Subject: r.Subject,
		HTML:    r.HTML,
		Text:    r.Text,
	})
}
