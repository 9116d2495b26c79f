// Package email sends transactional emails.
//
// Bodies are rendered from HTML templates embedded in the binary. Delivery
// goes through one of two providers chosen by configuration: an SMTP relay
// (gomail) or the Resend HTTP API.
package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/deppfellow/petcare-api/internal/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

// Message is a rendered email ready for delivery.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// sender delivers a rendered message through a provider.
type sender interface {
	Send(ctx context.Context, msg Message) error
}

// Client renders templates and hands the result to the configured provider.
type Client struct {
	sender  sender
	from    string
	timeout time.Duration
	logger  *zerolog.Logger
}

// NewClient creates a Client for the provider named in cfg.Email.
func NewClient(cfg *config.Config, logger *zerolog.Logger) (*Client, error) {
	var s sender
	switch cfg.Email.Provider {
	case "smtp":
		s = newSMTPSender(cfg.Email)
	case "resend":
		s = newResendSender(cfg.Email)
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Email.Provider)
	}

	return newClient(s, cfg.Email, logger), nil
}

func newClient(s sender, cfg config.EmailConfig, logger *zerolog.Logger) *Client {
	from := cfg.FromAddress
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress)
	}
	return &Client{
		sender:  s,
		from:    from,
		timeout: cfg.SendTimeout,
		logger:  logger,
	}
}

// SendEmail renders templateName with data and sends it to a single
// recipient. The send is bounded by the configured send timeout.
func (c *Client) SendEmail(ctx context.Context, to, subject string, templateName Template, data any) error {
	body, err := render(templateName, data)
	if err != nil {
		return err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	err = c.sender.Send(ctx, Message{
		From:    c.from,
		To:      to,
		Subject: subject,
		HTML:    body,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to send %s email", templateName)
	}

	c.logger.Info().
		Str("template", string(templateName)).
		Str("to", to).
		Dur("duration", time.Since(start)).
		Msg("email sent")

	return nil
}

func render(templateName Template, data any) (string, error) {
	tmpl, err := template.ParseFS(templateFS, fmt.Sprintf("templates/%s.html", templateName))
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}

	return body.String(), nil
}
