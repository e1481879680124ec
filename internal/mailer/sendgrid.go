package mailer

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendGridMailer struct {
	fromEmail string
	sandbox   bool
	backoff   time.Duration
	client    *sendgrid.Client
}

func NewSendgrid(apiKey, fromEmail string, sandbox bool) *SendGridMailer {
	client := sendgrid.NewSendClient(apiKey)

	return &SendGridMailer{
		fromEmail: fromEmail,
		sandbox:   sandbox,
		backoff:   time.Second,
		client:    client,
	}
}

func (m *SendGridMailer) Send(ctx context.Context, templateFile, email string, data any) (int, error) {
	msg, err := render(templateFile, data)
	if err != nil {
		return -1, fmt.Errorf("failed to render %s: %w", templateFile, err)
	}

	from := mail.NewEmail(FromName, m.fromEmail)
	to := mail.NewEmail("", email)
	message := mail.NewSingleEmail(from, msg.subject, to, msg.plainBody, msg.htmlBody)
	message.SetMailSettings(&mail.MailSettings{
		SandboxMode: &mail.Setting{Enable: &m.sandbox},
	})

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		response, err := m.client.SendWithContext(ctx, message)
		if err == nil && response.StatusCode < 400 {
			return response.StatusCode, nil
		}
		if err == nil {
			err = fmt.Errorf("sendgrid returned %d: %s", response.StatusCode, response.Body)
			// bad key, bad recipient and the like fail the same way every time
			if isPermanent(response.StatusCode) {
				return response.StatusCode, err
			}
		}
		lastErr = err

		if i == maxRetries-1 {
			break
		}

		// exponential backoff
		select {
		case <-ctx.Done():
			return -1, ctx.Err()
		case <-time.After(m.backoff * time.Duration(1<<i)):
		}
	}

	return -1, fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}

func isPermanent(status int) bool {
	return status >= 400 && status < 500 && status != http.StatusTooManyRequests
}
