package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	sharedConfig "rosmarino/internal/shared/config"
)

// SMTPSender sends mail through a configured SMTP transport via gomail.
type SMTPSender struct {
	dialer   *gomail.Dialer
	fromName string
}

func NewSMTPSender(cfg sharedConfig.EmailConfig) *SMTPSender {
	return &SMTPSender{
		dialer:   gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		fromName: cfg.FromName,
	}
}

// Send dispatches the message, bounded by the context deadline. gomail's
// DialAndSend has no context support, so it runs in a goroutine and the
// slower of the two wins; an abandoned dial finishes in the background.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", msg.From, s.fromName)
	m.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("email send aborted: %w", ctx.Err())
	}
}
