// Package email implements the outbound mail transport for contact and
// newsletter submissions.
package email

import "context"

// Message is one outbound mail.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Text    string
}

// Sender dispatches a message once. No retries; a failed send is terminal for
// that submission attempt.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
