package email

import (
	"context"

	"rosmarino/internal/shared/logger"
	"rosmarino/internal/shared/utils/logutil"
)

// Logged bodies are capped so one oversized submission cannot flood the log.
const maxLoggedBodyLen = 500

// LogSender writes messages to the operational log instead of sending them.
// It is the dispatcher for environments without SMTP configured (local
// development, previews); production is expected to configure a transport.
type LogSender struct {
	logger logger.Interface
}

func NewLogSender(log logger.Interface) *LogSender {
	return &LogSender{logger: log}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.Infow("no mail transport configured, logging submission",
		"from", msg.From,
		"to", msg.To,
		"reply_to", msg.ReplyTo,
		"subject", msg.Subject,
		"body", logutil.TruncateForLog(msg.Text, maxLoggedBodyLen))
	return nil
}
