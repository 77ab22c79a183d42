package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"rosmarino/internal/interfaces/http/handlers/testutil"
)

func TestLogSender_AlwaysSucceeds(t *testing.T) {
	sender := NewLogSender(testutil.NewMockLogger())

	err := sender.Send(context.Background(), Message{
		From:    "noreply@rosmarino.local",
		To:      "info@rosmarino.local",
		Subject: "[reservation] New contact form message",
		Text:    "Name: Maria Rossi\n",
	})

	assert.NoError(t, err)
}
