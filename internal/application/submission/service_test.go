package submission

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosmarino/internal/infrastructure/captcha"
	"rosmarino/internal/infrastructure/email"
	"rosmarino/internal/interfaces/dto"
	"rosmarino/internal/interfaces/http/handlers/testutil"
	sharedConfig "rosmarino/internal/shared/config"
	"rosmarino/internal/shared/errors"
)

type mockVerifier struct {
	verifyFn func(ctx context.Context, token string) error
	calls    int
}

func (m *mockVerifier) Verify(ctx context.Context, token string) error {
	m.calls++
	if m.verifyFn != nil {
		return m.verifyFn(ctx, token)
	}
	return nil
}

type mockSender struct {
	sendFn func(ctx context.Context, msg email.Message) error
	sent   []email.Message
}

func (m *mockSender) Send(ctx context.Context, msg email.Message) error {
	m.sent = append(m.sent, msg)
	if m.sendFn != nil {
		return m.sendFn(ctx, msg)
	}
	return nil
}

func testEmailConfig() sharedConfig.EmailConfig {
	return sharedConfig.EmailConfig{
		FromAddress:   "noreply@rosmarino.local",
		ContactTo:     "info@rosmarino.local",
		NewsletterTo:  "newsletter@rosmarino.local",
		SendTimeoutMS: 1000,
	}
}

func newTestService(verifier captcha.Verifier, sender email.Sender) *Service {
	return NewService(verifier, sender, testEmailConfig(), []string{"it", "en", "de"}, testutil.NewMockLogger())
}

func validContact() dto.ContactRequest {
	return dto.ContactRequest{
		Name:              "Maria Rossi",
		Email:             "Maria@Example.com",
		Subject:           "reservation",
		Message:           "Table for four on Saturday evening, please.",
		VerificationToken: "token",
	}
}

func TestSubmitContact_Dispatches(t *testing.T) {
	verifier := &mockVerifier{}
	sender := &mockSender{}
	svc := newTestService(verifier, sender)

	err := svc.SubmitContact(context.Background(), validContact())

	require.NoError(t, err)
	assert.Equal(t, 1, verifier.calls)
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, "info@rosmarino.local", msg.To)
	assert.Equal(t, "maria@example.com", msg.ReplyTo)
	assert.Equal(t, "[reservation] New contact form message", msg.Subject)
	assert.Contains(t, msg.Text, "Maria Rossi")
	assert.Contains(t, msg.Text, "Table for four")
}

func TestSubmitContact_InvalidPayloadSkipsVerifierAndSender(t *testing.T) {
	verifier := &mockVerifier{}
	sender := &mockSender{}
	svc := newTestService(verifier, sender)

	req := validContact()
	req.Message = "short"

	err := svc.SubmitContact(context.Background(), req)

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, 0, verifier.calls)
	assert.Empty(t, sender.sent)
}

func TestSubmitContact_MissingToken(t *testing.T) {
	verifier := &mockVerifier{verifyFn: func(ctx context.Context, token string) error {
		return captcha.ErrTokenMissing
	}}
	sender := &mockSender{}
	svc := newTestService(verifier, sender)

	req := validContact()
	req.VerificationToken = ""

	err := svc.SubmitContact(context.Background(), req)

	require.Error(t, err)
	assert.True(t, errors.IsVerificationError(err))
	assert.Equal(t, msgVerificationMissing, errors.GetAppError(err).Message)
	assert.Empty(t, sender.sent)
}

func TestSubmitContact_VerificationRejected(t *testing.T) {
	verifier := &mockVerifier{verifyFn: func(ctx context.Context, token string) error {
		return captcha.ErrVerificationFailed
	}}
	sender := &mockSender{}
	svc := newTestService(verifier, sender)

	err := svc.SubmitContact(context.Background(), validContact())

	require.Error(t, err)
	assert.True(t, errors.IsVerificationError(err))
	assert.Equal(t, msgVerificationFailed, errors.GetAppError(err).Message)
	assert.Empty(t, sender.sent)
}

func TestSubmitContact_HoneypotDropsSilently(t *testing.T) {
	verifier := &mockVerifier{}
	sender := &mockSender{}
	svc := newTestService(verifier, sender)

	req := validContact()
	req.Website = "https://spam.example.com"

	err := svc.SubmitContact(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, 0, verifier.calls)
	assert.Empty(t, sender.sent)
}

func TestSubmitContact_TransportFailureIsGeneric(t *testing.T) {
	sender := &mockSender{sendFn: func(ctx context.Context, msg email.Message) error {
		return fmt.Errorf("dial tcp: connection refused to smtp.internal:587")
	}}
	svc := newTestService(&mockVerifier{}, sender)

	err := svc.SubmitContact(context.Background(), validContact())

	require.Error(t, err)
	assert.True(t, errors.IsTransportError(err))
	appErr := errors.GetAppError(err)
	assert.Equal(t, msgDispatchFailed, appErr.Message)
	assert.NotContains(t, appErr.Error(), "smtp.internal")
}

func TestSubmitContact_StripsMarkupAndWhitespace(t *testing.T) {
	sender := &mockSender{}
	svc := newTestService(&mockVerifier{}, sender)

	req := validContact()
	req.Name = "  Maria <script>alert(1)</script> Rossi  "
	req.Message = "Hello <b>there</b>, table for two please."

	require.NoError(t, svc.SubmitContact(context.Background(), req))
	require.Len(t, sender.sent, 1)
	assert.NotContains(t, sender.sent[0].Text, "<script>")
	assert.NotContains(t, sender.sent[0].Text, "<b>")
}

func TestSubmitContact_IncludesReferralFields(t *testing.T) {
	sender := &mockSender{}
	svc := newTestService(&mockVerifier{}, sender)

	req := validContact()
	req.ReferralSource = "partnerA"
	req.ReferralCampaign = "spring-menu"

	require.NoError(t, svc.SubmitContact(context.Background(), req))
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].Text, "referral_source: partnerA")
	assert.Contains(t, sender.sent[0].Text, "referral_campaign: spring-menu")
}

func TestSubscribeNewsletter_Dispatches(t *testing.T) {
	sender := &mockSender{}
	svc := newTestService(&mockVerifier{}, sender)

	err := svc.SubscribeNewsletter(context.Background(), dto.NewsletterRequest{
		Email:             "Maria@Example.com",
		Locale:            "de",
		VerificationToken: "token",
	})

	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "newsletter@rosmarino.local", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].Text, "maria@example.com")
	assert.Contains(t, sender.sent[0].Text, "de")
}

func TestSubscribeNewsletter_UnsupportedLocale(t *testing.T) {
	verifier := &mockVerifier{}
	sender := &mockSender{}
	svc := newTestService(verifier, sender)

	err := svc.SubscribeNewsletter(context.Background(), dto.NewsletterRequest{
		Email:  "maria@example.com",
		Locale: "fr",
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, errors.GetAppError(err).Details, "locale must be one of [it en de]")
	assert.Equal(t, 0, verifier.calls)
	assert.Empty(t, sender.sent)
}

func TestSubscribeNewsletter_LocaleFollowsConfiguredSet(t *testing.T) {
	sender := &mockSender{}
	svc := NewService(&mockVerifier{}, sender, testEmailConfig(), []string{"it", "en", "de", "fr"}, testutil.NewMockLogger())

	err := svc.SubscribeNewsletter(context.Background(), dto.NewsletterRequest{
		Email:  "marie@example.com",
		Locale: "fr",
	})

	assert.NoError(t, err)
	assert.Len(t, sender.sent, 1)
}

func TestSubscribeNewsletter_CollectsEmailAndLocaleViolations(t *testing.T) {
	svc := newTestService(&mockVerifier{}, &mockSender{})

	err := svc.SubscribeNewsletter(context.Background(), dto.NewsletterRequest{
		Email:  "nope",
		Locale: "fr",
	})

	require.Error(t, err)
	details := errors.GetAppError(err).Details
	assert.Contains(t, details, "email must be a valid email address")
	assert.Contains(t, details, "locale must be one of [it en de]")
}

func TestSubscribeNewsletter_InvalidEmailSkipsVerifierAndSender(t *testing.T) {
	verifier := &mockVerifier{}
	sender := &mockSender{}
	svc := newTestService(verifier, sender)

	err := svc.SubscribeNewsletter(context.Background(), dto.NewsletterRequest{Email: "nope"})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, 0, verifier.calls)
	assert.Empty(t, sender.sent)
}
