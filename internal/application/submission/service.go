// Package submission orchestrates the outbound pipeline for contact and
// newsletter submissions: validate, verify, enrich, dispatch. Stages run
// strictly in order and the pipeline short-circuits on the first failure, so
// nothing is ever sent for an invalid or unverified submission.
package submission

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	submissiondomain "rosmarino/internal/domain/submission"
	"rosmarino/internal/infrastructure/captcha"
	"rosmarino/internal/infrastructure/email"
	"rosmarino/internal/interfaces/dto"
	sharedConfig "rosmarino/internal/shared/config"
	"rosmarino/internal/shared/errors"
	"rosmarino/internal/shared/logger"
	"rosmarino/internal/shared/utils"
)

// User-facing messages. Deliberately generic: verification and transport
// internals are logged server-side only.
const (
	msgVerificationMissing = "Verification missing, please reload and try again"
	msgVerificationFailed  = "Verification failed, please try again"
	msgDispatchFailed      = "Unable to send your message right now, please try again later"
)

// Service runs the submission pipeline.
type Service struct {
	verifier captcha.Verifier
	sender   email.Sender
	emailCfg sharedConfig.EmailConfig
	locales  []string
	strip    *bluemonday.Policy
	logger   logger.Interface
}

func NewService(verifier captcha.Verifier, sender email.Sender, emailCfg sharedConfig.EmailConfig, locales []string, log logger.Interface) *Service {
	return &Service{
		verifier: verifier,
		sender:   sender,
		emailCfg: emailCfg,
		locales:  locales,
		strip:    bluemonday.StrictPolicy(),
		logger:   log,
	}
}

// SubmitContact validates, verifies, and dispatches a contact submission.
// The payload is ephemeral and never persisted.
func (s *Service) SubmitContact(ctx context.Context, req dto.ContactRequest) error {
	if err := utils.ValidateStruct(&req); err != nil {
		return err
	}

	// Honeypot: a filled website field means a bot. Report success so the
	// sender learns nothing, dispatch nothing.
	if req.Website != "" {
		s.logger.Infow("honeypot tripped, dropping submission", "subject", req.Subject)
		return nil
	}

	if err := s.verify(ctx, req.VerificationToken); err != nil {
		return err
	}

	contact := submissiondomain.Contact{
		Name:     s.strip.Sanitize(strings.TrimSpace(req.Name)),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:    strings.TrimSpace(req.Phone),
		Subject:  req.Subject,
		Message:  s.strip.Sanitize(strings.TrimSpace(req.Message)),
		Referral: req.Referral(),
	}

	msg := email.Message{
		From:    s.emailCfg.FromAddress,
		To:      s.emailCfg.ContactTo,
		ReplyTo: contact.Email,
		Subject: fmt.Sprintf("[%s] New contact form message", contact.Subject),
		Text:    contactBody(contact),
	}

	if err := s.dispatch(ctx, msg); err != nil {
		return err
	}

	s.logger.Infow("contact submission dispatched",
		"subject", contact.Subject,
		"email", utils.MaskEmail(contact.Email))
	return nil
}

// SubscribeNewsletter validates, verifies, and dispatches a newsletter signup.
func (s *Service) SubscribeNewsletter(ctx context.Context, req dto.NewsletterRequest) error {
	if err := s.validateNewsletter(req); err != nil {
		return err
	}

	if err := s.verify(ctx, req.VerificationToken); err != nil {
		return err
	}

	signup := submissiondomain.Newsletter{
		Email:  strings.ToLower(strings.TrimSpace(req.Email)),
		Locale: req.Locale,
	}

	msg := email.Message{
		From:    s.emailCfg.FromAddress,
		To:      s.emailCfg.NewsletterTo,
		Subject: "New newsletter subscription",
		Text:    fmt.Sprintf("Email: %s\nLocale: %s\n", signup.Email, signup.Locale),
	}

	if err := s.dispatch(ctx, msg); err != nil {
		return err
	}

	s.logger.Infow("newsletter subscription dispatched",
		"locale", signup.Locale,
		"email", utils.MaskEmail(signup.Email))
	return nil
}

// validateNewsletter runs the struct validation plus the locale check against
// the configured locale set, which is not known at compile time. The locale
// message joins the struct violations so all failures surface at once.
func (s *Service) validateNewsletter(req dto.NewsletterRequest) error {
	err := utils.ValidateStruct(&req)
	if req.Locale == "" || slices.Contains(s.locales, req.Locale) {
		return err
	}

	msg := fmt.Sprintf("locale must be one of [%s]", strings.Join(s.locales, " "))
	if appErr := errors.GetAppError(err); appErr != nil && appErr.Details != "" {
		return errors.NewValidationError("Validation failed", appErr.Details+"; "+msg)
	}
	return errors.NewValidationError("Validation failed", msg)
}

// verify maps verifier outcomes onto the two user-facing verification
// messages, leaking nothing else.
func (s *Service) verify(ctx context.Context, token string) error {
	err := s.verifier.Verify(ctx, token)
	if err == nil {
		return nil
	}
	if stderrors.Is(err, captcha.ErrTokenMissing) {
		return errors.NewVerificationError(msgVerificationMissing)
	}
	return errors.NewVerificationError(msgVerificationFailed)
}

// dispatch sends the message under the configured timeout. Transport detail
// is logged here and never reaches the caller.
func (s *Service) dispatch(ctx context.Context, msg email.Message) error {
	sendCtx, cancel := context.WithTimeout(ctx, s.emailCfg.SendTimeout())
	defer cancel()

	if err := s.sender.Send(sendCtx, msg); err != nil {
		s.logger.Errorw("failed to dispatch submission",
			"to", msg.To,
			"subject", msg.Subject,
			"error", err)
		return errors.NewTransportError(msgDispatchFailed)
	}
	return nil
}

func contactBody(contact submissiondomain.Contact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", contact.Name)
	fmt.Fprintf(&b, "Email: %s\n", contact.Email)
	if contact.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", contact.Phone)
	}
	fmt.Fprintf(&b, "Subject: %s\n\n", contact.Subject)
	fmt.Fprintf(&b, "%s\n", contact.Message)

	if len(contact.Referral) > 0 {
		b.WriteString("\n--\n")
		keys := make([]string, 0, len(contact.Referral))
		for k := range contact.Referral {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "%s: %s\n", k, contact.Referral[k])
		}
	}
	return b.String()
}
