// Package captcha verifies proof-of-humanity tokens against an external
// verification endpoint.
package captcha

import (
	"context"
	"errors"
)

// ErrTokenMissing is returned when verification is active but the submission
// carries no token.
var ErrTokenMissing = errors.New("verification token missing")

// ErrVerificationFailed is returned for rejected tokens, scores below the
// acceptance threshold, and transport-level failures. The distinction is
// logged server-side but deliberately not exposed.
var ErrVerificationFailed = errors.New("verification failed")

// Verifier checks a proof-of-humanity token. A nil error means the submitter
// passed verification.
type Verifier interface {
	Verify(ctx context.Context, token string) error
}

// NoopVerifier trusts every submission. Used only when captcha.mode is
// explicitly "off"; the bypass is logged once at wiring time.
type NoopVerifier struct{}

func (NoopVerifier) Verify(ctx context.Context, token string) error {
	return nil
}
