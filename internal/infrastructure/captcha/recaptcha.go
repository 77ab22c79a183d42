package captcha

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	sharedConfig "rosmarino/internal/shared/config"
	"rosmarino/internal/shared/logger"
)

// Maximum response body size for the verification endpoint (64KB).
const maxVerifyResponseSize = 64 << 10

// verifyResponse mirrors the verification endpoint's reply.
type verifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	ErrorCodes []string `json:"error-codes"`
}

// RecaptchaVerifier posts tokens to a reCAPTCHA-shaped verification endpoint
// and applies an inclusive score threshold. A single round-trip, no retry;
// transport failures count as rejections.
type RecaptchaVerifier struct {
	secret     string
	verifyURL  string
	threshold  float64
	httpClient *http.Client
	logger     logger.Interface
}

func NewRecaptchaVerifier(cfg sharedConfig.CaptchaConfig, log logger.Interface) *RecaptchaVerifier {
	return &RecaptchaVerifier{
		secret:    cfg.Secret,
		verifyURL: cfg.VerifyURL,
		threshold: cfg.Threshold,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
		logger: log,
	}
}

func (v *RecaptchaVerifier) Verify(ctx context.Context, token string) error {
	if token == "" {
		return ErrTokenMissing
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		v.logger.Errorw("failed to create verification request", "error", err)
		return ErrVerificationFailed
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		v.logger.Warnw("verification request failed", "error", err)
		return ErrVerificationFailed
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxVerifyResponseSize))
	if err != nil {
		v.logger.Warnw("failed to read verification response", "error", err)
		return ErrVerificationFailed
	}

	var result verifyResponse
	if err := json.Unmarshal(body, &result); err != nil {
		v.logger.Warnw("failed to parse verification response", "error", err)
		return ErrVerificationFailed
	}

	if !result.Success {
		v.logger.Infow("verification rejected", "error_codes", result.ErrorCodes)
		return ErrVerificationFailed
	}

	// Threshold is inclusive: a score exactly at the threshold passes.
	if result.Score < v.threshold {
		v.logger.Infow("verification score below threshold",
			"score", result.Score,
			"threshold", v.threshold)
		return ErrVerificationFailed
	}

	return nil
}
