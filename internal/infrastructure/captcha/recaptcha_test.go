package captcha

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosmarino/internal/interfaces/http/handlers/testutil"
	sharedConfig "rosmarino/internal/shared/config"
)

func newTestVerifier(t *testing.T, handler http.HandlerFunc) *RecaptchaVerifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewRecaptchaVerifier(sharedConfig.CaptchaConfig{
		Mode:      sharedConfig.CaptchaModeEnforce,
		Secret:    "test-secret",
		VerifyURL: srv.URL,
		Threshold: 0.5,
		TimeoutMS: 1000,
	}, testutil.NewMockLogger())
}

func scoreHandler(success bool, score float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"success": %t, "score": %g}`, success, score)
	}
}

func TestRecaptchaVerifier_ScoreAboveThreshold(t *testing.T) {
	v := newTestVerifier(t, scoreHandler(true, 0.9))

	assert.NoError(t, v.Verify(context.Background(), "token"))
}

func TestRecaptchaVerifier_ScoreAtThresholdPasses(t *testing.T) {
	v := newTestVerifier(t, scoreHandler(true, 0.5))

	assert.NoError(t, v.Verify(context.Background(), "token"))
}

func TestRecaptchaVerifier_ScoreBelowThreshold(t *testing.T) {
	v := newTestVerifier(t, scoreHandler(true, 0.499))

	err := v.Verify(context.Background(), "token")

	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestRecaptchaVerifier_RejectedToken(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": false, "error-codes": ["invalid-input-response"]}`)
	})

	err := v.Verify(context.Background(), "token")

	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestRecaptchaVerifier_MissingToken(t *testing.T) {
	v := newTestVerifier(t, scoreHandler(true, 0.9))

	err := v.Verify(context.Background(), "")

	assert.ErrorIs(t, err, ErrTokenMissing)
}

func TestRecaptchaVerifier_TransportFailure(t *testing.T) {
	v := NewRecaptchaVerifier(sharedConfig.CaptchaConfig{
		Mode:      sharedConfig.CaptchaModeEnforce,
		Secret:    "test-secret",
		VerifyURL: "http://127.0.0.1:1",
		Threshold: 0.5,
		TimeoutMS: 200,
	}, testutil.NewMockLogger())

	err := v.Verify(context.Background(), "token")

	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestRecaptchaVerifier_MalformedResponse(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json")
	})

	err := v.Verify(context.Background(), "token")

	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestRecaptchaVerifier_SendsSecretAndToken(t *testing.T) {
	var gotSecret, gotResponse string
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotSecret = r.PostForm.Get("secret")
		gotResponse = r.PostForm.Get("response")
		fmt.Fprint(w, `{"success": true, "score": 0.9}`)
	})

	require.NoError(t, v.Verify(context.Background(), "the-token"))
	assert.Equal(t, "test-secret", gotSecret)
	assert.Equal(t, "the-token", gotResponse)
}

func TestNoopVerifier_AcceptsEverything(t *testing.T) {
	assert.NoError(t, NoopVerifier{}.Verify(context.Background(), ""))
	assert.NoError(t, NoopVerifier{}.Verify(context.Background(), "anything"))
}
