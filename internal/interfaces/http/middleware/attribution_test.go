package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attributiondomain "rosmarino/internal/domain/attribution"
	"rosmarino/internal/interfaces/http/handlers/testutil"
)

type mockStore struct {
	record  *attributiondomain.Record
	written []*attributiondomain.Record
	cleared int
}

func (m *mockStore) Read(c *gin.Context) *attributiondomain.Record { return m.record }

func (m *mockStore) Write(c *gin.Context, rec *attributiondomain.Record) {
	m.written = append(m.written, rec)
}

func (m *mockStore) Clear(c *gin.Context) { m.cleared++ }

func runAttribution(t *testing.T, store *mockStore, method, target string) {
	t.Helper()
	c, _ := testutil.NewTestContext(method, target, nil)
	Attribution(store)(c)
}

func TestAttribution_CapturesRefParameter(t *testing.T) {
	store := &mockStore{}

	runAttribution(t, store, http.MethodGet, "/menu?ref=partnerA")

	require.Len(t, store.written, 1)
	assert.Equal(t, "partnerA", store.written[0].Source)
	assert.Equal(t, "/menu", store.written[0].LandingPage)
}

func TestAttribution_CapturesUTMSource(t *testing.T) {
	store := &mockStore{}

	runAttribution(t, store, http.MethodGet, "/?utm_source=newsletter&utm_campaign=spring-menu")

	require.Len(t, store.written, 1)
	assert.Equal(t, "newsletter", store.written[0].Source)
	assert.Equal(t, "spring-menu", store.written[0].UTM.Campaign)
}

func TestAttribution_FirstWriteWins(t *testing.T) {
	store := &mockStore{record: &attributiondomain.Record{Source: "partnerA"}}

	runAttribution(t, store, http.MethodGet, "/?utm_source=partnerB")

	assert.Empty(t, store.written)
}

func TestAttribution_NoRecognizedParameter(t *testing.T) {
	store := &mockStore{}

	runAttribution(t, store, http.MethodGet, "/menu?page=2")

	assert.Empty(t, store.written)
}

func TestAttribution_IgnoresNonGETRequests(t *testing.T) {
	store := &mockStore{}

	runAttribution(t, store, http.MethodPost, "/api/contact?ref=partnerA")

	assert.Empty(t, store.written)
}
