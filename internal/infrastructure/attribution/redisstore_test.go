package attribution

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attributiondomain "rosmarino/internal/domain/attribution"
	"rosmarino/internal/interfaces/http/handlers/testutil"
	sharedConfig "rosmarino/internal/shared/config"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

func newRedisStore(client *redis.Client) *RedisStore {
	return NewRedisStore(client, sharedConfig.AttributionConfig{
		Store: sharedConfig.AttributionStoreRedis,
	}, testutil.NewMockLogger())
}

func TestRedisStore_WriteReadRoundTrip(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := newRedisStore(client)
	rec := &attributiondomain.Record{
		Source:      "partnerA",
		CapturedAt:  time.Now().Truncate(time.Second),
		LandingPage: "/menu",
	}

	writeCtx, w := testutil.NewTestContext(http.MethodGet, "/", nil)
	store.Write(writeCtx, rec)

	// Write mints an anonymous session cookie for the visitor.
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "rsm_sid", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)

	// The record is stored under the minted session id with the record TTL.
	key := "attribution:" + cookies[0].Value
	require.True(t, mr.Exists(key))
	assert.Equal(t, attributiondomain.TTL, mr.TTL(key))

	readCtx, _ := testutil.NewTestContext(http.MethodGet, "/", nil)
	for _, cookie := range cookies {
		readCtx.Request.AddCookie(cookie)
	}
	got := store.Read(readCtx)

	require.NotNil(t, got)
	assert.Equal(t, "partnerA", got.Source)
	assert.Equal(t, "/menu", got.LandingPage)
}

func TestRedisStore_ReadWithoutSessionCookie(t *testing.T) {
	_, client := setupTestRedis(t)
	store := newRedisStore(client)

	c, _ := testutil.NewTestContext(http.MethodGet, "/", nil)

	assert.Nil(t, store.Read(c))
}

func TestRedisStore_ReadExpiredRecordClearsKey(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := newRedisStore(client)

	stale := attributiondomain.Record{
		Source:     "partnerA",
		CapturedAt: time.Now().Add(-31 * 24 * time.Hour),
	}
	data, err := json.Marshal(stale)
	require.NoError(t, err)
	require.NoError(t, mr.Set("attribution:deadbeef", string(data)))

	c, _ := testutil.NewTestContext(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: "rsm_sid", Value: "deadbeef"})

	assert.Nil(t, store.Read(c))
	assert.False(t, mr.Exists("attribution:deadbeef"))
}

func TestRedisStore_ReadUnreadableRecordClearsKey(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := newRedisStore(client)
	require.NoError(t, mr.Set("attribution:deadbeef", "not json"))

	c, _ := testutil.NewTestContext(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: "rsm_sid", Value: "deadbeef"})

	assert.Nil(t, store.Read(c))
	assert.False(t, mr.Exists("attribution:deadbeef"))
}

func TestRedisStore_Clear(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := newRedisStore(client)

	rec := attributiondomain.Record{Source: "partnerA", CapturedAt: time.Now()}
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	require.NoError(t, mr.Set("attribution:deadbeef", string(data)))

	c, _ := testutil.NewTestContext(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: "rsm_sid", Value: "deadbeef"})

	store.Clear(c)

	assert.False(t, mr.Exists("attribution:deadbeef"))
	assert.Nil(t, store.Read(c))
}

func TestRedisStore_WriteRedisDownDoesNotPanic(t *testing.T) {
	mr, client := setupTestRedis(t)
	mr.Close()
	store := newRedisStore(client)

	c, _ := testutil.NewTestContext(http.MethodGet, "/", nil)

	assert.NotPanics(t, func() {
		store.Write(c, &attributiondomain.Record{Source: "partnerA", CapturedAt: time.Now()})
	})
	assert.Nil(t, store.Read(c))
}
