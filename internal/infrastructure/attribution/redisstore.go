package attribution

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"rosmarino/internal/domain/attribution"
	sharedConfig "rosmarino/internal/shared/config"
	"rosmarino/internal/shared/logger"
)

const (
	attributionKeyPrefix = "attribution:"
	sessionCookieName    = "rsm_sid"
	sessionIDBytes       = 16
)

// RedisStore keeps the record server-side, keyed by an anonymous session
// cookie. The Redis TTL mirrors the record TTL; read-time expiry is still
// checked against the capture timestamp.
type RedisStore struct {
	client *redis.Client
	secure bool
	logger logger.Interface
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, cfg sharedConfig.AttributionConfig, log logger.Interface) *RedisStore {
	return &RedisStore{
		client: client,
		secure: cfg.CookieSecure,
		logger: log,
		now:    time.Now,
	}
}

func (s *RedisStore) Read(c *gin.Context) *attribution.Record {
	sid, ok := s.sessionID(c, false)
	if !ok {
		return nil
	}

	data, err := s.client.Get(c.Request.Context(), attributionKeyPrefix+sid).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debugw("attribution read failed", "error", err)
		}
		return nil
	}

	var rec attribution.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.Clear(c)
		return nil
	}

	if rec.Expired(s.now()) {
		s.Clear(c)
		return nil
	}
	return &rec
}

func (s *RedisStore) Write(c *gin.Context, rec *attribution.Record) {
	sid, ok := s.sessionID(c, true)
	if !ok {
		return
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := s.client.Set(c.Request.Context(), attributionKeyPrefix+sid, data, attribution.TTL).Err(); err != nil {
		s.logger.Debugw("attribution write failed", "error", err)
	}
}

func (s *RedisStore) Clear(c *gin.Context) {
	sid, ok := s.sessionID(c, false)
	if !ok {
		return
	}
	if err := s.client.Del(c.Request.Context(), attributionKeyPrefix+sid).Err(); err != nil {
		s.logger.Debugw("attribution clear failed", "error", err)
	}
}

// sessionID returns the visitor's anonymous session id, minting a new one
// when create is set and no cookie exists yet.
func (s *RedisStore) sessionID(c *gin.Context, create bool) (string, bool) {
	if sid, err := c.Cookie(sessionCookieName); err == nil && sid != "" {
		return sid, true
	}
	if !create {
		return "", false
	}

	buf := make([]byte, sessionIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", false
	}
	sid := hex.EncodeToString(buf)
	c.SetCookie(sessionCookieName, sid, int(attribution.TTL.Seconds()), "/", "", s.secure, true)
	return sid, true
}
