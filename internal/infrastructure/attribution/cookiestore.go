package attribution

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"rosmarino/internal/domain/attribution"
	sharedConfig "rosmarino/internal/shared/config"
	"rosmarino/internal/shared/logger"
)

// CookieStore keeps the record client-side as base64-encoded JSON in a single
// cookie. The cookie Max-Age matches the record TTL, but expiry is still
// checked at read time since the capture timestamp is authoritative.
type CookieStore struct {
	name   string
	secure bool
	logger logger.Interface
	now    func() time.Time
}

func NewCookieStore(cfg sharedConfig.AttributionConfig, log logger.Interface) *CookieStore {
	return &CookieStore{
		name:   cfg.CookieName,
		secure: cfg.CookieSecure,
		logger: log,
		now:    time.Now,
	}
}

func (s *CookieStore) Read(c *gin.Context) *attribution.Record {
	value, err := c.Cookie(s.name)
	if err != nil {
		return nil
	}

	data, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		s.Clear(c)
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

func (s *CookieStore) Write(c *gin.Context, rec *attribution.Record) {
	data, err := json.Marshal(rec)
	if err != nil {
		s.logger.Debugw("failed to encode attribution record", "error", err)
		return
	}
	value := base64.RawURLEncoding.EncodeToString(data)
	c.SetCookie(s.name, value, int(attribution.TTL.Seconds()), "/", "", s.secure, true)
}

func (s *CookieStore) Clear(c *gin.Context) {
	c.SetCookie(s.name, "", -1, "/", "", s.secure, true)
}
