package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// CMSConfig configures the content backend that serves menu categories and items.
type CMSConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	Token          string `mapstructure:"token"`
	FetchTimeoutMS int    `mapstructure:"fetch_timeout_ms"`
	CacheTTLSec    int    `mapstructure:"cache_ttl_sec"`
}

func (c *CMSConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

func (c *CMSConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSec) * time.Second
}

// CaptchaMode is an explicit policy choice: "off" bypasses verification entirely,
// "enforce" requires a configured secret and rejects submissions without a valid token.
const (
	CaptchaModeOff     = "off"
	CaptchaModeEnforce = "enforce"
)

type CaptchaConfig struct {
	Mode      string  `mapstructure:"mode"`
	Secret    string  `mapstructure:"secret"`
	VerifyURL string  `mapstructure:"verify_url"`
	Threshold float64 `mapstructure:"threshold"`
	TimeoutMS int     `mapstructure:"timeout_ms"`
}

func (c *CaptchaConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// Validate rejects the ambiguous state where verification is enforced but no
// secret is configured. A merely-absent secret must never mean "trust everyone".
func (c *CaptchaConfig) Validate() error {
	switch c.Mode {
	case CaptchaModeOff:
		return nil
	case CaptchaModeEnforce:
		if c.Secret == "" {
			return fmt.Errorf("captcha.mode is %q but captcha.secret is empty", c.Mode)
		}
		return nil
	default:
		return fmt.Errorf("captcha.mode must be %q or %q, got %q", CaptchaModeOff, CaptchaModeEnforce, c.Mode)
	}
}

type EmailConfig struct {
	SMTPHost      string `mapstructure:"smtp_host"`
	SMTPPort      int    `mapstructure:"smtp_port"`
	SMTPUser      string `mapstructure:"smtp_user"`
	SMTPPassword  string `mapstructure:"smtp_password"`
	FromAddress   string `mapstructure:"from_address"`
	FromName      string `mapstructure:"from_name"`
	ContactTo     string `mapstructure:"contact_to"`
	NewsletterTo  string `mapstructure:"newsletter_to"`
	SendTimeoutMS int    `mapstructure:"send_timeout_ms"`
}

func (e *EmailConfig) SendTimeout() time.Duration {
	return time.Duration(e.SendTimeoutMS) * time.Millisecond
}

// Configured reports whether an SMTP transport is available. When false the
// dispatcher degrades to logging submissions instead of sending them.
func (e *EmailConfig) Configured() bool {
	return e.SMTPHost != ""
}

const (
	AttributionStoreCookie = "cookie"
	AttributionStoreRedis  = "redis"
)

type AttributionConfig struct {
	Store        string `mapstructure:"store"`
	CookieName   string `mapstructure:"cookie_name"`
	CookieSecure bool   `mapstructure:"cookie_secure"`
}

type RateLimitConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	Requests      int  `mapstructure:"requests"`
	WindowSeconds int  `mapstructure:"window_seconds"`
}

func (r *RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

type SiteConfig struct {
	Locales       []string `mapstructure:"locales"`
	DefaultLocale string   `mapstructure:"default_locale"`
}
