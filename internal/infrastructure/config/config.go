package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "rosmarino/internal/shared/config"
)

type Config struct {
	Server      sharedConfig.ServerConfig      `mapstructure:"server"`
	Logger      sharedConfig.LoggerConfig      `mapstructure:"logger"`
	Redis       sharedConfig.RedisConfig       `mapstructure:"redis"`
	CMS         sharedConfig.CMSConfig         `mapstructure:"cms"`
	Captcha     sharedConfig.CaptchaConfig     `mapstructure:"captcha"`
	Email       sharedConfig.EmailConfig       `mapstructure:"email"`
	Attribution sharedConfig.AttributionConfig `mapstructure:"attribution"`
	RateLimit   sharedConfig.RateLimitConfig   `mapstructure:"rate_limit"`
	Site        sharedConfig.SiteConfig        `mapstructure:"site"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("ROSMARINO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Captcha.Validate(); err != nil {
		return nil, fmt.Errorf("invalid captcha config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Content backend defaults
	viper.SetDefault("cms.base_url", "")
	viper.SetDefault("cms.token", "")
	viper.SetDefault("cms.fetch_timeout_ms", 3000)
	viper.SetDefault("cms.cache_ttl_sec", 300)

	// Captcha defaults: verification is off until explicitly enforced
	viper.SetDefault("captcha.mode", sharedConfig.CaptchaModeOff)
	viper.SetDefault("captcha.secret", "")
	viper.SetDefault("captcha.verify_url", "https://www.google.com/recaptcha/api/siteverify")
	viper.SetDefault("captcha.threshold", 0.5)
	viper.SetDefault("captcha.timeout_ms", 5000)

	// Email defaults: empty smtp_host means "log submissions instead of sending"
	viper.SetDefault("email.smtp_host", "")
	viper.SetDefault("email.smtp_port", 587)
	viper.SetDefault("email.smtp_user", "")
	viper.SetDefault("email.smtp_password", "")
	viper.SetDefault("email.from_address", "noreply@rosmarino.local")
	viper.SetDefault("email.from_name", "Rosmarino")
	viper.SetDefault("email.contact_to", "info@rosmarino.local")
	viper.SetDefault("email.newsletter_to", "newsletter@rosmarino.local")
	viper.SetDefault("email.send_timeout_ms", 5000)

	// Attribution defaults
	viper.SetDefault("attribution.store", sharedConfig.AttributionStoreCookie)
	viper.SetDefault("attribution.cookie_name", "rsm_attribution")
	viper.SetDefault("attribution.cookie_secure", false)

	// Rate limit defaults (per client IP, submission endpoints only)
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 5)
	viper.SetDefault("rate_limit.window_seconds", 60)

	// Site defaults
	viper.SetDefault("site.locales", []string{"it", "en", "de"})
	viper.SetDefault("site.default_locale", "it")
}
