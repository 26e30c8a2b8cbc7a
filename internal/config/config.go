package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all process configuration. It is loaded once at startup and
// treated as immutable afterwards; components receive the values they need
// at construction time rather than reading the environment themselves.
type Config struct {
	// Server
	Port string `envconfig:"PORT" default:"8080"`
	Env  string `envconfig:"ENV" default:"development"`

	// Authentication
	APIKey string `envconfig:"API_KEY" required:"true"`

	// Mail transport. Variable names mirror the original deployment.
	MailServer     string        `envconfig:"MAIL_SERVER" required:"true"`
	MailPort       int           `envconfig:"MAIL_PORT" default:"587"`
	MailUsername   string        `envconfig:"MAIL_USERNAME"`
	MailPassword   string        `envconfig:"MAIL_PASSWORD"`
	MailUseTLS     bool          `envconfig:"MAIL_USE_TLS" default:"true"`
	MailUseSSL     bool          `envconfig:"MAIL_USE_SSL" default:"false"`
	MailSender     string        `envconfig:"MAIL_SENDER" required:"true"`
	MailTimeout    time.Duration `envconfig:"MAIL_TIMEOUT" default:"10s"`
	RecipientEmail string        `envconfig:"RECIPIENT_EMAIL" required:"true"`

	// Counter store. Empty REDIS_ADDR falls back to in-process counters,
	// which is only allowed in development.
	RedisAddr         string        `envconfig:"REDIS_ADDR"`
	RedisPassword     string        `envconfig:"REDIS_PASSWORD"`
	RedisDB           int           `envconfig:"REDIS_DB" default:"0"`
	RedisDialTimeout  time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	RedisReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"3s"`
	RedisWriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"3s"`

	// Admission ceilings. Day and hour windows apply per client address
	// across the API; the minute window applies to the send endpoint.
	RateLimitPerDay        int64 `envconfig:"RATE_LIMIT_PER_DAY" default:"200"`
	RateLimitPerHour       int64 `envconfig:"RATE_LIMIT_PER_HOUR" default:"50"`
	RateLimitSendPerMinute int64 `envconfig:"RATE_LIMIT_SEND_PER_MINUTE" default:"5"`

	// TrustProxy enables X-Forwarded-For resolution of the client address.
	// Leave off unless the service sits behind a proxy you control.
	TrustProxy bool `envconfig:"TRUST_PROXY" default:"false"`

	// Request log file. Empty disables file logging.
	LogFile      string `envconfig:"LOG_FILE"`
	LogFileMaxMB int    `envconfig:"LOG_FILE_MAX_MB" default:"10"`
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (*Config, error) {
	// Load .env file if it exists (don't error if missing)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.APIKey) < 16 {
		return fmt.Errorf("API_KEY must be at least 16 characters")
	}

	if c.MailUseTLS && c.MailUseSSL {
		return fmt.Errorf("MAIL_USE_TLS and MAIL_USE_SSL are mutually exclusive")
	}

	if c.RedisAddr == "" && !c.IsDevelopment() {
		return fmt.Errorf("REDIS_ADDR is required outside development")
	}

	if c.RateLimitPerDay <= 0 || c.RateLimitPerHour <= 0 || c.RateLimitSendPerMinute <= 0 {
		return fmt.Errorf("rate limit ceilings must be positive")
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
