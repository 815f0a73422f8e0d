package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port            string `env:"PORT,              default=8080"`
	Env             string `env:"ENV,               default=development"`
	LogLevel        string `env:"LOG_LEVEL,         default=info"`
	AppBaseURL      string `env:"APP_BASE_URL,      default=http://localhost:3000"`
	BackfillOnStart bool   `env:"BACKFILL_ON_START, default=false"`

	Mongo    MongoConfig
	Redis    RedisConfig
	SMTP     SMTPConfig
	Session  SessionConfig
	Tracking TrackingConfig
	Notify   NotifyConfig
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,      default=ntdm_animal_hospital"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

// RedisConfig is optional. Leaving REDIS_ADDR unset uses the default address;
// setting it to an empty value (REDIS_ADDR=) disables caching.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,       default=0"`
	Timeout  time.Duration `env:"REDIS_TIMEOUT,  default=5s"`
}

type SMTPConfig struct {
	Host        string `env:"SMTP_HOST"`
	Port        int    `env:"SMTP_PORT,      default=587"`
	User        string `env:"SMTP_USER"`
	Password    string `env:"SMTP_PASSWORD"`
	FromName    string `env:"MAIL_FROM_NAME, default=NTDM Animal Hospital"`
	ClinicInbox string `env:"CLINIC_INBOX"`
}

// Enabled reports whether enough settings are present to send mail.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.User != "" && c.Password != ""
}

type SessionConfig struct {
	TTL        time.Duration `env:"SESSION_TTL,    default=168h"`
	CookieName string        `env:"SESSION_COOKIE, default=session"`
}

type TrackingConfig struct {
	BaseURL  string        `env:"THINGSPEAK_BASE_URL, default=https://api.thingspeak.com"`
	APIKey   string        `env:"THINGSPEAK_API_KEY"`
	CacheTTL time.Duration `env:"TELEMETRY_CACHE_TTL, default=30s"`
}

type NotifyConfig struct {
	Workers int `env:"NOTIFY_WORKERS, default=4"`
	Buffer  int `env:"NOTIFY_BUFFER,  default=256"`
}

// Production reports whether the service runs in the production environment.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}
