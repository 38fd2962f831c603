package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/smartadmin/user-api/internal/core/credentials"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// TokenTTL is the standard token lifetime: a Go duration or "none" for
	// never-expiring tokens.
	TokenTTL string `env:"TOKEN_TTL, default=24h"`
	// QRTokenTTL bounds the redemption window of QR login tokens.
	QRTokenTTL time.Duration `env:"QR_TOKEN_TTL, default=10m"`

	// MaxLoginAttempts is the per-document login budget per minute.
	MaxLoginAttempts int `env:"MAX_LOGIN_ATTEMPTS, default=3"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=smartadmin"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// TokenPolicy validates and returns the token lifetimes. The QR ttl must be
// finite and strictly shorter than a finite standard ttl.
func (c *Config) TokenPolicy() (credentials.TTL, time.Duration, error) {
	standard, err := credentials.ParseTTL(c.TokenTTL)
	if err != nil {
		return credentials.TTL{}, 0, err
	}
	if c.QRTokenTTL <= 0 {
		return credentials.TTL{}, 0, fmt.Errorf("qr token ttl must be positive, got %v", c.QRTokenTTL)
	}
	if !standard.NoExpiry && c.QRTokenTTL >= standard.Duration {
		return credentials.TTL{}, 0, fmt.Errorf("qr token ttl %v must be shorter than the standard ttl %v", c.QRTokenTTL, standard.Duration)
	}
	return standard, c.QRTokenTTL, nil
}
