// Package config loads process-wide configuration from the environment,
// once at startup. Nothing reads environment variables at call time.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=5003"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs session tokens. Required.
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=1h"`
	// BcryptCost of 0 selects bcrypt.DefaultCost.
	BcryptCost int `env:"BCRYPT_COST, default=0"`

	Mongo MongoConfig
	Redis RedisConfig
	TLS   TLSConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=campground"`
}

// RedisConfig is optional: an empty Addr disables the token deny-list and
// logout degrades to client-side cookie clearing.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// TLSConfig is optional: when CertFile and KeyFile are set the server runs
// mTLS with client-certificate verification against ClientCAFile.
type TLSConfig struct {
	CertFile     string `env:"TLS_CERT_FILE"`
	KeyFile      string `env:"TLS_KEY_FILE"`
	ClientCAFile string `env:"TLS_CLIENT_CA_FILE"`
}

// IsProduction reports whether the service runs with production transport.
func (c *Config) IsProduction() bool { return c.Env == "production" }

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
