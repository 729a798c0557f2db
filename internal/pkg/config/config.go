package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	SessionTTL     time.Duration `env:"SESSION_TTL,     default=8h"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL, default=24h"`
	CookieSecure   bool          `env:"COOKIE_SECURE,   default=false"`
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS,  default=20"`
	AuditWorkers   int           `env:"AUDIT_WORKERS,   default=4"`

	Backend BackendConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type BackendConfig struct {
	URL     string        `env:"BACKEND_URL,     default=http://localhost:8080/api"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=15s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=condo_gateway"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsDevelopment reports whether the gateway runs with developer defaults
// (pretty logs, verbose errors).
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads an optional .env file and then the environment. Variables
// already set in the environment win over the file.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if cfg.AuditWorkers < 1 {
		return nil, fmt.Errorf("config: AUDIT_WORKERS must be at least 1, got %d", cfg.AuditWorkers)
	}
	return &cfg, nil
}
