package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr      string        `env:"HTTP_ADDR" envDefault:":8080"`
	PostgresURL   string        `env:"POSTGRES_URL,required"`
	RedisAddr     string        `env:"REDIS_ADDR"` // optional; admin cache disabled when empty
	JWTSecret     string        `env:"JWT_SECRET,required"`
	AdminCacheTTL time.Duration `env:"ADMIN_CACHE_TTL" envDefault:"5m"`

	// RoleCatalog overrides the built-in role list when set. The
	// catalog is fixed for the lifetime of the process.
	RoleCatalog []string `env:"ROLE_CATALOG" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
