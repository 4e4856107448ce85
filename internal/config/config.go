package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port       string        `env:"PORT,        default=8080"`
	Database   string        `env:"DATABASE,    default=blog.db"`
	SecretKey  string        `env:"SECRET_KEY,  default=dev"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`
	LogPretty  bool          `env:"LOG_PRETTY,  default=false"`
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
