package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "blog.db", cfg.Database)
	require.Equal(t, "dev", cfg.SecretKey)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE", "/tmp/other.db")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("SESSION_TTL", "1h")

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, "/tmp/other.db", cfg.Database)
	require.Equal(t, "s3cret", cfg.SecretKey)
	require.Equal(t, time.Hour, cfg.SessionTTL)
}
