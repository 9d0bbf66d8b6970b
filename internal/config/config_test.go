package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/auklet-oj/auklet/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
listen: ":9000"
logger:
  level: debug
storage:
  database: /tmp/auklet.db
auth:
  jwt:
    secret: topsecret
    expire_hours: 72
contest:
  default_penalty_seconds: 600
cors:
  allowed_origins:
    - "https://example.com"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "/tmp/auklet.db", cfg.Storage.Database)
	assert.Equal(t, "topsecret", cfg.Auth.JWT.Secret)
	assert.Equal(t, 72, cfg.Auth.JWT.ExpireHours)
	assert.Equal(t, 600, cfg.Contest.DefaultPenaltySeconds)
	assert.Equal(t, []string{"https://example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt:
    secret: topsecret
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, 24, cfg.Auth.JWT.ExpireHours)
	assert.Equal(t, 300, cfg.Contest.DefaultPenaltySeconds)
}

func TestLoadMissingSecret(t *testing.T) {
	path := writeConfig(t, `listen: ":9000"`)

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
