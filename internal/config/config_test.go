package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FileAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
jwt:
  secret: from-file
schedule:
  timezone: UTC
redis:
  db: 2
`)
	t.Setenv("SERVER_MODE", "production")
	t.Setenv("REDIS_DB", "5")
	t.Setenv("CALENDAR_SYNC_CONCURRENCY", "8")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, 5, cfg.Redis.DB)
	assert.Equal(t, 8, cfg.Calendar.SyncConcurrency)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	path := writeConfig(t, "server:\n  port: \"8080\"\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secret is required")
}

func TestLoadConfig_BadTimezone(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: s\nschedule:\n  timezone: Mars/Olympus\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schedule timezone")
}

func TestLoadConfig_CalendarNeedsCredentials(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: s\ncalendar:\n  enabled: true\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfig_ReportsEveryBadEnvValue(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: s\n")
	t.Setenv("REDIS_DB", "two")
	t.Setenv("DB_SEED", "maybe")
	t.Setenv("SERVER_PORT", "7070")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `REDIS_DB="two"`)
	assert.Contains(t, err.Error(), `DB_SEED="maybe"`)
}

func TestApplyEnv(t *testing.T) {
	var section struct {
		Timeout time.Duration `env:"TEST_TIMEOUT"`
		Workers int8          `env:"TEST_WORKERS"`
		Name    string        `env:"TEST_NAME"`
		Nested  struct {
			On bool `env:"TEST_ON"`
		}
		untagged string
	}
	t.Setenv("TEST_TIMEOUT", "90s")
	t.Setenv("TEST_WORKERS", "12")
	t.Setenv("TEST_ON", "true")

	require.NoError(t, applyEnv(&section))
	assert.Equal(t, 90*time.Second, section.Timeout)
	assert.EqualValues(t, 12, section.Workers)
	assert.Empty(t, section.Name)
	assert.True(t, section.Nested.On)
	assert.Empty(t, section.untagged)

	t.Setenv("TEST_WORKERS", "300")
	assert.Error(t, applyEnv(&section), "out of range for int8")
	assert.Error(t, applyEnv(section), "needs a pointer")
}

func TestAllowedOrigins(t *testing.T) {
	cfg := &Config{}
	cfg.Server.CORSOrigins = " https://a.example, ,https://b.example "
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}
