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

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, "app:\n  name: discovery-test\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "discovery-test", cfg.App.Name)
	assert.Equal(t, defaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 64, cfg.Dispatch.QueueSize)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTLDuration())
	assert.Equal(t, "discovery:resp:", cfg.Cache.Prefix)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoadFromFile_FullFile(t *testing.T) {
	t.Setenv("TEST_REDIS_PW", "s3cret")
	path := writeConfig(t, `
api:
  base_url: http://localhost:8081/travel_discovery
dispatch:
  queue_size: 8
cache:
  enabled: true
  ttl: 1500
  redis:
    address: localhost:6379
    password: ${TEST_REDIS_PW}
    db: 2
logging:
  level: debug
  format: console
metrics:
  enabled: true
  address: ":9100"
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8081/travel_discovery", cfg.API.BaseURL)
	assert.Equal(t, 8, cfg.Dispatch.QueueSize)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 1500*time.Millisecond, cfg.Cache.TTLDuration())
	assert.Equal(t, "s3cret", cfg.Cache.Redis.Password)
	assert.Equal(t, 2, cfg.Cache.Redis.DB)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, ":9100", cfg.Metrics.Address)
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://staging.example.test/api")
	path := writeConfig(t, "api:\n  base_url: https://prod.example.test/api\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.test/api", cfg.API.BaseURL)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"relative base url", "api:\n  base_url: /travel\n", "api.base_url"},
		{"ftp base url", "api:\n  base_url: ftp://example.test\n", "api.base_url"},
		{"negative queue", "dispatch:\n  queue_size: -1\n", "dispatch.queue_size"},
		{"cache without redis", "cache:\n  enabled: true\n", "cache.redis.address"},
		{"unknown log format", "logging:\n  format: xml\n", "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 250*time.Millisecond, GetDuration(250))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}
