package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
http_addr: ":9090"
log_level: debug
nobil:
  api_key: test-key
  requests_per_second: 5
poll:
  interval: 5m
  limit: 100
filters:
  min_power: 50
  min_connectors: 2
kafka:
  enabled: true
  brokers:
    - kafka-1:9092
    - kafka-2:9092
  topic: stations
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "test-key", cfg.Nobil.APIKey)
	assert.Equal(t, 5.0, cfg.Nobil.RequestsPerSecond)
	assert.Equal(t, 5*time.Minute, cfg.Poll.Interval)
	assert.Equal(t, 100, cfg.Poll.Limit)
	assert.Equal(t, 50.0, cfg.Filters.MinPower)
	assert.Equal(t, 2, cfg.Filters.MinConnectors)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "stations", cfg.Kafka.Topic)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfigFile(t, `
nobil:
  api_key: test-key
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "https://nobil.no/api/server/search.php", cfg.Nobil.SearchURL)
	assert.Equal(t, 30*time.Second, cfg.Nobil.Timeout)
	assert.Equal(t, 15*time.Minute, cfg.Poll.Interval)
	assert.Equal(t, "(71.5, 31.5)", cfg.Poll.NorthEast)
	assert.Equal(t, "(54.0, 4.0)", cfg.Poll.SouthWest)
	assert.Equal(t, 2000, cfg.Poll.Limit)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, "charging-stations", cfg.Kafka.Topic)
	assert.Equal(t, 8, cfg.Availability.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Availability.CacheTTL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("NOBIL_API_KEY", "env-key")
	t.Setenv("POLL_INTERVAL", "1h")
	t.Setenv("KAFKA_ENABLED", "false")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Nobil.APIKey)
	assert.Equal(t, time.Hour, cfg.Poll.Interval)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expectedErr string
	}{
		{
			name:        "missing api key",
			content:     `log_level: info`,
			expectedErr: "NOBIL_API_KEY is required",
		},
		{
			name: "negative poll interval",
			content: `
nobil:
  api_key: test-key
poll:
  interval: -5m
`,
			expectedErr: "poll interval must be positive",
		},
		{
			name: "malformed poll corner",
			content: `
nobil:
  api_key: test-key
poll:
  northeast: "71.5 31.5"
`,
			expectedErr: "poll northeast corner",
		},
		{
			name: "negative availability concurrency",
			content: `
nobil:
  api_key: test-key
availability:
  concurrency: -1
`,
			expectedErr: "availability concurrency",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfigFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}
