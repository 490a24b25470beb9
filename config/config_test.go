package config

import (
	"log/slog"
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

func TestLoadDefaults(t *testing.T) {
	t.Setenv(portEnvName, "")

	cfg, err := load("")
	require.NoError(t, err)

	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.HTTPServerAddr)
	assert.Equal(t, 1500*time.Millisecond, cfg.AuthDelay)
	assert.Equal(t, "@every 5s", cfg.CarouselSpec)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "lead-events", cfg.Broker.LeadEventsTopic)
	assert.False(t, cfg.Broker.Enabled())
	assert.False(t, cfg.Broker.TLS.Enabled())
}

func TestLoadFile(t *testing.T) {
	t.Setenv(portEnvName, "")

	path := writeConfig(t, `
log_level: debug
http_server_addr: ":9000"
auth_delay: 0s
admin:
  username: root
  password: secret
broker:
  seed_brokers: "k1:9092,k2:9092"
  schema_registry_urls:
    - http://sr:8081
  publish_workers: 2
`)

	cfg, err := load(path)
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, ":9000", cfg.HTTPServerAddr)
	assert.Zero(t, cfg.AuthDelay)
	assert.Equal(t, "root", cfg.Admin.Username)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Broker.SeedBrokers)
	assert.Equal(t, []string{"http://sr:8081"}, cfg.Broker.SchemaRegistryURLs)
	assert.Equal(t, 2, cfg.Broker.PublishWorkers)
	assert.True(t, cfg.Broker.Enabled())
}

func TestLoadPortOverride(t *testing.T) {
	t.Setenv(portEnvName, "3000")

	cfg, err := load(writeConfig(t, `http_server_addr: ":9000"`))
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.HTTPServerAddr)
}

func TestLoadErrors(t *testing.T) {
	t.Setenv(portEnvName, "")

	t.Run("unknown key", func(t *testing.T) {
		_, err := load(writeConfig(t, "no_such_key: 1\n"))
		require.Error(t, err)
	})

	t.Run("bad level", func(t *testing.T) {
		_, err := load(writeConfig(t, "log_level: loud\n"))
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}
