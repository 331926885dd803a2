package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		yamlData := `
server:
  listen: ":9090"
  timeout: 45s
database:
  dsn: "file:test.db"
  max_open_conns: 20
redis:
  url: "redis://cache:6379/1"
providers:
  enabled: [newsapi, guardian]
  newsapi:
    base_url: "https://newsapi.org/v2"
    key: "test-key"
    country: "gb"
    limits:
      daily: 100
      per_second: 1
  guardian:
    base_url: "https://content.guardianapis.com"
    key: "guardian-key"
    limits:
      per_minute: 5
freshness:
  headlines: 10m
  search: 30m
taxonomy:
  categories:
    - {key: technology, label: Technology}
    - {key: business, label: Business}
  aliases:
    nyt:
      tech: technology
`
		configFile := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(configFile, []byte(yamlData), 0o600))

		cfg, err := Load(configFile)
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "file:test.db", cfg.Database.DSN)
		assert.Equal(t, 20, cfg.Database.MaxOpenConns)
		assert.Equal(t, "redis://cache:6379/1", cfg.Redis.URL)

		assert.Equal(t, []string{"newsapi", "guardian"}, cfg.Providers.Enabled)
		assert.Equal(t, "test-key", cfg.Providers.NewsAPI.Key)
		assert.Equal(t, "gb", cfg.Providers.NewsAPI.Country)
		assert.Equal(t, 100, cfg.Providers.NewsAPI.Limits.Daily)
		assert.Equal(t, 1, cfg.Providers.NewsAPI.Limits.PerSecond)
		assert.Equal(t, 5, cfg.Providers.Guardian.Limits.PerMinute)

		assert.Equal(t, 10*time.Minute, cfg.Freshness.Headlines)
		assert.Equal(t, 30*time.Minute, cfg.Freshness.Search)

		require.Len(t, cfg.Taxonomy.Categories, 2)
		assert.Equal(t, "technology", cfg.Taxonomy.Categories[0].Key)
		assert.Equal(t, "technology", cfg.Taxonomy.Aliases["nyt"]["tech"])
	})

	t.Run("defaults applied", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(configFile, []byte("providers:\n  enabled: [newsapi]\n"), 0o600))

		cfg, err := Load(configFile)
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "file:newsgate.db?cache=shared&mode=rwc&_txlock=immediate", cfg.Database.DSN)
		assert.Equal(t, 10, cfg.Database.MaxOpenConns)
		assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
		assert.Equal(t, 15*time.Minute, cfg.Freshness.Headlines)
		assert.Equal(t, 60*time.Minute, cfg.Freshness.Search)
		assert.Equal(t, 30*time.Second, cfg.Providers.NewsAPI.Timeout)
		assert.Equal(t, "us", cfg.Providers.NewsAPI.Country)
		assert.Equal(t, 2, cfg.Refresh.Workers)
		assert.Equal(t, 64, cfg.Refresh.QueueSize)
		assert.Equal(t, 3, cfg.Refresh.MaxRetries)
		assert.Equal(t, 2*time.Minute, cfg.Refresh.JobTimeout)
	})

	t.Run("environment variable expansion", func(t *testing.T) {
		t.Setenv("TEST_NEWSAPI_KEY", "secret-from-env")

		yamlData := `
providers:
  enabled: [newsapi]
  newsapi:
    key: "${TEST_NEWSAPI_KEY}"
`
		configFile := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(configFile, []byte(yamlData), 0o600))

		cfg, err := Load(configFile)
		require.NoError(t, err)
		assert.Equal(t, "secret-from-env", cfg.Providers.NewsAPI.Key)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("/nonexistent/config.yml")
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(configFile, []byte("server: [not a map"), 0o600))

		_, err := Load(configFile)
		assert.Error(t, err)
	})
}

func TestConfig_Provider(t *testing.T) {
	cfg := &Config{}
	cfg.Providers.Guardian.Key = "g-key"

	p, ok := cfg.Provider("guardian")
	require.True(t, ok)
	assert.Equal(t, "g-key", p.Key)

	_, ok = cfg.Provider("unknown")
	assert.False(t, ok)

	_, ok = cfg.Provider("rss") // rss has no ProviderConfig block
	assert.False(t, ok)
}

func TestFreshnessConfig_Window(t *testing.T) {
	cfg := FreshnessConfig{Headlines: 15 * time.Minute, Search: time.Hour}
	assert.Equal(t, 15*time.Minute, cfg.Window("headlines"))
	assert.Equal(t, time.Hour, cfg.Window("search"))
	assert.Equal(t, 15*time.Minute, cfg.Window("bogus"))
}
