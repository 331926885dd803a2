package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:newsgate.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Redis struct {
		URL string `yaml:"url" json:"url" jsonschema:"default=redis://localhost:6379/0,description=Redis URL for rate-limit counters and the fetch clock"`
	} `yaml:"redis" json:"redis" jsonschema:"description=Redis configuration"`

	Providers ProvidersConfig `yaml:"providers" json:"providers" jsonschema:"description=News provider configuration"`

	Freshness FreshnessConfig `yaml:"freshness" json:"freshness" jsonschema:"description=Per-mode freshness windows"`

	Taxonomy TaxonomyConfig `yaml:"taxonomy" json:"taxonomy" jsonschema:"description=Canonical categories and per-provider aliases"`

	Refresh RefreshConfig `yaml:"refresh" json:"refresh" jsonschema:"description=Background refresh job configuration"`
}

// ProvidersConfig holds the ordered list of enabled providers and the
// per-provider settings. A provider with an empty key is valid config: it
// resolves to an unconfigured provider that returns empty results.
type ProvidersConfig struct {
	Enabled  []string       `yaml:"enabled" json:"enabled" jsonschema:"description=Ordered list of enabled provider keys"`
	NewsAPI  ProviderConfig `yaml:"newsapi" json:"newsapi" jsonschema:"description=NewsAPI settings"`
	Guardian ProviderConfig `yaml:"guardian" json:"guardian" jsonschema:"description=Guardian Open Platform settings"`
	NYT      ProviderConfig `yaml:"nyt" json:"nyt" jsonschema:"description=New York Times settings"`
	RSS      RSSConfig      `yaml:"rss" json:"rss" jsonschema:"description=RSS feed provider settings"`
}

// ProviderConfig holds settings for one HTTP news provider
type ProviderConfig struct {
	BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"description=API base URL"`
	Key     string        `yaml:"key" json:"key" jsonschema:"description=API key (can use environment variable)"`
	Country string        `yaml:"country" json:"country" jsonschema:"default=us,description=Default country filter where the provider supports it"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP request timeout"`
	Limits  LimitsConfig  `yaml:"limits" json:"limits" jsonschema:"description=Call budget caps; zero means uncapped"`
}

// LimitsConfig holds per-provider call caps; a zero value means no cap for
// that window
type LimitsConfig struct {
	Daily     int `yaml:"daily" json:"daily" jsonschema:"description=Maximum calls per day"`
	PerMinute int `yaml:"per_minute" json:"per_minute" jsonschema:"description=Maximum calls per minute"`
	PerSecond int `yaml:"per_second" json:"per_second" jsonschema:"description=Maximum calls per second"`
}

// RSSConfig holds the feed list for the rss provider variant
type RSSConfig struct {
	Feeds   []RSSFeed     `yaml:"feeds" json:"feeds" jsonschema:"description=RSS/Atom feeds to aggregate"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Fetch timeout per feed"`
}

// RSSFeed represents a single feed entry
type RSSFeed struct {
	Name string `yaml:"name" json:"name" jsonschema:"required,description=Display name of the feed"`
	URL  string `yaml:"url" json:"url" jsonschema:"required,description=Feed URL"`
}

// FreshnessConfig holds per-mode freshness windows
type FreshnessConfig struct {
	Headlines time.Duration `yaml:"headlines" json:"headlines" jsonschema:"default=15m,description=Freshness window for headline queries"`
	Search    time.Duration `yaml:"search" json:"search" jsonschema:"default=60m,description=Freshness window for keyword search queries"`
}

// TaxonomyConfig holds the canonical category set and per-provider alias
// tables, loaded once at startup into an immutable normalizer
type TaxonomyConfig struct {
	Categories []Category                   `yaml:"categories" json:"categories" jsonschema:"description=Canonical category set"`
	Aliases    map[string]map[string]string `yaml:"aliases" json:"aliases" jsonschema:"description=Per-provider raw-category to canonical-key tables"`
}

// Category is one canonical category with its display label
type Category struct {
	Key   string `yaml:"key" json:"key" jsonschema:"required,description=Canonical category key"`
	Label string `yaml:"label" json:"label" jsonschema:"description=Display label"`
}

// RefreshConfig holds background refresh job settings
type RefreshConfig struct {
	Workers    int           `yaml:"workers" json:"workers" jsonschema:"default=2,description=Number of background refresh workers"`
	QueueSize  int           `yaml:"queue_size" json:"queue_size" jsonschema:"default=64,description=Pending refresh job queue capacity"`
	MaxRetries int           `yaml:"max_retries" json:"max_retries" jsonschema:"default=3,description=Retry attempts for a failed refresh job"`
	JobTimeout time.Duration `yaml:"job_timeout" json:"job_timeout" jsonschema:"default=2m,description=Execution timeout per refresh job"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()
	return &cfg, nil
}

func (c *Config) setDefaults() {
	// set defaults for server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}

	// set defaults for database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:newsgate.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// set defaults for redis
	if c.Redis.URL == "" {
		c.Redis.URL = "redis://localhost:6379/0"
	}

	// set defaults for providers
	for _, p := range []*ProviderConfig{&c.Providers.NewsAPI, &c.Providers.Guardian, &c.Providers.NYT} {
		if p.Timeout == 0 {
			p.Timeout = 30 * time.Second
		}
		if p.Country == "" {
			p.Country = "us"
		}
	}
	if c.Providers.RSS.Timeout == 0 {
		c.Providers.RSS.Timeout = 30 * time.Second
	}

	// set defaults for freshness windows
	if c.Freshness.Headlines == 0 {
		c.Freshness.Headlines = 15 * time.Minute
	}
	if c.Freshness.Search == 0 {
		c.Freshness.Search = 60 * time.Minute
	}

	// set defaults for background refresh
	if c.Refresh.Workers == 0 {
		c.Refresh.Workers = 2
	}
	if c.Refresh.QueueSize == 0 {
		c.Refresh.QueueSize = 64
	}
	if c.Refresh.MaxRetries == 0 {
		c.Refresh.MaxRetries = 3
	}
	if c.Refresh.JobTimeout == 0 {
		c.Refresh.JobTimeout = 2 * time.Minute
	}
}

// GetServerConfig returns listen address and timeout for the HTTP server
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// Provider returns the settings for a given provider key, false if the key
// has no dedicated settings block
func (c *Config) Provider(key string) (ProviderConfig, bool) {
	switch key {
	case "newsapi":
		return c.Providers.NewsAPI, true
	case "guardian":
		return c.Providers.Guardian, true
	case "nyt":
		return c.Providers.NYT, true
	}
	return ProviderConfig{}, false
}

// Window returns the freshness window for a query mode, the headlines
// window for anything unrecognized
func (c *FreshnessConfig) Window(mode string) time.Duration {
	if mode == "search" {
		return c.Search
	}
	return c.Headlines
}
