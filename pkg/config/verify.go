package config

import (
	"fmt"

	"github.com/invopop/jsonschema"
)

// Verify performs cross-field validation of the loaded configuration. A
// provider without an API key passes verification: it degrades to an
// unconfigured provider returning empty results.
func Verify(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive")
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if cfg.Redis.URL == "" {
		return fmt.Errorf("redis.url is required")
	}

	if len(cfg.Providers.Enabled) == 0 {
		return fmt.Errorf("providers.enabled must list at least one provider")
	}
	seen := map[string]bool{}
	for _, key := range cfg.Providers.Enabled {
		if key == "" {
			return fmt.Errorf("providers.enabled contains an empty key")
		}
		if seen[key] {
			return fmt.Errorf("providers.enabled lists %q twice", key)
		}
		seen[key] = true
	}

	if cfg.Freshness.Headlines <= 0 {
		return fmt.Errorf("freshness.headlines must be positive")
	}
	if cfg.Freshness.Search <= 0 {
		return fmt.Errorf("freshness.search must be positive")
	}

	for i, cat := range cfg.Taxonomy.Categories {
		if cat.Key == "" {
			return fmt.Errorf("taxonomy.categories[%d] has no key", i)
		}
	}

	for _, lim := range []struct {
		name string
		cfg  LimitsConfig
	}{
		{"newsapi", cfg.Providers.NewsAPI.Limits},
		{"guardian", cfg.Providers.Guardian.Limits},
		{"nyt", cfg.Providers.NYT.Limits},
	} {
		if lim.cfg.Daily < 0 || lim.cfg.PerMinute < 0 || lim.cfg.PerSecond < 0 {
			return fmt.Errorf("providers.%s.limits must be non-negative", lim.name)
		}
	}

	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
