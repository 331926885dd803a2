package provider

import (
	"fmt"

	"github.com/umputun/newsgate/pkg/config"
	"github.com/umputun/newsgate/pkg/limiter"
	"github.com/umputun/newsgate/pkg/taxonomy"
)

// Constructor builds a provider from the application config and shared
// collaborators
type Constructor func(cfg *config.Config, store limiter.Store, tax *taxonomy.Normalizer) Provider

// Registry maps provider keys to constructors. Adding a provider means
// registering a constructor, no central switch to touch.
type Registry struct {
	constructors map[string]Constructor
}

// NewRegistry creates a registry with the built-in providers registered
func NewRegistry() *Registry {
	r := &Registry{constructors: map[string]Constructor{}}

	r.Register("newsapi", func(cfg *config.Config, store limiter.Store, tax *taxonomy.Normalizer) Provider {
		pc := cfg.Providers.NewsAPI
		return NewNewsAPI(pc, budgetFor(store, "newsapi", pc.Limits), tax)
	})
	r.Register("guardian", func(cfg *config.Config, store limiter.Store, tax *taxonomy.Normalizer) Provider {
		pc := cfg.Providers.Guardian
		return NewGuardian(pc, budgetFor(store, "guardian", pc.Limits), tax)
	})
	r.Register("nyt", func(cfg *config.Config, store limiter.Store, tax *taxonomy.Normalizer) Provider {
		pc := cfg.Providers.NYT
		return NewNYT(pc, budgetFor(store, "nyt", pc.Limits), tax)
	})
	r.Register("rss", func(cfg *config.Config, _ limiter.Store, tax *taxonomy.Normalizer) Provider {
		return NewRSS(cfg.Providers.RSS, tax)
	})

	return r
}

// Register adds a constructor under a key, replacing any existing one
func (r *Registry) Register(key string, c Constructor) {
	r.constructors[key] = c
}

// Build instantiates the enabled providers in their configured order. An
// unknown key is a construction-time error, not a runtime skip.
func (r *Registry) Build(cfg *config.Config, store limiter.Store, tax *taxonomy.Normalizer) ([]Provider, error) {
	providers := make([]Provider, 0, len(cfg.Providers.Enabled))
	for _, key := range cfg.Providers.Enabled {
		c, ok := r.constructors[key]
		if !ok {
			return nil, fmt.Errorf("unknown provider %q in providers.enabled", key)
		}
		providers = append(providers, c(cfg, store, tax))
	}
	return providers, nil
}

// budgetFor returns a limiter for the policy, nil when no caps are defined
// so an uncapped provider skips counter bookkeeping entirely
func budgetFor(store limiter.Store, key string, limits config.LimitsConfig) Budget {
	if limits.Daily == 0 && limits.PerMinute == 0 && limits.PerSecond == 0 {
		return nil
	}
	return limiter.New(store, key, limiter.Policy{
		Daily:     limits.Daily,
		PerMinute: limits.PerMinute,
		PerSecond: limits.PerSecond,
	})
}
