package provider_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsgate/pkg/config"
	"github.com/umputun/newsgate/pkg/domain"
	"github.com/umputun/newsgate/pkg/limiter"
	"github.com/umputun/newsgate/pkg/provider"
	"github.com/umputun/newsgate/pkg/taxonomy"
)

func TestRegistry_Build(t *testing.T) {
	t.Run("enabled providers built in order", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Providers.Enabled = []string{"guardian", "newsapi", "nyt", "rss"}

		providers, err := provider.NewRegistry().Build(cfg, nil, testTaxonomy())
		require.NoError(t, err)
		require.Len(t, providers, 4)
		assert.Equal(t, "guardian", providers[0].Key())
		assert.Equal(t, "newsapi", providers[1].Key())
		assert.Equal(t, "nyt", providers[2].Key())
		assert.Equal(t, "rss", providers[3].Key())
	})

	t.Run("unknown key is a construction error", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Providers.Enabled = []string{"newsapi", "bing-news"}

		_, err := provider.NewRegistry().Build(cfg, nil, testTaxonomy())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bing-news")
	})

	t.Run("registered constructor overrides built-in", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Providers.Enabled = []string{"newsapi"}

		reg := provider.NewRegistry()
		reg.Register("newsapi", func(_ *config.Config, _ limiter.Store, _ *taxonomy.Normalizer) provider.Provider {
			return &fakeProvider{key: "newsapi", headlines: []domain.NormalizedArticle{art("newsapi", "custom")}}
		})

		providers, err := reg.Build(cfg, nil, testTaxonomy())
		require.NoError(t, err)
		require.Len(t, providers, 1)
		got := providers[0].Headlines(context.Background(), provider.Query{Page: 1, PageSize: 10})
		require.Len(t, got, 1)
		assert.Equal(t, "custom", got[0].URL)
	})
}
