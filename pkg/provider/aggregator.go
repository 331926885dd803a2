package provider

import (
	"context"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsgate/pkg/domain"
)

// Aggregator fans one request out across the enabled providers and merges
// the results in provider-declared order. Providers are invoked
// sequentially: the per-provider limiters keep simple sequential counters
// and the throttle delays never stack across providers in surprising ways.
// The aggregator itself never fails; provider isolation is guaranteed by
// the providers' own no-error contract.
type Aggregator struct {
	providers []Provider
}

// NewAggregator creates an aggregator over an ordered provider list
func NewAggregator(providers []Provider) *Aggregator {
	return &Aggregator{providers: providers}
}

// Fetch invokes the operation matching the mode on every provider and
// concatenates the results
func (a *Aggregator) Fetch(ctx context.Context, mode string, q Query) []domain.NormalizedArticle {
	var merged []domain.NormalizedArticle
	for _, p := range a.providers {
		if q.Provider != "" && q.Provider != p.Key() {
			continue
		}
		articles := Fetch(ctx, p, mode, q)
		lgr.Printf("[DEBUG] provider %s returned %d articles (mode=%s)", p.Key(), len(articles), mode)
		merged = append(merged, articles...)
	}
	return merged
}

// Providers returns the ordered provider list
func (a *Aggregator) Providers() []Provider {
	return a.providers
}
