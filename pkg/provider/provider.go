// Package provider implements integrations with external news APIs. Each
// provider normalizes its raw items into domain.NormalizedArticle, applies
// the per-provider rate limiter before any outbound call, and recovers every
// failure at its own boundary: network errors, bad statuses, schema
// mismatches and rate-limit skips all degrade to an empty result, never an
// error crossing into the caller.
package provider

import (
	"context"
	"time"

	"github.com/umputun/newsgate/pkg/domain"
)

// query modes, matching the two fetch operations every provider implements
const (
	ModeHeadlines = "headlines"
	ModeSearch    = "search"
)

// Query carries the filter set and pagination for one provider call. Page is
// 1-indexed at this boundary; variants with 0-indexed native paging
// translate internally.
type Query struct {
	Keyword  string
	Category string
	Source   string
	Provider string // restricts the fan-out to a single provider key
	Author   string
	From     time.Time
	To       time.Time
	Page     int
	PageSize int
}

// Provider is one integration with a specific external news API
type Provider interface {
	// Key returns the provider identifier, e.g. "newsapi"
	Key() string

	// Configured reports whether the provider can make calls; an
	// unconfigured provider returns empty results without any HTTP I/O
	Configured() bool

	// Headlines fetches current top headlines matching the query
	Headlines(ctx context.Context, q Query) []domain.NormalizedArticle

	// Search fetches articles matching the query keyword
	Search(ctx context.Context, q Query) []domain.NormalizedArticle
}

// Fetch dispatches to the operation matching the mode
func Fetch(ctx context.Context, p Provider, mode string, q Query) []domain.NormalizedArticle {
	if mode == ModeSearch {
		return p.Search(ctx, q)
	}
	return p.Headlines(ctx, q)
}
