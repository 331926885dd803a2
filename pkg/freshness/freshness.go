package freshness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsgate/pkg/config"
	"github.com/umputun/newsgate/pkg/domain"
	"github.com/umputun/newsgate/pkg/provider"
)

//go:generate moq --out mocks/store.go --pkg mocks --with-resets --skip-ensure . Store
//go:generate moq --out mocks/articles.go --pkg mocks --with-resets --skip-ensure . Articles
//go:generate moq --out mocks/fetcher.go --pkg mocks --with-resets --skip-ensure . Fetcher

// ErrKeywordRequired is returned by SearchArticles when no keyword is given
var ErrKeywordRequired = errors.New("search requires a keyword")

// Store is the expiring key-value storage backing the fetch clock
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Articles is the persistent article storage
type Articles interface {
	UpsertBatch(ctx context.Context, articles []domain.NormalizedArticle) (int, error)
	Find(ctx context.Context, filter domain.ArticleFilter, page, pageSize int) (domain.Page, error)
	Get(ctx context.Context, id int64) (*domain.Article, error)
	Delete(ctx context.Context, id int64) error
}

// Fetcher fans one query out across the enabled providers
type Fetcher interface {
	Fetch(ctx context.Context, mode string, q provider.Query) []domain.NormalizedArticle
}

// Request is one read request: a filter set plus pagination. Pagination
// never participates in freshness decisions.
type Request struct {
	Filter   domain.ArticleFilter
	Page     int
	PageSize int
}

// Service decides per request whether stored articles are fresh enough to
// serve, a blocking provider fetch is needed, or stale data can be served
// while a background refresh catches up. All reads go through storage; the
// providers are never the direct source of a response.
type Service struct {
	store    Store
	articles Articles
	fetcher  Fetcher
	clock    *Clock
	windows  config.FreshnessConfig

	jobs       chan job
	workers    int
	maxRetries int
	jobTimeout time.Duration
	pending    pendingSet

	now func() time.Time
}

// NewService creates the freshness service. Call Run to start the
// background refresh workers.
func NewService(store Store, articles Articles, fetcher Fetcher,
	windows config.FreshnessConfig, refresh config.RefreshConfig) *Service {
	return &Service{
		store:      store,
		articles:   articles,
		fetcher:    fetcher,
		clock:      NewClock(store),
		windows:    windows,
		jobs:       make(chan job, refresh.QueueSize),
		workers:    refresh.Workers,
		maxRetries: refresh.MaxRetries,
		jobTimeout: refresh.JobTimeout,
		pending:    newPendingSet(),
		now:        time.Now,
	}
}

// GetHeadlines serves headline articles for the given filters, refreshing
// from providers when the stored data is stale
func (s *Service) GetHeadlines(ctx context.Context, req Request) (domain.Page, error) {
	return s.serve(ctx, provider.ModeHeadlines, req)
}

// SearchArticles serves keyword search results, refreshing from providers
// when the stored data is stale. The keyword is mandatory.
func (s *Service) SearchArticles(ctx context.Context, req Request) (domain.Page, error) {
	if req.Filter.Keyword == "" {
		return domain.Page{}, ErrKeywordRequired
	}
	return s.serve(ctx, provider.ModeSearch, req)
}

// GetArticle returns a single stored article by id
func (s *Service) GetArticle(ctx context.Context, id int64) (*domain.Article, error) {
	return s.articles.Get(ctx, id)
}

// DeleteArticle removes a stored article by id
func (s *Service) DeleteArticle(ctx context.Context, id int64) error {
	return s.articles.Delete(ctx, id)
}

// serve implements the freshness state machine: fresh data is served as is,
// a stale empty result blocks on a provider fetch, a stale non-empty result
// is served immediately with a background refresh scheduled.
func (s *Service) serve(ctx context.Context, mode string, req Request) (domain.Page, error) {
	window := s.windows.Window(mode)
	key := s.clock.Key(mode, req.Filter)

	page, err := s.articles.Find(ctx, req.Filter, req.Page, req.PageSize)
	if err != nil {
		return domain.Page{}, fmt.Errorf("find articles: %w", err)
	}

	stale, err := s.isStale(ctx, key, window)
	if err != nil {
		// a broken clock degrades to treating data as stale, reads keep working
		lgr.Printf("[WARN] fetch clock unavailable, assuming stale: %v", err)
		stale = true
	}
	if !stale {
		return page, nil
	}

	if page.Total == 0 {
		// nothing to serve, fetch synchronously and re-query
		if err := s.refresh(ctx, mode, req, key, window); err != nil {
			return domain.Page{}, err
		}
		page, err = s.articles.Find(ctx, req.Filter, req.Page, req.PageSize)
		if err != nil {
			return domain.Page{}, fmt.Errorf("find articles after refresh: %w", err)
		}
		return page, nil
	}

	// serve stale data now, refresh behind the request
	s.enqueue(job{mode: mode, req: req, key: key, window: window})
	return page, nil
}

func (s *Service) isStale(ctx context.Context, key string, window time.Duration) (bool, error) {
	last, ok, err := s.clock.Last(ctx, key)
	if err != nil {
		return true, err
	}
	if !ok {
		return true, nil
	}
	return s.now().Sub(last) >= window, nil
}

// refresh fetches from the providers, stores the results and touches the
// fetch clock. The clock is touched even when providers return nothing:
// an empty result is still an answer, and retrying it every request would
// hammer the provider quotas. Storage failures propagate without touching
// the clock so the next attempt retries the whole cycle.
func (s *Service) refresh(ctx context.Context, mode string, req Request, key string, window time.Duration) error {
	q := provider.Query{
		Keyword:  req.Filter.Keyword,
		Category: req.Filter.Category,
		Source:   req.Filter.Source,
		Provider: req.Filter.Provider,
		Author:   req.Filter.Author,
		From:     req.Filter.From,
		To:       req.Filter.To,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	fetched := s.fetcher.Fetch(ctx, mode, q)
	if len(fetched) > 0 {
		stored, err := s.articles.UpsertBatch(ctx, fetched)
		if err != nil {
			return fmt.Errorf("store fetched articles: %w", err)
		}
		lgr.Printf("[INFO] refreshed %q (mode=%s): fetched %d, stored %d", key, mode, len(fetched), stored)
	} else {
		lgr.Printf("[INFO] refreshed %q (mode=%s): providers returned nothing", key, mode)
	}

	if err := s.clock.Touch(ctx, key, window); err != nil {
		// data is stored, a missed touch only causes one extra refresh
		lgr.Printf("[WARN] failed to touch fetch clock %q: %v", key, err)
	}
	return nil
}
