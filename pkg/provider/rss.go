package provider

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/umputun/newsgate/pkg/config"
	"github.com/umputun/newsgate/pkg/domain"
	"github.com/umputun/newsgate/pkg/taxonomy"
)

// RSS aggregates plain RSS/Atom feeds as a provider. It needs no api key,
// so Configured means at least one feed URL is present. External APIs have
// no keyword search, so both modes fetch the same feeds; Search filters
// client-side. Category and pagination filters also apply client-side.
type RSS struct {
	feeds    []config.RSSFeed
	parser   *gofeed.Parser
	timeout  time.Duration
	tax      *taxonomy.Normalizer
	sanitize *bluemonday.Policy
}

// NewRSS creates the rss provider
func NewRSS(cfg config.RSSConfig, tax *taxonomy.Normalizer) *RSS {
	return &RSS{
		feeds:    cfg.Feeds,
		parser:   gofeed.NewParser(),
		timeout:  cfg.Timeout,
		tax:      tax,
		sanitize: bluemonday.StrictPolicy(),
	}
}

// Key returns the provider identifier
func (p *RSS) Key() string { return "rss" }

// Configured reports whether any feeds are configured
func (p *RSS) Configured() bool { return len(p.feeds) > 0 }

// Headlines fetches all configured feeds, optionally filtered by category
func (p *RSS) Headlines(ctx context.Context, q Query) []domain.NormalizedArticle {
	articles := p.fetchAll(ctx)
	return paginate(filterArticles(articles, "", q.Category), q.Page, q.PageSize)
}

// Search fetches all configured feeds and keeps keyword matches
func (p *RSS) Search(ctx context.Context, q Query) []domain.NormalizedArticle {
	articles := p.fetchAll(ctx)
	return paginate(filterArticles(articles, q.Keyword, q.Category), q.Page, q.PageSize)
}

func (p *RSS) fetchAll(ctx context.Context) []domain.NormalizedArticle {
	if !p.Configured() {
		return nil
	}

	var articles []domain.NormalizedArticle
	for _, f := range p.feeds {
		fetchCtx, cancel := context.WithTimeout(ctx, p.timeout)
		feed, err := p.parser.ParseURLWithContext(f.URL, fetchCtx)
		cancel()
		if err != nil {
			lgr.Printf("[WARN] rss fetch failed for %s (%s): %v", f.Name, f.URL, err)
			continue
		}

		for _, item := range feed.Items {
			if item.Link == "" {
				continue
			}

			published := time.Now().UTC()
			if item.PublishedParsed != nil {
				published = *item.PublishedParsed
			} else if item.UpdatedParsed != nil {
				published = *item.UpdatedParsed
			}

			author := ""
			if item.Author != nil {
				author = item.Author.Name
			}

			category := ""
			for _, c := range item.Categories {
				if canonical := p.tax.Canonicalize(c, p.Key()); canonical != "" {
					category = canonical
					break
				}
			}

			externalID := item.GUID
			if externalID == "" {
				externalID = item.Link
			}

			payload, err := json.Marshal(map[string]string{"feed": f.Name, "guid": item.GUID, "link": item.Link})
			if err != nil {
				payload = nil
			}

			articles = append(articles, domain.NormalizedArticle{
				Title:       item.Title,
				Description: p.sanitize.Sanitize(item.Description),
				URL:         item.Link,
				ImageURL:    itemImage(item),
				Author:      author,
				SourceName:  f.Name,
				Provider:    p.Key(),
				PublishedAt: published,
				Category:    category,
				ExternalID:  externalID,
				RawPayload:  payload,
			})
		}
	}
	return articles
}

// itemImage extracts an image url from the item enclosure or feed image
func itemImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return ""
}

// filterArticles keeps articles matching the keyword (title or description
// substring, case-insensitive) and the canonical category
func filterArticles(articles []domain.NormalizedArticle, keyword, category string) []domain.NormalizedArticle {
	if keyword == "" && category == "" {
		return articles
	}
	kw := strings.ToLower(keyword)
	out := make([]domain.NormalizedArticle, 0, len(articles))
	for _, a := range articles {
		if category != "" && a.Category != category {
			continue
		}
		if kw != "" && !strings.Contains(strings.ToLower(a.Title), kw) &&
			!strings.Contains(strings.ToLower(a.Description), kw) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// paginate applies 1-indexed paging client-side
func paginate(articles []domain.NormalizedArticle, page, pageSize int) []domain.NormalizedArticle {
	if page < 1 || pageSize <= 0 {
		return articles
	}
	start := (page - 1) * pageSize
	if start >= len(articles) {
		return nil
	}
	end := start + pageSize
	if end > len(articles) {
		end = len(articles)
	}
	return articles[start:end]
}
