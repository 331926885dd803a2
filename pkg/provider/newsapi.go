package provider

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsgate/pkg/config"
	"github.com/umputun/newsgate/pkg/domain"
	"github.com/umputun/newsgate/pkg/taxonomy"
)

// NewsAPI talks to newsapi.org. Headlines go to /top-headlines with
// country/category/sources filters, keyword search to /everything with a
// date range. The api key travels as a query parameter, pages are 1-indexed.
type NewsAPI struct {
	base
	country string
}

// NewNewsAPI creates the newsapi provider
func NewNewsAPI(cfg config.ProviderConfig, budget Budget, tax *taxonomy.Normalizer) *NewsAPI {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://newsapi.org/v2"
	}
	return &NewsAPI{
		base:    newBase("newsapi", cfg.Key, baseURL, cfg.Timeout, budget, tax),
		country: cfg.Country,
	}
}

// Key returns the provider identifier
func (p *NewsAPI) Key() string { return "newsapi" }

// Configured reports whether an api key is present
func (p *NewsAPI) Configured() bool { return p.configured() }

// Headlines fetches top headlines with country, category and source filters
func (p *NewsAPI) Headlines(ctx context.Context, q Query) []domain.NormalizedArticle {
	if !p.allowed(ctx) {
		return nil
	}

	params := url.Values{}
	params.Set("apiKey", p.apiKey)
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("pageSize", strconv.Itoa(q.PageSize))
	if q.Source != "" {
		// newsapi rejects sources combined with country or category
		params.Set("sources", q.Source)
	} else {
		params.Set("country", p.country)
		if q.Category != "" {
			params.Set("category", q.Category)
		}
	}
	if q.Keyword != "" {
		params.Set("q", q.Keyword)
	}

	return p.fetch(ctx, p.baseURL+"/top-headlines?"+params.Encode(), q)
}

// Search fetches articles matching a keyword from the /everything endpoint
func (p *NewsAPI) Search(ctx context.Context, q Query) []domain.NormalizedArticle {
	if !p.allowed(ctx) {
		return nil
	}

	params := url.Values{}
	params.Set("apiKey", p.apiKey)
	params.Set("q", q.Keyword)
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("pageSize", strconv.Itoa(q.PageSize))
	if q.Source != "" {
		params.Set("sources", q.Source)
	}
	if !q.From.IsZero() {
		params.Set("from", q.From.Format("2006-01-02"))
	}
	if !q.To.IsZero() {
		params.Set("to", q.To.Format("2006-01-02"))
	}

	return p.fetch(ctx, p.baseURL+"/everything?"+params.Encode(), q)
}

func (p *NewsAPI) fetch(ctx context.Context, reqURL string, q Query) []domain.NormalizedArticle {
	var resp newsAPIResponse
	if err := p.getJSON(ctx, reqURL, nil, &resp); err != nil {
		lgr.Printf("[WARN] newsapi fetch failed (category=%q source=%q keyword=%q page=%d): %v",
			q.Category, q.Source, q.Keyword, q.Page, err)
		return nil
	}
	if resp.Status != "ok" {
		lgr.Printf("[WARN] newsapi returned status %q: %s", resp.Status, resp.Message)
		return nil
	}

	articles := make([]domain.NormalizedArticle, 0, len(resp.Articles))
	for _, raw := range resp.Articles {
		if raw.URL == "" {
			continue
		}
		payload, err := json.Marshal(raw)
		if err != nil {
			payload = nil
		}

		// newsapi items carry no category of their own; the requested
		// category, already canonical, applies to every returned item
		articles = append(articles, domain.NormalizedArticle{
			Title:       raw.Title,
			Description: p.stripHTML(raw.Description),
			URL:         raw.URL,
			ImageURL:    raw.URLToImage,
			Author:      raw.Author,
			SourceName:  raw.Source.Name,
			Provider:    p.Key(),
			PublishedAt: parseTime(time.RFC3339, raw.PublishedAt),
			Category:    p.tax.Canonicalize(q.Category, p.Key()),
			ExternalID:  raw.URL, // no dedicated id field
			RawPayload:  payload,
		})
	}
	return articles
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}
