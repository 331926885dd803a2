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

// Guardian talks to the Guardian Open Platform content search. Both modes
// use the same /search endpoint: headlines order by newest, search adds the
// keyword. Dates travel as YYYY-MM-DD, pages are 1-indexed, the api key is
// the api-key query parameter. The trailText field carries HTML and is
// stripped before it becomes a description.
type Guardian struct {
	base
}

// NewGuardian creates the guardian provider
func NewGuardian(cfg config.ProviderConfig, budget Budget, tax *taxonomy.Normalizer) *Guardian {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://content.guardianapis.com"
	}
	return &Guardian{base: newBase("guardian", cfg.Key, baseURL, cfg.Timeout, budget, tax)}
}

// Key returns the provider identifier
func (p *Guardian) Key() string { return "guardian" }

// Configured reports whether an api key is present
func (p *Guardian) Configured() bool { return p.configured() }

// Headlines fetches the newest content, optionally narrowed to a section
func (p *Guardian) Headlines(ctx context.Context, q Query) []domain.NormalizedArticle {
	return p.search(ctx, q, "")
}

// Search fetches content matching the query keyword
func (p *Guardian) Search(ctx context.Context, q Query) []domain.NormalizedArticle {
	return p.search(ctx, q, q.Keyword)
}

func (p *Guardian) search(ctx context.Context, q Query, keyword string) []domain.NormalizedArticle {
	if !p.allowed(ctx) {
		return nil
	}

	params := url.Values{}
	params.Set("api-key", p.apiKey)
	params.Set("order-by", "newest")
	params.Set("show-fields", "trailText,thumbnail,byline")
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("page-size", strconv.Itoa(q.PageSize))
	if keyword != "" {
		params.Set("q", keyword)
	}
	if q.Category != "" {
		params.Set("section", q.Category)
	}
	if !q.From.IsZero() {
		params.Set("from-date", q.From.Format("2006-01-02"))
	}
	if !q.To.IsZero() {
		params.Set("to-date", q.To.Format("2006-01-02"))
	}

	var resp guardianResponse
	if err := p.getJSON(ctx, p.baseURL+"/search?"+params.Encode(), nil, &resp); err != nil {
		lgr.Printf("[WARN] guardian fetch failed (category=%q keyword=%q page=%d): %v",
			q.Category, keyword, q.Page, err)
		return nil
	}
	if resp.Response.Status != "ok" {
		lgr.Printf("[WARN] guardian returned status %q", resp.Response.Status)
		return nil
	}

	articles := make([]domain.NormalizedArticle, 0, len(resp.Response.Results))
	for _, raw := range resp.Response.Results {
		if raw.WebURL == "" {
			continue
		}
		payload, err := json.Marshal(raw)
		if err != nil {
			payload = nil
		}

		externalID := raw.ID
		if externalID == "" {
			externalID = raw.WebURL
		}

		articles = append(articles, domain.NormalizedArticle{
			Title:       raw.WebTitle,
			Description: p.stripHTML(raw.Fields.TrailText),
			URL:         raw.WebURL,
			ImageURL:    raw.Fields.Thumbnail,
			Author:      raw.Fields.Byline,
			SourceName:  "The Guardian",
			Provider:    p.Key(),
			PublishedAt: parseTime(time.RFC3339, raw.WebPublicationDate),
			Category:    p.tax.Canonicalize(raw.SectionID, p.Key()),
			ExternalID:  externalID,
			RawPayload:  payload,
		})
	}
	return articles
}

type guardianResponse struct {
	Response struct {
		Status  string           `json:"status"`
		Total   int              `json:"total"`
		Results []guardianResult `json:"results"`
	} `json:"response"`
}

type guardianResult struct {
	ID                 string `json:"id"`
	WebTitle           string `json:"webTitle"`
	WebURL             string `json:"webUrl"`
	WebPublicationDate string `json:"webPublicationDate"`
	SectionID          string `json:"sectionId"`
	SectionName        string `json:"sectionName"`
	Fields             struct {
		TrailText string `json:"trailText"`
		Thumbnail string `json:"thumbnail"`
		Byline    string `json:"byline"`
	} `json:"fields"`
}
