package provider

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsgate/pkg/config"
	"github.com/umputun/newsgate/pkg/domain"
	"github.com/umputun/newsgate/pkg/taxonomy"
)

// NYT talks to the New York Times APIs: top stories for headlines and
// article search for keywords. Article search pages are 0-indexed while the
// public contract is 1-indexed, so the page number is translated here. Dates
// travel as YYYYMMDD, the api key is the api-key query parameter. Images
// come from a nested multimedia array with format selection.
type NYT struct {
	base
}

const nytImageHost = "https://www.nytimes.com/"

// NewNYT creates the nyt provider
func NewNYT(cfg config.ProviderConfig, budget Budget, tax *taxonomy.Normalizer) *NYT {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.nytimes.com"
	}
	return &NYT{base: newBase("nyt", cfg.Key, baseURL, cfg.Timeout, budget, tax)}
}

// Key returns the provider identifier
func (p *NYT) Key() string { return "nyt" }

// Configured reports whether an api key is present
func (p *NYT) Configured() bool { return p.configured() }

// Headlines fetches the top stories for a section, "home" when no category
// filter is set
func (p *NYT) Headlines(ctx context.Context, q Query) []domain.NormalizedArticle {
	if !p.allowed(ctx) {
		return nil
	}

	section := "home"
	if q.Category != "" {
		section = q.Category
	}

	params := url.Values{}
	params.Set("api-key", p.apiKey)
	reqURL := p.baseURL + "/svc/topstories/v2/" + url.PathEscape(section) + ".json?" + params.Encode()

	var resp nytTopStoriesResponse
	if err := p.getJSON(ctx, reqURL, nil, &resp); err != nil {
		lgr.Printf("[WARN] nyt top stories fetch failed (section=%q): %v", section, err)
		return nil
	}

	articles := make([]domain.NormalizedArticle, 0, len(resp.Results))
	for _, raw := range resp.Results {
		if raw.URL == "" {
			continue
		}
		payload, err := json.Marshal(raw)
		if err != nil {
			payload = nil
		}

		articles = append(articles, domain.NormalizedArticle{
			Title:       raw.Title,
			Description: raw.Abstract,
			URL:         raw.URL,
			ImageURL:    topStoryImage(raw.Multimedia),
			Author:      strings.TrimPrefix(raw.Byline, "By "),
			SourceName:  "The New York Times",
			Provider:    p.Key(),
			PublishedAt: parseTime(time.RFC3339, raw.PublishedDate),
			Category:    p.tax.Canonicalize(raw.Section, p.Key()),
			ExternalID:  raw.URL, // top stories carry no stable id
			RawPayload:  payload,
		})
	}
	return articles
}

// Search fetches articles matching the keyword via article search
func (p *NYT) Search(ctx context.Context, q Query) []domain.NormalizedArticle {
	if !p.allowed(ctx) {
		return nil
	}

	params := url.Values{}
	params.Set("api-key", p.apiKey)
	params.Set("q", q.Keyword)
	params.Set("sort", "newest")
	params.Set("page", strconv.Itoa(q.Page-1)) // article search is 0-indexed
	if q.Category != "" {
		params.Set("fq", `section_name:("`+q.Category+`")`)
	}
	if !q.From.IsZero() {
		params.Set("begin_date", q.From.Format("20060102"))
	}
	if !q.To.IsZero() {
		params.Set("end_date", q.To.Format("20060102"))
	}

	var resp nytSearchResponse
	if err := p.getJSON(ctx, p.baseURL+"/svc/search/v2/articlesearch.json?"+params.Encode(), nil, &resp); err != nil {
		lgr.Printf("[WARN] nyt article search failed (keyword=%q page=%d): %v", q.Keyword, q.Page, err)
		return nil
	}
	if resp.Status != "OK" {
		lgr.Printf("[WARN] nyt article search returned status %q", resp.Status)
		return nil
	}

	articles := make([]domain.NormalizedArticle, 0, len(resp.Response.Docs))
	for _, raw := range resp.Response.Docs {
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
			Title:       raw.Headline.Main,
			Description: raw.Abstract,
			URL:         raw.WebURL,
			ImageURL:    searchDocImage(raw.Multimedia),
			Author:      strings.TrimPrefix(raw.Byline.Original, "By "),
			SourceName:  "The New York Times",
			Provider:    p.Key(),
			PublishedAt: parseTime("2006-01-02T15:04:05Z0700", raw.PubDate), // pub_date offset has no colon
			Category:    p.tax.Canonicalize(raw.SectionName, p.Key()),
			ExternalID:  externalID,
			RawPayload:  payload,
		})
	}
	return articles
}

// topStoryImage picks the largest multimedia entry, preferring the
// superJumbo format
func topStoryImage(media []nytTopStoryMedia) string {
	if len(media) == 0 {
		return ""
	}
	for _, m := range media {
		if m.Format == "superJumbo" || m.Format == "Super Jumbo" {
			return m.URL
		}
	}
	return media[0].URL
}

// searchDocImage picks an image from article search multimedia; urls there
// are site-relative
func searchDocImage(media []nytSearchMedia) string {
	for _, m := range media {
		if m.URL == "" {
			continue
		}
		if strings.HasPrefix(m.URL, "http") {
			return m.URL
		}
		return nytImageHost + m.URL
	}
	return ""
}

type nytTopStoriesResponse struct {
	Status  string           `json:"status"`
	Results []nytTopStoryDoc `json:"results"`
}

type nytTopStoryDoc struct {
	Section       string             `json:"section"`
	Title         string             `json:"title"`
	Abstract      string             `json:"abstract"`
	URL           string             `json:"url"`
	Byline        string             `json:"byline"`
	PublishedDate string             `json:"published_date"`
	Multimedia    []nytTopStoryMedia `json:"multimedia"`
}

type nytTopStoryMedia struct {
	URL    string `json:"url"`
	Format string `json:"format"`
	Type   string `json:"type"`
}

type nytSearchResponse struct {
	Status   string `json:"status"`
	Response struct {
		Docs []nytSearchDoc `json:"docs"`
	} `json:"response"`
}

type nytSearchDoc struct {
	ID       string `json:"_id"`
	WebURL   string `json:"web_url"`
	Abstract string `json:"abstract"`
	Headline struct {
		Main string `json:"main"`
	} `json:"headline"`
	Byline struct {
		Original string `json:"original"`
	} `json:"byline"`
	PubDate     string           `json:"pub_date"`
	SectionName string           `json:"section_name"`
	Multimedia  []nytSearchMedia `json:"multimedia"`
}

type nytSearchMedia struct {
	URL     string `json:"url"`
	Subtype string `json:"subtype"`
}
