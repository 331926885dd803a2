package domain

import "time"

// Article represents a persisted news article. Exactly one row exists per
// distinct URL regardless of how many providers reported it; Identity is the
// sha1 of the URL and serves as the dedup key.
type Article struct {
	ID          int64
	Title       string
	Description string
	URL         string
	Identity    string
	ImageURL    string
	Author      string
	SourceID    *int64
	Provider    string
	PublishedAt time.Time
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NormalizedArticle is the common shape every provider emits before
// persistence. It lives only between a provider call and the store upsert.
type NormalizedArticle struct {
	Title       string
	Description string
	URL         string
	ImageURL    string
	Author      string
	SourceName  string
	Provider    string
	PublishedAt time.Time
	Category    string
	ExternalID  string
	RawPayload  []byte
}

// Source represents a provider-native publication, e.g. "bbc-news" on
// NewsAPI. Inactive sources are excluded from lookups.
type Source struct {
	ID       int64
	SourceID string
	Name     string
	Provider string
	Active   bool
}

// ArticleSource links an article to the provider that reported it, keeping
// the raw provider payload. (Provider, ExternalID) is unique; multiple
// providers reporting the same URL each get their own row pointing at the
// same article.
type ArticleSource struct {
	ID         int64
	ArticleID  int64
	Provider   string
	ExternalID string
	Metadata   []byte
}

// ArticleFilter represents filtering criteria for article queries
type ArticleFilter struct {
	Keyword  string
	Category string
	Source   string
	Provider string
	Author   string
	From     time.Time
	To       time.Time
}

// Page is one page of articles with the total match count for the filter
type Page struct {
	Articles []Article
	Total    int
	Page     int
	PageSize int
}
