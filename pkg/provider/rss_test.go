package provider_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsgate/pkg/config"
	"github.com/umputun/newsgate/pkg/provider"
)

const testFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Tech Blog</title>
    <link>https://blog.example.com</link>
    <item>
      <title>Go Generics in Practice</title>
      <link>https://blog.example.com/go-generics</link>
      <guid>blog-1001</guid>
      <description>Using &lt;em&gt;generics&lt;/em&gt; day to day</description>
      <pubDate>Sun, 01 Jun 2025 09:00:00 GMT</pubDate>
      <category>Technology</category>
    </item>
    <item>
      <title>Weekend Football Recap</title>
      <link>https://blog.example.com/football</link>
      <pubDate>Sun, 01 Jun 2025 08:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func rssProvider(t *testing.T) (*provider.RSS, *httptest.Server) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(testFeedXML))
	}))
	t.Cleanup(ts.Close)

	cfg := config.RSSConfig{
		Feeds:   []config.RSSFeed{{Name: "Tech Blog", URL: ts.URL}},
		Timeout: 5 * time.Second,
	}
	return provider.NewRSS(cfg, testTaxonomy()), ts
}

func TestRSS_Headlines(t *testing.T) {
	p, _ := rssProvider(t)
	require.True(t, p.Configured())

	articles := p.Headlines(context.Background(), provider.Query{Page: 1, PageSize: 10})
	require.Len(t, articles, 2)

	a := articles[0]
	assert.Equal(t, "Go Generics in Practice", a.Title)
	assert.Equal(t, "Using generics day to day", a.Description, "html stripped")
	assert.Equal(t, "blog-1001", a.ExternalID, "guid preferred as external id")
	assert.Equal(t, "Tech Blog", a.SourceName)
	assert.Equal(t, "rss", a.Provider)
	assert.Equal(t, "technology", a.Category, "item category canonicalized")
	assert.Equal(t, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), a.PublishedAt.UTC())

	assert.Equal(t, "https://blog.example.com/football", articles[1].ExternalID,
		"link used when guid missing")
}

func TestRSS_Search(t *testing.T) {
	p, _ := rssProvider(t)

	articles := p.Search(context.Background(), provider.Query{Keyword: "football", Page: 1, PageSize: 10})
	require.Len(t, articles, 1)
	assert.Equal(t, "Weekend Football Recap", articles[0].Title)

	assert.Empty(t, p.Search(context.Background(), provider.Query{Keyword: "no-such-word", Page: 1, PageSize: 10}))
}

func TestRSS_CategoryFilter(t *testing.T) {
	p, _ := rssProvider(t)

	articles := p.Headlines(context.Background(), provider.Query{Category: "technology", Page: 1, PageSize: 10})
	require.Len(t, articles, 1)
	assert.Equal(t, "Go Generics in Practice", articles[0].Title)
}

func TestRSS_Pagination(t *testing.T) {
	p, _ := rssProvider(t)

	page1 := p.Headlines(context.Background(), provider.Query{Page: 1, PageSize: 1})
	page2 := p.Headlines(context.Background(), provider.Query{Page: 2, PageSize: 1})
	page3 := p.Headlines(context.Background(), provider.Query{Page: 3, PageSize: 1})

	require.Len(t, page1, 1)
	require.Len(t, page2, 1)
	assert.NotEqual(t, page1[0].URL, page2[0].URL)
	assert.Empty(t, page3)
}

func TestRSS_Unconfigured(t *testing.T) {
	p := provider.NewRSS(config.RSSConfig{Timeout: time.Second}, testTaxonomy())
	assert.False(t, p.Configured())
	assert.Empty(t, p.Headlines(context.Background(), provider.Query{Page: 1, PageSize: 10}))
}

func TestRSS_FeedFailureIsolated(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testFeedXML))
	}))
	defer good.Close()

	cfg := config.RSSConfig{
		Feeds: []config.RSSFeed{
			{Name: "Broken", URL: "http://127.0.0.1:1/feed"},
			{Name: "Good", URL: good.URL},
		},
		Timeout: 2 * time.Second,
	}
	p := provider.NewRSS(cfg, testTaxonomy())

	articles := p.Headlines(context.Background(), provider.Query{Page: 1, PageSize: 10})
	assert.Len(t, articles, 2, "broken feed skipped, good feed still served")
}
