package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsgate/pkg/domain"
	"github.com/umputun/newsgate/pkg/freshness"
	"github.com/umputun/newsgate/pkg/repository"
	"github.com/umputun/newsgate/server/mocks"
)

func testServer(news *mocks.NewsMock, prefs *mocks.PreferencesMock) *httptest.Server {
	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return "127.0.0.1:0", time.Minute },
	}
	srv := New(cfg, news, prefs, "test", false)
	return httptest.NewServer(srv.router)
}

func testPage() domain.Page {
	return domain.Page{
		Articles: []domain.Article{
			{ID: 1, Title: "first", URL: "https://example.com/1", Provider: "newsapi",
				Category: "technology", PublishedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
			{ID: 2, Title: "second", URL: "https://example.com/2", Provider: "guardian",
				PublishedAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)},
		},
		Total: 2, Page: 1, PageSize: 20,
	}
}

func TestServer_Status(t *testing.T) {
	ts := testServer(&mocks.NewsMock{}, &mocks.PreferencesMock{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestServer_Headlines(t *testing.T) {
	news := &mocks.NewsMock{
		GetHeadlinesFunc: func(ctx context.Context, req freshness.Request) (domain.Page, error) {
			return testPage(), nil
		},
	}
	ts := testServer(news, &mocks.PreferencesMock{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/articles/headlines?category=technology&provider=newsapi&page=2&page_size=10")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body pageResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Total)
	require.Len(t, body.Articles, 2)
	assert.Equal(t, "first", body.Articles[0].Title)

	require.Len(t, news.GetHeadlinesCalls(), 1)
	req := news.GetHeadlinesCalls()[0].Req
	assert.Equal(t, "technology", req.Filter.Category)
	assert.Equal(t, "newsapi", req.Filter.Provider)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, 10, req.PageSize)
}

func TestServer_HeadlinesDefaultsAndLimits(t *testing.T) {
	news := &mocks.NewsMock{
		GetHeadlinesFunc: func(ctx context.Context, req freshness.Request) (domain.Page, error) {
			return domain.Page{Page: req.Page, PageSize: req.PageSize}, nil
		},
	}
	ts := testServer(news, &mocks.PreferencesMock{})
	defer ts.Close()

	t.Run("defaults applied", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/articles/headlines")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		calls := news.GetHeadlinesCalls()
		req := calls[len(calls)-1].Req
		assert.Equal(t, 1, req.Page)
		assert.Equal(t, defaultPageSize, req.PageSize)
	})

	t.Run("page size capped", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/articles/headlines?page_size=500")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		calls := news.GetHeadlinesCalls()
		assert.Equal(t, maxPageSize, calls[len(calls)-1].Req.PageSize)
	})

	t.Run("bad page rejected", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/articles/headlines?page=zero")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("bad from rejected", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/articles/headlines?from=yesterday")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("date range parsed", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/articles/headlines?from=2025-05-01&to=2025-06-01T12:00:00Z")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		calls := news.GetHeadlinesCalls()
		req := calls[len(calls)-1].Req
		assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), req.Filter.From)
		assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), req.Filter.To)
	})
}

func TestServer_Search(t *testing.T) {
	news := &mocks.NewsMock{
		SearchArticlesFunc: func(ctx context.Context, req freshness.Request) (domain.Page, error) {
			if req.Filter.Keyword == "" {
				return domain.Page{}, freshness.ErrKeywordRequired
			}
			return testPage(), nil
		},
	}
	ts := testServer(news, &mocks.PreferencesMock{})
	defer ts.Close()

	t.Run("keyword search", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/articles/search?keyword=golang")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body pageResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 2, body.Total)
	})

	t.Run("missing keyword", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/articles/search")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Contains(t, body["error"], "keyword")
	})
}

func TestServer_GetArticle(t *testing.T) {
	news := &mocks.NewsMock{
		GetArticleFunc: func(ctx context.Context, id int64) (*domain.Article, error) {
			if id != 42 {
				return nil, fmt.Errorf("get article %d: %w", id, repository.ErrNotFound)
			}
			return &domain.Article{ID: 42, Title: "answer", URL: "https://example.com/42", Provider: "nyt"}, nil
		},
	}
	ts := testServer(news, &mocks.PreferencesMock{})
	defer ts.Close()

	t.Run("found", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/articles/42")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body articleResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, int64(42), body.ID)
		assert.Equal(t, "answer", body.Title)
	})

	t.Run("not found", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/articles/777")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("bad id", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/articles/abc")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestServer_DeleteArticle(t *testing.T) {
	news := &mocks.NewsMock{
		DeleteArticleFunc: func(ctx context.Context, id int64) error {
			if id != 42 {
				return fmt.Errorf("delete article %d: %w", id, repository.ErrNotFound)
			}
			return nil
		},
	}
	ts := testServer(news, &mocks.PreferencesMock{})
	defer ts.Close()

	del := func(path string) *http.Response {
		req, err := http.NewRequest(http.MethodDelete, ts.URL+path, http.NoBody)
		require.NoError(t, err)
		resp, err := ts.Client().Do(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("deleted", func(t *testing.T) {
		resp := del("/api/v1/articles/42")
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]int64
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, int64(42), body["deleted"])
		require.Len(t, news.DeleteArticleCalls(), 1)
	})

	t.Run("delete miss", func(t *testing.T) {
		resp := del("/api/v1/articles/777")
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestServer_Preference(t *testing.T) {
	saved := &domain.Preference{Source: "bbc-news", Category: "technology"}
	prefs := &mocks.PreferencesMock{
		GetFunc: func(ctx context.Context) (*domain.Preference, error) { return saved, nil },
		SaveFunc: func(ctx context.Context, pref *domain.Preference) error {
			saved = pref
			return nil
		},
	}
	ts := testServer(&mocks.NewsMock{}, prefs)
	defer ts.Close()

	t.Run("get", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/preference")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body preferenceBody
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "bbc-news", body.Source)
		assert.Equal(t, "technology", body.Category)
	})

	t.Run("put", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/v1/preference",
			strings.NewReader(`{"source":"the-verge","category":"science","author":"jane"}`))
		require.NoError(t, err)
		resp, err := ts.Client().Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		require.Len(t, prefs.SaveCalls(), 1)
		assert.Equal(t, "the-verge", prefs.SaveCalls()[0].Pref.Source)
		assert.Equal(t, "science", prefs.SaveCalls()[0].Pref.Category)
		assert.Equal(t, "jane", prefs.SaveCalls()[0].Pref.Author)
	})

	t.Run("put bad body", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/v1/preference", strings.NewReader("not json"))
		require.NoError(t, err)
		resp, err := ts.Client().Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestServer_InternalErrors(t *testing.T) {
	news := &mocks.NewsMock{
		GetHeadlinesFunc: func(ctx context.Context, req freshness.Request) (domain.Page, error) {
			return domain.Page{}, errors.New("database gone")
		},
	}
	ts := testServer(news, &mocks.PreferencesMock{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/articles/headlines")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestServer_RunAndShutdown(t *testing.T) {
	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return "127.0.0.1:0", time.Minute },
	}
	srv := New(cfg, &mocks.NewsMock{}, &mocks.PreferencesMock{}, "test", true)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	require.NoError(t, srv.Run(ctx))
}
