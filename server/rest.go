package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/umputun/newsgate/pkg/domain"
	"github.com/umputun/newsgate/pkg/freshness"
	"github.com/umputun/newsgate/pkg/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// articleResponse is the JSON shape of one article
type articleResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"image_url,omitempty"`
	Author      string    `json:"author,omitempty"`
	Provider    string    `json:"provider"`
	Category    string    `json:"category,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// pageResponse is one page of articles with pagination info
type pageResponse struct {
	Articles []articleResponse `json:"articles"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// preferenceBody is the PUT /preference request and response shape
type preferenceBody struct {
	Source   string `json:"source"`
	Category string `json:"category"`
	Author   string `json:"author"`
}

// headlinesHandler serves GET /api/v1/articles/headlines
func (s *Server) headlinesHandler(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	page, err := s.news.GetHeadlines(r.Context(), req)
	if err != nil {
		log.Printf("[ERROR] headlines request failed: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, toPageResponse(page))
}

// searchHandler serves GET /api/v1/articles/search, the keyword parameter
// is mandatory
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	page, err := s.news.SearchArticles(r.Context(), req)
	if err != nil {
		if errors.Is(err, freshness.ErrKeywordRequired) {
			renderError(w, r, err, http.StatusBadRequest)
			return
		}
		log.Printf("[ERROR] search request failed: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, toPageResponse(page))
}

// getArticleHandler serves GET /api/v1/articles/{id}
func (s *Server) getArticleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid article id"), http.StatusBadRequest)
		return
	}

	article, err := s.news.GetArticle(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			renderError(w, r, fmt.Errorf("article %d not found", id), http.StatusNotFound)
			return
		}
		log.Printf("[ERROR] failed to get article %d: %v", id, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, toArticleResponse(*article))
}

// deleteArticleHandler serves DELETE /api/v1/articles/{id}
func (s *Server) deleteArticleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid article id"), http.StatusBadRequest)
		return
	}

	if err := s.news.DeleteArticle(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			renderError(w, r, fmt.Errorf("article %d not found", id), http.StatusNotFound)
			return
		}
		log.Printf("[ERROR] failed to delete article %d: %v", id, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]int64{"deleted": id})
}

// getPreferenceHandler serves GET /api/v1/preference
func (s *Server) getPreferenceHandler(w http.ResponseWriter, r *http.Request) {
	pref, err := s.preferences.Get(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to get preference: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, preferenceBody{Source: pref.Source, Category: pref.Category, Author: pref.Author})
}

// savePreferenceHandler serves PUT /api/v1/preference
func (s *Server) savePreferenceHandler(w http.ResponseWriter, r *http.Request) {
	var body preferenceBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}

	pref := &domain.Preference{Source: body.Source, Category: body.Category, Author: body.Author}
	if err := s.preferences.Save(r.Context(), pref); err != nil {
		log.Printf("[ERROR] failed to save preference: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, body)
}

// parseRequest builds a service request from query parameters
func parseRequest(r *http.Request) (freshness.Request, error) {
	q := r.URL.Query()

	req := freshness.Request{
		Filter: domain.ArticleFilter{
			Keyword:  q.Get("keyword"),
			Category: q.Get("category"),
			Source:   q.Get("source"),
			Provider: q.Get("provider"),
			Author:   q.Get("author"),
		},
		Page:     1,
		PageSize: defaultPageSize,
	}

	var err error
	if req.Filter.From, err = parseTimeParam(q.Get("from")); err != nil {
		return freshness.Request{}, fmt.Errorf("invalid from parameter: %w", err)
	}
	if req.Filter.To, err = parseTimeParam(q.Get("to")); err != nil {
		return freshness.Request{}, fmt.Errorf("invalid to parameter: %w", err)
	}

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return freshness.Request{}, fmt.Errorf("invalid page parameter %q", v)
		}
		req.Page = page
	}
	if v := q.Get("page_size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 {
			return freshness.Request{}, fmt.Errorf("invalid page_size parameter %q", v)
		}
		if size > maxPageSize {
			size = maxPageSize
		}
		req.PageSize = size
	}

	return req, nil
}

// parseTimeParam accepts RFC3339 or a bare date
func parseTimeParam(val string) (time.Time, error) {
	if val == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", val)
}

func toArticleResponse(a domain.Article) articleResponse {
	return articleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		URL:         a.URL,
		ImageURL:    a.ImageURL,
		Author:      a.Author,
		Provider:    a.Provider,
		Category:    a.Category,
		PublishedAt: a.PublishedAt,
	}
}

func toPageResponse(p domain.Page) pageResponse {
	resp := pageResponse{
		Articles: make([]articleResponse, 0, len(p.Articles)),
		Total:    p.Total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	for _, a := range p.Articles {
		resp.Articles = append(resp.Articles, toArticleResponse(a))
	}
	return resp
}
