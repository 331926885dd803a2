package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/newsgate/pkg/limiter"
	"github.com/umputun/newsgate/pkg/taxonomy"
)

// Budget gates outbound calls, fail-soft. Implemented by limiter.Limiter.
type Budget interface {
	Acquire(ctx context.Context) error
}

// base carries the plumbing shared by the HTTP provider variants
type base struct {
	key      string
	apiKey   string
	baseURL  string
	client   *http.Client
	budget   Budget
	tax      *taxonomy.Normalizer
	sanitize *bluemonday.Policy
	warnOnce sync.Once
}

func newBase(key, apiKey, baseURL string, timeout time.Duration, budget Budget, tax *taxonomy.Normalizer) base {
	return base{
		key:      key,
		apiKey:   apiKey,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
		budget:   budget,
		tax:      tax,
		sanitize: bluemonday.StrictPolicy(),
	}
}

// configured reports whether an API key is present
func (b *base) configured() bool { return b.apiKey != "" }

// allowed checks configuration and the call budget. A false result means the
// call must be skipped; the reason is already logged.
func (b *base) allowed(ctx context.Context) bool {
	if !b.configured() {
		b.warnOnce.Do(func() {
			lgr.Printf("[WARN] provider %s has no api key configured, all fetches return empty", b.key)
		})
		return false
	}
	if b.budget != nil {
		if err := b.budget.Acquire(ctx); err != nil {
			return false // limiter already logged the skip
		}
	}
	return true
}

// getJSON performs a GET and decodes the JSON body into out. Non-2xx status
// and decode failures are errors; callers log and degrade to empty.
func (b *base) getJSON(ctx context.Context, url string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// drain a little of the body for the log, providers put error
		// details there
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(snippet))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// stripHTML removes markup from provider-supplied text, some providers ship
// HTML in description fields
func (b *base) stripHTML(s string) string {
	return b.sanitize.Sanitize(s)
}

// parseTime parses a publish timestamp defensively: a missing or unparsable
// value falls back to now so ordering never breaks on provider quirks
func parseTime(layout, value string) time.Time {
	if value == "" {
		return time.Now().UTC()
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Now().UTC()
	}
	return t
}

var _ Budget = (*limiter.Limiter)(nil)
