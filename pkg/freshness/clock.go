package freshness

import (
	"context"
	"crypto/sha1" //nolint:gosec // cache key, not a security boundary
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/newsgate/pkg/domain"
)

// Clock tracks the last fetch time per logical query in the expiring store.
// The key deliberately excludes pagination so every page of one query
// shares a single freshness lifecycle; entries expire via TTL, there is no
// deletion path.
type Clock struct {
	store Store
	now   func() time.Time
}

// NewClock creates a fetch clock over an expiring store
func NewClock(store Store) *Clock {
	return &Clock{store: store, now: time.Now}
}

// Key computes the clock key for a mode and filter set
func (c *Clock) Key(mode string, f domain.ArticleFilter) string {
	fields := []string{
		mode,
		f.Keyword,
		f.Category,
		f.Source,
		f.Provider,
		f.Author,
		formatTime(f.From),
		formatTime(f.To),
	}
	sum := sha1.Sum([]byte(strings.Join(fields, "|"))) //nolint:gosec // cache key only
	return "fetchclock:" + hex.EncodeToString(sum[:])
}

// Last returns the recorded last fetch time, false when none is recorded or
// the entry expired
func (c *Clock) Last(ctx context.Context, key string) (time.Time, bool, error) {
	val, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("read fetch clock: %w", err)
	}
	if !ok {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse fetch clock value %q: %w", val, err)
	}
	return t, true, nil
}

// Touch records now as the last fetch time, expiring after the freshness
// window
func (c *Clock) Touch(ctx context.Context, key string, window time.Duration) error {
	if err := c.store.Set(ctx, key, c.now().UTC().Format(time.RFC3339Nano), window); err != nil {
		return fmt.Errorf("touch fetch clock: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
