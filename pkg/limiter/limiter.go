// Package limiter enforces per-provider call budgets backed by shared
// expiring counters. The policy is fail-soft: a limited call is skipped
// outright, never queued or retried.
package limiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// ErrLimited is returned when a defined cap is met or exceeded; the caller
// skips the outbound call entirely
var ErrLimited = errors.New("rate limit exceeded")

// Store is the shared expiring counter storage
type Store interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// Policy defines optional call caps for one provider; zero means no cap for
// that window
type Policy struct {
	Daily     int
	PerMinute int
	PerSecond int
}

// Limiter tracks call budgets for a single provider
type Limiter struct {
	store    Store
	provider string
	policy   Policy

	now   func() time.Time               // injectable clock
	sleep func(ctx context.Context, d time.Duration) // injectable delay
}

// New creates a limiter for a provider with the given policy
func New(store Store, provider string, policy Policy) *Limiter {
	return &Limiter{
		store:    store,
		provider: provider,
		policy:   policy,
		now:      time.Now,
		sleep: func(ctx context.Context, d time.Duration) {
			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-ctx.Done():
			case <-timer.C:
			}
		},
	}
}

// Acquire consumes one call from the budget. It returns ErrLimited when any
// defined cap is reached; otherwise it applies the policy's mandatory
// throttle delay and returns nil. The delay is synchronous and adds directly
// to caller-observed latency for whichever execution context performs the
// call, a request handler or a job worker alike.
func (l *Limiter) Acquire(ctx context.Context) error {
	now := l.now().UTC()

	// each counter is incremented and checked in one atomic store operation,
	// keeping the caps correct under concurrent callers
	type window struct {
		name string
		cap  int
		key  string
		ttl  time.Duration
	}
	windows := []window{
		{
			name: "daily",
			cap:  l.policy.Daily,
			key:  fmt.Sprintf("limiter:%s:day:%s", l.provider, now.Format("20060102")),
			ttl:  endOfDay(now).Sub(now),
		},
		{
			name: "minute",
			cap:  l.policy.PerMinute,
			key:  fmt.Sprintf("limiter:%s:min:%d", l.provider, now.Unix()/60),
			ttl:  time.Minute,
		},
		{
			name: "second",
			cap:  l.policy.PerSecond,
			key:  fmt.Sprintf("limiter:%s:sec:%d", l.provider, now.Unix()),
			ttl:  time.Second,
		},
	}

	for _, w := range windows {
		if w.cap <= 0 {
			continue
		}
		count, err := l.store.Incr(ctx, w.key, w.ttl)
		if err != nil {
			// counter storage trouble must not take the provider down,
			// treat as limited and let the provider degrade to empty
			lgr.Printf("[WARN] limiter counter %s failed for %s: %v", w.name, l.provider, err)
			return ErrLimited
		}
		if count > int64(w.cap) {
			lgr.Printf("[WARN] %s cap reached for provider %s (%d/%d), call skipped", w.name, l.provider, count, w.cap)
			return ErrLimited
		}
	}

	if delay := l.throttle(); delay > 0 {
		l.sleep(ctx, delay)
	}
	return nil
}

// throttle returns the mandatory inter-call delay spreading calls evenly
// over the tightest sub-daily window: a 1/sec policy yields ~1s, a 5/min
// policy yields 12s. The daily cap does not contribute a delay.
func (l *Limiter) throttle() time.Duration {
	var delay time.Duration
	if l.policy.PerSecond > 0 {
		delay = time.Second / time.Duration(l.policy.PerSecond)
	}
	if l.policy.PerMinute > 0 {
		if d := time.Minute / time.Duration(l.policy.PerMinute); d > delay {
			delay = d
		}
	}
	return delay
}

// endOfDay returns the first instant of the next UTC day
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}
