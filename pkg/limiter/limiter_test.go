package limiter

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsgate/pkg/limiter/mocks"
)

func newTestLimiter(store Store, provider string, policy Policy) (*Limiter, *[]time.Duration) {
	l := New(store, provider, policy)
	l.now = func() time.Time { return time.Date(2025, 6, 1, 10, 30, 15, 0, time.UTC) }
	slept := &[]time.Duration{}
	l.sleep = func(_ context.Context, d time.Duration) { *slept = append(*slept, d) }
	return l, slept
}

func TestLimiter_Acquire(t *testing.T) {
	t.Run("under all caps", func(t *testing.T) {
		counters := map[string]int64{}
		var mu sync.Mutex
		store := &mocks.StoreMock{
			IncrFunc: func(_ context.Context, key string, _ time.Duration) (int64, error) {
				mu.Lock()
				defer mu.Unlock()
				counters[key]++
				return counters[key], nil
			},
		}

		l, _ := newTestLimiter(store, "newsapi", Policy{Daily: 100, PerMinute: 10, PerSecond: 2})
		require.NoError(t, l.Acquire(context.Background()))
		assert.Len(t, store.IncrCalls(), 3, "all three defined counters incremented")
	})

	t.Run("daily cap reached", func(t *testing.T) {
		store := &mocks.StoreMock{
			IncrFunc: func(_ context.Context, key string, _ time.Duration) (int64, error) {
				if strings.Contains(key, ":day:") {
					return 101, nil
				}
				return 1, nil
			},
		}

		l, slept := newTestLimiter(store, "newsapi", Policy{Daily: 100})
		err := l.Acquire(context.Background())
		assert.ErrorIs(t, err, ErrLimited)
		assert.Empty(t, *slept, "no throttle delay on a skipped call")
	})

	t.Run("second cap reached", func(t *testing.T) {
		store := &mocks.StoreMock{
			IncrFunc: func(_ context.Context, key string, _ time.Duration) (int64, error) {
				if strings.Contains(key, ":sec:") {
					return 2, nil
				}
				return 1, nil
			},
		}

		l, _ := newTestLimiter(store, "nyt", Policy{PerSecond: 1})
		assert.ErrorIs(t, l.Acquire(context.Background()), ErrLimited)
	})

	t.Run("undefined caps are not checked", func(t *testing.T) {
		store := &mocks.StoreMock{
			IncrFunc: func(_ context.Context, key string, _ time.Duration) (int64, error) {
				return 1, nil
			},
		}

		l, _ := newTestLimiter(store, "guardian", Policy{PerMinute: 5})
		require.NoError(t, l.Acquire(context.Background()))
		require.Len(t, store.IncrCalls(), 1)
		assert.Contains(t, store.IncrCalls()[0].Key, ":min:")
	})

	t.Run("store failure treated as limited", func(t *testing.T) {
		store := &mocks.StoreMock{
			IncrFunc: func(_ context.Context, _ string, _ time.Duration) (int64, error) {
				return 0, errors.New("redis down")
			},
		}

		l, _ := newTestLimiter(store, "newsapi", Policy{Daily: 100})
		assert.ErrorIs(t, l.Acquire(context.Background()), ErrLimited)
	})

	t.Run("counters are provider-scoped", func(t *testing.T) {
		var keys []string
		var mu sync.Mutex
		store := &mocks.StoreMock{
			IncrFunc: func(_ context.Context, key string, _ time.Duration) (int64, error) {
				mu.Lock()
				keys = append(keys, key)
				mu.Unlock()
				return 1, nil
			},
		}

		la, _ := newTestLimiter(store, "newsapi", Policy{Daily: 10})
		lb, _ := newTestLimiter(store, "guardian", Policy{Daily: 10})
		require.NoError(t, la.Acquire(context.Background()))
		require.NoError(t, lb.Acquire(context.Background()))

		require.Len(t, keys, 2)
		assert.Contains(t, keys[0], "limiter:newsapi:")
		assert.Contains(t, keys[1], "limiter:guardian:")
		assert.NotEqual(t, keys[0], keys[1])
	})

	t.Run("daily counter ttl runs to end of day", func(t *testing.T) {
		store := &mocks.StoreMock{
			IncrFunc: func(_ context.Context, _ string, _ time.Duration) (int64, error) {
				return 1, nil
			},
		}

		l, _ := newTestLimiter(store, "newsapi", Policy{Daily: 10})
		require.NoError(t, l.Acquire(context.Background()))

		// fixed clock is 10:30:15 UTC, so 13h29m45s remain in the day
		require.Len(t, store.IncrCalls(), 1)
		assert.Equal(t, 13*time.Hour+29*time.Minute+45*time.Second, store.IncrCalls()[0].TTL)
	})
}

func TestLimiter_Throttle(t *testing.T) {
	store := &mocks.StoreMock{
		IncrFunc: func(_ context.Context, _ string, _ time.Duration) (int64, error) { return 1, nil },
	}

	t.Run("one per second sleeps a second", func(t *testing.T) {
		l, slept := newTestLimiter(store, "nyt", Policy{PerSecond: 1})
		require.NoError(t, l.Acquire(context.Background()))
		require.Len(t, *slept, 1)
		assert.Equal(t, time.Second, (*slept)[0])
	})

	t.Run("five per minute spreads to 12s", func(t *testing.T) {
		l, slept := newTestLimiter(store, "guardian", Policy{PerMinute: 5})
		require.NoError(t, l.Acquire(context.Background()))
		require.Len(t, *slept, 1)
		assert.Equal(t, 12*time.Second, (*slept)[0])
	})

	t.Run("tightest window wins", func(t *testing.T) {
		l, slept := newTestLimiter(store, "guardian", Policy{PerMinute: 2, PerSecond: 10})
		require.NoError(t, l.Acquire(context.Background()))
		require.Len(t, *slept, 1)
		assert.Equal(t, 30*time.Second, (*slept)[0])
	})

	t.Run("daily cap alone adds no delay", func(t *testing.T) {
		l, slept := newTestLimiter(store, "newsapi", Policy{Daily: 500})
		require.NoError(t, l.Acquire(context.Background()))
		assert.Empty(t, *slept)
	})
}
