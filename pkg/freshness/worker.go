package freshness

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"golang.org/x/sync/errgroup"
)

// job is one queued background refresh for a clock key
type job struct {
	mode   string
	req    Request
	key    string
	window time.Duration
}

// pendingSet tracks clock keys with a queued or running refresh so repeated
// stale reads of the same query schedule exactly one job
type pendingSet struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newPendingSet() pendingSet {
	return pendingSet{keys: map[string]struct{}{}}
}

// add returns false when the key is already pending
func (p *pendingSet) add(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.keys[key]; ok {
		return false
	}
	p.keys[key] = struct{}{}
	return true
}

func (p *pendingSet) remove(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.keys, key)
}

// Run starts the background refresh workers and blocks until ctx is
// canceled and the in-flight jobs drain
func (s *Service) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < s.workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case j := <-s.jobs:
					s.process(ctx, j)
				}
			}
		})
	}
	lgr.Printf("[INFO] started %d refresh workers, queue capacity %d", s.workers, cap(s.jobs))
	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// enqueue schedules a background refresh unless one is already pending for
// the same clock key. A full queue drops the job: the next stale read will
// schedule it again.
func (s *Service) enqueue(j job) {
	if !s.pending.add(j.key) {
		return
	}
	select {
	case s.jobs <- j:
		lgr.Printf("[DEBUG] scheduled background refresh for %q (mode=%s)", j.key, j.mode)
	default:
		s.pending.remove(j.key)
		lgr.Printf("[WARN] refresh queue full, dropped job for %q", j.key)
	}
}

// process runs one refresh job with retries. Only storage failures produce
// errors; provider failures are absorbed upstream as empty results.
func (s *Service) process(ctx context.Context, j job) {
	defer s.pending.remove(j.key)

	ctx, cancel := context.WithTimeout(ctx, s.jobTimeout)
	defer cancel()

	err := repeater.NewBackoff(s.maxRetries, 100*time.Millisecond,
		repeater.WithMaxDelay(5*time.Second)).Do(ctx, func() error {
		return s.refresh(ctx, j.mode, j.req, j.key, j.window)
	})
	if err != nil {
		lgr.Printf("[WARN] background refresh for %q failed after %d attempts: %v", j.key, s.maxRetries, err)
	}
}
