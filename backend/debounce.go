package backend

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// debouncer coalesces change notifications into rate limited flushes.
type debouncer struct {
	mu sync.Mutex
	wg sync.WaitGroup

	isFlushing bool
	dirty      bool
	flush      func()
	rateLimit  *rate.Limiter
}

func newDebouncer(rateLimit *rate.Limiter, flush func()) *debouncer {
	return &debouncer{
		flush:     flush,
		rateLimit: rateLimit,
	}
}

// OnChanged schedules a flush. Changes arriving while a flush waits on the
// limiter are folded into it.
func (b *debouncer) OnChanged() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.dirty = true
	if b.isFlushing {
		return
	}
	b.isFlushing = true

	b.wg.Add(1)
	go func() {
		for {
			// Errors are not possible without a deadline.
			_ = b.rateLimit.Wait(context.Background())

			b.mu.Lock()
			if !b.dirty {
				// Exit the loop while holding the lock, so that no change
				// can slip in unflushed.
				break
			}
			b.dirty = false
			b.mu.Unlock()

			b.flush()
		}

		b.isFlushing = false
		b.wg.Done()
		b.mu.Unlock()
	}()
}

// Wait blocks until every scheduled flush ran.
func (b *debouncer) Wait() {
	b.wg.Wait()
}
