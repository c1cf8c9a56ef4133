package signal

import "sync"

// Semaphore is a bounded-pool gate permitting at most Limit concurrent
// holders. See spec.md §3.1.4.
//
// Instances must be created with NewSemaphore; the zero value is not usable.
type Semaphore struct {
	mu      sync.Mutex
	limit   int
	running int
	queue   waiterQueue
}

// SemaphoreOption configures a Semaphore at construction, following the
// teacher's functional-options-over-an-interface pattern
// (eventloop.LoopOption).
type SemaphoreOption interface {
	applySemaphore(*semaphoreOptions)
}

type semaphoreOptions struct {
	limit int
}

type semaphoreOptionFunc func(*semaphoreOptions)

func (f semaphoreOptionFunc) applySemaphore(o *semaphoreOptions) { f(o) }

// WithLimit sets the maximum number of concurrent holders. Values less than
// 1 clamp to 1, per spec.md §4.1.
func WithLimit(limit int) SemaphoreOption {
	return semaphoreOptionFunc(func(o *semaphoreOptions) {
		o.limit = limit
	})
}

// NewSemaphore creates a semaphore. Default limit is 5, matching spec.md
// §3.1.4; pass WithLimit to override.
func NewSemaphore(opts ...SemaphoreOption) *Semaphore {
	cfg := semaphoreOptions{limit: 5}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applySemaphore(&cfg)
	}
	if cfg.limit < 1 {
		cfg.limit = 1
	}
	return &Semaphore{limit: cfg.limit}
}

// Wait acquires a slot if one is available, or queues until Release frees
// one. Wait never rejects.
func (s *Semaphore) Wait() <-chan struct{} {
	s.mu.Lock()
	if s.running < s.limit {
		s.running++
		s.mu.Unlock()
		return closedChan()
	}
	ch := s.queue.add()
	s.mu.Unlock()
	return ch
}

// Release frees up to n slots (n defaults to 1 if omitted). Each freed slot
// either hands off directly to the oldest queued waiter (running is
// unchanged - the released waiter becomes the new holder of that slot) or,
// if no waiter is queued, decrements running. Releasing more than
// running+queued slots is a no-op beyond bringing Available() up to Limit();
// it can never exceed it.
func (s *Semaphore) Release(n ...int) {
	count := variadicArg(n)
	if count < 1 {
		count = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < count; i++ {
		if s.queue.releaseOne() {
			continue
		}
		if s.running > 0 {
			s.running--
		}
	}
}

// Limit returns the configured maximum concurrency.
func (s *Semaphore) Limit() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limit
}

// Running returns the current number of held slots.
func (s *Semaphore) Running() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Queued returns the current number of waiters queued for a slot.
func (s *Semaphore) Queued() int {
	return s.queue.len()
}

// Available returns max(0, Limit-Running).
func (s *Semaphore) Available() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	avail := s.limit - s.running
	if avail < 0 {
		avail = 0
	}
	return avail
}
