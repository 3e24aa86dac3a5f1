package queue

import "sync"

// Config holds configuration for a serial queue
type Config struct {
	// Size is the initial capacity of the pending buffer (default: 1000).
	// The buffer grows past it instead of blocking submitters.
	Size int
}

func applyDefaults(cfg *Config) {
	if cfg.Size <= 0 {
		cfg.Size = 1000
	}
}

// Serial runs submitted functions one at a time in submission order on
// a single worker goroutine.
//
// Async never blocks, so a running function may submit more work to its
// own queue, which is what a destination does when it reports a failure
// to a queued logger.
type Serial struct {
	mu      sync.Mutex
	wake    *sync.Cond
	pending []func()
	spare   []func()
	closing bool
	stopped bool
	once    sync.Once
	done    chan struct{}
}

// New creates a serial queue and starts its worker goroutine.
func New(cfg Config) *Serial {
	applyDefaults(&cfg)
	q := &Serial{
		pending: make([]func(), 0, cfg.Size),
		spare:   make([]func(), 0, cfg.Size),
		done:    make(chan struct{}),
	}
	q.wake = sync.NewCond(&q.mu)
	go q.process()
	return q
}

func (q *Serial) process() {
	defer close(q.done)
	for {
		q.mu.Lock()
		for len(q.pending) == 0 && !q.closing {
			q.wake.Wait()
		}
		if len(q.pending) == 0 {
			q.stopped = true
			q.mu.Unlock()
			return
		}
		batch := q.pending
		q.pending = q.spare[:0]
		q.mu.Unlock()

		for i, fn := range batch {
			fn()
			batch[i] = nil
		}

		q.mu.Lock()
		q.spare = batch[:0]
		q.mu.Unlock()
	}
}

// Async schedules fn after every previously submitted function and
// returns without waiting. Once the queue has stopped fn runs on the
// calling goroutine instead, so no submitted work is ever lost.
func (q *Serial) Async(fn func()) {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		fn()
		return
	}
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
	q.wake.Signal()
}

// Sync schedules fn and waits for it to finish. A function running on
// the queue must not call Sync on it.
func (q *Serial) Sync(fn func()) {
	done := make(chan struct{})
	q.Async(func() {
		defer close(done)
		fn()
	})
	<-done
}

// Close waits for every submitted function, including ones submitted
// while draining, then stops the worker. It is safe to call more than
// once. Close must not be called from a function running on the queue.
func (q *Serial) Close() {
	q.once.Do(func() {
		q.mu.Lock()
		q.closing = true
		q.mu.Unlock()
		q.wake.Broadcast()
	})
	<-q.done
}
