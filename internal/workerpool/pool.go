package workerpool

import (
	"fmt"
	"sync"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"

	"github.com/Iron-Ham/levdist/internal/errors"
)

// Pool is a fixed-size set of worker goroutines. It is safe for concurrent
// use; several callers may Run batches on the same pool at once.
type Pool struct {
	workers int
	tasks   chan func()
	wg      conc.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// Builder constructs a pool with the given number of workers.
type Builder func(workers int) (*Pool, error)

// New starts a pool of exactly workers goroutines.
func New(workers int) (*Pool, error) {
	if workers < 1 {
		return nil, errors.NewArgumentError("workers", workers, 1).
			WithMessage("worker count must be at least 1")
	}

	p := &Pool{
		workers: workers,
		tasks:   make(chan func(), workers),
	}
	for i := 0; i < workers; i++ {
		p.wg.Go(p.work)
	}
	return p, nil
}

func (p *Pool) work() {
	for task := range p.tasks {
		task()
	}
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

// Run executes fn(0) through fn(n-1) on the pool's workers and blocks until
// every call has returned. Calls may run in any order and concurrently with
// each other, so fn must only touch state owned by its index.
//
// If any call panics, the remaining calls still run and the first panic is
// re-raised on the caller's goroutine once all have finished.
func (p *Pool) Run(n int, fn func(i int)) error {
	if n <= 0 {
		return nil
	}

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return errors.Wrapf(errors.ErrPoolClosed, "run %d tasks on %d-worker pool", n, p.workers)
	}

	var (
		wg      sync.WaitGroup
		catcher panics.Catcher
	)
	wg.Add(n)
	for i := 0; i < n; i++ {
		p.tasks <- func() {
			defer wg.Done()
			catcher.Try(func() { fn(i) })
		}
	}
	p.mu.RUnlock()

	wg.Wait()
	catcher.Repanic()
	return nil
}

// Close stops accepting work and waits for the workers to exit. Batches
// already submitted finish first. Close is idempotent.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
}

// String implements fmt.Stringer.
func (p *Pool) String() string {
	return fmt.Sprintf("workerpool(%d)", p.workers)
}
