// Package parallel provides the fixed-size worker pool used by the exact
// engine's parallel mode. A pool lives for one engine invocation: the
// engine submits one contiguous index range per worker, waits at the
// barrier, and closes the pool on return.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed-size pool of worker goroutines.
//
// Work items are distributed round-robin across per-worker queues. The
// pool has no work stealing: the engine's units are pre-partitioned into
// even ranges, so queues drain at close to the same rate.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	// workers is the number of worker goroutines.
	workers int

	// queues holds one buffered work queue per worker.
	queues []chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool

	// closeOnce guards the done channel.
	closeOnce sync.Once
}

// NewPool creates a pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// Workers start immediately and wait for work.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		// One range per worker per pass; a small buffer keeps Submit
		// from blocking between passes.
		p.queues[i] = make(chan func(), 4)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}

	return p
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int { return p.workers }

// worker is the main loop for each worker goroutine.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.done:
			p.drain(p.queues[id])
			return
		case work := <-p.queues[id]:
			if work != nil {
				work()
			}
		}
	}
}

// drain executes all remaining work in a queue.
func (p *Pool) drain(queue chan func()) {
	for {
		select {
		case work := <-queue:
			if work != nil {
				work()
			}
		default:
			return
		}
	}
}

// ForRanges splits [0, n) into one contiguous range per worker, runs
// fn(start, end) for each range on the pool, and blocks until every
// range has completed. fn must not touch state shared with another
// range. If the pool is closed, ForRanges is a no-op.
func (p *Pool) ForRanges(n int, fn func(start, end int)) {
	if n <= 0 || !p.running.Load() {
		return
	}

	units := p.workers
	if units > n {
		units = n
	}

	var barrier sync.WaitGroup
	barrier.Add(units)

	// Even partition: the first n%units ranges get one extra index.
	size := n / units
	extra := n % units
	start := 0
	for i := 0; i < units; i++ {
		end := start + size
		if i < extra {
			end++
		}
		lo, hi := start, end
		start = end

		work := func() {
			defer barrier.Done()
			fn(lo, hi)
		}
		select {
		case p.queues[i] <- work:
		case <-p.done:
			// Pool is closing; run inline so the barrier still opens.
			work()
		}
	}

	barrier.Wait()
}

// Close stops accepting work and shuts down all workers, waiting for
// queued work to drain. Close is idempotent.
func (p *Pool) Close() {
	p.running.Store(false)
	p.closeOnce.Do(func() {
		close(p.done)
	})
	p.wg.Wait()
}
