// Package workerpool provides the goroutine pool backing the task
// subsystem's pool executor. Submitted functions run to completion on a
// worker goroutine; workers steal from each other's queues when idle so a
// burst of slow computations on one queue does not starve the rest.
package workerpool

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned by Submit once the pool has been closed.
var ErrClosed = errors.New("workerpool: pool is closed")

// Pool is a fixed-size pool of worker goroutines with per-worker queues
// and work stealing. It is safe for concurrent use.
type Pool struct {
	workers int

	// queues holds one buffered work queue per worker. A worker pulls
	// from its own queue first and steals from the others when idle.
	queues []chan func()

	// done signals workers to drain their queues and stop.
	done chan struct{}

	wg sync.WaitGroup

	// running flips to false exactly once, in Close.
	running atomic.Bool
}

// New creates a pool with the given number of workers and starts them.
// A count of zero means GOMAXPROCS. A negative count is rejected: it is
// the one way pool construction can fail.
func New(workers int) (*Pool, error) {
	if workers < 0 {
		return nil, fmt.Errorf("workerpool: invalid worker count %d", workers)
	}
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// A few slots of slack per worker keeps submitters from blocking on
	// short bursts.
	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}
	return p, nil
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			drain(own)
			return
		case work := <-own:
			work()
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			// Nothing anywhere; block on the own queue.
			select {
			case <-p.done:
				drain(own)
				return
			case work := <-own:
				work()
			}
		}
	}
}

// drain runs whatever is still queued. Called during shutdown so accepted
// work is never silently dropped.
func drain(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

// steal takes one work item from another worker's queue, or returns nil.
func (p *Pool) steal(self int) func() {
	for i := 0; i < p.workers; i++ {
		if i == self {
			continue
		}
		select {
		case work := <-p.queues[i]:
			return work
		default:
		}
	}
	return nil
}

// Submit queues fn on the worker with the shortest queue. A free worker
// picks it up immediately. Submit may block briefly when every slot of the
// chosen queue is full; it returns ErrClosed once the pool is shut down.
func (p *Pool) Submit(fn func()) error {
	if fn == nil {
		return nil
	}
	if !p.running.Load() {
		return ErrClosed
	}

	shortest := 0
	for i := 1; i < p.workers; i++ {
		if len(p.queues[i]) < len(p.queues[shortest]) {
			shortest = i
		}
	}

	select {
	case p.queues[shortest] <- fn:
		return nil
	case <-p.done:
		return ErrClosed
	}
}

// Close stops accepting work, lets workers finish everything already
// queued, and waits for them to exit. Close is idempotent.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int { return p.workers }

// Running reports whether the pool still accepts work.
func (p *Pool) Running() bool { return p.running.Load() }
