package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a pool of goroutines for parallel atlas rows.
//
// The pool distributes work items across multiple workers, each with their own
// queue. Workers can steal work from other workers when their own queue is empty.
// This helps balance load when some rows hit many more targets than others.
//
// Work is submitted in batches: Submit enqueues without blocking and Wait
// blocks until every submitted item has finished. While waiting, the calling
// goroutine helps drain the queues.
//
// Thread safety: Submit and Wait must be driven by one goroutine per batch.
// Close is safe for concurrent use.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// workQueues holds per-worker work queues.
	// Each worker primarily pulls from its own queue but can steal from others.
	workQueues []chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool

	// batch tracks items submitted since the last Wait.
	batch sync.WaitGroup

	// queued counts submitted items that no goroutine has picked up yet.
	queued atomic.Int64

	// next is the round-robin cursor for Submit.
	next atomic.Uint32
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// A few rows per worker keeps the queues ahead of the workers.
	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}

	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drainQueue(myQueue)
			return

		case work := <-myQueue:
			p.run(work)

		default:
			if stolen := p.steal(id); stolen != nil {
				p.run(stolen)
			} else {
				// No work available anywhere, block on own queue
				select {
				case <-p.done:
					p.drainQueue(myQueue)
					return
				case work := <-myQueue:
					p.run(work)
				}
			}
		}
	}
}

func (p *WorkerPool) run(work func()) {
	if work == nil {
		return
	}
	p.queued.Add(-1)
	work()
}

// drainQueue executes all remaining work in a queue.
func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			p.run(work)
		default:
			return
		}
	}
}

// steal attempts to take work from another worker's queue.
// A negative myID searches every queue. Returns nil if no work is available.
func (p *WorkerPool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}

		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// Submit enqueues one work item for the current batch.
// Submit never blocks on a full queue: the item runs on the calling
// goroutine instead. On a closed pool the item also runs inline, so a
// following Wait still observes it as finished.
func (p *WorkerPool) Submit(fn func()) {
	if fn == nil {
		return
	}
	if !p.running.Load() {
		fn()
		return
	}

	p.batch.Add(1)
	wrapped := func() {
		defer p.batch.Done()
		fn()
	}

	workerID := int(p.next.Add(1)-1) % p.workers
	p.queued.Add(1)
	select {
	case p.workQueues[workerID] <- wrapped:
	default:
		p.queued.Add(-1)
		wrapped()
	}
}

// Wait blocks until every item submitted since the previous Wait has
// finished. The calling goroutine executes queued items while it waits.
func (p *WorkerPool) Wait() {
	for p.queued.Load() > 0 {
		work := p.steal(-1)
		if work == nil {
			break
		}
		p.run(work)
	}
	p.batch.Wait()
}

// Close gracefully shuts down the pool.
// It stops accepting new work, waits for all queued work to complete,
// and then stops all workers.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}

	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

// QueuedWork returns the number of submitted items not yet picked up.
// This is an approximation as queues can change while reading.
func (p *WorkerPool) QueuedWork() int {
	return int(p.queued.Load())
}
