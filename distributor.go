package lightatlas

import "github.com/gogpu/lightatlas/internal/parallel"

// Distributor runs batches of independent work items.
//
// Submit enqueues one item of the current batch and must not block on a
// busy pool. Wait returns once every item submitted since the previous Wait
// has finished. A batch is driven by a single goroutine; items of one batch
// never depend on each other's results.
type Distributor interface {
	Submit(fn func())
	Wait()
}

// Pool is a Distributor with an explicit lifetime.
type Pool interface {
	Distributor

	// Workers returns the number of worker goroutines.
	Workers() int

	// Close stops the workers after draining queued work.
	Close()
}

// NewPool creates a work-stealing worker pool. workers <= 0 uses GOMAXPROCS.
// The host usually creates one pool at startup and shares it between the
// atlas and its other batch jobs.
func NewPool(workers int) Pool {
	return parallel.NewWorkerPool(workers)
}

// inline runs every item on the submitting goroutine.
type inline struct{}

func (inline) Submit(fn func()) {
	if fn != nil {
		fn()
	}
}

func (inline) Wait() {}
