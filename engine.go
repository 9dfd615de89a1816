package lightatlas

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gogpu/lightatlas/internal/parallel"
)

// UpdateOptions selects per-call behavior of Engine.Update.
type UpdateOptions struct {
	// Checkerboard updates only voxels where (x+y+Parity) is odd.
	// Alternating Parity between calls covers every voxel in two calls.
	Checkerboard bool

	// Parity selects which half of the checkerboard is updated.
	Parity int

	// Threaded fans rows out through the engine's distributor. Without a
	// distributor rows run on the calling goroutine.
	Threaded bool
}

// Stats reports the work done by one Update call. The counters are for
// diagnostics only and never feed back into the simulation.
type Stats struct {
	// Rays is the number of sample rays cast.
	Rays int64

	// Tests is the number of ray/box intersection tests performed.
	Tests int64

	// Voxels is the number of voxels blended.
	Voxels int64

	// Elapsed is the wall-clock duration of the call.
	Elapsed time.Duration
}

// Add returns the sum of two Stats.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Rays:    s.Rays + o.Rays,
		Tests:   s.Tests + o.Tests,
		Voxels:  s.Voxels + o.Voxels,
		Elapsed: s.Elapsed + o.Elapsed,
	}
}

// Engine is the atlas update kernel. It casts sample rays from every voxel
// of a Grid against a TargetList and blends the nearest-hit colors into
// the voxels.
//
// Rows are independent: each row writes only its own voxels and reads the
// shared target list and direction ring. The only shared mutable state
// across row tasks are the Stats counters, which are accumulated atomically.
//
// Thread safety: an Engine drives one Update at a time.
type Engine struct {
	dist       Distributor
	owned      Pool
	batchWidth int
	jitter     bool
	gain       float32
	stream     *Stream
	scratch    *parallel.ScratchPool[Target]
}

// NewEngine creates an update engine.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	o := defaultEngineOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.batchWidth != 1 && o.batchWidth != 8 {
		return nil, fmt.Errorf("new engine: batch width %d: %w", o.batchWidth, ErrInvalidBatchWidth)
	}

	e := &Engine{
		dist:       o.distributor,
		batchWidth: o.batchWidth,
		jitter:     o.jitter,
		gain:       o.gain,
		stream:     NewStream(o.seed),
		scratch:    parallel.NewScratchPool[Target](64),
	}
	if e.dist == nil && o.workers != 0 {
		e.owned = NewPool(o.workers)
		e.dist = e.owned
	}

	Logger().Debug("lightatlas: engine created",
		"batch_width", e.batchWidth, "workers", e.Workers(), "jitter", e.jitter)
	return e, nil
}

// Workers returns the number of worker goroutines behind the distributor,
// or 0 when rows always run on the calling goroutine.
func (e *Engine) Workers() int {
	if w, ok := e.dist.(interface{ Workers() int }); ok {
		return w.Workers()
	}
	return 0
}

// BatchWidth returns the number of rays intersected together.
func (e *Engine) BatchWidth() int {
	return e.batchWidth
}

// Reseed restarts the engine's random stream at seed.
func (e *Engine) Reseed(seed uint32) {
	e.stream = NewStream(seed)
}

// Close releases the worker pool the engine created, if any.
func (e *Engine) Close() {
	if e.owned != nil {
		e.owned.Close()
		e.owned = nil
		e.dist = nil
	}
}

// Update casts SampleCount rays from every selected voxel of g against
// targets and blends the results into the voxels with the exponential
// smoothing factor min(dt*rate, 1).
//
// A dt of zero (or less) leaves the grid untouched and returns zero Stats,
// which freezes the lighting while the game is paused. targets is only
// read during the call and must not be mutated concurrently.
func (e *Engine) Update(g *Grid, dt float32, targets []Target, opts UpdateOptions) Stats {
	if !(dt > 0) || len(g.voxels) == 0 {
		return Stats{}
	}
	start := time.Now()

	alpha := dt * g.accumulationRate
	if alpha > 1 {
		alpha = 1
	}

	job := &rowJob{
		grid:         g,
		targets:      TargetList(targets),
		alpha:        alpha,
		gain:         e.gain,
		reach:        g.RayLength(),
		origin:       g.Origin(),
		frameSeed:    e.stream.Uint(),
		jitter:       e.jitter,
		batchWidth:   e.batchWidth,
		checkerboard: opts.Checkerboard,
		parity:       opts.Parity,
		scratch:      e.scratch,
	}

	var d Distributor = inline{}
	if opts.Threaded && e.dist != nil {
		d = e.dist
	}

	var rays, tests, voxels atomic.Int64
	for y := range g.size.Y {
		d.Submit(func() {
			r, t, v := job.run(y)
			rays.Add(r)
			tests.Add(t)
			voxels.Add(v)
		})
	}
	d.Wait()

	return Stats{
		Rays:    rays.Load(),
		Tests:   tests.Load(),
		Voxels:  voxels.Load(),
		Elapsed: time.Since(start),
	}
}
