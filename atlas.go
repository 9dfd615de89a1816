package lightatlas

import (
	"fmt"
	"time"
)

// FrameStats describes one Atlas.Tick.
type FrameStats struct {
	Stats

	// Frame is the tick number, starting at 1.
	Frame uint64

	// Moved reports whether the grid scrolled.
	Moved bool

	// Updated reports whether the engine ran this tick. It is false on
	// skipped frames, while paused (dt == 0) and while fully lit.
	Updated bool

	// Parity is the checkerboard half updated this tick.
	Parity int
}

// Atlas drives a Grid and an Engine through the per-tick sequence of the
// game loop: scroll to the player, then update with the calibrated quality.
//
// Thread safety: Atlas is NOT thread-safe. Call Tick from the simulation
// goroutine only.
type Atlas struct {
	grid    *Grid
	engine  *Engine
	quality Quality

	frame    uint64
	parity   int
	fullyLit bool

	totals Stats
	texels []float32
}

// FullyLit is the color every sample is forced to while the atlas is in
// fully-lit debug mode. It averages to the gain-scaled white a voxel fully
// surrounded by white targets converges to.
var FullyLit = Color{R: DefaultGain, G: DefaultGain, B: DefaultGain}

// NewAtlas creates a grid configured for q and drives it with e.
// The atlas does not take ownership of e.
func NewAtlas(q Quality, e *Engine, opts ...GridOption) (*Atlas, error) {
	g, err := NewGrid(q.Size(), append([]GridOption{WithSampleCount(q.SampleCount)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("new atlas: %w", err)
	}
	g.SetAccumulationRate(q.AccumulationRate(g.AccumulationRate()))

	Logger().Debug("lightatlas: atlas created", "quality", q.String())
	return &Atlas{grid: g, engine: e, quality: q}, nil
}

// Grid returns the underlying grid.
func (a *Atlas) Grid() *Grid {
	return a.grid
}

// Quality returns the settings the atlas was created with.
func (a *Atlas) Quality() Quality {
	return a.quality
}

// SetFullyLit toggles the debug bypass. While enabled the grid is held at
// FullyLit and the engine does not run. Disabling it clears the grid so
// lighting re-accumulates from dark.
func (a *Atlas) SetFullyLit(enabled bool) {
	if a.fullyLit == enabled {
		return
	}
	a.fullyLit = enabled
	if enabled {
		a.grid.Fill(FullyLit)
	} else {
		a.grid.Clear()
	}
}

// IsFullyLit reports whether the debug bypass is active.
func (a *Atlas) IsFullyLit() bool {
	return a.fullyLit
}

// Tick scrolls the grid to center and, unless the frame is skipped, updates
// it against targets.
//
// With SkipOneFrame the engine runs on odd ticks only; the doubled
// accumulation rate set at creation compensates. With Checkerboard the
// parity alternates between updated ticks so every voxel is refreshed once
// per two updates.
func (a *Atlas) Tick(center Vec2, dt float32, targets []Target) FrameStats {
	start := time.Now()
	a.frame++
	fs := FrameStats{Frame: a.frame}
	fs.Moved = a.grid.Move(center)

	if a.fullyLit {
		if fs.Moved {
			a.grid.Fill(FullyLit)
		}
		fs.Elapsed = time.Since(start)
		return fs
	}
	if a.quality.SkipOneFrame && a.frame%2 == 0 {
		fs.Elapsed = time.Since(start)
		return fs
	}

	fs.Parity = a.parity
	fs.Stats = a.engine.Update(a.grid, dt, targets, UpdateOptions{
		Checkerboard: a.quality.Checkerboard,
		Parity:       a.parity,
		Threaded:     true,
	})
	fs.Updated = dt > 0
	if fs.Updated && a.quality.Checkerboard {
		a.parity ^= 1
	}

	fs.Elapsed = time.Since(start)
	a.totals = a.totals.Add(fs.Stats)
	return fs
}

// Totals returns the counters accumulated over every tick.
func (a *Atlas) Totals() Stats {
	return a.totals
}

// Texels returns the sample-averaged voxel colors as row-major RGB float
// triples. The slice is reused by the next call.
func (a *Atlas) Texels() []float32 {
	a.texels = a.grid.Texels(a.texels)
	return a.texels
}
