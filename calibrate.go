package lightatlas

import (
	"fmt"
	"runtime"
	"time"
)

// Quality is the configuration chosen by calibration. It is computed once
// at startup and frozen for the session.
type Quality struct {
	// SampleCount is the number of samples per voxel.
	SampleCount int

	// Checkerboard updates half of the voxels per frame.
	Checkerboard bool

	// SkipOneFrame updates the atlas every other tick with a doubled
	// accumulation rate.
	SkipOneFrame bool

	// AtlasHeight is the grid height; the width is always DefaultAtlasWidth.
	AtlasHeight int
}

// MaxQuality returns the settings calibration starts from.
func MaxQuality() Quality {
	return Quality{
		SampleCount: MaxSampleCount,
		AtlasHeight: DefaultAtlasHeight,
	}
}

// ConservativeQuality returns fixed low settings used instead of measuring,
// for debug builds where timings are meaningless.
func ConservativeQuality() Quality {
	return Quality{
		SampleCount:  MaxSampleCount / 8,
		Checkerboard: true,
		SkipOneFrame: true,
		AtlasHeight:  ReducedAtlasHeight,
	}
}

// Size returns the grid extent for q.
func (q Quality) Size() IVec2 {
	return IVec2{X: DefaultAtlasWidth, Y: q.AtlasHeight}
}

// AccumulationRate returns the rate to configure for base, doubled when
// frames are skipped.
func (q Quality) AccumulationRate(base float32) float32 {
	if q.SkipOneFrame {
		return base * 2
	}
	return base
}

// Apply resizes g and sets its sample count and accumulation rate for q.
// The grid is zeroed.
func (q Quality) Apply(g *Grid, baseRate float32) error {
	if err := g.SetSampleCount(q.SampleCount); err != nil {
		return fmt.Errorf("apply quality: %w", err)
	}
	if err := g.Resize(q.Size()); err != nil {
		return fmt.Errorf("apply quality: %w", err)
	}
	g.SetAccumulationRate(q.AccumulationRate(baseRate))
	return nil
}

// String implements fmt.Stringer.
func (q Quality) String() string {
	return fmt.Sprintf("samples=%d checkerboard=%t skip=%t size=%dx%d",
		q.SampleCount, q.Checkerboard, q.SkipOneFrame, DefaultAtlasWidth, q.AtlasHeight)
}

// Measurement describes the timing calibration was based on.
type Measurement struct {
	// Raw is the single-threaded duration of one full update.
	Raw time.Duration

	// PerThread is Raw divided by the number of threads sharing the work.
	PerThread time.Duration

	// Estimate is the projected cost after the chosen mitigations.
	Estimate time.Duration

	// Stats are the counters of the timed update.
	Stats Stats
}

// Calibrator measures the update kernel on a synthetic scene and picks a
// Quality that keeps the per-frame cost under Budget.
//
// Calibration is single-shot: it runs once at startup and never again.
type Calibrator struct {
	// Budget is the per-frame cost to stay under.
	Budget time.Duration

	// Workers is the number of pool workers that will share the rows. The
	// calling goroutine helps too, so the cost is divided by Workers+1.
	Workers int

	// BatchWidth is the kernel width to measure with.
	BatchWidth int

	// GridSize is the extent of the throwaway benchmark grid.
	GridSize IVec2

	// TargetCount is the number of synthetic targets.
	TargetCount int

	// Seed makes the synthetic scene reproducible across machines.
	Seed uint32

	// Conservative skips measuring and returns ConservativeQuality.
	Conservative bool

	// measure replaces the timed update in tests.
	measure func() (time.Duration, Stats)
}

// DefaultBudget is the per-frame atlas budget.
const DefaultBudget = 15 * time.Millisecond

// NewCalibrator returns a calibrator with the default benchmark: a 16x16
// grid at MaxSampleCount with 1024 targets, GOMAXPROCS workers.
func NewCalibrator() *Calibrator {
	return &Calibrator{
		Budget:      DefaultBudget,
		Workers:     runtime.GOMAXPROCS(0),
		BatchWidth:  8,
		GridSize:    IVec2{X: DefaultAtlasWidth, Y: DefaultAtlasHeight},
		TargetCount: 1024,
		Seed:        0x00c0ffee,
	}
}

// Estimate runs the benchmark and the decision ladder.
//
// When even the most degraded settings exceed the budget, Estimate returns
// those settings together with ErrBudgetExceeded; the caller is expected to
// proceed with them since dim, flickering light beats refusing to start.
func (c *Calibrator) Estimate() (Quality, Measurement, error) {
	log := Logger()
	if c.Conservative {
		q := ConservativeQuality()
		log.Info("lightatlas: calibration skipped", "quality", q.String())
		return q, Measurement{}, nil
	}

	measure := c.measure
	if measure == nil {
		measure = c.benchmark
	}
	raw, stats, err := c.run(measure)
	if err != nil {
		return Quality{}, Measurement{}, err
	}

	m := Measurement{
		Raw:       raw,
		PerThread: raw / time.Duration(c.Workers+1),
		Stats:     stats,
	}
	q, est, err := decide(m.PerThread, c.Budget)
	m.Estimate = est

	if err != nil {
		log.Warn("lightatlas: calibration over budget, using most degraded settings",
			"per_thread", m.PerThread, "estimate", est, "budget", c.Budget, "quality", q.String())
		return q, m, err
	}
	log.Info("lightatlas: calibration done",
		"per_thread", m.PerThread, "estimate", est, "quality", q.String())
	return q, m, nil
}

func (c *Calibrator) run(measure func() (time.Duration, Stats)) (d time.Duration, s Stats, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lightatlas: calibration benchmark: %v", r)
		}
	}()
	d, s = measure()
	return d, s, nil
}

// benchmark times one single-threaded update after a warm-up update.
func (c *Calibrator) benchmark() (time.Duration, Stats) {
	g, err := NewGrid(c.GridSize, WithSampleCount(MaxSampleCount))
	if err != nil {
		panic(err)
	}
	e, err := NewEngine(WithBatchWidth(c.BatchWidth), WithSeed(c.Seed))
	if err != nil {
		panic(err)
	}
	defer e.Close()

	targets := SyntheticTargets(NewStream(c.Seed), c.TargetCount, g.Center(), g.Size().Vec2())
	const dt = 1.0 / 60

	e.Update(g, dt, targets, UpdateOptions{})
	start := time.Now()
	stats := e.Update(g, dt, targets, UpdateOptions{})
	return time.Since(start), stats
}

// decide walks the mitigation ladder. Each mitigation is assumed to halve
// the cost and is only taken while the estimate is still over budget.
func decide(cost, budget time.Duration) (Quality, time.Duration, error) {
	q := MaxQuality()
	steps := []func(*Quality){
		func(q *Quality) { q.SampleCount /= 2 },
		func(q *Quality) { q.Checkerboard = true },
		func(q *Quality) { q.SkipOneFrame = true },
		func(q *Quality) { q.AtlasHeight = ReducedAtlasHeight },
	}
	for _, step := range steps {
		if cost <= budget {
			return q, cost, nil
		}
		step(&q)
		cost /= 2
	}
	if cost > budget {
		return q, cost, ErrBudgetExceeded
	}
	return q, cost, nil
}

// SyntheticTargets generates n reproducible random targets scattered over
// extent around center: small boxes of random size and color, a quarter of
// them dark occluders.
func SyntheticTargets(s *Stream, n int, center, extent Vec2) []Target {
	targets := make([]Target, n)
	half := extent.Mul(0.5)
	for i := range targets {
		p := Vec2{
			X: center.X + s.Range(-half.X, half.X),
			Y: center.Y + s.Range(-half.Y, half.Y),
		}
		hw := s.Range(0.1, 0.6)
		hh := s.Range(0.1, 0.6)
		var c Color
		if s.Uint()&3 != 0 {
			c = Color{R: s.Float(), G: s.Float(), B: s.Float()}
		}
		targets[i] = BoxAround(p, hw, hh, c)
	}
	return targets
}
