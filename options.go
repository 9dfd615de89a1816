package lightatlas

// Defaults used when no option overrides them.
const (
	// DefaultAtlasWidth is the grid width in voxels. Calibration only ever
	// changes the height.
	DefaultAtlasWidth = 16

	// DefaultAtlasHeight is the grid height before calibration shrinks it.
	DefaultAtlasHeight = 16

	// ReducedAtlasHeight is the height the calibrator falls back to.
	ReducedAtlasHeight = 12

	// MaxSampleCount is the largest supported number of samples per voxel.
	MaxSampleCount = 256

	// DefaultSampleCount is used by NewGrid without WithSampleCount.
	DefaultSampleCount = 64

	// DefaultAccumulationRate is the per-second exponential smoothing rate.
	DefaultAccumulationRate = 10

	// DefaultGain scales hit colors before accumulation.
	DefaultGain = 10
)

// GridOption configures a Grid during creation.
//
// Example:
//
//	g, err := lightatlas.NewGrid(lightatlas.IV2(16, 16),
//	    lightatlas.WithSampleCount(128),
//	    lightatlas.WithAccumulationRate(20),
//	)
type GridOption func(*gridOptions)

// gridOptions holds optional configuration for Grid creation.
type gridOptions struct {
	sampleCount      int
	accumulationRate float32
	center           Vec2
}

func defaultGridOptions() gridOptions {
	return gridOptions{
		sampleCount:      DefaultSampleCount,
		accumulationRate: DefaultAccumulationRate,
	}
}

// WithSampleCount sets the number of directional samples per voxel.
// It must be a power of two in [1, MaxSampleCount].
func WithSampleCount(n int) GridOption {
	return func(o *gridOptions) {
		o.sampleCount = n
	}
}

// WithAccumulationRate sets the per-second exponential smoothing rate.
func WithAccumulationRate(rate float32) GridOption {
	return func(o *gridOptions) {
		o.accumulationRate = rate
	}
}

// WithCenter sets the initial world-space center. It is rounded to the
// integer lattice the grid scrolls on; a NaN or infinite center means the
// origin.
func WithCenter(c Vec2) GridOption {
	return func(o *gridOptions) {
		o.center = c
	}
}

// EngineOption configures an Engine during creation.
//
// Example:
//
//	pool := myapp.WorkQueue()
//	e, err := lightatlas.NewEngine(
//	    lightatlas.WithDistributor(pool),
//	    lightatlas.WithBatchWidth(8),
//	)
type EngineOption func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	distributor Distributor
	workers     int
	batchWidth  int
	jitter      bool
	seed        uint32
	gain        float32
}

func defaultEngineOptions() engineOptions {
	return engineOptions{
		batchWidth: 8,
		jitter:     true,
		seed:       0x6c69_6768, // "ligh"
		gain:       DefaultGain,
	}
}

// WithDistributor makes the engine fan rows out through d.
// The engine does not close a distributor it did not create.
func WithDistributor(d Distributor) EngineOption {
	return func(o *engineOptions) {
		o.distributor = d
	}
}

// WithWorkers makes the engine create and own a worker pool with n workers.
// n <= 0 uses GOMAXPROCS. Ignored when WithDistributor is also given.
func WithWorkers(n int) EngineOption {
	return func(o *engineOptions) {
		if n <= 0 {
			n = -1
		}
		o.workers = n
	}
}

// WithBatchWidth selects the number of rays intersected together: 1 for the
// scalar kernel, 8 for the wide kernel. Both produce identical voxels.
func WithBatchWidth(w int) EngineOption {
	return func(o *engineOptions) {
		o.batchWidth = w
	}
}

// WithJitter enables or disables random blending between neighbouring ring
// directions. Without jitter every sample uses its exact ring direction.
func WithJitter(enabled bool) EngineOption {
	return func(o *engineOptions) {
		o.jitter = enabled
	}
}

// WithSeed sets the seed of the engine's random stream.
func WithSeed(seed uint32) EngineOption {
	return func(o *engineOptions) {
		o.seed = seed
	}
}

// WithGain sets the factor hit colors are multiplied by before accumulation.
func WithGain(gain float32) EngineOption {
	return func(o *engineOptions) {
		o.gain = gain
	}
}
