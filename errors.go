package lightatlas

import "errors"

// Sentinel errors for the lightatlas package.
var (
	// ErrInvalidSize is returned when a grid extent is not positive.
	ErrInvalidSize = errors.New("lightatlas: grid size must be positive")

	// ErrInvalidSampleCount is returned when the sample count is not a power
	// of two in [1, MaxSampleCount].
	ErrInvalidSampleCount = errors.New("lightatlas: sample count must be a power of two in [1, 256]")

	// ErrInvalidBatchWidth is returned for batch widths other than 1 and 8.
	ErrInvalidBatchWidth = errors.New("lightatlas: batch width must be 1 or 8")

	// ErrBudgetExceeded is returned by calibration when even the most
	// degraded settings exceed the frame budget. The returned Quality is
	// still usable.
	ErrBudgetExceeded = errors.New("lightatlas: calibration budget exceeded")
)
