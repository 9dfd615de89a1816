package lightatlas

import (
	"fmt"
	"math"
	"math/bits"
)

// Grid is the radiance grid: a camera-relative sliding window of voxels
// around the player.
//
// Each voxel stores SampleCount accumulated colors, one per ring direction.
// The buffer is flat and row-major, addressed as (y*width+x)*samples+s.
// Moving the grid scrolls surviving voxels in place; voxels that scroll out
// are discarded and re-accumulate from zero when they scroll back in.
//
// Thread safety: Grid is NOT thread-safe. Move, Resize and Engine.Update
// must be sequenced by the caller.
type Grid struct {
	center         Vec2
	previousCenter Vec2

	size             IVec2
	sampleCount      int
	accumulationRate float32

	voxels     []Color
	directions DirectionSet
}

// NewGrid creates a zeroed grid of the given size.
func NewGrid(size IVec2, opts ...GridOption) (*Grid, error) {
	o := defaultGridOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !validSampleCount(o.sampleCount) {
		return nil, fmt.Errorf("new grid: %w", ErrInvalidSampleCount)
	}
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("new grid %dx%d: %w", size.X, size.Y, ErrInvalidSize)
	}

	var c Vec2
	if o.center.IsFinite() {
		c = Vec2{
			X: float32(math.Round(float64(o.center.X))),
			Y: float32(math.Round(float64(o.center.Y))),
		}
	}
	g := &Grid{
		center:           c,
		previousCenter:   c,
		sampleCount:      o.sampleCount,
		accumulationRate: o.accumulationRate,
		directions:       NewDirectionSet(o.sampleCount),
	}
	g.allocate(size)
	return g, nil
}

func validSampleCount(n int) bool {
	return n >= 1 && n <= MaxSampleCount && bits.OnesCount(uint(n)) == 1
}

// allocate replaces the voxel buffer. The old buffer is dropped, never reused.
func (g *Grid) allocate(size IVec2) {
	g.size = size
	g.voxels = make([]Color, size.X*size.Y*g.sampleCount)
	Logger().Debug("lightatlas: grid allocated",
		"width", size.X, "height", size.Y, "samples", g.sampleCount)
}

// Resize reallocates the grid to size and zeroes every voxel.
func (g *Grid) Resize(size IVec2) error {
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("resize to %dx%d: %w", size.X, size.Y, ErrInvalidSize)
	}
	g.allocate(size)
	return nil
}

// SetSampleCount changes the number of samples per voxel. The direction ring
// is regenerated and the voxel buffer reallocated and zeroed.
func (g *Grid) SetSampleCount(n int) error {
	if !validSampleCount(n) {
		return fmt.Errorf("set sample count %d: %w", n, ErrInvalidSampleCount)
	}
	g.sampleCount = n
	g.directions = NewDirectionSet(n)
	g.allocate(g.size)
	return nil
}

// SetAccumulationRate sets the per-second exponential smoothing rate.
func (g *Grid) SetAccumulationRate(rate float32) {
	g.accumulationRate = rate
}

// AccumulationRate returns the per-second exponential smoothing rate.
func (g *Grid) AccumulationRate() float32 {
	return g.accumulationRate
}

// Size returns the grid extent in voxels.
func (g *Grid) Size() IVec2 {
	return g.size
}

// SampleCount returns the number of samples per voxel.
func (g *Grid) SampleCount() int {
	return g.sampleCount
}

// Directions returns the sampling ring.
func (g *Grid) Directions() DirectionSet {
	return g.directions
}

// Center returns the world-space center the grid is currently at.
func (g *Grid) Center() Vec2 {
	return g.center
}

// Origin returns the world-space position of voxel (0, 0).
func (g *Grid) Origin() Vec2 {
	return g.center.Sub(g.size.Vec2().Mul(0.5))
}

// RayLength returns the length every sample ray is cast with: the grid
// diagonal, long enough to reach any target that can matter to any voxel.
func (g *Grid) RayLength() float32 {
	return g.size.Vec2().Length()
}

// Move scrolls the grid to be centered on newCenter.
//
// The scroll delta is the rounded difference to the previous center,
// clamped to the grid size. Columns are shifted first, then rows; cells
// that scroll in are zero. A delta reaching the grid size on either axis,
// however far, clears the whole grid and the center still lands on the
// rounded newCenter. A non-finite newCenter is ignored. Move reports
// whether the center changed.
func (g *Grid) Move(newCenter Vec2) bool {
	if !newCenter.IsFinite() {
		return false
	}
	dx := math.Round(float64(newCenter.X) - float64(g.previousCenter.X))
	dy := math.Round(float64(newCenter.Y) - float64(g.previousCenter.Y))

	if math.Abs(dx) >= float64(g.size.X) || math.Abs(dy) >= float64(g.size.Y) {
		// Far jumps lose precision in the delta; land on newCenter itself.
		g.Clear()
		g.center = Vec2{
			X: float32(math.Round(float64(newCenter.X))),
			Y: float32(math.Round(float64(newCenter.Y))),
		}
	} else {
		g.center = Vec2{
			X: g.previousCenter.X + float32(dx),
			Y: g.previousCenter.Y + float32(dy),
		}
		if dx != 0 {
			g.shiftColumns(int(dx))
		}
		if dy != 0 {
			g.shiftRows(int(dy))
		}
	}

	moved := g.center != g.previousCenter
	g.previousCenter = g.center
	return moved
}

// shiftColumns moves every row's voxels so that column x receives column
// x+dx. 0 < |dx| < width.
func (g *Grid) shiftColumns(dx int) {
	s := g.sampleCount
	rowLen := g.size.X * s
	for y := range g.size.Y {
		row := g.voxels[y*rowLen : (y+1)*rowLen]
		if dx > 0 {
			copy(row, row[dx*s:])
			clear(row[rowLen-dx*s:])
		} else {
			k := -dx * s
			copy(row[k:], row[:rowLen-k])
			clear(row[:k])
		}
	}
}

// shiftRows moves whole rows so that row y receives row y+dy.
// 0 < |dy| < height.
func (g *Grid) shiftRows(dy int) {
	rowLen := g.size.X * g.sampleCount
	n := len(g.voxels)
	if dy > 0 {
		k := dy * rowLen
		copy(g.voxels, g.voxels[k:])
		clear(g.voxels[n-k:])
	} else {
		k := -dy * rowLen
		copy(g.voxels[k:], g.voxels[:n-k])
		clear(g.voxels[:k])
	}
}

// Clear zeroes every voxel.
func (g *Grid) Clear() {
	clear(g.voxels)
}

// Fill sets every sample of every voxel to c.
func (g *Grid) Fill(c Color) {
	for i := range g.voxels {
		g.voxels[i] = c
	}
}

func (g *Grid) index(x, y, s int) int {
	if x < 0 || x >= g.size.X || y < 0 || y >= g.size.Y || s < 0 || s >= g.sampleCount {
		panic(fmt.Sprintf("lightatlas: voxel (%d,%d) sample %d out of range %dx%dx%d",
			x, y, s, g.size.X, g.size.Y, g.sampleCount))
	}
	return (y*g.size.X+x)*g.sampleCount + s
}

// Sample returns sample s of voxel (x, y).
func (g *Grid) Sample(x, y, s int) Color {
	return g.voxels[g.index(x, y, s)]
}

// SetSample overwrites sample s of voxel (x, y).
func (g *Grid) SetSample(x, y, s int, c Color) {
	g.voxels[g.index(x, y, s)] = c
}

// Samples returns the samples of voxel (x, y). The slice aliases the grid
// and is valid until the next Resize or SetSampleCount.
func (g *Grid) Samples(x, y int) []Color {
	i := g.index(x, y, 0)
	return g.voxels[i : i+g.sampleCount : i+g.sampleCount]
}

// Row returns the samples of row y, width*samples entries. The slice
// aliases the grid and is valid until the next Resize or SetSampleCount.
func (g *Grid) Row(y int) []Color {
	i := g.index(0, y, 0)
	n := g.size.X * g.sampleCount
	return g.voxels[i : i+n : i+n]
}

// Voxel returns the average of the samples of voxel (x, y).
func (g *Grid) Voxel(x, y int) Color {
	return average(g.Samples(x, y))
}

func average(samples []Color) Color {
	var sum Color
	for _, c := range samples {
		sum = sum.Add(c)
	}
	return sum.Scale(1 / float32(len(samples)))
}

// Texels writes the sample-averaged voxel colors as row-major RGB float
// triples, width*height*3 values, reusing dst when it is large enough.
func (g *Grid) Texels(dst []float32) []float32 {
	n := g.size.Area() * 3
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]
	for y := range g.size.Y {
		for x := range g.size.X {
			c := g.Voxel(x, y)
			i := (y*g.size.X + x) * 3
			dst[i], dst[i+1], dst[i+2] = c.R, c.G, c.B
		}
	}
	return dst
}
