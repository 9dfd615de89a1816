package lightatlas

import (
	"math"

	"github.com/gogpu/lightatlas/internal/wide"
)

// DirectionSet is a ring of unit directions evenly spaced around a circle.
// Direction i points at angle i/count*2π. The set itself is not random;
// jitter is applied at sample time by blending neighbouring directions.
type DirectionSet struct {
	x, y []float32
}

// NewDirectionSet lays out count unit vectors around the circle.
// count must be positive.
func NewDirectionSet(count int) DirectionSet {
	d := DirectionSet{
		x: make([]float32, count),
		y: make([]float32, count),
	}
	for i := range count {
		a := float64(i) / float64(count) * 2 * math.Pi
		d.x[i] = float32(math.Cos(a))
		d.y[i] = float32(math.Sin(a))
	}
	return d
}

// Len returns the number of directions.
func (d DirectionSet) Len() int {
	return len(d.x)
}

// At returns direction i.
func (d DirectionSet) At(i int) Vec2 {
	return Vec2{X: d.x[i], Y: d.y[i]}
}

// Jittered blends direction i towards its successor by t in [0, 1) and
// renormalizes. A blend that collapses to zero length falls back to
// direction i.
func (d DirectionSet) Jittered(i int, t float32) Vec2 {
	j := (i + 1) % len(d.x)
	x := d.x[i] + float32((d.x[j]-d.x[i])*t)
	y := d.y[i] + float32((d.y[j]-d.y[i])*t)
	nx, ny := wide.Normalize1(x, y, d.x[i], d.y[i])
	return Vec2{X: nx, Y: ny}
}

// Jittered8 is the eight-lane form of Jittered for directions i..i+7.
// Lane k equals Jittered(i+k, t[k]).
func (d DirectionSet) Jittered8(i int, t wide.F32x8) (wide.F32x8, wide.F32x8) {
	n := len(d.x)
	var ax, ay, bx, by wide.F32x8
	for k := range ax {
		a := (i + k) % n
		b := (a + 1) % n
		ax[k], ay[k] = d.x[a], d.y[a]
		bx[k], by[k] = d.x[b], d.y[b]
	}
	return wide.Normalize(ax.Lerp(bx, t), ay.Lerp(by, t), ax, ay)
}
