package lightatlas

import "math"

// Vec2 represents a 2D world-space position or direction.
type Vec2 struct {
	X, Y float32
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Length returns the length (magnitude) of the vector.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Normalize returns a unit vector in the same direction.
// Returns zero vector if the original vector has zero length.
func (v Vec2) Normalize() Vec2 {
	length := v.Length()
	if length == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / length, Y: v.Y / length}
}

// Lerp performs linear interpolation between two vectors.
// t=0 returns v, t=1 returns w, intermediate values interpolate.
func (v Vec2) Lerp(w Vec2, t float32) Vec2 {
	return Vec2{
		X: v.X + (w.X-v.X)*t,
		Y: v.Y + (w.Y-v.Y)*t,
	}
}

// IsFinite reports whether neither component is NaN or infinite.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(float64(v.X)) && !math.IsInf(float64(v.X), 0) &&
		!math.IsNaN(float64(v.Y)) && !math.IsInf(float64(v.Y), 0)
}

// Round rounds both components to the nearest integer, halves away from zero.
func (v Vec2) Round() IVec2 {
	return IVec2{
		X: int(math.Round(float64(v.X))),
		Y: int(math.Round(float64(v.Y))),
	}
}

// IVec2 is an integer 2D vector used for grid extents and scroll deltas.
type IVec2 struct {
	X, Y int
}

// IV2 is a convenience function to create an IVec2.
func IV2(x, y int) IVec2 {
	return IVec2{X: x, Y: y}
}

// Vec2 converts to floating point.
func (v IVec2) Vec2() Vec2 {
	return Vec2{X: float32(v.X), Y: float32(v.Y)}
}

// Add returns the sum of two vectors.
func (v IVec2) Add(w IVec2) IVec2 {
	return IVec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Clamp limits each component to [-bound, bound] of the matching axis.
func (v IVec2) Clamp(bound IVec2) IVec2 {
	return IVec2{
		X: min(max(v.X, -bound.X), bound.X),
		Y: min(max(v.Y, -bound.Y), bound.Y),
	}
}

// Area returns X*Y.
func (v IVec2) Area() int {
	return v.X * v.Y
}

// Color is a linear RGB triple. Values above 1 are allowed; hit colors are
// scaled by the engine gain before accumulation.
type Color struct {
	R, G, B float32
}

// RGB creates a Color.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b}
}

// Add returns the component-wise sum.
func (c Color) Add(o Color) Color {
	return Color{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B}
}

// Scale multiplies every component by s.
func (c Color) Scale(s float32) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s}
}

// Lerp interpolates from c towards o by t.
func (c Color) Lerp(o Color, t float32) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
	}
}

// Luminance returns the Rec. 709 relative luminance.
func (c Color) Luminance() float32 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// IsZero reports whether all components are exactly zero.
func (c Color) IsZero() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}
