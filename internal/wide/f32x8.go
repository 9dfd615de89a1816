package wide

import "math"

// Width is the number of lanes in the wide types.
const Width = 8

// F32x8 represents 8 float32 values for SIMD-style operations.
// Designed for Go compiler auto-vectorization with fixed-size arrays.
type F32x8 [Width]float32

// Mask8 holds one flag per lane.
type Mask8 [Width]bool

// SplatF32 creates F32x8 with all elements set to n.
func SplatF32(n float32) F32x8 {
	var result F32x8
	for i := range result {
		result[i] = n
	}
	return result
}

// LoadF32 copies the first 8 values of src into a F32x8.
// src must have at least 8 elements.
func LoadF32(src []float32) F32x8 {
	var result F32x8
	copy(result[:], src[:Width])
	return result
}

// Store copies all lanes into dst.
// dst must have at least 8 elements.
func (v F32x8) Store(dst []float32) {
	copy(dst[:Width], v[:])
}

// Add performs element-wise addition.
func (v F32x8) Add(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Sub performs element-wise subtraction.
func (v F32x8) Sub(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] - other[i]
	}
	return result
}

// Mul performs element-wise multiplication.
func (v F32x8) Mul(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] * other[i]
	}
	return result
}

// MulScalar multiplies every lane by s.
func (v F32x8) MulScalar(s float32) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] * s
	}
	return result
}

// Lerp performs linear interpolation: v + (other - v) * t.
// t is per-element interpolation factor. The product is rounded before the
// add so the result never depends on fused multiply-add.
func (v F32x8) Lerp(other F32x8, t F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] + float32((other[i]-v[i])*t[i])
	}
	return result
}

// Min performs element-wise minimum.
func (v F32x8) Min(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		if v[i] < other[i] {
			result[i] = v[i]
		} else {
			result[i] = other[i]
		}
	}
	return result
}

// Max performs element-wise maximum.
func (v F32x8) Max(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		if v[i] > other[i] {
			result[i] = v[i]
		} else {
			result[i] = other[i]
		}
	}
	return result
}

// Less returns a mask with lanes set where v[i] < other[i].
// NaN lanes compare false.
func (v F32x8) Less(other F32x8) Mask8 {
	var m Mask8
	for i := range v {
		m[i] = v[i] < other[i]
	}
	return m
}

// Select returns v where mask is set and other elsewhere.
func (v F32x8) Select(mask Mask8, other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		if mask[i] {
			result[i] = v[i]
		} else {
			result[i] = other[i]
		}
	}
	return result
}

// Normalize scales each (x[i], y[i]) pair to unit length.
// Zero-length pairs are replaced by the matching lane of fallbackX/fallbackY.
func Normalize(x, y, fallbackX, fallbackY F32x8) (F32x8, F32x8) {
	var nx, ny F32x8
	for i := range x {
		nx[i], ny[i] = normalizeLane(x[i], y[i], fallbackX[i], fallbackY[i])
	}
	return nx, ny
}

// Normalize1 is the scalar form of Normalize.
func Normalize1(x, y, fallbackX, fallbackY float32) (float32, float32) {
	return normalizeLane(x, y, fallbackX, fallbackY)
}

func normalizeLane(x, y, fx, fy float32) (float32, float32) {
	l := float32(math.Sqrt(float64(float32(x*x) + float32(y*y))))
	if l == 0 {
		return fx, fy
	}
	return x / l, y / l
}

// Any reports whether any lane is set.
func (m Mask8) Any() bool {
	for _, b := range m {
		if b {
			return true
		}
	}
	return false
}

// Count returns the number of set lanes.
func (m Mask8) Count() int {
	n := 0
	for _, b := range m {
		if b {
			n++
		}
	}
	return n
}
