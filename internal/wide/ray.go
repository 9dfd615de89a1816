package wide

import "math"

var (
	posInf = float32(math.Inf(1))
	negInf = float32(math.Inf(-1))
)

// Ray is a single 2D ray with precomputed inverse direction.
type Ray struct {
	OX, OY     float32
	DX, DY     float32
	invX, invY float32
}

// NewRay creates a ray from origin (ox, oy) along (dx, dy).
// The direction does not need to be normalized; distances are measured in
// multiples of its length.
func NewRay(ox, oy, dx, dy float32) Ray {
	return Ray{
		OX: ox, OY: oy,
		DX: dx, DY: dy,
		invX: inverse(dx), invY: inverse(dy),
	}
}

// IntersectBox returns the entry distance into the box [min, max] and
// whether the box is reached within maxT. Origins inside the box report a
// distance of zero. NaN coordinates never report a hit.
func (r *Ray) IntersectBox(minX, minY, maxX, maxY, maxT float32) (float32, bool) {
	return intersectLane(r.OX, r.OY, r.DX, r.DY, r.invX, r.invY, minX, minY, maxX, maxY, maxT)
}

// Ray8 is a batch of eight rays sharing one origin.
type Ray8 struct {
	OX, OY     float32
	DX, DY     F32x8
	invX, invY F32x8
}

// NewRay8 creates a batch of rays from a shared origin.
func NewRay8(ox, oy float32, dx, dy F32x8) Ray8 {
	r := Ray8{OX: ox, OY: oy, DX: dx, DY: dy}
	for i := range dx {
		r.invX[i] = inverse(dx[i])
		r.invY[i] = inverse(dy[i])
	}
	return r
}

// IntersectBox tests all eight rays against one box.
// Lane i of the result equals Ray.IntersectBox for the i-th direction.
func (r *Ray8) IntersectBox(minX, minY, maxX, maxY, maxT float32) (F32x8, Mask8) {
	var t F32x8
	var hit Mask8
	for i := range r.DX {
		t[i], hit[i] = intersectLane(r.OX, r.OY, r.DX[i], r.DY[i], r.invX[i], r.invY[i], minX, minY, maxX, maxY, maxT)
	}
	return t, hit
}

func inverse(d float32) float32 {
	if d == 0 {
		return 0
	}
	return 1 / d
}

func intersectLane(ox, oy, dx, dy, invX, invY, minX, minY, maxX, maxY, maxT float32) (float32, bool) {
	tx0, tx1, ok := slab(ox, dx, invX, minX, maxX)
	if !ok {
		return 0, false
	}
	ty0, ty1, ok := slab(oy, dy, invY, minY, maxY)
	if !ok {
		return 0, false
	}

	near := tx0
	if ty0 > near {
		near = ty0
	}
	if near < 0 {
		near = 0
	}
	far := tx1
	if ty1 < far {
		far = ty1
	}

	// Written as positive comparisons so NaN falls through to a miss.
	if near <= far && near <= maxT {
		return near, true
	}
	return 0, false
}

// slab returns the parametric interval in which the ray lies between lo
// and hi on one axis.
func slab(o, d, inv, lo, hi float32) (float32, float32, bool) {
	if d == 0 {
		if o >= lo && o <= hi {
			return negInf, posInf, true
		}
		return 0, 0, false
	}
	t0 := (lo - o) * inv
	t1 := (hi - o) * inv
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	if !(t0 <= t1) {
		return 0, 0, false // NaN
	}
	return t0, t1, true
}
