package lightatlas

// Target is an axis-aligned box that blocks rays and emits Color when hit.
// Targets are light sources and occluders at the same time: the nearest
// box along a ray decides its color.
//
// Boxes are not validated. Inverted boxes are never entered and boxes with
// NaN coordinates never win a hit.
type Target struct {
	Min, Max Vec2
	Color    Color
}

// Box creates a target from its corners.
func Box(minX, minY, maxX, maxY float32, c Color) Target {
	return Target{Min: Vec2{X: minX, Y: minY}, Max: Vec2{X: maxX, Y: maxY}, Color: c}
}

// BoxAround creates a target centered on p with the given half extents.
func BoxAround(p Vec2, halfW, halfH float32, c Color) Target {
	return Target{
		Min:   Vec2{X: p.X - halfW, Y: p.Y - halfH},
		Max:   Vec2{X: p.X + halfW, Y: p.Y + halfH},
		Color: c,
	}
}

// Center returns the box center.
func (t Target) Center() Vec2 {
	return Vec2{X: (t.Min.X + t.Max.X) * 0.5, Y: (t.Min.Y + t.Max.Y) * 0.5}
}

// Overlaps reports whether the box intersects the region [lo, hi].
// Touching edges count as overlapping.
func (t Target) Overlaps(lo, hi Vec2) bool {
	return t.Min.X <= hi.X && t.Max.X >= lo.X &&
		t.Min.Y <= hi.Y && t.Max.Y >= lo.Y
}

// TargetList is the per-frame set of targets. The engine reads it during one
// Update call and keeps no reference afterwards.
type TargetList []Target

// Within returns the targets overlapping [lo, hi], appended to dst.
// The filter is conservative: any target a ray inside the region could
// reach is kept. Order is preserved.
func (l TargetList) Within(dst []Target, lo, hi Vec2) []Target {
	for _, t := range l {
		if t.Overlaps(lo, hi) {
			dst = append(dst, t)
		}
	}
	return dst
}
