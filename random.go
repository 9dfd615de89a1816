package lightatlas

import "github.com/gogpu/lightatlas/internal/wide"

// weyl is the golden-ratio increment applied to the counter on every draw.
const weyl = 0x9e3779b9

// Stream is a small deterministic counter-based pseudo-random generator.
//
// The state is a single 32-bit counter. Every draw advances the counter by a
// Weyl constant and hashes it, so a stream is reproducible from its seed and
// independent of every other stream. There is no package-level state.
//
// Thread safety: a Stream is NOT safe for concurrent use. Give each
// goroutine its own stream, usually via Derive.
type Stream struct {
	seed uint32
}

// NewStream creates a stream starting at seed.
func NewStream(seed uint32) *Stream {
	return &Stream{seed: seed}
}

// Seed returns the current counter value.
func (s *Stream) Seed() uint32 {
	return s.seed
}

// Uint returns the next 32-bit value.
func (s *Stream) Uint() uint32 {
	s.seed += weyl
	return hash32(s.seed)
}

// Float returns the next value in [0, 1).
func (s *Stream) Float() float32 {
	// 24 bits fill the float32 mantissa exactly.
	return float32(s.Uint()>>8) * (1.0 / (1 << 24))
}

// Range returns the next value in [lo, hi).
func (s *Stream) Range(lo, hi float32) float32 {
	return lo + (hi-lo)*s.Float()
}

// Vec2 returns a vector with both components in [0, 1), X drawn first.
func (s *Stream) Vec2() Vec2 {
	x := s.Float()
	y := s.Float()
	return Vec2{X: x, Y: y}
}

// FillFloat fills dst with consecutive Float draws.
func (s *Stream) FillFloat(dst []float32) {
	for i := range dst {
		dst[i] = s.Float()
	}
}

// FillUint fills dst with consecutive Uint draws.
func (s *Stream) FillUint(dst []uint32) {
	for i := range dst {
		dst[i] = s.Uint()
	}
}

// Float8 returns eight consecutive Float draws, lane 0 first.
// The result equals eight calls to Float in order.
func (s *Stream) Float8() wide.F32x8 {
	var v wide.F32x8
	s.FillFloat(v[:])
	return v
}

// Derive returns a child stream keyed by key. The parent is not advanced,
// so children derived from the same parent state with different keys are
// independent of each other and of the order they are consumed in.
func (s *Stream) Derive(key uint32) *Stream {
	return &Stream{seed: hash32(s.seed ^ hash32(key+weyl))}
}

// hash32 is a low-bias 32-bit integer finalizer.
func hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}
