// Package wide provides SIMD-friendly wide types for batched ray casting.
//
// The light atlas casts many rays from the same voxel origin against the
// same list of boxes. Grouping eight sample directions into one F32x8 lets
// the Go compiler auto-vectorize the per-lane arithmetic on supported
// architectures (SSE, AVX, NEON) without unsafe or assembly.
//
// # Wide Types
//
// F32x8: 8 float32 values for floating-point operations (directions, distances).
// Mask8: 8 lane flags produced by comparisons and intersection tests.
//
// # Rays
//
// Ray and Ray8 share the same slab test, lane for lane. A batch of eight
// rays produces exactly the same distances and hit flags as eight scalar
// rays, so callers may pick the width at runtime without changing results.
//
// # Usage Example
//
//	r := wide.NewRay8(ox, oy, dirX, dirY)
//	t, hit := r.IntersectBox(minX, minY, maxX, maxY, maxT)
//	for i := range hit {
//	    if hit[i] && t[i] < best[i] {
//	        best[i] = t[i]
//	    }
//	}
package wide
