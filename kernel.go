package lightatlas

import (
	"math"

	"github.com/gogpu/lightatlas/internal/parallel"
	"github.com/gogpu/lightatlas/internal/wide"
)

var noHit = float32(math.Inf(1))

// rowJob holds everything a row task reads. It is shared read-only by all
// row tasks of one Update call.
type rowJob struct {
	grid    *Grid
	targets TargetList

	alpha  float32
	gain   float32
	reach  float32
	origin Vec2

	frameSeed    uint32
	jitter       bool
	batchWidth   int
	checkerboard bool
	parity       int

	scratch *parallel.ScratchPool[Target]
}

// run updates row y and returns the rays cast, intersection tests performed
// and voxels blended.
func (j *rowJob) run(y int) (rays, tests, voxels int64) {
	g := j.grid
	w, s := g.size.X, g.sampleCount
	oy := j.origin.Y + float32(y)

	// Every ray of this row starts on the row segment and travels at most
	// reach, so the segment grown by reach bounds everything it can hit.
	lo := Vec2{X: j.origin.X - j.reach, Y: oy - j.reach}
	hi := Vec2{X: j.origin.X + float32(w-1) + j.reach, Y: oy + j.reach}
	buf := j.scratch.Get()
	defer j.scratch.Put(buf)
	*buf = j.targets.Within(*buf, lo, hi)
	candidates := *buf

	// One child stream per row keeps results independent of scheduling.
	rng := NewStream(j.frameSeed).Derive(uint32(y))
	row := g.Row(y)
	perVoxelTests := int64(s) * int64(len(candidates))

	for x := range w {
		if j.checkerboard && (x+y+j.parity)&1 == 0 {
			continue
		}
		ox := j.origin.X + float32(x)
		samples := row[x*s : (x+1)*s]

		first := 0
		if j.batchWidth == wide.Width {
			for ; first+wide.Width <= s; first += wide.Width {
				j.traceBatch(rng, ox, oy, first, samples, candidates)
			}
		}
		for i := first; i < s; i++ {
			j.traceSingle(rng, ox, oy, i, samples, candidates)
		}

		rays += int64(s)
		tests += perVoxelTests
		voxels++
	}
	return rays, tests, voxels
}

// traceSingle casts sample i from (ox, oy) and blends the result.
func (j *rowJob) traceSingle(rng *Stream, ox, oy float32, i int, samples []Color, candidates []Target) {
	var t float32
	if j.jitter {
		t = rng.Float()
	}
	dir := j.grid.directions.Jittered(i, t)
	r := wide.NewRay(ox, oy, dir.X, dir.Y)

	best := noHit
	var hit Color
	for k := range candidates {
		c := &candidates[k]
		// Strict less-than: on equal distance the earlier target wins.
		if d, ok := r.IntersectBox(c.Min.X, c.Min.Y, c.Max.X, c.Max.Y, j.reach); ok && d < best {
			best = d
			hit = c.Color
		}
	}
	samples[i] = j.blend(samples[i], hit)
}

// traceBatch casts samples first..first+7 together. Lane k produces the
// same color traceSingle would for sample first+k.
func (j *rowJob) traceBatch(rng *Stream, ox, oy float32, first int, samples []Color, candidates []Target) {
	var t wide.F32x8
	if j.jitter {
		t = rng.Float8()
	}
	dx, dy := j.grid.directions.Jittered8(first, t)
	r := wide.NewRay8(ox, oy, dx, dy)

	best := wide.SplatF32(noHit)
	var winner [wide.Width]int32
	for k := range winner {
		winner[k] = -1
	}
	for k := range candidates {
		c := &candidates[k]
		d, ok := r.IntersectBox(c.Min.X, c.Min.Y, c.Max.X, c.Max.Y, j.reach)
		if !ok.Any() {
			continue
		}
		closer := d.Less(best)
		for lane := range ok {
			if ok[lane] && closer[lane] {
				best[lane] = d[lane]
				winner[lane] = int32(k)
			}
		}
	}

	for lane, k := range winner {
		var hit Color
		if k >= 0 {
			hit = candidates[k].Color
		}
		samples[first+lane] = j.blend(samples[first+lane], hit)
	}
}

// blend folds one sample's hit color into the stored value.
func (j *rowJob) blend(stored, hit Color) Color {
	provisional := hit.Scale(j.gain)
	if j.alpha >= 1 {
		return provisional
	}
	return stored.Lerp(provisional, j.alpha)
}
