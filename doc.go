// Package lightatlas computes soft 2D global illumination for a top-down
// game on the CPU.
//
// # Overview
//
// A small grid of voxels (16 wide, 16 or 12 tall) follows the player. Every
// voxel stores a ring of directional radiance samples. Each tick the Engine
// casts one ray per sample from the voxel center against the frame's
// targets (axis-aligned boxes carrying an emission color), takes the color
// of the nearest hit, multiplies it by a gain and blends it into the stored
// sample with the factor min(dt*rate, 1). The averaged voxel colors are
// uploaded as a texture and sampled by the lighting shader.
//
// # Quick Start
//
//	e, err := lightatlas.NewEngine(lightatlas.WithWorkers(0))
//	if err != nil {
//	    return err
//	}
//	defer e.Close()
//
//	q, _, err := lightatlas.NewCalibrator().Estimate()
//	if err != nil && !errors.Is(err, lightatlas.ErrBudgetExceeded) {
//	    return err
//	}
//	atlas, err := lightatlas.NewAtlas(q, e)
//	if err != nil {
//	    return err
//	}
//
//	// Every tick:
//	atlas.Tick(playerPos, dt, targets)
//	texels := atlas.Texels()
//
// # Quality
//
// Calibration times one full update at 256 samples and walks a ladder of
// mitigations until the estimate fits the frame budget: halve the sample
// count, update a checkerboard half per tick, update every other tick at
// twice the rate, and shrink the grid to 12 rows.
//
// # Determinism
//
// For a given seed, target list and sequence of ticks the voxel contents
// are bit-identical regardless of worker count or batch width. Every row
// draws its random numbers from a stream derived from the frame seed and
// the row index.
//
// # Coordinate System
//
// One world unit per voxel. Voxel (x, y) samples from Grid.Origin()+(x, y).
// The grid scrolls on the integer lattice; samples that scroll in start
// dark.
//
// # Packages
//
//   - scene: builds target lists from game entities
//   - texture: tone-maps voxels and uploads them through gpucontext
//   - shader: the WGSL lookup shader and its uniforms
//   - snapshot: PNG, WebP and TGA debug images
package lightatlas
