// Package scene converts game entities into the per-frame target list the
// light atlas is updated against.
package scene

import (
	"math"

	"github.com/gogpu/lightatlas"
)

// Palette holds the emission color of every entity kind.
// A zero color makes an entity a pure occluder.
type Palette struct {
	Tile      lightatlas.Color
	Bullet    lightatlas.Color
	Ember     lightatlas.Color
	Explosion lightatlas.Color
	Coin      lightatlas.Color
	Player    lightatlas.Color
	SafeZone  lightatlas.Color
}

// DefaultPalette returns the game's emission colors: dark walls, hot
// orange projectiles and fire, gold coins, a faint player glow and a cool
// safe zone.
func DefaultPalette() Palette {
	return Palette{
		Tile:      lightatlas.RGB(0, 0, 0),
		Bullet:    lightatlas.RGB(1, 0.55, 0.15),
		Ember:     lightatlas.RGB(1, 0.3, 0.05),
		Explosion: lightatlas.RGB(1, 0.7, 0.3),
		Coin:      lightatlas.RGB(0.9, 0.75, 0.2),
		Player:    lightatlas.RGB(0.15, 0.15, 0.2),
		SafeZone:  lightatlas.RGB(0.2, 0.6, 0.8),
	}
}

// Entity sizes in world units (one unit per voxel).
const (
	BulletRadius       = 0.15
	EmberRadius        = 0.1
	CoinRadius         = 0.2
	PlayerHalfWidth    = 0.3
	ExplosionMaxRadius = 1.5
)

// Builder provides a fluent API for assembling a frame's targets.
//
// The list is rebuilt from scratch every tick: call Reset, add the live
// entities, then pass Targets to the atlas. Insertion order is preserved
// and decides ties between equally distant hits.
//
// Example:
//
//	targets := b.Reset().
//	    Tile(3, 4).
//	    Bullet(pos, dir).
//	    Player(playerPos).
//	    Targets()
type Builder struct {
	palette Palette
	targets []lightatlas.Target
}

// NewBuilder creates a builder using DefaultPalette.
func NewBuilder() *Builder {
	return NewBuilderWithPalette(DefaultPalette())
}

// NewBuilderWithPalette creates a builder with custom emission colors.
func NewBuilderWithPalette(p Palette) *Builder {
	return &Builder{palette: p}
}

// Palette returns the builder's emission colors.
func (b *Builder) Palette() Palette {
	return b.palette
}

// Reset empties the list, keeping its capacity.
func (b *Builder) Reset() *Builder {
	b.targets = b.targets[:0]
	return b
}

// Box appends a raw target.
func (b *Builder) Box(t lightatlas.Target) *Builder {
	b.targets = append(b.targets, t)
	return b
}

// Tile appends a solid level tile covering the unit cell whose lower
// corner is (x, y).
func (b *Builder) Tile(x, y int) *Builder {
	fx, fy := float32(x), float32(y)
	return b.Box(lightatlas.Box(fx, fy, fx+1, fy+1, b.palette.Tile))
}

// Bullet appends a projectile at p.
func (b *Builder) Bullet(p lightatlas.Vec2) *Builder {
	return b.Box(lightatlas.BoxAround(p, BulletRadius, BulletRadius, b.palette.Bullet))
}

// Ember appends a fire particle at p. heat in [0, 1] scales its emission;
// values outside the range are clamped.
func (b *Builder) Ember(p lightatlas.Vec2, heat float32) *Builder {
	heat = clamp01(heat)
	if heat == 0 {
		return b
	}
	return b.Box(lightatlas.BoxAround(p, EmberRadius, EmberRadius, b.palette.Ember.Scale(heat)))
}

// Explosion appends an explosion at p that is age seconds into a blast of
// lifetime seconds. The radius grows as sqrt(age/lifetime) while the
// intensity fades linearly; finished blasts are skipped.
func (b *Builder) Explosion(p lightatlas.Vec2, age, lifetime float32) *Builder {
	if !(lifetime > 0) || age < 0 || age >= lifetime {
		return b
	}
	t := age / lifetime
	r := ExplosionMaxRadius * float32(math.Sqrt(float64(t)))
	if r == 0 {
		return b
	}
	return b.Box(lightatlas.BoxAround(p, r, r, b.palette.Explosion.Scale(1-t)))
}

// Coin appends a pickup at p.
func (b *Builder) Coin(p lightatlas.Vec2) *Builder {
	return b.Box(lightatlas.BoxAround(p, CoinRadius, CoinRadius, b.palette.Coin))
}

// Player appends the player body at p.
func (b *Builder) Player(p lightatlas.Vec2) *Builder {
	return b.Box(lightatlas.BoxAround(p, PlayerHalfWidth, PlayerHalfWidth, b.palette.Player))
}

// SafeZone appends the safe zone marker spanning [lo, hi].
func (b *Builder) SafeZone(lo, hi lightatlas.Vec2) *Builder {
	return b.Box(lightatlas.Target{Min: lo, Max: hi, Color: b.palette.SafeZone})
}

// Len returns the number of targets.
func (b *Builder) Len() int {
	return len(b.targets)
}

// Targets returns the assembled list. The slice is reused by the next
// Reset and must not be retained past the frame.
func (b *Builder) Targets() []lightatlas.Target {
	return b.targets
}

func clamp01(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
