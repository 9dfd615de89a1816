package main

import (
	"math"

	"github.com/gogpu/lightatlas"
	"github.com/gogpu/lightatlas/scene"
)

const (
	bulletSpeed     = 9
	bulletLifetime  = 1.2
	blastLifetime   = 0.6
	emberLifetime   = 0.8
	embersPerBlast  = 6
	fireInterval    = 0.25
	pillarSpacing   = 5
	coinSpacing     = 7
	visibleRadius   = 12
	safeZoneHalf    = 3
	autopilotRadius = 14
)

type bullet struct {
	pos, vel lightatlas.Vec2
	age      float32
}

type blast struct {
	pos lightatlas.Vec2
	age float32
}

type ember struct {
	pos, vel lightatlas.Vec2
	age      float32
}

// world is the demo level: a field of pillars and coins, a player who
// fires bullets that burst into explosions and embers, and a safe zone at
// the origin. It is deterministic for a given seed and tick sequence.
type world struct {
	rng     *lightatlas.Stream
	builder *scene.Builder

	time      float32
	player    lightatlas.Vec2
	aim       float32
	autopilot bool
	cooldown  float32

	bullets []bullet
	blasts  []blast
	embers  []ember
}

func newWorld(seed uint32) *world {
	return &world{
		rng:       lightatlas.NewStream(seed),
		builder:   scene.NewBuilder(),
		autopilot: true,
	}
}

// move drives the player manually and turns the autopilot off.
func (w *world) move(d lightatlas.Vec2) {
	w.autopilot = false
	w.player = w.player.Add(d)
	if d.X != 0 || d.Y != 0 {
		w.aim = float32(math.Atan2(float64(d.Y), float64(d.X)))
	}
}

// fire launches a bullet along the current aim.
func (w *world) fire() {
	dir := lightatlas.V2(float32(math.Cos(float64(w.aim))), float32(math.Sin(float64(w.aim))))
	w.bullets = append(w.bullets, bullet{pos: w.player, vel: dir.Mul(bulletSpeed)})
}

func (w *world) step(dt float32) {
	if dt <= 0 {
		return
	}
	w.time += dt

	if w.autopilot {
		t := float64(w.time)
		w.player = lightatlas.V2(
			float32(math.Cos(t*0.3))*autopilotRadius,
			float32(math.Sin(t*0.45))*autopilotRadius*0.6,
		)
		w.aim += dt * 2.5
		w.cooldown -= dt
		if w.cooldown <= 0 {
			w.cooldown += fireInterval
			w.fire()
		}
	}

	live := w.bullets[:0]
	for _, b := range w.bullets {
		b.pos = b.pos.Add(b.vel.Mul(dt))
		b.age += dt
		if b.age >= bulletLifetime || pillarAt(b.pos) {
			w.explode(b.pos)
			continue
		}
		live = append(live, b)
	}
	w.bullets = live

	blasts := w.blasts[:0]
	for _, b := range w.blasts {
		b.age += dt
		if b.age < blastLifetime {
			blasts = append(blasts, b)
		}
	}
	w.blasts = blasts

	embers := w.embers[:0]
	for _, e := range w.embers {
		e.pos = e.pos.Add(e.vel.Mul(dt))
		e.vel = e.vel.Mul(0.95)
		e.age += dt
		if e.age < emberLifetime {
			embers = append(embers, e)
		}
	}
	w.embers = embers
}

func (w *world) explode(p lightatlas.Vec2) {
	w.blasts = append(w.blasts, blast{pos: p})
	for range embersPerBlast {
		v := lightatlas.V2(w.rng.Range(-3, 3), w.rng.Range(-3, 3))
		w.embers = append(w.embers, ember{pos: p, vel: v})
	}
}

// pillarAt reports whether p lies inside a level pillar. Pillars occupy
// the unit cells whose lower corner sits on the pillar lattice.
func pillarAt(p lightatlas.Vec2) bool {
	x := int(math.Floor(float64(p.X)))
	y := int(math.Floor(float64(p.Y)))
	return onLattice(x, pillarSpacing) && onLattice(y, pillarSpacing) && !inSafeZone(x, y)
}

func onLattice(v, spacing int) bool {
	return ((v%spacing)+spacing)%spacing == 0
}

func inSafeZone(x, y int) bool {
	return x >= -safeZoneHalf && x < safeZoneHalf && y >= -safeZoneHalf && y < safeZoneHalf
}

// targets assembles this tick's target list around the player. The
// returned slice is reused by the next call.
func (w *world) targets() []lightatlas.Target {
	b := w.builder.Reset()

	px := int(math.Floor(float64(w.player.X)))
	py := int(math.Floor(float64(w.player.Y)))
	for y := py - visibleRadius; y <= py+visibleRadius; y++ {
		for x := px - visibleRadius; x <= px+visibleRadius; x++ {
			switch {
			case onLattice(x, pillarSpacing) && onLattice(y, pillarSpacing) && !inSafeZone(x, y):
				b.Tile(x, y)
			case onLattice(x+3, coinSpacing) && onLattice(y+2, coinSpacing):
				b.Coin(lightatlas.V2(float32(x)+0.5, float32(y)+0.5))
			}
		}
	}

	b.SafeZone(lightatlas.V2(-safeZoneHalf, -safeZoneHalf), lightatlas.V2(safeZoneHalf, safeZoneHalf))
	for _, bl := range w.blasts {
		b.Explosion(bl.pos, bl.age, blastLifetime)
	}
	for _, e := range w.embers {
		b.Ember(e.pos, 1-e.age/emberLifetime)
	}
	for _, bu := range w.bullets {
		b.Bullet(bu.pos)
	}
	b.Player(w.player)
	return b.Targets()
}
