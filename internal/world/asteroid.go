package world

import (
	"math"
	"math/rand"

	"github.com/farwind/engine/internal/core/ref"
	"github.com/farwind/engine/internal/data"
)

// Tumbling asteroids wrap around a square region centered on the system
// origin; this is its half-width.
const asteroidWrap = 4096.

// Asteroid is an indestructible tumbling rock. Projectiles stop on it but
// it takes no damage.
type Asteroid struct {
	Position Point
	Velocity Point
	Size     float64
}

// Minable is a large destructible asteroid that drops its payload as
// flotsam when its hull gives out.
type Minable struct {
	Def      *data.AsteroidDef
	Position Point
	Velocity Point
	Hull     float64

	destroyed bool
}

// AsteroidField holds every rock in the current system. It is rebuilt
// wholesale on system entry.
type AsteroidField struct {
	Asteroids []*Asteroid
	Minables  []*Minable
}

// Setup replaces the field with the given system's rocks. Small asteroids
// get random positions and energies; minables keep their definition hull.
func (f *AsteroidField) Setup(system *data.System, rng *rand.Rand) {
	f.Asteroids = f.Asteroids[:0]
	f.Minables = f.Minables[:0]
	if system == nil {
		return
	}
	for _, def := range system.Asteroids {
		for i := 0; i < def.Count; i++ {
			pos := Point{
				X: (rng.Float64()*2 - 1) * asteroidWrap,
				Y: (rng.Float64()*2 - 1) * asteroidWrap,
			}
			heading := Angle(rng.Float64() * 2 * math.Pi)
			vel := heading.Unit().Mul(def.Energy * (0.5 + rng.Float64()))
			if def.Hull > 0 {
				f.Minables = append(f.Minables, &Minable{
					Def:      &def,
					Position: pos,
					Velocity: vel,
					Hull:     def.Hull,
				})
			} else {
				f.Asteroids = append(f.Asteroids, &Asteroid{
					Position: pos,
					Velocity: vel,
					Size:     def.Radius,
				})
			}
		}
	}
}

// Step advances every rock and wraps the small asteroids back into the
// field region. Minables drift without wrapping and destroyed ones are
// compacted out.
func (f *AsteroidField) Step() {
	for _, a := range f.Asteroids {
		a.Position = a.Position.Add(a.Velocity)
		a.Position.X = wrap(a.Position.X)
		a.Position.Y = wrap(a.Position.Y)
	}
	out := f.Minables[:0]
	for _, m := range f.Minables {
		if m.destroyed {
			continue
		}
		m.Position = m.Position.Add(m.Velocity)
		out = append(out, m)
	}
	f.Minables = out
}

func wrap(v float64) float64 {
	for v < -asteroidWrap {
		v += 2 * asteroidWrap
	}
	for v > asteroidWrap {
		v -= 2 * asteroidWrap
	}
	return v
}

// Collide finds the first rock the projectile's travel segment crosses
// this step. It returns the hit fraction in [0,1), the struck body's
// velocity, and the minable hit (nil when a plain asteroid was struck).
// A fraction of 1 means no hit.
func (f *AsteroidField) Collide(p *Projectile) (float64, Point, *Minable) {
	closest := 1.
	var hitVel Point
	var hitMinable *Minable
	for _, a := range f.Asteroids {
		if t, ok := SegmentCircle(p.Position, p.Velocity, a.Position, a.Size); ok && t < closest {
			closest, hitVel, hitMinable = t, a.Velocity, nil
		}
	}
	for _, m := range f.Minables {
		if m.destroyed {
			continue
		}
		if t, ok := SegmentCircle(p.Position, p.Velocity, m.Position, m.Def.Radius); ok && t < closest {
			closest, hitVel, hitMinable = t, m.Velocity, m
		}
	}
	return closest, hitVel, hitMinable
}

// TakeDamage chips away at the minable. When it breaks apart, the payload
// scatters as flotsam and the pieces are staged so they appear next step.
func (m *Minable) TakeDamage(w *data.Weapon, ws *State, rng *rand.Rand) {
	if m.destroyed {
		return
	}
	m.Hull -= w.HullDamage
	if m.Hull > 0 {
		return
	}
	m.destroyed = true
	for i := 0; i < m.Def.Payload; i++ {
		heading := Angle(rng.Float64() * 2 * math.Pi)
		vel := m.Velocity.Add(heading.Unit().Mul(rng.Float64() * 2))
		ws.StageFlotsam(NewFlotsam(m.Position, vel, m.Def.Commodity, 1, ref.Ref(0)))
	}
	ws.AddVisualDirect("asteroid burst", m.Position, m.Velocity, 0)
}

// SegmentCircle intersects the segment starting at from with travel d
// against a circle, returning the earliest fraction in [0,1]. A start
// point already inside the circle hits at 0.
func SegmentCircle(from, d, center Point, radius float64) (float64, bool) {
	offset := from.Sub(center)
	if offset.LenSquared() <= radius*radius {
		return 0, true
	}
	a := d.LenSquared()
	if a == 0 {
		return 0, false
	}
	b := 2 * offset.Dot(d)
	c := offset.LenSquared() - radius*radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	t := (-b - math.Sqrt(disc)) / (2 * a)
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}
