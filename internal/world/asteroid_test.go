package world

import (
	"math/rand"
	"testing"

	"github.com/farwind/engine/internal/data"
)

func TestSegmentCircle(t *testing.T) {
	// Head-on: enters the r=1 circle centered at x=5 at x=4.
	f, ok := SegmentCircle(Point{}, Point{X: 10}, Point{X: 5}, 1)
	if !ok || !almost(f, 0.4) {
		t.Fatalf("head-on hit = (%v, %v), want (0.4, true)", f, ok)
	}

	// Clean miss.
	if _, ok := SegmentCircle(Point{}, Point{X: 10}, Point{X: 5, Y: 10}, 1); ok {
		t.Fatalf("missed circle reported a hit")
	}

	// Starting inside detonates immediately.
	f, ok = SegmentCircle(Point{}, Point{X: 10}, Point{X: 0.5}, 1)
	if !ok || f != 0 {
		t.Fatalf("inside start = (%v, %v), want (0, true)", f, ok)
	}

	// Circle behind the segment.
	if _, ok := SegmentCircle(Point{}, Point{X: 10}, Point{X: -5}, 1); ok {
		t.Fatalf("hit a circle behind the travel segment")
	}
}

func TestAsteroidFieldCollide(t *testing.T) {
	var field AsteroidField
	field.Asteroids = []*Asteroid{{Position: Point{X: 50}, Size: 5}}
	def := &data.AsteroidDef{Name: "ore", Radius: 5, Hull: 10, Commodity: "Iron", Payload: 2}
	field.Minables = []*Minable{{Def: def, Position: Point{X: 20}, Hull: def.Hull}}

	p := &Projectile{Weapon: &data.Weapon{}, Velocity: Point{X: 100}}
	f, _, minable := field.Collide(p)
	if minable == nil {
		t.Fatalf("closer minable lost to a farther asteroid")
	}
	if f >= 0.5 {
		t.Fatalf("hit fraction %v, want the nearer rock", f)
	}
}

func TestMinableBreaksIntoFlotsam(t *testing.T) {
	ws := NewState(testCatalog(t))
	def := &data.AsteroidDef{Name: "ore", Radius: 5, Hull: 10, Commodity: "Iron", Payload: 3}
	m := &Minable{Def: def, Hull: def.Hull}
	rng := rand.New(rand.NewSource(7))

	m.TakeDamage(&data.Weapon{HullDamage: 4}, ws, rng)
	if m.destroyed {
		t.Fatalf("minable broke before its hull ran out")
	}
	m.TakeDamage(&data.Weapon{HullDamage: 12}, ws, rng)
	if !m.destroyed {
		t.Fatalf("minable survived lethal damage")
	}
	ws.Merge()
	if len(ws.Flotsam) != 3 {
		t.Fatalf("payload dropped %d flotsam, want 3", len(ws.Flotsam))
	}
	if len(ws.Visuals) != 1 {
		t.Fatalf("burst visual missing")
	}
}

func TestAsteroidFieldSetupAndWrap(t *testing.T) {
	var field AsteroidField
	sys := &data.System{
		Asteroids: []data.AsteroidDef{
			{Name: "rock", Count: 10, Energy: 1, Radius: 8},
			{Name: "ore", Count: 2, Energy: 1, Radius: 20, Hull: 50, Commodity: "Iron", Payload: 1},
		},
	}
	field.Setup(sys, rand.New(rand.NewSource(3)))
	if len(field.Asteroids) != 10 || len(field.Minables) != 2 {
		t.Fatalf("setup built %d/%d rocks, want 10/2", len(field.Asteroids), len(field.Minables))
	}

	field.Asteroids[0].Position = Point{X: 4095, Y: 0}
	field.Asteroids[0].Velocity = Point{X: 10}
	field.Step()
	if x := field.Asteroids[0].Position.X; x > -4000 {
		t.Fatalf("asteroid did not wrap, x = %v", x)
	}
}
