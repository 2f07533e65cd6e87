package world

import "github.com/farwind/engine/internal/data"

// Visual is a self-expiring animation: explosions, sparks, jump flashes.
// It carries no gameplay state and nothing ever queries it.
type Visual struct {
	Effect   *data.Effect
	Position Point
	Velocity Point
	Frame    float64

	lifetime int
}

func NewVisual(effect *data.Effect, pos, vel Point) *Visual {
	lifetime := 60
	if effect != nil && effect.Lifetime > 0 {
		lifetime = effect.Lifetime
	}
	return &Visual{Effect: effect, Position: pos, Velocity: vel, lifetime: lifetime}
}

func (v *Visual) Move() {
	v.Position = v.Position.Add(v.Velocity)
	v.Frame++
	v.lifetime--
}

func (v *Visual) ShouldBeRemoved() bool { return v.lifetime <= 0 }
