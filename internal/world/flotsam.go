package world

import (
	"github.com/farwind/engine/internal/core/ref"
	"github.com/farwind/engine/internal/data"
)

// Flotsam is drifting cargo: a commodity or a loose outfit, dropped by a
// dying ship or chipped off a minable asteroid. The source ref only
// exists to stop a ship scooping up its own ejecta.
type Flotsam struct {
	Position  Point
	Velocity  Point
	Commodity string
	Outfit    *data.Weapon // loose outfit payload; nil for commodities
	Count     int
	Source    ref.Ref

	lifetime  int
	collected bool
}

// Flotsam drifts for about a minute before fading out.
const flotsamLifetime = 3600

func NewFlotsam(pos, vel Point, commodity string, count int, source ref.Ref) *Flotsam {
	return &Flotsam{
		Position:  pos,
		Velocity:  vel,
		Commodity: commodity,
		Count:     count,
		Source:    source,
		lifetime:  flotsamLifetime,
	}
}

// UnitSize is the cargo space one unit of this flotsam occupies, in tons.
func (f *Flotsam) UnitSize() int { return 1 }

func (f *Flotsam) Move() {
	f.Position = f.Position.Add(f.Velocity)
	f.Velocity = f.Velocity.Mul(.999)
	f.lifetime--
}

// Collect marks the flotsam as picked up and returns how many units the
// collector actually had room for.
func (f *Flotsam) Collect(freeSpace int) int {
	amount := f.Count
	if space := freeSpace / f.UnitSize(); amount > space {
		amount = space
	}
	f.collected = true
	return amount
}

func (f *Flotsam) ShouldBeRemoved() bool { return f.collected || f.lifetime <= 0 }
