package system

import (
	"fmt"
	"time"

	coresys "github.com/farwind/engine/internal/core/system"
	"github.com/farwind/engine/internal/world"
)

// collectSystem lets ships scoop flotsam they overlap: the first ship in
// store order whose hit circle reaches the flotsam wins it.
type collectSystem struct{ *Pipeline }

func (c *collectSystem) Phase() coresys.Phase { return coresys.PhaseCollect }

func (c *collectSystem) Update(dt time.Duration) {
	d := c.deps
	flagship := d.Player.Flagship
	for _, f := range d.World.Flotsam {
		if f.ShouldBeRemoved() {
			continue
		}
		for _, s := range d.World.Ships {
			if s.System != d.Player.System || s.CannotAct() || s.CargoFree <= 0 {
				continue
			}
			if s.Ref == f.Source {
				continue
			}
			const pickupRange = 5.
			if s.Position.Distance(f.Position) > pickupRange+s.Radius() {
				continue
			}
			amount := f.Collect(s.CargoFree)
			s.CargoFree -= amount * f.UnitSize()
			if s == flagship && amount > 0 {
				c.reportPickup(f, amount)
			}
			break
		}
	}
}

func (c *collectSystem) reportPickup(f *world.Flotsam, amount int) {
	d := c.deps
	name := f.Commodity
	if f.Outfit != nil {
		name = f.Outfit.Name
	}
	first := d.Player.Harvest(d.Player.System, name)
	d.message(fmt.Sprintf("You picked up %d tons of %s.", amount*f.UnitSize(), name), first)
}
