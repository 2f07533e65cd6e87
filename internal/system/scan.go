package system

import (
	"time"

	coresys "github.com/farwind/engine/internal/core/system"
	"github.com/farwind/engine/internal/world"
)

// scanSystem advances in-progress cargo and outfit scans. It runs after
// all movement so scan range is judged on final positions.
type scanSystem struct{ *Pipeline }

func (s *scanSystem) Phase() coresys.Phase { return coresys.PhaseScan }

func (s *scanSystem) Update(dt time.Duration) {
	d := s.deps
	for _, sh := range d.World.Ships {
		if sh.System != d.Player.System {
			continue
		}
		kind := sh.Scan(d.World)
		if kind == 0 {
			continue
		}
		d.World.AddEvent(world.Event{
			ActorGov:  sh.Gov,
			ActorShip: sh,
			Target:    d.World.Resolve(sh.Target),
			Kind:      kind,
		})
		d.Metrics.CountEvent(kind.String())
	}
}
