package system

import (
	"math"
	"math/rand"
	"time"

	coresys "github.com/farwind/engine/internal/core/system"
	"github.com/farwind/engine/internal/data"
	"github.com/farwind/engine/internal/world"
)

// spawnSystem runs the stochastic population processes: scheduled fleet
// arrivals, rare named persons, and notoriety-driven raids. Everything it
// creates is staged, so arrivals are visible this frame but inert until
// the next step.
type spawnSystem struct{ *Pipeline }

func (s *spawnSystem) Phase() coresys.Phase { return coresys.PhaseSpawn }

func (s *spawnSystem) Update(dt time.Duration) {
	d := s.deps
	sys := d.Player.System
	if sys == nil {
		return
	}

	for i := range sys.Fleets {
		fp := &sys.Fleets[i]
		if fp.Period <= 0 || d.Rand.Intn(fp.Period) != 0 {
			continue
		}
		fleet := d.Catalog.Fleet(fp.Fleet)
		if fleet == nil {
			continue
		}
		gov := d.Govs[fleet.Government]
		// Throttle: once a fight is lopsided, stop reinforcing the side
		// that is already winning.
		ally, enemy := s.strengths(gov)
		if enemy != 0 && ally > 2*enemy {
			continue
		}
		s.placeFleet(fp.Fleet, true)
		d.Metrics.CountSpawn("fleet")
	}

	s.spawnPerson(sys)
	s.spawnRaid(sys)
}

// strengths sums ship costs in the player's system, split by relation to
// the given government.
func (s *spawnSystem) strengths(gov *world.Government) (ally, enemy float64) {
	for _, sh := range s.deps.World.Ships {
		if sh.System != s.deps.Player.System {
			continue
		}
		if sh.Gov.IsEnemy(gov) {
			enemy += float64(sh.Cost())
		} else {
			ally += float64(sh.Cost())
		}
	}
	return ally, enemy
}

// spawnPerson occasionally lets one of the unique named ships wander in.
// The draw is weighted by per-person frequency over a fixed baseline, so
// adding persons to the data set does not raise the overall arrival rate.
func (s *spawnSystem) spawnPerson(sys *data.System) {
	d := s.deps
	names := d.Catalog.PersonNames()
	if len(names) == 0 || d.Cfg.Spawn.PersonPeriod <= 0 || d.Rand.Intn(d.Cfg.Spawn.PersonPeriod) != 0 {
		return
	}
	total := d.Cfg.Spawn.PersonBaseline
	for _, name := range names {
		if s.personPresent(name) {
			continue
		}
		total += d.Catalog.Person(name).FrequencyIn(sys.Name)
	}
	if total <= 0 {
		return
	}
	r := d.Rand.Intn(total)
	for _, name := range names {
		if s.personPresent(name) {
			continue
		}
		person := d.Catalog.Person(name)
		w := person.FrequencyIn(sys.Name)
		if r >= w {
			r -= w
			continue
		}
		model := d.Catalog.Ship(person.Ship)
		if model == nil {
			return
		}
		ship := world.NewShip(model, d.Govs[person.Government])
		ship.Name = person.Name
		ship.Hail = person.Hail
		ship.Personality = world.ParsePersonality(person.Personality)
		s.placeArriving(ship)
		s.spawnedPersons[name] = ship
		d.Metrics.CountSpawn("person")
		return
	}
}

func (s *spawnSystem) personPresent(name string) bool {
	ship := s.spawnedPersons[name]
	return ship != nil && !ship.ShouldBeRemoved()
}

// spawnRaid checks once per raid period whether the player's notoriety
// outweighs the deterrence of their fleet, and if so rolls a batch of
// independent raid-fleet draws.
func (s *spawnSystem) spawnRaid(sys *data.System) {
	d := s.deps
	if d.Cfg.Spawn.RaidPeriod <= 0 || d.Rand.Intn(d.Cfg.Spawn.RaidPeriod) != 0 {
		return
	}
	gov := d.Govs[sys.Government]
	if gov == nil || gov.RaidFleet == "" {
		return
	}
	notoriety, deterrence := d.Player.RaidFactors()
	attraction := 0.005 * (notoriety - deterrence - 2)
	if attraction <= 0 {
		return
	}
	raided := false
	for i := 0; i < d.Cfg.Spawn.RaidDraws; i++ {
		if d.Rand.Float64() >= attraction {
			continue
		}
		s.placeFleet(gov.RaidFleet, true)
		d.Metrics.CountSpawn("raid")
		raided = true
	}
	if raided {
		d.message("Your reputation has attracted the attention of raiders!", true)
	}
}

// placeFleet instantiates one weighted variant of the named fleet in the
// player's system. Arriving fleets are staged at the system edge heading
// inward; resident fleets are placed live at random positions.
func (p *Pipeline) placeFleet(name string, arriving bool) {
	d := p.deps
	fleet := d.Catalog.Fleet(name)
	if fleet == nil || len(fleet.Variants) == 0 {
		return
	}
	gov := d.Govs[fleet.Government]
	variant := pickVariant(fleet, d.Rand)

	var leader *world.Ship
	for _, modelName := range variant.Ships {
		model := d.Catalog.Ship(modelName)
		if model == nil {
			continue
		}
		ship := world.NewShip(model, gov)
		if arriving {
			p.placeArriving(ship)
		} else {
			ship.System = d.Player.System
			ship.Position = world.Point{
				X: (d.Rand.Float64()*2 - 1) * 2000,
				Y: (d.Rand.Float64()*2 - 1) * 2000,
			}
			ship.Facing = world.Angle(d.Rand.Float64() * 2 * math.Pi)
			ship.Velocity = ship.Facing.Unit().Mul(d.Rand.Float64() * model.MaxVelocity)
			d.World.PlaceShip(ship)
		}
		if leader == nil {
			leader = ship
		} else {
			ship.Parent = leader.Ref
		}
	}
}

// placeArriving stages the ship at the edge of the system flying toward
// the center, as if it just dropped out of hyperspace.
func (p *Pipeline) placeArriving(ship *world.Ship) {
	d := p.deps
	dir := world.Angle(d.Rand.Float64() * 2 * math.Pi)
	offset := world.Point{
		X: (d.Rand.Float64()*2 - 1) * 200,
		Y: (d.Rand.Float64()*2 - 1) * 200,
	}
	ship.System = d.Player.System
	ship.Position = dir.Unit().Mul(3000).Add(offset)
	ship.Facing = world.HeadingOf(world.Point{}.Sub(ship.Position))
	ship.Velocity = ship.Facing.Unit().Mul(ship.Model.MaxVelocity)
	d.World.StageShip(ship)
}

func pickVariant(fleet *data.FleetDef, rng *rand.Rand) *data.FleetVariant {
	r := rng.Intn(fleet.TotalWeight())
	for i := range fleet.Variants {
		v := &fleet.Variants[i]
		w := v.Weight
		if w <= 0 {
			w = 1
		}
		if r < w {
			return v
		}
		r -= w
	}
	return &fleet.Variants[len(fleet.Variants)-1]
}
