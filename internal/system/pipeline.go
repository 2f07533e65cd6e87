package system

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/farwind/engine/internal/collision"
	coresys "github.com/farwind/engine/internal/core/system"
	"github.com/farwind/engine/internal/frame"
	"github.com/farwind/engine/internal/world"
)

// Pipeline wires the per-step systems together and carries the state they
// share across phases within one step: the spatial indexes, the
// anti-missile roster, and the diplomacy cooldowns.
type Pipeline struct {
	deps   *Deps
	runner *coresys.Runner

	asteroids world.AsteroidField

	// antiMissile lists ships whose interception mounts are ready this
	// step, in store order. Filled during movement, drained in collision.
	antiMissile []*world.Ship

	visible *collision.Index
	cloaked *collision.Index

	grudge      map[*world.Government]grudgeEntry
	grudgeTime  int
	alarmTime   int
	hadHostiles bool

	spawnedPersons map[string]*world.Ship

	// out is the frame being assembled this step; the engine points it at
	// one of its two buffers before each Step.
	out  *frame.Frame
	step int64

	enterPending bool
}

func New(deps *Deps) *Pipeline {
	p := &Pipeline{
		deps:           deps,
		runner:         coresys.NewRunner(),
		visible:        collision.NewIndex(),
		cloaked:        collision.NewIndex(),
		grudge:         make(map[*world.Government]grudgeEntry),
		spawnedPersons: make(map[string]*world.Ship),
	}
	p.runner.Register(&moveSystem{p})
	p.runner.Register(&spawnSystem{p})
	p.runner.Register(&hailSystem{p})
	p.runner.Register(&mergeSystem{p})
	p.runner.Register(&collideSystem{p})
	p.runner.Register(&collectSystem{p})
	p.runner.Register(&scanSystem{p})
	p.runner.Register(&assembleSystem{p})
	return p
}

// SetOutput points the assembly phase at the frame to fill this step.
func (p *Pipeline) SetOutput(f *frame.Frame) { p.out = f }

// Step runs one full simulation step. A flagship jump detected last step
// is resolved first, so the new system is in place before anything moves.
func (p *Pipeline) Step(dt time.Duration) {
	start := time.Now()
	if p.enterPending {
		p.enterPending = false
		p.EnterSystem()
	}
	p.step++
	p.runner.Tick(dt)

	ws := p.deps.World
	p.deps.Metrics.SetEntityCounts(len(ws.Ships), len(ws.Projectiles), len(ws.Flotsam), len(ws.Visuals))
	p.deps.Metrics.ObserveStep(time.Since(start))
}

// Assemble rebuilds the output frame without advancing the simulation.
// Used while the game is paused: the foreground still needs frames.
func (p *Pipeline) Assemble() {
	(&assembleSystem{p}).Update(0)
}

// EnterSystem transitions the player into the flagship's current system:
// calendar, visitation, asteroid field, opening population, and a clean
// slate of transients and grudges.
func (p *Pipeline) EnterSystem() {
	d := p.deps
	flagship := d.Player.Flagship
	if flagship == nil || flagship.System == nil {
		return
	}
	sys := flagship.System
	d.Player.IncrementDate()
	d.Player.System = sys
	d.Player.Visit(sys)

	d.message(fmt.Sprintf("Entering the %s system on %s.", sys.Name, d.Player.Date), false)
	if gov := d.Govs[sys.Government]; gov != nil && gov.IsEnemy(d.Player.Gov) {
		d.message(fmt.Sprintf("Warning: %s forces control this system.", gov.Name), true)
	}

	p.asteroids.Setup(sys, d.Rand)

	// Fleets that would plausibly already be here when the player drops
	// out of hyperspace. Placed live: they exist before the step loop.
	const iterations = 5
	for n := 0; n < iterations; n++ {
		for i := range sys.Fleets {
			fp := &sys.Fleets[i]
			if fp.Period <= 0 || d.Rand.Intn(fp.Period) >= 60 {
				continue
			}
			p.placeFleet(fp.Fleet, false)
		}
	}

	for gov := range p.grudge {
		delete(p.grudge, gov)
	}
	p.grudgeTime = 0
	p.hadHostiles = false
	d.World.ClearTransients()

	d.Log.Info("entered system",
		zap.String("system", sys.Name),
		zap.String("date", d.Player.Date.String()),
		zap.Int("ships", len(d.World.Ships)))
}

// Place seeds the simulation before the first step: the player's roster
// in the start system plus its resident fleets.
func (p *Pipeline) Place() {
	d := p.deps
	sys := d.Player.System
	if sys == nil {
		return
	}
	for _, s := range d.Player.Ships {
		s.System = sys
		s.Position = world.Point{
			X: (d.Rand.Float64()*2 - 1) * 400,
			Y: (d.Rand.Float64()*2 - 1) * 400,
		}
		s.Facing = world.Angle(d.Rand.Float64() * 6.283185307179586)
		d.World.PlaceShip(s)
	}
	p.asteroids.Setup(sys, d.Rand)
	const iterations = 5
	for n := 0; n < iterations; n++ {
		for i := range sys.Fleets {
			fp := &sys.Fleets[i]
			if fp.Period <= 0 || d.Rand.Intn(fp.Period) >= 60 {
				continue
			}
			p.placeFleet(fp.Fleet, false)
		}
	}
}

// destroyShip emits the destruction event and debris for a ship whose
// hull just gave out. attacker may be nil for non-combat losses.
func (p *Pipeline) destroyShip(s *world.Ship, attacker *world.Government) {
	ws := p.deps.World
	ws.AddVisualDirect("ship explosion", s.Position, s.Velocity, 0)
	ws.AddEvent(world.Event{ActorGov: attacker, Target: s, Kind: world.EventDestroy})
	p.deps.Metrics.CountEvent("destroy")
	p.deps.play("explosion", s.Position)
	if s == p.deps.Player.Flagship {
		p.deps.message("Your ship has been destroyed.", true)
	}
}
