package system

import (
	"time"

	coresys "github.com/farwind/engine/internal/core/system"
	"github.com/farwind/engine/internal/world"
)

// moveSystem prunes the dead, advances every entity, and executes ship
// actions (launch, board, fire). It also rebuilds the collision indexes
// from the pre-merge ship list, so ships arriving this step are drawn but
// cannot be hit until the next.
type moveSystem struct{ *Pipeline }

func (m *moveSystem) Phase() coresys.Phase { return coresys.PhaseMove }

func (m *moveSystem) Update(dt time.Duration) {
	d := m.deps
	ws := d.World
	player := d.Player

	ws.Prune()

	if d.Pilot != nil {
		d.Pilot.Step(ws, player)
	}

	m.antiMissile = m.antiMissile[:0]
	flagship := player.Flagship
	for _, s := range ws.Ships {
		wasEntering := s.IsEnteringHyperspace()
		wasHere := s.System == player.System
		if d.Pilot != nil {
			d.Pilot.Move(s, ws)
		}
		if s.IsDestroyed() {
			m.destroyShip(s, nil)
			continue
		}
		if !wasEntering && s.IsEnteringHyperspace() && s.System == player.System {
			if s.UsingJumpDrive {
				d.play("jump out", s.Position)
			} else {
				d.play("hyperdrive out", s.Position)
			}
		}
		if !wasHere && s.System == player.System {
			if s.UsingJumpDrive {
				d.play("jump in", s.Position)
			} else {
				d.play("hyperdrive in", s.Position)
			}
		}

		if s.System != player.System {
			continue
		}
		if victim := s.Board(ws); victim != nil {
			kind := world.EventAssist
			if s.Gov.IsEnemy(victim.Gov) {
				kind = world.EventBoard
			}
			ws.AddEvent(world.Event{ActorGov: s.Gov, ActorShip: s, Target: victim, Kind: kind})
		}
		s.Launch(ws)
		if s.Fire(ws, d.Rand) {
			m.antiMissile = append(m.antiMissile, s)
		}
	}

	// A flagship whose jump completed is in its destination system now;
	// the transition itself runs at the top of the next step so the full
	// pipeline sees a consistent system for the rest of this one.
	if flagship != nil && flagship.System != player.System {
		ws.AddEvent(world.Event{ActorGov: flagship.Gov, ActorShip: flagship, Kind: world.EventJump})
		d.Metrics.CountEvent("jump")
		m.enterPending = true
	}

	m.asteroids.Step()
	for _, f := range ws.Flotsam {
		f.Move()
	}
	for _, p := range ws.Projectiles {
		p.Move(ws)
	}
	for _, v := range ws.Visuals {
		v.Move()
	}

	m.visible.Clear()
	m.cloaked.Clear()
	for _, s := range ws.Ships {
		if s.System != player.System || s.Zoom != 1 || s.IsHyperspacing() {
			continue
		}
		if s.Cloak < 1 {
			m.visible.Add(s)
		} else {
			m.cloaked.Add(s)
		}
	}
}
