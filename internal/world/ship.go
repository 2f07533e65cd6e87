package world

import (
	"math/rand"

	"github.com/farwind/engine/internal/core/ref"
	"github.com/farwind/engine/internal/data"
)

// Command is the intent bitmask the movement/AI collaborator sets on a
// ship each step. The pipeline reads it; only the collaborator writes it.
type Command uint32

const (
	CmdFire Command = 1 << iota
	CmdLaunch
	CmdBoard
	CmdScan
	CmdJump
)

func (c Command) Has(bit Command) bool { return c&bit != 0 }

// Hardpoint is one mounted weapon with its reload countdown.
type Hardpoint struct {
	Weapon *data.Weapon
	Reload int
}

// Ship is a live vessel. All fields are owned by the calculation
// goroutine; the foreground only ever sees copies in the frame snapshot.
type Ship struct {
	Model       *data.ShipModel
	Gov         *Government
	Name        string
	Personality Personality

	// Ref is assigned by the store when the ship is staged or placed.
	// Everything that needs to remember this ship across steps holds the
	// Ref, not the pointer.
	Ref ref.Ref

	Position Point
	Velocity Point
	Facing   Angle
	Zoom     float64 // 0..1 take-off/landing scale; 1 = fully in flight
	Cloak    float64 // 0 = visible, 1 = fully cloaked

	Shields float64
	Hull    float64
	Fuel    float64
	Heat    float64
	Crew    int

	System       *data.System
	TargetSystem *data.System
	Target       ref.Ref
	Parent       ref.Ref

	Commands Command

	Hardpoints []Hardpoint
	Bays       []*Ship // carried craft not yet launched

	// Hail overrides the government hail when non-empty. Person ships set
	// this from their definition.
	Hail string

	// Hyperspace counts down while the ship is in transit between
	// systems; the movement collaborator drives it and swaps System when
	// the jump completes.
	Hyperspace     int
	UsingJumpDrive bool

	CargoFree int // tons of free cargo space

	cargoScan  int
	outfitScan int

	removed bool
}

// NewShip builds a fully fueled, fully repaired ship of the given model.
func NewShip(model *data.ShipModel, gov *Government) *Ship {
	s := &Ship{
		Model:     model,
		Gov:       gov,
		Name:      model.Name,
		Zoom:      1,
		Shields:   model.MaxShields,
		Hull:      model.MaxHull,
		Fuel:      model.MaxFuel,
		Crew:      model.RequiredCrew,
		CargoFree: model.CargoSpace,
	}
	for _, w := range model.Weapons() {
		s.Hardpoints = append(s.Hardpoints, Hardpoint{Weapon: w})
	}
	return s
}

func (s *Ship) Radius() float64 { return s.Model.Radius }
func (s *Ship) Cost() int64     { return s.Model.Cost }

// DisplayName is the ship's name, or its model name for unnamed hulls.
func (s *Ship) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Model.Name
}

func (s *Ship) IsDestroyed() bool { return s.Hull <= 0 }

// IsDisabled reports whether the ship is drifting: destroyed, hull below
// the disabled threshold, or nobody left aboard of a hull that needs a
// crew. Automated hulls never go crew-disabled.
func (s *Ship) IsDisabled() bool {
	if s.IsDestroyed() {
		return true
	}
	if s.Hull < s.Model.DisabledHull() {
		return true
	}
	return s.Crew <= 0 && s.Model.RequiredCrew > 0
}

// CannotAct reports whether the ship can take deliberate actions this
// step (fire, board, collect). Landing, jumping, cloaking, and being
// disabled all prevent action.
func (s *Ship) CannotAct() bool {
	return s.Zoom != 1 || s.IsHyperspacing() || s.IsDisabled() || s.Cloak >= 1
}

// IsTargetable reports whether other ships can lock onto this one.
func (s *Ship) IsTargetable() bool {
	return !s.IsDestroyed() && s.Zoom == 1 && s.Cloak < 1 && !s.IsHyperspacing()
}

func (s *Ship) IsHyperspacing() bool { return s.Hyperspace > 0 }

// IsEnteringHyperspace is true while the ship is winding up a jump but
// has not yet left its origin system.
func (s *Ship) IsEnteringHyperspace() bool {
	return s.IsHyperspacing() && s.TargetSystem != nil && s.System != s.TargetSystem
}

// MarkForRemoval flags the ship for pruning at the start of the next
// step, without treating it as combat-destroyed.
func (s *Ship) MarkForRemoval() { s.removed = true }

func (s *Ship) ShouldBeRemoved() bool { return s.removed || s.IsDestroyed() }

// TakeDamage applies one projectile's damage and returns at most one
// event bit describing the state transition it caused. Shields absorb
// shield damage first; hull damage leaks through in proportion to
// whatever the shields could not stop.
func (s *Ship) TakeDamage(w *data.Weapon, attacker *Government) EventKind {
	if s.IsDestroyed() {
		return 0
	}
	wasDisabled := s.IsDisabled()

	shieldDamage := w.ShieldDamage
	hullFraction := 1.0
	if shieldDamage > 0 {
		if s.Shields >= shieldDamage {
			s.Shields -= shieldDamage
			hullFraction = 0
		} else {
			hullFraction = 1 - s.Shields/shieldDamage
			s.Shields = 0
		}
	}
	s.Hull -= w.HullDamage * hullFraction
	s.Heat += w.HeatDamage

	if s.IsDestroyed() {
		return EventDestroy
	}
	if !wasDisabled && s.IsDisabled() {
		return EventDisable
	}
	if !s.Gov.IsEnemy(attacker) && attacker != nil && !attacker.IsPlayer() {
		// Being shot by a non-enemy is remembered even if relations
		// themselves are resolved outside this core.
		return EventProvoke
	}
	return 0
}

// Fire launches projectiles from every ready hardpoint and reports
// whether the ship has an anti-missile mount ready for this step's
// interception pass. Only called for ships in the active system.
func (s *Ship) Fire(ws *State, rng *rand.Rand) bool {
	antiMissileReady := false
	canAct := !s.CannotAct()
	for i := range s.Hardpoints {
		hp := &s.Hardpoints[i]
		if hp.Reload > 0 {
			hp.Reload--
		}
		if hp.Reload > 0 || !canAct {
			continue
		}
		if hp.Weapon.AntiMissile > 0 {
			antiMissileReady = true
			continue
		}
		if !s.Commands.Has(CmdFire) {
			continue
		}
		hp.Reload = hp.Weapon.Reload
		aim := s.Facing
		if hp.Weapon.Inaccuracy > 0 {
			aim += Angle((rng.Float64()*2 - 1) * hp.Weapon.Inaccuracy)
		}
		ws.StageProjectile(&Projectile{
			Weapon:   hp.Weapon,
			Gov:      s.Gov,
			Position: s.Position,
			Velocity: s.Velocity.Add(aim.Unit().Mul(hp.Weapon.Velocity)),
			Facing:   aim,
			Target:   s.Target,
			Lifetime: hp.Weapon.Lifetime,
		})
	}
	return antiMissileReady
}

// FireAntiMissile gives this ship one chance to shoot down a missile.
// The outcome is a strength contest between the turret and the missile;
// firing consumes the mount's reload either way.
func (s *Ship) FireAntiMissile(p *Projectile, ws *State, rng *rand.Rand) bool {
	if s.CannotAct() {
		return false
	}
	for i := range s.Hardpoints {
		hp := &s.Hardpoints[i]
		if hp.Weapon.AntiMissile <= 0 || hp.Reload > 0 {
			continue
		}
		if hp.Weapon.Range > 0 && s.Position.Distance(p.Position) > hp.Weapon.Range {
			continue
		}
		hp.Reload = hp.Weapon.Reload
		strength := hp.Weapon.AntiMissile
		if rng.Intn(strength+p.Weapon.MissileStrength) < strength {
			if hp.Weapon.HitEffect != "" {
				ws.AddVisualDirect(hp.Weapon.HitEffect, p.Position, s.Velocity, 0)
			}
			return true
		}
		return false
	}
	return false
}

// Launch deploys carried craft when commanded. Launched craft are staged:
// they are drawn this frame but do not move or collide until the next.
func (s *Ship) Launch(ws *State) {
	if !s.Commands.Has(CmdLaunch) || len(s.Bays) == 0 || s.CannotAct() {
		return
	}
	for _, craft := range s.Bays {
		craft.System = s.System
		craft.Position = s.Position
		craft.Velocity = s.Velocity
		craft.Facing = s.Facing
		craft.Zoom = 1
		craft.Parent = s.Ref
		ws.StageShip(craft)
	}
	s.Bays = s.Bays[:0]
}

// Board tries to board the current target and returns the victim on
// success. The caller decides whether the boarding is hostile (plunder)
// or friendly (assistance) by faction relations.
func (s *Ship) Board(ws *State) *Ship {
	if !s.Commands.Has(CmdBoard) || s.CannotAct() {
		return nil
	}
	victim := ws.Resolve(s.Target)
	if victim == nil || victim.System != s.System || !victim.IsDisabled() || victim.IsDestroyed() {
		return nil
	}
	const boardingRange = 50.
	if s.Position.Distance(victim.Position) > boardingRange {
		return nil
	}
	if s.Velocity.Sub(victim.Velocity).Len() > 1 {
		return nil
	}
	s.Commands &^= CmdBoard
	return victim
}

// Scan advances this ship's cargo and outfit scans of its target and
// returns the event bits for any sweep that completed this step. Runs
// after all movement so distances are final for the step.
func (s *Ship) Scan(ws *State) EventKind {
	if !s.Commands.Has(CmdScan) || s.CannotAct() {
		s.cargoScan, s.outfitScan = 0, 0
		return 0
	}
	target := ws.Resolve(s.Target)
	if target == nil || target.System != s.System || !target.IsTargetable() {
		s.cargoScan, s.outfitScan = 0, 0
		return 0
	}
	const scanRange = 500.
	if s.Position.Distance(target.Position) > scanRange {
		return 0
	}
	// A full sweep takes two seconds of uninterrupted proximity.
	const scanTime = 120
	var completed EventKind
	if s.cargoScan < scanTime {
		s.cargoScan++
		if s.cargoScan == scanTime {
			completed |= EventScanCargo
		}
	}
	if s.outfitScan < scanTime {
		s.outfitScan++
		if s.outfitScan == scanTime {
			completed |= EventScanOutfit
		}
	}
	return completed
}
