package world

import (
	"math"

	"github.com/farwind/engine/internal/core/ref"
	"github.com/farwind/engine/internal/data"
)

// Projectile is a shot in flight. A projectile with a nil government is a
// ship explosion expressed as an instant zero-range "weapon"; it detonates
// where it stands.
type Projectile struct {
	Weapon   *data.Weapon
	Gov      *Government
	Position Point
	Velocity Point
	Facing   Angle
	Target   ref.Ref
	Lifetime int

	dead bool
}

// Missile reports whether this projectile can be intercepted.
func (p *Projectile) Missile() bool { return p.Weapon.MissileStrength > 0 }

// Move advances the projectile one step. Homing projectiles steer toward
// their locked target; a dead or stale target turns them into dumb-fire.
func (p *Projectile) Move(ws *State) {
	p.Lifetime--
	if p.Lifetime <= 0 {
		if p.Weapon.DieEffect != "" {
			ws.StageVisual(NewVisual(ws.Effect(p.Weapon.DieEffect), p.Position, p.Velocity))
		}
		p.dead = true
		return
	}
	if p.Weapon.Homing > 0 && !p.Target.IsZero() {
		if target := ws.Resolve(p.Target); target != nil && target.IsTargetable() {
			p.steerToward(target)
		}
	}
	p.Position = p.Position.Add(p.Velocity)
}

// steerToward turns the velocity vector toward the target, bounded by the
// weapon's homing quality.
func (p *Projectile) steerToward(target *Ship) {
	want := HeadingOf(target.Position.Sub(p.Position))
	turn := float64(want - p.Facing)
	for turn > math.Pi {
		turn -= 2 * math.Pi
	}
	for turn < -math.Pi {
		turn += 2 * math.Pi
	}
	maxTurn := 0.01 * float64(p.Weapon.Homing)
	if turn > maxTurn {
		turn = maxTurn
	} else if turn < -maxTurn {
		turn = -maxTurn
	}
	p.Facing += Angle(turn)
	speed := p.Velocity.Len()
	p.Velocity = p.Facing.Unit().Mul(speed)
}

// Explode ends the projectile the given fraction along this step's travel
// and adds the impact visual directly to the live list: collision runs
// after the merge point, so a staged visual would arrive a frame late.
// hitVelocity is the struck body's velocity, so the explosion rides along
// with whatever was hit.
func (p *Projectile) Explode(ws *State, fraction float64, hitVelocity Point) {
	if p.Weapon.HitEffect != "" {
		pos := p.Position.Add(p.Velocity.Mul(fraction))
		ws.AddVisualDirect(p.Weapon.HitEffect, pos, hitVelocity, 0)
	}
	p.dead = true
}

// Kill removes the projectile before the next step (anti-missile hit).
func (p *Projectile) Kill() { p.dead = true }

func (p *Projectile) ShouldBeRemoved() bool { return p.dead }
