package system

import (
	"time"

	coresys "github.com/farwind/engine/internal/core/system"
	"github.com/farwind/engine/internal/world"
)

// collideSystem resolves every projectile against the ship indexes built
// during the move phase, then gives anti-missile mounts one chance each
// at the missiles that survived.
type collideSystem struct{ *Pipeline }

func (c *collideSystem) Phase() coresys.Phase { return coresys.PhaseCollide }

func (c *collideSystem) Update(dt time.Duration) {
	ws := c.deps.World
	for _, p := range ws.Projectiles {
		if !p.ShouldBeRemoved() {
			c.resolve(p)
		}
	}

	for _, p := range ws.Projectiles {
		if p.ShouldBeRemoved() || !p.Missile() {
			continue
		}
		target := ws.Resolve(p.Target)
		for _, s := range c.antiMissile {
			// Only ships the missile concerns try to shoot it down.
			if s != target && !s.Gov.IsEnemy(p.Gov) {
				continue
			}
			if s.FireAntiMissile(p, ws, c.deps.Rand) {
				p.Kill()
				break
			}
		}
	}
}

// resolve finds what, if anything, the projectile hits along this step's
// travel and applies the damage.
func (c *collideSystem) resolve(p *world.Projectile) {
	d := c.deps
	ws := d.World

	closest := 1.
	var hitShip *world.Ship
	var hitVel world.Point
	var hitMinable *world.Minable

	switch {
	case p.Gov == nil:
		// Ownerless projectiles are ship explosions: they detonate in
		// place, no travel.
		closest = 0
	case p.Weapon.Phasing && !p.Target.IsZero():
		// Phasing projectiles pass through everything but their target.
		if t := ws.Resolve(p.Target); t != nil && t.System == d.Player.System && t.IsTargetable() {
			if f, ok := world.SegmentCircle(p.Position, p.Velocity, t.Position, t.Radius()); ok {
				closest, hitShip, hitVel = f, t, t.Velocity
			}
		}
	default:
		if tr := p.Weapon.TriggerRadius; tr > 0 {
			target := ws.Resolve(p.Target)
			for _, s := range c.visible.Circle(p.Position, tr) {
				if s == target || s.Gov.IsEnemy(p.Gov) {
					closest, hitVel = 0, s.Velocity
					break
				}
			}
		}
		if closest > 0 {
			own := p.Gov
			if s, f := c.visible.Segment(p.Position, p.Velocity, func(sh *world.Ship) bool {
				return sh.Gov != own
			}); s != nil && f < closest {
				closest, hitShip, hitVel = f, s, s.Velocity
			}
			if f, vel, minable := c.asteroids.Collide(p); f < closest {
				closest, hitShip, hitVel, hitMinable = f, nil, vel, minable
			}
		}
	}

	if closest >= 1 {
		return
	}

	if p.Weapon.BlastRadius > 0 {
		center := p.Position.Add(p.Velocity.Mul(closest))
		target := ws.Resolve(p.Target)
		c.blast(p, center, target, c.visible.Circle(center, p.Weapon.BlastRadius))
		c.blast(p, center, target, c.cloaked.Circle(center, p.Weapon.BlastRadius))
	} else if hitShip != nil {
		c.damage(p, hitShip)
	}
	if hitShip != nil {
		c.DoGrudge(hitShip, p.Gov)
	}
	if hitMinable != nil {
		hitMinable.TakeDamage(p.Weapon, ws, d.Rand)
	}
	p.Explode(ws, closest, hitVel)
}

// blast applies area damage around the detonation point. Safe weapons
// spare everything except the intended target and the owner's enemies.
func (c *collideSystem) blast(p *world.Projectile, center world.Point, target *world.Ship, ships []*world.Ship) {
	for _, s := range ships {
		if p.Weapon.Safe && s != target && !s.Gov.IsEnemy(p.Gov) {
			continue
		}
		c.damage(p, s)
	}
}

func (c *collideSystem) damage(p *world.Projectile, s *world.Ship) {
	kind := s.TakeDamage(p.Weapon, p.Gov)
	if kind == 0 {
		return
	}
	if kind.Has(world.EventDestroy) {
		c.destroyShip(s, p.Gov)
		return
	}
	c.deps.World.AddEvent(world.Event{ActorGov: p.Gov, Target: s, Kind: kind})
	c.deps.Metrics.CountEvent(kind.String())
}
