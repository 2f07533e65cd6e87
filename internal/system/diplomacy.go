package system

import (
	"fmt"
	"time"

	coresys "github.com/farwind/engine/internal/core/system"
	"github.com/farwind/engine/internal/core/ref"
	"github.com/farwind/engine/internal/world"
)

// grudgeEntry remembers which ship asked the player for help against a
// government. The ref goes stale when the requester dies, which is
// exactly when a fresh request becomes allowed again.
type grudgeEntry struct {
	target ref.Ref
}

// hailSystem produces ambient radio chatter and ticks the diplomacy
// cooldowns. Grudge requests themselves are triggered from combat hits.
type hailSystem struct{ *Pipeline }

func (h *hailSystem) Phase() coresys.Phase { return coresys.PhaseHail }

func (h *hailSystem) Update(dt time.Duration) {
	if h.grudgeTime > 0 {
		h.grudgeTime--
	}
	d := h.deps
	if d.Cfg.Diplomacy.HailPeriod <= 0 || d.Rand.Intn(d.Cfg.Diplomacy.HailPeriod) != 0 {
		return
	}

	var candidates []*world.Ship
	for _, s := range d.World.Ships {
		if s.System == d.Player.System && !s.Gov.IsPlayer() {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return
	}
	s := candidates[d.Rand.Intn(len(candidates))]
	if s.IsDisabled() || s.Crew <= 0 || s.Cloak >= 1 || s.IsHyperspacing() {
		return
	}

	hail := s.Hail
	if hail == "" {
		if s.Gov.IsEnemy(d.Player.Gov) {
			hail = s.Gov.HostileHail
		} else {
			hail = s.Gov.FriendlyHail
		}
	}
	text := d.expand(hail)
	if text == "" {
		return
	}
	d.message(hailTag(s)+text, false)
}

// hailTag prefixes a hail with who is speaking: named ships get their
// government and name, anonymous ones their model.
func hailTag(s *world.Ship) string {
	if s.Name != "" && s.Name != s.Model.Name {
		return fmt.Sprintf("%s ship %q: ", s.Gov.Name, s.Name)
	}
	return fmt.Sprintf("%s (%s): ", s.Model.Name, s.Gov.Name)
}

// DoGrudge runs after a hit lands on target. If the player did the
// hitting, a ship holding a grudge against the target's government says
// thanks. Otherwise the victim may ask the player for help against the
// attacker, at most one live request per attacker government and never
// more often than the cooldown allows.
func (p *Pipeline) DoGrudge(target *world.Ship, attacker *world.Government) {
	if target == nil || target.Gov == nil || attacker == nil {
		return
	}
	d := p.deps

	if attacker.IsPlayer() {
		entry, ok := p.grudge[target.Gov]
		if !ok {
			return
		}
		requester := d.World.Resolve(entry.target)
		if requester == nil || requester.System != d.Player.System || requester.IsDisabled() {
			return
		}
		delete(p.grudge, target.Gov)
		d.message(hailTag(requester)+"Thank you for your assistance, Captain!", false)
		return
	}

	if p.grudgeTime > 0 {
		return
	}
	// A request is only outstanding while its ship is alive and able; a
	// destroyed requester frees the slot immediately.
	if entry, ok := p.grudge[attacker]; ok {
		if prev := d.World.Resolve(entry.target); prev != nil && prev.System == d.Player.System && !prev.IsDisabled() {
			return
		}
	}
	if target.Gov.IsPlayer() || !attacker.IsEnemy(d.Player.Gov) {
		return
	}
	if target.Gov.IsEnemy(d.Player.Gov) || target.Personality.Is(world.Mute) {
		return
	}
	if !d.Player.HasLanguage(target.Gov.Language) {
		return
	}

	// Only ask when the odds are genuinely bad: compare the combined
	// strength of everything gunning for the victim against the victim.
	var attackerStrength float64
	for _, s := range d.World.Ships {
		if s.System != d.Player.System || s.Gov != attacker {
			continue
		}
		if s.Target == target.Ref {
			attackerStrength += (s.Shields + s.Hull) * float64(s.Cost())
		}
	}
	targetStrength := (target.Shields + target.Hull) * float64(target.Cost())
	if targetStrength <= 0 || attackerStrength <= targetStrength {
		return
	}
	ratio := attackerStrength/targetStrength - 1
	if d.Rand.Float64()*10 > ratio {
		return
	}

	p.grudge[attacker] = grudgeEntry{target: target.Ref}
	p.grudgeTime = d.Cfg.Diplomacy.GrudgeCooldown
	d.message(fmt.Sprintf("%sPlease assist us! %s ships are attacking us!", hailTag(target), attacker.Name), true)
}
