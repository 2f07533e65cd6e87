package world

import "github.com/farwind/engine/internal/data"

// Government is a faction's runtime identity. Relations are fixed at
// construction; the simulation never rewrites the enemy matrix mid-step.
type Government struct {
	Name         string
	Player       bool
	Language     string
	Unfriendly   bool
	RaidFleet    string
	FriendlyHail string
	HostileHail  string

	enemies map[string]struct{}
}

// IsEnemy reports whether g and o are at war. Nil governments (ownerless
// projectiles, derelicts) are hostile to no one.
func (g *Government) IsEnemy(o *Government) bool {
	if g == nil || o == nil || g == o {
		return false
	}
	_, ok := g.enemies[o.Name]
	return ok
}

// IsPlayer reports whether this is the player's own faction.
func (g *Government) IsPlayer() bool {
	return g != nil && g.Player
}

// BuildGovernments instantiates runtime governments from catalog
// definitions. Enemy listings are applied in both directions so IsEnemy
// is symmetric no matter which side declared the war.
func BuildGovernments(defs map[string]*data.GovernmentDef) map[string]*Government {
	govs := make(map[string]*Government, len(defs))
	for name, def := range defs {
		govs[name] = &Government{
			Name:         name,
			Player:       def.Player,
			Language:     def.Language,
			Unfriendly:   def.Unfriendly,
			RaidFleet:    def.RaidFleet,
			FriendlyHail: def.FriendlyHail,
			HostileHail:  def.HostileHail,
			enemies:      make(map[string]struct{}),
		}
	}
	for name, def := range defs {
		g := govs[name]
		for _, enemy := range def.Enemies {
			o, ok := govs[enemy]
			if !ok {
				continue
			}
			g.enemies[o.Name] = struct{}{}
			o.enemies[g.Name] = struct{}{}
		}
	}
	return govs
}
