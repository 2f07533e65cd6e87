package world

import (
	"fmt"

	"github.com/farwind/engine/internal/data"
)

// Date is a day counter. The core only needs relative time; the epoch is
// day zero of a playthrough.
type Date int

func (d Date) String() string { return fmt.Sprintf("day %d", int(d)) }

// Player is the simulation's view of the player: flagship, fleet roster,
// date, and the scalar reputation factors the spawn scheduler reads. It
// does not hold accounts, missions, or UI state.
type Player struct {
	Gov      *Government
	Flagship *Ship
	System   *data.System
	Ships    []*Ship // roster in escort order; Flagship is Ships[0] when present

	Date       Date
	TravelPlan []*data.System

	// Conditions is the open-ended flag set missions and events write.
	// The core only reads language conditions from it.
	Conditions map[string]bool

	// Harvested remembers which (system, commodity) pairs the player has
	// scooped at least once, to de-noise pickup messages.
	Harvested map[string]bool

	visited map[string]bool

	Notoriety  float64 // raid attraction from combat ratings
	Deterrence float64 // raid suppression from fleet strength
}

func NewPlayer(gov *Government) *Player {
	return &Player{
		Gov:        gov,
		Conditions: make(map[string]bool),
		Harvested:  make(map[string]bool),
		visited:    make(map[string]bool),
	}
}

// IncrementDate advances the calendar one day. Called on every jump.
func (p *Player) IncrementDate() { p.Date++ }

// Visit marks the system as seen.
func (p *Player) Visit(s *data.System) {
	if s != nil {
		p.visited[s.Name] = true
	}
}

func (p *Player) HasVisited(s *data.System) bool {
	return s != nil && p.visited[s.Name]
}

// HasLanguage reports whether the player can speak the given language.
// An empty language is universal.
func (p *Player) HasLanguage(lang string) bool {
	if lang == "" {
		return true
	}
	return p.Conditions["language: "+lang]
}

// Harvest records a first-time commodity pickup in the given system and
// reports whether it was new.
func (p *Player) Harvest(system *data.System, commodity string) bool {
	if system == nil {
		return false
	}
	key := system.Name + "\x00" + commodity
	if p.Harvested[key] {
		return false
	}
	p.Harvested[key] = true
	return true
}

// RaidFactors returns the attraction and deterrence inputs the raid
// scheduler uses.
func (p *Player) RaidFactors() (notoriety, deterrence float64) {
	return p.Notoriety, p.Deterrence
}

// NextTravelSystem pops the head of the travel plan; nil when empty.
func (p *Player) NextTravelSystem() *data.System {
	if len(p.TravelPlan) == 0 {
		return nil
	}
	next := p.TravelPlan[0]
	p.TravelPlan = p.TravelPlan[1:]
	return next
}

// InFlightShips returns the roster ships currently flying in the
// player's system.
func (p *Player) InFlightShips() []*Ship {
	var out []*Ship
	for _, s := range p.Ships {
		if s.System == p.System && !s.ShouldBeRemoved() {
			out = append(out, s)
		}
	}
	return out
}
