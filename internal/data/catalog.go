package data

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Catalog is the full read-only world-data set. The calculation thread
// reads it every step; nothing mutates it after LoadCatalog returns.
type Catalog struct {
	governments map[string]*GovernmentDef
	ships       map[string]*ShipModel
	weapons     map[string]*Weapon
	effects     map[string]*Effect
	fleets      map[string]*FleetDef
	persons     map[string]*PersonDef
	systems     map[string]*System

	personNames []string // stable iteration order for weighted draws
}

// LoadCatalog reads every catalog file from dir. Missing files are treated
// as empty sections so a minimal data set still loads.
func LoadCatalog(dir string) (*Catalog, error) {
	c := newCatalog()

	var gf governmentFile
	if err := loadYAML(filepath.Join(dir, "governments.yaml"), &gf); err != nil {
		return nil, err
	}
	for i := range gf.Governments {
		g := &gf.Governments[i]
		c.governments[g.Name] = g
	}

	var wf weaponFile
	if err := loadYAML(filepath.Join(dir, "weapons.yaml"), &wf); err != nil {
		return nil, err
	}
	for i := range wf.Weapons {
		w := &wf.Weapons[i]
		c.weapons[w.Name] = w
	}
	for i := range wf.Effects {
		e := &wf.Effects[i]
		c.effects[e.Name] = e
	}

	var sf shipFile
	if err := loadYAML(filepath.Join(dir, "ships.yaml"), &sf); err != nil {
		return nil, err
	}
	for i := range sf.Ships {
		m := &sf.Ships[i]
		c.ships[m.Name] = m
	}

	var ff fleetFile
	if err := loadYAML(filepath.Join(dir, "fleets.yaml"), &ff); err != nil {
		return nil, err
	}
	for i := range ff.Fleets {
		f := &ff.Fleets[i]
		c.fleets[f.Name] = f
	}

	var pf personFile
	if err := loadYAML(filepath.Join(dir, "persons.yaml"), &pf); err != nil {
		return nil, err
	}
	for i := range pf.Persons {
		p := &pf.Persons[i]
		c.persons[p.Name] = p
		c.personNames = append(c.personNames, p.Name)
	}

	var yf systemFile
	if err := loadYAML(filepath.Join(dir, "systems.yaml"), &yf); err != nil {
		return nil, err
	}
	for i := range yf.Systems {
		s := &yf.Systems[i]
		c.systems[s.Name] = s
	}

	if err := c.resolve(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewCatalog builds a catalog from already-constructed definitions.
// Used by tests and by embedders that do not read YAML files.
func NewCatalog(govs []*GovernmentDef, ships []*ShipModel, weapons []*Weapon,
	effects []*Effect, fleets []*FleetDef, persons []*PersonDef, systems []*System) (*Catalog, error) {
	c := newCatalog()
	for _, g := range govs {
		c.governments[g.Name] = g
	}
	for _, m := range ships {
		c.ships[m.Name] = m
	}
	for _, w := range weapons {
		c.weapons[w.Name] = w
	}
	for _, e := range effects {
		c.effects[e.Name] = e
	}
	for _, f := range fleets {
		c.fleets[f.Name] = f
	}
	for _, p := range persons {
		c.persons[p.Name] = p
		c.personNames = append(c.personNames, p.Name)
	}
	for _, s := range systems {
		c.systems[s.Name] = s
	}
	if err := c.resolve(); err != nil {
		return nil, err
	}
	return c, nil
}

func newCatalog() *Catalog {
	return &Catalog{
		governments: make(map[string]*GovernmentDef),
		ships:       make(map[string]*ShipModel),
		weapons:     make(map[string]*Weapon),
		effects:     make(map[string]*Effect),
		fleets:      make(map[string]*FleetDef),
		persons:     make(map[string]*PersonDef),
		systems:     make(map[string]*System),
	}
}

// resolve links name references between catalog sections. Dangling names
// are hard errors: a half-loaded catalog would fail in the middle of a
// step instead.
func (c *Catalog) resolve() error {
	for _, m := range c.ships {
		m.weapons = m.weapons[:0]
		for _, name := range m.Hardpoints {
			w, ok := c.weapons[name]
			if !ok {
				return fmt.Errorf("ship %q: unknown weapon %q", m.Name, name)
			}
			m.weapons = append(m.weapons, w)
		}
	}
	for _, s := range c.systems {
		s.links = s.links[:0]
		for _, name := range s.LinkNames {
			link, ok := c.systems[name]
			if !ok {
				return fmt.Errorf("system %q: unknown link %q", s.Name, name)
			}
			s.links = append(s.links, link)
		}
	}
	for _, f := range c.fleets {
		if f.Government != "" {
			if _, ok := c.governments[f.Government]; !ok {
				return fmt.Errorf("fleet %q: unknown government %q", f.Name, f.Government)
			}
		}
		for _, v := range f.Variants {
			for _, name := range v.Ships {
				if _, ok := c.ships[name]; !ok {
					return fmt.Errorf("fleet %q: unknown ship %q", f.Name, name)
				}
			}
		}
	}
	for _, p := range c.persons {
		if _, ok := c.ships[p.Ship]; !ok {
			return fmt.Errorf("person %q: unknown ship %q", p.Name, p.Ship)
		}
	}
	return nil
}

func loadYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (c *Catalog) Government(name string) *GovernmentDef { return c.governments[name] }
func (c *Catalog) Ship(name string) *ShipModel           { return c.ships[name] }
func (c *Catalog) Weapon(name string) *Weapon            { return c.weapons[name] }
func (c *Catalog) Effect(name string) *Effect            { return c.effects[name] }
func (c *Catalog) Fleet(name string) *FleetDef           { return c.fleets[name] }
func (c *Catalog) Person(name string) *PersonDef         { return c.persons[name] }
func (c *Catalog) System(name string) *System            { return c.systems[name] }

func (c *Catalog) Governments() map[string]*GovernmentDef { return c.governments }

// PersonNames returns person names in load order. Weighted person draws
// iterate this so the selection is deterministic for a given seed.
func (c *Catalog) PersonNames() []string { return c.personNames }

func (c *Catalog) Counts() (governments, ships, weapons, fleets, persons, systems int) {
	return len(c.governments), len(c.ships), len(c.weapons), len(c.fleets), len(c.persons), len(c.systems)
}
