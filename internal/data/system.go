package data

// StellarDef is a planet, star, or station in a system. Only position,
// size, and habitability matter to the simulation; sprites are the render
// layer's business.
type StellarDef struct {
	Name      string  `yaml:"name"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Radius    float64 `yaml:"radius"`
	Inhabited bool    `yaml:"inhabited"`
	Sprite    string  `yaml:"sprite"`
}

// AsteroidDef describes one asteroid population in a system. A def with a
// Commodity is minable: its rocks have hull and break into flotsam.
type AsteroidDef struct {
	Name      string  `yaml:"name"`
	Count     int     `yaml:"count"`
	Energy    float64 `yaml:"energy"` // drift speed scale
	Radius    float64 `yaml:"radius"`
	Hull      float64 `yaml:"hull"`
	Commodity string  `yaml:"commodity"`
	Payload   int     `yaml:"payload"` // flotsam units dropped on break
}

// FleetProbability ties a fleet definition to a system with an arrival
// period, in steps.
type FleetProbability struct {
	Fleet  string `yaml:"fleet"`
	Period int    `yaml:"period"`
}

// System is a star system definition. Links are resolved to neighbor
// pointers when the catalog loads.
type System struct {
	Name       string             `yaml:"name"`
	X          float64            `yaml:"x"`
	Y          float64            `yaml:"y"`
	Government string             `yaml:"government"`
	LinkNames  []string           `yaml:"links"`
	Objects    []StellarDef       `yaml:"objects"`
	Asteroids  []AsteroidDef      `yaml:"asteroids"`
	Fleets     []FleetProbability `yaml:"fleets"`

	links []*System // resolved by Catalog.resolve
}

// Links returns the resolved neighboring systems.
func (s *System) Links() []*System { return s.links }

// Inhabited reports whether any stellar object in the system is inhabited.
func (s *System) Inhabited() bool {
	for i := range s.Objects {
		if s.Objects[i].Inhabited {
			return true
		}
	}
	return false
}

type systemFile struct {
	Systems []System `yaml:"systems"`
}
