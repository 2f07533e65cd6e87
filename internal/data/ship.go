package data

// ShipModel is the static definition of a hull type. Hardpoints name
// weapons; the references are resolved once when the catalog loads.
type ShipModel struct {
	Name         string   `yaml:"name"`
	Category     string   `yaml:"category"` // e.g. "Fighter", "Transport", "Warship"
	Sprite       string   `yaml:"sprite"`
	Radius       float64  `yaml:"radius"` // hit-circle radius
	MaxHull      float64  `yaml:"hull"`
	MaxShields   float64  `yaml:"shields"`
	MaxFuel      float64  `yaml:"fuel"`
	MaxHeat      float64  `yaml:"max_heat"`
	MaxVelocity  float64  `yaml:"max_velocity"`
	TurnRate     float64  `yaml:"turn_rate"` // radians per step
	Drag         float64  `yaml:"drag"`
	RequiredCrew int      `yaml:"crew"`
	Cost         int64    `yaml:"cost"`
	CargoSpace   int      `yaml:"cargo_space"`
	Bays         int      `yaml:"bays"` // carried-craft slots
	Hardpoints   []string `yaml:"hardpoints"`

	weapons []*Weapon // resolved by Catalog.resolve
}

// Weapons returns the resolved hardpoint weapons, one entry per hardpoint.
func (m *ShipModel) Weapons() []*Weapon { return m.weapons }

// DisabledHull is the hull value below which a ship of this model can no
// longer act. Matches the classic 15% threshold.
func (m *ShipModel) DisabledHull() float64 { return m.MaxHull * 0.15 }

type shipFile struct {
	Ships []ShipModel `yaml:"ships"`
}
