package data

// GovernmentDef is the static definition of a faction loaded from YAML.
// Enemy relations are made symmetric when the catalog is resolved.
type GovernmentDef struct {
	Name         string   `yaml:"name"`
	Player       bool     `yaml:"player"`
	Language     string   `yaml:"language"`
	Unfriendly   bool     `yaml:"unfriendly"` // cold to the player without being at war
	Enemies      []string `yaml:"enemies"`
	RaidFleet    string   `yaml:"raid_fleet"`
	FriendlyHail string   `yaml:"friendly_hail"` // literal text or a Lua phrase name
	HostileHail  string   `yaml:"hostile_hail"`
}

type governmentFile struct {
	Governments []GovernmentDef `yaml:"governments"`
}
