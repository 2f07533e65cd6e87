package data

// PersonDef is a unique named ship that rarely visits inhabited space.
type PersonDef struct {
	Name        string   `yaml:"name"`
	Government  string   `yaml:"government"`
	Ship        string   `yaml:"ship"` // ship model name
	Hail        string   `yaml:"hail"`
	Personality []string `yaml:"personality"`
	Frequency   int      `yaml:"frequency"`
	Systems     []string `yaml:"systems"` // empty = any linked system
}

// FrequencyIn reports this person's eligibility weight for the given
// system name. Zero means the person never appears there.
func (p *PersonDef) FrequencyIn(system string) int {
	if p.Frequency <= 0 {
		return 0
	}
	if len(p.Systems) == 0 {
		return p.Frequency
	}
	for _, s := range p.Systems {
		if s == system {
			return p.Frequency
		}
	}
	return 0
}

type personFile struct {
	Persons []PersonDef `yaml:"persons"`
}
