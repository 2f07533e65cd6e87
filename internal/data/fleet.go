package data

// FleetVariant is one possible composition of a fleet, chosen by weight.
type FleetVariant struct {
	Weight int      `yaml:"weight"`
	Ships  []string `yaml:"ships"` // ship model names
}

// FleetDef is the static definition of a fleet that can arrive in a system.
type FleetDef struct {
	Name       string         `yaml:"name"`
	Government string         `yaml:"government"`
	Variants   []FleetVariant `yaml:"variants"`
}

// TotalWeight sums the variant weights; zero-weight variants count as one.
func (f *FleetDef) TotalWeight() int {
	total := 0
	for _, v := range f.Variants {
		w := v.Weight
		if w <= 0 {
			w = 1
		}
		total += w
	}
	return total
}

type fleetFile struct {
	Fleets []FleetDef `yaml:"fleets"`
}
