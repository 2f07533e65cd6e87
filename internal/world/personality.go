package world

// Personality is a ship's behavioral flag set. The flags influence AI
// elsewhere; inside this core they only gate diplomacy text and launch
// behavior.
type Personality uint32

const (
	Heroic Personality = 1 << iota
	Mute
	Escort
	Uninterested
	Staying
	Waiting
	Target // mission target: blinks on radar
	Plunders
)

func (p Personality) Is(flag Personality) bool { return p&flag != 0 }

var personalityNames = map[string]Personality{
	"heroic":       Heroic,
	"mute":         Mute,
	"escort":       Escort,
	"uninterested": Uninterested,
	"staying":      Staying,
	"waiting":      Waiting,
	"target":       Target,
	"plunders":     Plunders,
}

// ParsePersonality folds a list of flag names into a Personality.
// Unknown names are ignored; data typos should not take the engine down.
func ParsePersonality(names []string) Personality {
	var p Personality
	for _, n := range names {
		p |= personalityNames[n]
	}
	return p
}
