package world

// EventKind is a bitmask of things that happened to a ship this step.
// A single event may carry several bits (e.g. a scan that finished both
// sweeps at once), but damage application yields at most one event.
type EventKind int

const (
	EventJump EventKind = 1 << iota
	EventDestroy
	EventDisable
	EventBoard
	EventAssist
	EventScanOutfit
	EventScanCargo
	EventProvoke
)

func (k EventKind) Has(bit EventKind) bool { return k&bit != 0 }

func (k EventKind) String() string {
	switch {
	case k.Has(EventDestroy):
		return "destroy"
	case k.Has(EventDisable):
		return "disable"
	case k.Has(EventBoard):
		return "board"
	case k.Has(EventAssist):
		return "assist"
	case k.Has(EventJump):
		return "jump"
	case k.Has(EventScanOutfit):
		return "scan-outfit"
	case k.Has(EventScanCargo):
		return "scan-cargo"
	case k.Has(EventProvoke):
		return "provoke"
	}
	return "none"
}

// Event records a discrete occurrence during a step. The actor is either
// a ship or a bare government (projectiles outlive their firing ship, so
// damage events always carry the government; the ship may be gone).
// Events accumulate on the worker and are handed to the foreground once
// per frame.
type Event struct {
	ActorGov  *Government
	ActorShip *Ship // nil when only the government is known
	Target    *Ship
	Kind      EventKind
}
