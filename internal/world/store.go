package world

import (
	"github.com/farwind/engine/internal/core/ref"
	"github.com/farwind/engine/internal/data"
)

// State is the entity store for one simulation. Everything created during
// a step lands in staging buffers and is spliced into the live lists at a
// single merge point, so new entities are drawn the frame they appear but
// never moved or collided until the next step.
//
// All access happens on the calculation goroutine.
type State struct {
	Ships       []*Ship
	Projectiles []*Projectile
	Flotsam     []*Flotsam
	Visuals     []*Visual

	stagedShips       []*Ship
	stagedProjectiles []*Projectile
	stagedFlotsam     []*Flotsam
	stagedVisuals     []*Visual

	pool  *ref.Pool
	byRef map[ref.Ref]*Ship

	catalog *data.Catalog

	events []Event
}

func NewState(catalog *data.Catalog) *State {
	return &State{
		pool:    ref.NewPool(),
		byRef:   make(map[ref.Ref]*Ship),
		catalog: catalog,
	}
}

// StageShip registers the ship and queues it for the next merge.
func (ws *State) StageShip(s *Ship) {
	ws.register(s)
	ws.stagedShips = append(ws.stagedShips, s)
}

// PlaceShip registers the ship directly into the live list, bypassing
// staging. Used for population that exists before the step loop runs,
// such as fleets seeded on system entry.
func (ws *State) PlaceShip(s *Ship) {
	ws.register(s)
	ws.Ships = append(ws.Ships, s)
}

func (ws *State) register(s *Ship) {
	if s.Ref.IsZero() {
		s.Ref = ws.pool.Acquire()
	}
	ws.byRef[s.Ref] = s
}

func (ws *State) StageProjectile(p *Projectile) {
	ws.stagedProjectiles = append(ws.stagedProjectiles, p)
}

func (ws *State) StageFlotsam(f *Flotsam) {
	ws.stagedFlotsam = append(ws.stagedFlotsam, f)
}

func (ws *State) StageVisual(v *Visual) {
	ws.stagedVisuals = append(ws.stagedVisuals, v)
}

// Merge splices every staging buffer into its live list. Runs exactly
// once per step, after movement and spawning.
func (ws *State) Merge() {
	ws.Ships = append(ws.Ships, ws.stagedShips...)
	ws.Projectiles = append(ws.Projectiles, ws.stagedProjectiles...)
	ws.Flotsam = append(ws.Flotsam, ws.stagedFlotsam...)
	ws.Visuals = append(ws.Visuals, ws.stagedVisuals...)
	ws.stagedShips = ws.stagedShips[:0]
	ws.stagedProjectiles = ws.stagedProjectiles[:0]
	ws.stagedFlotsam = ws.stagedFlotsam[:0]
	ws.stagedVisuals = ws.stagedVisuals[:0]
}

// Prune drops dead entities at the start of a step, before anything
// moves. Ships compact in order (escort ordering is visible state);
// projectiles, flotsam, and visuals compact by swap.
func (ws *State) Prune() {
	out := ws.Ships[:0]
	for _, s := range ws.Ships {
		if s.ShouldBeRemoved() {
			delete(ws.byRef, s.Ref)
			ws.pool.Release(s.Ref)
			continue
		}
		out = append(out, s)
	}
	for i := len(out); i < len(ws.Ships); i++ {
		ws.Ships[i] = nil
	}
	ws.Ships = out

	for i := 0; i < len(ws.Projectiles); {
		if ws.Projectiles[i].ShouldBeRemoved() {
			last := len(ws.Projectiles) - 1
			ws.Projectiles[i] = ws.Projectiles[last]
			ws.Projectiles[last] = nil
			ws.Projectiles = ws.Projectiles[:last]
			continue
		}
		i++
	}
	for i := 0; i < len(ws.Flotsam); {
		if ws.Flotsam[i].ShouldBeRemoved() {
			last := len(ws.Flotsam) - 1
			ws.Flotsam[i] = ws.Flotsam[last]
			ws.Flotsam[last] = nil
			ws.Flotsam = ws.Flotsam[:last]
			continue
		}
		i++
	}
	for i := 0; i < len(ws.Visuals); {
		if ws.Visuals[i].ShouldBeRemoved() {
			last := len(ws.Visuals) - 1
			ws.Visuals[i] = ws.Visuals[last]
			ws.Visuals[last] = nil
			ws.Visuals = ws.Visuals[:last]
			continue
		}
		i++
	}
}

// Resolve turns a weak ref back into its ship, or nil if the ship is gone
// or the slot has been reused.
func (ws *State) Resolve(r ref.Ref) *Ship {
	if r.IsZero() || !ws.pool.Alive(r) {
		return nil
	}
	return ws.byRef[r]
}

// ClearTransients empties projectiles, flotsam, and visuals, live and
// staged. Nothing from the old system carries across a jump.
func (ws *State) ClearTransients() {
	ws.Projectiles = ws.Projectiles[:0]
	ws.Flotsam = ws.Flotsam[:0]
	ws.Visuals = ws.Visuals[:0]
	ws.stagedProjectiles = ws.stagedProjectiles[:0]
	ws.stagedFlotsam = ws.stagedFlotsam[:0]
	ws.stagedVisuals = ws.stagedVisuals[:0]
}

// AddEvent records a gameplay event for this step. Events are drained by
// the foreground after the step completes.
func (ws *State) AddEvent(e Event) { ws.events = append(ws.events, e) }

// TakeEvents returns this step's events and resets the queue.
func (ws *State) TakeEvents() []Event {
	out := ws.events
	ws.events = nil
	return out
}

// Effect looks up an effect definition by name; nil for unknown names.
func (ws *State) Effect(name string) *data.Effect {
	if ws.catalog == nil {
		return nil
	}
	return ws.catalog.Effect(name)
}

// AddVisualDirect appends a visual straight to the live list. Only for
// effects created after the merge point (impacts, interceptions, death
// debris) which would otherwise be delayed a frame. Pass lifetime 0 to
// use the effect's own.
func (ws *State) AddVisualDirect(effectName string, pos, vel Point, lifetime int) {
	v := NewVisual(ws.Effect(effectName), pos, vel)
	if lifetime > 0 {
		v.lifetime = lifetime
	}
	ws.Visuals = append(ws.Visuals, v)
}
