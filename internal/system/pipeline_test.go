package system

import (
	"math/rand"
	"testing"

	"go.uber.org/zap"

	"github.com/farwind/engine/internal/config"
	"github.com/farwind/engine/internal/data"
	"github.com/farwind/engine/internal/frame"
	"github.com/farwind/engine/internal/world"
)

type sink struct {
	msgs []string
}

func (s *sink) Message(text string, important bool) {
	s.msgs = append(s.msgs, text)
}

type audioLog struct {
	names []string
}

func (a *audioLog) Play(name string, pos world.Point) {
	a.names = append(a.names, name)
}

// coastPilot completes hyperspace countdowns and otherwise leaves ships
// where they are.
type coastPilot struct{}

func (coastPilot) Step(ws *world.State, player *world.Player) {}

func (coastPilot) Move(s *world.Ship, ws *world.State) {
	if s.Hyperspace > 0 {
		s.Hyperspace--
		if s.Hyperspace == 0 && s.TargetSystem != nil {
			s.System = s.TargetSystem
			s.TargetSystem = nil
		}
	}
}

// newTestPipeline builds a pipeline over a small fixed universe: the
// player's Concord, a Patrol at war with Pirates, and neutral Traders.
func newTestPipeline(t *testing.T) (*Pipeline, *Deps, *sink) {
	t.Helper()
	catalog, err := data.NewCatalog(
		[]*data.GovernmentDef{
			{Name: "Concord", Player: true},
			{Name: "Patrol", Enemies: []string{"Pirates"}},
			{Name: "Pirates", RaidFleet: "Raid", Enemies: []string{"Concord"}},
			{Name: "Traders"},
			{Name: "Scrappers", Unfriendly: true},
		},
		[]*data.ShipModel{
			{Name: "Cutter", Radius: 20, MaxHull: 100, MaxShields: 0, Cost: 1000},
			{Name: "Boat", Radius: 20, MaxHull: 100, MaxShields: 100, MaxFuel: 100, CargoSpace: 40, Cost: 500},
		},
		nil, nil,
		[]*data.FleetDef{
			{Name: "Raid", Government: "Pirates", Variants: []data.FleetVariant{
				{Weight: 1, Ships: []string{"Cutter", "Cutter"}},
			}},
		},
		nil,
		[]*data.System{
			{Name: "Test"},
			{Name: "Next"},
		},
	)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	govs := world.BuildGovernments(catalog.Governments())
	player := world.NewPlayer(govs["Concord"])
	player.System = catalog.System("Test")

	msgs := &sink{}
	deps := &Deps{
		World:    world.NewState(catalog),
		Player:   player,
		Catalog:  catalog,
		Govs:     govs,
		Messages: msgs,
		Rand:     rand.New(rand.NewSource(1)),
		Log:      zap.NewNop(),
		Cfg:      config.Default(),
	}
	return New(deps), deps, msgs
}

func placeShip(d *Deps, model string, gov *world.Government, pos world.Point) *world.Ship {
	s := world.NewShip(d.Catalog.Ship(model), gov)
	s.System = d.Player.System
	s.Position = pos
	d.World.PlaceShip(s)
	return s
}

func TestEnterSystemResetsTransientState(t *testing.T) {
	pipe, d, msgs := newTestPipeline(t)

	flagship := world.NewShip(d.Catalog.Ship("Boat"), d.Player.Gov)
	flagship.System = d.Catalog.System("Next") // jump already completed
	d.Player.Flagship = flagship
	d.Player.Ships = append(d.Player.Ships, flagship)
	d.World.PlaceShip(flagship)

	d.World.StageProjectile(&world.Projectile{Weapon: &data.Weapon{}, Lifetime: 100})
	d.World.Merge()
	pipe.grudge[d.Govs["Pirates"]] = grudgeEntry{}
	pipe.grudgeTime = 50

	pipe.EnterSystem()

	if d.Player.System != d.Catalog.System("Next") {
		t.Fatalf("player system not updated")
	}
	if d.Player.Date != 1 {
		t.Fatalf("date = %v, want day 1", d.Player.Date)
	}
	if !d.Player.HasVisited(d.Catalog.System("Next")) {
		t.Fatalf("destination not marked visited")
	}
	if len(d.World.Projectiles) != 0 {
		t.Fatalf("projectiles survived the jump")
	}
	if len(pipe.grudge) != 0 || pipe.grudgeTime != 0 {
		t.Fatalf("grudge state survived the jump")
	}
	if len(msgs.msgs) == 0 {
		t.Fatalf("no arrival message")
	}
}

func TestProjectileHitEmitsSingleDestroyEvent(t *testing.T) {
	pipe, d, _ := newTestPipeline(t)
	target := placeShip(d, "Cutter", d.Govs["Pirates"], world.Point{X: 300})

	d.World.StageProjectile(&world.Projectile{
		Weapon:   &data.Weapon{Name: "gun", HullDamage: 1000},
		Gov:      d.Govs["Patrol"],
		Velocity: world.Point{X: 400},
		Lifetime: 10,
	})
	pipe.Step(0)

	if !target.IsDestroyed() {
		t.Fatalf("target survived a lethal hit within this step's travel")
	}
	var destroys int
	for _, ev := range d.World.TakeEvents() {
		if ev.Kind.Has(world.EventDestroy) {
			destroys++
		}
	}
	if destroys != 1 {
		t.Fatalf("destroy events = %d, want exactly 1", destroys)
	}
	if len(d.World.Projectiles) == 0 || !d.World.Projectiles[0].ShouldBeRemoved() {
		t.Fatalf("projectile not spent after detonating")
	}
}

func TestSafeBlastSparesBystanders(t *testing.T) {
	pipe, d, _ := newTestPipeline(t)
	target := placeShip(d, "Cutter", d.Govs["Pirates"], world.Point{X: 300})
	bystander := placeShip(d, "Cutter", d.Govs["Traders"], world.Point{X: 330})

	p := &world.Projectile{
		Weapon:   &data.Weapon{Name: "missile", HullDamage: 40, BlastRadius: 100, Safe: true},
		Gov:      d.Govs["Patrol"],
		Velocity: world.Point{X: 400},
		Target:   target.Ref,
		Lifetime: 10,
	}
	d.World.StageProjectile(p)
	pipe.Step(0)

	if target.Hull == 100 {
		t.Fatalf("intended target untouched by the blast")
	}
	if bystander.Hull != 100 {
		t.Fatalf("safe blast damaged a neutral bystander, hull = %v", bystander.Hull)
	}
}

func TestUnsafeBlastHitsEveryBody(t *testing.T) {
	pipe, d, _ := newTestPipeline(t)
	target := placeShip(d, "Cutter", d.Govs["Pirates"], world.Point{X: 300})
	bystander := placeShip(d, "Cutter", d.Govs["Traders"], world.Point{X: 330})

	d.World.StageProjectile(&world.Projectile{
		Weapon:   &data.Weapon{Name: "rocket", HullDamage: 40, BlastRadius: 100},
		Gov:      d.Govs["Patrol"],
		Velocity: world.Point{X: 400},
		Target:   target.Ref,
		Lifetime: 10,
	})
	pipe.Step(0)

	if target.Hull == 100 || bystander.Hull == 100 {
		t.Fatalf("blast missed bodies in radius: target %v, bystander %v", target.Hull, bystander.Hull)
	}
}

func TestAntiMissileInterceptsMissedMissile(t *testing.T) {
	pipe, d, _ := newTestPipeline(t)
	defender := placeShip(d, "Cutter", d.Govs["Pirates"], world.Point{X: 1000, Y: 1000})
	defender.Hardpoints = []world.Hardpoint{
		{Weapon: &data.Weapon{Name: "pd", AntiMissile: 1 << 30, Reload: 10}},
	}

	d.World.StageProjectile(&world.Projectile{
		Weapon:   &data.Weapon{Name: "missile", HullDamage: 10, MissileStrength: 1},
		Gov:      d.Govs["Patrol"],
		Velocity: world.Point{Y: -400}, // nowhere near the defender
		Lifetime: 100,
	})
	pipe.Step(0)

	if !d.World.Projectiles[0].ShouldBeRemoved() {
		t.Fatalf("missile survived an overwhelming point-defense screen")
	}
	if defender.Hardpoints[0].Reload != 10 {
		t.Fatalf("interception did not consume the mount's reload")
	}
}

func TestFleetSpawnThrottle(t *testing.T) {
	pipe, d, _ := newTestPipeline(t)
	sys := d.Player.System
	sys.Fleets = []data.FleetProbability{{Fleet: "Raid", Period: 1}}
	t.Cleanup(func() { sys.Fleets = nil })

	// Lopsided in the arriving government's favor: many pirate ships, one
	// token enemy. The scheduler must hold reinforcements back.
	for i := 0; i < 5; i++ {
		placeShip(d, "Cutter", d.Govs["Pirates"], world.Point{X: float64(i) * 100})
	}
	placeShip(d, "Boat", d.Govs["Patrol"], world.Point{Y: 500})

	before := len(d.World.Ships)
	(&spawnSystem{pipe}).Update(0)
	d.World.Merge()
	if len(d.World.Ships) != before {
		t.Fatalf("throttle let a winning side reinforce")
	}

	// Even odds: the fleet arrives.
	for i := 0; i < 5; i++ {
		placeShip(d, "Cutter", d.Govs["Patrol"], world.Point{Y: float64(i) * 100})
	}
	before = len(d.World.Ships)
	(&spawnSystem{pipe}).Update(0)
	d.World.Merge()
	if len(d.World.Ships) != before+2 {
		t.Fatalf("fleet did not arrive: %d ships, want %d", len(d.World.Ships), before+2)
	}
}

func TestPlaceFleetArrivingFollowsLeader(t *testing.T) {
	pipe, d, _ := newTestPipeline(t)
	pipe.placeFleet("Raid", true)
	d.World.Merge()

	if len(d.World.Ships) != 2 {
		t.Fatalf("placed %d ships, want 2", len(d.World.Ships))
	}
	leader, wing := d.World.Ships[0], d.World.Ships[1]
	if wing.Parent != leader.Ref {
		t.Fatalf("wingmate not parented to the leader")
	}
	if leader.System != d.Player.System {
		t.Fatalf("fleet placed in the wrong system")
	}
	if leader.Position.Len() < 2000 {
		t.Fatalf("arriving fleet placed inside the system, at %v", leader.Position)
	}
}

func TestFlotsamCollection(t *testing.T) {
	pipe, d, msgs := newTestPipeline(t)
	flagship := placeShip(d, "Boat", d.Player.Gov, world.Point{})
	d.Player.Flagship = flagship

	d.World.StageFlotsam(world.NewFlotsam(world.Point{X: 5}, world.Point{}, "Iron", 10, 0))
	d.World.Merge()

	(&collectSystem{pipe}).Update(0)
	if flagship.CargoFree != 30 {
		t.Fatalf("cargo free = %d, want 30", flagship.CargoFree)
	}
	if !d.World.Flotsam[0].ShouldBeRemoved() {
		t.Fatalf("collected flotsam not marked for removal")
	}
	if len(msgs.msgs) == 0 {
		t.Fatalf("no pickup message")
	}
}

func TestFlotsamPickupReachesHitCircle(t *testing.T) {
	pipe, d, _ := newTestPipeline(t)
	// A radius-20 trader whose center is 15 units out still overlaps the
	// 5-unit pickup circle, and any ship may collect, not just the
	// player's flagship.
	trader := placeShip(d, "Boat", d.Govs["Traders"], world.Point{X: 15})

	d.World.StageFlotsam(world.NewFlotsam(world.Point{}, world.Point{}, "Iron", 10, 0))
	d.World.Merge()

	(&collectSystem{pipe}).Update(0)
	if trader.CargoFree != 30 {
		t.Fatalf("cargo free = %d, want 30", trader.CargoFree)
	}
	if !d.World.Flotsam[0].ShouldBeRemoved() {
		t.Fatalf("overlapping flotsam not collected")
	}
}

func TestArrivalPlaysJumpAudio(t *testing.T) {
	pipe, d, _ := newTestPipeline(t)
	audio := &audioLog{}
	d.Audio = audio
	d.Pilot = coastPilot{}

	s := placeShip(d, "Cutter", d.Govs["Traders"], world.Point{X: 3000})
	s.System = d.Catalog.System("Next")
	s.TargetSystem = d.Player.System
	s.Hyperspace = 1

	(&moveSystem{pipe}).Update(0)
	if s.System != d.Player.System {
		t.Fatalf("jump did not complete")
	}
	if len(audio.names) != 1 || audio.names[0] != "hyperdrive in" {
		t.Fatalf("arrival audio = %v, want one hyperdrive in", audio.names)
	}
}

func TestAlarmSoundsOnlyForNewHostiles(t *testing.T) {
	pipe, d, _ := newTestPipeline(t)
	audio := &audioLog{}
	d.Audio = audio
	flagship := placeShip(d, "Boat", d.Player.Gov, world.Point{})
	d.Player.Flagship = flagship
	pirate := placeShip(d, "Cutter", d.Govs["Pirates"], world.Point{X: 200})
	pirate.Target = flagship.Ref
	pipe.SetOutput(&frame.Frame{})

	a := &assembleSystem{pipe}
	a.Update(0)
	if len(audio.names) != 1 || audio.names[0] != "alarm" {
		t.Fatalf("audio = %v, want one alarm", audio.names)
	}

	// The same ongoing fight stays quiet even after the cooldown lapses.
	pipe.alarmTime = 0
	a.Update(0)
	if len(audio.names) != 1 {
		t.Fatalf("alarm re-fired during an ongoing fight")
	}

	// Hostiles break off and come back: that is a fresh alarm.
	pirate.Target = 0
	a.Update(0)
	pirate.Target = flagship.Ref
	pipe.alarmTime = 0
	a.Update(0)
	if len(audio.names) != 2 {
		t.Fatalf("returning hostiles did not re-trigger the alarm, audio = %v", audio.names)
	}
}

func TestRadarMarksUnfriendlyGovernments(t *testing.T) {
	pipe, d, _ := newTestPipeline(t)
	flagship := placeShip(d, "Boat", d.Player.Gov, world.Point{})
	d.Player.Flagship = flagship
	placeShip(d, "Cutter", d.Govs["Scrappers"], world.Point{X: 100})

	out := &frame.Frame{}
	pipe.SetOutput(out)
	(&assembleSystem{pipe}).Update(0)

	var got frame.RadarClass
	found := false
	for _, blip := range out.Radar {
		if blip.X == 100 {
			got, found = blip.Class, true
		}
	}
	if !found || got != frame.RadarUnfriendly {
		t.Fatalf("unfriendly ship blip = (%v, %v), want the unfriendly class", got, found)
	}
}

func TestFlotsamIgnoresItsSource(t *testing.T) {
	pipe, d, _ := newTestPipeline(t)
	flagship := placeShip(d, "Boat", d.Player.Gov, world.Point{})
	d.Player.Flagship = flagship

	d.World.StageFlotsam(world.NewFlotsam(world.Point{X: 5}, world.Point{}, "Iron", 10, flagship.Ref))
	d.World.Merge()

	(&collectSystem{pipe}).Update(0)
	if flagship.CargoFree != 40 {
		t.Fatalf("ship scooped up its own ejecta")
	}
}
