package system

import (
	"time"

	coresys "github.com/farwind/engine/internal/core/system"
	"github.com/farwind/engine/internal/frame"
	"github.com/farwind/engine/internal/world"
)

// assembleSystem snapshots the step into the output frame: draw list,
// radar, HUD, and target crosshair. It runs last, so every entity is at
// its final position, and it copies values only; the frame must stay
// valid after the live entities change under the next step.
type assembleSystem struct{ *Pipeline }

func (a *assembleSystem) Phase() coresys.Phase { return coresys.PhaseAssemble }

func (a *assembleSystem) Update(dt time.Duration) {
	if a.alarmTime > 0 {
		a.alarmTime--
	}
	out := a.out
	if out == nil {
		return
	}
	d := a.deps
	out.Reset()
	out.Step = a.step

	flagship := d.Player.Flagship
	if flagship != nil {
		out.CenterX, out.CenterY = flagship.Position.X, flagship.Position.Y
		out.CenterVX, out.CenterVY = flagship.Velocity.X, flagship.Velocity.Y
	}

	sys := d.Player.System
	if sys != nil {
		for _, link := range sys.Links() {
			class := frame.RadarInactive
			if d.Player.HasVisited(link) {
				class = frame.RadarFriendly
			}
			out.Pointers = append(out.Pointers, frame.Pointer{
				Angle: float64(world.HeadingOf(world.Point{X: link.X - sys.X, Y: link.Y - sys.Y})),
				Class: class,
			})
		}
		for i := range sys.Objects {
			o := &sys.Objects[i]
			out.Sprites = append(out.Sprites, frame.Sprite{
				Name: o.Sprite, X: o.X, Y: o.Y, Zoom: 1,
			})
		}
	}
	for _, r := range a.asteroids.Asteroids {
		out.Sprites = append(out.Sprites, frame.Sprite{
			Name: "asteroid", X: r.Position.X, Y: r.Position.Y,
			VX: r.Velocity.X, VY: r.Velocity.Y, Zoom: 1,
		})
	}
	for _, m := range a.asteroids.Minables {
		out.Sprites = append(out.Sprites, frame.Sprite{
			Name: m.Def.Name, X: m.Position.X, Y: m.Position.Y,
			VX: m.Velocity.X, VY: m.Velocity.Y, Zoom: 1,
		})
	}
	for _, f := range d.World.Flotsam {
		out.Sprites = append(out.Sprites, frame.Sprite{
			Name: "flotsam", X: f.Position.X, Y: f.Position.Y,
			VX: f.Velocity.X, VY: f.Velocity.Y, Zoom: 1,
		})
	}
	for _, s := range d.World.Ships {
		if s.System != d.Player.System {
			continue
		}
		out.Sprites = append(out.Sprites, frame.Sprite{
			Name: s.Model.Sprite, X: s.Position.X, Y: s.Position.Y,
			VX: s.Velocity.X, VY: s.Velocity.Y,
			Facing: float64(s.Facing), Zoom: s.Zoom, Cloak: s.Cloak,
		})
		a.addRadar(out, s, flagship)
	}
	for _, p := range d.World.Projectiles {
		out.Sprites = append(out.Sprites, frame.Sprite{
			Name: p.Weapon.Name, X: p.Position.X, Y: p.Position.Y,
			VX: p.Velocity.X, VY: p.Velocity.Y,
			Facing: float64(p.Facing), Zoom: 1,
		})
		if p.Missile() || p.Weapon.BlastRadius > 0 {
			out.Radar = append(out.Radar, frame.RadarBlip{
				X: p.Position.X, Y: p.Position.Y,
				Class: frame.RadarSpecial, Size: 1,
			})
		}
	}
	for _, v := range d.World.Visuals {
		name := ""
		if v.Effect != nil {
			name = v.Effect.Name
		}
		out.Sprites = append(out.Sprites, frame.Sprite{
			Name: name, X: v.Position.X, Y: v.Position.Y,
			VX: v.Velocity.X, VY: v.Velocity.Y,
			Zoom: 1, Frame: v.Frame,
		})
	}

	a.fillHUD(out, flagship)
	a.fillTarget(out, flagship)
	a.checkAlarm(flagship)
}

// addRadar classifies one ship for the radar. Cloaked ships do not show
// up at all unless they belong to the player.
func (a *assembleSystem) addRadar(out *frame.Frame, s, flagship *world.Ship) {
	player := a.deps.Player
	if s.Cloak >= 1 && !s.Gov.IsPlayer() {
		return
	}
	var class frame.RadarClass
	blink := false
	switch {
	case s.Gov.IsPlayer():
		class = frame.RadarPlayer
	case s.Personality.Is(world.Target):
		class = frame.RadarSpecial
		blink = true
	case s.IsDisabled():
		class = frame.RadarInactive
	case s.Gov.IsEnemy(player.Gov):
		class = frame.RadarHostile
	case s.Gov != nil && s.Gov.Unfriendly:
		class = frame.RadarUnfriendly
	default:
		class = frame.RadarFriendly
	}
	out.Radar = append(out.Radar, frame.RadarBlip{
		X: s.Position.X, Y: s.Position.Y,
		Class: class, Size: s.Radius(), Blink: blink,
	})
	if blink && flagship != nil {
		out.Pointers = append(out.Pointers, frame.Pointer{
			Angle: float64(world.HeadingOf(s.Position.Sub(flagship.Position))),
			Class: class,
		})
	}
}

func (a *assembleSystem) fillHUD(out *frame.Frame, flagship *world.Ship) {
	out.HUD.Date = a.deps.Player.Date.String()
	if flagship == nil {
		return
	}
	m := flagship.Model
	out.HUD.Shields = ratio(flagship.Shields, m.MaxShields)
	out.HUD.Hull = ratio(flagship.Hull, m.MaxHull)
	out.HUD.Fuel = ratio(flagship.Fuel, m.MaxFuel)
	out.HUD.Heat = ratio(flagship.Heat, m.MaxHeat)
}

func (a *assembleSystem) fillTarget(out *frame.Frame, flagship *world.Ship) {
	if flagship == nil {
		return
	}
	t := a.deps.World.Resolve(flagship.Target)
	if t == nil || t.System != a.deps.Player.System || !t.IsTargetable() {
		return
	}
	out.Target = frame.Target{
		Active:  true,
		X:       t.Position.X,
		Y:       t.Position.Y,
		Radius:  t.Radius(),
		Name:    t.DisplayName(),
		Gov:     t.Gov.Name,
		Hostile: t.Gov.IsEnemy(a.deps.Player.Gov),
	}
}

// checkAlarm sounds the hostile siren when something newly starts gunning
// for the flagship. The latch keeps an ongoing fight from re-triggering
// the siren; the cooldown spaces out separate arrivals.
func (a *assembleSystem) checkAlarm(flagship *world.Ship) {
	d := a.deps
	var hostile *world.Ship
	if flagship != nil {
		for _, s := range d.World.Ships {
			if s.System != d.Player.System || !s.Gov.IsEnemy(d.Player.Gov) {
				continue
			}
			if s.Target == flagship.Ref && !s.IsDisabled() {
				hostile = s
				break
			}
		}
	}
	if hostile != nil && !a.hadHostiles && a.alarmTime == 0 {
		d.play("alarm", hostile.Position)
		a.alarmTime = d.Cfg.Diplomacy.AlarmCooldown
	}
	a.hadHostiles = hostile != nil
}

func ratio(v, max float64) float64 {
	if max <= 0 {
		return 0
	}
	if v < 0 {
		return 0
	}
	return v / max
}
