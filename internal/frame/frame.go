// Package frame defines the render snapshot the calculation goroutine
// assembles and the foreground consumes. Frames hold plain values only:
// no pointers into the live simulation survive into a frame.
package frame

// RadarClass colors a radar blip by the contact's relation to the player.
type RadarClass int

const (
	RadarPlayer RadarClass = iota
	RadarFriendly
	RadarUnfriendly
	RadarHostile
	RadarInactive
	RadarSpecial
)

// Sprite is one drawable body, already relative to nothing: positions are
// world coordinates and the consumer applies the frame's center.
type Sprite struct {
	Name   string
	X, Y   float64
	VX, VY float64
	Facing float64
	Zoom   float64
	Cloak  float64
	Frame  float64
}

// RadarBlip is one radar contact.
type RadarBlip struct {
	X, Y  float64
	Class RadarClass
	Size  float64
	Blink bool
}

// Pointer is an off-screen direction indicator: a hyperspace link out of
// the system, or a blinking mission target.
type Pointer struct {
	Angle float64
	Class RadarClass
}

// HUD carries the flagship status bars, already normalized to [0,1].
type HUD struct {
	Shields float64
	Hull    float64
	Fuel    float64
	Heat    float64
	Date    string
}

// Target describes the crosshair overlay for the flagship's locked
// target, if any.
type Target struct {
	Active  bool
	X, Y    float64
	Radius  float64
	Name    string
	Gov     string
	Hostile bool
}

// Frame is one completed snapshot. The engine owns two of these and the
// foreground reads whichever one is not being written.
type Frame struct {
	Step               int64
	CenterX, CenterY   float64
	CenterVX, CenterVY float64
	Zoom               float64

	Sprites  []Sprite
	Radar    []RadarBlip
	Pointers []Pointer

	HUD    HUD
	Target Target
}

// Reset empties the frame for reuse without releasing its slices.
func (f *Frame) Reset() {
	f.Sprites = f.Sprites[:0]
	f.Radar = f.Radar[:0]
	f.Pointers = f.Pointers[:0]
	f.Target = Target{}
}
