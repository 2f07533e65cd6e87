// Package system holds the per-step simulation pipeline: movement,
// spawning, diplomacy, collision, collection, scanning, and frame
// assembly, run in a fixed phase order.
package system

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/farwind/engine/internal/config"
	"github.com/farwind/engine/internal/data"
	"github.com/farwind/engine/internal/metrics"
	"github.com/farwind/engine/internal/world"
)

// Pilot decides how ships steer and what they intend to do. The pipeline
// owns position updates for projectiles and debris; ships belong to the
// pilot, which must move each ship and maintain its Commands, Hyperspace
// countdown, and System field.
type Pilot interface {
	// Step runs once per simulation step, before any ship moves.
	Step(ws *world.State, player *world.Player)
	// Move advances one ship.
	Move(s *world.Ship, ws *world.State)
}

// AudioSink receives positional sound triggers. Implementations must not
// block: they are called from the calculation goroutine.
type AudioSink interface {
	Play(name string, pos world.Point)
}

// MessageSink receives player-visible text lines.
type MessageSink interface {
	Message(text string, important bool)
}

// PhraseExpander turns a phrase name into generated text. The second
// return is false when the name is not a known phrase, in which case
// callers use the name as literal text.
type PhraseExpander interface {
	Expand(name string) (string, bool)
}

// Deps is everything the pipeline needs injected. Audio, Messages,
// Phrases, and Metrics may be nil; the pipeline then skips them.
type Deps struct {
	World   *world.State
	Player  *world.Player
	Catalog *data.Catalog
	Govs    map[string]*world.Government

	Pilot    Pilot
	Audio    AudioSink
	Messages MessageSink
	Phrases  PhraseExpander

	Rand    *rand.Rand
	Log     *zap.Logger
	Cfg     *config.Config
	Metrics *metrics.Collector
}

func (d *Deps) play(name string, pos world.Point) {
	if d.Audio != nil {
		d.Audio.Play(name, pos)
	}
}

func (d *Deps) message(text string, important bool) {
	if d.Messages != nil && text != "" {
		d.Messages.Message(text, important)
	}
}

// expand resolves a hail through the phrase engine, falling back to the
// raw string for plain-text hails.
func (d *Deps) expand(name string) string {
	if name == "" {
		return ""
	}
	if d.Phrases != nil {
		if text, ok := d.Phrases.Expand(name); ok {
			return text
		}
	}
	return name
}
