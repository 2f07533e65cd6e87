package system

import (
	"time"

	coresys "github.com/farwind/engine/internal/core/system"
)

// mergeSystem is the single splice point for everything staged this step.
type mergeSystem struct{ *Pipeline }

func (m *mergeSystem) Phase() coresys.Phase { return coresys.PhaseMerge }

func (m *mergeSystem) Update(dt time.Duration) {
	m.deps.World.Merge()
}
