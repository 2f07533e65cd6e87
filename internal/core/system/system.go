package system

import "time"

// Phase defines execution ordering within a single calculation step.
// The order is load-bearing: hails are composed before staged ships merge,
// projectiles fired this step are resolved this step against the pre-merge
// ship index, and the frame is assembled only once every entity has
// reached its final position.
type Phase int

const (
	PhaseMove     Phase = iota // 0: prune, then advance every entity
	PhaseSpawn                 // 1: stochastic fleet/person/raid arrivals
	PhaseHail                  // 2: ambient hails, grudge cooldown
	PhaseMerge                 // 3: splice staged entities onto live lists
	PhaseCollide               // 4: projectile resolution, anti-missile
	PhaseCollect               // 5: flotsam pickup
	PhaseScan                  // 6: completed cargo/outfit scans
	PhaseAssemble              // 7: build the frame snapshot
)

// System is the interface every step system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
