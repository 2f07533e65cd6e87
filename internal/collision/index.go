// Package collision provides the spatial index the projectile resolver
// queries. The index is rebuilt from scratch every step and never
// outlives one; it holds raw pointers, not refs.
package collision

import (
	"math"

	"github.com/farwind/engine/internal/world"
)

// cellSize is the grid pitch in world units. Ships are a few tens of
// units across, so one cell comfortably holds a furball without segment
// queries walking many cells.
const cellSize = 256.

type cell struct{ x, y int32 }

// Index is a uniform-grid spatial hash over ships. Each ship is inserted
// into every cell its bounding circle touches.
type Index struct {
	cells map[cell][]*world.Ship

	// seen dedupes multi-cell results between queries without allocating
	// a fresh set each call.
	seen  map[*world.Ship]uint32
	epoch uint32
}

func NewIndex() *Index {
	return &Index{
		cells: make(map[cell][]*world.Ship),
		seen:  make(map[*world.Ship]uint32),
	}
}

// Clear empties the index for reuse, keeping cell slices allocated.
func (x *Index) Clear() {
	for k, v := range x.cells {
		x.cells[k] = v[:0]
	}
	x.epoch++
}

func cellOf(v float64) int32 { return int32(math.Floor(v / cellSize)) }

// Add inserts the ship into every cell its radius touches.
func (x *Index) Add(s *world.Ship) {
	r := s.Radius()
	minX, maxX := cellOf(s.Position.X-r), cellOf(s.Position.X+r)
	minY, maxY := cellOf(s.Position.Y-r), cellOf(s.Position.Y+r)
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			k := cell{cx, cy}
			x.cells[k] = append(x.cells[k], s)
		}
	}
}

// Circle returns every indexed ship whose bounding circle intersects the
// query circle, each ship at most once.
func (x *Index) Circle(center world.Point, radius float64) []*world.Ship {
	x.epoch++
	var out []*world.Ship
	minX, maxX := cellOf(center.X-radius), cellOf(center.X+radius)
	minY, maxY := cellOf(center.Y-radius), cellOf(center.Y+radius)
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			for _, s := range x.cells[cell{cx, cy}] {
				if x.seen[s] == x.epoch {
					continue
				}
				x.seen[s] = x.epoch
				if center.Distance(s.Position) <= radius+s.Radius() {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

// Segment finds the first ship the segment from→from+d crosses. It
// returns that ship and the hit fraction in [0,1); fraction 1 with a nil
// ship means no hit. The filter skips ships the caller has excluded,
// such as the firing government's own vessels.
func (x *Index) Segment(from, d world.Point, filter func(*world.Ship) bool) (*world.Ship, float64) {
	x.epoch++
	closest := 1.
	var hit *world.Ship

	// Walk the cells the segment's bounding box covers. Segments are one
	// step of projectile travel, so the box is small.
	to := from.Add(d)
	minX, maxX := cellOf(math.Min(from.X, to.X)), cellOf(math.Max(from.X, to.X))
	minY, maxY := cellOf(math.Min(from.Y, to.Y)), cellOf(math.Max(from.Y, to.Y))
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			for _, s := range x.cells[cell{cx, cy}] {
				if x.seen[s] == x.epoch {
					continue
				}
				x.seen[s] = x.epoch
				if filter != nil && !filter(s) {
					continue
				}
				if t, ok := world.SegmentCircle(from, d, s.Position, s.Radius()); ok && t < closest {
					closest = t
					hit = s
				}
			}
		}
	}
	return hit, closest
}
