package collision

import (
	"testing"

	"github.com/farwind/engine/internal/data"
	"github.com/farwind/engine/internal/world"
)

func ship(x, y, radius float64) *world.Ship {
	s := world.NewShip(&data.ShipModel{Name: "hull", Radius: radius, MaxHull: 100}, nil)
	s.Position = world.Point{X: x, Y: y}
	return s
}

func TestCircleQueryDedupes(t *testing.T) {
	idx := NewIndex()
	// A big ship straddles several cells; it must come back once.
	big := ship(0, 0, 400)
	idx.Add(big)

	hits := idx.Circle(world.Point{X: 100}, 50)
	if len(hits) != 1 || hits[0] != big {
		t.Fatalf("circle query returned %d hits, want 1", len(hits))
	}
}

func TestCircleQueryRespectsDistance(t *testing.T) {
	idx := NewIndex()
	near := ship(30, 0, 10)
	far := ship(500, 0, 10)
	idx.Add(near)
	idx.Add(far)

	hits := idx.Circle(world.Point{}, 50)
	if len(hits) != 1 || hits[0] != near {
		t.Fatalf("circle hit %d ships, want only the near one", len(hits))
	}
}

func TestSegmentReturnsClosest(t *testing.T) {
	idx := NewIndex()
	first := ship(100, 0, 10)
	second := ship(200, 0, 10)
	idx.Add(first)
	idx.Add(second)

	hit, f := idx.Segment(world.Point{}, world.Point{X: 300}, nil)
	if hit != first {
		t.Fatalf("segment hit %v, want the nearer ship", hit)
	}
	if f >= 0.5 {
		t.Fatalf("hit fraction %v, want < 0.5", f)
	}
}

func TestSegmentMissAndFilter(t *testing.T) {
	idx := NewIndex()
	only := ship(100, 0, 10)
	idx.Add(only)

	if hit, f := idx.Segment(world.Point{Y: 100}, world.Point{X: 300}, nil); hit != nil || f != 1 {
		t.Fatalf("miss = (%v, %v), want (nil, 1)", hit, f)
	}
	hit, _ := idx.Segment(world.Point{}, world.Point{X: 300}, func(s *world.Ship) bool {
		return s != only
	})
	if hit != nil {
		t.Fatalf("filter did not exclude the ship")
	}
}

func TestClearEmptiesIndex(t *testing.T) {
	idx := NewIndex()
	idx.Add(ship(10, 0, 10))
	idx.Clear()
	if hits := idx.Circle(world.Point{}, 1000); len(hits) != 0 {
		t.Fatalf("cleared index still returned %d ships", len(hits))
	}
}
