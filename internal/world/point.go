package world

import "math"

// Point is a 2-D position or velocity in world units.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point        { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point        { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(s float64) Point      { return Point{p.X * s, p.Y * s} }
func (p Point) Dot(q Point) float64      { return p.X*q.X + p.Y*q.Y }
func (p Point) Len() float64             { return math.Hypot(p.X, p.Y) }
func (p Point) LenSquared() float64      { return p.X*p.X + p.Y*p.Y }
func (p Point) Distance(q Point) float64 { return p.Sub(q).Len() }

// Unit returns the direction of p, or the zero point if p has no length.
func (p Point) Unit() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Angle is a heading in radians. Zero points "up" (negative Y), matching
// the screen convention the render layer expects.
type Angle float64

// Unit returns the direction vector for this heading.
func (a Angle) Unit() Point {
	return Point{math.Sin(float64(a)), -math.Cos(float64(a))}
}

// Rotate rotates p by this angle.
func (a Angle) Rotate(p Point) Point {
	sin, cos := math.Sincos(float64(a))
	return Point{p.X*cos - p.Y*sin, p.X*sin + p.Y*cos}
}

// HeadingOf returns the Angle pointing along direction d.
func HeadingOf(d Point) Angle {
	return Angle(math.Atan2(d.X, -d.Y))
}
