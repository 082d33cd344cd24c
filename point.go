package gds

import "math"

// Point represents a 2D point or vector in user units.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	d := p.Sub(q)
	return math.Hypot(d.X, d.Y)
}

// Near reports whether p and q are within tol of each other on both axes.
func (p Point) Near(q Point, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol
}

// Points builds a point slice from coordinate pairs.
//
//	gds.Points(0, 0, 10, 0, 10, 10)
//
// Panics if an odd number of coordinates is given.
func Points(xy ...float64) []Point {
	if len(xy)%2 != 0 {
		panic("gds: Points needs an even number of coordinates")
	}
	pts := make([]Point, len(xy)/2)
	for i := range pts {
		pts[i] = Point{X: xy[2*i], Y: xy[2*i+1]}
	}
	return pts
}
