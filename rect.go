package gds

import "math"

// Rect is an axis-aligned bounding box.
type Rect struct {
	Min, Max Point
}

// EmptyRect returns a rectangle that contains nothing and acts as the
// identity for Union and Extend.
func EmptyRect() Rect {
	inf := math.Inf(1)
	return Rect{Min: Point{X: inf, Y: inf}, Max: Point{X: -inf, Y: -inf}}
}

// R returns the rectangle spanned by two corner points in any order.
func R(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// Empty reports whether the rectangle contains no points.
func (r Rect) Empty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 {
	if r.Empty() {
		return 0
	}
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent.
func (r Rect) Height() float64 {
	if r.Empty() {
		return 0
	}
	return r.Max.Y - r.Min.Y
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Extend grows the rectangle to include p.
func (r Rect) Extend(p Point) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, p.X), Y: math.Min(r.Min.Y, p.Y)},
		Max: Point{X: math.Max(r.Max.X, p.X), Y: math.Max(r.Max.Y, p.Y)},
	}
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	if o.Empty() {
		return r
	}
	if r.Empty() {
		return o
	}
	return r.Extend(o.Min).Extend(o.Max)
}

// Inset shrinks the rectangle by d on every side; a negative d grows it.
func (r Rect) Inset(d float64) Rect {
	return Rect{
		Min: Point{X: r.Min.X + d, Y: r.Min.Y + d},
		Max: Point{X: r.Max.X - d, Y: r.Max.Y - d},
	}
}

// Contains reports whether p lies strictly inside r. Points on the
// boundary are outside.
func (r Rect) Contains(p Point) bool {
	return p.X > r.Min.X && p.X < r.Max.X &&
		p.Y > r.Min.Y && p.Y < r.Max.Y
}

func boundsOf(pts []Point) Rect {
	b := EmptyRect()
	for _, p := range pts {
		b = b.Extend(p)
	}
	return b
}
