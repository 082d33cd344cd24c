package gds

import "math"

// DefaultDiskSegments is the number of vertices used by Disk when a
// non-positive segment count is given.
const DefaultDiskSegments = 64

// Rectangle creates an axis-aligned rectangle with corners p1 and p2.
func Rectangle(p1, p2 Point, layer int) *Boundary {
	r := R(p1, p2)
	return NewBoundary([]Point{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
	}, layer, 0)
}

// Polygon creates a datatype 0 polygon on layer.
func Polygon(layer int, points ...Point) *Boundary {
	return NewBoundary(points, layer, 0)
}

// Disk approximates a circle with a regular polygon of segments vertices.
func Disk(center Point, radius float64, layer, segments int) *Boundary {
	if segments <= 2 {
		segments = DefaultDiskSegments
	}
	pts := make([]Point, segments)
	step := 2 * math.Pi / float64(segments)
	for i := range pts {
		a := step * float64(i)
		pts[i] = Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		}
	}
	return NewBoundary(pts, layer, 0)
}
