package gds

// Ref places a cell inside another cell. It is implemented by
// *Reference and *Array.
type Ref interface {
	// Cell returns the referenced cell. The reference does not own it.
	Cell() *Cell

	// Placements returns one transform per placed instance.
	Placements() []Matrix

	retarget(c *Cell, k float64) Ref
}

// Reference places a single instance of a cell.
type Reference struct {
	Target        *Cell
	Origin        Point
	Rotation      float64 // degrees, counter-clockwise
	Magnification float64 // zero means 1
	XReflection   bool    // mirror across x before rotating
}

// NewReference places target at origin.
func NewReference(target *Cell, origin Point) *Reference {
	return &Reference{Target: target, Origin: origin, Magnification: 1}
}

func (r *Reference) Cell() *Cell { return r.Target }

// Matrix returns the instance transform: reflect, magnify, rotate, then
// translate to the origin.
func (r *Reference) Matrix() Matrix {
	return placement(r.Origin, r.Rotation, r.Magnification, r.XReflection)
}

func (r *Reference) Placements() []Matrix {
	return []Matrix{r.Matrix()}
}

func (r *Reference) retarget(c *Cell, k float64) Ref {
	n := *r
	n.Target = c
	n.Origin = r.Origin.Mul(k)
	return &n
}

// Array places a cell on a regular Cols x Rows lattice. Spacing is the
// lattice pitch along the columns (x) and rows (y) before rotation.
type Array struct {
	Target        *Cell
	Cols, Rows    int
	Spacing       Point
	Origin        Point
	Rotation      float64
	Magnification float64
	XReflection   bool
}

// NewArray places target on a cols x rows lattice starting at origin.
func NewArray(target *Cell, cols, rows int, spacing, origin Point) *Array {
	return &Array{
		Target:        target,
		Cols:          cols,
		Rows:          rows,
		Spacing:       spacing,
		Origin:        origin,
		Magnification: 1,
	}
}

func (a *Array) Cell() *Cell { return a.Target }

// Placements expands the lattice row by row.
func (a *Array) Placements() []Matrix {
	if a.Cols <= 0 || a.Rows <= 0 {
		return nil
	}
	base := placement(Point{}, 0, a.Magnification, a.XReflection)
	frame := Translate(a.Origin.X, a.Origin.Y).Multiply(Rotate(a.Rotation))
	out := make([]Matrix, 0, a.Cols*a.Rows)
	for row := 0; row < a.Rows; row++ {
		for col := 0; col < a.Cols; col++ {
			step := Translate(float64(col)*a.Spacing.X, float64(row)*a.Spacing.Y)
			out = append(out, frame.Multiply(step).Multiply(base))
		}
	}
	return out
}

// lattice returns the GDSII AREF corner points: origin, origin shifted
// by Cols column steps and origin shifted by Rows row steps.
func (a *Array) lattice() [3]Point {
	rot := Rotate(a.Rotation)
	return [3]Point{
		a.Origin,
		a.Origin.Add(rot.TransformVector(Point{X: float64(a.Cols) * a.Spacing.X})),
		a.Origin.Add(rot.TransformVector(Point{Y: float64(a.Rows) * a.Spacing.Y})),
	}
}

func (a *Array) retarget(c *Cell, k float64) Ref {
	n := *a
	n.Target = c
	n.Origin = a.Origin.Mul(k)
	n.Spacing = a.Spacing.Mul(k)
	return &n
}

func placement(origin Point, rotation, mag float64, reflect bool) Matrix {
	if mag == 0 {
		mag = 1
	}
	m := Translate(origin.X, origin.Y).Multiply(Rotate(rotation)).Multiply(Scale(mag, mag))
	if reflect {
		m = m.Multiply(ReflectX())
	}
	return m
}
