package gds

// Element is a piece of geometry on a layer. Elements are immutable:
// Transform and WithLayer return new values and never modify the
// receiver, so one element may be shared by many cells.
type Element interface {
	// Layer returns the GDSII layer number.
	Layer() int

	// Datatype returns the GDSII datatype (TEXTTYPE for labels).
	Datatype() int

	// Bounds returns the bounding box in the element's own coordinates.
	Bounds() Rect

	// Transform returns a copy of the element with m applied.
	Transform(m Matrix) Element

	// WithLayer returns a copy of the element moved to another layer.
	WithLayer(layer int) Element
}

// Boundary is a closed polygon. The closing point is implicit.
type Boundary struct {
	points   []Point
	layer    int
	datatype int
}

// NewBoundary creates a polygon from points. A trailing point equal to
// the first is dropped.
func NewBoundary(points []Point, layer, datatype int) *Boundary {
	pts := make([]Point, len(points))
	copy(pts, points)
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	return &Boundary{points: pts, layer: layer, datatype: datatype}
}

// Points returns a copy of the polygon vertices.
func (b *Boundary) Points() []Point {
	pts := make([]Point, len(b.points))
	copy(pts, b.points)
	return pts
}

// Len returns the number of vertices.
func (b *Boundary) Len() int { return len(b.points) }

func (b *Boundary) Layer() int    { return b.layer }
func (b *Boundary) Datatype() int { return b.datatype }
func (b *Boundary) Bounds() Rect  { return boundsOf(b.points) }

func (b *Boundary) Transform(m Matrix) Element {
	return b.apply(m)
}

func (b *Boundary) WithLayer(layer int) Element {
	return &Boundary{points: b.points, layer: layer, datatype: b.datatype}
}

func (b *Boundary) apply(m Matrix) *Boundary {
	pts := make([]Point, len(b.points))
	for i, p := range b.points {
		pts[i] = m.TransformPoint(p)
	}
	return &Boundary{points: pts, layer: b.layer, datatype: b.datatype}
}

// Scale returns the polygon scaled by k about the origin.
func (b *Boundary) Scale(k float64) *Boundary { return b.apply(Scale(k, k)) }

// Rotate returns the polygon rotated counter-clockwise by degrees about the origin.
func (b *Boundary) Rotate(degrees float64) *Boundary { return b.apply(Rotate(degrees)) }

// Translate returns the polygon moved by (dx, dy).
func (b *Boundary) Translate(dx, dy float64) *Boundary { return b.apply(Translate(dx, dy)) }

// ReflectX returns the polygon mirrored across the x axis.
func (b *Boundary) ReflectX() *Boundary { return b.apply(ReflectX()) }

// ReflectY returns the polygon mirrored across the y axis.
func (b *Boundary) ReflectY() *Boundary { return b.apply(ReflectY()) }

// PathType is the GDSII end cap style of a path.
type PathType int

// End cap styles.
const (
	PathFlush    PathType = 0
	PathRound    PathType = 1
	PathExtended PathType = 2
)

// Path is an open centre line drawn with a width.
type Path struct {
	points   []Point
	width    float64
	pathType PathType
	layer    int
	datatype int
}

// NewPath creates a path element.
func NewPath(points []Point, width float64, pathType PathType, layer, datatype int) *Path {
	pts := make([]Point, len(points))
	copy(pts, points)
	return &Path{points: pts, width: width, pathType: pathType, layer: layer, datatype: datatype}
}

// Points returns a copy of the centre line.
func (p *Path) Points() []Point {
	pts := make([]Point, len(p.points))
	copy(pts, p.points)
	return pts
}

// Width returns the drawn width.
func (p *Path) Width() float64 { return p.width }

// Type returns the end cap style.
func (p *Path) Type() PathType { return p.pathType }

func (p *Path) Layer() int    { return p.layer }
func (p *Path) Datatype() int { return p.datatype }

func (p *Path) Bounds() Rect {
	b := boundsOf(p.points)
	if b.Empty() {
		return b
	}
	return b.Inset(-p.width / 2)
}

func (p *Path) Transform(m Matrix) Element {
	pts := make([]Point, len(p.points))
	for i, pt := range p.points {
		pts[i] = m.TransformPoint(pt)
	}
	return &Path{points: pts, width: p.width * m.ScaleFactor(), pathType: p.pathType, layer: p.layer, datatype: p.datatype}
}

func (p *Path) WithLayer(layer int) Element {
	c := *p
	c.layer = layer
	return &c
}

// Label is a text annotation. Labels carry no exposed geometry; mask
// text that must print is built from polygons with Text.
type Label struct {
	text     string
	position Point
	mag      float64
	layer    int
	textType int
}

// NewLabel creates a text annotation at position.
func NewLabel(text string, position Point, layer, textType int) *Label {
	return &Label{text: text, position: position, mag: 1, layer: layer, textType: textType}
}

// Text returns the label string.
func (l *Label) Text() string { return l.text }

// Position returns the anchor point.
func (l *Label) Position() Point { return l.position }

// Magnification returns the text size factor.
func (l *Label) Magnification() float64 { return l.mag }

func (l *Label) Layer() int    { return l.layer }
func (l *Label) Datatype() int { return l.textType }
func (l *Label) Bounds() Rect  { return Rect{Min: l.position, Max: l.position} }

func (l *Label) Transform(m Matrix) Element {
	c := *l
	c.position = m.TransformPoint(l.position)
	c.mag = l.mag * m.ScaleFactor()
	return &c
}

func (l *Label) WithLayer(layer int) Element {
	c := *l
	c.layer = layer
	return &c
}
