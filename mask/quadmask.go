package mask

import (
	"fmt"

	"github.com/gogpu/gds"
)

// QuadrantMask is a GCA200 reticle split into four quadrant cells, one
// per lithography layer. Each quadrant cell is referenced from TOP at
// its quadrant centre, and the writable window is outlined on
// BoundingBoxLayer.
type QuadrantMask struct {
	*Reticle
}

// NewQuadrantMask creates a reticle with four empty quadrant cells.
func NewQuadrantMask(name string, opts ...Option) *QuadrantMask {
	return newQuadrantMask(name, newOptions(opts))
}

func newQuadrantMask(name string, o options) *QuadrantMask {
	q := &QuadrantMask{Reticle: newReticle(name, o)}
	top := q.Top()
	h := BoundingBoxHalf
	top.Add(gds.Rectangle(gds.Pt(-h, -h), gds.Pt(h, h), BoundingBoxLayer))
	for _, quad := range Quadrants() {
		top.AddRef(gds.NewReference(gds.NewCell(string(quad)), quad.Center(QuadrantOffset)))
	}
	return q
}

// OpenQuadrantMask wraps a layout holding a saved quadrant reticle, as
// read back from GDSII. The layout's TOP cell, or its single top-level
// cell when none is named TOP, must reference all four quadrant cells.
// A single top-level cell is renamed to TOP in the layout. The mask
// takes ownership of l and keeps its precision.
func OpenQuadrantMask(l *gds.Layout, opts ...Option) (*QuadrantMask, error) {
	top, ok := l.Cell(TopCell)
	if !ok {
		c, err := importTop(l)
		if err != nil {
			return nil, err
		}
		top = c.Copy(TopCell)
		l.Remove(c.Name())
		l.Add(top)
	}
	for _, quad := range Quadrants() {
		if _, ok := top.FindRef(string(quad)); !ok {
			return nil, fmt.Errorf("%w: %s in %s", ErrMissingQuadrant, quad, l.Name())
		}
	}
	o := newOptions(opts)
	o.precision = l.Precision()
	return &QuadrantMask{Reticle: &Reticle{Mask: &Mask{layout: l, opts: o}}}, nil
}

// CellReference returns the first reference of cell whose target is
// named name.
func (q *QuadrantMask) CellReference(cell *gds.Cell, name string) (gds.Ref, bool) {
	return cell.FindRef(name)
}

// CellFromReference returns the target of the TOP reference named name.
func (q *QuadrantMask) CellFromReference(name string) (*gds.Cell, bool) {
	r, ok := q.CellReference(q.Top(), name)
	if !ok {
		return nil, false
	}
	return r.Cell(), true
}

// Quadrant returns the cell of quadrant quad.
func (q *QuadrantMask) Quadrant(quad Quadrant) (*gds.Cell, error) {
	if err := checkQuadrant(quad); err != nil {
		return nil, err
	}
	c, ok := q.CellFromReference(string(quad))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingQuadrant, quad)
	}
	return c, nil
}

// AddToQuadrant appends references to the quadrant cell.
func (q *QuadrantMask) AddToQuadrant(quad Quadrant, refs ...gds.Ref) error {
	if err := q.mutable(); err != nil {
		return err
	}
	c, err := q.Quadrant(quad)
	if err != nil {
		return err
	}
	c.AddRef(refs...)
	return nil
}

// AddCellToQuadrant places cells in the quadrant, each referenced at the
// quadrant origin.
func (q *QuadrantMask) AddCellToQuadrant(quad Quadrant, cells ...*gds.Cell) error {
	refs := make([]gds.Ref, len(cells))
	for i, c := range cells {
		refs[i] = gds.NewReference(c, gds.Point{})
	}
	return q.AddToQuadrant(quad, refs...)
}

// ConvertWaferScaleMask builds a new quadrant mask from a 1x design.
// The TOP of src is copied and scaled by the reticle factor, and every
// element of the flattened copy is wrapped in its own container cell in
// the quadrant its layer maps to. src is not modified.
//
// An element on a layer missing from layers fails the conversion with
// ErrUnmappedLayer and no mask is returned.
func (q *QuadrantMask) ConvertWaferScaleMask(src *Mask, layers LayerMap) (*QuadrantMask, error) {
	if err := layers.Validate(); err != nil {
		return nil, err
	}
	flat, err := src.Top().CopyScaled(q.opts.factor).Flatten()
	if err != nil {
		return nil, fmt.Errorf("mask: convert %s: %w", src.Name(), err)
	}
	for _, e := range flat {
		if _, ok := layers.Quadrant(e.Layer()); !ok {
			return nil, fmt.Errorf("%w: layer %d in %s", ErrUnmappedLayer, e.Layer(), src.Name())
		}
	}

	out := newQuadrantMask(src.Name(), q.opts)
	counts := make(map[Quadrant]int, 4)
	for _, e := range flat {
		quad, _ := layers.Quadrant(e.Layer())
		container := gds.NewCell(ContainerCell)
		container.Add(e)
		if err := out.AddCellToQuadrant(quad, container); err != nil {
			return nil, err
		}
		counts[quad]++
	}
	gds.Logger().Info("wafer-scale mask converted",
		"mask", src.Name(),
		"elements", len(flat),
		string(UpperLeft), counts[UpperLeft],
		string(UpperRight), counts[UpperRight],
		string(LowerRight), counts[LowerRight],
		string(LowerLeft), counts[LowerLeft])
	return out, nil
}

// MakeWaferScaleGDS overlays the four quadrants at wafer scale so the
// layer registration can be checked. Each quadrant is flattened and
// shrunk by the reticle factor, and every element lands in its own
// boundary cell under TOP of a new mask named after this one with
// WaferScaleSuffix. precision sets the database unit of the result;
// zero keeps the default.
func (q *QuadrantMask) MakeWaferScaleGDS(precision float64) (*Mask, error) {
	o := q.opts
	o.precision = gds.DefaultPrecision
	if precision > 0 {
		o.precision = precision
	}
	ws := newMask(q.Name()+WaferScaleSuffix, o)
	top := ws.Top()
	shrink := gds.Scale(1/q.opts.factor, 1/q.opts.factor)
	for _, quad := range Quadrants() {
		c, err := q.Quadrant(quad)
		if err != nil {
			return nil, err
		}
		flat, err := c.Flatten()
		if err != nil {
			return nil, fmt.Errorf("mask: %s: %w", quad, err)
		}
		for _, e := range flat {
			b := gds.NewCell(BoundaryCell)
			b.Add(e.Transform(shrink))
			top.AddCell(b)
		}
		gds.Logger().Debug("quadrant overlaid", "quadrant", quad, "elements", len(flat))
	}
	return ws, nil
}
