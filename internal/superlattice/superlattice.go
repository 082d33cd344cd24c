// Package superlattice builds the superlattice device mask set: a GCA200
// quadrant reticle with bottom gates, top gates, contacts and EBL
// fiducials, and its wafer-scale derivative carrying the 70 nm pitch
// hole lattice written by EBL.
package superlattice

import (
	"fmt"

	"github.com/gogpu/gds"
	"github.com/gogpu/gds/ebl"
	"github.com/gogpu/gds/mask"
)

// ReticleName names the reticle. The wafer-scale mask carries the
// reticle name with mask.WaferScaleSuffix.
const ReticleName = "SuperlatticeOpticalMaskV6"

// Layer carries every optical pattern; quadrants separate the process
// layers. EBLLayer carries the hole lattice and dose marks.
const (
	Layer    = 1
	EBLLayer = 2
)

// Lattice parameters of the hole pattern, in micrometres.
const (
	HoleDiameter = 0.0365
	HolePitch    = 0.070
)

// DieStep is the stepper die step in mm used for the standard keys.
const DieStep = 9.6

type placement struct {
	quad mask.Quadrant
	refs []gds.Ref
}

// Design is the generated mask set.
type Design struct {
	Reticle *mask.QuadrantMask
	Wafer   *mask.Mask
}

// Build generates the reticle and the wafer-scale EBL mask.
func Build(opts ...mask.Option) (*Design, error) {
	q := mask.NewQuadrantMask(ReticleName, opts...)

	if err := addAlignment(q); err != nil {
		return nil, err
	}
	corners := ebl.NewCorners(Layer)
	steps := []placement{
		{mask.LowerRight, []gds.Ref{bottomGates(), testBox(gds.Pt(1000, 1000), "LR")}},
		{mask.LowerLeft, []gds.Ref{testBox(gds.Pt(1300, 1000), "LL"), topGates()}},
		{mask.UpperRight, []gds.Ref{corners.Marks(), ebl.QuadrantCrosses(Layer)}},
		{mask.LowerRight, []gds.Ref{corners.Complementary()}},
		{mask.UpperLeft, []gds.Ref{ebl.NabityMarks(Layer), contacts(), topGateOverlap()}},
	}
	for _, s := range steps {
		if err := q.AddToQuadrant(s.quad, s.refs...); err != nil {
			return nil, fmt.Errorf("superlattice: %s: %w", s.quad, err)
		}
	}

	wafer, err := q.MakeWaferScaleGDS(mask.WaferScalePrecision)
	if err != nil {
		return nil, fmt.Errorf("superlattice: %w", err)
	}
	addHoleLattice(wafer.Top())
	wafer.Top().AddRef(ebl.DoseMarks(EBLLayer))

	gds.Logger().Info("superlattice design built", "reticle", q.Name(), "wafer", wafer.Name())
	return &Design{Reticle: q, Wafer: wafer}, nil
}

func addAlignment(q *mask.QuadrantMask) error {
	global := mask.DefaultAlignment()
	global.DieStep = DieStep
	global.Position = gds.Pt(-17000, -17000)
	global.Layer = Layer
	if err := q.AddAlignmentMark(mask.GlobalMark, mask.UpperRight, global); err != nil {
		return fmt.Errorf("superlattice: global marks: %w", err)
	}

	local := global
	local.Position = gds.Pt(-18000, -18000)
	if err := q.AddAlignmentMark(mask.LocalMark, mask.UpperRight, local); err != nil {
		return fmt.Errorf("superlattice: local marks: %w", err)
	}
	return nil
}

// gatePoints outlines a gate lead ending in a square pad of side
// lattice at the device site.
func gatePoints(lattice float64) []gds.Point {
	h := lattice / 2
	return gds.Points(
		100, 100, 100, -100, 30, -100, 30, -650,
		-170, -650, -170, -700, -190, -700, -190, -875,
		-198, -875, -198, -900, -200+h, -900, -200+h, -900-lattice,
		-200-h, -900-lattice, -200-h, -900, -202, -900, -202, -875,
		-210, -875, -210, -700, -230, -700, -230, -590,
		-30, -590, -30, -100, -100, -100, -100, 100,
	)
}

// gatePair places two gates with pads of 1x and 2x unit 21 mm apart,
// arrayed over two die rows.
func gatePair(name string, unit, x float64, mirror bool) *gds.Array {
	pair := gds.NewCell(name + "_cell_ref")
	for i := 0; i < 2; i++ {
		g := gds.NewBoundary(gatePoints(unit*float64(i+1)), Layer, 0).Scale(5)
		if mirror {
			g = g.ReflectY()
		}
		c := gds.NewCell(name + "_cell_i")
		c.Add(g)
		pair.AddRef(gds.NewReference(c, gds.Pt(21000*float64(i), 0)))
	}
	return gds.NewArray(pair, 1, 2, gds.Pt(0, 21000), gds.Pt(x, -6000))
}

func bottomGates() *gds.Array {
	return gatePair("bottom_gate", 5, -9500, false)
}

func topGates() *gds.Array {
	return gatePair("top_gate", 6, -11500, true)
}

// testBox is a 600 µm square captioned below in 10 µm pixel text.
func testBox(at gds.Point, caption string) *gds.Reference {
	c := gds.NewCell("text_box_cell")
	c.Add(gds.Rectangle(gds.Pt(-300, -300), gds.Pt(300, 300), Layer))
	c.Add(gds.Text(caption, gds.Pt(-300, -450), 10, Layer)...)
	return gds.NewReference(c, at)
}

var (
	contactAngle1 = gds.Points(
		-95, 32.5, -110, 32.5, -635, 510, -800, 510, -800, 700,
		-1000, 700, -1000, 500, -800, 500, -645, 500, -120, 26.5, -95, 26.5,
	)
	contactAngle2 = gds.Points(
		-95, 19.5, -140, 19.5, -665, 210, -800, 210, -800, 400,
		-1000, 400, -1000, 200, -800, 200, -675, 200, -150, 12.5, -95, 12.5,
	)
	contactStraight = gds.Points(
		-95, 5.5, -800, 5.5, -800, 100, -1000, 100,
		-1000, -100, -800, -100, -800, -5.5, -95, -5.5,
	)
)

// contacts fans eighteen contact leads out from each die centre: three
// leads per side, mirrored into all four directions.
func contacts() *gds.Array {
	c := gds.NewCell("contact_base_cell")
	orient := []func(*gds.Boundary) *gds.Boundary{
		func(b *gds.Boundary) *gds.Boundary { return b },
		func(b *gds.Boundary) *gds.Boundary { return b.ReflectX() },
		func(b *gds.Boundary) *gds.Boundary { return b.ReflectY() },
		func(b *gds.Boundary) *gds.Boundary { return b.ReflectY().ReflectX() },
		func(b *gds.Boundary) *gds.Boundary { return b.Rotate(90) },
		func(b *gds.Boundary) *gds.Boundary { return b.ReflectX().Rotate(90) },
	}
	for _, o := range orient {
		for _, pts := range [][]gds.Point{contactStraight, contactAngle1, contactAngle2} {
			c.Add(o(gds.NewBoundary(pts, Layer, 0)).Scale(5))
		}
	}
	return gds.NewArray(c, 2, 2, gds.Pt(ebl.DiePitch, ebl.DiePitch), ebl.DieOrigin)
}

func topGateOverlap() *gds.Array {
	pts := gds.Points(
		100, 100, 100, -100, 30, -100, 30, -650,
		-170, -650, -170, -700, -190, -700, -230, -700,
		-230, -590, -30, -590, -30, -100, -100, -100, -100, 100,
	)
	c := gds.NewCell("top_gate_overlap")
	c.Add(gds.NewBoundary(pts, Layer, 0).Scale(5).ReflectY())
	return gds.NewArray(c, 2, 2, gds.Pt(ebl.DiePitch, ebl.DiePitch), gds.Pt(-11500, -6000))
}

// HoleArrays are the four hole lattice patches, each given by its
// column and row count and lower-left hole.
var HoleArrays = []struct {
	Cols, Rows int
	Origin     gds.Point
}{
	{115, 90, gds.Pt(-2104, -2106)},
	{115, 90, gds.Pt(-2104, 2094)},
	{200, 180, gds.Pt(2093, 2088)},
	{200, 180, gds.Pt(2093, -2112)},
}

func addHoleLattice(top *gds.Cell) {
	hole := ebl.Hole(HoleDiameter, EBLLayer)
	for _, a := range HoleArrays {
		top.AddRef(gds.NewArray(hole, a.Cols, a.Rows, gds.Pt(HolePitch, HolePitch), a.Origin))
	}
}
