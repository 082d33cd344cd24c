package ebl

import "github.com/gogpu/gds"

// Die lattice of the reticle quadrants: four dies 21 mm apart at
// reticle scale.
const (
	DiePitch = 21000.0
	DieRows  = 2
	DieCols  = 2
)

// DieOrigin is the lower-left die centre used by the corner marks.
var DieOrigin = gds.Pt(-10500, -10525)

var quadrantCrossPoints = gds.Points(
	5, 500, 5, 5, 500, 5, 500, -5, 5, -5, 5, -500,
	-5, -500, -5, -5, -500, -5, -500, 5, -5, 5, -5, 500,
)

// QuadrantCrosses returns a 3 x 3 array of 1 mm crosses on a 15 mm pitch
// centred on the quadrant.
func QuadrantCrosses(layer int) *gds.Array {
	c := gds.NewCell("quadrant_alignment_marks")
	c.Add(gds.NewBoundary(quadrantCrossPoints, layer, 0))
	return gds.NewArray(c, 3, 3, gds.Pt(15000, 15000), gds.Pt(-15000, -15000))
}

// cornerPoints is an L with 9 um legs, its corner at the origin.
var cornerPoints = gds.Points(8, 1, -1, 1, -1, -8, 1, -8, 1, -1, 8, -1)

// Corners holds one L-shaped mark cell per orientation, at reticle
// scale. The corner of each L points at the die it frames.
type Corners struct {
	UR, BR, BL, UL *gds.Cell
}

// NewCorners builds the four oriented corner marks on layer.
func NewCorners(layer int) Corners {
	l := gds.NewBoundary(cornerPoints, layer, 0)
	mk := func(name string, angle float64) *gds.Cell {
		c := gds.NewCell(name)
		c.Add(l.Rotate(angle).Scale(5))
		return c
	}
	return Corners{
		UR: mk("alignment_mark_cell_ur", -90),
		BR: mk("alignment_mark_cell_br", -180),
		BL: mk("alignment_mark_cell_bl", -270),
		UL: mk("alignment_mark_cell_ul", 0),
	}
}

// Marks frames every die with the four corner marks 125 um from its
// centre.
func (c Corners) Marks() *gds.Array {
	return c.frame("ebl_alignment_marks_cell", c.UR, c.BR, c.BL, c.UL)
}

// Complementary places the diagonally opposite marks, so that a layer
// exposed with Complementary nests inside a layer exposed with Marks.
func (c Corners) Complementary() *gds.Array {
	return c.frame("cebl_alignment_marks_cell", c.BL, c.UL, c.UR, c.BR)
}

func (c Corners) frame(name string, ur, br, bl, ul *gds.Cell) *gds.Array {
	f := gds.NewCell(name)
	f.AddRef(
		gds.NewReference(ur, gds.Pt(125, 125)),
		gds.NewReference(br, gds.Pt(125, -125)),
		gds.NewReference(bl, gds.Pt(-125, -125)),
		gds.NewReference(ul, gds.Pt(-125, 125)),
	)
	return gds.NewArray(f, DieCols, DieRows, gds.Pt(DiePitch, DiePitch), DieOrigin)
}

// NabityMarks returns the checkerboard marks of the Nabity NPGS pattern
// generator: two touching 15 um squares, repeated 2 x 2 on a 350 um
// pitch at every die.
func NabityMarks(layer int) *gds.Array {
	sq := gds.NewCell("square_cell")
	sq.Add(gds.Rectangle(gds.Pt(-7.5, -7.5), gds.Pt(7.5, 7.5), layer))

	mark := gds.NewCell("nabity_alignment_mark_cell")
	mark.AddRef(
		gds.NewReference(sq, gds.Pt(-7.5, -7.5)),
		gds.NewReference(sq, gds.Pt(7.5, 7.5)),
	)
	group := gds.NewCell("nabity_alignment_mark_array_cell")
	group.AddRef(gds.NewArray(mark, 2, 2, gds.Pt(350, 350), gds.Point{}))

	return gds.NewArray(group, DieCols, DieRows, gds.Pt(DiePitch, DiePitch), gds.Pt(-10675, -10700))
}

// DoseMarks returns wafer-scale marks that show whether an EBL exposure
// developed before etching: a pair of opposed corner Ls 15 um either side
// of each die centre, on a 4.2 mm die pitch.
func DoseMarks(layer int) *gds.Array {
	l := gds.NewBoundary(cornerPoints, layer, 0)
	br := gds.NewCell("ebl_dose_mark_br_cell")
	br.Add(l.Rotate(180))
	ul := gds.NewCell("ebl_dose_mark_ul_cell")
	ul.Add(l)

	c := gds.NewCell("dose_mark_cell_ws")
	c.AddRef(
		gds.NewReference(br, gds.Pt(15, -15)),
		gds.NewReference(ul, gds.Pt(-15, 15)),
	)
	return gds.NewArray(c, 2, 2, gds.Pt(4200, 4200), gds.Pt(-2100, -2106))
}

// Hole returns a cell holding one disk of the given diameter, the unit
// of a photonic hole lattice.
func Hole(diameter float64, layer int) *gds.Cell {
	c := gds.NewCell("hole")
	c.Add(gds.Disk(gds.Point{}, diameter/2, layer, gds.DefaultDiskSegments))
	return c
}
