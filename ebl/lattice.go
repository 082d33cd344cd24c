package ebl

import (
	"errors"
	"fmt"

	"github.com/gogpu/gds"
)

// ErrTooManySites is returned when a coded lattice has more rows or
// columns than its 8-bit site code can number.
var ErrTooManySites = errors.New("ebl: lattice exceeds 256 rows or columns")

// Lattice describes a rectangular mark lattice.
type Lattice struct {
	Rows, Cols int
	// RowPitch is the distance between consecutive rows, ColPitch
	// between consecutive columns.
	RowPitch, ColPitch float64
	Layer              int
}

// DefaultLattice is a 159 x 159 lattice with 300 um pitch, covering a
// 47.4 mm square.
func DefaultLattice() Lattice {
	return Lattice{Rows: 159, Cols: 159, RowPitch: 300, ColPitch: 300}
}

// BasicOrigin is where BasicMarks places the lattice's first cross.
var BasicOrigin = gds.Pt(-23000, -23000)

// crossPoints is a plus sign 60 um across with 10 um arms.
var crossPoints = gds.Points(
	-5, 30, 5, 30, 5, 5, 30, 5, 30, -5,
	5, -5, 5, -30, -5, -30, -5, -5, -30, -5,
	-30, 5, -5, 5,
)

// BasicMarks returns a cross at every lattice site. Row i is placed at
// x = i*RowPitch and column j at y = j*ColPitch, and the lattice cell is
// referenced at BasicOrigin.
func BasicMarks(l Lattice) *gds.Reference {
	cross := gds.NewCell("single_cross")
	cross.Add(gds.NewBoundary(crossPoints, l.Layer, 0))

	marks := gds.NewCell("alignmentMarkCell")
	marks.AddRef(gds.NewArray(cross, l.Rows, l.Cols, gds.Pt(l.RowPitch, l.ColPitch), gds.Point{}))
	return gds.NewReference(marks, BasicOrigin)
}

// qrRowBits and qrColBits are the dot positions of the row and column
// code bits, least significant first.
var (
	qrRowBits = [8]gds.Point{
		{X: 22.5, Y: 7.5}, {X: 7.5, Y: 7.5}, {X: -7.5, Y: 7.5}, {X: -22.5, Y: 7.5},
		{X: 22.5, Y: 22.5}, {X: 7.5, Y: 22.5}, {X: -7.5, Y: 22.5}, {X: -22.5, Y: 22.5},
	}
	qrColBits = [8]gds.Point{
		{X: 22.5, Y: -22.5}, {X: 7.5, Y: -22.5}, {X: -7.5, Y: -22.5}, {X: -22.5, Y: -22.5},
		{X: 22.5, Y: -7.5}, {X: 7.5, Y: -7.5}, {X: -7.5, Y: -7.5}, {X: -22.5, Y: -7.5},
	}
)

// QRDotRadius is the radius of a code dot.
const QRDotRadius = 5.0

// QRMarks returns a coded mark at every lattice site: two orientation
// bars above a grid of dots spelling the site's row and column index in
// binary. The lattice is centred on the origin.
func QRMarks(l Lattice) (*gds.Reference, error) {
	if l.Rows > 256 || l.Cols > 256 {
		return nil, fmt.Errorf("%w: %d x %d", ErrTooManySites, l.Rows, l.Cols)
	}
	dot := gds.NewCell("circle_cell")
	dot.Add(gds.Disk(gds.Point{}, QRDotRadius, l.Layer, gds.DefaultDiskSegments))

	bar := gds.NewCell("mark0")
	bar.Add(gds.Rectangle(gds.Pt(-5, -2.5), gds.Pt(5, 2.5), l.Layer))
	tick := gds.NewCell("mark1")
	tick.Add(gds.Rectangle(gds.Pt(-2.5, -2.5), gds.Pt(2.5, 2.5), l.Layer))

	codes := gds.NewCell("qr_codes")
	for i := 0; i < l.Rows; i++ {
		for j := 0; j < l.Cols; j++ {
			site := gds.NewCell(fmt.Sprintf("qr_%d_%d", i, j))
			site.AddRef(gds.NewReference(tick, gds.Pt(-10, 40)))
			site.AddRef(gds.NewReference(bar, gds.Pt(-25, 40)))
			for k := 0; k < 8; k++ {
				if i&(1<<k) != 0 {
					site.AddRef(gds.NewReference(dot, qrRowBits[k]))
				}
			}
			for k := 0; k < 8; k++ {
				if j&(1<<k) != 0 {
					site.AddRef(gds.NewReference(dot, qrColBits[k]))
				}
			}
			codes.AddRef(gds.NewReference(site, gds.Pt(float64(j)*l.ColPitch, float64(i)*l.RowPitch)))
		}
	}
	origin := gds.Pt(-float64(l.Rows)*l.RowPitch/2, -float64(l.Cols)*l.ColPitch/2)
	gds.Logger().Debug("qr lattice built", "rows", l.Rows, "cols", l.Cols)
	return gds.NewReference(codes, origin), nil
}

// DecodeQR reads the row and column index back from the dot offsets of
// a coded site, relative to the site origin.
func DecodeQR(dots []gds.Point) (row, col int) {
	for _, p := range dots {
		for k := range qrRowBits {
			if p.Near(qrRowBits[k], 1e-6) {
				row |= 1 << k
			}
			if p.Near(qrColBits[k], 1e-6) {
				col |= 1 << k
			}
		}
	}
	return row, col
}
