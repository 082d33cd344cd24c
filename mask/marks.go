package mask

import (
	"fmt"

	"github.com/gogpu/gds"
)

// MarkSource supplies alignment mark libraries. The returned layout must
// hold a cell named kind.CellName() drawn on kind.SourceLayer().
type MarkSource interface {
	Marks(kind MarkKind) (*gds.Layout, error)
}

// FileMarks reads the mark libraries from GDSII files.
type FileMarks struct {
	Global string // e.g. gds/GlobalAlignmentMarks.gds
	Local  string // e.g. gds/DFAS_AlignmentMark.gds
}

// Marks implements MarkSource.
func (f FileMarks) Marks(kind MarkKind) (*gds.Layout, error) {
	var path string
	switch kind {
	case GlobalMark:
		path = f.Global
	case LocalMark:
		path = f.Local
	default:
		return nil, fmt.Errorf("%w: %v", ErrMarkKind, kind)
	}
	if path == "" {
		return nil, fmt.Errorf("%w: no %s mark file configured", ErrMarkMissing, kind)
	}
	return gds.ReadFile(path)
}

// BuiltinMarks generates simple cross keys so masks can be built without
// mark files. Global keys are a 1 mm cross, local keys a 400 um cross
// flanked by four solid squares.
type BuiltinMarks struct{}

// Marks implements MarkSource.
func (BuiltinMarks) Marks(kind MarkKind) (*gds.Layout, error) {
	l := gds.NewLayout(kind.String() + "_marks")
	c := gds.NewCell(kind.CellName())
	layer := kind.SourceLayer()
	switch kind {
	case GlobalMark:
		c.Add(cross(gds.Point{}, 1000, 40, layer)...)
	case LocalMark:
		c.Add(cross(gds.Point{}, 400, 20, layer)...)
		for _, p := range []gds.Point{gds.Pt(-120, 120), gds.Pt(120, 120), gds.Pt(120, -120), gds.Pt(-120, -120)} {
			c.Add(square(p, 80, layer))
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrMarkKind, kind)
	}
	l.Add(c)
	return l, nil
}

// cross returns two bars of the given span and width centred on p.
func cross(p gds.Point, span, width float64, layer int) []gds.Element {
	s, w := span/2, width/2
	return []gds.Element{
		gds.Rectangle(p.Add(gds.Pt(-s, -w)), p.Add(gds.Pt(s, w)), layer),
		gds.Rectangle(p.Add(gds.Pt(-w, -s)), p.Add(gds.Pt(w, s)), layer),
	}
}

func square(center gds.Point, side float64, layer int) *gds.Boundary {
	h := side / 2
	return gds.Rectangle(center.Add(gds.Pt(-h, -h)), center.Add(gds.Pt(h, h)), layer)
}
