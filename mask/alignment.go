package mask

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gogpu/gds"
)

// MarkKind selects an alignment mark family.
type MarkKind int

const (
	// GlobalMark is the wafer-level alignment key.
	GlobalMark MarkKind = iota
	// LocalMark is the die-level dark field (DFAS) key.
	LocalMark
)

func (k MarkKind) String() string {
	switch k {
	case GlobalMark:
		return "global"
	case LocalMark:
		return "local"
	}
	return fmt.Sprintf("MarkKind(%d)", int(k))
}

// ParseMarkKind parses "global" or "local".
func ParseMarkKind(s string) (MarkKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "global":
		return GlobalMark, nil
	case "local":
		return LocalMark, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrMarkKind, s)
}

// SourceLayer is the layer the mark is drawn on in its library.
func (k MarkKind) SourceLayer() int {
	if k == LocalMark {
		return 2
	}
	return 1
}

// CellName is the mark cell in its library.
func (k MarkKind) CellName() string {
	if k == LocalMark {
		return "DFAS_SOLID_POS"
	}
	return TopCell
}

func (k MarkKind) valid() bool {
	return k == GlobalMark || k == LocalMark
}

// AlignmentOptions positions an alignment mark within a quadrant.
type AlignmentOptions struct {
	// StandardKeys places a second key offset along x so the stepper's
	// standard keys can be used.
	StandardKeys bool
	// DieStep is the x spacing between dies in mm.
	DieStep float64
	// Aperture is the spacing between the stepper objectives in mm.
	Aperture float64
	// Position of the first mark relative to the quadrant centre.
	Position gds.Point
	// Layer the mark is drawn on.
	Layer int
}

// DefaultAlignment returns standard keys for a 7.692 mm die step on
// layer 1.
func DefaultAlignment() AlignmentOptions {
	return AlignmentOptions{
		StandardKeys: true,
		DieStep:      7.692,
		Aperture:     63.5,
		Layer:        1,
	}
}

// StandardKeyOffset returns the reticle-scale x offset in micrometres
// between the two standard keys: the part of the aperture left over
// after a whole number of die steps, scaled by the reticle factor and
// rounded half away from zero. Decimal arithmetic keeps inputs such as
// 63.5 and 9.6 from picking up binary rounding error.
func StandardKeyOffset(aperture, dieStep, factor float64) (int64, error) {
	d := decimal.NewFromFloat(dieStep)
	if !d.IsPositive() {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDieStep, dieStep)
	}
	a := decimal.NewFromFloat(aperture)
	steps := a.Div(d).Floor()
	residual := a.Sub(d.Mul(steps))
	scale := decimal.NewFromFloat(factor).Mul(decimal.NewFromInt(1000))
	return residual.Mul(scale).Round(0).IntPart(), nil
}

// AddAlignmentMark copies the mark of the given kind from the mark
// library as AlignmentMark, moves it from its library layer to
// opt.Layer and places it in the quadrant at opt.Position. With
// StandardKeys a second reference is placed StandardKeyOffset to the
// right. The mask is unchanged when an error is returned.
func (q *QuadrantMask) AddAlignmentMark(kind MarkKind, quad Quadrant, opt AlignmentOptions) error {
	if err := q.mutable(); err != nil {
		return err
	}
	if !kind.valid() {
		return fmt.Errorf("%w: %v", ErrMarkKind, kind)
	}
	target, err := q.Quadrant(quad)
	if err != nil {
		return err
	}

	var offset int64
	if opt.StandardKeys {
		offset, err = StandardKeyOffset(opt.Aperture, opt.DieStep, q.opts.factor)
		if err != nil {
			return err
		}
	}

	lib, err := q.opts.marks.Marks(kind)
	if err != nil {
		return fmt.Errorf("mask: %s alignment marks: %w", kind, err)
	}
	src, ok := lib.Cell(kind.CellName())
	if !ok {
		return fmt.Errorf("%w: %s has no %s", ErrMarkMissing, lib.Name(), kind.CellName())
	}
	mark := src.RemapLayers(map[int]int{kind.SourceLayer(): opt.Layer}).Copy(MarkCell)

	target.AddRef(gds.NewReference(mark, opt.Position))
	if opt.StandardKeys {
		second := opt.Position.Add(gds.Pt(float64(offset), 0))
		target.AddRef(gds.NewReference(mark, second))
	}
	gds.Logger().Debug("alignment mark added",
		"kind", kind, "quadrant", quad, "layer", opt.Layer, "standard_keys", opt.StandardKeys, "offset", offset)
	return nil
}
