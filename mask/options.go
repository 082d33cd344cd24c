package mask

import "github.com/gogpu/gds"

// GCA200 reticle geometry, in reticle-scale micrometres.
const (
	// ReticleFactor is the stepper reduction from reticle to wafer.
	ReticleFactor = 5.0

	// QuadrantOffset is the distance of each quadrant centre from the
	// reticle centre along both axes.
	QuadrantOffset = 18550.0

	// BoundingBoxHalf is the half-width of the writable window outline.
	BoundingBoxHalf = 37100.0

	// BoundingBoxLayer carries the writable window outline.
	BoundingBoxLayer = 2
)

// Cell names used by the mask model.
const (
	TopCell       = "TOP"
	ImportCell    = "IMPORT_MASK_TOP"
	ContainerCell = "container_cell"
	BoundaryCell  = "boundary"
	MarkCell      = "AlignmentMark"

	// WaferScaleSuffix is appended to the mask name by MakeWaferScaleGDS.
	WaferScaleSuffix = "_ws"
)

// WaferScalePrecision is the database unit commonly used for wafer-scale
// EBL output, fine enough to keep 1/5 of a nanometre grid.
const WaferScalePrecision = 1.25e-10

// Option configures a Mask during creation.
//
// Example:
//
//	tmpl, _ := gds.ReadFile("OpticalMaskTemplate2.gds")
//	m := mask.NewQuadrantMask("device", mask.WithTemplate(tmpl))
type Option func(*options)

type options struct {
	precision float64
	factor    float64
	template  *gds.Layout
	marks     MarkSource
}

func defaultOptions() options {
	return options{
		precision: gds.DefaultPrecision,
		factor:    ReticleFactor,
		marks:     BuiltinMarks{},
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithPrecision sets the database unit of the mask layout in metres.
func WithPrecision(precision float64) Option {
	return func(o *options) {
		if precision > 0 {
			o.precision = precision
		}
	}
}

// WithReticleFactor overrides the reticle-to-wafer reduction used by
// the wafer-scale conversions.
func WithReticleFactor(k float64) Option {
	return func(o *options) {
		if k > 0 {
			o.factor = k
		}
	}
}

// WithTemplate merges the cells of a reticle template into every
// reticle. A template cell replaces the mask cell of the same name.
func WithTemplate(t *gds.Layout) Option {
	return func(o *options) {
		o.template = t
	}
}

// WithMarks selects the alignment mark library.
func WithMarks(src MarkSource) Option {
	return func(o *options) {
		if src != nil {
			o.marks = src
		}
	}
}
