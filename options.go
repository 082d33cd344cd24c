package gds

import "time"

// Default layout units: micrometre user unit, nanometre database unit.
const (
	DefaultUnit      = 1e-6
	DefaultPrecision = 1e-9
)

// LayoutOption configures a Layout during creation.
//
// Example:
//
//	// Wafer-scale EBL layouts need a finer database grid.
//	l := gds.NewLayout("WAFER", gds.WithPrecision(1.25e-10))
type LayoutOption func(*layoutOptions)

// layoutOptions holds optional configuration for Layout creation.
type layoutOptions struct {
	unit      float64
	precision float64
	modified  time.Time
}

// defaultLayoutOptions returns the default layout options.
func defaultLayoutOptions() layoutOptions {
	return layoutOptions{
		unit:      DefaultUnit,
		precision: DefaultPrecision,
	}
}

// WithUnit sets the user unit in metres.
func WithUnit(unit float64) LayoutOption {
	return func(o *layoutOptions) {
		if unit > 0 {
			o.unit = unit
		}
	}
}

// WithPrecision sets the database unit in metres. All coordinates are
// snapped to this grid when the layout is written.
func WithPrecision(precision float64) LayoutOption {
	return func(o *layoutOptions) {
		if precision > 0 {
			o.precision = precision
		}
	}
}

// WithTimestamp fixes the modification time written to BGNLIB and
// BGNSTR records. The zero time means "now at write time".
func WithTimestamp(t time.Time) LayoutOption {
	return func(o *layoutOptions) {
		o.modified = t
	}
}

// ReadOption configures Read.
type ReadOption func(*readOptions)

type readOptions struct {
	layers map[int]int
}

// WithLayerMap translates layers while reading: an element on layer k
// is placed on layers[k]. Layers missing from the map are kept.
func WithLayerMap(layers map[int]int) ReadOption {
	return func(o *readOptions) {
		o.layers = layers
	}
}
