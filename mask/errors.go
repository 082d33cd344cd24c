package mask

import "errors"

var (
	// ErrInvalidQuadrant is returned for a quadrant name outside
	// upper_left, upper_right, lower_right and lower_left.
	ErrInvalidQuadrant = errors.New("mask: invalid quadrant")

	// ErrMissingQuadrant is returned when an opened layout lacks one of
	// the four quadrant references under TOP.
	ErrMissingQuadrant = errors.New("mask: quadrant missing from TOP")

	// ErrLayerMap is returned when a layer map is not a one-to-one
	// assignment of four layers to the four quadrants.
	ErrLayerMap = errors.New("mask: layer map must assign one layer to each quadrant")

	// ErrUnmappedLayer is returned when a wafer-scale element sits on a
	// layer the layer map does not route.
	ErrUnmappedLayer = errors.New("mask: layer not mapped to a quadrant")

	// ErrAmbiguousTopLevel is returned when an imported layout has more
	// than one top-level cell.
	ErrAmbiguousTopLevel = errors.New("mask: GDSII file has more than one top-level cell")

	// ErrNoTopLevel is returned when an imported layout has no cells.
	ErrNoTopLevel = errors.New("mask: GDSII file has no top-level cell")

	// ErrMarkKind is returned for an unknown alignment mark kind.
	ErrMarkKind = errors.New("mask: unknown alignment mark kind")

	// ErrMarkMissing is returned when a mark library lacks the expected cell.
	ErrMarkMissing = errors.New("mask: alignment mark cell not found")

	// ErrInvalidDieStep is returned when the die step is not positive.
	ErrInvalidDieStep = errors.New("mask: die step must be positive")

	// ErrPersisted is returned when a saved mask is modified.
	ErrPersisted = errors.New("mask: mask already saved")

	// ErrNotSupported is returned by capabilities that are declared but
	// not implemented, such as design-rule checking.
	ErrNotSupported = errors.New("mask: not supported")
)
