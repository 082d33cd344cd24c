package gds

import "errors"

var (
	// ErrCycle is returned when a cell references itself directly or
	// through a chain of references.
	ErrCycle = errors.New("gds: cell reference cycle")

	// ErrUndefinedCell is returned when a GDSII reference names a
	// structure the library does not define.
	ErrUndefinedCell = errors.New("gds: reference to undefined cell")

	// ErrCoordinateRange is returned when a coordinate does not fit a
	// 32-bit database unit value at the layout precision.
	ErrCoordinateRange = errors.New("gds: coordinate out of range for precision")

	// ErrTooManyPoints is returned when a polygon exceeds the GDSII XY
	// record limit.
	ErrTooManyPoints = errors.New("gds: polygon has too many points")

	// ErrTooFewPoints is returned when a polygon has fewer than three
	// vertices.
	ErrTooFewPoints = errors.New("gds: polygon needs at least 3 points")

	// ErrLayerRange is returned when a layer, datatype, texttype or path
	// type does not fit the GDSII range 0..32767.
	ErrLayerRange = errors.New("gds: layer or datatype out of range")

	// ErrFormat is returned for structurally invalid GDSII streams.
	ErrFormat = errors.New("gds: invalid stream")
)
