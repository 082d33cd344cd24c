// Package gds is a small hierarchical layout library for photomask work.
//
// # Overview
//
// gds models a GDSII library as a tree of cells. A [Cell] holds
// polygons ([Boundary]), paths ([Path]) and annotations ([Label]) tagged
// with a layer number, plus references to other cells ([Reference],
// [Array]). Cells may be shared by many parents; the hierarchy is only
// expanded when it is flattened or exported.
//
// # Quick Start
//
//	import "github.com/gogpu/gds"
//
//	box := gds.NewCell("box")
//	box.Add(gds.Rectangle(gds.Pt(-300, -300), gds.Pt(300, 300), 1))
//
//	top := gds.NewCell("TOP")
//	top.AddRef(gds.NewArray(box, 2, 2, gds.Pt(21000, 21000), gds.Pt(-10500, -10500)))
//
//	lib := gds.NewLayout("MASK")
//	lib.Add(top)
//	err := lib.Save("mask.gds")
//
// # Coordinates
//
// Coordinates are float64 user units (micrometres by default). They are
// snapped to the database grid set by [WithPrecision] when a layout is
// written. Angles are in degrees, counter-clockwise, as in GDSII.
//
// # Transforms
//
// Elements never change in place. [Element.Transform] and the helpers on
// [Boundary] return new values, and [Cell.CopyScaled] rebuilds a whole
// hierarchy so derived layouts never share mutable state with their
// source.
//
// # Scope
//
// The package covers what mask composition needs: hierarchy, affine
// transforms, flattening and GDSII stream I/O. Boolean operations and
// design-rule checks are out of scope.
package gds
