// Package export renders layout cells to preview images.
//
// A cell is flattened and played back, layer by layer, into a Backend.
// Backends register themselves by name following the database/sql
// driver pattern, so callers select an output format with a blank
// import:
//
//	import _ "github.com/gogpu/gds/export/backends/raster"
//
//	b, err := export.NewBackend("raster")
//	if err != nil {
//	    return err
//	}
//	if err := export.Render(cell, b); err != nil {
//	    return err
//	}
//	err = b.(export.FileBackend).SaveToFile("reticle.png")
package export
