package export

import (
	"io"

	"github.com/gogpu/gds"
)

// Backend receives flattened geometry in layout coordinates and turns
// it into an output format. Backends own the mapping from layout units
// to their device space.
type Backend interface {
	// Begin starts a drawing covering bounds. It must be called before
	// any drawing method.
	Begin(bounds gds.Rect) error

	// Polygon fills a closed polygon.
	Polygon(layer int, points []gds.Point)

	// Path strokes an open centre line of the given width.
	Path(layer int, points []gds.Point, width float64)

	// End finishes the drawing. Output methods are valid afterwards.
	End() error
}

// LabelBackend is implemented by backends that can draw text labels.
type LabelBackend interface {
	Backend
	Label(layer int, text string, at gds.Point)
}

// WriterBackend writes its output to a stream.
type WriterBackend interface {
	Backend
	WriteTo(w io.Writer) (int64, error)
}

// FileBackend saves its output to a file.
type FileBackend interface {
	Backend
	SaveToFile(path string) error
}
