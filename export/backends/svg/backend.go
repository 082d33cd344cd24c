// Package svg renders layout previews as SVG documents.
//
// Coordinates are written in layout units inside a group that flips the
// y axis, so the document's viewBox matches the layout bounds.
package svg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/gogpu/gds"
	"github.com/gogpu/gds/export"
)

func init() {
	export.Register("svg", func() export.Backend {
		return New()
	}, ".svg")
}

// ErrNotFinished is returned by output methods called before End.
var ErrNotFinished = errors.New("svg: drawing not finished")

// Backend accumulates an SVG document in memory.
type Backend struct {
	buf      bytes.Buffer
	bounds   gds.Rect
	opacity  float64
	finished bool
}

var (
	_ export.LabelBackend  = (*Backend)(nil)
	_ export.WriterBackend = (*Backend)(nil)
	_ export.FileBackend   = (*Backend)(nil)
)

// New creates an SVG backend.
func New() *Backend {
	return &Backend{opacity: 0.6}
}

func (b *Backend) printf(format string, a ...any) {
	fmt.Fprintf(&b.buf, format, a...)
}

// Begin writes the document header with a viewBox covering bounds.
func (b *Backend) Begin(bounds gds.Rect) error {
	if bounds.Empty() {
		return export.ErrEmpty
	}
	b.buf.Reset()
	b.bounds = bounds
	b.finished = false
	b.printf(`<?xml version="1.0"?>
<svg version="1.1" xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g">
<g transform="scale(1,-1)">
`, bounds.Min.X, -bounds.Max.Y, bounds.Width(), bounds.Height())
	return nil
}

// Polygon writes a filled polygon.
func (b *Backend) Polygon(layer int, points []gds.Point) {
	b.printf(`<polygon class="layer%d" points="%s" fill="%s" fill-opacity="%g"/>`+"\n",
		layer, pointList(points), hex(export.LayerColor(layer).Color()), b.opacity)
}

// Path writes a stroked polyline.
func (b *Backend) Path(layer int, points []gds.Point, width float64) {
	b.printf(`<polyline class="layer%d" points="%s" fill="none" stroke="%s" stroke-width="%g" stroke-opacity="%g"/>`+"\n",
		layer, pointList(points), hex(export.LayerColor(layer).Color()), width, b.opacity)
}

// Label writes an upright text element anchored at the label position.
func (b *Backend) Label(layer int, text string, at gds.Point) {
	var esc strings.Builder
	_ = xml.EscapeText(&esc, []byte(text))
	b.printf(`<text class="layer%d" x="%g" y="%g" transform="scale(1,-1)" fill="%s">%s</text>`+"\n",
		layer, at.X, -at.Y, hex(export.LayerColor(layer).Color()), esc.String())
}

// End closes the document.
func (b *Backend) End() error {
	b.printf("</g>\n</svg>\n")
	b.finished = true
	return nil
}

// Bytes returns the finished document.
func (b *Backend) Bytes() []byte {
	return b.buf.Bytes()
}

// WriteTo writes the finished document.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if !b.finished {
		return 0, ErrNotFinished
	}
	n, err := w.Write(b.buf.Bytes())
	return int64(n), err
}

// SaveToFile writes the finished document to path.
func (b *Backend) SaveToFile(path string) error {
	if !b.finished {
		return ErrNotFinished
	}
	return os.WriteFile(path, b.buf.Bytes(), 0o644)
}

func pointList(points []gds.Point) string {
	var sb strings.Builder
	for i, p := range points {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%g,%g", p.X, p.Y)
	}
	return sb.String()
}

func hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}
