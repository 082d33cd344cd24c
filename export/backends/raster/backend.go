// Package raster renders layout previews to PNG using the gg software
// renderer.
//
// Layout coordinates are scaled to a fixed output width with the y axis
// pointing up, as in the layout. Each layer is filled with its
// export.LayerColor at partial opacity so overlapping layers stay
// visible.
//
// # Example
//
//	import _ "github.com/gogpu/gds/export/backends/raster"
//
//	b := raster.NewBackend(raster.WithWidth(2048), raster.WithThumbnail(256))
//	if err := export.Render(cell, b); err != nil {
//	    return err
//	}
//	defer b.Close()
//	err := b.SaveToFile("reticle.png")
package raster

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"

	"github.com/gogpu/gds"
	"github.com/gogpu/gds/export"
)

func init() {
	export.Register("raster", func() export.Backend {
		return NewBackend()
	}, ".png")
}

// ErrNotStarted is returned by output methods called before Begin.
var ErrNotStarted = errors.New("raster: backend not started")

// Backend draws into a gg.Context.
type Backend struct {
	opts   options
	ctx    *gg.Context
	view   gds.Matrix
	scale  float64
	width  int
	height int
	err    error
}

var (
	_ export.Backend       = (*Backend)(nil)
	_ export.WriterBackend = (*Backend)(nil)
	_ export.FileBackend   = (*Backend)(nil)
)

// NewBackend creates a raster backend.
func NewBackend(opts ...Option) *Backend {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Backend{opts: o}
}

// Configure applies options to a backend obtained from the registry.
// It must be called before Begin.
func (b *Backend) Configure(opts ...Option) {
	for _, opt := range opts {
		opt(&b.opts)
	}
}

// Begin sizes the image so that bounds plus the margin fill the
// configured width.
func (b *Backend) Begin(bounds gds.Rect) error {
	if bounds.Empty() {
		return export.ErrEmpty
	}
	m := float64(b.opts.margin)
	extent := math.Max(bounds.Width(), bounds.Height())
	if extent == 0 {
		extent = 1
	}
	b.scale = (float64(b.opts.width) - 2*m) / extent
	b.width = b.opts.width
	b.height = int(math.Ceil(bounds.Height()*b.scale + 2*m))
	if bounds.Width() < bounds.Height() {
		b.width = int(math.Ceil(bounds.Width()*b.scale + 2*m))
	}
	b.width, b.height = max(b.width, 1), max(b.height, 1)

	// Flip y so the layout's upward axis points up in the image.
	b.view = gds.Translate(m, float64(b.height)-m).
		Multiply(gds.Scale(b.scale, -b.scale)).
		Multiply(gds.Translate(-bounds.Min.X, -bounds.Min.Y))

	if b.ctx != nil {
		_ = b.ctx.Close()
	}
	b.err = nil
	b.ctx = gg.NewContext(b.width, b.height)
	b.ctx.ClearWithColor(b.opts.background)
	gds.Logger().Debug("raster preview started", "width", b.width, "height", b.height, "scale", b.scale)
	return nil
}

// Polygon fills a polygon in its layer colour.
func (b *Backend) Polygon(layer int, points []gds.Point) {
	if b.ctx == nil || len(points) < 3 {
		return
	}
	b.ctx.SetFillBrush(gg.Solid(b.layerColor(layer)))
	b.ctx.SetFillRule(gg.FillRuleNonZero)
	b.trace(points)
	b.ctx.ClosePath()
	b.keep(b.ctx.Fill())
}

// Path strokes a centre line. Lines thinner than a pixel are drawn one
// pixel wide.
func (b *Backend) Path(layer int, points []gds.Point, width float64) {
	if b.ctx == nil || len(points) < 2 {
		return
	}
	b.ctx.SetStrokeBrush(gg.Solid(b.layerColor(layer)))
	b.ctx.SetLineWidth(math.Max(width*b.scale, 1))
	b.ctx.SetLineCap(gg.LineCapButt)
	b.ctx.SetLineJoin(gg.LineJoinMiter)
	b.trace(points)
	b.keep(b.ctx.Stroke())
}

// keep records the first drawing error for End.
func (b *Backend) keep(err error) {
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("raster: draw: %w", err)
	}
}

func (b *Backend) trace(points []gds.Point) {
	for i, p := range points {
		q := b.view.TransformPoint(p)
		if i == 0 {
			b.ctx.MoveTo(q.X, q.Y)
			continue
		}
		b.ctx.LineTo(q.X, q.Y)
	}
}

func (b *Backend) layerColor(layer int) gg.RGBA {
	c := export.LayerColor(layer)
	c.A = b.opts.opacity
	return c
}

// End finishes the drawing and reports the first fill or stroke
// failure.
func (b *Backend) End() error {
	if b.ctx == nil {
		return ErrNotStarted
	}
	return b.err
}

// Image returns the rendered image, or nil before Begin.
func (b *Backend) Image() image.Image {
	if b.ctx == nil {
		return nil
	}
	return b.ctx.Image()
}

// Output returns the image to be written: the thumbnail when one is
// configured, otherwise the full image.
func (b *Backend) Output() image.Image {
	img := b.Image()
	if img == nil || b.opts.thumbnail <= 0 {
		return img
	}
	return imaging.Fit(img, b.opts.thumbnail, b.opts.thumbnail, imaging.Lanczos)
}

// WriteTo encodes the output image as PNG.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if b.ctx == nil {
		return 0, ErrNotStarted
	}
	cw := &countingWriter{w: w}
	var err error
	if b.opts.thumbnail > 0 {
		err = imaging.Encode(cw, b.Output(), imaging.PNG)
	} else {
		err = b.ctx.EncodePNG(cw)
	}
	return cw.n, err
}

// SaveToFile writes the output image to path. The format follows the
// file extension when a thumbnail is configured, and is PNG otherwise.
func (b *Backend) SaveToFile(path string) error {
	if b.ctx == nil {
		return ErrNotStarted
	}
	if b.opts.thumbnail > 0 {
		return imaging.Save(b.Output(), path)
	}
	return b.ctx.SavePNG(path)
}

// Width returns the image width in pixels.
func (b *Backend) Width() int { return b.width }

// Height returns the image height in pixels.
func (b *Backend) Height() int { return b.height }

// Close releases the drawing context.
func (b *Backend) Close() error {
	if b.ctx == nil {
		return nil
	}
	err := b.ctx.Close()
	b.ctx = nil
	return err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
