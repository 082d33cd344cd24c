package gds

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/gogpu/gds/internal/stream"
)

// gdsVersion is the stream format release written to HEADER.
const gdsVersion = 600

// maxXYPoints is the number of points that fit one XY record.
const maxXYPoints = stream.MaxPayload / 8

// WriteTo encodes the layout as a GDSII stream. Cell names are made
// unique: when two distinct cells share a name, later ones get a
// numeric suffix.
func (l *Layout) WriteTo(w io.Writer) (int64, error) {
	cells, err := l.AllCells()
	if err != nil {
		return 0, err
	}
	names := uniqueNames(cells)

	sw := stream.NewWriter(w)
	enc := &encoder{
		w:     sw,
		scale: l.unit / l.precision,
		names: names,
	}
	stamp := l.modified
	if stamp.IsZero() {
		stamp = time.Now()
	}
	ts := timestamp(stamp)

	sw.Int16s(stream.Header, gdsVersion)
	sw.Int16s(stream.BgnLib, append(ts, ts...)...)
	sw.ASCII(stream.LibName, l.name)
	sw.Real8s(stream.Units, l.precision/l.unit, l.precision)
	for _, c := range cells {
		sw.Int16s(stream.BgnStr, append(ts, ts...)...)
		sw.ASCII(stream.StrName, names[c])
		if err := enc.cell(c); err != nil {
			return sw.Count(), fmt.Errorf("cell %q: %w", names[c], err)
		}
		sw.Empty(stream.EndStr)
	}
	sw.Empty(stream.EndLib)
	if err := sw.Flush(); err != nil {
		return sw.Count(), err
	}
	Logger().Info("gds: layout written", "library", l.name, "cells", len(cells), "bytes", sw.Count())
	return sw.Count(), nil
}

// Save writes the layout to a file. The file is closed on every path;
// a close error is reported when the write itself succeeded.
func (l *Layout) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	_, err = l.WriteTo(f)
	return err
}

func uniqueNames(cells []*Cell) map[*Cell]string {
	names := make(map[*Cell]string, len(cells))
	used := make(map[string]bool, len(cells))
	for _, c := range cells {
		name := c.name
		if name == "" {
			name = "CELL"
		}
		if used[name] {
			base := name
			for i := 1; used[name]; i++ {
				name = base + "_" + strconv.Itoa(i)
			}
			Logger().Debug("gds: renamed duplicate cell", "cell", base, "as", name)
		}
		used[name] = true
		names[c] = name
	}
	return names
}

func timestamp(t time.Time) []int16 {
	return []int16{
		int16(t.Year()), int16(t.Month()), int16(t.Day()),
		int16(t.Hour()), int16(t.Minute()), int16(t.Second()),
	}
}

type encoder struct {
	w     *stream.Writer
	scale float64
	names map[*Cell]string
}

func (e *encoder) cell(c *Cell) error {
	for _, el := range c.elements {
		var err error
		switch v := el.(type) {
		case *Boundary:
			err = e.boundary(v)
		case *Path:
			err = e.path(v)
		case *Label:
			err = e.label(v)
		default:
			err = fmt.Errorf("%w: unsupported element %T", ErrFormat, el)
		}
		if err != nil {
			return err
		}
	}
	for _, r := range c.refs {
		if r.Cell() == nil {
			return fmt.Errorf("%w: reference without target", ErrFormat)
		}
		var err error
		switch v := r.(type) {
		case *Reference:
			err = e.sref(v)
		case *Array:
			err = e.aref(v)
		}
		if err != nil {
			return err
		}
	}
	return e.w.Err()
}

func (e *encoder) coords(pts []Point, closed bool) ([]int32, error) {
	n := len(pts)
	if closed {
		n++
	}
	if n > maxXYPoints {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyPoints, n, maxXYPoints)
	}
	out := make([]int32, 0, 2*n)
	for _, p := range pts {
		x, err := e.db(p.X)
		if err != nil {
			return nil, err
		}
		y, err := e.db(p.Y)
		if err != nil {
			return nil, err
		}
		out = append(out, x, y)
	}
	if closed && len(pts) > 0 {
		out = append(out, out[0], out[1])
	}
	return out, nil
}

func (e *encoder) db(v float64) (int32, error) {
	r := math.Round(v * e.scale)
	if r > math.MaxInt32 || r < math.MinInt32 || math.IsNaN(r) {
		return 0, fmt.Errorf("%w: %g", ErrCoordinateRange, v)
	}
	return int32(r), nil
}

// int16Field checks a layer-like value against the GDSII range.
func int16Field(name string, v int) (int16, error) {
	if v < 0 || v > math.MaxInt16 {
		return 0, fmt.Errorf("%w: %s %d", ErrLayerRange, name, v)
	}
	return int16(v), nil
}

func layerFields(layer, datatype int, typeName string) (int16, int16, error) {
	l, err := int16Field("layer", layer)
	if err != nil {
		return 0, 0, err
	}
	d, err := int16Field(typeName, datatype)
	if err != nil {
		return 0, 0, err
	}
	return l, d, nil
}

func (e *encoder) boundary(b *Boundary) error {
	if len(b.points) < 3 {
		return fmt.Errorf("%w: got %d", ErrTooFewPoints, len(b.points))
	}
	layer, datatype, err := layerFields(b.layer, b.datatype, "datatype")
	if err != nil {
		return err
	}
	xy, err := e.coords(b.points, true)
	if err != nil {
		return err
	}
	e.w.Empty(stream.Boundary)
	e.w.Int16s(stream.Layer, layer)
	e.w.Int16s(stream.Datatype, datatype)
	e.w.Int32s(stream.XY, xy...)
	e.w.Empty(stream.EndEl)
	return nil
}

func (e *encoder) path(p *Path) error {
	layer, datatype, err := layerFields(p.layer, p.datatype, "datatype")
	if err != nil {
		return err
	}
	pathType, err := int16Field("path type", int(p.pathType))
	if err != nil {
		return err
	}
	xy, err := e.coords(p.points, false)
	if err != nil {
		return err
	}
	width, err := e.db(p.width)
	if err != nil {
		return err
	}
	e.w.Empty(stream.Path)
	e.w.Int16s(stream.Layer, layer)
	e.w.Int16s(stream.Datatype, datatype)
	e.w.Int16s(stream.PathType, pathType)
	e.w.Int32s(stream.Width, width)
	e.w.Int32s(stream.XY, xy...)
	e.w.Empty(stream.EndEl)
	return nil
}

func (e *encoder) label(l *Label) error {
	layer, textType, err := layerFields(l.layer, l.textType, "texttype")
	if err != nil {
		return err
	}
	xy, err := e.coords([]Point{l.position}, false)
	if err != nil {
		return err
	}
	e.w.Empty(stream.Text)
	e.w.Int16s(stream.Layer, layer)
	e.w.Int16s(stream.TextType, textType)
	if l.mag != 1 && l.mag != 0 {
		e.w.Bits(stream.STrans, 0)
		e.w.Real8s(stream.Mag, l.mag)
	}
	e.w.Int32s(stream.XY, xy...)
	e.w.ASCII(stream.String, l.text)
	e.w.Empty(stream.EndEl)
	return nil
}

func (e *encoder) strans(rotation, mag float64, reflect bool) {
	if rotation == 0 && (mag == 0 || mag == 1) && !reflect {
		return
	}
	var bits uint16
	if reflect {
		bits |= stream.STransReflection
	}
	e.w.Bits(stream.STrans, bits)
	if mag != 0 && mag != 1 {
		e.w.Real8s(stream.Mag, mag)
	}
	if rotation != 0 {
		e.w.Real8s(stream.Angle, rotation)
	}
}

func (e *encoder) sref(r *Reference) error {
	xy, err := e.coords([]Point{r.Origin}, false)
	if err != nil {
		return err
	}
	e.w.Empty(stream.SRef)
	e.w.ASCII(stream.SName, e.names[r.Target])
	e.strans(r.Rotation, r.Magnification, r.XReflection)
	e.w.Int32s(stream.XY, xy...)
	e.w.Empty(stream.EndEl)
	return nil
}

func (e *encoder) aref(a *Array) error {
	if a.Cols <= 0 || a.Rows <= 0 || a.Cols > math.MaxInt16 || a.Rows > math.MaxInt16 {
		return fmt.Errorf("%w: array of %dx%d", ErrFormat, a.Cols, a.Rows)
	}
	corners := a.lattice()
	xy, err := e.coords(corners[:], false)
	if err != nil {
		return err
	}
	e.w.Empty(stream.ARef)
	e.w.ASCII(stream.SName, e.names[a.Target])
	e.strans(a.Rotation, a.Magnification, a.XReflection)
	e.w.Int16s(stream.ColRow, int16(a.Cols), int16(a.Rows))
	e.w.Int32s(stream.XY, xy...)
	e.w.Empty(stream.EndEl)
	return nil
}
