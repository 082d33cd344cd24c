package gds

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/gogpu/gds/internal/stream"
)

// Read decodes a GDSII stream. Every structure in the stream becomes a
// registered cell of the returned layout; references are resolved once
// the whole library has been read.
func Read(r io.Reader, opts ...ReadOption) (*Layout, error) {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}
	d := &decoder{
		r:      stream.NewReader(r),
		opts:   o,
		cells:  make(map[string]*Cell),
		layout: NewLayout(""),
	}
	if err := d.library(); err != nil {
		return nil, err
	}
	if err := d.resolve(); err != nil {
		return nil, err
	}
	Logger().Info("gds: layout read", "library", d.layout.name, "cells", len(d.layout.cells))
	return d.layout, nil
}

// ReadFile reads a GDSII file.
func ReadFile(path string, opts ...ReadOption) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	l, err := Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// pendingRef is a reference whose target structure may not have been
// read yet.
type pendingRef struct {
	ref  Ref
	name string
}

type decoder struct {
	r       *stream.Reader
	opts    readOptions
	layout  *Layout
	cells   map[string]*Cell
	pending []pendingRef
	// userPerDB converts database integers to user units.
	userPerDB float64
}

func (d *decoder) next() (stream.Record, error) {
	rec, err := d.r.Next()
	if err == io.EOF {
		return rec, fmt.Errorf("%w: unexpected end of stream", ErrFormat)
	}
	return rec, err
}

func (d *decoder) library() error {
	rec, err := d.next()
	if err != nil {
		return err
	}
	if rec.Type != stream.Header {
		return fmt.Errorf("%w: stream starts with %v, want HEADER", ErrFormat, rec.Type)
	}
	d.userPerDB = 1e-3
	for {
		rec, err := d.next()
		if err != nil {
			return err
		}
		switch rec.Type {
		case stream.LibName:
			if d.layout.name, err = rec.Text(); err != nil {
				return err
			}
		case stream.Units:
			u, err := rec.Real8s()
			if err != nil {
				return err
			}
			if len(u) != 2 || u[0] <= 0 || u[1] <= 0 {
				return fmt.Errorf("%w: bad UNITS %v", ErrFormat, u)
			}
			d.userPerDB = u[0]
			d.layout.precision = u[1]
			d.layout.unit = u[1] / u[0]
		case stream.BgnStr:
			if err := d.structure(); err != nil {
				return err
			}
		case stream.EndLib:
			return nil
		default:
			// BGNLIB, REFLIBS, FONTS, GENERATIONS, ATTRTABLE, FORMAT ...
		}
	}
}

func (d *decoder) structure() error {
	rec, err := d.next()
	if err != nil {
		return err
	}
	if rec.Type != stream.StrName {
		return fmt.Errorf("%w: BGNSTR followed by %v", ErrFormat, rec.Type)
	}
	name, err := rec.Text()
	if err != nil {
		return err
	}
	c := d.cell(name)
	d.layout.cells = append(d.layout.cells, c)
	for {
		rec, err := d.next()
		if err != nil {
			return err
		}
		switch rec.Type {
		case stream.EndStr:
			return nil
		case stream.Boundary, stream.Path, stream.SRef, stream.ARef, stream.Text, stream.Box, stream.Node:
			if err := d.element(c, rec.Type); err != nil {
				return fmt.Errorf("cell %q: %w", name, err)
			}
		default:
			Logger().Debug("gds: skipped record in structure", "cell", name, "record", rec.Type.String())
		}
	}
}

// cell returns the cell for name, creating a placeholder the first
// time a reference or structure mentions it.
func (d *decoder) cell(name string) *Cell {
	if c, ok := d.cells[name]; ok {
		return c
	}
	c := NewCell(name)
	d.cells[name] = c
	return c
}

// elementRecord gathers the attributes of one element up to ENDEL.
type elementRecord struct {
	layer, datatype int
	width           int32
	pathType        int
	xy              []int32
	sname           string
	text            string
	strans          uint16
	mag, angle      float64
	cols, rows      int
}

func (d *decoder) element(c *Cell, kind stream.RecordType) error {
	el := elementRecord{mag: 1}
	for {
		rec, err := d.next()
		if err != nil {
			return err
		}
		switch rec.Type {
		case stream.EndEl:
			return d.build(c, kind, &el)
		case stream.Layer:
			el.layer, err = firstInt16(rec)
		case stream.Datatype, stream.TextType, stream.BoxType, stream.NodeType:
			el.datatype, err = firstInt16(rec)
		case stream.PathType:
			el.pathType, err = firstInt16(rec)
		case stream.Width:
			var v []int32
			if v, err = rec.Int32s(); err == nil && len(v) > 0 {
				el.width = v[0]
			}
		case stream.XY:
			el.xy, err = rec.Int32s()
		case stream.SName:
			el.sname, err = rec.Text()
		case stream.String:
			el.text, err = rec.Text()
		case stream.STrans:
			el.strans, err = rec.Bits()
		case stream.Mag:
			el.mag, err = firstReal8(rec)
		case stream.Angle:
			el.angle, err = firstReal8(rec)
		case stream.ColRow:
			var v []int16
			if v, err = rec.Int16s(); err == nil {
				if len(v) != 2 {
					return fmt.Errorf("%w: COLROW has %d values", ErrFormat, len(v))
				}
				el.cols, el.rows = int(v[0]), int(v[1])
			}
		default:
			// ELFLAGS, PLEX, PRESENTATION, PROPATTR, PROPVALUE ...
		}
		if err != nil {
			return err
		}
	}
}

func (d *decoder) points(xy []int32) []Point {
	pts := make([]Point, len(xy)/2)
	for i := range pts {
		pts[i] = Point{
			X: float64(xy[2*i]) * d.userPerDB,
			Y: float64(xy[2*i+1]) * d.userPerDB,
		}
	}
	return pts
}

func (d *decoder) layer(l int) int {
	if to, ok := d.opts.layers[l]; ok {
		return to
	}
	return l
}

func (d *decoder) build(c *Cell, kind stream.RecordType, el *elementRecord) error {
	pts := d.points(el.xy)
	reflect := el.strans&stream.STransReflection != 0
	switch kind {
	case stream.Boundary, stream.Box:
		if len(pts) < 3 {
			return fmt.Errorf("%w: %v with %d points", ErrFormat, kind, len(pts))
		}
		c.Add(NewBoundary(pts, d.layer(el.layer), el.datatype))
	case stream.Path:
		if len(pts) < 2 {
			return fmt.Errorf("%w: PATH with %d points", ErrFormat, len(pts))
		}
		width := math.Abs(float64(el.width)) * d.userPerDB
		c.Add(NewPath(pts, width, PathType(el.pathType), d.layer(el.layer), el.datatype))
	case stream.Text:
		if len(pts) != 1 {
			return fmt.Errorf("%w: TEXT with %d points", ErrFormat, len(pts))
		}
		l := NewLabel(el.text, pts[0], d.layer(el.layer), el.datatype)
		l.mag = el.mag
		c.Add(l)
	case stream.SRef:
		if len(pts) != 1 {
			return fmt.Errorf("%w: SREF with %d points", ErrFormat, len(pts))
		}
		ref := &Reference{
			Origin:        pts[0],
			Rotation:      el.angle,
			Magnification: el.mag,
			XReflection:   reflect,
		}
		c.AddRef(ref)
		d.pending = append(d.pending, pendingRef{ref: ref, name: el.sname})
	case stream.ARef:
		if len(pts) != 3 || el.cols <= 0 || el.rows <= 0 {
			return fmt.Errorf("%w: AREF with %d points and %dx%d lattice", ErrFormat, len(pts), el.cols, el.rows)
		}
		unrotate := Rotate(-el.angle)
		col := unrotate.TransformVector(pts[1].Sub(pts[0]))
		row := unrotate.TransformVector(pts[2].Sub(pts[0]))
		arr := &Array{
			Cols:          el.cols,
			Rows:          el.rows,
			Spacing:       Point{X: col.X / float64(el.cols), Y: row.Y / float64(el.rows)},
			Origin:        pts[0],
			Rotation:      el.angle,
			Magnification: el.mag,
			XReflection:   reflect,
		}
		c.AddRef(arr)
		d.pending = append(d.pending, pendingRef{ref: arr, name: el.sname})
	case stream.Node:
		Logger().Warn("gds: dropped NODE element", "cell", c.name)
	}
	return nil
}

// resolve binds references to the structures they name.
func (d *decoder) resolve() error {
	defined := make(map[string]bool, len(d.layout.cells))
	for _, c := range d.layout.cells {
		defined[c.name] = true
	}
	var errs []error
	for _, p := range d.pending {
		if !defined[p.name] {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUndefinedCell, p.name))
			continue
		}
		switch ref := p.ref.(type) {
		case *Reference:
			ref.Target = d.cells[p.name]
		case *Array:
			ref.Target = d.cells[p.name]
		}
	}
	return errors.Join(errs...)
}

func firstInt16(rec stream.Record) (int, error) {
	v, err := rec.Int16s()
	if err != nil {
		return 0, err
	}
	if len(v) == 0 {
		return 0, fmt.Errorf("%w: empty %v", ErrFormat, rec.Type)
	}
	return int(v[0]), nil
}

func firstReal8(rec stream.Record) (float64, error) {
	v, err := rec.Real8s()
	if err != nil {
		return 0, err
	}
	if len(v) == 0 {
		return 0, fmt.Errorf("%w: empty %v", ErrFormat, rec.Type)
	}
	return v[0], nil
}
