package mask

import (
	"github.com/gogpu/gds"
)

// Reticle is a mask for the GCA200 stepper. Imported designs are placed
// under TOP rather than replacing it, and the optional reticle template
// (alignment marks and writable window) is merged in on creation.
//
// Patterns may be written anywhere inside the template's alignment mark
// bounding box, but the stepper aperture is 21 mm across at wafer scale,
// so the largest exposable die is 14.8 mm square.
type Reticle struct {
	*Mask
}

// NewReticle creates a GCA200 reticle.
func NewReticle(name string, opts ...Option) *Reticle {
	return newReticle(name, newOptions(opts))
}

func newReticle(name string, o options) *Reticle {
	r := &Reticle{Mask: newMask(name, o)}
	if o.template != nil {
		r.merge(o.template)
	}
	return r
}

// merge adds the template cells, replacing same-named cells. The
// template TOP is copied so later additions never reach the template.
func (r *Reticle) merge(t *gds.Layout) {
	for _, c := range t.Cells() {
		if c.Name() == TopCell {
			c = c.Copy(TopCell)
		}
		r.layout.Add(c)
	}
	gds.Logger().Debug("reticle template merged", "template", t.Name(), "cells", len(t.Cells()))
}

// Import adds a copy of the single top-level cell of l under TOP as
// IMPORT_MASK_TOP.
func (r *Reticle) Import(l *gds.Layout) error {
	if err := r.mutable(); err != nil {
		return err
	}
	top, err := importTop(l)
	if err != nil {
		return err
	}
	r.Top().AddCell(top.Copy(ImportCell))
	return nil
}

// ImportFile reads a GDSII file and imports it like Import.
func (r *Reticle) ImportFile(path string, opts ...gds.ReadOption) error {
	l, err := gds.ReadFile(path, opts...)
	if err != nil {
		return err
	}
	return r.Import(l)
}

// DRCCheck would verify the stepper design rules. It is not
// implemented and always returns ErrNotSupported.
func (r *Reticle) DRCCheck() error {
	return ErrNotSupported
}
