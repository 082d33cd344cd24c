package mask

import (
	"fmt"
	"io"

	"github.com/gogpu/gds"
)

// Mask is a layout with a single top cell named TOP.
//
// A Mask is built, then saved. Saving marks it persisted, after which
// the mutating methods return ErrPersisted.
type Mask struct {
	layout    *gds.Layout
	opts      options
	persisted bool
}

// New creates an empty mask whose layout holds only the TOP cell.
func New(name string, opts ...Option) *Mask {
	return newMask(name, newOptions(opts))
}

func newMask(name string, o options) *Mask {
	m := &Mask{
		layout: gds.NewLayout(name, gds.WithPrecision(o.precision)),
		opts:   o,
	}
	m.layout.Add(gds.NewCell(TopCell))
	return m
}

// Name returns the mask (library) name.
func (m *Mask) Name() string { return m.layout.Name() }

// Layout returns the underlying layout.
func (m *Mask) Layout() *gds.Layout { return m.layout }

// Top returns the TOP cell.
func (m *Mask) Top() *gds.Cell {
	c, _ := m.layout.Cell(TopCell)
	return c
}

// Persisted reports whether the mask has been saved.
func (m *Mask) Persisted() bool { return m.persisted }

func (m *Mask) mutable() error {
	if m.persisted {
		return fmt.Errorf("%w: %s", ErrPersisted, m.Name())
	}
	return nil
}

// Import replaces TOP with a copy of the single top-level cell of l.
func (m *Mask) Import(l *gds.Layout) error {
	if err := m.mutable(); err != nil {
		return err
	}
	top, err := importTop(l)
	if err != nil {
		return err
	}
	m.layout.Add(top.Copy(TopCell))
	return nil
}

// ImportFile reads a GDSII file and imports it like Import.
func (m *Mask) ImportFile(path string, opts ...gds.ReadOption) error {
	l, err := gds.ReadFile(path, opts...)
	if err != nil {
		return err
	}
	return m.Import(l)
}

// WriteTo writes the mask as GDSII and marks it persisted.
func (m *Mask) WriteTo(w io.Writer) (int64, error) {
	n, err := m.layout.WriteTo(w)
	if err != nil {
		return n, err
	}
	m.persisted = true
	return n, nil
}

// Save writes the mask to path and marks it persisted.
func (m *Mask) Save(path string) error {
	if err := m.layout.Save(path); err != nil {
		return err
	}
	m.persisted = true
	gds.Logger().Info("mask saved", "mask", m.Name(), "path", path)
	return nil
}

// importTop returns the only top-level cell of l.
func importTop(l *gds.Layout) (*gds.Cell, error) {
	top, err := l.TopLevel()
	if err != nil {
		return nil, err
	}
	switch len(top) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNoTopLevel, l.Name())
	case 1:
		return top[0], nil
	}
	names := make([]string, len(top))
	for i, c := range top {
		names[i] = c.Name()
	}
	return nil, fmt.Errorf("%w: %s has %v", ErrAmbiguousTopLevel, l.Name(), names)
}
