package gds

import (
	"fmt"
	"time"
)

// Layout is a GDSII library: a named collection of cells with a unit
// system. Cells added to the layout are written together with every
// cell they reference.
type Layout struct {
	name      string
	unit      float64
	precision float64
	modified  time.Time
	cells     []*Cell
}

// NewLayout creates an empty layout.
func NewLayout(name string, opts ...LayoutOption) *Layout {
	o := defaultLayoutOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Layout{
		name:      name,
		unit:      o.unit,
		precision: o.precision,
		modified:  o.modified,
	}
}

// Name returns the library name.
func (l *Layout) Name() string { return l.name }

// Unit returns the user unit in metres.
func (l *Layout) Unit() float64 { return l.unit }

// Precision returns the database unit in metres.
func (l *Layout) Precision() float64 { return l.precision }

// Add registers a cell. A registered cell with the same name is
// replaced in place, keeping its position.
func (l *Layout) Add(c *Cell) {
	for i, have := range l.cells {
		if have.name == c.name {
			l.cells[i] = c
			return
		}
	}
	l.cells = append(l.cells, c)
}

// Remove unregisters the cell named name and reports whether it was
// registered. Cells it references stay reachable through other cells.
func (l *Layout) Remove(name string) bool {
	for i, have := range l.cells {
		if have.name == name {
			l.cells = append(l.cells[:i], l.cells[i+1:]...)
			return true
		}
	}
	return false
}

// Cell returns the registered cell named name.
func (l *Layout) Cell(name string) (*Cell, bool) {
	for _, c := range l.cells {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

// Cells returns the registered cells in insertion order.
func (l *Layout) Cells() []*Cell {
	out := make([]*Cell, len(l.cells))
	copy(out, l.cells)
	return out
}

// AllCells returns every registered cell and every cell they reference,
// children before parents, each once.
func (l *Layout) AllCells() ([]*Cell, error) {
	var out []*Cell
	state := make(map[*Cell]uint8)
	for _, c := range l.cells {
		if err := c.visit(state, &out); err != nil {
			return nil, fmt.Errorf("layout %q: %w", l.name, err)
		}
	}
	return out, nil
}

// TopLevel returns the cells that no other cell of the layout
// references, in registration order.
func (l *Layout) TopLevel() ([]*Cell, error) {
	all, err := l.AllCells()
	if err != nil {
		return nil, err
	}
	referenced := make(map[*Cell]bool)
	for _, c := range all {
		for _, r := range c.refs {
			if r.Cell() != nil {
				referenced[r.Cell()] = true
			}
		}
	}
	var top []*Cell
	seen := make(map[*Cell]bool)
	for _, c := range l.cells {
		if !referenced[c] && !seen[c] {
			top = append(top, c)
			seen[c] = true
		}
	}
	return top, nil
}
