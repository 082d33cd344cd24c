package gds

import "fmt"

// Cell is a named group of elements and references to other cells.
// Cells form a directed acyclic graph; a cell may be referenced from
// many parents and is never owned by them.
//
// Cell is not safe for concurrent mutation.
type Cell struct {
	name     string
	elements []Element
	refs     []Ref
}

// NewCell creates an empty cell.
func NewCell(name string) *Cell {
	return &Cell{name: name}
}

// Name returns the cell name. Names need not be unique in memory;
// Layout.WriteTo makes them unique on output.
func (c *Cell) Name() string { return c.name }

// Add appends elements to the cell.
func (c *Cell) Add(elements ...Element) {
	c.elements = append(c.elements, elements...)
}

// AddRef appends references or arrays to the cell.
func (c *Cell) AddRef(refs ...Ref) {
	c.refs = append(c.refs, refs...)
}

// AddCell places child at the origin and returns the new reference.
func (c *Cell) AddCell(child *Cell) *Reference {
	ref := NewReference(child, Point{})
	c.refs = append(c.refs, ref)
	return ref
}

// Elements returns the cell's own elements (no references expanded).
func (c *Cell) Elements() []Element {
	out := make([]Element, len(c.elements))
	copy(out, c.elements)
	return out
}

// Refs returns the cell's references and arrays.
func (c *Cell) Refs() []Ref {
	out := make([]Ref, len(c.refs))
	copy(out, c.refs)
	return out
}

// Empty reports whether the cell has neither elements nor references.
func (c *Cell) Empty() bool {
	return len(c.elements) == 0 && len(c.refs) == 0
}

// Copy returns a new cell with the given name sharing this cell's
// elements and reference targets.
func (c *Cell) Copy(name string) *Cell {
	return &Cell{
		name:     name,
		elements: c.Elements(),
		refs:     c.Refs(),
	}
}

// FindRef returns the first direct reference whose target is named
// name. The second result is false when there is none.
func (c *Cell) FindRef(name string) (Ref, bool) {
	for _, r := range c.refs {
		if r.Cell() != nil && r.Cell().name == name {
			return r, true
		}
	}
	return nil, false
}

// Dependencies returns every cell reachable from c through references,
// children before parents, each cell once. c itself is not included.
func (c *Cell) Dependencies() ([]*Cell, error) {
	var out []*Cell
	state := make(map[*Cell]uint8)
	if err := c.visit(state, &out); err != nil {
		return nil, err
	}
	return out[:len(out)-1], nil
}

const (
	visiting uint8 = 1
	visited  uint8 = 2
)

// visit performs a post-order walk and reports reference cycles.
func (c *Cell) visit(state map[*Cell]uint8, out *[]*Cell) error {
	switch state[c] {
	case visiting:
		return fmt.Errorf("%w through %q", ErrCycle, c.name)
	case visited:
		return nil
	}
	state[c] = visiting
	for _, r := range c.refs {
		if r.Cell() == nil {
			continue
		}
		if err := r.Cell().visit(state, out); err != nil {
			return err
		}
	}
	state[c] = visited
	*out = append(*out, c)
	return nil
}

// Flatten returns every element of the hierarchy below c with all
// reference transforms composed down to c's coordinate system.
func (c *Cell) Flatten() ([]Element, error) {
	var out []Element
	err := c.flatten(Identity(), make(map[*Cell]bool), func(e Element) {
		out = append(out, e)
	})
	return out, err
}

// Walk calls fn for every flattened element, in the same order as
// Flatten, without materialising the whole list.
func (c *Cell) Walk(fn func(Element)) error {
	return c.flatten(Identity(), make(map[*Cell]bool), fn)
}

func (c *Cell) flatten(m Matrix, stack map[*Cell]bool, fn func(Element)) error {
	if stack[c] {
		return fmt.Errorf("%w through %q", ErrCycle, c.name)
	}
	stack[c] = true
	defer delete(stack, c)

	for _, e := range c.elements {
		if m.IsIdentity() {
			fn(e)
		} else {
			fn(e.Transform(m))
		}
	}
	for _, r := range c.refs {
		child := r.Cell()
		if child == nil {
			continue
		}
		for _, p := range r.Placements() {
			if err := child.flatten(m.Multiply(p), stack, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// ElementsOnLayer returns the flattened elements of c that lie on layer.
func (c *Cell) ElementsOnLayer(layer int) ([]Element, error) {
	var out []Element
	err := c.Walk(func(e Element) {
		if e.Layer() == layer {
			out = append(out, e)
		}
	})
	return out, err
}

// Bounds returns the bounding box of the flattened hierarchy.
func (c *Cell) Bounds() (Rect, error) {
	b := EmptyRect()
	err := c.Walk(func(e Element) {
		b = b.Union(e.Bounds())
	})
	return b, err
}

// CopyScaled returns a structural deep copy of the hierarchy with every
// element, reference origin and array pitch scaled by k about the
// origin. Cells shared in the source stay shared in the copy, and the
// source is left untouched.
func (c *Cell) CopyScaled(k float64) *Cell {
	s := Scale(k, k)
	return c.rebuild(make(map[*Cell]*Cell), k, func(e Element) Element {
		return e.Transform(s)
	})
}

// RemapLayers returns a deep copy of the hierarchy with element layers
// translated through layers. Layers missing from the map are kept.
func (c *Cell) RemapLayers(layers map[int]int) *Cell {
	return c.rebuild(make(map[*Cell]*Cell), 1, func(e Element) Element {
		if to, ok := layers[e.Layer()]; ok {
			return e.WithLayer(to)
		}
		return e
	})
}

func (c *Cell) rebuild(memo map[*Cell]*Cell, k float64, fn func(Element) Element) *Cell {
	if done, ok := memo[c]; ok {
		return done
	}
	n := NewCell(c.name)
	memo[c] = n
	n.elements = make([]Element, len(c.elements))
	for i, e := range c.elements {
		n.elements[i] = fn(e)
	}
	n.refs = make([]Ref, 0, len(c.refs))
	for _, r := range c.refs {
		var target *Cell
		if r.Cell() != nil {
			target = r.Cell().rebuild(memo, k, fn)
		}
		n.refs = append(n.refs, r.retarget(target, k))
	}
	return n
}
