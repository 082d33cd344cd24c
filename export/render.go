package export

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gogpu/gds"
)

// ErrEmpty is returned when a cell has no geometry to render.
var ErrEmpty = errors.New("export: nothing to render")

// Render flattens c and plays it back into b, lowest layer first so
// that higher layers draw on top. Elements of one layer keep their
// flatten order.
func Render(c *gds.Cell, b Backend) error {
	flat, err := c.Flatten()
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	bounds := gds.EmptyRect()
	for _, e := range flat {
		if _, ok := e.(*gds.Label); ok {
			continue
		}
		bounds = bounds.Union(e.Bounds())
	}
	if bounds.Empty() {
		return fmt.Errorf("%w: %s", ErrEmpty, c.Name())
	}
	sort.SliceStable(flat, func(i, j int) bool {
		return flat[i].Layer() < flat[j].Layer()
	})

	if err := b.Begin(bounds); err != nil {
		return err
	}
	lb, labels := b.(LabelBackend)
	for _, e := range flat {
		switch el := e.(type) {
		case *gds.Boundary:
			b.Polygon(el.Layer(), el.Points())
		case *gds.Path:
			b.Path(el.Layer(), el.Points(), el.Width())
		case *gds.Label:
			if labels {
				lb.Label(el.Layer(), el.Text(), el.Position())
			}
		}
	}
	gds.Logger().Debug("cell rendered", "cell", c.Name(), "elements", len(flat))
	return b.End()
}
