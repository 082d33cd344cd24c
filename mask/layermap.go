package mask

import (
	"fmt"
	"sort"
)

// LayerMap routes wafer-scale layers to reticle quadrants.
type LayerMap map[int]Quadrant

// DefaultLayers builds the conventional routing: the first layer goes to
// the upper right quadrant, then lower right, lower left and upper left.
func DefaultLayers(l0, l1, l2, l3 int) LayerMap {
	return LayerMap{
		l0: UpperRight,
		l1: LowerRight,
		l2: LowerLeft,
		l3: UpperLeft,
	}
}

// Validate checks that the map assigns exactly one layer to each of the
// four quadrants.
func (lm LayerMap) Validate() error {
	if len(lm) != 4 {
		return fmt.Errorf("%w: %d layers mapped", ErrLayerMap, len(lm))
	}
	seen := make(map[Quadrant]int, 4)
	for _, layer := range lm.Layers() {
		q := lm[layer]
		if err := checkQuadrant(q); err != nil {
			return fmt.Errorf("%w: layer %d: %w", ErrLayerMap, layer, err)
		}
		if prev, dup := seen[q]; dup {
			return fmt.Errorf("%w: layers %d and %d both map to %s", ErrLayerMap, prev, layer, q)
		}
		seen[q] = layer
	}
	return nil
}

// Layers returns the mapped layer numbers in ascending order.
func (lm LayerMap) Layers() []int {
	out := make([]int, 0, len(lm))
	for l := range lm {
		out = append(out, l)
	}
	sort.Ints(out)
	return out
}

// Quadrant returns the quadrant for layer.
func (lm LayerMap) Quadrant(layer int) (Quadrant, bool) {
	q, ok := lm[layer]
	return q, ok
}

// Layer returns the layer routed to q.
func (lm LayerMap) Layer(q Quadrant) (int, bool) {
	for l, have := range lm {
		if have == q {
			return l, true
		}
	}
	return 0, false
}
