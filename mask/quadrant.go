package mask

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/gogpu/gds"
)

// Quadrant names one corner sub-cell of a reticle.
type Quadrant string

// The four reticle quadrants. The names are also the quadrant cell names.
const (
	UpperLeft  Quadrant = "upper_left"
	UpperRight Quadrant = "upper_right"
	LowerRight Quadrant = "lower_right"
	LowerLeft  Quadrant = "lower_left"
)

// Quadrants returns the quadrants in placement order.
func Quadrants() []Quadrant {
	return []Quadrant{UpperLeft, UpperRight, LowerRight, LowerLeft}
}

// Valid reports whether q is one of the four quadrants.
func (q Quadrant) Valid() bool {
	switch q {
	case UpperLeft, UpperRight, LowerRight, LowerLeft:
		return true
	}
	return false
}

// Center returns the quadrant centre on a reticle whose quadrant
// centres sit offset from the middle on both axes.
func (q Quadrant) Center(offset float64) gds.Point {
	switch q {
	case UpperLeft:
		return gds.Pt(-offset, offset)
	case UpperRight:
		return gds.Pt(offset, offset)
	case LowerRight:
		return gds.Pt(offset, -offset)
	case LowerLeft:
		return gds.Pt(-offset, -offset)
	}
	return gds.Point{}
}

func (q Quadrant) String() string { return string(q) }

// ParseQuadrant accepts the canonical names and common spellings such
// as "UpperLeft", "upper-left" or "UPPER LEFT".
func ParseQuadrant(s string) (Quadrant, error) {
	q := Quadrant(strcase.ToSnake(strings.TrimSpace(s)))
	if !q.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidQuadrant, s)
	}
	return q, nil
}

func checkQuadrant(q Quadrant) error {
	if !q.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidQuadrant, string(q))
	}
	return nil
}
