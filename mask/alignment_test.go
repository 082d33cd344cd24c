package mask

import (
	"errors"
	"testing"

	"github.com/gogpu/gds"
)

func TestStandardKeyOffset(t *testing.T) {
	tests := []struct {
		name     string
		aperture float64
		dieStep  float64
		want     int64
	}{
		{"9.6 mm die", 63.5, 9.6, 29500},
		{"default die", 63.5, 7.692, 9820},
		{"exact multiple", 63.5, 12.7, 0},
		{"die larger than aperture", 5, 7.5, 25000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StandardKeyOffset(tt.aperture, tt.dieStep, ReticleFactor)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("StandardKeyOffset(%v, %v) = %d, want %d", tt.aperture, tt.dieStep, got, tt.want)
			}
		})
	}

	for _, step := range []float64{0, -1} {
		if _, err := StandardKeyOffset(63.5, step, ReticleFactor); !errors.Is(err, ErrInvalidDieStep) {
			t.Errorf("die step %v: err = %v, want ErrInvalidDieStep", step, err)
		}
	}
}

func markRefs(t *testing.T, q *QuadrantMask, quad Quadrant) []*gds.Reference {
	t.Helper()
	c, err := q.Quadrant(quad)
	if err != nil {
		t.Fatal(err)
	}
	var out []*gds.Reference
	for _, r := range c.Refs() {
		out = append(out, r.(*gds.Reference))
	}
	return out
}

func TestAddAlignmentMarkStandardKeys(t *testing.T) {
	q := NewQuadrantMask("reticle")
	opt := DefaultAlignment()
	opt.DieStep = 9.6
	opt.Position = gds.Pt(-1000, 250)
	opt.Layer = 6

	if err := q.AddAlignmentMark(GlobalMark, UpperRight, opt); err != nil {
		t.Fatalf("AddAlignmentMark: %v", err)
	}
	refs := markRefs(t, q, UpperRight)
	if len(refs) != 2 {
		t.Fatalf("got %d refs, want 2", len(refs))
	}
	if refs[0].Origin != gds.Pt(-1000, 250) || refs[1].Origin != gds.Pt(28500, 250) {
		t.Errorf("origins = %v, %v", refs[0].Origin, refs[1].Origin)
	}
	mark := refs[0].Cell()
	if mark.Name() != MarkCell || refs[1].Cell() != mark {
		t.Errorf("keys reference %q and %q, want one shared %s", mark.Name(), refs[1].Cell().Name(), MarkCell)
	}
	flat, err := mark.Flatten()
	if err != nil || len(flat) == 0 {
		t.Fatalf("mark has no geometry: %v", err)
	}
	for _, e := range flat {
		if e.Layer() != 6 {
			t.Errorf("mark element on layer %d, want 6", e.Layer())
		}
	}
}

func TestAddAlignmentMarkSingle(t *testing.T) {
	q := NewQuadrantMask("reticle")
	opt := DefaultAlignment()
	opt.StandardKeys = false
	opt.DieStep = 0 // ignored without standard keys
	opt.Layer = 3

	if err := q.AddAlignmentMark(LocalMark, LowerLeft, opt); err != nil {
		t.Fatalf("AddAlignmentMark: %v", err)
	}
	refs := markRefs(t, q, LowerLeft)
	if len(refs) != 1 || refs[0].Origin != (gds.Point{}) {
		t.Fatalf("refs = %v, want one at the origin", refs)
	}
	els, _ := refs[0].Cell().ElementsOnLayer(3)
	if len(els) == 0 {
		t.Error("local mark not moved to layer 3")
	}
}

func TestAddAlignmentMarkErrors(t *testing.T) {
	bad := DefaultAlignment()
	bad.DieStep = 0

	tests := []struct {
		name string
		kind MarkKind
		quad Quadrant
		opt  AlignmentOptions
		want error
	}{
		{"quadrant", GlobalMark, "centre", DefaultAlignment(), ErrInvalidQuadrant},
		{"kind", MarkKind(7), UpperLeft, DefaultAlignment(), ErrMarkKind},
		{"die step", GlobalMark, UpperLeft, bad, ErrInvalidDieStep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQuadrantMask("reticle")
			err := q.AddAlignmentMark(tt.kind, tt.quad, tt.opt)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			for _, quad := range Quadrants() {
				c, _ := q.Quadrant(quad)
				if !c.Empty() {
					t.Errorf("%s modified by failed call", quad)
				}
			}
		})
	}
}

type layoutMarks map[MarkKind]*gds.Layout

func (m layoutMarks) Marks(kind MarkKind) (*gds.Layout, error) {
	return m[kind], nil
}

func TestAddAlignmentMarkMissingCell(t *testing.T) {
	lib := gds.NewLayout("marks")
	lib.Add(gds.NewCell("SOMETHING_ELSE"))
	q := NewQuadrantMask("reticle", WithMarks(layoutMarks{GlobalMark: lib}))
	if err := q.AddAlignmentMark(GlobalMark, UpperLeft, DefaultAlignment()); !errors.Is(err, ErrMarkMissing) {
		t.Errorf("err = %v, want ErrMarkMissing", err)
	}
}

func TestFileMarks(t *testing.T) {
	dir := t.TempDir()
	lib := gds.NewLayout("global")
	c := gds.NewCell(TopCell)
	c.Add(gds.Rectangle(gds.Pt(0, 0), gds.Pt(20, 20), 1))
	c.Add(gds.Rectangle(gds.Pt(50, 0), gds.Pt(70, 20), 9))
	lib.Add(c)
	if err := lib.Save(dir + "/global.gds"); err != nil {
		t.Fatal(err)
	}

	q := NewQuadrantMask("reticle", WithMarks(FileMarks{Global: dir + "/global.gds"}))
	opt := DefaultAlignment()
	opt.Layer = 4
	if err := q.AddAlignmentMark(GlobalMark, UpperLeft, opt); err != nil {
		t.Fatalf("AddAlignmentMark: %v", err)
	}
	mark := markRefs(t, q, UpperLeft)[0].Cell()
	layers := map[int]int{}
	for _, e := range mark.Elements() {
		layers[e.Layer()]++
	}
	if layers[4] != 1 || layers[9] != 1 {
		t.Errorf("mark layers = %v, want layer 1 moved to 4 and layer 9 kept", layers)
	}

	if err := q.AddAlignmentMark(LocalMark, UpperLeft, opt); !errors.Is(err, ErrMarkMissing) {
		t.Errorf("unconfigured local file: err = %v, want ErrMarkMissing", err)
	}
}

func TestParseMarkKind(t *testing.T) {
	for in, want := range map[string]MarkKind{"global": GlobalMark, " Local ": LocalMark} {
		got, err := ParseMarkKind(in)
		if err != nil || got != want {
			t.Errorf("ParseMarkKind(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMarkKind("wafer"); !errors.Is(err, ErrMarkKind) {
		t.Errorf("err = %v, want ErrMarkKind", err)
	}
}
