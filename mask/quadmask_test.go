package mask

import (
	"bytes"
	"errors"
	"io"
	"sort"
	"testing"

	"github.com/gogpu/gds"
)

// waferDesign returns a 1x design with n squares on each of layers 1-4,
// half of them inside a subcell.
func waferDesign(n int) *Mask {
	m := New("wafer")
	sub := gds.NewCell("sub")
	for layer := 1; layer <= 4; layer++ {
		for i := 0; i < n; i++ {
			x := float64(i * 10)
			sq := gds.Rectangle(gds.Pt(x, 0), gds.Pt(x+2.5, 1.5), layer)
			if i%2 == 0 {
				m.Top().Add(sq)
			} else {
				sub.Add(sq)
			}
		}
	}
	ref := gds.NewReference(sub, gds.Pt(0, 100))
	m.Top().AddRef(ref)
	return m
}

func TestNewQuadrantMask(t *testing.T) {
	q := NewQuadrantMask("reticle")
	top := q.Top()
	if len(top.Elements()) != 1 || top.Elements()[0].Layer() != BoundingBoxLayer {
		t.Fatalf("TOP elements = %v, want the bounding box on layer %d", top.Elements(), BoundingBoxLayer)
	}
	if got := top.Elements()[0].Bounds(); got.Min != gds.Pt(-37100, -37100) || got.Max != gds.Pt(37100, 37100) {
		t.Errorf("bounding box = %v", got)
	}
	want := map[Quadrant]gds.Point{
		UpperLeft:  {X: -18550, Y: 18550},
		UpperRight: {X: 18550, Y: 18550},
		LowerRight: {X: 18550, Y: -18550},
		LowerLeft:  {X: -18550, Y: -18550},
	}
	for quad, origin := range want {
		r, ok := q.CellReference(top, string(quad))
		if !ok {
			t.Fatalf("no reference to %s", quad)
		}
		if got := r.(*gds.Reference).Origin; got != origin {
			t.Errorf("%s at %v, want %v", quad, got, origin)
		}
	}
}

func TestCellFromReferenceAbsent(t *testing.T) {
	q := NewQuadrantMask("reticle")
	if c, ok := q.CellFromReference("middle"); ok || c != nil {
		t.Errorf("CellFromReference(middle) = %v, %v; want nil, false", c, ok)
	}
	if r, ok := q.CellReference(q.Top(), "middle"); ok || r != nil {
		t.Errorf("CellReference(middle) = %v, %v; want nil, false", r, ok)
	}
	if c, ok := q.CellFromReference(string(LowerLeft)); !ok || c.Name() != string(LowerLeft) {
		t.Errorf("CellFromReference(lower_left) = %v, %v", c, ok)
	}
}

func TestAddToQuadrant(t *testing.T) {
	q := NewQuadrantMask("reticle")
	dev := gds.NewCell("device")
	dev.Add(gds.Rectangle(gds.Pt(0, 0), gds.Pt(1, 1), 3))

	if err := q.AddCellToQuadrant(LowerRight, dev); err != nil {
		t.Fatalf("AddCellToQuadrant: %v", err)
	}
	c, _ := q.Quadrant(LowerRight)
	if len(c.Refs()) != 1 || c.Refs()[0].Cell() != dev {
		t.Fatalf("lower_right refs = %v", c.Refs())
	}

	err := q.AddToQuadrant("middle", gds.NewReference(dev, gds.Point{}))
	if !errors.Is(err, ErrInvalidQuadrant) {
		t.Fatalf("err = %v, want ErrInvalidQuadrant", err)
	}
	for _, quad := range Quadrants() {
		c, _ := q.Quadrant(quad)
		want := 0
		if quad == LowerRight {
			want = 1
		}
		if len(c.Refs()) != want {
			t.Errorf("%s has %d refs after rejected add, want %d", quad, len(c.Refs()), want)
		}
	}
}

func TestPersistedMaskRejectsChanges(t *testing.T) {
	q := NewQuadrantMask("reticle")
	if q.Persisted() {
		t.Fatal("new mask reports persisted")
	}
	if _, err := q.WriteTo(io.Discard); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if !q.Persisted() {
		t.Fatal("mask not persisted after WriteTo")
	}
	if err := q.AddCellToQuadrant(UpperLeft, gds.NewCell("late")); !errors.Is(err, ErrPersisted) {
		t.Errorf("AddCellToQuadrant err = %v, want ErrPersisted", err)
	}
	if err := q.AddAlignmentMark(GlobalMark, UpperLeft, DefaultAlignment()); !errors.Is(err, ErrPersisted) {
		t.Errorf("AddAlignmentMark err = %v, want ErrPersisted", err)
	}
	if err := q.Import(gds.NewLayout("x")); !errors.Is(err, ErrPersisted) {
		t.Errorf("Import err = %v, want ErrPersisted", err)
	}
}

func TestConvertWaferScaleMask(t *testing.T) {
	const n = 6
	src := waferDesign(n)
	layers := DefaultLayers(1, 2, 3, 4)

	out, err := NewQuadrantMask("reticle").ConvertWaferScaleMask(src, layers)
	if err != nil {
		t.Fatalf("ConvertWaferScaleMask: %v", err)
	}
	if out.Name() != "wafer" {
		t.Errorf("name = %q, want wafer", out.Name())
	}

	for layer, quad := range layers {
		c, err := out.Quadrant(quad)
		if err != nil {
			t.Fatal(err)
		}
		if got := len(c.Refs()); got != n {
			t.Fatalf("%s holds %d containers, want %d", quad, got, n)
		}
		for _, r := range c.Refs() {
			container := r.Cell()
			if container.Name() != ContainerCell {
				t.Errorf("%s child named %q, want %q", quad, container.Name(), ContainerCell)
			}
			els := container.Elements()
			if len(els) != 1 || els[0].Layer() != layer {
				t.Fatalf("%s container = %v, want one element on layer %d", quad, els, layer)
			}
			b := els[0].Bounds()
			if b.Width() != 12.5 || b.Height() != 7.5 {
				t.Errorf("%s element %v not scaled 5x", quad, b)
			}
		}
	}

	// Subcell elements pick up the scaled reference origin.
	c, _ := out.Quadrant(UpperRight)
	var ys []float64
	for _, r := range c.Refs() {
		ys = append(ys, r.Cell().Elements()[0].Bounds().Min.Y)
	}
	sort.Float64s(ys)
	if ys[0] != 0 || ys[len(ys)-1] != 500 {
		t.Errorf("element y extents = %v, want 0 and 500", ys)
	}

	// The source is untouched.
	b := src.Top().Elements()[0].Bounds()
	if b.Width() != 2.5 {
		t.Errorf("source element width = %v after conversion", b.Width())
	}
}

func TestConvertWaferScaleMaskErrors(t *testing.T) {
	src := waferDesign(2)
	q := NewQuadrantMask("reticle")

	if _, err := q.ConvertWaferScaleMask(src, DefaultLayers(1, 2, 3, 9)); !errors.Is(err, ErrUnmappedLayer) {
		t.Errorf("err = %v, want ErrUnmappedLayer", err)
	}
	if _, err := q.ConvertWaferScaleMask(src, DefaultLayers(1, 1, 2, 3)); !errors.Is(err, ErrLayerMap) {
		t.Errorf("err = %v, want ErrLayerMap", err)
	}
}

func TestWaferScaleRoundTrip(t *testing.T) {
	src := waferDesign(3)
	want, err := src.Top().Flatten()
	if err != nil {
		t.Fatal(err)
	}

	q, err := NewQuadrantMask("reticle").ConvertWaferScaleMask(src, DefaultLayers(1, 2, 3, 4))
	if err != nil {
		t.Fatal(err)
	}
	ws, err := q.MakeWaferScaleGDS(WaferScalePrecision)
	if err != nil {
		t.Fatalf("MakeWaferScaleGDS: %v", err)
	}
	if ws.Name() != "wafer"+WaferScaleSuffix {
		t.Errorf("name = %q", ws.Name())
	}
	if ws.Layout().Precision() != WaferScalePrecision {
		t.Errorf("precision = %v", ws.Layout().Precision())
	}
	for _, r := range ws.Top().Refs() {
		if r.Cell().Name() != BoundaryCell {
			t.Errorf("TOP child %q, want %q", r.Cell().Name(), BoundaryCell)
		}
	}

	got, err := ws.Top().Flatten()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d elements, want %d", len(got), len(want))
	}
	used := make([]bool, len(got))
	for _, w := range want {
		found := false
		for i, g := range got {
			if used[i] || g.Layer() != w.Layer() {
				continue
			}
			gb, wb := g.Bounds(), w.Bounds()
			if gb.Min.Near(wb.Min, 1e-9) && gb.Max.Near(wb.Max, 1e-9) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			t.Errorf("element on layer %d at %v lost in round trip", w.Layer(), w.Bounds())
		}
	}
}

func TestImport(t *testing.T) {
	design := gds.NewLayout("design")
	dev := gds.NewCell("device")
	dev.Add(gds.Rectangle(gds.Pt(0, 0), gds.Pt(5, 5), 1))
	design.Add(dev)

	t.Run("plain mask replaces TOP", func(t *testing.T) {
		m := New("plain")
		if err := m.Import(design); err != nil {
			t.Fatal(err)
		}
		if len(m.Top().Elements()) != 1 || m.Top().Name() != TopCell {
			t.Errorf("TOP = %s with %d elements", m.Top().Name(), len(m.Top().Elements()))
		}
		if dev.Name() != "device" {
			t.Errorf("imported cell renamed to %q", dev.Name())
		}
	})

	t.Run("reticle nests under TOP", func(t *testing.T) {
		q := NewQuadrantMask("reticle")
		if err := q.Import(design); err != nil {
			t.Fatal(err)
		}
		if c, ok := q.CellFromReference(ImportCell); !ok || len(c.Elements()) != 1 {
			t.Errorf("no %s under TOP", ImportCell)
		}
		if _, ok := q.CellFromReference(string(UpperLeft)); !ok {
			t.Error("import dropped the quadrants")
		}
	})

	t.Run("ambiguous top level", func(t *testing.T) {
		two := gds.NewLayout("two")
		two.Add(dev)
		two.Add(gds.NewCell("other"))

		m := New("plain")
		m.Top().Add(gds.Rectangle(gds.Pt(0, 0), gds.Pt(1, 1), 7))
		if err := m.Import(two); !errors.Is(err, ErrAmbiguousTopLevel) {
			t.Fatalf("err = %v, want ErrAmbiguousTopLevel", err)
		}
		if els := m.Top().Elements(); len(els) != 1 || els[0].Layer() != 7 {
			t.Errorf("TOP changed by failed import: %v", els)
		}

		q := NewQuadrantMask("reticle")
		before := len(q.Top().Refs())
		if err := q.Import(two); !errors.Is(err, ErrAmbiguousTopLevel) {
			t.Fatalf("err = %v, want ErrAmbiguousTopLevel", err)
		}
		if len(q.Top().Refs()) != before {
			t.Error("reticle TOP changed by failed import")
		}
	})

	t.Run("empty layout", func(t *testing.T) {
		if err := New("plain").Import(gds.NewLayout("none")); !errors.Is(err, ErrNoTopLevel) {
			t.Errorf("err = %v, want ErrNoTopLevel", err)
		}
	})
}

func TestImportFile(t *testing.T) {
	design := gds.NewLayout("design")
	dev := gds.NewCell("device")
	dev.Add(gds.Rectangle(gds.Pt(0, 0), gds.Pt(5, 5), 1))
	design.Add(dev)
	path := t.TempDir() + "/design.gds"
	if err := design.Save(path); err != nil {
		t.Fatal(err)
	}

	q := NewQuadrantMask("reticle")
	if err := q.ImportFile(path, gds.WithLayerMap(map[int]int{1: 4})); err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	c, ok := q.CellFromReference(ImportCell)
	if !ok {
		t.Fatalf("no %s", ImportCell)
	}
	if got := c.Elements()[0].Layer(); got != 4 {
		t.Errorf("layer = %d, want 4", got)
	}
}

func TestTemplateMerge(t *testing.T) {
	tmpl := gds.NewLayout("template")
	ttop := gds.NewCell(TopCell)
	ttop.Add(gds.Rectangle(gds.Pt(-50000, -50000), gds.Pt(-49000, -49000), 5))
	keys := gds.NewCell("RETICLE_KEYS")
	keys.Add(gds.Rectangle(gds.Pt(0, 0), gds.Pt(10, 10), 5))
	ttop.AddCell(keys)
	tmpl.Add(ttop)
	tmpl.Add(keys)

	q := NewQuadrantMask("reticle", WithTemplate(tmpl))
	if len(q.Top().Elements()) != 2 {
		t.Errorf("TOP has %d elements, want template outline plus bounding box", len(q.Top().Elements()))
	}
	if _, ok := q.CellFromReference("RETICLE_KEYS"); !ok {
		t.Error("template reference lost")
	}
	if _, ok := q.Layout().Cell("RETICLE_KEYS"); !ok {
		t.Error("template cell not registered")
	}
	if len(ttop.Elements()) != 1 || len(ttop.Refs()) != 1 {
		t.Error("template TOP modified by mask construction")
	}
}

func TestDRCCheck(t *testing.T) {
	if err := NewQuadrantMask("reticle").DRCCheck(); !errors.Is(err, ErrNotSupported) {
		t.Errorf("DRCCheck = %v, want ErrNotSupported", err)
	}
}

func TestOpenQuadrantMask(t *testing.T) {
	q := NewQuadrantMask("reticle")
	dev := gds.NewCell("device")
	dev.Add(gds.Rectangle(gds.Pt(0, 0), gds.Pt(10, 10), 1))
	if err := q.AddCellToQuadrant(LowerLeft, dev); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if _, err := q.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	l, err := gds.Read(&buf)
	if err != nil {
		t.Fatal(err)
	}

	opened, err := OpenQuadrantMask(l)
	if err != nil {
		t.Fatalf("OpenQuadrantMask: %v", err)
	}
	if opened.Persisted() {
		t.Error("opened mask reports persisted")
	}
	ws, err := opened.MakeWaferScaleGDS(0)
	if err != nil {
		t.Fatal(err)
	}
	flat, err := ws.Top().Flatten()
	if err != nil || len(flat) != 1 {
		t.Fatalf("wafer scale has %d elements, %v", len(flat), err)
	}
	if got := flat[0].Bounds().Max; !got.Near(gds.Pt(2, 2), 1e-9) {
		t.Errorf("element max = %v, want (2, 2)", got)
	}

	plain := gds.NewLayout("plain")
	plain.Add(gds.NewCell(TopCell))
	if _, err := OpenQuadrantMask(plain); !errors.Is(err, ErrMissingQuadrant) {
		t.Errorf("err = %v, want ErrMissingQuadrant", err)
	}
}

func TestOpenQuadrantMaskPromotesTopLevel(t *testing.T) {
	l := gds.NewLayout("lib")
	reticle := gds.NewCell("RETICLE")
	for _, quad := range Quadrants() {
		reticle.AddCell(gds.NewCell(string(quad)))
	}
	l.Add(reticle)

	q, err := OpenQuadrantMask(l)
	if err != nil {
		t.Fatalf("OpenQuadrantMask: %v", err)
	}
	if _, ok := q.Layout().Cell("RETICLE"); ok {
		t.Error("promoted cell is still registered under its old name")
	}

	var buf bytes.Buffer
	if _, err := q.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	back, err := gds.Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	top, err := back.TopLevel()
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 1 || top[0].Name() != TopCell {
		names := make([]string, len(top))
		for i, c := range top {
			names[i] = c.Name()
		}
		t.Fatalf("top-level cells = %v, want [%s]", names, TopCell)
	}
	if _, err := OpenQuadrantMask(back); err != nil {
		t.Errorf("reopen: %v", err)
	}
}
