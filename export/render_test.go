package export

import (
	"errors"
	"testing"

	"github.com/gogpu/gds"
)

func TestRenderOrdersByLayer(t *testing.T) {
	leaf := gds.NewCell("leaf")
	leaf.Add(gds.Rectangle(gds.Pt(0, 0), gds.Pt(1, 1), 3))
	top := gds.NewCell("top")
	top.Add(gds.Rectangle(gds.Pt(0, 0), gds.Pt(10, 10), 2))
	top.Add(gds.NewPath(gds.Points(0, 0, 20, 0), 2, gds.PathFlush, 1, 0))
	top.Add(gds.NewLabel("die 1", gds.Pt(500, 500), 1, 0))
	top.AddRef(gds.NewReference(leaf, gds.Pt(-5, 0)))

	b := newMockBackend("mock")
	if err := Render(top, b); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b.beginCalls != 1 || b.endCalls != 1 {
		t.Errorf("Begin/End calls = %d/%d, want 1/1", b.beginCalls, b.endCalls)
	}
	want := []int{1, 2, 3}
	if len(b.layers) != len(want) {
		t.Fatalf("layers = %v, want %v", b.layers, want)
	}
	for i := range want {
		if b.layers[i] != want[i] {
			t.Errorf("layers = %v, want %v", b.layers, want)
			break
		}
	}
	if b.paths != 1 {
		t.Errorf("paths = %d, want 1", b.paths)
	}
	if b.bounds.Min.X != -5 || b.bounds.Max.X != 21 || b.bounds.Max.Y != 10 {
		t.Errorf("bounds = %v ignores labels or misses geometry", b.bounds)
	}
}

func TestRenderLabels(t *testing.T) {
	top := gds.NewCell("top")
	top.Add(gds.Rectangle(gds.Pt(0, 0), gds.Pt(10, 10), 1))
	top.Add(gds.NewLabel("A1", gds.Pt(5, 5), 1, 0))

	b := &labelBackend{}
	if err := Render(top, b); err != nil {
		t.Fatal(err)
	}
	if len(b.labels) != 1 || b.labels[0] != "A1" {
		t.Errorf("labels = %v, want [A1]", b.labels)
	}
}

func TestRenderEmpty(t *testing.T) {
	b := newMockBackend("mock")
	if err := Render(gds.NewCell("empty"), b); !errors.Is(err, ErrEmpty) {
		t.Errorf("err = %v, want ErrEmpty", err)
	}
	if b.beginCalls != 0 {
		t.Error("Begin called for an empty cell")
	}
}

func TestLayerColor(t *testing.T) {
	if LayerColor(0) == LayerColor(1) {
		t.Error("adjacent layers share a colour")
	}
	if LayerColor(-1) != LayerColor(len(palette)-1) {
		t.Error("negative layer not wrapped")
	}
}
