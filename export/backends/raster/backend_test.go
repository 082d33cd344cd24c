package raster

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/gogpu/gds"
	"github.com/gogpu/gds/export"
)

func TestBackendRegistration(t *testing.T) {
	if !export.IsRegistered("raster") {
		t.Fatal("raster backend not registered")
	}
	backend, err := export.NewBackend("raster")
	if err != nil {
		t.Fatalf("failed to create raster backend: %v", err)
	}
	if _, ok := backend.(*Backend); !ok {
		t.Fatal("backend is not *raster.Backend")
	}
	if name, ok := export.ForExtension(".png"); !ok || name != "raster" {
		t.Errorf("ForExtension(.png) = %q, %v, want raster", name, ok)
	}
}

func halfSquare() *gds.Cell {
	c := gds.NewCell("top")
	c.Add(gds.Rectangle(gds.Pt(0, 0), gds.Pt(50, 50), 1))
	c.Add(gds.Rectangle(gds.Pt(0, 0), gds.Pt(100, 0.001), 9))
	return c
}

func isBackground(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

func TestRenderSize(t *testing.T) {
	b := NewBackend(WithWidth(400), WithMargin(0))
	defer b.Close()
	if err := export.Render(halfSquare(), b); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b.Width() != 400 || b.Height() != 200 {
		t.Errorf("size = %dx%d, want 400x200", b.Width(), b.Height())
	}
	img := b.Image()
	if img.Bounds().Dx() != 400 {
		t.Errorf("image width = %d", img.Bounds().Dx())
	}
	// The square fills the lower left of the image, y pointing up.
	if isBackground(img, 100, 100) {
		t.Error("square interior not filled")
	}
	if !isBackground(img, 300, 100) {
		t.Error("right half should be background")
	}
}

func TestWriteToPNG(t *testing.T) {
	b := NewBackend(WithWidth(128))
	defer b.Close()
	if err := export.Render(halfSquare(), b); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	n, err := b.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not PNG: %v", err)
	}
	if img.Bounds().Dx() != 128 {
		t.Errorf("width = %d, want 128", img.Bounds().Dx())
	}
}

func TestThumbnail(t *testing.T) {
	b := NewBackend(WithWidth(512), WithThumbnail(64))
	defer b.Close()
	if err := export.Render(halfSquare(), b); err != nil {
		t.Fatal(err)
	}
	out := b.Output().Bounds()
	if out.Dx() != 64 || out.Dy() > 64 {
		t.Errorf("thumbnail = %v, want to fit 64x64", out)
	}

	path := filepath.Join(t.TempDir(), "thumb.png")
	if err := b.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}
}

func TestNotStarted(t *testing.T) {
	b := NewBackend()
	if _, err := b.WriteTo(&bytes.Buffer{}); !errors.Is(err, ErrNotStarted) {
		t.Errorf("WriteTo err = %v, want ErrNotStarted", err)
	}
	if b.Image() != nil {
		t.Error("Image before Begin should be nil")
	}
	if err := b.Begin(gds.EmptyRect()); !errors.Is(err, export.ErrEmpty) {
		t.Errorf("Begin(empty) err = %v, want ErrEmpty", err)
	}
}

func TestEndReportsFirstDrawError(t *testing.T) {
	b := NewBackend(WithWidth(16))
	defer b.Close()
	if err := b.Begin(gds.R(gds.Pt(0, 0), gds.Pt(1, 1))); err != nil {
		t.Fatal(err)
	}
	first := errors.New("fill failed")
	b.keep(nil)
	b.keep(first)
	b.keep(errors.New("stroke failed"))
	if err := b.End(); !errors.Is(err, first) {
		t.Errorf("End() = %v, want the first draw error", err)
	}

	if err := b.Begin(gds.R(gds.Pt(0, 0), gds.Pt(1, 1))); err != nil {
		t.Fatal(err)
	}
	if err := b.End(); err != nil {
		t.Errorf("End() after a new Begin = %v, want nil", err)
	}
}
