package export

import (
	"testing"

	"github.com/gogpu/gds"
)

// mockBackend records the calls it receives.
type mockBackend struct {
	name       string
	beginCalls int
	endCalls   int
	bounds     gds.Rect
	layers     []int
	paths      int
	labels     []string
}

func newMockBackend(name string) *mockBackend {
	return &mockBackend{name: name}
}

func (b *mockBackend) Begin(bounds gds.Rect) error {
	b.beginCalls++
	b.bounds = bounds
	return nil
}

func (b *mockBackend) Polygon(layer int, _ []gds.Point) {
	b.layers = append(b.layers, layer)
}

func (b *mockBackend) Path(layer int, _ []gds.Point, _ float64) {
	b.layers = append(b.layers, layer)
	b.paths++
}

func (b *mockBackend) End() error {
	b.endCalls++
	return nil
}

// labelBackend also draws labels.
type labelBackend struct {
	mockBackend
}

func (b *labelBackend) Label(_ int, text string, _ gds.Point) {
	b.labels = append(b.labels, text)
}

// resetRegistry clears all registered backends for test isolation.
func resetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends = make(map[string]BackendFactory)
	extensions = make(map[string]string)
}

func TestRegisterAndNewBackend(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register("test", func() Backend {
		return newMockBackend("test")
	})

	backend, err := NewBackend("test")
	if err != nil {
		t.Fatalf("NewBackend failed: %v", err)
	}
	mock, ok := backend.(*mockBackend)
	if !ok {
		t.Fatal("backend is not a mockBackend")
	}
	if mock.name != "test" {
		t.Errorf("got name %q, want %q", mock.name, "test")
	}
}

func TestNewBackendUnknown(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	if _, err := NewBackend("unknown"); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestRegisterNilFactory(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil factory")
		}
	}()

	Register("nil", nil)
}

func TestRegisterDuplicate(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	factory := func() Backend { return newMockBackend("dup") }
	Register("dup", factory)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for duplicate registration")
		}
	}()

	Register("dup", factory)
}

func TestUnregister(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register("temp", func() Backend { return newMockBackend("temp") })
	if !IsRegistered("temp") {
		t.Error("backend should be registered")
	}

	Unregister("temp")
	if IsRegistered("temp") {
		t.Error("backend should not be registered after Unregister")
	}

	// Unregister non-existent should not panic
	Unregister("nonexistent")
}

func TestBackends(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register("svg", func() Backend { return newMockBackend("s") })
	Register("png", func() Backend { return newMockBackend("p") })
	Register("raster", func() Backend { return newMockBackend("r") })

	names := Backends()
	expected := []string{"png", "raster", "svg"}
	if len(names) != len(expected) {
		t.Fatalf("expected %d backends, got %d", len(expected), len(names))
	}
	for i, name := range names {
		if name != expected[i] {
			t.Errorf("names[%d] = %q, want %q", i, name, expected[i])
		}
	}
}

func TestMustBackendPanic(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for unknown backend")
		}
	}()

	_ = MustBackend("unknown")
}

func TestExtensions(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register("image", func() Backend { return newMockBackend("image") }, ".png", "JPG")

	tests := []struct {
		ext  string
		want string
		ok   bool
	}{
		{".png", "image", true},
		{"PNG", "image", true},
		{".jpg", "image", true},
		{".svg", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		name, ok := ForExtension(tt.ext)
		if name != tt.want || ok != tt.ok {
			t.Errorf("ForExtension(%q) = %q, %v, want %q, %v", tt.ext, name, ok, tt.want, tt.ok)
		}
	}

	b, err := NewBackendForFile("out/reticle.PNG")
	if err != nil {
		t.Fatalf("NewBackendForFile: %v", err)
	}
	if mock, ok := b.(*mockBackend); !ok || mock.name != "image" {
		t.Errorf("NewBackendForFile returned %T", b)
	}
	if _, err := NewBackendForFile("reticle.gds"); err == nil {
		t.Error("NewBackendForFile(.gds) succeeded")
	}

	defer func() {
		if recover() == nil {
			t.Error("registering a taken extension did not panic")
		}
	}()
	Register("other", func() Backend { return newMockBackend("other") }, "png")
}

func TestUnregisterDropsExtensions(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register("image", func() Backend { return newMockBackend("image") }, ".png")
	Unregister("image")
	if _, ok := ForExtension(".png"); ok {
		t.Error(".png still registered after Unregister")
	}
	Register("again", func() Backend { return newMockBackend("again") }, ".png")
	if name, _ := ForExtension(".png"); name != "again" {
		t.Errorf("ForExtension(.png) = %q, want again", name)
	}
}
