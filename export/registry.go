package export

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// BackendFactory creates a new backend instance.
type BackendFactory func() Backend

var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
	extensions = make(map[string]string) // ".png" -> "raster"
)

// Register makes a backend available under name, and optionally as the
// writer for files with the given extensions. It is called from the
// init function of backend packages:
//
//	func init() {
//	    export.Register("svg", func() export.Backend { return New() }, ".svg")
//	}
//
// Register panics if factory is nil, or if name or one of the
// extensions is already registered.
func Register(name string, factory BackendFactory, exts ...string) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("export: Register factory is nil")
	}
	if _, dup := backends[name]; dup {
		panic("export: Register called twice for " + name)
	}
	for _, ext := range exts {
		if owner, dup := extensions[normalizeExt(ext)]; dup {
			panic("export: extension " + ext + " already registered by " + owner)
		}
	}
	backends[name] = factory
	for _, ext := range exts {
		extensions[normalizeExt(ext)] = name
	}
}

// Unregister removes a backend and its extensions. Unknown names are
// ignored.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
	for ext, owner := range extensions {
		if owner == name {
			delete(extensions, ext)
		}
	}
}

// normalizeExt lower-cases ext and gives it a leading dot, so "PNG",
// "png" and ".png" are the same key.
func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// ForExtension returns the backend registered for a file extension.
func ForExtension(ext string) (string, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	name, ok := extensions[normalizeExt(ext)]
	return name, ok
}

// NewBackendForFile creates the backend registered for the extension
// of path.
func NewBackendForFile(path string) (Backend, error) {
	name, ok := ForExtension(filepath.Ext(path))
	if !ok {
		return nil, fmt.Errorf("export: no backend for %q (forgotten import?)", filepath.Base(path))
	}
	return NewBackend(name)
}

// NewBackend creates a backend by registered name.
func NewBackend(name string) (Backend, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("export: unknown backend %q (forgotten import?)", name)
	}
	return factory(), nil
}

// MustBackend is like NewBackend but panics on error.
func MustBackend(name string) Backend {
	b, err := NewBackend(name)
	if err != nil {
		panic(err)
	}
	return b
}

// Backends returns the registered names in sorted order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}
