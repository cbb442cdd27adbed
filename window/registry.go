// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import (
	"errors"
	"sort"
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/winblit/format"
)

// Options configures a window created through the registry.
type Options struct {
	// Width and Height are the requested window size in pixels.
	// Backends with a fixed size (a terminal, a display panel) may ignore them.
	Width  int
	Height int

	// Format is the pixel format the caller intends to negotiate.
	Format format.PixelFormat

	// StrideAlign pads buffer rows to a multiple of this many pixels.
	StrideAlign int

	// Title is used by backends that open a visible window.
	Title string

	// Scale is the DPI scale factor. Width and Height are logical sizes;
	// the memory and desktop backends allocate Width*Scale x Height*Scale
	// pixels. Zero means 1.
	Scale float64
}

// Factory creates a new Window with the given options.
type Factory func(opts Options) (Window, error)

// RegistryEntry represents a registered window backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	// Built-in priorities:
	//   - 50: desktop window (ebiten)
	//   - 20: terminal (tcell)
	//   - 10: memory
	Priority int

	// Factory creates window instances.
	Factory Factory

	// Available reports if the backend can be used on this system.
	Available func() bool
}

var globalRegistry = &Registry{}

// Registry manages registered window backends.
//
// Backends register themselves from init, so importing a backend package
// for side effects is enough to make it selectable by name:
//
//	import _ "github.com/gogpu/winblit/backend/term"
//
//	w, err := window.NewByName("term", window.Options{})
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and New.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds a backend to the global registry.
// If available is nil, the backend is assumed always available.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, factory Factory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered backend names sorted by priority (highest first).
func List() []string {
	return globalRegistry.List()
}

// Available returns names of all available backends sorted by priority.
func Available() []string {
	return globalRegistry.Available()
}

// Get returns information about a specific backend.
func Get(name string) (*RegistryEntry, bool) {
	return globalRegistry.Get(name)
}

// New creates a window using the best available backend.
func New(opts Options) (Window, error) {
	return globalRegistry.New(opts)
}

// NewByName creates a window using a specific named backend.
func NewByName(name string, opts Options) (Window, error) {
	return globalRegistry.NewByName(name, opts)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*RegistryEntry)
	}

	if available == nil {
		available = func() bool { return true }
	}

	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// Available returns names of all available backends sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// Get returns information about a specific backend.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}

	entryCopy := *entry
	return &entryCopy, true
}

// New creates a window using the best available backend, falling back
// to lower priorities when a factory fails.
func (r *Registry) New(opts Options) (Window, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	if len(available) == 0 {
		return nil, ErrNoBackendAvailable
	}

	var lastErr error
	for _, name := range available {
		w, err := r.NewByName(name, opts)
		if err == nil {
			return w, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// NewByName creates a window using a specific backend.
func (r *Registry) NewByName(name string, opts Options) (Window, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}

	if !entry.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}

	return entry.Factory(opts)
}

// sortedNames returns backend names sorted by priority (highest first),
// ties broken by name. Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	entries := make([]*RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// ErrNoBackendAvailable is returned when no window backends are registered
// or available on the current system.
var ErrNoBackendAvailable = errors.New("window: no backend available")

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "window: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "window: backend unavailable: " + e.Name
}

func init() {
	Register("memory", 10, func(opts Options) (Window, error) {
		w, h := opts.Width, opts.Height
		if w <= 0 || h <= 0 {
			return nil, errors.New("window: memory backend needs a positive size")
		}
		wp := gpucontext.NullWindowProvider{W: w, H: h, SF: opts.Scale}
		m := FromProvider(wp, WithStrideAlign(opts.StrideAlign))
		if m.Width() <= 0 || m.Height() <= 0 {
			return nil, errors.New("window: memory backend scaled to an empty size")
		}
		return m, nil
	}, nil)
}
