package tiling

import (
	"fmt"
	"sort"
	"sync"
)

// LayoutOptions carries the tunables engines are created with.
type LayoutOptions struct {
	NumInPrimary    int
	PrimaryRatio    float64
	RatioIncrement  float64
	FlexibleLastRow bool
}

// DefaultLayoutOptions returns the stock tunables.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		NumInPrimary:    1,
		PrimaryRatio:    0.5,
		RatioIncrement:  0.03,
		FlexibleLastRow: true,
	}
}

// LayoutFactory builds a fresh engine. Each workspace gets its own engines so tunables
// are not shared between workspaces.
type LayoutFactory func(opts LayoutOptions) LayoutEngine

var (
	registryMu sync.RWMutex
	registry   = make(map[string]LayoutFactory)
)

func init() {
	RegisterLayout("tall", func(o LayoutOptions) LayoutEngine {
		return NewTallLayoutEngine(o.NumInPrimary, o.PrimaryRatio, o.RatioIncrement)
	})
	RegisterLayout("wide", func(o LayoutOptions) LayoutEngine {
		return NewWideLayoutEngine(o.NumInPrimary, o.PrimaryRatio, o.RatioIncrement)
	})
	RegisterLayout("full", func(LayoutOptions) LayoutEngine {
		return NewFullLayoutEngine()
	})
	RegisterLayout("grid", func(o LayoutOptions) LayoutEngine {
		return NewGridLayoutEngine(o.FlexibleLastRow)
	})
}

// RegisterLayout makes a layout engine available by name. It panics if the name is
// empty, the factory is nil, or the name is already registered.
func RegisterLayout(name string, factory LayoutFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if name == "" {
		panic("tiling: RegisterLayout with empty name")
	}
	if factory == nil {
		panic("tiling: RegisterLayout factory is nil for " + name)
	}
	if _, dup := registry[name]; dup {
		panic("tiling: RegisterLayout called twice for " + name)
	}
	registry[name] = factory
}

// NewLayoutEngine builds a registered engine.
func NewLayoutEngine(name string, opts LayoutOptions) (LayoutEngine, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown layout %q", name)
	}
	return factory(opts), nil
}

// IsRegisteredLayout reports whether a layout name is known.
func IsRegisteredLayout(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}

// LayoutNames returns registered layout names in sorted order.
func LayoutNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
