// Package plugin defines the two extension-point interfaces consulted by
// the solver and a generic registry usable for either: register by name,
// list in registration order. The registry does not filter by Enabled();
// callers check that themselves.
package plugin

import (
	"fmt"
	"sync"

	"github.com/hollowforge/wfcmap/pkg/tileset"
)

// TileSetPlugin contributes tile and rule definitions to the configuration
// compiler.
type TileSetPlugin interface {
	Enabled() bool
	TileDefinitions() []tileset.TileDefinition
	RuleDefinitions() []tileset.TileRuleDefinition
}

// Context is the view passed to generation hooks: the grid dimensions plus
// a mutable scratch map plugins may use to carry state between their own
// hook invocations. It does not expose the grid, the settings or the RNG.
// The solver creates a fresh Context for each attempt (shared by that
// attempt's OnBeforeCollapse, OnAfterCollapse and OnAfterGeneration calls)
// and a separate one for OnPostProcess, so Scratch contents do not carry
// across attempts or into post-processing.
type Context struct {
	Width, Height int
	Scratch       map[string]any
}

// NewContext returns a Context with an initialised scratch map.
func NewContext(width, height int) *Context {
	return &Context{Width: width, Height: height, Scratch: make(map[string]any)}
}

// GenerationHook inserts behaviour at one of five fixed points in the
// solver loop. All five methods are optional to override — embed NoopHook
// to get default no-ops for the ones you don't need.
type GenerationHook interface {
	Enabled() bool
	OnBeforeGeneration(settings any)
	OnBeforeCollapse(x, y int, possible []int, ctx *Context) []int
	OnAfterCollapse(x, y, state int, ctx *Context)
	OnAfterGeneration(grid any, ctx *Context)
	OnPostProcess(grid any, ctx *Context) any
}

// NoopHook implements GenerationHook with no-ops for every method. Embed it
// in a plugin that only needs to override one or two hooks.
type NoopHook struct {
	EnabledFlag bool
}

func (h NoopHook) Enabled() bool { return h.EnabledFlag }

func (h NoopHook) OnBeforeGeneration(settings any) {}

func (h NoopHook) OnBeforeCollapse(x, y int, possible []int, ctx *Context) []int { return possible }

func (h NoopHook) OnAfterCollapse(x, y, state int, ctx *Context) {}

func (h NoopHook) OnAfterGeneration(grid any, ctx *Context) {}

func (h NoopHook) OnPostProcess(grid any, ctx *Context) any { return grid }

// Registry holds an ordered list of registered plugins of one kind, keyed by
// name, preserving registration order so the solver can iterate enabled
// plugins in the order they were registered.
type Registry[T any] struct {
	mu     sync.RWMutex
	order  []string
	byName map[string]T
}

// NewRegistry returns an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{byName: make(map[string]T)}
}

// Register adds a plugin under name. Panics if name is already registered.
func (r *Registry[T]) Register(name string, p T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		panic(fmt.Sprintf("plugin: %q already registered", name))
	}
	r.byName[name] = p
	r.order = append(r.order, name)
}

// Get retrieves a registered plugin by name. ok is false if not found.
func (r *Registry[T]) Get(name string) (p T, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok = r.byName[name]
	return p, ok
}

// Ordered returns every registered plugin in registration order.
func (r *Registry[T]) Ordered() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Names returns all registered names in registration order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Safe runs fn and recovers any panic, returning it as an error. The solver
// wraps every hook invocation in Safe so a faulting plugin degrades to a
// no-op instead of aborting generation.
func Safe(fn func()) (panicErr error) {
	defer func() {
		if r := recover(); r != nil {
			panicErr = fmt.Errorf("plugin: panic: %v", r)
		}
	}()
	fn()
	return nil
}
