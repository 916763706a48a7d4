// Package exprhook implements an optional GenerationHook plugin that filters
// before-collapse candidates with a user-supplied expr-lang expression
// instead of Go code, so a configuration file can narrow tile choices
// without a custom plugin build.
//
// Grounded on the condition-compile-and-run pattern used across the
// retrieved pack's workflow engine (condition_cache.go): compile once,
// evaluate against a small map environment.
package exprhook

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/hollowforge/wfcmap/pkg/plugin"
	"github.com/hollowforge/wfcmap/pkg/tileset"
)

// candidateEnv is the evaluation environment exposed to a Keep expression.
// Fields are exported so expr can resolve them by name.
type candidateEnv struct {
	X          int
	Y          int
	TileID     string
	Category   string
	Properties map[string]string
}

// Hook implements plugin.GenerationHook by compiling Keep once (lazily, on
// first use) and running it for every before-collapse candidate. Keep must
// evaluate to a bool; a candidate survives only if Keep returns true for it.
//
// An empty Keep string disables filtering (every candidate passes), so a
// Hook can be registered unconditionally and only take effect when a
// configuration actually supplies an expression.
type Hook struct {
	plugin.NoopHook
	Keep  string
	Tiles []tileset.TileDefinition // index → definition, for resolving id/category/properties

	program *vm.Program
}

// NewHook returns an enabled Hook for the given tile list and filter
// expression. Pass an empty keep to register a Hook that never filters.
func NewHook(tiles []tileset.TileDefinition, keep string) *Hook {
	return &Hook{
		NoopHook: plugin.NoopHook{EnabledFlag: true},
		Keep:     keep,
		Tiles:    tiles,
	}
}

func (h *Hook) compile() error {
	if h.program != nil || h.Keep == "" {
		return nil
	}
	program, err := expr.Compile(h.Keep, expr.Env(candidateEnv{}), expr.AsBool())
	if err != nil {
		return fmt.Errorf("exprhook: compiling %q: %w", h.Keep, err)
	}
	h.program = program
	return nil
}

// OnBeforeCollapse narrows possible to the candidates for which Keep
// evaluates true. On a compile error, or when Keep is empty, the input is
// returned unmodified — a malformed expression degrades to a no-op rather
// than aborting generation. A candidate whose evaluation fails, or whose
// index has no tile definition, is kept.
func (h *Hook) OnBeforeCollapse(x, y int, possible []int, ctx *plugin.Context) []int {
	if h.Keep == "" {
		return possible
	}
	if err := h.compile(); err != nil {
		return possible
	}

	kept := make([]int, 0, len(possible))
	for _, idx := range possible {
		if idx < 0 || idx >= len(h.Tiles) {
			kept = append(kept, idx)
			continue
		}
		td := h.Tiles[idx]
		env := candidateEnv{X: x, Y: y, TileID: td.ID, Category: td.Category, Properties: td.Properties}
		out, err := expr.Run(h.program, env)
		if err != nil {
			kept = append(kept, idx)
			continue
		}
		if keep, ok := out.(bool); ok && keep {
			kept = append(kept, idx)
		}
	}
	return kept
}
