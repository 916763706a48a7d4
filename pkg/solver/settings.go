package solver

import (
	"crypto/sha256"
	"fmt"

	"github.com/hollowforge/wfcmap/pkg/plugin"
	"github.com/hollowforge/wfcmap/pkg/tileset"
)

const (
	// DefaultRetryBudget is the number of attempts Solve makes (the first
	// one plus contradiction-triggered restarts) before giving up.
	DefaultRetryBudget = 10

	// DefaultProgressEvery is the cells-collapsed cadence for solve-phase
	// progress events when Settings.ProgressEvery is left at zero.
	DefaultProgressEvery = 16
)

// Settings is the immutable input bundle for one Solve call. It is
// constructed per request and never mutated once Solve begins.
type Settings struct {
	Width, Height int

	// Tiles is the dense-indexed tile list (index == position in slice).
	Tiles []tileset.TileDefinition

	// TileIndexMap maps a tile id to its dense index, mirroring Tiles.
	TileIndexMap map[string]int

	// Rules is the compiled adjacency rule table.
	Rules *tileset.RuleTable

	// Seed seeds the solver's RNG. HasSeed distinguishes "seed 0 supplied
	// explicitly" from "no seed supplied" (non-deterministic fallback,
	// recorded into the progress stream).
	Seed    uint64
	HasSeed bool

	EnableDebugRendering bool
	PluginSettings       map[string]any

	// Hooks is the ordered list of registered GenerationHook plugins; Solve
	// filters to Enabled() ones at each call site, in this order.
	Hooks []plugin.GenerationHook

	// RetryBudget overrides DefaultRetryBudget when > 0.
	RetryBudget int

	// ProgressEvery overrides DefaultProgressEvery when > 0.
	ProgressEvery int
}

// retryBudget returns the effective retry budget for s.
func (s *Settings) retryBudget() int {
	if s.RetryBudget > 0 {
		return s.RetryBudget
	}
	return DefaultRetryBudget
}

// progressEvery returns the effective progress cadence for s.
func (s *Settings) progressEvery() int {
	if s.ProgressEvery > 0 {
		return s.ProgressEvery
	}
	return DefaultProgressEvery
}

// numStates returns the number of distinct tile states.
func (s *Settings) numStates() int {
	return len(s.Tiles)
}

// configHash derives a stable fingerprint of the tile/rule configuration
// (width, height, tile ids in index order, and the rule table), used to
// perturb per-stage RNG derivation whenever the configuration changes under
// the same seed.
func (s *Settings) configHash() []byte {
	h := sha256.New()
	fmt.Fprintf(h, "%d|%d|", s.Width, s.Height)
	for _, t := range s.Tiles {
		fmt.Fprintf(h, "%s;", t.ID)
	}
	if s.Rules != nil {
		h.Write([]byte(s.Rules.Fingerprint()))
	}
	return h.Sum(nil)
}
