// Package solver implements the wave-function-collapse generation loop:
// minimum-entropy selection, weighted collapse, constraint propagation,
// contradiction-triggered retry, and the plugin hook points consulted at
// each step.
package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hollowforge/wfcmap/pkg/grid"
	"github.com/hollowforge/wfcmap/pkg/plugin"
	"github.com/hollowforge/wfcmap/pkg/progress"
	"github.com/hollowforge/wfcmap/pkg/rng"
	"github.com/hollowforge/wfcmap/pkg/tileset"
)

// Solve runs one generation request to completion, retrying internally on
// contradiction up to Settings' retry budget. ctx and cancel are both
// consulted at every cancellation checkpoint — either firing is sufficient
// to abort. sink may be progress.NopSink if the caller does not want
// progress events.
func Solve(ctx context.Context, settings Settings, sink progress.Sink, cancel *progress.CancelSignal) Result {
	runID := uuid.New()

	if settings.Width < 1 || settings.Height < 1 || settings.numStates() == 0 {
		return Result{RunID: runID, Success: false, ErrorMessage: ErrEmptyConfiguration.Error()}
	}
	if sink == nil {
		sink = progress.NopSink
	}

	effectiveSeed := settings.Seed
	if !settings.HasSeed {
		effectiveSeed = nonDeterministicSeed()
		sink.OnProgress(progress.Event{
			RunID:   runID,
			Phase:   progress.PhaseInit,
			Percent: 0,
			Message: fmt.Sprintf("no seed supplied; using %d", effectiveSeed),
		})
	}
	configHash := settings.configHash()

	budget := settings.retryBudget()
	for attempt := 0; attempt < budget; attempt++ {
		if isCancelled(ctx, cancel) {
			return cancelledResult(runID)
		}

		g, err := attemptSolve(ctx, &settings, runID, effectiveSeed, attempt, configHash, sink, cancel)
		if err == nil {
			tiles := materialize(g, settings.Tiles)
			tiles = runPostProcess(&settings, tiles)
			return Result{RunID: runID, Success: true, Grid: tiles, Attempts: attempt + 1}
		}
		if err == errCancelledSentinel {
			return cancelledResult(runID)
		}
		// contradiction: fall through to retry unless budget exhausted
	}

	return Result{
		RunID:        runID,
		Success:      false,
		ErrorMessage: fmt.Errorf("%w (%d attempts)", ErrRetryBudgetExhausted, budget).Error(),
		Attempts:     budget,
	}
}

// errCancelledSentinel distinguishes cancellation from contradiction inside
// attemptSolve without exporting a second return path.
var errCancelledSentinel = fmt.Errorf("cancelled")

// attemptSolve runs Steps 0-3 of one attempt: initialisation, the
// selection/collapse/propagation loop until every cell is collapsed or a
// contradiction/cancellation interrupts it.
func attemptSolve(ctx context.Context, settings *Settings, runID uuid.UUID, seed uint64, attempt int, configHash []byte, sink progress.Sink, cancel *progress.CancelSignal) (*grid.Grid, error) {
	jitterRNG := rng.ForAttempt(seed, attempt, "jitter", configHash)
	solveRNG := rng.ForAttempt(seed, attempt, "solve", configHash)

	g := grid.New(settings.Width, settings.Height, settings.numStates(), func(x, y int) float64 {
		return jitterRNG.Float64()
	})

	hookCtx := plugin.NewContext(settings.Width, settings.Height)
	for _, h := range settings.Hooks {
		if h == nil || !h.Enabled() {
			continue
		}
		h := h
		_ = plugin.Safe(func() { h.OnBeforeGeneration(settings) })
	}
	sink.OnProgress(progress.Event{RunID: runID, Phase: progress.PhaseInit, Percent: 0})

	total := settings.Width * settings.Height
	collapsed := 0
	every := settings.progressEvery()

	reportCollapse := func() {
		collapsed++
		if collapsed%every == 0 {
			sink.OnProgress(progress.Event{
				RunID:   runID,
				Phase:   progress.PhaseSolve,
				Percent: float64(collapsed) / float64(total) * 100,
			})
		}
	}

	for {
		if isCancelled(ctx, cancel) {
			return nil, errCancelledSentinel
		}

		x, y, found, contradiction := selectCell(g)
		if contradiction {
			return nil, ErrContradiction
		}
		if !found {
			break
		}

		if err := collapseCell(g, settings, hookCtx, solveRNG, x, y, reportCollapse); err != nil {
			return nil, err
		}

		if err := propagate(ctx, g, settings, hookCtx, x, y, cancel, reportCollapse); err != nil {
			return nil, err
		}
	}

	for _, h := range settings.Hooks {
		if h == nil || !h.Enabled() {
			continue
		}
		h := h
		_ = plugin.Safe(func() { h.OnAfterGeneration(g, hookCtx) })
	}

	return g, nil
}

// selectCell implements Step 1: scan row-major for the uncollapsed cell with
// the smallest entropy (jitter is already folded into entropy, and scan
// order itself breaks any remaining tie since a later equal-entropy cell
// never replaces the first found).
func selectCell(g *grid.Grid) (x, y int, found, contradiction bool) {
	bestEntropy := 0.0
	haveBest := false

	for py := 0; py < g.Height; py++ {
		for px := 0; px < g.Width; px++ {
			c := g.At(px, py)
			if c.Collapsed() {
				continue
			}
			if c.PopCount() == 0 {
				return px, py, true, true
			}
			e := c.Entropy()
			if !haveBest || e < bestEntropy {
				bestEntropy = e
				x, y = px, py
				haveBest = true
				found = true
			}
		}
	}
	return x, y, found, false
}

// collapseCell implements Step 2.
func collapseCell(g *grid.Grid, settings *Settings, hookCtx *plugin.Context, solveRNG *rng.RNG, x, y int, reportCollapse func()) error {
	candidates := g.At(x, y).PossibleStates()

	for _, h := range settings.Hooks {
		if h == nil || !h.Enabled() {
			continue
		}
		h := h
		narrowed := candidates
		err := plugin.Safe(func() {
			narrowed = h.OnBeforeCollapse(x, y, candidates, hookCtx)
		})
		if err == nil {
			candidates = narrowed
		}
	}
	if len(candidates) == 0 {
		return &ContradictionError{X: x, Y: y}
	}

	weights := make([]float64, len(candidates))
	anyPositive := false
	for i, s := range candidates {
		weights[i] = outgoingWeight(g, settings, x, y, s)
		if weights[i] > 0 {
			anyPositive = true
		}
	}
	if !anyPositive {
		for i := range weights {
			weights[i] = 1
		}
	}

	choice := solveRNG.WeightedChoice(weights)
	if choice < 0 {
		choice = 0
	}
	state := candidates[choice]

	if err := g.At(x, y).Collapse(state); err != nil {
		return &ContradictionError{X: x, Y: y}
	}
	reportCollapse()

	for _, h := range settings.Hooks {
		if h == nil || !h.Enabled() {
			continue
		}
		h := h
		_ = plugin.Safe(func() { h.OnAfterCollapse(x, y, state, hookCtx) })
	}
	return nil
}

// outgoingWeight sums the rule weight from state s in every direction that
// has an in-bounds neighbour — an approximate measure of s's outgoing
// connectivity, used to bias the weighted draw toward states that keep the
// grid solvable.
func outgoingWeight(g *grid.Grid, settings *Settings, x, y, s int) float64 {
	total := 0.0
	for _, dir := range tileset.Directions {
		if _, _, _, ok := g.Neighbor(x, y, dir); !ok {
			continue
		}
		for _, conn := range settings.Rules.Lookup(s, dir) {
			total += conn.Weight
		}
	}
	return total
}

// propagate implements Step 3: FIFO constraint propagation from the just-
// collapsed cell until the worklist drains, a contradiction is found, or
// cancellation fires.
func propagate(ctx context.Context, g *grid.Grid, settings *Settings, hookCtx *plugin.Context, startX, startY int, cancel *progress.CancelSignal, reportCollapse func()) error {
	type pos struct{ x, y int }

	enqueued := make([][]bool, g.Height)
	for i := range enqueued {
		enqueued[i] = make([]bool, g.Width)
	}

	queue := []pos{{startX, startY}}
	enqueued[startY][startX] = true

	for len(queue) > 0 {
		if isCancelled(ctx, cancel) {
			return errCancelledSentinel
		}

		p := queue[0]
		queue = queue[1:]
		enqueued[p.y][p.x] = false

		src := g.At(p.x, p.y)
		srcStates := src.PossibleStates()

		for _, dir := range tileset.Directions {
			nx, ny, neighbor, ok := g.Neighbor(p.x, p.y, dir)
			if !ok {
				continue
			}
			wasCollapsed := neighbor.Collapsed()

			allowed := make(map[int]bool)
			for _, s := range srcStates {
				for _, conn := range settings.Rules.Lookup(s, dir) {
					allowed[conn.To] = true
				}
			}

			changed := neighbor.ConstrainToStates(allowed)
			if !changed {
				continue
			}
			if neighbor.PopCount() == 0 {
				return &ContradictionError{X: nx, Y: ny}
			}
			if !wasCollapsed && neighbor.Collapsed() {
				reportCollapse()
				for _, h := range settings.Hooks {
					if h == nil || !h.Enabled() {
						continue
					}
					h := h
					state := neighbor.CollapsedState()
					_ = plugin.Safe(func() { h.OnAfterCollapse(nx, ny, state, hookCtx) })
				}
			}
			if !enqueued[ny][nx] {
				enqueued[ny][nx] = true
				queue = append(queue, pos{nx, ny})
			}
		}
	}
	return nil
}

// materialize builds the finalisation-time tile grid from collapsed state
// indices.
func materialize(g *grid.Grid, tiles []tileset.TileDefinition) [][]tileset.TileDefinition {
	out := make([][]tileset.TileDefinition, g.Height)
	for y := 0; y < g.Height; y++ {
		row := make([]tileset.TileDefinition, g.Width)
		for x := 0; x < g.Width; x++ {
			row[x] = tiles[g.At(x, y).CollapsedState()]
		}
		out[y] = row
	}
	return out
}

// runPostProcess fires post-process hooks in registration order, each
// receiving and potentially replacing the grid. A hook that panics, or
// returns a value of the wrong type, is treated as a no-op.
func runPostProcess(settings *Settings, tiles [][]tileset.TileDefinition) [][]tileset.TileDefinition {
	hookCtx := plugin.NewContext(settings.Width, settings.Height)
	current := any(tiles)

	for _, h := range settings.Hooks {
		if h == nil || !h.Enabled() {
			continue
		}
		h := h
		prev := current
		err := plugin.Safe(func() {
			current = h.OnPostProcess(current, hookCtx)
		})
		if err != nil {
			current = prev
			continue
		}
		if _, ok := current.([][]tileset.TileDefinition); !ok {
			current = prev
		}
	}

	out, _ := current.([][]tileset.TileDefinition)
	return out
}

func isCancelled(ctx context.Context, cancel *progress.CancelSignal) bool {
	if cancel.Cancelled() {
		return true
	}
	if ctx != nil {
		select {
		case <-ctx.Done():
			return true
		default:
		}
	}
	return false
}

func cancelledResult(runID uuid.UUID) Result {
	return Result{RunID: runID, Success: false, ErrorMessage: ErrCancelled.Error()}
}

func nonDeterministicSeed() uint64 {
	now := time.Now().UnixNano()
	if now <= 0 {
		now = 1
	}
	return uint64(now)
}
