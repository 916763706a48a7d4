// Package verify performs post-hoc consistency checking of a solver.Result
// against the settings that produced it: the same invariants the solver
// test suite exercises as unit tests, exposed here for callers that only
// have a finished Result.
package verify

import (
	"fmt"

	"github.com/hollowforge/wfcmap/pkg/solver"
	"github.com/hollowforge/wfcmap/pkg/tileset"
)

// CheckResult is the outcome of one named invariant check.
type CheckResult struct {
	Name    string
	Passed  bool
	Details string
}

// Report aggregates every check run against one Result.
type Report struct {
	Passed bool
	Checks []CheckResult
	Errors []string
}

// Validate runs every applicable invariant check against result. A failed
// Result (Success == false) is reported as a single failing check rather
// than inspected further — there is no grid to check.
func Validate(result *solver.Result, settings *solver.Settings) (*Report, error) {
	if result == nil {
		return nil, fmt.Errorf("result cannot be nil")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}

	report := &Report{Passed: true}

	if !result.Success {
		check := CheckResult{Name: "success", Passed: false, Details: result.ErrorMessage}
		report.Checks = append(report.Checks, check)
		report.Errors = append(report.Errors, result.ErrorMessage)
		report.Passed = false
		return report, nil
	}

	for _, check := range []CheckResult{
		checkDimensions(result, settings),
		checkCompleteness(result, settings),
		checkConsistency(result, settings),
		checkIndexDensity(result, settings),
	} {
		report.Checks = append(report.Checks, check)
		if !check.Passed {
			report.Passed = false
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %s", check.Name, check.Details))
		}
	}

	return report, nil
}

// checkDimensions verifies the Result grid matches the requested width and
// height exactly.
func checkDimensions(result *solver.Result, settings *solver.Settings) CheckResult {
	if len(result.Grid) != settings.Height {
		return CheckResult{
			Name: "dimensions", Passed: false,
			Details: fmt.Sprintf("grid has %d rows, want %d", len(result.Grid), settings.Height),
		}
	}
	for y, row := range result.Grid {
		if len(row) != settings.Width {
			return CheckResult{
				Name: "dimensions", Passed: false,
				Details: fmt.Sprintf("row %d has %d columns, want %d", y, len(row), settings.Width),
			}
		}
	}
	return CheckResult{Name: "dimensions", Passed: true}
}

// checkCompleteness verifies every cell was assigned one of the configured
// tile definitions (i.e. holds a recognised id, never a zero value).
func checkCompleteness(result *solver.Result, settings *solver.Settings) CheckResult {
	for y, row := range result.Grid {
		for x, td := range row {
			if _, ok := settings.TileIndexMap[td.ID]; !ok {
				return CheckResult{
					Name: "completeness", Passed: false,
					Details: fmt.Sprintf("cell (%d,%d) holds unrecognised tile id %q", x, y, td.ID),
				}
			}
		}
	}
	return CheckResult{Name: "completeness", Passed: true}
}

// checkConsistency verifies every horizontally and vertically adjacent pair
// of tiles is permitted by the compiled rule table.
func checkConsistency(result *solver.Result, settings *solver.Settings) CheckResult {
	if settings.Rules == nil {
		return CheckResult{Name: "consistency", Passed: true, Details: "no rules configured"}
	}
	height := len(result.Grid)
	for y, row := range result.Grid {
		for x, td := range row {
			from, ok := settings.TileIndexMap[td.ID]
			if !ok {
				continue
			}
			if x+1 < len(row) {
				to := settings.TileIndexMap[row[x+1].ID]
				if !settings.Rules.Allows(from, tileset.Right, to) {
					return inconsistentPair(x, y, tileset.Right, td.ID, row[x+1].ID)
				}
				if !settings.Rules.Allows(to, tileset.Left, from) {
					return inconsistentPair(x+1, y, tileset.Left, row[x+1].ID, td.ID)
				}
			}
			if y+1 < height {
				to := settings.TileIndexMap[result.Grid[y+1][x].ID]
				if !settings.Rules.Allows(from, tileset.Down, to) {
					return inconsistentPair(x, y, tileset.Down, td.ID, result.Grid[y+1][x].ID)
				}
				if !settings.Rules.Allows(to, tileset.Up, from) {
					return inconsistentPair(x, y+1, tileset.Up, result.Grid[y+1][x].ID, td.ID)
				}
			}
		}
	}
	return CheckResult{Name: "consistency", Passed: true}
}

func inconsistentPair(x, y int, dir tileset.Direction, fromID, toID string) CheckResult {
	return CheckResult{
		Name: "consistency", Passed: false,
		Details: fmt.Sprintf("cell (%d,%d)=%q has no rule permitting %q as its %s neighbour (%q)", x, y, fromID, toID, dir, toID),
	}
}

// checkIndexDensity verifies every tile id referenced in the grid has a
// corresponding dense index within [0, len(settings.Tiles)) — a sanity
// check on the tile/rule table compiled for this run.
func checkIndexDensity(result *solver.Result, settings *solver.Settings) CheckResult {
	for y, row := range result.Grid {
		for x, td := range row {
			idx, ok := settings.TileIndexMap[td.ID]
			if !ok || idx < 0 || idx >= len(settings.Tiles) {
				return CheckResult{
					Name: "index-density", Passed: false,
					Details: fmt.Sprintf("cell (%d,%d) tile %q has no valid dense index", x, y, td.ID),
				}
			}
		}
	}
	return CheckResult{Name: "index-density", Passed: true}
}

// Summary renders a human-readable report, in the style of a plain
// pass/fail checklist.
func Summary(report *Report) string {
	out := "=== Verification Report ===\n\n"
	if report.Passed {
		out += "Status: PASSED\n\n"
	} else {
		out += "Status: FAILED\n\n"
	}
	for _, c := range report.Checks {
		status := "PASS"
		if !c.Passed {
			status = "FAIL"
		}
		out += fmt.Sprintf("[%s] %s", status, c.Name)
		if c.Details != "" {
			out += fmt.Sprintf(": %s", c.Details)
		}
		out += "\n"
	}
	return out
}
