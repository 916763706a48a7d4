package verify

import (
	"testing"

	"github.com/google/uuid"

	"github.com/hollowforge/wfcmap/pkg/solver"
	"github.com/hollowforge/wfcmap/pkg/tileset"
)

func baseSettings() *solver.Settings {
	rules := tileset.NewRuleTable()
	for _, dir := range tileset.Directions {
		rules.Add(0, dir, 0, 1)
	}
	return &solver.Settings{
		Width: 2, Height: 2,
		Tiles:        []tileset.TileDefinition{{ID: "grass", Name: "Grass"}},
		TileIndexMap: map[string]int{"grass": 0},
		Rules:        rules,
	}
}

func uniformGrid(id string, width, height int) [][]tileset.TileDefinition {
	grid := make([][]tileset.TileDefinition, height)
	for y := range grid {
		row := make([]tileset.TileDefinition, width)
		for x := range row {
			row[x] = tileset.TileDefinition{ID: id, Name: id}
		}
		grid[y] = row
	}
	return grid
}

func TestValidatePassesForConsistentGrid(t *testing.T) {
	settings := baseSettings()
	result := &solver.Result{
		RunID: uuid.New(), Success: true,
		Grid: uniformGrid("grass", 2, 2),
	}

	report, err := Validate(result, settings)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !report.Passed {
		t.Fatalf("expected a passing report, got: %+v", report)
	}
}

func TestValidateFailedResultShortCircuits(t *testing.T) {
	settings := baseSettings()
	result := &solver.Result{RunID: uuid.New(), Success: false, ErrorMessage: "contradiction after 10 attempts"}

	report, err := Validate(result, settings)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if report.Passed {
		t.Fatal("expected a failed report for an unsuccessful Result")
	}
	if len(report.Errors) != 1 {
		t.Fatalf("expected exactly one error, got %d", len(report.Errors))
	}
}

func TestValidateDetectsWrongDimensions(t *testing.T) {
	settings := baseSettings()
	result := &solver.Result{RunID: uuid.New(), Success: true, Grid: uniformGrid("grass", 3, 2)}

	report, err := Validate(result, settings)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if report.Passed {
		t.Fatal("expected dimension mismatch to fail validation")
	}
}

func TestValidateDetectsUnrecognisedTile(t *testing.T) {
	settings := baseSettings()
	grid := uniformGrid("grass", 2, 2)
	grid[0][0] = tileset.TileDefinition{ID: "lava", Name: "Lava"}
	result := &solver.Result{RunID: uuid.New(), Success: true, Grid: grid}

	report, err := Validate(result, settings)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if report.Passed {
		t.Fatal("expected unrecognised tile id to fail completeness")
	}
}

func TestValidateDetectsInconsistentAdjacency(t *testing.T) {
	rules := tileset.NewRuleTable()
	// Only permit grass->grass vertically, nothing horizontally.
	rules.Add(0, tileset.Down, 0, 1)
	rules.Add(0, tileset.Up, 0, 1)
	settings := &solver.Settings{
		Width: 2, Height: 1,
		Tiles:        []tileset.TileDefinition{{ID: "grass", Name: "Grass"}},
		TileIndexMap: map[string]int{"grass": 0},
		Rules:        rules,
	}
	result := &solver.Result{RunID: uuid.New(), Success: true, Grid: uniformGrid("grass", 2, 1)}

	report, err := Validate(result, settings)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if report.Passed {
		t.Fatal("expected missing horizontal rule to fail consistency")
	}
}

func TestValidateNilArgumentsError(t *testing.T) {
	if _, err := Validate(nil, baseSettings()); err == nil {
		t.Error("expected error for nil result")
	}
	if _, err := Validate(&solver.Result{}, nil); err == nil {
		t.Error("expected error for nil settings")
	}
}

func TestSummaryIncludesStatusAndChecks(t *testing.T) {
	settings := baseSettings()
	result := &solver.Result{RunID: uuid.New(), Success: true, Grid: uniformGrid("grass", 2, 2)}
	report, _ := Validate(result, settings)

	summary := Summary(report)
	if summary == "" {
		t.Fatal("expected non-empty summary")
	}
	if !contains(summary, "PASSED") {
		t.Error("expected summary to report PASSED status")
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
