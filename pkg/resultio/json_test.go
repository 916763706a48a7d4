package resultio

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/hollowforge/wfcmap/pkg/solver"
	"github.com/hollowforge/wfcmap/pkg/tileset"
)

func sampleResult() *solver.Result {
	return &solver.Result{
		RunID:   uuid.New(),
		Success: true,
		Grid: [][]tileset.TileDefinition{
			{{ID: "grass", Name: "Grass"}, {ID: "water", Name: "Water"}},
			{{ID: "water", Name: "Water"}, {ID: "grass", Name: "Grass"}},
		},
		Attempts: 1,
	}
}

func TestExportJSON(t *testing.T) {
	data, err := ExportJSON(sampleResult())
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("ExportJSON() returned empty data")
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("ExportJSON() produced invalid JSON: %v", err)
	}
	if !doc.Success {
		t.Error("Success not preserved")
	}
	if len(doc.Grid) != 2 || len(doc.Grid[0]) != 2 {
		t.Fatalf("unexpected grid shape: %+v", doc.Grid)
	}
	if doc.Grid[0][0] != "grass" {
		t.Errorf("Grid[0][0] = %q, want grass", doc.Grid[0][0])
	}
}

func TestExportJSONCompactSmallerThanIndented(t *testing.T) {
	result := sampleResult()

	compact, err := ExportJSONCompact(result)
	if err != nil {
		t.Fatalf("ExportJSONCompact() error = %v", err)
	}
	indented, err := ExportJSON(result)
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	if len(compact) >= len(indented) {
		t.Errorf("compact (%d) not smaller than indented (%d)", len(compact), len(indented))
	}
}

func TestSaveJSONToFile(t *testing.T) {
	result := sampleResult()
	path := filepath.Join(t.TempDir(), "result.json")

	if err := SaveJSONToFile(result, path); err != nil {
		t.Fatalf("SaveJSONToFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved file: %v", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("saved file contains invalid JSON: %v", err)
	}
	if doc.RunID != result.RunID.String() {
		t.Errorf("RunID = %q, want %q", doc.RunID, result.RunID.String())
	}
}

func TestSaveJSONToFileInvalidPathFails(t *testing.T) {
	err := SaveJSONToFile(sampleResult(), "/nonexistent/directory/result.json")
	if err == nil {
		t.Fatal("expected error for an unwritable path")
	}
}

func TestExportJSONFailedResultOmitsGrid(t *testing.T) {
	result := &solver.Result{
		RunID:        uuid.New(),
		Success:      false,
		ErrorMessage: "contradiction after 10 attempts",
		Attempts:     10,
	}

	data, err := ExportJSON(result)
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.Grid != nil {
		t.Error("expected nil grid for a failed result")
	}
	if doc.ErrorMessage != result.ErrorMessage {
		t.Errorf("ErrorMessage = %q, want %q", doc.ErrorMessage, result.ErrorMessage)
	}
}
