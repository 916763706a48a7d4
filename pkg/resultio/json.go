// Package resultio serializes a solver.Result to durable formats. It is the
// "external renderer/exporter" consumer of a completed generation: the
// solver core never imports it.
package resultio

import (
	"encoding/json"
	"os"

	"github.com/hollowforge/wfcmap/pkg/solver"
)

// document is the on-disk shape of an exported Result: the tile-id grid
// plus the envelope fields, omitting the in-memory-only TileDefinition
// payload in favour of each cell's tile id.
type document struct {
	RunID        string     `json:"runId"`
	Success      bool       `json:"success"`
	Grid         [][]string `json:"grid,omitempty"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	Attempts     int        `json:"attempts"`
}

func toDocument(result *solver.Result) document {
	doc := document{
		RunID:        result.RunID.String(),
		Success:      result.Success,
		ErrorMessage: result.ErrorMessage,
		Attempts:     result.Attempts,
	}
	if result.Grid != nil {
		doc.Grid = make([][]string, len(result.Grid))
		for y, row := range result.Grid {
			ids := make([]string, len(row))
			for x, td := range row {
				ids[x] = td.ID
			}
			doc.Grid[y] = ids
		}
	}
	return doc
}

// ExportJSON serializes result to indented JSON.
func ExportJSON(result *solver.Result) ([]byte, error) {
	return json.MarshalIndent(toDocument(result), "", "  ")
}

// ExportJSONCompact serializes result to compact JSON.
func ExportJSONCompact(result *solver.Result) ([]byte, error) {
	return json.Marshal(toDocument(result))
}

// SaveJSONToFile writes result to path as indented JSON, 0644.
func SaveJSONToFile(result *solver.Result, path string) error {
	data, err := ExportJSON(result)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SaveJSONCompactToFile writes result to path as compact JSON, 0644.
func SaveJSONCompactToFile(result *solver.Result, path string) error {
	data, err := ExportJSONCompact(result)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
