// Package compiler merges plugin-contributed tile and rule definitions
// (plus optional JSON overlay files) into the dense-indexed rule table the
// solver consumes.
package compiler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hollowforge/wfcmap/pkg/plugin"
	"github.com/hollowforge/wfcmap/pkg/tileset"
)

// Warning is a non-fatal issue surfaced during compilation: a dropped rule,
// an unknown tile reference, a malformed overlay file. Compilation never
// fails outright on bad input — it drops the offending item and records why.
type Warning struct {
	Message string
}

// Compiled is the Configuration Compiler's output: dense tile indices, the
// ordered tile list in index order, and the compiled rule table.
type Compiled struct {
	Tiles    []tileset.TileDefinition // index → definition
	IndexOf  map[string]int           // tile id → index
	Rules    *tileset.RuleTable
	Warnings []Warning
}

// Compile merges tiles from enabled plugins (in registration order, last
// write wins per id) with rule definitions (appended in the same order),
// then overlays tiles.json/rules.json if present in overlayDir (overlay
// wins on tile id conflicts; rules are appended). It assigns dense indices
// in enumeration order and builds the compiled rule table, dropping rules
// or connections that reference unknown tile ids and recording a Warning
// for each drop.
//
// Compile never returns an error for malformed input — every per-item
// problem becomes a Warning. It can fail only if overlayDir itself cannot
// be read for reasons other than "file absent".
func Compile(plugins []plugin.TileSetPlugin, overlayDir string) (*Compiled, error) {
	tileOrder := make([]string, 0)
	tileByID := make(map[string]tileset.TileDefinition)
	var ruleDefs []tileset.TileRuleDefinition
	var warnings []Warning

	for _, p := range plugins {
		if p == nil || !p.Enabled() {
			continue
		}
		for _, t := range p.TileDefinitions() {
			if _, exists := tileByID[t.ID]; !exists {
				tileOrder = append(tileOrder, t.ID)
			}
			tileByID[t.ID] = t
		}
		ruleDefs = append(ruleDefs, p.RuleDefinitions()...)
	}

	overlayTiles, overlayRules, overlayWarnings, err := loadOverlay(overlayDir)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, overlayWarnings...)
	for _, t := range overlayTiles {
		if _, exists := tileByID[t.ID]; !exists {
			tileOrder = append(tileOrder, t.ID)
		}
		tileByID[t.ID] = t
	}
	ruleDefs = append(ruleDefs, overlayRules...)

	indexOf := make(map[string]int, len(tileOrder))
	tiles := make([]tileset.TileDefinition, len(tileOrder))
	for i, id := range tileOrder {
		indexOf[id] = i
		tiles[i] = tileByID[id]
	}

	table := tileset.NewRuleTable()
	for _, r := range ruleDefs {
		fromIdx, ok := indexOf[r.FromTileID]
		if !ok {
			warnings = append(warnings, Warning{
				Message: fmt.Sprintf("rule references unknown tile id %q; dropped", r.FromTileID),
			})
			continue
		}
		for _, c := range r.PossibleConnections {
			toIdx, ok := indexOf[c.ToTileID]
			if !ok {
				warnings = append(warnings, Warning{
					Message: fmt.Sprintf("rule %s->%s references unknown tile id %q; connection dropped", r.FromTileID, c.ToTileID, c.ToTileID),
				})
				continue
			}
			table.Add(fromIdx, r.Direction, toIdx, c.Weight)
		}
	}

	return &Compiled{Tiles: tiles, IndexOf: indexOf, Rules: table, Warnings: warnings}, nil
}

// overlayTiles/overlayRules mirror the JSON shapes documented for
// Config/tiles.json and Config/rules.json: plain arrays of TileDefinition
// and TileRuleDefinition.

func loadOverlay(dir string) ([]tileset.TileDefinition, []tileset.TileRuleDefinition, []Warning, error) {
	var warnings []Warning
	if dir == "" {
		return nil, nil, nil, nil
	}

	tiles, w, err := loadTilesOverlay(filepath.Join(dir, "tiles.json"))
	if err != nil {
		return nil, nil, nil, err
	}
	warnings = append(warnings, w...)

	rules, w, err := loadRulesOverlay(filepath.Join(dir, "rules.json"))
	if err != nil {
		return nil, nil, nil, err
	}
	warnings = append(warnings, w...)

	return tiles, rules, warnings, nil
}

func loadTilesOverlay(path string) ([]tileset.TileDefinition, []Warning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("reading tile overlay: %w", err)
	}

	var tiles []tileset.TileDefinition
	if err := json.Unmarshal(data, &tiles); err != nil {
		return nil, []Warning{{Message: fmt.Sprintf("malformed tiles.json ignored: %v", err)}}, nil
	}
	return tiles, nil, nil
}

func loadRulesOverlay(path string) ([]tileset.TileRuleDefinition, []Warning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("reading rule overlay: %w", err)
	}

	var rules []tileset.TileRuleDefinition
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, []Warning{{Message: fmt.Sprintf("malformed rules.json ignored: %v", err)}}, nil
	}
	return rules, nil, nil
}
