package tileset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TilePack is a named, YAML-loadable bundle of tile and rule definitions —
// the on-disk shape a TileSet plugin typically wraps. Packs can be mixed:
// a compiler merges several enabled plugins' contributions in registration
// order.
//
// Example packs: "grass-and-water", "dungeon-floor", "platformer-8bit".
type TilePack struct {
	Name        string               `yaml:"name" json:"name"`
	Description string               `yaml:"description" json:"description"`
	Tiles       []TileDefinition     `yaml:"tiles" json:"tiles"`
	Rules       []TileRuleDefinition `yaml:"rules" json:"rules"`
	EnabledFlag bool                 `yaml:"enabled" json:"enabled"`
}

// LoadTilePackFromFile loads a tile pack from a YAML file.
func LoadTilePackFromFile(path string) (*TilePack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tile pack file: %w", err)
	}

	var pack TilePack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parsing tile pack YAML: %w", err)
	}

	if err := ValidateTilePack(&pack); err != nil {
		return nil, err
	}

	return &pack, nil
}

// LoadTilePackFromDirectory loads a tile pack from a directory containing
// pack.yml or pack.yaml.
func LoadTilePackFromDirectory(dir string) (*TilePack, error) {
	packPath := filepath.Join(dir, "pack.yml")
	if _, err := os.Stat(packPath); os.IsNotExist(err) {
		packPath = filepath.Join(dir, "pack.yaml")
		if _, err := os.Stat(packPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("tile pack file not found in directory: %s", dir)
		}
	}

	return LoadTilePackFromFile(packPath)
}

// ValidateTilePack checks that a tile pack has all required fields and
// structurally well-formed rules. Unknown tile ids referenced by a
// rule are NOT an error here — the compiler silently drops them later;
// validation only guards against structurally malformed packs.
func ValidateTilePack(pack *TilePack) error {
	if pack.Name == "" {
		return errors.New("name is required")
	}
	if len(pack.Tiles) == 0 {
		return errors.New("at least one tile is required")
	}

	seen := make(map[string]bool, len(pack.Tiles))
	for _, t := range pack.Tiles {
		if t.ID == "" {
			return errors.New("tile id is required")
		}
		seen[t.ID] = true
	}

	for _, r := range pack.Rules {
		if r.FromTileID == "" {
			return errors.New("rule fromTileId is required")
		}
		switch r.Direction {
		case Up, Down, Left, Right:
		default:
			return fmt.Errorf("rule for %s has invalid direction %q", r.FromTileID, r.Direction)
		}
		for _, c := range r.PossibleConnections {
			if c.ToTileID == "" {
				return errors.New("connection toTileId is required")
			}
			if c.Weight < 0 {
				return fmt.Errorf("connection %s->%s has negative weight %f", r.FromTileID, c.ToTileID, c.Weight)
			}
		}
	}

	return nil
}

// Enabled reports whether this pack should be consulted by the compiler.
// Implements plugin.TileSetPlugin.
func (p *TilePack) Enabled() bool {
	return p.EnabledFlag
}

// TileDefinitions returns the pack's contributed tile definitions.
// Implements plugin.TileSetPlugin.
func (p *TilePack) TileDefinitions() []TileDefinition {
	return p.Tiles
}

// RuleDefinitions returns the pack's contributed rule definitions.
// Implements plugin.TileSetPlugin.
func (p *TilePack) RuleDefinitions() []TileRuleDefinition {
	return p.Rules
}
