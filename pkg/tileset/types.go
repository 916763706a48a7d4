// Package tileset defines the declarative tile and rule model consumed by
// the configuration compiler: plain data contributed by plugins and overlay
// files, never mutated once the solver starts.
package tileset

import (
	"fmt"
	"sort"
)

// Direction identifies one of the four grid adjacency directions.
// up decreases y, down increases y, left decreases x, right increases x.
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// Directions lists all four directions in a fixed, deterministic order.
// Solver code iterates this slice rather than ranging over a map so that
// propagation order is stable across runs.
var Directions = []Direction{Up, Down, Left, Right}

// Opposite returns the direction a neighbour would use to look back at its
// originating cell. Rules are directional; this is a geometry helper, not
// a symmetry assumption.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return d
	}
}

// Delta returns the (dx, dy) grid offset for the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

// TileDefinition is a declarative, plugin-supplied tile description.
// It is passive data: the compiler reads it, the solver never mutates it.
type TileDefinition struct {
	ID           string            `json:"id" yaml:"id"`
	Name         string            `json:"name" yaml:"name"`
	ResourcePath string            `json:"resourcePath,omitempty" yaml:"resourcePath,omitempty"`
	Category     string            `json:"category,omitempty" yaml:"category,omitempty"`
	Properties   map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Connection is one weighted entry in a TileRuleDefinition's possible
// connections: "permits the neighbour to hold ToTileID with this weight".
type Connection struct {
	ToTileID string  `json:"toTileId" yaml:"toTileId"`
	Weight   float64 `json:"weight" yaml:"weight"`
}

// TileRuleDefinition is a declarative adjacency rule: a cell holding
// FromTileID permits its Direction neighbour to hold one of
// PossibleConnections, each with a relative weight. Rules are directional;
// A→up→B does not imply B→down→A unless a matching rule is also supplied.
type TileRuleDefinition struct {
	FromTileID          string       `json:"fromTileId" yaml:"fromTileId"`
	Direction           Direction    `json:"direction" yaml:"direction"`
	PossibleConnections []Connection `json:"possibleConnections" yaml:"possibleConnections"`
}

// ruleKey is the compiled lookup key: a dense tile index and a direction.
type ruleKey struct {
	From int
	Dir  Direction
}

// CompiledConnection is a compiled (toIndex, weight) pair.
type CompiledConnection struct {
	To     int
	Weight float64
}

// RuleTable is the compiler's output: a mapping (fromIndex, direction) →
// sequence of (toIndex, weight). A key with zero surviving connections is
// omitted entirely.
type RuleTable struct {
	entries map[ruleKey][]CompiledConnection
}

// NewRuleTable returns an empty, ready-to-populate rule table.
func NewRuleTable() *RuleTable {
	return &RuleTable{entries: make(map[ruleKey][]CompiledConnection)}
}

// Add appends a compiled connection under (from, dir). Used only by the
// compiler during construction.
func (rt *RuleTable) Add(from int, dir Direction, to int, weight float64) {
	key := ruleKey{From: from, Dir: dir}
	rt.entries[key] = append(rt.entries[key], CompiledConnection{To: to, Weight: weight})
}

// Lookup returns the compiled connections for (from, dir), or nil if the key
// was omitted (no surviving connections).
func (rt *RuleTable) Lookup(from int, dir Direction) []CompiledConnection {
	return rt.entries[ruleKey{From: from, Dir: dir}]
}

// Allows reports whether a rule exists permitting `from` to have `to` as its
// `dir` neighbour. Used by the consistency invariant check.
func (rt *RuleTable) Allows(from int, dir Direction, to int) bool {
	for _, c := range rt.entries[ruleKey{From: from, Dir: dir}] {
		if c.To == to {
			return true
		}
	}
	return false
}

// Len returns the number of non-empty (from, direction) keys in the table.
func (rt *RuleTable) Len() int {
	return len(rt.entries)
}

// Fingerprint returns a stable, order-independent text representation of
// every entry, suitable for hashing into a configuration fingerprint.
func (rt *RuleTable) Fingerprint() string {
	keys := make([]ruleKey, 0, len(rt.entries))
	for k := range rt.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].From != keys[j].From {
			return keys[i].From < keys[j].From
		}
		return keys[i].Dir < keys[j].Dir
	})

	var b []byte
	for _, k := range keys {
		conns := rt.entries[k]
		sorted := append([]CompiledConnection(nil), conns...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].To < sorted[j].To })
		for _, c := range sorted {
			b = fmt.Appendf(b, "%d|%s|%d|%g;", k.From, k.Dir, c.To, c.Weight)
		}
	}
	return string(b)
}
