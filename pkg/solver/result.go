package solver

import (
	"github.com/google/uuid"

	"github.com/hollowforge/wfcmap/pkg/tileset"
)

// Result is the output bundle of one Solve call.
type Result struct {
	RunID   uuid.UUID
	Success bool

	// Grid is the collapsed tile grid, Grid[y][x], valid iff Success. Nil on
	// failure — no partial grid is ever returned.
	Grid [][]tileset.TileDefinition

	// ErrorMessage is a human-readable failure description; empty iff
	// Success.
	ErrorMessage string

	// Attempts is the number of Step-0 restarts this Solve call performed,
	// including the final (successful or exhausted) one. 1 means no retry
	// was needed.
	Attempts int
}
