// Package terrain is the ground sampling boundary consumed by structure
// generation: approximate altitude and biome temperature at a world point.
package terrain

import (
	"math"

	"github.com/cory-johannsen/tavern/internal/game/geom"
)

// MaxAlt bounds the magnitude of any altitude structure generation accepts.
const MaxAlt = 1 << 20

// AltInRange reports whether alt is finite and within ±MaxAlt.
func AltInRange(alt float64) bool {
	return !math.IsNaN(alt) && math.Abs(alt) <= MaxAlt
}

// Sampler answers terrain queries at a world position.
//
// Implementations must be pure: equal inputs yield equal outputs.
type Sampler interface {
	// AltApprox returns the approximate ground altitude at wpos.
	AltApprox(wpos geom.Vec2) float64
	// Temperature returns the interpolated biome temperature at wpos.
	// Generation treats values <= 0 as cold.
	Temperature(wpos geom.Vec2) float64
}

// Flat is a Sampler with constant altitude and temperature.
type Flat struct {
	Alt  float64
	Temp float64
}

// AltApprox returns f.Alt everywhere.
func (f Flat) AltApprox(geom.Vec2) float64 { return f.Alt }

// Temperature returns f.Temp everywhere.
func (f Flat) Temperature(geom.Vec2) float64 { return f.Temp }
