package terrain_test

import (
	"math"
	"testing"

	"github.com/cory-johannsen/tavern/internal/game/geom"
	"github.com/cory-johannsen/tavern/internal/game/terrain"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestFlat(t *testing.T) {
	var s terrain.Sampler = terrain.Flat{Alt: 12, Temp: 0.4}
	assert.Equal(t, 12.0, s.AltApprox(geom.V2(100, -3)))
	assert.Equal(t, 0.4, s.Temperature(geom.V2(0, 0)))
}

// TestNoise_BoundedAndDeterministic verifies altitude stays within the
// configured amplitude and equal configs sample equally.
func TestNoise_BoundedAndDeterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := terrain.NoiseConfig{
			Seed:        rapid.Int64().Draw(rt, "seed"),
			BaseAlt:     40,
			Amplitude:   rapid.Float64Range(0, 20).Draw(rt, "amp"),
			Scale:       rapid.Float64Range(0, 128).Draw(rt, "scale"),
			Temperature: 0.2,
		}
		a := terrain.NewNoise(cfg)
		b := terrain.NewNoise(cfg)
		p := geom.V2(rapid.IntRange(-5000, 5000).Draw(rt, "x"), rapid.IntRange(-5000, 5000).Draw(rt, "y"))

		alt := a.AltApprox(p)
		assert.Equal(rt, alt, b.AltApprox(p))
		assert.GreaterOrEqual(rt, alt, cfg.BaseAlt-cfg.Amplitude)
		assert.LessOrEqual(rt, alt, cfg.BaseAlt+cfg.Amplitude)

		temp := a.Temperature(p)
		assert.Equal(rt, temp, b.Temperature(p))
		assert.InDelta(rt, cfg.Temperature, temp, 0.5)
	})
}

func TestNoise_VariesAcrossSpace(t *testing.T) {
	n := terrain.NewNoise(terrain.NoiseConfig{Seed: 3, BaseAlt: 0, Amplitude: 10, Scale: 16})
	seen := map[float64]bool{}
	for x := 0; x < 64; x += 3 {
		seen[n.AltApprox(geom.V2(x, x/2))] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestAltInRange(t *testing.T) {
	for _, alt := range []float64{0, -40.5, terrain.MaxAlt, -terrain.MaxAlt} {
		assert.True(t, terrain.AltInRange(alt), "alt %g", alt)
	}
	for _, alt := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e300, terrain.MaxAlt + 1} {
		assert.False(t, terrain.AltInRange(alt), "alt %g", alt)
	}
}
