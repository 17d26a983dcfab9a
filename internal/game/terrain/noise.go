package terrain

import (
	"math"

	"github.com/cory-johannsen/tavern/internal/game/geom"
)

// perlin is 2D Perlin noise over a seeded permutation table.
type perlin struct {
	perm [512]int
}

func newPerlin(seed int64) *perlin {
	p := &perlin{}
	var base [256]int
	for i := range base {
		base[i] = i
	}
	// Fisher-Yates with an LCG so the table depends only on seed.
	s := seed
	for i := 255; i > 0; i-- {
		s = s*6364136223846793005 + 1442695040888963407
		j := int(uint64(s>>16) % uint64(i+1))
		base[i], base[j] = base[j], base[i]
	}
	for i := 0; i < 256; i++ {
		p.perm[i] = base[i]
		p.perm[i+256] = base[i]
	}
	return p
}

func fade(t float64) float64 { return t * t * t * (t*(t*6-15) + 10) }

func lerp(t, a, b float64) float64 { return a + t*(b-a) }

func grad(hash int, x, y float64) float64 {
	switch hash & 3 {
	case 0:
		return x + y
	case 1:
		return -x + y
	case 2:
		return x - y
	default:
		return -x - y
	}
}

// noise returns Perlin noise at (x, y), roughly in [-1, 1].
func (p *perlin) noise(x, y float64) float64 {
	fx, fy := math.Floor(x), math.Floor(y)
	xi := int(fx) & 255
	yi := int(fy) & 255
	xf, yf := x-fx, y-fy
	u, v := fade(xf), fade(yf)

	aa := p.perm[p.perm[xi]+yi]
	ab := p.perm[p.perm[xi]+yi+1]
	ba := p.perm[p.perm[xi+1]+yi]
	bb := p.perm[p.perm[xi+1]+yi+1]

	x1 := lerp(u, grad(aa, xf, yf), grad(ba, xf-1, yf))
	x2 := lerp(u, grad(ab, xf, yf-1), grad(bb, xf-1, yf-1))
	return lerp(v, x1, x2)
}

// octaves sums n octaves of noise with halving amplitude, normalised back to
// roughly [-1, 1].
func (p *perlin) octaves(x, y float64, n int) float64 {
	var total, norm float64
	freq, amp := 1.0, 1.0
	for i := 0; i < n; i++ {
		total += p.noise(x*freq, y*freq) * amp
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	return total / norm
}

// NoiseConfig parameterises a Noise sampler.
type NoiseConfig struct {
	Seed int64
	// BaseAlt is the mean ground altitude.
	BaseAlt float64
	// Amplitude is the maximum deviation from BaseAlt.
	Amplitude float64
	// Scale is the horizontal feature size in blocks. Values <= 0 fall back
	// to 64.
	Scale float64
	// Temperature is the mean biome temperature; it drifts by up to 0.5 with
	// a second, independent noise channel.
	Temperature float64
	// Octaves defaults to 3 when <= 0.
	Octaves int
}

// Noise is a Sampler over fractal Perlin noise.
type Noise struct {
	cfg  NoiseConfig
	alt  *perlin
	temp *perlin
}

// NewNoise builds a Noise sampler.
//
// Postcondition: AltApprox is within cfg.BaseAlt ± cfg.Amplitude.
func NewNoise(cfg NoiseConfig) *Noise {
	if cfg.Scale <= 0 {
		cfg.Scale = 64
	}
	if cfg.Octaves <= 0 {
		cfg.Octaves = 3
	}
	return &Noise{
		cfg:  cfg,
		alt:  newPerlin(cfg.Seed),
		temp: newPerlin(cfg.Seed ^ 0x5f3759df),
	}
}

// AltApprox samples the altitude channel.
func (n *Noise) AltApprox(wpos geom.Vec2) float64 {
	v := n.alt.octaves(float64(wpos.X)/n.cfg.Scale, float64(wpos.Y)/n.cfg.Scale, n.cfg.Octaves)
	return n.cfg.BaseAlt + clampUnit(v)*n.cfg.Amplitude
}

// Temperature samples the temperature channel at a coarser scale than
// altitude.
func (n *Noise) Temperature(wpos geom.Vec2) float64 {
	s := n.cfg.Scale * 4
	v := n.temp.noise(float64(wpos.X)/s, float64(wpos.Y)/s)
	return n.cfg.Temperature + clampUnit(v)*0.5
}

func clampUnit(v float64) float64 { return math.Max(-1, math.Min(1, v)) }
