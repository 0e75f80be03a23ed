package patterns

import (
	"github.com/aquilax/go-perlin"

	"lifegrid/pkg/core"
	"lifegrid/pkg/sims/life"
)

// DefaultDensity is the live-cell probability of the random fill.
const DefaultDensity = 0.3

// Noise parameters: alpha/beta control octave falloff, scale sets blob size in cells.
const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3
	noiseScale   = 0.12
)

// Randomize sets every cell of g alive independently with the given probability,
// overwriting the current board. Generation is left as is.
func Randomize(g *life.Grid, probability float64, rng core.Source) {
	for r := 0; r < g.Size(); r++ {
		for c := 0; c < g.Size(); c++ {
			g.Set(r, c, rng.Float64() < probability)
		}
	}
}

// NoiseFill seeds g with coherent blobs: a cell is alive where 2D Perlin noise
// exceeds threshold. Lower thresholds give denser boards; 0 is roughly half full.
func NoiseFill(g *life.Grid, threshold float64, seed int64) {
	noise := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed)
	for r := 0; r < g.Size(); r++ {
		for c := 0; c < g.Size(); c++ {
			v := noise.Noise2D(float64(c)*noiseScale, float64(r)*noiseScale)
			g.Set(r, c, v > threshold)
		}
	}
}
