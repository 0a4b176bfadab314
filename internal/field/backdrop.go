package field

import (
	"image/color"
	"math"

	"github.com/aquilax/go-perlin"
)

// Backdrop noise parameters
const (
	noiseAlpha  = 2.0
	noiseBeta   = 2.0
	noiseOctave = 3
	noiseStep   = 0.004 // Noise-space distance per frame
)

// Backdrop produces the clear colour: a base colour whose brightness drifts
// with slow 1D perlin noise.
type Backdrop struct {
	base  color.NRGBA
	swing float64 // Max relative brightness change, 0 keeps base fixed
	noise *perlin.Perlin
	t     float64
}

// NewBackdrop creates a backdrop around base. The same seed gives the same
// sequence of colours.
func NewBackdrop(base color.NRGBA, swing float64, seed int64) *Backdrop {
	return &Backdrop{
		base:  base,
		swing: swing,
		noise: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, seed),
	}
}

// Next advances the noise by one frame and returns the colour for it
func (b *Backdrop) Next() color.NRGBA {
	b.t += noiseStep
	if b.swing == 0 {
		return b.base
	}

	n := math.Max(-1, math.Min(1, b.noise.Noise1D(b.t)))
	scale := 1 + n*b.swing
	return color.NRGBA{
		R: scaleChannel(b.base.R, scale),
		G: scaleChannel(b.base.G, scale),
		B: scaleChannel(b.base.B, scale),
		A: b.base.A,
	}
}

func scaleChannel(v uint8, scale float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(float64(v)*scale))))
}
