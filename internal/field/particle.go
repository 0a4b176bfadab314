package field

// Particle constants
const (
	Margin        = 10.0 // Extra space past each edge before a particle wraps
	MaxSpeed      = 0.25
	MinRadius     = 0.5
	MaxRadius     = 2.5
	MinOpacity    = 0.1
	MaxOpacity    = 0.6
	TwinkleChance = 0.005 // Per-frame probability of picking a new target opacity
	TwinkleEase   = 0.02  // Fraction of the remaining opacity gap closed per frame
)

// Rand is a uniform random source in [0,1). *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Bounds is the size of the drawing surface in field units.
type Bounds struct {
	W, H float64
}

// Particle is a single point of the field
type Particle struct {
	X, Y          float64 // Position
	VX, VY        float64 // Velocity per frame
	Radius        float64
	Opacity       float64
	TargetOpacity float64
}

// Reset places the particle at a random point of b with fresh random
// velocity, radius and opacity.
func (p *Particle) Reset(b Bounds, rng Rand) {
	p.X = rng.Float64() * b.W
	p.Y = rng.Float64() * b.H
	p.Radius = MinRadius + rng.Float64()*(MaxRadius-MinRadius)
	p.VX = (rng.Float64()*2 - 1) * MaxSpeed
	p.VY = (rng.Float64()*2 - 1) * MaxSpeed
	p.Opacity = randomOpacity(rng)
	p.TargetOpacity = p.Opacity
}

// Update advances the particle by one frame. chance is the probability of
// retargeting the opacity; zero disables twinkling.
func (p *Particle) Update(b Bounds, rng Rand, chance float64) {
	p.X += p.VX
	p.Y += p.VY

	if chance > 0 && rng.Float64() < chance {
		p.TargetOpacity = randomOpacity(rng)
	}
	p.Opacity += (p.TargetOpacity - p.Opacity) * TwinkleEase

	p.X = wrap(p.X, b.W)
	p.Y = wrap(p.Y, b.H)
}

func randomOpacity(rng Rand) float64 {
	return MinOpacity + rng.Float64()*(MaxOpacity-MinOpacity)
}

// wrap moves v to the opposite edge once it leaves [-Margin, size+Margin]
func wrap(v, size float64) float64 {
	if v > size+Margin {
		return -Margin
	}
	if v < -Margin {
		return size + Margin
	}
	return v
}
