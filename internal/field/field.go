package field

import (
	"image/color"
	"math"
)

// Field constants
const (
	MobileBreakpoint = 768.0 // Widths below this start the field in mobile mode
	MobileCount      = 30
	DesktopCount     = 80
	LinkDistance     = 150.0 // Pairs closer than this get a connector line
	LinkAlpha        = 0.15  // Connector alpha at distance zero
	LinkWidth        = 0.5
)

// Default palette
var (
	DefaultColor      = color.NRGBA{R: 0, G: 160, B: 227, A: 255}
	DefaultBackground = color.NRGBA{R: 10, G: 14, B: 23, A: 255}
)

// Field holds the particle collection and draws it
type Field struct {
	bounds    Bounds
	particles []Particle
	mobile    bool
	rng       Rand
	color     color.NRGBA
	twinkle   float64
	backdrop  *Backdrop
	frames    uint64      // Completed updates
	cleared   color.NRGBA // Clear colour of the last Render

	mobileCount, desktopCount int
}

// Option configures a Field at construction
type Option func(*Field)

// WithColor sets the particle and connector hue. Alpha is ignored.
func WithColor(c color.NRGBA) Option {
	return func(f *Field) { f.color = c }
}

// WithTwinkleChance sets the per-frame opacity retarget probability.
func WithTwinkleChance(p float64) Option {
	return func(f *Field) { f.twinkle = p }
}

// WithBackdrop sets the source of the clear colour.
func WithBackdrop(b *Backdrop) Option {
	return func(f *Field) { f.backdrop = b }
}

// WithCounts overrides the mobile and desktop particle counts.
func WithCounts(mobile, desktop int) Option {
	return func(f *Field) {
		f.mobileCount = mobile
		f.desktopCount = desktop
	}
}

// New creates a field sized w by h. The particle count is fixed here from
// the initial width and never changes afterwards.
func New(w, h float64, rng Rand, opts ...Option) *Field {
	f := &Field{
		bounds:  Bounds{W: w, H: h},
		mobile:  w < MobileBreakpoint,
		rng:     rng,
		color:   DefaultColor,
		twinkle: TwinkleChance,
		cleared: DefaultBackground,

		mobileCount:  MobileCount,
		desktopCount: DesktopCount,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.backdrop != nil {
		f.cleared = f.backdrop.base
	}

	f.particles = make([]Particle, f.pickCount())
	for i := range f.particles {
		f.particles[i].Reset(f.bounds, f.rng)
	}

	return f
}

func (f *Field) pickCount() int {
	n := f.desktopCount
	if f.mobile {
		n = f.mobileCount
	}
	if n < 0 {
		n = 0
	}
	return n
}

// Count returns the number of particles
func (f *Field) Count() int { return len(f.particles) }

// Mobile reports whether the field started in mobile mode (no connectors).
func (f *Field) Mobile() bool { return f.mobile }

// Bounds returns the current surface size
func (f *Field) Bounds() Bounds { return f.bounds }

// Frames returns how many updates have run
func (f *Field) Frames() uint64 { return f.frames }

// Particles returns a copy of the particle state
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Resize changes the surface size. Particles keep their state and count;
// anything now outside the box wraps on its next update.
func (f *Field) Resize(w, h float64) {
	f.bounds = Bounds{W: w, H: h}
}

// Update advances every particle by one frame
func (f *Field) Update() {
	for i := range f.particles {
		f.particles[i].Update(f.bounds, f.rng, f.twinkle)
	}
	f.frames++
}

// Render draws the current state onto s and advances the backdrop
func (f *Field) Render(s Surface) {
	f.cleared = f.background()
	f.draw(s)
}

// Redraw repaints the current state with the last clear colour. It changes
// nothing, so a host can repaint a resized surface between frames.
func (f *Field) Redraw(s Surface) {
	f.draw(s)
}

func (f *Field) draw(s Surface) {
	s.Clear(f.cleared)

	for i := range f.particles {
		p := &f.particles[i]
		s.FillCircle(p.X, p.Y, p.Radius, f.tint(p.Opacity))
	}

	if f.mobile {
		return
	}
	f.drawLinks(s)
}

// Step runs one full frame: update, then render
func (f *Field) Step(s Surface) {
	f.Update()
	f.Render(s)
}

// drawLinks connects every close pair. O(n²) over the collection.
func (f *Field) drawLinks(s Surface) {
	for i := 0; i < len(f.particles); i++ {
		a := &f.particles[i]
		for j := i + 1; j < len(f.particles); j++ {
			b := &f.particles[j]
			d := math.Hypot(a.X-b.X, a.Y-b.Y)
			if d >= LinkDistance {
				continue
			}
			s.StrokeLine(a.X, a.Y, b.X, b.Y, LinkWidth, f.tint(ConnectorAlpha(d)))
		}
	}
}

// ConnectorAlpha returns the line alpha for two particles d apart. It falls
// linearly from LinkAlpha at 0 to 0 at LinkDistance.
func ConnectorAlpha(d float64) float64 {
	if d >= LinkDistance {
		return 0
	}
	if d < 0 {
		d = 0
	}
	return (1 - d/LinkDistance) * LinkAlpha
}

func (f *Field) tint(alpha float64) color.NRGBA {
	c := f.color
	c.A = uint8(math.Round(math.Max(0, math.Min(1, alpha)) * 255))
	return c
}

func (f *Field) background() color.NRGBA {
	if f.backdrop == nil {
		return DefaultBackground
	}
	return f.backdrop.Next()
}
