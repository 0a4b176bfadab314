package field

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct {
	x0, y0, x1, y1, width float64
	c                     color.NRGBA
}

// recordSurface keeps the draw calls of the last frame
type recordSurface struct {
	clears  int
	cleared color.NRGBA
	circles []Particle
	lines   []line
	tints   []color.NRGBA
}

func (s *recordSurface) Clear(c color.NRGBA) {
	s.clears++
	s.cleared = c
	s.circles = s.circles[:0]
	s.lines = s.lines[:0]
	s.tints = s.tints[:0]
}

func (s *recordSurface) FillCircle(x, y, r float64, c color.NRGBA) {
	s.circles = append(s.circles, Particle{X: x, Y: y, Radius: r})
	s.tints = append(s.tints, c)
}

func (s *recordSurface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	s.lines = append(s.lines, line{x0, y0, x1, y1, width, c})
}

func newTestField(w, h float64, opts ...Option) *Field {
	return New(w, h, rand.New(rand.NewSource(42)), opts...)
}

func TestNewParticleCount(t *testing.T) {
	tests := []struct {
		width  float64
		count  int
		mobile bool
	}{
		{320, MobileCount, true},
		{767, MobileCount, true},
		{767.9, MobileCount, true},
		{768, DesktopCount, false},
		{1920, DesktopCount, false},
	}

	for _, tt := range tests {
		f := newTestField(tt.width, 600)
		assert.Equal(t, tt.count, f.Count(), "width %v", tt.width)
		assert.Equal(t, tt.mobile, f.Mobile(), "width %v", tt.width)
	}
}

func TestWithCounts(t *testing.T) {
	assert.Equal(t, 5, newTestField(400, 300, WithCounts(5, 9)).Count())
	assert.Equal(t, 9, newTestField(1200, 300, WithCounts(5, 9)).Count())
	assert.Equal(t, 0, newTestField(1200, 300, WithCounts(5, -1)).Count())
}

func TestCountStableAcrossFramesAndResizes(t *testing.T) {
	for _, w := range []float64{500, 1280} {
		f := newTestField(w, 700)
		want := f.Count()
		sizes := []Bounds{{300, 200}, {2560, 1440}, {767, 1000}, {800, 600}}

		for frame := 0; frame < 2000; frame++ {
			if frame%500 == 0 {
				s := sizes[(frame/500)%len(sizes)]
				f.Resize(s.W, s.H)
			}
			f.Update()
			require.Equal(t, want, f.Count())
			require.Equal(t, w < MobileBreakpoint, f.Mobile())
		}
		assert.Equal(t, uint64(2000), f.Frames())
	}
}

func TestPositionAndOpacityBounds(t *testing.T) {
	f := newTestField(1024, 768)
	sizes := []Bounds{{1024, 768}, {400, 300}, {1600, 200}}
	const eps = 1e-9

	for frame := 0; frame < 6000; frame++ {
		if frame%2000 == 0 {
			s := sizes[frame/2000]
			f.Resize(s.W, s.H)
		}
		f.Update()
		b := f.Bounds()

		for i, p := range f.particles {
			require.GreaterOrEqual(t, p.X, -Margin, "frame %d particle %d", frame, i)
			require.LessOrEqual(t, p.X, b.W+Margin, "frame %d particle %d", frame, i)
			require.GreaterOrEqual(t, p.Y, -Margin, "frame %d particle %d", frame, i)
			require.LessOrEqual(t, p.Y, b.H+Margin, "frame %d particle %d", frame, i)
			require.GreaterOrEqual(t, p.Opacity, MinOpacity-eps)
			require.LessOrEqual(t, p.Opacity, MaxOpacity+eps)
			require.GreaterOrEqual(t, p.TargetOpacity, MinOpacity-eps)
			require.LessOrEqual(t, p.TargetOpacity, MaxOpacity+eps)
		}
	}
}

func TestVelocityAndRadiusConstant(t *testing.T) {
	f := newTestField(1024, 768)
	before := f.Particles()

	for i := 0; i < 300; i++ {
		f.Update()
	}

	for i, p := range f.Particles() {
		assert.Equal(t, before[i].VX, p.VX)
		assert.Equal(t, before[i].VY, p.VY)
		assert.Equal(t, before[i].Radius, p.Radius)
	}
}

func TestResizeKeepsParticles(t *testing.T) {
	f := newTestField(1280, 720)
	before := f.Particles()

	f.Resize(400, 300)

	assert.Equal(t, before, f.Particles())
	assert.Equal(t, Bounds{W: 400, H: 300}, f.Bounds())
	assert.False(t, f.Mobile())
	assert.Equal(t, DesktopCount, f.Count())
}

func TestConnectorAlpha(t *testing.T) {
	assert.Equal(t, 0.0, ConnectorAlpha(150))
	assert.Equal(t, 0.0, ConnectorAlpha(400))
	assert.InDelta(t, 0.15, ConnectorAlpha(0), 1e-12)
	assert.InDelta(t, 0.075, ConnectorAlpha(75), 1e-12)
	assert.InDelta(t, 0.03, ConnectorAlpha(120), 1e-12)
	assert.Less(t, ConnectorAlpha(100), ConnectorAlpha(50))
}

func TestRenderDrawsEveryParticle(t *testing.T) {
	f := newTestField(1024, 768)
	s := &recordSurface{}

	f.Render(s)

	require.Len(t, s.circles, f.Count())
	assert.Equal(t, 1, s.clears)
	assert.Equal(t, DefaultBackground, s.cleared)
	for i, p := range f.particles {
		assert.Equal(t, p.X, s.circles[i].X)
		assert.Equal(t, p.Y, s.circles[i].Y)
		assert.Equal(t, p.Radius, s.circles[i].Radius)

		c := s.tints[i]
		assert.Equal(t, DefaultColor.R, c.R)
		assert.Equal(t, DefaultColor.G, c.G)
		assert.Equal(t, DefaultColor.B, c.B)
		assert.InDelta(t, p.Opacity*255, float64(c.A), 0.5)
	}
}

func TestRenderConnectors(t *testing.T) {
	f := newTestField(1024, 768, WithCounts(0, 4), WithColor(color.NRGBA{R: 255, G: 0, B: 0, A: 255}))
	f.particles[0] = Particle{X: 100, Y: 100, Radius: 1, Opacity: 0.5}
	f.particles[1] = Particle{X: 100, Y: 175, Radius: 1, Opacity: 0.5} // 75 from 0
	f.particles[2] = Particle{X: 250, Y: 100, Radius: 1, Opacity: 0.5} // exactly 150 from 0
	f.particles[3] = Particle{X: 900, Y: 700, Radius: 1, Opacity: 0.5} // far from all

	s := &recordSurface{}
	f.Render(s)

	require.Len(t, s.lines, 1)
	l := s.lines[0]
	assert.Equal(t, line{100, 100, 100, 175, LinkWidth, l.c}, l)
	assert.Equal(t, uint8(255), l.c.R)
	assert.Equal(t, uint8(19), l.c.A) // round(0.075 * 255)
}

func TestRenderConnectorsAllPairs(t *testing.T) {
	f := newTestField(1024, 768, WithCounts(0, 5))
	for i := range f.particles {
		f.particles[i] = Particle{X: 500 + float64(i), Y: 400, Radius: 1, Opacity: 0.3}
	}

	s := &recordSurface{}
	f.Render(s)

	assert.Len(t, s.lines, 5*4/2)
}

func TestMobileSkipsConnectors(t *testing.T) {
	f := newTestField(600, 800)
	require.True(t, f.Mobile())
	for i := range f.particles {
		f.particles[i].X = 300
		f.particles[i].Y = 400
	}

	s := &recordSurface{}
	f.Step(s)

	assert.Empty(t, s.lines)
	assert.Len(t, s.circles, MobileCount)
}

func TestStepUpdatesBeforeRender(t *testing.T) {
	f := newTestField(1024, 768, WithCounts(0, 2), WithTwinkleChance(0))
	f.particles[0] = Particle{X: 100, Y: 100, VX: 0.25, Radius: 1, Opacity: 0.3, TargetOpacity: 0.3}
	f.particles[1] = Particle{X: 200, Y: 100, VX: -0.25, Radius: 1, Opacity: 0.3, TargetOpacity: 0.3}

	s := &recordSurface{}
	f.Step(s)

	require.Len(t, s.circles, 2)
	assert.Equal(t, 100.25, s.circles[0].X)
	assert.Equal(t, 199.75, s.circles[1].X)
	require.Len(t, s.lines, 1)
	assert.Equal(t, 100.25, s.lines[0].x0)
	assert.Equal(t, 199.75, s.lines[0].x1)
	assert.Equal(t, uint64(1), f.Frames())
}

func TestRenderUsesBackdrop(t *testing.T) {
	base := color.NRGBA{R: 40, G: 50, B: 60, A: 255}
	f := newTestField(1024, 768, WithBackdrop(NewBackdrop(base, 0, 1)))

	s := &recordSurface{}
	f.Render(s)

	assert.Equal(t, base, s.cleared)
}

func TestSameSeedSameField(t *testing.T) {
	a := newTestField(1024, 768)
	b := newTestField(1024, 768)
	for i := 0; i < 100; i++ {
		a.Update()
		b.Update()
	}
	assert.Equal(t, a.Particles(), b.Particles())
}

func TestRedrawKeepsBackdropPhase(t *testing.T) {
	base := color.NRGBA{R: 90, G: 110, B: 130, A: 255}
	a := newTestField(1024, 768, WithBackdrop(NewBackdrop(base, 0.5, 11)))
	b := newTestField(1024, 768, WithBackdrop(NewBackdrop(base, 0.5, 11)))
	sa, sb := &recordSurface{}, &recordSurface{}

	a.Render(sa)
	first := sa.cleared
	before := a.Particles()
	for i := 0; i < 5; i++ {
		a.Redraw(sa)
		assert.Equal(t, first, sa.cleared)
		assert.Len(t, sa.circles, a.Count())
	}
	assert.Equal(t, before, a.Particles())
	assert.Equal(t, uint64(0), a.Frames())

	// the next Render continues where it would have without the redraws
	a.Render(sa)
	b.Render(sb)
	b.Render(sb)
	assert.Equal(t, sb.cleared, sa.cleared)
}

func TestRedrawBeforeRenderUsesBase(t *testing.T) {
	base := color.NRGBA{R: 90, G: 110, B: 130, A: 255}
	f := newTestField(1024, 768, WithBackdrop(NewBackdrop(base, 0.5, 11)))
	s := &recordSurface{}

	f.Redraw(s)

	assert.Equal(t, base, s.cleared)
}
